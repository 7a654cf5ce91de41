// ABOUTME: Tests for callback payload decoding at the transport boundary
// ABOUTME: Covers each action tag, URL recovery from message text, and malformed payloads

package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkstash/linkstash/internal/engine"
)

const pickerText = "You sent the link:\nhttp://a.example/x\n\nChoose a category:"

func TestDecodeCallback_Assign(t *testing.T) {
	ev, err := decodeCallback(assignData("green", "Tech"), pickerText)
	require.NoError(t, err)

	assert.Equal(t, engine.AssignPressed{
		URL:      "http://a.example/x",
		Category: "Tech",
		Color:    "green",
	}, ev)
}

func TestDecodeCallback_AssignNameWithSeparator(t *testing.T) {
	ev, err := decodeCallback(assignData("red", "a|b"), pickerText)
	require.NoError(t, err)

	assert.Equal(t, "a|b", ev.(engine.AssignPressed).Category)
}

func TestDecodeCallback_AddCategory(t *testing.T) {
	ev, err := decodeCallback(addCategoryData(), pickerText)
	require.NoError(t, err)

	assert.Equal(t, engine.AddCategoryPressed{URL: "http://a.example/x"}, ev)
}

func TestDecodeCallback_Color(t *testing.T) {
	ev, err := decodeCallback(colorData("indigo"), "Choose a color for \"Recipes\":")
	require.NoError(t, err)

	assert.Equal(t, engine.ColorPressed{Color: "indigo"}, ev)
}

func TestDecodeCallback_NoURLInMessage(t *testing.T) {
	_, err := decodeCallback(assignData("green", "Tech"), "no link here")
	assert.Error(t, err)

	_, err = decodeCallback(addCategoryData(), "no link here")
	assert.Error(t, err)
}

func TestDecodeCallback_Malformed(t *testing.T) {
	for _, data := range []string{"", "assign|", "assign|green", "color|", "nonsense"} {
		_, err := decodeCallback(data, pickerText)
		assert.Error(t, err, "data %q", data)
	}
}
