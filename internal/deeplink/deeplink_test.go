// ABOUTME: Tests for the deep-link payload format
// ABOUTME: Covers encode/decode round-trips and pipes embedded in field values

package deeplink

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	records := []Record{
		{URL: "http://a.example/x", Title: "A", Description: "first", Category: "News", Color: "blue"},
		{URL: "http://b.example/y", Title: "B", Description: "second", Category: "Tech", Color: "green"},
	}

	payload := Encode(records)
	decoded, err := Decode(payload)
	require.NoError(t, err)
	assert.Equal(t, records, decoded)
}

func TestEncode_PipeInsideField(t *testing.T) {
	records := []Record{
		{URL: "http://a.example/?q=x|y", Title: "pipes | everywhere", Category: "Fun", Color: "yellow"},
	}

	payload := Encode(records)

	// Raw pipes never appear outside the separators
	assert.Equal(t, 4, strings.Count(payload, "|"), "all field pipes must be escaped")

	decoded, err := Decode(payload)
	require.NoError(t, err)
	assert.Equal(t, records, decoded)
}

func TestEncode_RecordSeparator(t *testing.T) {
	payload := Encode([]Record{
		{URL: "http://a.example", Title: "A", Description: "d", Category: "News", Color: "blue"},
		{URL: "http://b.example", Title: "B", Description: "e", Category: "Tech", Color: "green"},
	})

	assert.Equal(t, 1, strings.Count(payload, "|||"))
}

func TestEncodeDecode_EmptyTrailingFields(t *testing.T) {
	// Uncategorized links export with empty Category and Color, so the
	// record ends in "||" and runs into the "|||" separator.
	records := []Record{
		{URL: "http://a.example", Title: "A", Description: "d"},
		{URL: "http://b.example", Title: "B", Description: "e", Category: "News", Color: "blue"},
		{URL: "http://c.example"},
	}

	payload := Encode(records)
	decoded, err := Decode(payload)
	require.NoError(t, err)
	assert.Equal(t, records, decoded)
}

func TestUploadLink(t *testing.T) {
	link := UploadLink(Record{URL: "http://a.example", Title: "A", Description: "d", Category: "News", Color: "blue"})

	assert.True(t, strings.HasPrefix(link, "/?uploadnew="), "got %q", link)
	records, err := Decode(strings.TrimPrefix(link, "/?uploadnew="))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "News", records[0].Category)
}

func TestDecode_Empty(t *testing.T) {
	records, err := Decode("")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestDecode_Malformed(t *testing.T) {
	_, err := Decode("only|four|fields|here")
	assert.Error(t, err)
}

func TestDecode_CorruptSeparator(t *testing.T) {
	// Cell count frames two records, but the separator cells hold data.
	_, err := Decode("a|b|c|d|e|X|Y|f|g|h|i|j")
	assert.Error(t, err)
}
