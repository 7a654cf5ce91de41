// ABOUTME: Tests for directive rendering into Telegram messages
// ABOUTME: Covers keyboard layout, markdown confirmation, and error notices

package telegram

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkstash/linkstash/internal/engine"
	"github.com/linkstash/linkstash/internal/store"
)

func TestRender_CategoryPicker(t *testing.T) {
	msg := render(42, engine.ShowCategoryPicker{
		URL: "http://a.example",
		Categories: []store.Category{
			{Name: "News", Color: "blue"},
			{Name: "Tech", Color: "green"},
		},
	})

	assert.Contains(t, msg.Text, "http://a.example")

	kb, ok := msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok)
	require.Len(t, kb.InlineKeyboard, 3, "two categories plus the add-new row")

	assert.Equal(t, "News", kb.InlineKeyboard[0][0].Text)
	require.NotNil(t, kb.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, assignData("blue", "News"), *kb.InlineKeyboard[0][0].CallbackData)

	assert.Equal(t, "+", kb.InlineKeyboard[2][0].Text)
	require.NotNil(t, kb.InlineKeyboard[2][0].CallbackData)
	assert.Equal(t, addCategoryData(), *kb.InlineKeyboard[2][0].CallbackData)
}

func TestRender_ColorPicker(t *testing.T) {
	msg := render(42, engine.ShowColorPicker{
		CategoryName: "Recipes",
		Colors:       []string{"red", "blue"},
	})

	assert.Contains(t, msg.Text, "Recipes")

	kb, ok := msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok)
	require.Len(t, kb.InlineKeyboard, 2)
	assert.Equal(t, "red", kb.InlineKeyboard[0][0].Text)
	require.NotNil(t, kb.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, colorData("red"), *kb.InlineKeyboard[0][0].CallbackData)
}

func TestRender_Confirmation(t *testing.T) {
	msg := render(42, engine.Confirmation{
		Message:  "Saved http://a.example to News.",
		DeepLink: "/?uploadnew=abc",
	})

	assert.Equal(t, tgbotapi.ModeMarkdown, msg.ParseMode)
	assert.Contains(t, msg.Text, "/?uploadnew=abc")
}

func TestRender_PromptAndError(t *testing.T) {
	msg := render(42, engine.PromptCategoryName{})
	assert.NotEmpty(t, msg.Text)
	assert.Nil(t, msg.ReplyMarkup)

	msg = render(42, engine.ErrorNotice{Kind: engine.KindNoURLFound, Message: "Please send a valid link."})
	assert.Equal(t, "Please send a valid link.", msg.Text)
}
