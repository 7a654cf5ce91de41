// ABOUTME: Maps engine render directives onto Telegram messages and inline keyboards
// ABOUTME: One presentation per directive; the engine stays transport-agnostic

package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/linkstash/linkstash/internal/engine"
)

// render builds the reply for one directive.
func render(chatID int64, dir engine.Directive) tgbotapi.MessageConfig {
	switch dir := dir.(type) {
	case engine.ShowCategoryPicker:
		msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("You sent the link:\n%s\n\nChoose a category:", dir.URL))
		msg.ReplyMarkup = categoryKeyboard(dir)
		return msg

	case engine.PromptCategoryName:
		return tgbotapi.NewMessage(chatID, "Enter a name for the new category:")

	case engine.ShowColorPicker:
		msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("Choose a color for %q:", dir.CategoryName))
		msg.ReplyMarkup = colorKeyboard(dir.Colors)
		return msg

	case engine.Confirmation:
		msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("%s\n[Open upload](%s)", dir.Message, dir.DeepLink))
		msg.ParseMode = tgbotapi.ModeMarkdown
		return msg

	case engine.ErrorNotice:
		return tgbotapi.NewMessage(chatID, dir.Message)

	default:
		return tgbotapi.NewMessage(chatID, "Something went wrong, send a link to start over.")
	}
}

// categoryKeyboard lays out one button per category plus the add-new row.
func categoryKeyboard(dir engine.ShowCategoryPicker) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, cat := range dir.Categories {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(cat.Name, assignData(cat.Color, cat.Name)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("+", addCategoryData()),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// colorKeyboard lays out one button per palette color.
func colorKeyboard(colors []string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, color := range colors {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(color, colorData(color)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
