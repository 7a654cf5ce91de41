// ABOUTME: Telegram long-polling front-end delivering normalized events to the engine
// ABOUTME: Handles /start and /export, answers callbacks, and drops redelivered updates

package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/linkstash/linkstash/internal/dedupe"
	"github.com/linkstash/linkstash/internal/engine"
)

const (
	pollTimeoutSeconds = 30

	dedupeTTL     = 10 * time.Minute
	dedupeMaxSize = 4096
)

// Frontend runs the Telegram side of the bot: it decodes updates into engine
// events and renders the returned directives. Handling is concurrent across
// chats; the engine serializes per user.
type Frontend struct {
	bot    *tgbotapi.BotAPI
	engine *engine.Engine
	seen   *dedupe.Cache
	logger *slog.Logger
}

// New connects to the Bot API with the given token.
func New(token string, debug bool, eng *engine.Engine, logger *slog.Logger) (*Frontend, error) {
	if logger == nil {
		logger = slog.Default()
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connecting to Telegram: %w", err)
	}
	bot.Debug = debug

	return &Frontend{
		bot:    bot,
		engine: eng,
		seen:   dedupe.New(dedupeTTL, dedupeMaxSize),
		logger: logger.With("component", "telegram"),
	}, nil
}

// Run long-polls for updates until ctx is cancelled.
func (f *Frontend) Run(ctx context.Context) error {
	f.logger.Info("telegram front-end started", "bot", f.bot.Self.UserName)
	defer f.seen.Close()

	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = pollTimeoutSeconds
	updates := f.bot.GetUpdatesChan(cfg)

	for {
		select {
		case <-ctx.Done():
			f.bot.StopReceivingUpdates()
			return ctx.Err()
		case update := <-updates:
			if f.seen.Seen(strconv.Itoa(update.UpdateID)) {
				continue
			}
			go f.handleUpdate(ctx, update)
		}
	}
}

func (f *Frontend) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.Message != nil:
		f.handleMessage(ctx, update.Message)
	case update.CallbackQuery != nil:
		f.handleCallback(ctx, update.CallbackQuery)
	}
}

func (f *Frontend) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil || msg.Text == "" {
		return
	}
	userID := strconv.FormatInt(msg.From.ID, 10)

	if msg.IsCommand() {
		f.handleCommand(ctx, userID, msg)
		return
	}

	// Plain text: the engine decides whether this is a category name or a
	// URL submission based on the session state.
	dir, err := f.engine.HandleEvent(ctx, userID, engine.TextSubmitted{Text: msg.Text})
	f.reply(msg.Chat.ID, dir, err)
}

func (f *Frontend) handleCommand(ctx context.Context, userID string, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		f.send(tgbotapi.NewMessage(msg.Chat.ID, "Send me a link and I will help you pick a category for it."))
	case "export":
		payload, err := f.engine.Export(ctx, userID)
		if err != nil {
			f.logger.Error("export failed", "user_id", userID, "error", err)
			f.send(tgbotapi.NewMessage(msg.Chat.ID, "Export failed, try again later."))
			return
		}
		if payload == "" {
			f.send(tgbotapi.NewMessage(msg.Chat.ID, "Nothing saved yet. Send me a link first."))
			return
		}
		f.send(tgbotapi.NewMessage(msg.Chat.ID, payload))
	default:
		f.send(tgbotapi.NewMessage(msg.Chat.ID, "I know /start and /export. Or just send a link."))
	}
}

func (f *Frontend) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	// Always answer so the client stops its spinner.
	if _, err := f.bot.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
		f.logger.Warn("answering callback failed", "error", err)
	}

	if cq.Message == nil || cq.From == nil {
		return
	}
	userID := strconv.FormatInt(cq.From.ID, 10)

	ev, err := decodeCallback(cq.Data, cq.Message.Text)
	if err != nil {
		f.logger.Warn("undecodable callback", "user_id", userID, "data", cq.Data, "error", err)
		f.send(tgbotapi.NewMessage(cq.Message.Chat.ID, "That button is no longer valid. Send a link to start over."))
		return
	}

	dir, herr := f.engine.HandleEvent(ctx, userID, ev)
	f.reply(cq.Message.Chat.ID, dir, herr)
}

// reply renders a directive, or a generic failure when the engine reported a
// persistence error.
func (f *Frontend) reply(chatID int64, dir engine.Directive, err error) {
	if err != nil {
		f.logger.Error("engine failure", "chat_id", chatID, "error", err)
		f.send(tgbotapi.NewMessage(chatID, "Something went wrong, your request was not saved. Please try again."))
		return
	}
	f.send(render(chatID, dir))
}

func (f *Frontend) send(msg tgbotapi.MessageConfig) {
	if _, err := f.bot.Send(msg); err != nil {
		f.logger.Error("sending message failed", "chat_id", msg.ChatID, "error", err)
	}
}
