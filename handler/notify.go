package handler

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/rs/zerolog/log"
)

// Severity classifies a notification for display.
type Severity string

const (
	SeverityInfo  Severity = "info"
	SeverityWarn  Severity = "warn"
	SeverityError Severity = "error"
)

// Notifier is the toast sink: every terminal outcome produces exactly one
// notification. Fire-and-forget; callers never read a result.
type Notifier interface {
	Notify(ctx context.Context, chatID int64, severity Severity, summary, detail string)
}

// Navigator routes the user onward after a flow completes, success or not.
type Navigator interface {
	GoTo(ctx context.Context, chatID int64, route string)
}

var severityPrefix = map[Severity]string{
	SeverityInfo:  "✅", // check mark
	SeverityWarn:  "⚠️",
	SeverityError: "❌",
}

// TelegramNotifier renders notifications as bot messages.
type TelegramNotifier struct {
	b *bot.Bot
}

func NewTelegramNotifier(b *bot.Bot) *TelegramNotifier {
	return &TelegramNotifier{b: b}
}

func (n *TelegramNotifier) Notify(ctx context.Context, chatID int64, severity Severity, summary, detail string) {
	text := severityPrefix[severity] + " " + summary
	if detail != "" {
		text += "\n" + detail
	}
	_, err := n.b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: text})
	if err != nil {
		log.Error().Err(err).Int64("chat_id", chatID).Msg("error sending notification")
	}
}
