package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Vovarama1992/persona_relay/internal/ai"
)

func (app *BotApp) handleText(ctx context.Context, msg *tgbotapi.Message) {
	tgID := msg.From.ID

	if msg.Text == "" {
		app.log.Infow("[text] non-text message ignored", "tg", tgID)
		return
	}

	app.log.Infow("[text] start", "tg", tgID)

	// === 0. индикатор "печатает…" ===
	if _, err := app.bot.Request(tgbotapi.NewChatAction(msg.Chat.ID, tgbotapi.ChatTyping)); err != nil {
		app.log.Debugw("[text] chat action fail", "tg", tgID, "err", err)
	}

	ctx, cancel := context.WithTimeout(ctx, app.ReplyTimeout)
	defer cancel()

	// === 1. модель ===
	reply, ok := app.AiService.GetReply(ctx, ai.Inbound{
		TelegramID:  tgID,
		DisplayName: displayName(msg.From),
		Text:        msg.Text,
	})
	if !ok {
		return
	}

	// === 2. ответ ===
	app.reply(msg, reply)
	app.log.Infow("[text] done", "tg", tgID)
}
