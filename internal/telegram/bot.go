package telegram

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// лимит Telegram на длину одного сообщения
const maxMessageRunes = 4096

// Poll: long polling до отмены ctx
func (app *BotApp) Poll(ctx context.Context, api *tgbotapi.BotAPI) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30

	updates := api.GetUpdatesChan(u)
	app.log.Infow("[bot_loop] polling started", "username", api.Self.UserName)

	go func() {
		<-ctx.Done()
		api.StopReceivingUpdates()
	}()

	app.Run(ctx, updates)
}

// Run обрабатывает апдейты строго по одному.
func (app *BotApp) Run(ctx context.Context, updates <-chan tgbotapi.Update) {
	for {
		select {
		case <-ctx.Done():
			app.log.Infow("[bot_loop] context cancelled, stopping")
			return

		case update, ok := <-updates:
			if !ok {
				app.log.Infow("[bot_loop] updates channel closed")
				return
			}
			app.dispatchUpdate(ctx, update)
		}
	}
}

func (app *BotApp) dispatchUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil || msg.Chat == nil {
		return
	}

	app.log.Debugw("[bot_touch]", "fromTG", msg.From.ID, "updateID", update.UpdateID)

	if msg.IsCommand() {
		app.handleCommand(ctx, msg)
		return
	}

	// "/что-то" без сущности bot_command тоже не отдаём модели
	if strings.HasPrefix(msg.Text, "/") {
		app.log.Infow("[bot_loop] slash text ignored", "tg", msg.From.ID)
		return
	}

	app.handleText(ctx, msg)
}

func (app *BotApp) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		app.handleStart(ctx, msg)
	case "help":
		app.handleHelp(msg)
	case "purge":
		app.handlePurge(ctx, msg)
	default:
		app.log.Infow("[bot_loop] unknown command ignored", "tg", msg.From.ID, "command", msg.Command())
	}
}

// reply отвечает цитатой на msg, длинный текст режется на части
func (app *BotApp) reply(msg *tgbotapi.Message, text string) {
	app.replyWithMode(msg, text, "")
}

func (app *BotApp) replyWithMode(msg *tgbotapi.Message, text, parseMode string) {
	for i, part := range splitMessage(text, maxMessageRunes) {
		out := tgbotapi.NewMessage(msg.Chat.ID, part)
		out.ParseMode = parseMode
		if i == 0 {
			out.ReplyToMessageID = msg.MessageID
		}
		if _, err := app.bot.Send(out); err != nil {
			app.log.Errorw("[bot_loop] send fail", "chat", msg.Chat.ID, "err", err)
			return
		}
	}
}

func splitMessage(text string, limit int) []string {
	runes := []rune(text)
	if len(runes) <= limit {
		return []string{text}
	}

	var parts []string
	for len(runes) > limit {
		cut := limit
		// режем по последнему переводу строки, если он не слишком близко к началу
		for i := limit - 1; i > limit/2; i-- {
			if runes[i] == '\n' {
				cut = i + 1
				break
			}
		}
		parts = append(parts, string(runes[:cut]))
		runes = runes[cut:]
	}
	if len(runes) > 0 {
		parts = append(parts, string(runes))
	}
	return parts
}

func displayName(u *tgbotapi.User) string {
	switch {
	case u.FirstName != "":
		return u.FirstName
	case u.UserName != "":
		return u.UserName
	}
	return "Usuario"
}
