package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	msgGreeting = "¡Hola querido %s! mi nombre es %s soy una influencer generada con AI.\nDime en que puedo servirte..."
	msgHelp     = "/start - Inicia la conversación.\n" +
		"/help - Ayuda y comandos básicos.\n" +
		"texto - Puedes escribirme cualquier consulta y te responderé usando una IA.\n" +
		"Con una descripción y personalidad prearmada para mi comportamiento 😘."
)

func (app *BotApp) handleStart(ctx context.Context, msg *tgbotapi.Message) {
	name := displayName(msg.From)
	app.UserService.Register(ctx, msg.From.ID, name)

	app.log.Infow("[start] greeted", "tg", msg.From.ID)
	app.reply(msg, fmt.Sprintf(msgGreeting, name, app.AssistantName))
}

func (app *BotApp) handleHelp(msg *tgbotapi.Message) {
	app.reply(msg, msgHelp)
}
