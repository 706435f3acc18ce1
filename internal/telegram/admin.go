package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	msgPurgeDenied  = "No tienes permiso para usar este comando."
	msgPurgeUsage   = "Uso incorrecto. Por favor, especifica el ID del usuario cuyo historial quieres borrar.\nEjemplo: `/purge 987654321`"
	msgPurgeInvalid = "El ID proporcionado no es válido. Debe ser un número entero.\nEjemplo: `/purge 987654321`"
	msgPurgeDone    = "¡Éxito! Se han borrado %d mensajes del historial del usuario %d."
	msgPurgeFail    = "Ocurrió un error al intentar borrar el historial del usuario %d."
)

// handlePurge: /purge <telegram_id>, только для админа
func (app *BotApp) handlePurge(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From.ID != app.AdminID {
		app.log.Warnw("[admin] purge denied", "tg", msg.From.ID)
		app.reply(msg, msgPurgeDenied)
		return
	}

	args := strings.Fields(msg.CommandArguments())
	if len(args) == 0 {
		app.replyWithMode(msg, msgPurgeUsage, tgbotapi.ModeMarkdown)
		return
	}

	target, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		app.replyWithMode(msg, msgPurgeInvalid, tgbotapi.ModeMarkdown)
		return
	}

	deleted, err := app.HistoryService.Purge(ctx, target)
	if err != nil {
		app.log.Errorw("[admin] purge fail", "target", target, "err", err)
		app.reply(msg, fmt.Sprintf(msgPurgeFail, target))
		return
	}

	app.log.Infow("[admin] purge done", "target", target, "deleted", deleted)
	app.reply(msg, fmt.Sprintf(msgPurgeDone, deleted, target))
}
