package error_notificator

import (
	"context"
	"fmt"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// telegram ограничивает сообщение 4096 символами
const maxMessageRunes = 4000

type Infra struct {
	bot         Sender
	adminChatID int64
	log         *zap.SugaredLogger
}

func NewInfra(bot Sender, adminChatID int64, log *zap.SugaredLogger) *Infra {
	return &Infra{bot: bot, adminChatID: adminChatID, log: log}
}

func (i *Infra) Notify(ctx context.Context, err error, details string) error {
	if i.bot == nil {
		i.log.Warnw("[error_notificator] bot not set", "err", err, "details", details)
		return fmt.Errorf("error notificator: bot not set")
	}

	text := fmt.Sprintf("❗ Ошибка в боте\n\nОшибка: %v\n\nДетали: %s", err, details)
	if utf8.RuneCountInString(text) > maxMessageRunes {
		text = string([]rune(text)[:maxMessageRunes]) + "..."
	}

	if _, sendErr := i.bot.Send(tgbotapi.NewMessage(i.adminChatID, text)); sendErr != nil {
		i.log.Errorw("[error_notificator] send fail", "admin", i.adminChatID, "err", sendErr)
		return sendErr
	}
	return nil
}
