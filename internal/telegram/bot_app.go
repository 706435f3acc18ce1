package telegram

import (
	"time"

	"go.uber.org/zap"

	"github.com/Vovarama1992/persona_relay/internal/ai"
	"github.com/Vovarama1992/persona_relay/internal/ports"
	"github.com/Vovarama1992/persona_relay/internal/user"
)

const defaultReplyTimeout = 120 * time.Second

type BotApp struct {
	AiService      ai.Service
	HistoryService ports.HistoryService
	UserService    user.Service

	// AdminID: единственный, кому доступен /purge
	AdminID       int64
	AssistantName string
	ReplyTimeout  time.Duration

	bot Sender
	log *zap.SugaredLogger
}

func NewBotApp(bot Sender, log *zap.SugaredLogger) *BotApp {
	return &BotApp{
		bot:          bot,
		log:          log,
		ReplyTimeout: defaultReplyTimeout,
	}
}
