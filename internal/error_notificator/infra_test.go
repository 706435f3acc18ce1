package error_notificator

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSender struct {
	sent []tgbotapi.MessageConfig
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if m, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, m)
	}
	return tgbotapi.Message{}, f.err
}

func TestNotify_SendsToAdminChat(t *testing.T) {
	bot := &fakeSender{}
	svc := NewService(NewInfra(bot, 555, zap.NewNop().Sugar()))

	err := svc.Notify(context.Background(), errors.New("boom"), "tg=1")
	require.NoError(t, err)
	require.Len(t, bot.sent, 1)
	assert.Equal(t, int64(555), bot.sent[0].ChatID)
	assert.Contains(t, bot.sent[0].Text, "boom")
	assert.Contains(t, bot.sent[0].Text, "tg=1")
}

func TestNotify_TruncatesLongDetails(t *testing.T) {
	bot := &fakeSender{}
	n := NewInfra(bot, 1, zap.NewNop().Sugar())

	require.NoError(t, n.Notify(context.Background(), errors.New("x"), strings.Repeat("é", 10000)))
	require.Len(t, bot.sent, 1)
	assert.LessOrEqual(t, utf8.RuneCountInString(bot.sent[0].Text), maxMessageRunes+3)
}

func TestNotify_SendError(t *testing.T) {
	bot := &fakeSender{err: errors.New("network")}
	n := NewInfra(bot, 1, zap.NewNop().Sugar())

	assert.Error(t, n.Notify(context.Background(), errors.New("x"), ""))
}

func TestNotify_NoBot(t *testing.T) {
	n := NewInfra(nil, 1, zap.NewNop().Sugar())
	assert.Error(t, n.Notify(context.Background(), errors.New("x"), ""))
}
