package ports

import (
	"context"
	"errors"
	"time"
)

// ErrNoHistory: у пользователя нет ни одной записи в истории.
var ErrNoHistory = errors.New("no history for user")

type SenderKind string

const (
	SenderUser      SenderKind = "user"
	SenderAssistant SenderKind = "assistant"
)

// HistoryEntry: одна реплика диалога
type HistoryEntry struct {
	ID         int64      `json:"id"`
	TelegramID int64      `json:"telegram_id"`
	Sender     SenderKind `json:"sender"`
	Content    string     `json:"content"`
	CreatedAt  time.Time  `json:"timestamp"`
}

// HistoryRepo: append-only лог реплик
type HistoryRepo interface {
	Create(ctx context.Context, telegramID int64, sender SenderKind, content string) (int64, error)

	// GetLastN возвращает последние n записей в хронологическом порядке.
	GetLastN(ctx context.Context, telegramID int64, n int) ([]HistoryEntry, error)
	GetAll(ctx context.Context, telegramID int64) ([]HistoryEntry, error)

	DeleteByUser(ctx context.Context, telegramID int64) (int64, error)
}
