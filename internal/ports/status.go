package ports

import (
	"context"
	"time"
)

type UserSummary struct {
	TelegramID int64     `json:"telegram_id"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
}

type StatusReport struct {
	UserCount     int64          `json:"user_count"`
	RecentUsers   []UserSummary  `json:"recent_users"`
	EntryCount    int64          `json:"entry_count"`
	RecentEntries []HistoryEntry `json:"recent_entries"`
}

// SchemaRepo: создание таблиц и диагностика их содержимого
type SchemaRepo interface {
	EnsureSchema(ctx context.Context) error

	CountUsers(ctx context.Context) (int64, error)
	LatestUsers(ctx context.Context, n int) ([]UserSummary, error)
	CountEntries(ctx context.Context) (int64, error)

	// LatestEntries: последние n записей всех пользователей, от старых к новым.
	LatestEntries(ctx context.Context, n int) ([]HistoryEntry, error)
}
