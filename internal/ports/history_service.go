package ports

import "context"

type HistoryService interface {
	// Append never fails from the caller's point of view: a lost write is logged.
	Append(ctx context.Context, telegramID int64, sender SenderKind, content string)

	// Recent returns ErrNoHistory when the user has no entries.
	Recent(ctx context.Context, telegramID int64, limit int) ([]HistoryEntry, error)
	List(ctx context.Context, telegramID int64) ([]HistoryEntry, error)

	Purge(ctx context.Context, telegramID int64) (int64, error)
}
