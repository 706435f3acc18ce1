package ports

import (
	"context"
	"io"
)

// Низкоуровневый клиент к S3
type S3Client interface {
	PutObject(ctx context.Context, key string, r io.Reader, size int64, contentType string) (publicURL string, err error)
}

// Archiver сохраняет снимок истории перед удалением.
type Archiver interface {
	Archive(ctx context.Context, telegramID int64, entries []HistoryEntry) (string, error)
}
