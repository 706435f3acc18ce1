package domain

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/Vovarama1992/persona_relay/internal/ports"
)

type archiveService struct {
	client ports.S3Client
}

func NewArchiveService(client ports.S3Client) ports.Archiver {
	return &archiveService{client: client}
}

type archiveSnapshot struct {
	TelegramID int64                `json:"telegram_id"`
	ArchivedAt time.Time            `json:"archived_at"`
	Entries    []ports.HistoryEntry `json:"entries"`
}

// ObjectKey: путь в бакете
func ObjectKey(telegramID int64, now time.Time) string {
	return fmt.Sprintf("history/%d/%s-%s.json", telegramID, now.Format("2006-01-02"), uuid.NewString())
}

func (s *archiveService) Archive(ctx context.Context, telegramID int64, entries []ports.HistoryEntry) (string, error) {
	now := time.Now().UTC()

	data, err := json.Marshal(archiveSnapshot{
		TelegramID: telegramID,
		ArchivedAt: now,
		Entries:    entries,
	})
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}

	return s.client.PutObject(ctx, ObjectKey(telegramID, now), bytes.NewReader(data), int64(len(data)), "application/json")
}
