package domain

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Vovarama1992/persona_relay/internal/error_notificator"
	"github.com/Vovarama1992/persona_relay/internal/ports"
)

type historyService struct {
	repo     ports.HistoryRepo
	archiver ports.Archiver // nil: архив выключен
	notifier error_notificator.Notificator
	log      *zap.SugaredLogger
}

func NewHistoryService(
	repo ports.HistoryRepo,
	archiver ports.Archiver,
	n error_notificator.Notificator,
	log *zap.SugaredLogger,
) ports.HistoryService {
	return &historyService{
		repo:     repo,
		archiver: archiver,
		notifier: n,
		log:      log,
	}
}

func (s *historyService) Append(ctx context.Context, telegramID int64, sender ports.SenderKind, content string) {
	id, err := s.repo.Create(ctx, telegramID, sender, content)
	if err != nil {
		s.log.Errorw("[history] append fail", "tg", telegramID, "sender", sender, "err", err)
		s.notify(ctx, err, fmt.Sprintf("Ошибка записи в history: tg=%d sender=%s", telegramID, sender))
		return
	}
	s.log.Debugw("[history] appended", "tg", telegramID, "sender", sender, "id", id)
}

func (s *historyService) Recent(ctx context.Context, telegramID int64, limit int) ([]ports.HistoryEntry, error) {
	if limit <= 0 {
		return nil, ports.ErrNoHistory
	}

	entries, err := s.repo.GetLastN(ctx, telegramID, limit)
	if err != nil {
		s.log.Errorw("[history] recent fail", "tg", telegramID, "err", err)
		return nil, fmt.Errorf("recent history tg=%d: %w", telegramID, err)
	}
	if len(entries) == 0 {
		return nil, ports.ErrNoHistory
	}
	return entries, nil
}

func (s *historyService) List(ctx context.Context, telegramID int64) ([]ports.HistoryEntry, error) {
	entries, err := s.repo.GetAll(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("list history tg=%d: %w", telegramID, err)
	}
	return entries, nil
}

func (s *historyService) Purge(ctx context.Context, telegramID int64) (int64, error) {
	if s.archiver != nil {
		if err := s.archive(ctx, telegramID); err != nil {
			s.log.Errorw("[history] archive before purge fail", "tg", telegramID, "err", err)
			s.notify(ctx, err, fmt.Sprintf("Ошибка архивации истории: tg=%d", telegramID))
			return 0, err
		}
	}

	deleted, err := s.repo.DeleteByUser(ctx, telegramID)
	if err != nil {
		s.log.Errorw("[history] purge fail", "tg", telegramID, "err", err)
		s.notify(ctx, err, fmt.Sprintf("Ошибка очистки истории: tg=%d", telegramID))
		return 0, fmt.Errorf("purge history tg=%d: %w", telegramID, err)
	}

	s.log.Infow("[history] purged", "tg", telegramID, "deleted", deleted)
	return deleted, nil
}

func (s *historyService) archive(ctx context.Context, telegramID int64) error {
	entries, err := s.repo.GetAll(ctx, telegramID)
	if err != nil {
		return fmt.Errorf("read history for archive: %w", err)
	}
	if len(entries) == 0 {
		return nil
	}

	url, err := s.archiver.Archive(ctx, telegramID, entries)
	if err != nil {
		return err
	}
	s.log.Infow("[history] archived", "tg", telegramID, "entries", len(entries), "url", url)
	return nil
}

func (s *historyService) notify(ctx context.Context, err error, details string) {
	if s.notifier == nil {
		return
	}
	if nErr := s.notifier.Notify(ctx, err, details); nErr != nil {
		s.log.Warnw("[history] notify fail", "err", nErr)
	}
}
