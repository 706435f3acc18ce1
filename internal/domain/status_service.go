package domain

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/Vovarama1992/persona_relay/internal/ports"
)

const (
	statusUsers   = 5
	statusEntries = 10
	previewRunes  = 70
)

type StatusService struct {
	repo ports.SchemaRepo
	log  *zap.SugaredLogger
}

func NewStatusService(repo ports.SchemaRepo, log *zap.SugaredLogger) *StatusService {
	return &StatusService{repo: repo, log: log}
}

// EnsureSchema создаёт таблицы; ошибка только логируется, старт не прерывается.
func (s *StatusService) EnsureSchema(ctx context.Context) {
	if err := s.repo.EnsureSchema(ctx); err != nil {
		s.log.Errorw("[schema] setup fail", "err", err)
		return
	}
	s.log.Infow("[schema] tables users, history verified")
}

func (s *StatusService) Report(ctx context.Context) (*ports.StatusReport, error) {
	var (
		r   ports.StatusReport
		err error
	)

	if r.UserCount, err = s.repo.CountUsers(ctx); err != nil {
		return nil, err
	}
	if r.RecentUsers, err = s.repo.LatestUsers(ctx, statusUsers); err != nil {
		return nil, err
	}
	if r.EntryCount, err = s.repo.CountEntries(ctx); err != nil {
		return nil, err
	}
	if r.RecentEntries, err = s.repo.LatestEntries(ctx, statusEntries); err != nil {
		return nil, err
	}

	for i := range r.RecentEntries {
		r.RecentEntries[i].Content = Preview(r.RecentEntries[i].Content)
	}
	return &r, nil
}

// LogStatus пишет сводку по базе в лог. Никогда не падает.
func (s *StatusService) LogStatus(ctx context.Context) {
	s.log.Info("--- database status ---")
	defer s.log.Info("--- end of report ---")

	r, err := s.Report(ctx)
	if err != nil {
		s.log.Errorw("[schema] status read fail", "err", err)
		return
	}

	if len(r.RecentUsers) == 0 {
		s.log.Info("-> users: none registered")
	} else {
		s.log.Infof("-> %s users total, latest %d:", humanize.Comma(r.UserCount), len(r.RecentUsers))
		for _, u := range r.RecentUsers {
			s.log.Infof("  - ID: %d, name: %s, joined %s", u.TelegramID, u.Name, humanize.Time(u.CreatedAt))
		}
	}

	if len(r.RecentEntries) == 0 {
		s.log.Info("-> history: no messages")
		return
	}
	s.log.Infof("-> %s messages total, latest %d:", humanize.Comma(r.EntryCount), len(r.RecentEntries))
	for _, e := range r.RecentEntries {
		s.log.Infof("  - [%s] for (%d) %s: %s", e.Sender, e.TelegramID, e.CreatedAt.Format(time.DateTime), e.Content)
	}
}

// Preview обрезает текст до 70 символов и добавляет "...".
func Preview(content string) string {
	if utf8.RuneCountInString(content) <= previewRunes {
		return content
	}
	return string([]rune(content)[:previewRunes]) + "..."
}
