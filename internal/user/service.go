package user

import (
	"context"

	"go.uber.org/zap"
)

type service struct {
	infra Infra
	log   *zap.SugaredLogger
}

func NewService(infra Infra, log *zap.SugaredLogger) Service {
	return &service{infra: infra, log: log}
}

func (s *service) Register(
	ctx context.Context,
	telegramID int64,
	name string,
) {
	if err := s.infra.InsertIfAbsent(ctx, telegramID, name); err != nil {
		s.log.Errorw("[user] register fail", "tg", telegramID, "err", err)
		return
	}
	s.log.Infow("[user] registered or already present", "tg", telegramID, "name", name)
}

func (s *service) Get(ctx context.Context, telegramID int64) (*User, error) {
	return s.infra.Get(ctx, telegramID)
}
