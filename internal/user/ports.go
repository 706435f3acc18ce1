package user

import (
	"context"
	"time"
)

type User struct {
	ID         int64
	TelegramID int64
	Name       string
	CreatedAt  time.Time
}

// Infra: работа с БД
type Infra interface {
	// InsertIfAbsent не трогает уже существующую запись.
	InsertIfAbsent(ctx context.Context, telegramID int64, name string) error
	Get(ctx context.Context, telegramID int64) (*User, error)
}

// Service: бизнес-операции
type Service interface {
	Register(ctx context.Context, telegramID int64, name string)
	Get(ctx context.Context, telegramID int64) (*User, error)
}
