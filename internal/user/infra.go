package user

import (
	"context"
	"time"

	"github.com/Vovarama1992/persona_relay/internal/infra"
)

type userInfra struct {
	db *infra.DB
}

func NewInfra(db *infra.DB) Infra {
	return &userInfra{db: db}
}

func (i *userInfra) InsertIfAbsent(
	ctx context.Context,
	telegramID int64,
	name string,
) error {
	_, err := i.db.ExecContext(ctx, i.db.Rebind(`
		INSERT INTO users (external_id, name, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT (external_id) DO NOTHING
	`), telegramID, name, time.Now().UTC())
	return err
}

func (i *userInfra) Get(ctx context.Context, telegramID int64) (*User, error) {
	var u User
	err := i.db.QueryRowContext(ctx, i.db.Rebind(`
		SELECT id, external_id, name, created_at
		FROM users
		WHERE external_id = ?
	`), telegramID).Scan(&u.ID, &u.TelegramID, &u.Name, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
