package infra

import (
	"context"
	"fmt"

	"github.com/Vovarama1992/persona_relay/internal/ports"
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		external_id INTEGER UNIQUE NOT NULL,
		name TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_external_id INTEGER NOT NULL,
		sender_kind TEXT NOT NULL,
		content TEXT NOT NULL,
		timestamp TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_history_user ON history (user_external_id, id)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		external_id BIGINT UNIQUE NOT NULL,
		name TEXT NOT NULL,
		created_at TIMESTAMPTZ DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS history (
		id BIGSERIAL PRIMARY KEY,
		user_external_id BIGINT NOT NULL,
		sender_kind TEXT NOT NULL,
		content TEXT NOT NULL,
		timestamp TIMESTAMPTZ DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_history_user ON history (user_external_id, id)`,
}

type schemaRepo struct {
	db *DB
}

func NewSchemaRepo(db *DB) ports.SchemaRepo {
	return &schemaRepo{db: db}
}

func (r *schemaRepo) EnsureSchema(ctx context.Context) error {
	stmts := sqliteSchema
	if r.db.Dialect == Postgres {
		stmts = postgresSchema
	}

	for _, q := range stmts {
		if _, err := r.db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

func (r *schemaRepo) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

func (r *schemaRepo) LatestUsers(ctx context.Context, n int) ([]ports.UserSummary, error) {
	rows, err := r.db.QueryContext(ctx, r.db.Rebind(`
		SELECT external_id, name, created_at
		FROM users
		ORDER BY id DESC
		LIMIT ?
	`), n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ports.UserSummary
	for rows.Next() {
		var u ports.UserSummary
		if err := rows.Scan(&u.TelegramID, &u.Name, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *schemaRepo) CountEntries(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM history`).Scan(&n)
	return n, err
}

func (r *schemaRepo) LatestEntries(ctx context.Context, n int) ([]ports.HistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx, r.db.Rebind(`
		SELECT id, user_external_id, sender_kind, content, timestamp
		FROM history
		ORDER BY id DESC
		LIMIT ?
	`), n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries, err := scanEntries(rows)
	if err != nil {
		return nil, err
	}
	reverse(entries)
	return entries, nil
}
