package infra

import (
	"context"
	"database/sql"
	"time"

	"github.com/Vovarama1992/persona_relay/internal/ports"
)

type historyRepo struct {
	db *DB
}

func NewHistoryRepo(db *DB) ports.HistoryRepo {
	return &historyRepo{db: db}
}

func (r *historyRepo) Create(ctx context.Context, telegramID int64, sender ports.SenderKind, content string) (int64, error) {
	q := r.db.Rebind(`
		INSERT INTO history (user_external_id, sender_kind, content, timestamp)
		VALUES (?, ?, ?, ?)
	`)
	now := time.Now().UTC()

	if r.db.Dialect == Postgres {
		var id int64
		err := r.db.QueryRowContext(ctx, q+" RETURNING id", telegramID, string(sender), content, now).Scan(&id)
		return id, err
	}

	res, err := r.db.ExecContext(ctx, q, telegramID, string(sender), content, now)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *historyRepo) GetLastN(ctx context.Context, telegramID int64, n int) ([]ports.HistoryEntry, error) {
	// id монотонный, поэтому одинаковые timestamp не ломают порядок
	rows, err := r.db.QueryContext(ctx, r.db.Rebind(`
		SELECT id, user_external_id, sender_kind, content, timestamp
		FROM history
		WHERE user_external_id = ?
		ORDER BY id DESC
		LIMIT ?
	`), telegramID, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries, err := scanEntries(rows)
	if err != nil {
		return nil, err
	}

	// хронологический порядок
	reverse(entries)
	return entries, nil
}

func (r *historyRepo) GetAll(ctx context.Context, telegramID int64) ([]ports.HistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx, r.db.Rebind(`
		SELECT id, user_external_id, sender_kind, content, timestamp
		FROM history
		WHERE user_external_id = ?
		ORDER BY id ASC
	`), telegramID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

func (r *historyRepo) DeleteByUser(ctx context.Context, telegramID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`
		DELETE FROM history
		WHERE user_external_id = ?
	`), telegramID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanEntries(rows *sql.Rows) ([]ports.HistoryEntry, error) {
	var entries []ports.HistoryEntry
	for rows.Next() {
		var (
			e      ports.HistoryEntry
			sender string
		)
		if err := rows.Scan(&e.ID, &e.TelegramID, &sender, &e.Content, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Sender = ports.SenderKind(sender)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func reverse(entries []ports.HistoryEntry) {
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
}
