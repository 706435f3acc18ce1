package infra

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/Vovarama1992/persona_relay/internal/config"
)

type Dialect int

const (
	SQLite Dialect = iota
	Postgres
)

func (d Dialect) String() string {
	if d == Postgres {
		return "postgres"
	}
	return "sqlite"
}

// DB: пул соединений вместе с диалектом SQL
type DB struct {
	*sql.DB
	Dialect Dialect
}

// Open подключается к postgres, если задан DATABASE_URL, иначе к sqlite-файлу.
func Open(ctx context.Context, cfg config.DBConfig) (*DB, error) {
	var (
		db      *sql.DB
		dialect Dialect
		err     error
	)

	if cfg.URL != "" {
		dialect = Postgres
		db, err = sql.Open("postgres", cfg.URL)
	} else {
		dialect = SQLite
		db, err = sql.Open("sqlite", sqliteDSN(cfg.SQLitePath))
		if err == nil {
			// single writer
			db.SetMaxOpenConns(1)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialect, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", dialect, err)
	}

	return &DB{DB: db, Dialect: dialect}, nil
}

func sqliteDSN(path string) string {
	return "file:" + path + "?_pragma=busy_timeout(5000)&_time_format=sqlite"
}

// Rebind переводит плейсхолдеры `?` в `$n` для postgres.
func (d *DB) Rebind(query string) string {
	if d.Dialect != Postgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
