// Package infratest opens throwaway sqlite databases for tests.
package infratest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Vovarama1992/persona_relay/internal/config"
	"github.com/Vovarama1992/persona_relay/internal/infra"
)

// NewDB returns a migrated sqlite database living in t.TempDir().
func NewDB(t *testing.T) *infra.DB {
	t.Helper()

	ctx := context.Background()
	db, err := infra.Open(ctx, config.DBConfig{
		SQLitePath: filepath.Join(t.TempDir(), "test.db"),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := infra.NewSchemaRepo(db).EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return db
}
