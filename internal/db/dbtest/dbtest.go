// Package dbtest opens migrated SQLite databases for tests.
package dbtest

import (
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/auralis/auralis/internal/db"
)

// DSN returns a file-backed SQLite connection string inside dir.
// WAL and busy_timeout let concurrent writers queue instead of failing.
func DSN(dir string) string {
	return filepath.Join(dir, "auralis-test.db") +
		"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(10000)"
}

// New returns a fresh database with every migration applied.
// It is closed when the test finishes.
func New(t testing.TB) *sqlx.DB {
	t.Helper()

	database, err := db.Init("sqlite", DSN(t.TempDir()))
	if err != nil {
		t.Fatalf("init database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	if err := db.RunMigrations(database.DB, "sqlite"); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	return database
}
