package sqlite_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/avendel/textamend/internal/domain"
	"github.com/avendel/textamend/internal/repository/sqlite"
)

// Verify at compile time that the repositories satisfy their interfaces.
var (
	_ domain.UserRepository    = (*sqlite.UserRepository)(nil)
	_ domain.SessionRepository = (*sqlite.SessionRepository)(nil)
	_ domain.LogRepository     = (*sqlite.LogRepository)(nil)
)

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestNew(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer db.Close()

	// Verify the file was created.
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Fatal("database file was not created")
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	db := newTestDB(t)

	// A second run must be a no-op, not an error.
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}
}
