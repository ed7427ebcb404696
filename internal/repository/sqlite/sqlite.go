package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/avendel/textamend/internal/repository/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// DB bundles the SQLite connection with its repositories.
type DB struct {
	sql      *sql.DB
	users    *UserRepository
	sessions *SessionRepository
	logs     *LogRepository
}

// New opens a SQLite database at the given path and configures it for
// use. It enables WAL mode and foreign key enforcement.
func New(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	// Foreign keys make session deletion cascade over result slots.
	if _, err := db.ExecContext(context.Background(), "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	db.SetMaxOpenConns(1)

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{
		sql:      db,
		users:    &UserRepository{db: db},
		sessions: &SessionRepository{db: db},
		logs:     &LogRepository{db: db},
	}, nil
}

// Migrate applies all pending schema migrations.
func (d *DB) Migrate(ctx context.Context) error {
	return migrations.Run(ctx, d.sql)
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

// Users returns the user repository.
func (d *DB) Users() *UserRepository { return d.users }

// Sessions returns the session repository.
func (d *DB) Sessions() *SessionRepository { return d.sessions }

// Logs returns the activity log repository.
func (d *DB) Logs() *LogRepository { return d.logs }
