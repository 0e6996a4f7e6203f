package store

import (
	"context"
	"database/sql"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// MemoryDSN opens a private in-memory database. Nothing survives the
// process; the journal only feeds the end-of-session summary.
const MemoryDSN = ":memory:"

// Store holds the SQL driver and provides access to repositories.
type Store struct {
	db  *sql.DB
	drv *entsql.Driver
	seq *sequenceCounter
}

// Open creates a Store on the SQLite database at dsn, applies pragmas
// and creates the event tables.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Each connection to ":memory:" is its own database.
	db.SetMaxOpenConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	ctx := context.Background()
	drv := entsql.OpenDB(dialect.SQLite, db)
	if err := createSchema(ctx, drv); err != nil {
		drv.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	seq, err := newSequenceCounter(ctx, drv)
	if err != nil {
		drv.Close()
		return nil, err
	}

	return &Store{db: db, drv: drv, seq: seq}, nil
}

// OpenMemory opens a Store on a fresh in-memory database.
func OpenMemory() (*Store, error) {
	return Open(MemoryDSN)
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.drv.Close()
}

// EventRepo returns an EventRepo backed by this store.
func (s *Store) EventRepo() EventRepo {
	return &eventRepo{drv: s.drv, seq: s.seq}
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// schema is applied on every Open. The journal is short-lived, so there
// are no migrations.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS level_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL UNIQUE,
		timestamp INTEGER NOT NULL,
		session_id TEXT NOT NULL,
		round INTEGER NOT NULL,
		tier TEXT NOT NULL,
		level INTEGER NOT NULL,
		kind TEXT NOT NULL,
		reason REAL NOT NULL,
		terms TEXT NOT NULL,
		hidden TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS level_events_session ON level_events (session_id, round)`,
	`CREATE TABLE IF NOT EXISTS check_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL UNIQUE,
		timestamp INTEGER NOT NULL,
		session_id TEXT NOT NULL,
		round INTEGER NOT NULL,
		correct INTEGER NOT NULL,
		terms_correct INTEGER NOT NULL,
		terms_total INTEGER NOT NULL,
		kind_correct INTEGER NOT NULL,
		reason_correct INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS check_events_session ON check_events (session_id, round)`,
}

func createSchema(ctx context.Context, drv *entsql.Driver) error {
	for _, stmt := range schema {
		if err := drv.Exec(ctx, stmt, []any{}, nil); err != nil {
			return err
		}
	}
	return nil
}
