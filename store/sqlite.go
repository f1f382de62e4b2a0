package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite" // SQLite driver
)

const propertiesSchema = `CREATE TABLE IF NOT EXISTS properties (
	key   TEXT NOT NULL UNIQUE ON CONFLICT REPLACE,
	value TEXT NOT NULL
);`

// SQLite keeps the method in a two-column properties table, one row per key.
type SQLite struct {
	db      *sql.DB
	ownedDB bool
}

var _ Store = (*SQLite)(nil)

// OpenSQLite opens (or creates) the database at path and ensures the
// properties table exists.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	s, err := NewSQLite(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	s.ownedDB = true
	return s, nil
}

// NewSQLite uses an existing handle; Close leaves it open.
func NewSQLite(ctx context.Context, db *sql.DB) (*SQLite, error) {
	if _, err := db.ExecContext(ctx, propertiesSchema); err != nil {
		return nil, fmt.Errorf("failed to create properties table: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Load(ctx context.Context) (string, bool, error) {
	var v string
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM properties WHERE key = ?;", Key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", Key, err)
	}
	return v, true, nil
}

func (s *SQLite) Save(ctx context.Context, name string) error {
	if _, err := s.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO properties (key, value) VALUES (?, ?);", Key, name); err != nil {
		return fmt.Errorf("failed to write %s: %w", Key, err)
	}
	return nil
}

func (s *SQLite) Close(context.Context) error {
	if s.ownedDB {
		return s.db.Close()
	}
	return nil
}
