package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/san-kum/driftnet/internal/field"
)

const themeKey = "theme"

// Store persists user preferences in a sqlite database.
type Store struct {
	db       *sql.DB
	fallback field.Mode
}

// Open opens or creates the database at path. fallback is returned by Theme
// until a mode has been saved.
func Open(ctx context.Context, path string, fallback field.Mode) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && path != ":memory:" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	_, err = db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS preferences (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at DATETIME NOT NULL
		)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create preferences table: %w", err)
	}

	return &Store{db: db, fallback: fallback}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Theme returns the saved mode, or the fallback when none is stored.
func (s *Store) Theme(ctx context.Context) (field.Mode, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM preferences WHERE key = ?`, themeKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return s.fallback, nil
	}
	if err != nil {
		return s.fallback, fmt.Errorf("read theme: %w", err)
	}
	return field.ParseMode(value)
}

func (s *Store) SetTheme(ctx context.Context, mode field.Mode) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		themeKey, mode.String(), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}

// Preference is a stored key/value row.
type Preference struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

// List returns every stored preference ordered by key.
func (s *Store) List(ctx context.Context) ([]Preference, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value, updated_at FROM preferences ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	prefs := make([]Preference, 0)
	for rows.Next() {
		var p Preference
		if err := rows.Scan(&p.Key, &p.Value, &p.UpdatedAt); err != nil {
			return nil, err
		}
		prefs = append(prefs, p)
	}
	return prefs, rows.Err()
}
