// Package history keeps an optional sqlite-backed audit log of solve
// requests. Only outcomes are recorded (dimensions, status, optimal value,
// timing); DP state never leaves a solve call.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS solves (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at TEXT NOT NULL,
	capacity INTEGER NOT NULL,
	item_count INTEGER NOT NULL,
	status TEXT NOT NULL,
	optimal_value INTEGER NOT NULL,
	selected_count INTEGER NOT NULL,
	duration_ms INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_solves_created_at ON solves(created_at);
`

// Entry is one recorded solve outcome. Status is "ok" or the error code the
// API reported to the caller.
type Entry struct {
	ID            int64     `json:"id"`
	CreatedAt     time.Time `json:"createdAt"`
	Capacity      int       `json:"capacity"`
	ItemCount     int       `json:"itemCount"`
	Status        string    `json:"status"`
	OptimalValue  int       `json:"optimalValue"`
	SelectedCount int       `json:"selectedCount"`
	DurationMs    int64     `json:"durationMs"`
}

// Store records solve outcomes in a sqlite database.
type Store struct {
	db *sql.DB
}

// Open creates or opens the history database at path and applies the schema.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	db.SetMaxOpenConns(1)
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=3000;",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply pragma: %w", err)
		}
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts one solve outcome.
func (s *Store) Record(ctx context.Context, entry Entry) error {
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO solves (created_at, capacity, item_count, status, optimal_value, selected_count, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		createdAt.Format(time.RFC3339Nano),
		entry.Capacity,
		entry.ItemCount,
		entry.Status,
		entry.OptimalValue,
		entry.SelectedCount,
		entry.DurationMs,
	)
	if err != nil {
		return fmt.Errorf("record solve: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, capacity, item_count, status, optimal_value, selected_count, duration_ms
		FROM solves
		ORDER BY id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0, limit)
	for rows.Next() {
		var entry Entry
		var createdAt string
		if err := rows.Scan(&entry.ID, &createdAt, &entry.Capacity, &entry.ItemCount,
			&entry.Status, &entry.OptimalValue, &entry.SelectedCount, &entry.DurationMs); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			entry.CreatedAt = ts
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history rows: %w", err)
	}

	return entries, nil
}
