package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/meur/pokeforge/internal/pokeapi"
)

// FetchRecord is one journaled upstream request
type FetchRecord struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	URL        string    `json:"url"`
	Status     int       `json:"status"`
	DurationMs int64     `json:"duration_ms"`
	Error      string    `json:"error,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Store is the fetch journal. It only records what the upstream client
// did; nothing here is ever read back into the views.
type Store struct {
	db *sql.DB
}

// New creates a new Store with SQLite
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate runs database migrations
func (s *Store) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS fetches (
			id TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			url TEXT NOT NULL,
			status INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			error TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_fetches_kind ON fetches(kind)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}

// RecordFetch stores one upstream request outcome
func (s *Store) RecordFetch(ev pokeapi.FetchEvent) (*FetchRecord, error) {
	rec := &FetchRecord{
		ID:         uuid.New().String(),
		Kind:       ev.Kind,
		URL:        ev.URL,
		Status:     ev.Status,
		DurationMs: ev.Duration.Milliseconds(),
		CreatedAt:  time.Now().UTC(),
	}
	var errStr sql.NullString
	if ev.Err != nil {
		rec.Error = ev.Err.Error()
		errStr = sql.NullString{String: rec.Error, Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO fetches (id, kind, url, status, duration_ms, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.Kind, rec.URL, rec.Status, rec.DurationMs, errStr, rec.CreatedAt)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// RecentFetches returns the newest journal entries first
func (s *Store) RecentFetches(limit int) ([]FetchRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`
		SELECT id, kind, url, status, duration_ms, error, created_at
		FROM fetches ORDER BY rowid DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []FetchRecord{}
	for rows.Next() {
		var r FetchRecord
		var errStr sql.NullString
		if err := rows.Scan(&r.ID, &r.Kind, &r.URL, &r.Status, &r.DurationMs, &errStr, &r.CreatedAt); err != nil {
			return nil, err
		}
		r.Error = errStr.String
		records = append(records, r)
	}
	return records, rows.Err()
}
