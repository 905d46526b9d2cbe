// Package cache persists raw event data in a SQLite-backed, append-only
// keyed store. Each entry pairs an event's payload with the settings
// snapshot it was acquired under; entries are never rewritten in place.
package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"gwprep/internal/event"
	"gwprep/internal/logging"
)

// ErrNotFound indicates the requested event key has no cached entry.
var ErrNotFound = errors.New("event not found in cache")

// EventStore is a keyed store of raw event data. The store assumes a
// single writer; each append runs in its own transaction so individual
// writes stay atomic.
type EventStore struct {
	db     *sql.DB
	mu     sync.Mutex
	dbPath string
	log    *zap.Logger
}

// Open initializes the event store at the given path, creating the
// database and schema if needed.
func Open(path string) (*EventStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &EventStore{db: db, dbPath: path, log: logging.Get(logging.CategoryCache)}
	if err := store.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *EventStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS events (
		key TEXT PRIMARY KEY,
		settings TEXT NOT NULL,
		strain BLOB NOT NULL,
		psd BLOB NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Lookup fetches the payload stored under key. It returns ErrNotFound on
// a miss and an error when the stored settings snapshot is incompatible
// with the requested settings.
func (s *EventStore) Lookup(ctx context.Context, key string, want event.Settings) (*event.Data, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var settingsJSON string
	var strainJSON, psdJSON []byte
	row := s.db.QueryRowContext(ctx,
		`SELECT settings, strain, psd FROM events WHERE key = ?`, key)
	if err := row.Scan(&settingsJSON, &strainJSON, &psdJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read event %s: %w", key, err)
	}

	var stored event.Settings
	if err := json.Unmarshal([]byte(settingsJSON), &stored); err != nil {
		return nil, fmt.Errorf("failed to decode settings for event %s: %w", key, err)
	}
	if !stored.Compatible(want) {
		return nil, fmt.Errorf("cached settings for event %s do not match the requested settings", key)
	}

	data := &event.Data{}
	if err := json.Unmarshal(strainJSON, &data.Strain); err != nil {
		return nil, fmt.Errorf("failed to decode strain for event %s: %w", key, err)
	}
	if err := json.Unmarshal(psdJSON, &data.PSD); err != nil {
		return nil, fmt.Errorf("failed to decode psd for event %s: %w", key, err)
	}

	s.log.Debug("cache hit", zap.String("event", key), zap.String("path", s.dbPath))
	return data, nil
}

// Append stores a fresh event payload under key. Existing entries are
// left untouched: the store only ever grows.
func (s *EventStore) Append(ctx context.Context, key string, data *event.Data, settings event.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	settingsJSON, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	strainJSON, err := json.Marshal(data.Strain)
	if err != nil {
		return fmt.Errorf("failed to encode strain: %w", err)
	}
	psdJSON, err := json.Marshal(data.PSD)
	if err != nil {
		return fmt.Errorf("failed to encode psd: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO events (key, settings, strain, psd) VALUES (?, ?, ?, ?)`,
		key, string(settingsJSON), strainJSON, psdJSON)
	if err != nil {
		return fmt.Errorf("failed to append event %s: %w", key, err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		s.log.Warn("event already cached, append ignored", zap.String("event", key))
		return nil
	}
	s.log.Info("event cached", zap.String("event", key), zap.String("path", s.dbPath))
	return nil
}

// Keys lists every cached event key in insertion order.
func (s *EventStore) Keys(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx, `SELECT key FROM events ORDER BY created_at, key`)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

// Close releases the underlying database handle.
func (s *EventStore) Close() error {
	return s.db.Close()
}
