/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: sqlite.go
Description: SQLite-backed model store. Keeps many trained models in one database file,
keyed by model id, with enough metadata to list them without decoding the blobs.
*/

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/kleascm/ila-classifier/pkg/model"
	_ "modernc.org/sqlite"
)

// Fixed width so trained_at sorts lexically
const timeLayout = "2006-01-02T15:04:05.000000000Z"

const schema = `
CREATE TABLE IF NOT EXISTS models (
	id TEXT PRIMARY KEY,
	class_name TEXT,
	rules INTEGER,
	trained_at TEXT,
	blob BLOB
);`

// SQLiteStore keeps models in a SQLite database
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the database at path
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init models table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Save inserts the snapshot, replacing any model with the same id
func (s *SQLiteStore) Save(ctx context.Context, snap *model.Snapshot) error {
	blob, err := Marshal(snap)
	if err != nil {
		return err
	}

	className := ""
	if snap.Training != nil {
		className = snap.Training.ClassName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO models (id, class_name, rules, trained_at, blob) VALUES (?, ?, ?, ?, ?)",
		snap.ID, className, len(snap.Rules), snap.TrainedAt.UTC().Format(timeLayout), blob)
	if err != nil {
		return fmt.Errorf("failed to save model %s: %w", snap.ID, err)
	}
	return nil
}

// Load returns the model stored under id. An empty id loads the most recently trained model.
func (s *SQLiteStore) Load(ctx context.Context, id string) (*model.Snapshot, error) {
	var row *sql.Row
	if id == "" {
		row = s.db.QueryRowContext(ctx, "SELECT blob FROM models ORDER BY trained_at DESC, rowid DESC LIMIT 1")
	} else {
		row = s.db.QueryRowContext(ctx, "SELECT blob FROM models WHERE id = ?", id)
	}

	var blob []byte
	err := row.Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		if id == "" {
			return nil, fmt.Errorf("%w: store is empty", ErrNotFound)
		}
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read model: %w", err)
	}

	return Unmarshal(blob)
}

// List returns every stored model, newest first
func (s *SQLiteStore) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, class_name, rules, trained_at, length(blob) FROM models ORDER BY trained_at DESC, rowid DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var trainedAt string
		if err := rows.Scan(&e.ID, &e.ClassName, &e.Rules, &trainedAt, &e.Size); err != nil {
			return nil, err
		}
		if t, err := time.Parse(timeLayout, trainedAt); err == nil {
			e.TrainedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Delete removes the model stored under id
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM models WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete model %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
