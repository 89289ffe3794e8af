/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: store.go
Description: Model store abstraction. Stores persist model snapshots and restore them by
identifier; the file store keeps one model per file and the SQLite store keeps many.
*/

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kleascm/ila-classifier/pkg/model"
)

// ErrNotFound is returned when no snapshot matches the requested id
var ErrNotFound = errors.New("model not found")

// Store persists model snapshots
type Store interface {
	Save(ctx context.Context, snap *model.Snapshot) error
	Load(ctx context.Context, id string) (*model.Snapshot, error)
	Close() error
}

// Entry describes a stored model without loading it
type Entry struct {
	ID        string    `json:"id"`
	ClassName string    `json:"class_name"`
	Rules     int       `json:"rules"`
	TrainedAt time.Time `json:"trained_at"`
	Size      int       `json:"size"`
}

// Kind names a store implementation
type Kind string

const (
	KindFile   Kind = "file"
	KindSQLite Kind = "sqlite"
)

// Open returns the store of the given kind rooted at path
func Open(kind Kind, path string) (Store, error) {
	switch kind {
	case KindFile, "":
		return NewFileStore(path), nil
	case KindSQLite:
		return NewSQLiteStore(path)
	default:
		return nil, fmt.Errorf("unsupported store: %s", kind)
	}
}

// SaveModel snapshots m into s
func SaveModel(ctx context.Context, s Store, m *model.Model) error {
	if !m.Fitted() {
		return model.ErrNotFitted
	}
	return s.Save(ctx, m.Snapshot())
}

// LoadModel restores the model stored under id
func LoadModel(ctx context.Context, s Store, id string) (*model.Model, error) {
	snap, err := s.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return model.FromSnapshot(snap)
}
