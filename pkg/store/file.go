/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: file.go
Description: File-backed model store. Each file holds exactly one snapshot; writes go to a
temporary file in the same directory and are renamed into place.
*/

package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kleascm/ila-classifier/pkg/model"
)

// FileStore keeps a single model in one file
type FileStore struct {
	Path string
}

// NewFileStore creates a file store for path
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Save writes the snapshot, replacing any previous model
func (fs *FileStore) Save(ctx context.Context, snap *model.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(fs.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create model directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(fs.Path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create model file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := Encode(tmp, snap); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write model file: %w", err)
	}
	if err := os.Rename(tmp.Name(), fs.Path); err != nil {
		return fmt.Errorf("failed to move model file into place: %w", err)
	}
	return nil
}

// Load reads the snapshot. The id is ignored since the file holds one model.
func (fs *FileStore) Load(ctx context.Context, id string) (*model.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(fs.Path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, fs.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open model file: %w", err)
	}
	defer f.Close()

	snap, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fs.Path, err)
	}
	return snap, nil
}

// Close is a no-op
func (fs *FileStore) Close() error {
	return nil
}
