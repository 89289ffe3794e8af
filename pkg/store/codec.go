/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: codec.go
Description: Binary codec for model snapshots. Writes a short magic tag followed by a gob
encoded snapshot, and rejects blobs that do not carry the tag.
*/

package store

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"io"

	"github.com/kleascm/ila-classifier/pkg/model"
)

var magic = []byte("ILAM")

// ErrBadMagic is returned when a blob is not a model snapshot
var ErrBadMagic = errors.New("not an ILA model blob")

// Encode writes a snapshot to w
func Encode(w io.Writer, snap *model.Snapshot) error {
	if snap == nil {
		return fmt.Errorf("nil snapshot")
	}
	if _, err := w.Write(magic); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := gob.NewEncoder(w).Encode(snap); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return nil
}

// Decode reads a snapshot from r
func Decode(r io.Reader) (*model.Snapshot, error) {
	header := make([]byte, len(magic))
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadMagic, err)
	}
	if !bytes.Equal(header, magic) {
		return nil, ErrBadMagic
	}

	snap := &model.Snapshot{}
	if err := gob.NewDecoder(r).Decode(snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return snap, nil
}

// Marshal encodes a snapshot into a byte slice
func Marshal(snap *model.Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, snap); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a snapshot from a byte slice
func Unmarshal(data []byte) (*model.Snapshot, error) {
	return Decode(bytes.NewReader(data))
}
