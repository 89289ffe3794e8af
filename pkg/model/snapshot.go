/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: snapshot.go
Description: Plain-value snapshot of a trained model for persistence. Carries an explicit
format version so stores can reject snapshots written by incompatible releases.
*/

package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/kleascm/ila-classifier/pkg/dataset"
	"github.com/kleascm/ila-classifier/pkg/ila"
)

// SnapshotVersion is the current snapshot format
const SnapshotVersion = 1

// ErrSnapshotVersion is returned when restoring a snapshot of another format version
var ErrSnapshotVersion = errors.New("unsupported snapshot version")

// Snapshot is everything needed to restore a trained model
type Snapshot struct {
	Version   int
	ID        string
	TrainedAt time.Time
	Rules     [][]int
	Training  *dataset.Encoded
	Majority  int
	Fitted    bool
}

// Snapshot captures the model state
func (m *Model) Snapshot() *Snapshot {
	rules := make([][]int, len(m.rules))
	for i, r := range m.rules {
		rules[i] = r.Clone()
	}
	return &Snapshot{
		Version:   SnapshotVersion,
		ID:        m.id,
		TrainedAt: m.trainedAt,
		Rules:     rules,
		Training:  m.training,
		Majority:  m.majority,
		Fitted:    m.fitted,
	}
}

// Restore replaces the model state with a snapshot
func (m *Model) Restore(s *Snapshot) error {
	if s == nil {
		return fmt.Errorf("nil snapshot")
	}
	if s.Version != SnapshotVersion {
		return fmt.Errorf("%w: %d (want %d)", ErrSnapshotVersion, s.Version, SnapshotVersion)
	}
	if s.Fitted && s.Training == nil {
		return fmt.Errorf("snapshot %s is fitted but has no training encoding", s.ID)
	}

	if s.Training != nil {
		if err := s.Training.Validate(); err != nil {
			return fmt.Errorf("invalid snapshot %s: %w", s.ID, err)
		}
		width := s.Training.NumAttributes() + 1
		for i, r := range s.Rules {
			if len(r) != width {
				return fmt.Errorf("invalid snapshot %s: rule %d has %d positions, want %d", s.ID, i+1, len(r), width)
			}
		}
	}

	rules := make([]ila.Rule, len(s.Rules))
	for i, r := range s.Rules {
		rules[i] = append(ila.Rule(nil), r...)
	}

	m.id = s.ID
	m.trainedAt = s.TrainedAt
	m.rules = rules
	m.training = s.Training
	m.majority = s.Majority
	m.fitted = s.Fitted
	m.summary = nil
	return nil
}

// FromSnapshot creates a model from a snapshot
func FromSnapshot(s *Snapshot) (*Model, error) {
	m := New(nil)
	if err := m.Restore(s); err != nil {
		return nil, err
	}
	return m, nil
}
