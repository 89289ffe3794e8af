/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: model.go
Description: Trained ILA classifier. Fits a rule set on a training table, keeps the training
encoding to re-encode future tables, classifies rows by first matching rule with a
majority-class fallback, and reports accuracy against known labels.
*/

package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kleascm/ila-classifier/pkg/dataset"
	"github.com/kleascm/ila-classifier/pkg/ila"
)

// UnknownLabel is the decoded prediction for a class code missing from the training codebook
const UnknownLabel = "Unknown"

// NoRule is the rule index reported for rows classified by the majority fallback
const NoRule = -1

// ErrNotFitted is returned when the model is used before Fit or Restore
var ErrNotFitted = errors.New("model must be fitted before use")

// Options configure training
type Options struct {
	Workers  int          // Parallel subset evaluations during induction
	Reporter ila.Reporter // Induction event hooks
}

// Model is an ILA classifier. It is immutable once fitted and safe for concurrent prediction.
type Model struct {
	id        string
	trainedAt time.Time
	rules     []ila.Rule
	training  *dataset.Encoded
	majority  int
	fitted    bool
	summary   []ila.ClassSummary
	opts      Options
}

// New creates an empty, unfitted model
func New(opts *Options) *Model {
	m := &Model{majority: dataset.Unknown}
	if opts != nil {
		m.opts = *opts
	}
	return m
}

// Result holds predictions for one table
type Result struct {
	IDs         []string `json:"ids"`
	Predictions []string `json:"predictions"`
	Codes       []int    `json:"codes"`
	Truth       []int    `json:"truth"`
	RuleIndex   []int    `json:"rule_index"`
	Accuracy    float64  `json:"accuracy"`
	HasAccuracy bool     `json:"has_accuracy"`
}

// Fit encodes the table, induces the rule set and records the majority class
func (m *Model) Fit(t *dataset.Table) error {
	enc, err := dataset.Build(t)
	if err != nil {
		return fmt.Errorf("failed to encode training data: %w", err)
	}

	res := ila.NewInducer(&ila.Config{
		Workers:  m.opts.Workers,
		Reporter: m.opts.Reporter,
	}).Induce(enc)

	m.id = uuid.NewString()
	m.trainedAt = time.Now().UTC()
	m.rules = res.Rules
	m.summary = res.Classes
	m.training = enc
	m.majority = majorityClass(enc.Y, enc.InvMapY.Len())
	m.fitted = true

	return nil
}

// majorityClass returns the most frequent code; ties go to the code that occurs first
func majorityClass(y []int, classes int) int {
	if len(y) == 0 {
		return dataset.Unknown
	}

	counts := make([]int, classes)
	order := make([]int, 0, classes)
	for _, code := range y {
		if counts[code] == 0 {
			order = append(order, code)
		}
		counts[code]++
	}

	best := order[0]
	for _, code := range order[1:] {
		if counts[code] > counts[best] {
			best = code
		}
	}
	return best
}

// Classify returns the class code for an encoded row and the index of the matching rule,
// or the majority class and NoRule when nothing matches
func (m *Model) Classify(row []int) (int, int) {
	for i, rule := range m.rules {
		if rule.Matches(row) {
			return rule.Class(), i
		}
	}
	return m.majority, NoRule
}

// Predict classifies every row of the table and returns decoded class values
func (m *Model) Predict(t *dataset.Table) ([]string, error) {
	res, err := m.PredictWithAccuracy(t)
	if err != nil {
		return nil, err
	}
	return res.Predictions, nil
}

// PredictWithAccuracy classifies every row and scores the predictions against the table's
// class column. Accuracy is unavailable when the table has no rows or none of its labels
// is known to the training codebook.
func (m *Model) PredictWithAccuracy(t *dataset.Table) (*Result, error) {
	if !m.fitted {
		return nil, ErrNotFitted
	}

	enc, err := dataset.EncodeWith(m.training, t)
	if err != nil {
		return nil, fmt.Errorf("failed to encode test data: %w", err)
	}

	n := enc.NumRows()
	res := &Result{
		IDs:         enc.IDs,
		Predictions: make([]string, n),
		Codes:       make([]int, n),
		Truth:       enc.Y,
		RuleIndex:   make([]int, n),
	}

	for i, row := range enc.X {
		code, ruleIdx := m.Classify(row)
		res.Codes[i] = code
		res.RuleIndex[i] = ruleIdx
		res.Predictions[i] = m.Decode(code)
	}

	correct, known := 0, 0
	for i, truth := range enc.Y {
		if truth != dataset.Unknown {
			known++
		}
		if truth == res.Codes[i] && truth != dataset.Unknown {
			correct++
		}
	}
	if n > 0 && known > 0 {
		res.Accuracy = float64(correct) / float64(n)
		res.HasAccuracy = true
	}

	return res, nil
}

// Decode maps a class code to its training value, or UnknownLabel
func (m *Model) Decode(code int) string {
	if m.training == nil {
		return UnknownLabel
	}
	if v, ok := m.training.InvMapY.Decode(code); ok {
		return v
	}
	return UnknownLabel
}

// Rules returns the formatted rule set in evaluation order
func (m *Model) Rules() ([]string, error) {
	if !m.fitted {
		return nil, ErrNotFitted
	}
	return ila.FormatRules(m.rules, m.training)
}

// RuleSet returns a copy of the encoded rules
func (m *Model) RuleSet() []ila.Rule {
	out := make([]ila.Rule, len(m.rules))
	for i, r := range m.rules {
		out[i] = r.Clone()
	}
	return out
}

// Summary returns the per-class covering summary of the last Fit.
// It is empty for restored models.
func (m *Model) Summary() []ila.ClassSummary {
	return m.summary
}

// Training returns the training encoding
func (m *Model) Training() *dataset.Encoded {
	return m.training
}

// Majority returns the fallback class code
func (m *Model) Majority() int {
	return m.majority
}

// Fitted reports whether the model can predict
func (m *Model) Fitted() bool {
	return m.fitted
}

// ID returns the model identifier assigned at training time
func (m *Model) ID() string {
	return m.id
}

// TrainedAt returns when the model was fitted
func (m *Model) TrainedAt() time.Time {
	return m.trainedAt
}
