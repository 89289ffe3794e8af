/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: inducer.go
Description: Inductive Learning Algorithm search. For each class it repeatedly picks the
smallest attribute subset and value combination that separates the largest still-uncovered
group of the class from every other class, emitting one rule per pick until the class is
covered or the subset sizes run out. Subsets of one size can be scored in parallel without
changing the result.
*/

package ila

import (
	"strconv"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/emirpasic/gods/sets/hashset"
	"github.com/kleascm/ila-classifier/pkg/dataset"
	"github.com/sourcegraph/conc/iter"
)

// Config controls an induction run
type Config struct {
	Workers  int      // Parallel subset evaluations per size (<= 1 = sequential)
	Reporter Reporter // Receives rule and exhaustion events (nil = none)
}

// ClassSummary describes the covering pass of one class
type ClassSummary struct {
	Class     int   `json:"class"`
	Rows      int   `json:"rows"`
	Covered   int   `json:"covered"`
	Rules     int   `json:"rules"`
	Exhausted bool  `json:"exhausted"`
	Uncovered []int `json:"uncovered,omitempty"` // Row indexes left without a rule of their class
}

// Result is the outcome of an induction run
type Result struct {
	Rules   []Rule         `json:"rules"`
	Classes []ClassSummary `json:"classes"`
}

// Inducer runs the ILA search over encoded datasets
type Inducer struct {
	workers  int
	reporter Reporter
}

// NewInducer creates an inducer; a nil config means sequential with no reporting
func NewInducer(cfg *Config) *Inducer {
	in := &Inducer{workers: 1, reporter: NopReporter{}}
	if cfg == nil {
		return in
	}
	if cfg.Workers > 1 {
		in.workers = cfg.Workers
	}
	if cfg.Reporter != nil {
		in.reporter = cfg.Reporter
	}
	return in
}

// Induce runs a sequential search and returns the rules in discovery order
func Induce(enc *dataset.Encoded) []Rule {
	return NewInducer(nil).Induce(enc).Rules
}

// Induce runs the search for every class in first-occurrence order of the labels
func (in *Inducer) Induce(enc *dataset.Encoded) *Result {
	res := &Result{Rules: make([]Rule, 0)}
	if enc == nil {
		return res
	}

	parts := partition(enc.Y)
	it := parts.Iterator()
	for it.Next() {
		label := it.Key().(int)
		rows := it.Value().([]int)

		s := newClassSearch(enc, label, rows, in.workers)
		outcome := s.run()
		for _, rule := range outcome.rules {
			res.Rules = append(res.Rules, rule.rule)
			in.reporter.OnRuleEmitted(rule.rule, rule.covered)
		}

		summary := ClassSummary{
			Class:     label,
			Rows:      len(rows),
			Covered:   s.coveredCount,
			Rules:     len(outcome.rules),
			Exhausted: outcome.exhausted,
		}
		if outcome.exhausted {
			for local, row := range rows {
				if !s.covered[local] {
					summary.Uncovered = append(summary.Uncovered, row)
				}
			}
			in.reporter.OnClassExhausted(label, len(rows)-s.coveredCount)
		}
		res.Classes = append(res.Classes, summary)
	}

	return res
}

// partition groups row indexes by label, keeping labels in first-occurrence order
func partition(y []int) *linkedhashmap.Map {
	parts := linkedhashmap.New()
	for i, label := range y {
		if rows, found := parts.Get(label); found {
			parts.Put(label, append(rows.([]int), i))
		} else {
			parts.Put(label, []int{i})
		}
	}
	return parts
}

// keyOf renders the row's codes at the subset positions as a grouping key
func keyOf(row []int, comb []int) string {
	buf := make([]byte, 0, len(comb)*4)
	for i, a := range comb {
		if i > 0 {
			buf = append(buf, '|')
		}
		buf = strconv.AppendInt(buf, int64(row[a]), 10)
	}
	return string(buf)
}

// candidate is the best discriminating group found for one subset
type candidate struct {
	comb    []int
	members []int // Local row positions, in class row order
}

type emitted struct {
	rule    Rule
	covered int
}

type classOutcome struct {
	rules     []emitted
	exhausted bool
}

// classSearch owns the coverage arena for one class's covering pass
type classSearch struct {
	enc          *dataset.Encoded
	label        int
	rows         []int
	covered      []bool
	coveredCount int
	workers      int

	// other-class key sets for the current subset size, indexed like the combinations
	otherKeys []*hashset.Set
}

func newClassSearch(enc *dataset.Encoded, label int, rows []int, workers int) *classSearch {
	return &classSearch{
		enc:     enc,
		label:   label,
		rows:    rows,
		covered: make([]bool, len(rows)),
		workers: workers,
	}
}

// run covers the class, staying at one subset size until it stops yielding groups
func (s *classSearch) run() classOutcome {
	var out classOutcome
	nAttr := s.enc.NumAttributes()

	j := 1
	var combs [][]int
	for s.coveredCount < len(s.rows) {
		if j > nAttr {
			out.exhausted = true
			break
		}
		if combs == nil {
			combs = Combinations(nAttr, j)
			s.otherKeys = make([]*hashset.Set, len(combs))
		}

		best, ok := s.best(combs)
		if !ok {
			j++
			combs = nil
			continue
		}

		rule := NewRule(nAttr, s.label)
		first := s.enc.X[s.rows[best.members[0]]]
		for _, a := range best.comb {
			rule[a] = first[a]
		}

		newly := 0
		for _, local := range best.members {
			if !s.covered[local] {
				s.covered[local] = true
				s.coveredCount++
				newly++
			}
		}
		out.rules = append(out.rules, emitted{rule: rule, covered: newly})
	}

	return out
}

// best scores every subset of the current size and keeps the strictly largest group,
// so ties go to the earliest subset in lexicographic order
func (s *classSearch) best(combs [][]int) (candidate, bool) {
	var scored []candidate
	if s.workers > 1 && len(combs) > 1 {
		idx := make([]int, len(combs))
		for i := range idx {
			idx[i] = i
		}
		mapper := iter.Mapper[int, candidate]{MaxGoroutines: s.workers}
		scored = mapper.Map(idx, func(i *int) candidate {
			return s.score(*i, combs[*i])
		})
	} else {
		scored = make([]candidate, len(combs))
		for i, comb := range combs {
			scored[i] = s.score(i, comb)
		}
	}

	var best candidate
	for _, c := range scored {
		if len(c.members) > len(best.members) {
			best = c
		}
	}
	return best, len(best.members) > 0
}

// score groups the uncovered rows by key at comb and returns the largest discriminating
// group, preferring the first key encountered on ties
func (s *classSearch) score(ci int, comb []int) candidate {
	groups := linkedhashmap.New()
	for local, row := range s.rows {
		if s.covered[local] {
			continue
		}
		key := keyOf(s.enc.X[row], comb)
		if members, found := groups.Get(key); found {
			groups.Put(key, append(members.([]int), local))
		} else {
			groups.Put(key, []int{local})
		}
	}
	if groups.Empty() {
		return candidate{}
	}

	others := s.others(ci, comb)

	var best candidate
	it := groups.Iterator()
	for it.Next() {
		if others.Contains(it.Key()) {
			continue
		}
		members := it.Value().([]int)
		if len(members) > len(best.members) {
			best = candidate{comb: comb, members: members}
		}
	}
	return best
}

// others returns the keys of every row of every other class at comb.
// The set does not depend on coverage, so it is computed once per subset.
func (s *classSearch) others(ci int, comb []int) *hashset.Set {
	if set := s.otherKeys[ci]; set != nil {
		return set
	}
	set := hashset.New()
	for i, label := range s.enc.Y {
		if label == s.label {
			continue
		}
		set.Add(keyOf(s.enc.X[i], comb))
	}
	s.otherKeys[ci] = set
	return set
}
