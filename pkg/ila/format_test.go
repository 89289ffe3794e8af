/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: format_test.go
Description: Tests for the rule formatter, including wildcard-only rules, unknown codes
and decoding of every rule induced from a dataset.
*/

package ila_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/kleascm/ila-classifier/pkg/ila"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatRule(t *testing.T) {
	enc := build(t, []string{"id", "a1", "a2", "class"},
		[]string{"1", "x", "p", "A"},
		[]string{"2", "y", "q", "B"},
	)

	s, err := ila.FormatRule(ila.Rule{1, 0, 0}, enc)
	require.NoError(t, err)
	assert.Equal(t, "IF a1 = y AND a2 = p THEN class = A", s)

	s, err = ila.FormatRule(ila.Rule{ila.Wildcard, 1, 1}, enc)
	require.NoError(t, err)
	assert.Equal(t, "IF a2 = q THEN class = B", s)
}

func TestFormatRuleAllWildcards(t *testing.T) {
	enc := build(t, []string{"id", "a1", "class"}, []string{"1", "x", "A"})

	s, err := ila.FormatRule(ila.NewRule(1, 0), enc)
	require.NoError(t, err)
	assert.Equal(t, "IF TRUE THEN class = A", s)
}

func TestFormatRuleUnknownCode(t *testing.T) {
	enc := build(t, []string{"id", "a1", "class"}, []string{"1", "x", "A"})

	_, err := ila.FormatRule(ila.Rule{4, 0}, enc)
	assert.True(t, errors.Is(err, ila.ErrUnknownCode))

	_, err = ila.FormatRule(ila.Rule{0, 3}, enc)
	assert.True(t, errors.Is(err, ila.ErrUnknownCode))

	_, err = ila.FormatRule(ila.Rule{0, 0, 0}, enc)
	assert.Error(t, err)
}

func TestFormatRulesRoundTrip(t *testing.T) {
	enc := playTennis(t)
	rules := ila.Induce(enc)

	lines, err := ila.FormatRules(rules, enc)
	require.NoError(t, err)
	require.Len(t, lines, len(rules))

	for i, rule := range rules {
		assert.True(t, strings.HasPrefix(lines[i], "IF "))
		assert.Contains(t, lines[i], " THEN play = ")
		for _, a := range rule.Conditions() {
			value := enc.InvMaps[a].Values[rule[a]]
			assert.Contains(t, lines[i], enc.Headers[a]+" = "+value)

			found := false
			for _, row := range enc.X {
				if row[a] == rule[a] {
					found = true
					break
				}
			}
			assert.True(t, found)
		}
	}
}
