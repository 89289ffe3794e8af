/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: format.go
Description: Rule formatter. Renders an encoded rule as a human-readable conditional
statement using the reverse maps of the dataset it was induced from.
*/

package ila

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kleascm/ila-classifier/pkg/dataset"
)

// ErrUnknownCode is returned when a rule carries a code its dataset cannot decode
var ErrUnknownCode = errors.New("code not present in codebook")

// FormatRule renders "IF <attr> = <value> AND ... THEN <class> = <value>".
// Wildcarded attributes are omitted; a rule without conditions renders as TRUE.
func FormatRule(rule Rule, enc *dataset.Encoded) (string, error) {
	if len(rule) != enc.NumAttributes()+1 {
		return "", fmt.Errorf("rule has %d positions, dataset needs %d", len(rule), enc.NumAttributes()+1)
	}

	parts := make([]string, 0, len(rule)-1)
	for _, a := range rule.Conditions() {
		value, ok := enc.InvMaps[a].Decode(rule[a])
		if !ok {
			return "", fmt.Errorf("attribute %q code %d: %w", enc.Headers[a], rule[a], ErrUnknownCode)
		}
		parts = append(parts, fmt.Sprintf("%s = %s", enc.Headers[a], value))
	}

	class, ok := enc.InvMapY.Decode(rule.Class())
	if !ok {
		return "", fmt.Errorf("class code %d: %w", rule.Class(), ErrUnknownCode)
	}

	cond := "TRUE"
	if len(parts) > 0 {
		cond = strings.Join(parts, " AND ")
	}

	return fmt.Sprintf("IF %s THEN %s = %s", cond, enc.ClassName, class), nil
}

// FormatRules renders every rule in order
func FormatRules(rules []Rule, enc *dataset.Encoded) ([]string, error) {
	out := make([]string, 0, len(rules))
	for i, rule := range rules {
		s, err := FormatRule(rule, enc)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i+1, err)
		}
		out = append(out, s)
	}
	return out, nil
}
