/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: rule.go
Description: Rule representation for the ILA classifier. A rule is a fixed-length code
vector: one required code or wildcard per attribute followed by the predicted class code.
*/

package ila

// Wildcard marks an attribute position the rule does not constrain
const Wildcard = -1

// Rule holds one required code (or Wildcard) per attribute, followed by the class code.
// A rule for n attributes has length n+1.
type Rule []int

// NewRule creates a rule over n attributes with every position wildcarded
func NewRule(n int, class int) Rule {
	r := make(Rule, n+1)
	for i := 0; i < n; i++ {
		r[i] = Wildcard
	}
	r[n] = class
	return r
}

// NumAttributes returns the number of attribute positions
func (r Rule) NumAttributes() int {
	return len(r) - 1
}

// Class returns the predicted class code
func (r Rule) Class() int {
	return r[len(r)-1]
}

// Conditions returns the attribute indexes the rule constrains, in order
func (r Rule) Conditions() []int {
	conds := make([]int, 0, len(r)-1)
	for i := 0; i < len(r)-1; i++ {
		if r[i] != Wildcard {
			conds = append(conds, i)
		}
	}
	return conds
}

// Matches reports whether every constrained position equals the row's code.
// Positions missing from row behave as unknown values and never match a constraint.
func (r Rule) Matches(row []int) bool {
	for i := 0; i < len(r)-1; i++ {
		want := r[i]
		if want == Wildcard {
			continue
		}
		if i >= len(row) || row[i] != want {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the rule
func (r Rule) Clone() Rule {
	return append(Rule(nil), r...)
}
