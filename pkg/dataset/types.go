/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: types.go
Description: Core data types for the ILA classifier. Defines the raw loaded table, the
categorical codebooks that map integer codes back to their original values, and the
encoded dataset shared by the induction engine, the classifier and the formatter.
*/

package dataset

import (
	"errors"
	"fmt"
)

// Missing is the sentinel every null or empty cell is normalized to before encoding
const Missing = "∅"

// Unknown marks a test-time value that has no code in the training codebook
const Unknown = -1

// MinColumns is the smallest usable table: identifier, one attribute, class
const MinColumns = 3

// ErrValidation is returned when an input table cannot be encoded
var ErrValidation = errors.New("validation error")

// Table is a raw table as produced by a loader.
// Every row holds exactly len(Columns) normalized cells.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// NumRows returns the number of data rows
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// Column returns a copy of column i
func (t *Table) Column(i int) []string {
	col := make([]string, len(t.Rows))
	for r, row := range t.Rows {
		if i < len(row) {
			col[r] = row[i]
		} else {
			col[r] = Missing
		}
	}
	return col
}

// Codebook maps dense integer codes back to their normalized string values.
// Values[code] is the value that was assigned code.
type Codebook struct {
	Values []string `json:"values"`
}

// Len returns the number of distinct values in the codebook
func (c Codebook) Len() int {
	return len(c.Values)
}

// Decode returns the value for code, or false if the code is not in the codebook
func (c Codebook) Decode(code int) (string, bool) {
	if code < 0 || code >= len(c.Values) {
		return "", false
	}
	return c.Values[code], true
}

// Lookup returns the first code whose value equals value, or Unknown
func (c Codebook) Lookup(value string) int {
	for code, v := range c.Values {
		if v == value {
			return code
		}
	}
	return Unknown
}

// index builds a value to first-code lookup table for bulk encoding
func (c Codebook) index() map[string]int {
	idx := make(map[string]int, len(c.Values))
	for code, v := range c.Values {
		if _, exists := idx[v]; !exists {
			idx[v] = code
		}
	}
	return idx
}

// Encoded is a table after categorical encoding.
// X and Y are parallel; InvMaps is parallel to Headers.
type Encoded struct {
	IDs       []string   `json:"ids"`
	X         [][]int    `json:"x"`
	Y         []int      `json:"y"`
	Headers   []string   `json:"headers"`
	ClassName string     `json:"class_name"`
	InvMaps   []Codebook `json:"inv_maps"`
	InvMapY   Codebook   `json:"inv_map_y"`
}

// NumAttributes returns the number of attribute columns
func (e *Encoded) NumAttributes() int {
	return len(e.Headers)
}

// NumRows returns the number of encoded rows
func (e *Encoded) NumRows() int {
	return len(e.X)
}

// Validate checks the training invariant: every code in X and Y is present in its codebook
func (e *Encoded) Validate() error {
	if len(e.InvMaps) != len(e.Headers) {
		return fmt.Errorf("%w: %d codebooks for %d attributes", ErrValidation, len(e.InvMaps), len(e.Headers))
	}
	if len(e.X) != len(e.Y) {
		return fmt.Errorf("%w: %d attribute rows but %d labels", ErrValidation, len(e.X), len(e.Y))
	}
	if len(e.IDs) != len(e.Y) {
		return fmt.Errorf("%w: %d ids but %d labels", ErrValidation, len(e.IDs), len(e.Y))
	}
	for i, row := range e.X {
		if len(row) != len(e.Headers) {
			return fmt.Errorf("%w: row %d has %d attributes, want %d", ErrValidation, i, len(row), len(e.Headers))
		}
		for j, code := range row {
			if _, ok := e.InvMaps[j].Decode(code); !ok {
				return fmt.Errorf("%w: row %d attribute %q has unmapped code %d", ErrValidation, i, e.Headers[j], code)
			}
		}
		if _, ok := e.InvMapY.Decode(e.Y[i]); !ok {
			return fmt.Errorf("%w: row %d has unmapped class code %d", ErrValidation, i, e.Y[i])
		}
	}
	return nil
}
