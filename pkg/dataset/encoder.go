/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: encoder.go
Description: Categorical encoder for the ILA classifier. Assigns dense integer codes to raw
column values in first-occurrence order, builds encoded training datasets from raw tables,
and re-encodes test tables against the codebooks learned at training time.
*/

package dataset

import (
	"fmt"
)

// naTokens are the cell values treated as missing in addition to the empty string
var naTokens = map[string]struct{}{
	"NA":   {},
	"N/A":  {},
	"NaN":  {},
	"nan":  {},
	"null": {},
	"NULL": {},
	"None": {},
	"#N/A": {},
}

// Normalize maps a raw cell value to its normalized string.
// Empty and NA cells become Missing; everything else is kept verbatim.
func Normalize(raw string) string {
	if raw == "" {
		return Missing
	}
	if _, ok := naTokens[raw]; ok {
		return Missing
	}
	return raw
}

// EncodeColumn assigns integer codes to values in first-occurrence order.
// The first distinct value gets code 0, the next new value code 1, and so on.
func EncodeColumn(values []string) ([]int, Codebook) {
	codes := make([]int, len(values))
	seen := make(map[string]int)
	book := Codebook{Values: make([]string, 0)}

	for i, raw := range values {
		v := Normalize(raw)
		code, exists := seen[v]
		if !exists {
			code = len(book.Values)
			seen[v] = code
			book.Values = append(book.Values, v)
		}
		codes[i] = code
	}

	return codes, book
}

// Build encodes a raw training table.
// Column 0 is the row identifier, the last column is the class and every column in
// between is an attribute in its original order.
func Build(t *Table) (*Encoded, error) {
	if err := checkShape(t); err != nil {
		return nil, err
	}

	attrCols := t.Columns[1 : len(t.Columns)-1]
	classIdx := len(t.Columns) - 1
	n := t.NumRows()

	enc := &Encoded{
		IDs:       identifiers(t),
		X:         make([][]int, n),
		Headers:   append([]string(nil), attrCols...),
		ClassName: t.Columns[classIdx],
		InvMaps:   make([]Codebook, len(attrCols)),
	}

	for r := range enc.X {
		enc.X[r] = make([]int, len(attrCols))
	}

	for j := range attrCols {
		codes, book := EncodeColumn(t.Column(j + 1))
		enc.InvMaps[j] = book
		for r, code := range codes {
			enc.X[r][j] = code
		}
	}

	enc.Y, enc.InvMapY = EncodeColumn(t.Column(classIdx))

	return enc, nil
}

// EncodeWith encodes a test table using the codebooks of a training dataset.
// Each value is mapped to the first training code with an equal normalized string,
// or Unknown when no such code exists. Attribute columns beyond those seen in training
// are encoded as Unknown throughout.
func EncodeWith(train *Encoded, t *Table) (*Encoded, error) {
	if train == nil {
		return nil, fmt.Errorf("%w: no training encoding", ErrValidation)
	}
	if err := checkShape(t); err != nil {
		return nil, err
	}

	attrCols := t.Columns[1 : len(t.Columns)-1]
	classIdx := len(t.Columns) - 1
	n := t.NumRows()

	enc := &Encoded{
		IDs:       identifiers(t),
		X:         make([][]int, n),
		Headers:   append([]string(nil), attrCols...),
		ClassName: t.Columns[classIdx],
		InvMaps:   train.InvMaps,
		InvMapY:   train.InvMapY,
	}

	for r := range enc.X {
		enc.X[r] = make([]int, len(attrCols))
	}

	for j := range attrCols {
		if j >= len(train.InvMaps) {
			for r := range enc.X {
				enc.X[r][j] = Unknown
			}
			continue
		}
		codes := lookupColumn(train.InvMaps[j], t.Column(j+1))
		for r, code := range codes {
			enc.X[r][j] = code
		}
	}

	if train.InvMapY.Len() > 0 {
		enc.Y = lookupColumn(train.InvMapY, t.Column(classIdx))
	} else {
		enc.Y = make([]int, n)
		for r := range enc.Y {
			enc.Y[r] = Unknown
		}
	}

	return enc, nil
}

// lookupColumn encodes values against an existing codebook
func lookupColumn(book Codebook, values []string) []int {
	idx := book.index()
	codes := make([]int, len(values))
	for i, raw := range values {
		if code, ok := idx[Normalize(raw)]; ok {
			codes[i] = code
		} else {
			codes[i] = Unknown
		}
	}
	return codes
}

// identifiers extracts the row identifier column; missing identifiers become empty strings
func identifiers(t *Table) []string {
	ids := t.Column(0)
	for i, id := range ids {
		if id == Missing {
			ids[i] = ""
		}
	}
	return ids
}

// checkShape fails fast when the table cannot hold id, attribute and class columns
func checkShape(t *Table) error {
	if t == nil {
		return fmt.Errorf("%w: nil table", ErrValidation)
	}
	if len(t.Columns) < MinColumns {
		return fmt.Errorf("%w: need at least %d columns (id + attributes + class), got %d",
			ErrValidation, MinColumns, len(t.Columns))
	}
	return nil
}
