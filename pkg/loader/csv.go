/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: csv.go
Description: CSV table format. The first record is the header; ragged records are padded
with missing cells.
*/

package loader

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/kleascm/ila-classifier/pkg/dataset"
)

// CSV reads and writes comma separated tables
type CSV struct {
	Timeout time.Duration
}

func (c *CSV) Extension() string { return ".csv" }

// Load reads a CSV table from a local path or URL
func (c *CSV) Load(ctx context.Context, source string) (*dataset.Table, error) {
	rc, err := open(ctx, source, c.Timeout)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	t, err := c.read(rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return t, nil
}

func (c *CSV) read(r io.Reader) (*dataset.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: empty CSV", dataset.ErrValidation)
	}

	header := records[0]
	if len(header) > 0 {
		header[0] = trimBOM(header[0])
	}
	return buildTable(header, records[1:])
}

// Write stores the table as CSV, creating or truncating path
func (c *CSV) Write(path string, t *dataset.Table) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(t.Columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range t.Rows {
		if err := w.Write(denormalize(row)); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return file.Close()
}

func trimBOM(s string) string {
	const bom = "\uFEFF"
	if len(s) >= len(bom) && s[:len(bom)] == bom {
		return s[len(bom):]
	}
	return s
}
