/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: xlsx.go
Description: Excel table format backed by excelize. Reads the first worksheet with its first
row as header and writes tables to a single-sheet workbook.
*/

package loader

import (
	"context"
	"fmt"
	"time"

	"github.com/kleascm/ila-classifier/pkg/dataset"
	"github.com/xuri/excelize/v2"
)

// XLSX reads and writes Excel workbooks
type XLSX struct {
	Timeout time.Duration
}

func (x *XLSX) Extension() string { return ".xlsx" }

// Load reads the first worksheet from a local path or URL
func (x *XLSX) Load(ctx context.Context, source string) (*dataset.Table, error) {
	rc, err := open(ctx, source, x.Timeout)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	f, err := excelize.OpenReader(rc)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to open workbook: %w", source, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s: %w: workbook has no sheets", source, dataset.ErrValidation)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read sheet %q: %w", source, sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: %w: sheet %q is empty", source, dataset.ErrValidation, sheets[0])
	}

	t, err := buildTable(rows[0], rows[1:])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return t, nil
}

// Write stores the table in the first sheet of a new workbook
func (x *XLSX) Write(path string, t *dataset.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := writeRow(f, sheet, 1, t.Columns); err != nil {
		return err
	}
	for i, row := range t.Rows {
		if err := writeRow(f, sheet, i+2, denormalize(row)); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, cells []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	values := make([]interface{}, len(cells))
	for i, v := range cells {
		values[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}
