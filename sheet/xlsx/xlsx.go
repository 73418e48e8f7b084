// Package xlsx backs the sheet contract with a local Excel workbook.
// The document "name" is the workbook path; reads and writes always
// target the workbook's first worksheet.
package xlsx

import (
	"context"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/pblondin/stringify/grid"
	"github.com/pblondin/stringify/sheet"
)

// Store reads and writes grids against .xlsx workbooks on disk.
type Store struct{}

// New returns a workbook-backed store.
func New() *Store {
	return &Store{}
}

var _ sheet.ReadWriter = (*Store)(nil)

// ReadGrid loads the first worksheet of the workbook at name. Rows are
// padded to the header width since the workbook format drops trailing
// empty cells.
func (s *Store) ReadGrid(_ context.Context, name string) (grid.Grid, error) {
	if _, err := os.Stat(name); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: %w", name, sheet.ErrDocumentNotFound)
	}

	f, err := excelize.OpenFile(name)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", name, err)
	}
	defer f.Close()

	ws := f.GetSheetName(0)
	rows, err := f.GetRows(ws)
	if err != nil {
		return nil, fmt.Errorf("reading worksheet %q: %w", ws, err)
	}

	g := make(grid.Grid, 0, len(rows))
	width := 0
	if len(rows) > 0 {
		width = len(rows[0])
	}
	for _, row := range rows {
		for len(row) < width {
			row = append(row, "")
		}
		g = append(g, row)
	}
	return g, nil
}

// WriteGrid replaces the first worksheet of the workbook at name with
// g, creating the workbook when it does not exist yet.
func (s *Store) WriteGrid(_ context.Context, name string, g grid.Grid) error {
	var f *excelize.File
	var ws string

	if _, err := os.Stat(name); err == nil {
		f, err = excelize.OpenFile(name)
		if err != nil {
			return fmt.Errorf("opening workbook %s: %w", name, err)
		}
		ws = f.GetSheetName(0)
		if err := clearSheet(f, ws); err != nil {
			return err
		}
	} else {
		f = excelize.NewFile()
		ws = f.GetSheetName(0)
	}
	defer f.Close()

	for r, row := range g {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return fmt.Errorf("addressing cell (%d,%d): %w", r, c, err)
			}
			if err := f.SetCellValue(ws, cell, value); err != nil {
				return fmt.Errorf("writing cell %s: %w", cell, err)
			}
		}
	}

	if err := f.SaveAs(name); err != nil {
		return fmt.Errorf("saving workbook %s: %w", name, err)
	}
	return nil
}

func clearSheet(f *excelize.File, ws string) error {
	rows, err := f.GetRows(ws)
	if err != nil {
		return fmt.Errorf("reading worksheet %q: %w", ws, err)
	}
	for range rows {
		if err := f.RemoveRow(ws, 1); err != nil {
			return fmt.Errorf("clearing worksheet %q: %w", ws, err)
		}
	}
	return nil
}
