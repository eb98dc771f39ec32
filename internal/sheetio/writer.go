package sheetio

import (
	"io"

	"github.com/dgrange/sheetsift/internal/hierarchy"
	"github.com/xuri/excelize/v2"
)

// WriteWorkbook serializes the projected categories into an xlsx workbook:
// one sheet per category, a single header row, then exactly the supplied data
// rows. Every column named in the headers gets a cell on every row, with an
// empty string standing in for a blank cell, and nothing is appended after
// the last data row.
func WriteWorkbook(w io.Writer, exports []hierarchy.CategoryExport) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, ex := range exports {
		if i == 0 {
			// Rename the default sheet rather than leaving it empty.
			if err := f.SetSheetName("Sheet1", ex.Sheet); err != nil {
				return &WriteError{Sheet: ex.Sheet, Err: err}
			}
		} else {
			if _, err := f.NewSheet(ex.Sheet); err != nil {
				return &WriteError{Sheet: ex.Sheet, Err: err}
			}
		}

		if err := writeRow(f, ex.Sheet, 1, ex.Headers, len(ex.Headers)); err != nil {
			return &WriteError{Sheet: ex.Sheet, Err: err}
		}
		for j, row := range ex.Rows {
			if err := writeRow(f, ex.Sheet, j+2, row.Cells, len(ex.Headers)); err != nil {
				return &WriteError{Sheet: ex.Sheet, Err: err}
			}
		}
	}

	if err := f.Write(w); err != nil {
		return &WriteError{Err: err}
	}
	return nil
}

// writeRow writes one row padded to the sheet's full width.
func writeRow(f *excelize.File, sheet string, rowNum int, cells []string, width int) error {
	if width < len(cells) {
		width = len(cells)
	}
	values := make([]interface{}, width)
	for i := range values {
		if i < len(cells) {
			values[i] = cells[i]
		} else {
			values[i] = ""
		}
	}
	addr, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, addr, &values)
}
