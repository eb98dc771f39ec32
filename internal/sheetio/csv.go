package sheetio

import (
	"encoding/csv"
	"fmt"
	"io"
)

// CSVReader handles CSV files. A CSV file carries exactly one table, so the
// workbook holds one sheet named after the file.
type CSVReader struct{}

func (p *CSVReader) Read(r io.Reader, filename string) (*Workbook, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	// Ragged rows are tolerated; buildSheet pads them to full width.
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: parse csv: %v", ErrMalformedInput, err)
	}

	wb := &Workbook{}
	if sheet, ok := buildSheet(baseName(filename), records); ok {
		wb.Sheets = append(wb.Sheets, sheet)
	}
	return wb, nil
}
