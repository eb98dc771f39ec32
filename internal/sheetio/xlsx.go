package sheetio

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// XLSXReader handles .xlsx/.xlsm workbooks via excelize.
type XLSXReader struct{}

func (p *XLSXReader) Read(r io.Reader, filename string) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: open xlsx: %v", ErrMalformedInput, err)
	}
	defer f.Close()

	wb := &Workbook{}
	for _, name := range f.GetSheetList() {
		// GetRows returns display values, so dates keep the workbook's
		// fixed display format rather than a locale-dependent one.
		records, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("%w: read sheet %q: %v", ErrMalformedInput, name, err)
		}
		sheet, ok := buildSheet(name, records)
		if !ok {
			continue
		}
		wb.Sheets = append(wb.Sheets, sheet)
	}
	return wb, nil
}
