package sheetio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dgrange/sheetsift/internal/hierarchy"
	"github.com/xuri/excelize/v2"
)

func TestWriteWorkbook_OneSheetPerCategory(t *testing.T) {
	exports := []hierarchy.CategoryExport{
		{
			Sheet:   "Sheet1",
			Headers: []string{"Class", "Subject", "Chapter", "Topic", "Note"},
			Rows: []hierarchy.Row{
				{Index: 0, Cells: []string{"10", "Math", "Algebra", "Linear Eq", ""}},
				{Index: 1, Cells: []string{"10", "Math", "Algebra", "Quadratics", "hard"}},
			},
		},
		{
			Sheet:   "Extra",
			Headers: []string{"Class", "Topic"},
			Rows: []hierarchy.Row{
				{Index: 0, Cells: []string{"11", "Limits"}},
			},
		},
	}

	var buf bytes.Buffer
	if err := WriteWorkbook(&buf, exports); err != nil {
		t.Fatalf("WriteWorkbook: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	list := f.GetSheetList()
	if len(list) != 2 || list[0] != "Sheet1" || list[1] != "Extra" {
		t.Fatalf("unexpected sheet list %v", list)
	}

	rows, err := f.GetRows("Sheet1")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	// Exactly one header row plus the data rows, nothing trailing.
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0][0] != "Class" || rows[0][4] != "Note" {
		t.Errorf("unexpected header row %v", rows[0])
	}
	if rows[2][4] != "hard" {
		t.Errorf("expected note cell, got %q", rows[2][4])
	}
}

func TestRoundTrip_BlankCellsPreserved(t *testing.T) {
	// Full pass: csv -> aggregate -> project -> write -> reopen.
	input := "Class,Subject,Chapter,Topic,Note\n10,Math,Algebra,Linear Eq,\n"
	wb, err := (&CSVReader{}).Read(strings.NewReader(input), "upload.csv")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	agg := hierarchy.NewAggregator()
	sheet := wb.Sheets[0]
	agg.AddSheet(sheet.Name, sheet.Headers)
	agg.AddRows(sheet.Name, sheet.Rows)
	result := agg.Finish()

	exports := hierarchy.Project(result.Tree, result.Selection)
	if len(exports) != 1 {
		t.Fatalf("expected 1 exported category, got %d", len(exports))
	}

	var buf bytes.Buffer
	if err := WriteWorkbook(&buf, exports); err != nil {
		t.Fatalf("WriteWorkbook: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	note, err := f.GetCellValue("upload", "E2")
	if err != nil {
		t.Fatalf("GetCellValue: %v", err)
	}
	if note != "" {
		t.Errorf("expected blank note to round-trip as empty string, got %q", note)
	}
	topic, err := f.GetCellValue("upload", "D2")
	if err != nil {
		t.Fatalf("GetCellValue: %v", err)
	}
	if topic != "Linear Eq" {
		t.Errorf("expected topic cell, got %q", topic)
	}
}

func TestWriteWorkbook_NoCategories(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteWorkbook(&buf, nil); err != nil {
		t.Fatalf("WriteWorkbook: %v", err)
	}
	if _, err := excelize.OpenReader(&buf); err != nil {
		t.Errorf("expected a valid empty workbook, got %v", err)
	}
}
