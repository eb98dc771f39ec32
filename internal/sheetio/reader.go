package sheetio

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgrange/sheetsift/internal/hierarchy"
)

// Sheet is one ordered table read from an input file: a header row plus data
// rows padded to header width. An explicitly blank cell is an empty string,
// never a missing entry.
type Sheet struct {
	Name    string
	Headers []string
	Rows    []hierarchy.Row
}

// Workbook is the ordered set of sheets read from one file.
type Workbook struct {
	Sheets []Sheet
}

// Reader converts raw file bytes into a Workbook.
type Reader interface {
	Read(r io.Reader, filename string) (*Workbook, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".xlsx": true,
	".xlsm": true,
	".csv":  true,
	".html": true,
	".htm":  true,
	".md":   true,
	".docx": true,
}

// ForFile returns the appropriate reader for a filename.
func ForFile(filename string) (Reader, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".xlsx", ".xlsm":
		return &XLSXReader{}, nil
	case ".csv":
		return &CSVReader{}, nil
	case ".html", ".htm":
		return &HTMLReader{}, nil
	case ".md", ".markdown":
		return &MarkdownReader{}, nil
	case ".docx":
		return &DOCXReader{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// buildSheet turns a raw cell grid into a Sheet. The first record is the
// header row; data rows are padded with empty strings to the sheet's full
// width. Headers wider than the header row gets generated Column names so no
// trailing cell is ever dropped. Returns false when the grid has no header
// row at all.
func buildSheet(name string, records [][]string) (Sheet, bool) {
	if len(records) == 0 {
		return Sheet{}, false
	}

	width := 0
	for _, rec := range records {
		if len(rec) > width {
			width = len(rec)
		}
	}
	if width == 0 {
		return Sheet{}, false
	}

	headers := make([]string, width)
	copy(headers, records[0])
	for i := len(records[0]); i < width; i++ {
		headers[i] = fmt.Sprintf("Column %d", i+1)
	}

	rows := make([]hierarchy.Row, 0, len(records)-1)
	for i, rec := range records[1:] {
		cells := make([]string, width)
		copy(cells, rec)
		rows = append(rows, hierarchy.Row{Index: i, Cells: cells})
	}

	return Sheet{Name: name, Headers: headers, Rows: rows}, true
}

// baseName strips the directory and extension from a filename for use as a
// single-table sheet name.
func baseName(filename string) string {
	name := filepath.Base(filename)
	return strings.TrimSuffix(name, filepath.Ext(name))
}
