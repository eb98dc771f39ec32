package sheetio

import (
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownReader handles Markdown files using goldmark's table extension.
// Each pipe table becomes one sheet, named after the nearest preceding
// heading when there is one.
type MarkdownReader struct{}

func (p *MarkdownReader) Read(r io.Reader, filename string) (*Workbook, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: read markdown: %v", ErrMalformedInput, err)
	}

	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	doc := md.Parser().Parse(text.NewReader(src))

	wb := &Workbook{}
	n := 0
	heading := ""
	seen := make(map[string]int)

	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		switch t := node.(type) {
		case *ast.Heading:
			heading = string(t.Text(src))
		case *east.Table:
			n++
			name := heading
			if name == "" {
				name = fmt.Sprintf("Table %d", n)
			}
			// Two tables under the same heading must not collapse into one
			// sheet name.
			seen[name]++
			if seen[name] > 1 {
				name = fmt.Sprintf("%s %d", name, seen[name])
			}
			if sheet, ok := buildSheet(name, mdTableRecords(t, src)); ok {
				wb.Sheets = append(wb.Sheets, sheet)
			}
		}
	}
	return wb, nil
}

// mdTableRecords flattens a goldmark table into a cell grid: the header row
// first, then each body row.
func mdTableRecords(table *east.Table, src []byte) [][]string {
	var records [][]string
	for r := table.FirstChild(); r != nil; r = r.NextSibling() {
		switch r.(type) {
		case *east.TableHeader, *east.TableRow:
			var cells []string
			for c := r.FirstChild(); c != nil; c = c.NextSibling() {
				cells = append(cells, mdCellText(c, src))
			}
			records = append(records, cells)
		}
	}
	return records
}

// mdCellText gets the text content of a table cell's inline children.
func mdCellText(n ast.Node, src []byte) string {
	var buf strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
		} else {
			buf.WriteString(mdCellText(c, src))
		}
	}
	return strings.TrimSpace(buf.String())
}
