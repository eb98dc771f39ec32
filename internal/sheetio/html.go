package sheetio

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// HTMLReader handles HTML files containing <table> elements. Each table
// becomes one sheet, named after its <caption> when present.
type HTMLReader struct{}

func (p *HTMLReader) Read(r io.Reader, filename string) (*Workbook, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: parse html: %v", ErrMalformedInput, err)
	}

	wb := &Workbook{}
	n := 0
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode && node.Data == "table" {
			n++
			name := tableCaption(node)
			if name == "" {
				name = fmt.Sprintf("Table %d", n)
			}
			if sheet, ok := buildSheet(name, tableRecords(node)); ok {
				wb.Sheets = append(wb.Sheets, sheet)
			}
			return // nested tables are not supported
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return wb, nil
}

// tableRecords flattens a <table> into a cell grid: one record per <tr>, one
// cell per <th>/<td>, regardless of thead/tbody grouping.
func tableRecords(table *html.Node) [][]string {
	var records [][]string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			var cells []string
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && (c.Data == "th" || c.Data == "td") {
					cells = append(cells, textContent(c))
				}
			}
			records = append(records, cells)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(table)
	return records
}

func tableCaption(table *html.Node) string {
	for c := table.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "caption" {
			return textContent(c)
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}
