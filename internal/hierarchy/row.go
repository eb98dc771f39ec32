package hierarchy

import (
	"fmt"
	"strings"
)

// Row is one data row from an input sheet. Cells are positional against the
// sheet's header order and padded to header width, so an intentionally blank
// cell is an empty string, never a missing entry. Index is the row's 0-based
// position within its source sheet, which stays stable across ingestion
// batches.
type Row struct {
	Index int      `json:"index"`
	Cells []string `json:"cells"`
}

// FieldKind identifies one of the four grouping columns.
type FieldKind int

const (
	FieldClass FieldKind = iota
	FieldSubject
	FieldChapter
	FieldTopic
)

func (k FieldKind) String() string {
	switch k {
	case FieldClass:
		return "Class"
	case FieldSubject:
		return "Subject"
	case FieldChapter:
		return "Chapter"
	case FieldTopic:
		return "Topic"
	}
	return "Field"
}

// groupColumns locates the four grouping columns in a header row. Matching is
// case-insensitive and trims surrounding whitespace; a missing column is
// reported as -1, which makes every row blank at that level.
type groupColumns struct {
	class, subject, chapter, topic int
}

func locateGroupColumns(headers []string) groupColumns {
	cols := groupColumns{class: -1, subject: -1, chapter: -1, topic: -1}
	for i, h := range headers {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "class":
			if cols.class < 0 {
				cols.class = i
			}
		case "subject":
			if cols.subject < 0 {
				cols.subject = i
			}
		case "chapter":
			if cols.chapter < 0 {
				cols.chapter = i
			}
		case "topic":
			if cols.topic < 0 {
				cols.topic = i
			}
		}
	}
	return cols
}

func (c groupColumns) index(kind FieldKind) int {
	switch kind {
	case FieldClass:
		return c.class
	case FieldSubject:
		return c.subject
	case FieldChapter:
		return c.chapter
	case FieldTopic:
		return c.topic
	}
	return -1
}

// groupName derives the group name for one level of one row. A blank cell
// (empty after trimming, or the column missing entirely) is replaced with a
// placeholder keyed to the row's absolute sheet position, so two blank rows
// never collapse into the same group regardless of how the sheet was batched.
func groupName(row Row, cols groupColumns, kind FieldKind) string {
	col := cols.index(kind)
	if col >= 0 && col < len(row.Cells) {
		if v := strings.TrimSpace(row.Cells[col]); v != "" {
			return v
		}
	}
	return fmt.Sprintf("Unknown %s %d", kind, row.Index+1)
}

// groupPath derives all four group names for a row. Non-grouping cells are
// never touched.
func groupPath(row Row, cols groupColumns) [4]string {
	return [4]string{
		groupName(row, cols, FieldClass),
		groupName(row, cols, FieldSubject),
		groupName(row, cols, FieldChapter),
		groupName(row, cols, FieldTopic),
	}
}
