package hierarchy

import (
	"github.com/google/uuid"
)

// CategoryExport is the projected output for one category: the sheet name,
// its header row, and the selected rows in tree traversal order.
type CategoryExport struct {
	Sheet   string
	Headers []string
	Rows    []Row
}

// Project walks the tree against the selection store and collects, per
// category, every row belonging to a topic whose state is exactly checked,
// descending only through levels that are checked or indeterminate.
// Categories that contribute no rows are omitted. Project reads a single
// snapshot of the selection map, mutates nothing, and may be called any
// number of times between selection changes.
func Project(t *Tree, sel *SelectionStore) []CategoryExport {
	states := sel.States()

	var out []CategoryExport
	for _, cat := range t.Categories() {
		if !included(states, cat.ID) {
			continue
		}
		var rows []Row
		collectRows(cat, states, &rows)
		if len(rows) == 0 {
			continue
		}
		out = append(out, CategoryExport{
			Sheet:   cat.Name,
			Headers: t.Headers(cat.Name),
			Rows:    rows,
		})
	}
	return out
}

func included(states map[uuid.UUID]SelectionState, id uuid.UUID) bool {
	st := states[id]
	return st.Checked || st.Indeterminate
}

func collectRows(n *Node, states map[uuid.UUID]SelectionState, rows *[]Row) {
	for _, c := range n.Children() {
		if c.Level == LevelTopic {
			// Topics are leaves: only an explicit checked state exports rows.
			if states[c.ID].Checked {
				*rows = append(*rows, c.Rows...)
			}
			continue
		}
		if included(states, c.ID) {
			collectRows(c, states, rows)
		}
	}
}
