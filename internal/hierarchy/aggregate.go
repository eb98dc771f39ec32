package hierarchy

import (
	"github.com/google/uuid"
)

// dedupKey identifies a row for ingestion-time deduplication: the full group
// path plus the row's absolute position in its sheet. Rows with identical
// content at different positions are legitimate and are NOT deduplicated;
// the key only guards against the same physical row being processed twice.
type dedupKey struct {
	sheet   string
	class   string
	subject string
	chapter string
	topic   string
	row     int
}

// Aggregate is the published result of one ingestion run: the tree, the
// initial selection store (everything checked), and the initial expansion map
// (everything collapsed).
type Aggregate struct {
	Tree      *Tree
	Selection *SelectionStore
	Expanded  map[uuid.UUID]bool
}

// Aggregator folds normalized rows into a four-level tree. It is fed in
// caller-chosen batches; batch boundaries have no effect on the resulting
// tree, dedup behavior, or row order. The aggregate is built off to the side
// and only becomes visible to anyone once Finish is called and the caller
// publishes it.
type Aggregator struct {
	tree     *Tree
	sel      *SelectionStore
	expanded map[uuid.UUID]bool
	cols     map[string]groupColumns
	seen     map[dedupKey]struct{}
	dropped  int
}

// NewAggregator starts a fresh ingestion run.
func NewAggregator() *Aggregator {
	tree := NewTree()
	return &Aggregator{
		tree:     tree,
		sel:      newSelectionStore(tree),
		expanded: make(map[uuid.UUID]bool),
		cols:     make(map[string]groupColumns),
		seen:     make(map[dedupKey]struct{}),
	}
}

// AddSheet registers a sheet's header row so its grouping columns can be
// located. The category node itself is created lazily by the first row, so a
// sheet with zero rows never appears in the tree.
func (a *Aggregator) AddSheet(name string, headers []string) {
	if _, ok := a.cols[name]; ok {
		return
	}
	a.cols[name] = locateGroupColumns(headers)
	a.tree.headers[name] = headers
}

// AddRows folds one batch of rows into the tree in order. Each Row must carry
// its absolute 0-based position within the sheet. Returns how many rows were
// appended and how many were dropped as exact duplicates.
func (a *Aggregator) AddRows(sheet string, rows []Row) (added, dropped int) {
	cols, ok := a.cols[sheet]
	if !ok {
		cols = groupColumns{class: -1, subject: -1, chapter: -1, topic: -1}
		a.cols[sheet] = cols
	}

	for _, row := range rows {
		path := groupPath(row, cols)

		key := dedupKey{
			sheet:   sheet,
			class:   path[0],
			subject: path[1],
			chapter: path[2],
			topic:   path[3],
			row:     row.Index,
		}
		if _, dup := a.seen[key]; dup {
			dropped++
			a.dropped++
			continue
		}
		a.seen[key] = struct{}{}

		cat, created := a.tree.ensureCategory(sheet, a.tree.headers[sheet])
		if created {
			a.initNode(cat)
		}
		node := cat
		for _, name := range path {
			child, created := node.ensureChild(name)
			if created {
				a.tree.register(child)
				a.initNode(child)
			}
			node = child
		}
		node.Rows = append(node.Rows, row)
		added++
	}
	return added, dropped
}

// initNode seeds the default states for a freshly created node: selected and
// collapsed.
func (a *Aggregator) initNode(n *Node) {
	a.sel.seed(n.ID)
	a.expanded[n.ID] = false
}

// Dropped reports the total number of duplicate rows discarded so far.
func (a *Aggregator) Dropped() int { return a.dropped }

// Finish completes the run and returns the aggregate. The dedup set exists
// only for the duration of ingestion and is released here.
func (a *Aggregator) Finish() *Aggregate {
	a.seen = nil
	a.cols = nil
	return &Aggregate{
		Tree:      a.tree,
		Selection: a.sel,
		Expanded:  a.expanded,
	}
}
