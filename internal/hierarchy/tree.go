package hierarchy

import (
	"github.com/google/uuid"
)

// Level is the depth of a node in the aggregation tree.
type Level int

const (
	LevelCategory Level = iota // one per input sheet
	LevelClass
	LevelSubject
	LevelChapter
	LevelTopic // leaf level, holds rows
)

func (l Level) String() string {
	switch l {
	case LevelCategory:
		return "category"
	case LevelClass:
		return "class"
	case LevelSubject:
		return "subject"
	case LevelChapter:
		return "chapter"
	case LevelTopic:
		return "topic"
	}
	return "unknown"
}

// Node is one position in the aggregation tree. Positions are identified by
// UUID rather than a delimiter-joined path string, so group names containing
// any particular character can never collide or confuse descendant matching.
type Node struct {
	ID    uuid.UUID
	Name  string
	Level Level

	parent   *Node
	children []*Node
	byName   map[string]*Node

	// Rows is populated only at LevelTopic, in ingestion order.
	Rows []Row
}

// Parent returns the node's parent, nil for categories.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the node's children in creation (ingestion) order. The
// returned slice must not be modified.
func (n *Node) Children() []*Node { return n.children }

// Child looks up a direct child by name.
func (n *Node) Child(name string) *Node {
	if n.byName == nil {
		return nil
	}
	return n.byName[name]
}

// ensureChild returns the named child, creating it at the next level down if
// it does not exist yet. The second result reports whether a node was created.
func (n *Node) ensureChild(name string) (*Node, bool) {
	if c := n.Child(name); c != nil {
		return c, false
	}
	c := &Node{
		ID:     uuid.New(),
		Name:   name,
		Level:  n.Level + 1,
		parent: n,
	}
	if n.byName == nil {
		n.byName = make(map[string]*Node)
	}
	n.byName[name] = c
	n.children = append(n.children, c)
	return c, true
}

// Tree is the full four-level aggregate built from one uploaded workbook:
// categories (sheets) at the top, topics with rows at the bottom. Empty groups
// are kept; only Filter produces pruned views.
type Tree struct {
	categories []*Node
	byName     map[string]*Node
	headers    map[string][]string
	index      map[uuid.UUID]*Node
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{
		byName:  make(map[string]*Node),
		headers: make(map[string][]string),
		index:   make(map[uuid.UUID]*Node),
	}
}

// Categories returns the category nodes in input-sheet order.
func (t *Tree) Categories() []*Node { return t.categories }

// Category looks up a category node by sheet name.
func (t *Tree) Category(name string) *Node { return t.byName[name] }

// Node resolves a node ID anywhere in the tree, nil if unknown.
func (t *Tree) Node(id uuid.UUID) *Node { return t.index[id] }

// Headers returns the header row recorded for a category's source sheet.
func (t *Tree) Headers(category string) []string { return t.headers[category] }

// Len reports the number of indexed nodes at all levels.
func (t *Tree) Len() int { return len(t.index) }

// ensureCategory returns the category node for a sheet, creating and indexing
// it on first use.
func (t *Tree) ensureCategory(name string, headers []string) (*Node, bool) {
	if c, ok := t.byName[name]; ok {
		return c, false
	}
	c := &Node{
		ID:    uuid.New(),
		Name:  name,
		Level: LevelCategory,
	}
	t.byName[name] = c
	t.categories = append(t.categories, c)
	t.headers[name] = headers
	t.register(c)
	return c, true
}

func (t *Tree) register(n *Node) {
	t.index[n.ID] = n
}

// EachNode visits every node in depth-first tree order.
func (t *Tree) EachNode(fn func(*Node)) {
	var walk func(*Node)
	walk = func(n *Node) {
		fn(n)
		for _, c := range n.children {
			walk(c)
		}
	}
	for _, c := range t.categories {
		walk(c)
	}
}
