package hierarchy

import (
	"strings"
)

// Filter returns a view of the tree containing only branches where some node
// name matches the search term (case-insensitive substring). A matching node
// brings its entire subtree along unfiltered. The view is a fresh structure of
// shallow node copies sharing IDs and row slices with the originals; neither
// the tree nor any selection state is touched. An empty term returns the
// receiver itself.
func (t *Tree) Filter(term string) *Tree {
	if term == "" {
		return t
	}
	needle := strings.ToLower(term)

	view := NewTree()
	for _, cat := range t.categories {
		kept := filterNode(cat, needle)
		if kept == nil {
			continue
		}
		view.categories = append(view.categories, kept)
		view.byName[kept.Name] = kept
		view.headers[kept.Name] = t.headers[kept.Name]
		indexSubtree(view, kept)
	}
	return view
}

// filterNode returns a copy of n pruned to matching branches, or nil when
// neither n nor any descendant matches.
func filterNode(n *Node, needle string) *Node {
	if nameMatches(n.Name, needle) {
		return copySubtree(n, nil)
	}

	var kept []*Node
	for _, c := range n.children {
		if k := filterNode(c, needle); k != nil {
			kept = append(kept, k)
		}
	}
	if len(kept) == 0 {
		return nil
	}

	out := shallowCopy(n, nil)
	for _, k := range kept {
		k.parent = out
		out.children = append(out.children, k)
		out.byName[k.Name] = k
	}
	return out
}

// nameMatches reports whether name contains the lowercased needle. A blank
// name never matches a non-empty term.
func nameMatches(name, needle string) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}
	return strings.Contains(strings.ToLower(name), needle)
}

func shallowCopy(n *Node, parent *Node) *Node {
	return &Node{
		ID:     n.ID,
		Name:   n.Name,
		Level:  n.Level,
		parent: parent,
		byName: make(map[string]*Node),
		Rows:   n.Rows,
	}
}

func copySubtree(n *Node, parent *Node) *Node {
	out := shallowCopy(n, parent)
	for _, c := range n.children {
		k := copySubtree(c, out)
		out.children = append(out.children, k)
		out.byName[k.Name] = k
	}
	return out
}

func indexSubtree(t *Tree, n *Node) {
	t.register(n)
	for _, c := range n.children {
		indexSubtree(t, c)
	}
}
