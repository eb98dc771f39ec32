package hierarchy

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrUnknownNode is returned when a selection operation names a node that is
// not part of the tree.
var ErrUnknownNode = errors.New("unknown node")

// SelectionState is the tri-state checkbox status of one node. At most one of
// the two flags is true: an indeterminate node always reports Checked false.
type SelectionState struct {
	Checked       bool `json:"checked"`
	Indeterminate bool `json:"indeterminate"`
}

// SelectionStore holds the tri-state selection status for every node of one
// tree. It is created alongside the tree at ingestion time with every node
// checked, mutated only through SetNode for the session's lifetime, and
// discarded with the tree when a new workbook is uploaded.
//
// SetNode keeps the tree-wide invariant that every internal node's state is
// fully determined by its children: all children checked means checked, any
// child checked or indeterminate means indeterminate, otherwise unchecked.
type SelectionStore struct {
	mu     sync.Mutex
	tree   *Tree
	states map[uuid.UUID]SelectionState
}

func newSelectionStore(tree *Tree) *SelectionStore {
	return &SelectionStore{
		tree:   tree,
		states: make(map[uuid.UUID]SelectionState),
	}
}

// seed records the default all-checked state for a newly created node.
func (s *SelectionStore) seed(id uuid.UUID) {
	s.mu.Lock()
	s.states[id] = SelectionState{Checked: true}
	s.mu.Unlock()
}

// State returns a node's current state. A node absent from the store reads as
// unchecked and not indeterminate.
func (s *SelectionStore) State(id uuid.UUID) SelectionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.states[id]
}

// States returns a snapshot copy of the whole map, safe for the caller to
// read while SetNode continues elsewhere.
func (s *SelectionStore) States() map[uuid.UUID]SelectionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[uuid.UUID]SelectionState, len(s.states))
	for id, st := range s.states {
		out[id] = st
	}
	return out
}

// SetNode sets one node fully checked or fully unchecked, forces every
// descendant to the same state, and recomputes every ancestor up to the
// category level from its children. The whole update is atomic with respect
// to other SetNode calls.
func (s *SelectionStore) SetNode(id uuid.UUID, checked bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	node := s.tree.Node(id)
	if node == nil {
		return ErrUnknownNode
	}

	s.states[id] = SelectionState{Checked: checked}
	s.forceDescendants(node, checked)

	for p := node.Parent(); p != nil; p = p.Parent() {
		s.states[p.ID] = s.fromChildren(p)
	}
	return nil
}

// forceDescendants overwrites every strict descendant unconditionally.
func (s *SelectionStore) forceDescendants(n *Node, checked bool) {
	for _, c := range n.Children() {
		s.states[c.ID] = SelectionState{Checked: checked}
		s.forceDescendants(c, checked)
	}
}

// fromChildren computes an internal node's state from its direct children.
func (s *SelectionStore) fromChildren(n *Node) SelectionState {
	all := true
	any := false
	for _, c := range n.Children() {
		st := s.states[c.ID]
		if st.Checked || st.Indeterminate {
			any = true
		}
		if !st.Checked {
			all = false
		}
	}
	switch {
	case all && len(n.Children()) > 0:
		return SelectionState{Checked: true}
	case any:
		return SelectionState{Indeterminate: true}
	default:
		return SelectionState{}
	}
}
