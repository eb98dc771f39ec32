// Package session holds the mutable state of one loaded workbook: the
// aggregation tree, its selection store, and the UI expansion map. A session
// is created whole by a completed ingestion, mutated only through its two
// entry points, and replaced wholesale when a new file finishes ingesting.
package session

import (
	"sync"
	"time"

	"github.com/dgrange/sheetsift/internal/hierarchy"
	"github.com/google/uuid"
)

// Session is the state of one successfully ingested workbook.
type Session struct {
	mu sync.Mutex

	filename  string
	createdAt time.Time

	tree      *hierarchy.Tree
	selection *hierarchy.SelectionStore
	expanded  map[uuid.UUID]bool

	// dirty is true while the current selection has not been exported.
	dirty bool
}

// New wraps a finished aggregate into a session.
func New(filename string, agg *hierarchy.Aggregate) *Session {
	return &Session{
		filename:  filename,
		createdAt: time.Now(),
		tree:      agg.Tree,
		selection: agg.Selection,
		expanded:  agg.Expanded,
	}
}

// Filename returns the name of the uploaded file this session came from.
func (s *Session) Filename() string { return s.filename }

// CreatedAt returns when the session was published.
func (s *Session) CreatedAt() time.Time { return s.createdAt }

// Tree returns the aggregation tree. The tree itself is immutable after
// ingestion; only selection and expansion change.
func (s *Session) Tree() *hierarchy.Tree { return s.tree }

// Selection returns the selection store for read access.
func (s *Session) Selection() *hierarchy.SelectionStore { return s.selection }

// SetNode checks or unchecks a node with full tri-state propagation and marks
// the session as having unexported changes.
func (s *Session) SetNode(id uuid.UUID, checked bool) error {
	if err := s.selection.SetNode(id, checked); err != nil {
		return err
	}
	s.mu.Lock()
	s.dirty = true
	s.mu.Unlock()
	return nil
}

// ToggleExpanded flips a node's expansion flag. Expansion is display state
// only and never affects selection.
func (s *Session) ToggleExpanded(id uuid.UUID) error {
	if s.tree.Node(id) == nil {
		return hierarchy.ErrUnknownNode
	}
	s.mu.Lock()
	s.expanded[id] = !s.expanded[id]
	s.mu.Unlock()
	return nil
}

// Expanded returns a snapshot copy of the expansion map.
func (s *Session) Expanded() map[uuid.UUID]bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[uuid.UUID]bool, len(s.expanded))
	for id, v := range s.expanded {
		out[id] = v
	}
	return out
}

// Dirty reports whether the selection has changed since the last successful
// export.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// MarkExported clears the dirty flag after a successful export. A failed
// export must not call this.
func (s *Session) MarkExported() {
	s.mu.Lock()
	s.dirty = false
	s.mu.Unlock()
}

// Store holds the one current session. Publishing swaps the whole session
// atomically, so an ingestion abandoned midway can never corrupt what a
// previous upload committed.
type Store struct {
	mu      sync.Mutex
	current *Session
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Current returns the active session, nil before the first successful upload.
func (st *Store) Current() *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.current
}

// Publish replaces the active session with a freshly built one.
func (st *Store) Publish(s *Session) {
	st.mu.Lock()
	st.current = s
	st.mu.Unlock()
}
