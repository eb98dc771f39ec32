package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dgrange/sheetsift/internal/hierarchy"
	"github.com/dgrange/sheetsift/internal/session"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// nodeView is the JSON shape of one tree node as rendered by a UI: name,
// tri-state checkbox status, expansion flag, and children.
type nodeView struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Level         string     `json:"level"`
	Checked       bool       `json:"checked"`
	Indeterminate bool       `json:"indeterminate"`
	Expanded      bool       `json:"expanded"`
	RowCount      int        `json:"row_count,omitempty"`
	Children      []nodeView `json:"children,omitempty"`
}

// handleTree returns the current tree, optionally filtered by ?search=, with
// per-node selection and expansion state attached.
func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	sess := s.orchestrator.Sessions().Current()
	if sess == nil {
		jsonError(w, "no workbook loaded", http.StatusNotFound)
		return
	}

	term := r.URL.Query().Get("search")
	view := sess.Tree().Filter(term)
	states := sess.Selection().States()
	expanded := sess.Expanded()

	var categories []nodeView
	for _, cat := range view.Categories() {
		categories = append(categories, buildView(cat, states, expanded))
	}
	if categories == nil {
		categories = []nodeView{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"filename":   sess.Filename(),
		"search":     term,
		"dirty":      sess.Dirty(),
		"categories": categories,
	})
}

func buildView(n *hierarchy.Node, states map[uuid.UUID]hierarchy.SelectionState, expanded map[uuid.UUID]bool) nodeView {
	st := states[n.ID]
	v := nodeView{
		ID:            n.ID.String(),
		Name:          n.Name,
		Level:         n.Level.String(),
		Checked:       st.Checked,
		Indeterminate: st.Indeterminate,
		Expanded:      expanded[n.ID],
		RowCount:      len(n.Rows),
	}
	for _, c := range n.Children() {
		v.Children = append(v.Children, buildView(c, states, expanded))
	}
	return v
}

// handleSetSelection checks or unchecks one node; tri-state propagation to
// descendants and ancestors happens inside the selection store.
func (s *Server) handleSetSelection(w http.ResponseWriter, r *http.Request) {
	sess := s.orchestrator.Sessions().Current()
	if sess == nil {
		jsonError(w, "no workbook loaded", http.StatusNotFound)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "nodeID"))
	if err != nil {
		jsonError(w, "invalid node id", http.StatusBadRequest)
		return
	}

	var body struct {
		Checked bool `json:"checked"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		jsonError(w, "invalid body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := sess.SetNode(id, body.Checked); err != nil {
		if errors.Is(err, hierarchy.ErrUnknownNode) {
			jsonError(w, "node not found", http.StatusNotFound)
			return
		}
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeNodeState(w, sess, id)
}

// handleToggleExpanded flips a node's expansion flag.
func (s *Server) handleToggleExpanded(w http.ResponseWriter, r *http.Request) {
	sess := s.orchestrator.Sessions().Current()
	if sess == nil {
		jsonError(w, "no workbook loaded", http.StatusNotFound)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "nodeID"))
	if err != nil {
		jsonError(w, "invalid node id", http.StatusBadRequest)
		return
	}

	if err := sess.ToggleExpanded(id); err != nil {
		jsonError(w, "node not found", http.StatusNotFound)
		return
	}

	writeNodeState(w, sess, id)
}

func writeNodeState(w http.ResponseWriter, sess *session.Session, id uuid.UUID) {
	st := sess.Selection().State(id)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"id":            id.String(),
		"checked":       st.Checked,
		"indeterminate": st.Indeterminate,
		"expanded":      sess.Expanded()[id],
		"dirty":         sess.Dirty(),
	})
}
