package api

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/dgrange/sheetsift/internal/hierarchy"
	"github.com/dgrange/sheetsift/internal/sheetio"
)

// handleExport projects the currently selected rows and streams them back as
// an xlsx attachment. On writer failure the session keeps its unexported
// changes so the user can simply retry.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	sess := s.orchestrator.Sessions().Current()
	if sess == nil {
		jsonError(w, "no workbook loaded", http.StatusNotFound)
		return
	}

	exports := hierarchy.Project(sess.Tree(), sess.Selection())

	var buf bytes.Buffer
	if err := sheetio.WriteWorkbook(&buf, exports); err != nil {
		s.log.Error("export failed", "error", err)
		jsonError(w, "export failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	sess.MarkExported()

	name := strings.TrimSuffix(sess.Filename(), ".xlsx")
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s-selected.xlsx"`, name))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", buf.Len()))
	w.Write(buf.Bytes())
}
