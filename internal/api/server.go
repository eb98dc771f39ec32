package api

import (
	"log/slog"
	"net/http"

	"github.com/dgrange/sheetsift/internal/config"
	"github.com/dgrange/sheetsift/internal/pipeline"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for sheetsift. It is the surface a rendering
// UI talks to: upload a workbook, read the filtered tree, flip checkboxes,
// download the export.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(orch *pipeline.Orchestrator, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Post("/api/workbooks", s.handleUpload)
		r.Get("/api/workbooks/jobs/{jobID}", s.handleJobStatus)

		r.Get("/api/tree", s.handleTree)
		r.Put("/api/tree/nodes/{nodeID}/selection", s.handleSetSelection)
		r.Post("/api/tree/nodes/{nodeID}/expansion", s.handleToggleExpanded)

		r.Get("/api/export", s.handleExport)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
