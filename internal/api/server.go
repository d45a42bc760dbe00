package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sopforge/sopforge/internal/config"
	"github.com/sopforge/sopforge/internal/outline"
	"github.com/sopforge/sopforge/internal/pipeline"
)

// Server is the HTTP API server for sopforge.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	dec          outline.Decomposer
	log          *slog.Logger
	cfg          config.Config
	template     string
}

// NewServer creates and configures the HTTP server. template overrides the
// built-in markdown template text when non-empty.
func NewServer(orch *pipeline.Orchestrator, dec outline.Decomposer, log *slog.Logger, cfg config.Config, template string) *Server {
	s := &Server{
		orchestrator: orch,
		dec:          dec,
		log:          log,
		cfg:          cfg,
		template:     template,
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

	// Authenticated endpoints. Auth is enforced only when a key is set.
	r.Group(func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey, s.log))
		}

		r.Post("/api/render", s.handleRender)
		r.Post("/api/import", s.handleImport)
		r.Get("/api/formats", s.handleFormats)

		r.Post("/api/jobs", s.handleCreateJob)
		r.Get("/api/jobs/{jobID}", s.handleJobStatus)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
