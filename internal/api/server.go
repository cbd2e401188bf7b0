package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/scriptmentor/scriptparse/internal/config"
	"github.com/scriptmentor/scriptparse/internal/feedback"
	"github.com/scriptmentor/scriptparse/internal/pipeline"
)

// Server is the HTTP API server for scriptparse.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	mentor       *feedback.Client
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(orch *pipeline.Orchestrator, mentor *feedback.Client, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		mentor:       mentor,
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
		r.Use(AuthMiddleware(s.cfg.ServiceAPIKey, s.log))

		r.Post("/api/parse", s.handleParse)

		r.Post("/api/scripts", s.handleIngest)
		r.Get("/api/scripts/{jobID}/status", s.handleIngestStatus)

		r.Get("/api/scripts", s.handleListScripts)
		r.Get("/api/scripts/{scriptID}", s.handleGetScript)
		r.Get("/api/scripts/{scriptID}/export.fountain", s.handleExportFountain)
		r.Get("/api/scripts/{scriptID}/report", s.handleReport)
		r.Delete("/api/scripts/{scriptID}", s.handleDeleteScript)

		r.Get("/api/stats/feedback", s.handleFeedbackStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
