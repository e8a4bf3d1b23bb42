package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dgallion1/pagewise/internal/config"
	"github.com/dgallion1/pagewise/internal/pipeline"
	"github.com/dgallion1/pagewise/internal/reader"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for pagewise.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	sessions     *reader.Store
	stats        *LatencyStats
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(orch *pipeline.Orchestrator, sessions *reader.Store, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		sessions:     sessions,
		stats:        NewLatencyStats(time.Hour),
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
	r.Use(RequestLogger(s.log, s.stats))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Post("/api/documents", s.handleUpload)
		r.Get("/api/documents/jobs/{jobID}", s.handleJobStatus)
		r.Get("/api/stats", s.handleStats)

		r.Post("/api/sessions", s.handleCreateSession)
		r.Route("/api/sessions/{sessionID}", func(r chi.Router) {
			r.Get("/", s.handleGetSession)
			r.Delete("/", s.handleDeleteSession)
			r.Get("/pages", s.handlePages)

			r.Route("/surfaces/{page}", func(r chi.Router) {
				r.Post("/", s.handleMount)
				r.Delete("/", s.handleUnmount)
				r.Post("/loaded", s.handleLoaded)
				r.Post("/messages", s.handleMessage)
				r.Get("/commands", s.handleCommands)
			})

			r.Post("/swipe", s.handleSwipe)
			r.Post("/slider", s.handleSlider)
			r.Post("/menu", s.handleMenu)
			r.Post("/resize", s.handleResize)
			r.Post("/theme", s.handleTheme)
			r.Post("/toolbar", s.handleToolbar)
			r.Post("/notes", s.handleNotes)
			r.Delete("/notes", s.handleCloseNotes)
		})
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
