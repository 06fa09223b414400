package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/shreyan001/adaptic-backend/internal/agent/model"
	"github.com/shreyan001/adaptic-backend/internal/agent/session"
)

// Server is the HTTP boundary of the agent. It owns routing, CORS, and
// request parsing; runs themselves belong to the session controller.
type Server struct {
	router      *chi.Mux
	controller  *session.Controller
	transcripts model.TranscriptStore // nil when Redis is not configured
	cfg         model.ServerConfig
}

func New(cfg model.ServerConfig, controller *session.Controller, transcripts model.TranscriptStore) *Server {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{cfg.AllowedOrigin},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		MaxAge:         300,
	}))

	s := &Server{
		router:      r,
		controller:  controller,
		transcripts: transcripts,
		cfg:         cfg,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Get("/api/health", s.handleHealth)
	s.router.Post("/api/agent", s.handleAgent)
}

func (s *Server) Router() http.Handler { return s.router }

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
