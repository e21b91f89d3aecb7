package server

import (
	"log/slog"
	"net/http"

	"github.com/claude/push/internal/ingest/alpha"
	"github.com/claude/push/internal/rotation"
	"github.com/claude/push/internal/state"
	"github.com/go-chi/chi/v5"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	state    *state.Store
	rotator  *rotation.Rotator
	importer *alpha.Importer
	log      *slog.Logger
	apiKey   string
	router   chi.Router
}

// New creates a new Server with all routes configured. An empty apiKey
// leaves the mutating routes open.
func New(st *state.Store, rotator *rotation.Rotator, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		state:    st,
		rotator:  rotator,
		importer: alpha.NewImporter(st, log),
		log:      log,
		apiKey:   apiKey,
		router:   chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Get("/api/v1/health", s.handleHealth)
	s.router.Get("/api/v1/workouts", s.handleGetAllWorkouts)
	s.router.Get("/api/v1/workouts/{slot}", s.handleGetWorkout)
	s.router.Get("/api/v1/exercises/{exerciseID}/views", s.handleExerciseViews)

	s.router.Group(func(r chi.Router) {
		if s.apiKey != "" {
			r.Use(APIKeyAuth(s.apiKey))
		}

		r.Route("/api/v1/current/exercises/{exerciseID}/sets", func(r chi.Router) {
			r.Post("/", s.handleAddSet)
			r.Delete("/last", s.handleRemoveSet)
			r.Put("/{setID}/completed", s.handleSetCompleted)
			r.Put("/{setID}/{field}", s.handleUpdateCurrentField)
			r.Post("/{setID}/{field}/confirm", s.handleConfirmCurrentField)
		})
		r.Put("/api/v1/next/exercises/{exerciseID}/sets/{setID}/{field}", s.handleUpdateNextField)

		r.Post("/api/v1/session/foreground", s.handleForeground)
		r.Post("/api/v1/import/alpha", s.handleAlphaImport)
	})
}

// MountMCP serves an MCP handler under /mcp.
func (s *Server) MountMCP(h http.Handler) {
	s.router.Handle("/mcp", h)
}
