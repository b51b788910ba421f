package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fortuna/esake/internal/boxscore"
	"github.com/fortuna/esake/internal/store"
	"github.com/gorilla/mux"
)

// Server represents the REST API server
type Server struct {
	port    string
	server  *http.Server
	handler *Handler
	router  *mux.Router
}

// NewServer creates a new REST API server
func NewServer(port string, db *store.Database, extractor *boxscore.Extractor) *Server {
	handler := NewHandler(db, extractor)

	router := mux.NewRouter()

	// Apply middleware
	router.Use(RecoveryMiddleware)
	router.Use(LoggingMiddleware)
	router.Use(CORSMiddleware)

	// Health check
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// API v1 routes
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/seasons", handler.GetSeasons).Methods("GET")

	// Players
	api.HandleFunc("/players", handler.GetPlayers).Methods("GET")
	api.HandleFunc("/players/search", handler.SearchPlayers).Methods("GET")
	api.HandleFunc("/players/{playerID}", handler.GetPlayer).Methods("GET")

	// Teams
	api.HandleFunc("/teams", handler.GetTeams).Methods("GET")
	api.HandleFunc("/teams/{teamID}", handler.GetTeam).Methods("GET")

	// Season summaries
	api.HandleFunc("/stats/players", handler.GetPlayerStats).Methods("GET")
	api.HandleFunc("/stats/teams", handler.GetTeamStats).Methods("GET")

	// Game ids are paths relative to the scrape root and contain slashes.
	api.HandleFunc("/games/{gameID:.+}/boxscore", handler.GetGameBoxScore).Methods("GET")

	// On-demand extraction
	api.HandleFunc("/extract", handler.Extract).Methods("POST")

	return &Server{
		port:    port,
		handler: handler,
		router:  router,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%s", port),
			Handler: router,
		},
	}
}

// Handler returns the routed handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the REST API server
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
