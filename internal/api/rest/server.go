package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
)

// Server represents the REST API server
type Server struct {
	port    string
	server  *http.Server
	handler *Handler
}

// NewServer creates a new REST API server
func NewServer(port string, handler *Handler) *Server {
	router := mux.NewRouter()

	// Apply middleware
	router.Use(RecoveryMiddleware)
	router.Use(LoggingMiddleware)
	router.Use(CORSMiddleware)

	// Health check
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// API v1 routes
	api := router.PathPrefix("/api/v1").Subrouter()

	// Predictions
	api.HandleFunc("/predictions", handler.GetPredictions).Methods("GET")

	// Feature tables
	api.HandleFunc("/features", handler.GetFeatures).Methods("GET")

	// Seasons
	api.HandleFunc("/seasons/current", handler.GetCurrentSeason).Methods("GET")

	// Pipeline operations
	api.HandleFunc("/pipeline/run", handler.RunPipeline).Methods("POST")
	api.HandleFunc("/pipeline/metrics", handler.GetPipelineMetrics).Methods("GET")

	return &Server{
		port:    port,
		handler: handler,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%s", port),
			Handler: router,
		},
	}
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
