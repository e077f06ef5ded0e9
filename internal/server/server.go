package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/Houeta/floodwatch/internal/geocoding"
	"github.com/Houeta/floodwatch/internal/models"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Assessor computes and retrieves flood risk assessments.
type Assessor interface {
	Assess(ctx context.Context, req models.AssessmentRequest) (*models.Assessment, error)
	Recent(ctx context.Context, limit int) ([]models.Assessment, error)
	ByID(ctx context.Context, id int64) (*models.Assessment, error)
}

// Pinger reports whether the backing database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server exposes the assessment API, the dashboard, and operational endpoints.
type Server struct {
	httpServer  *http.Server
	log         *slog.Logger
	assessor    Assessor
	geocoder    geocoding.Provider
	db          Pinger
	defaultDays int
}

// NewServer creates the HTTP server with all routes registered.
func NewServer(
	addr string,
	assessor Assessor,
	geocoder geocoding.Provider,
	db Pinger,
	reg *prometheus.Registry,
	defaultDays int,
	log *slog.Logger,
) *Server {
	s := &Server{
		log:         log,
		assessor:    assessor,
		geocoder:    geocoder,
		db:          db,
		defaultDays: defaultDays,
	}

	router := mux.NewRouter()
	router.HandleFunc("/api/v1/assess", s.handleAssess).Methods("POST")
	router.HandleFunc("/api/v1/assess", s.handleAssessQuery).Methods("GET")
	router.HandleFunc("/api/v1/geocode", s.handleGeocode).Methods("POST")
	router.HandleFunc("/api/v1/assessments/recent", s.handleRecent).Methods("GET")
	router.HandleFunc("/api/v1/assessments/{id:[0-9]+}", s.handleGetAssessment).Methods("GET")
	router.HandleFunc("/healthz", s.handleHealth).Methods("GET")
	router.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{})).Methods("GET")
	router.HandleFunc("/", s.handleDashboard).Methods("GET")

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.log.Info("HTTP server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
