// Package httpapi exposes the assessment engine as a JSON HTTP API, along
// with health, readiness, and metrics endpoints.
package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cairnhealth/altitude-risk-service/internal/domain"
	"github.com/cairnhealth/altitude-risk-service/internal/observability"
	"github.com/cairnhealth/altitude-risk-service/internal/service"
)

// AssessmentService is the slice of the service layer the API needs.
type AssessmentService interface {
	Assess(ctx context.Context, req service.AssessRequest) (service.AssessResult, error)
	Lookup(ctx context.Context, name string) (domain.PlaceElevation, error)
	Guideline() domain.Guideline
	CheckReadiness(ctx context.Context) error
}

// Server exposes the assessment API over HTTP.
type Server struct {
	httpServer *http.Server
	assessor   AssessmentService
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewServer creates the HTTP server with all API and operational routes.
func NewServer(addr string, assessor AssessmentService, metrics *observability.Metrics, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		assessor: assessor,
		metrics:  metrics,
		logger:   logger,
	}

	mux.HandleFunc("POST /api/v1/assessments", s.handleAssess)
	mux.HandleFunc("GET /api/v1/elevation/classify", s.handleClassify)
	mux.HandleFunc("POST /api/v1/symptoms/score", s.handleScore)
	mux.HandleFunc("GET /api/v1/locations", s.handleLookup)

	mux.HandleFunc("GET /api/v1/conditions", s.handleConditions)
	mux.HandleFunc("GET /api/v1/conditions/{id}", s.handleConditionDetail)
	mux.HandleFunc("GET /api/v1/conditions/{id}/prevention", s.handleConditionGuidelines("prevention"))
	mux.HandleFunc("GET /api/v1/conditions/{id}/treatment", s.handleConditionGuidelines("treatment"))
	mux.HandleFunc("POST /api/v1/conditions/search", s.handleConditionSearch)

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	s.httpServer.Handler = s.withMiddleware(mux)
	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
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

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.assessor.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
