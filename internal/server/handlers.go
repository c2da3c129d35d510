package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/saymetristan/whaapy-ai/internal/version"
)

// dataResponse wraps successful payloads: {"data": ...}.
type dataResponse struct {
	Data any `json:"data"`
}

// errorResponse is the JSON error body: {"error": ...}.
type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// handleRoot returns the service identity.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"service": serviceName,
		"version": version.Version,
		"status":  "healthy",
	})
}

// HealthResponse reports service and store health. The shape is part of
// the backend contract and carries exactly these three fields.
type HealthResponse struct {
	Service  string `json:"service"`
	Status   string `json:"status"`
	Database string `json:"database"`
}

// healthCheckTimeout bounds the store ping so a hung database cannot hang
// the health endpoint.
const healthCheckTimeout = 2 * time.Second

// handleHealth reports liveness plus store reachability. An unreachable
// store degrades the status but the endpoint still answers 200; callers
// inspect the body.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	status := "healthy"
	dbStatus := "healthy"
	if err := s.db.Ping(ctx); err != nil {
		s.log.Warn().Err(err).Msg("health check: store unreachable")
		status = "degraded"
		dbStatus = "unhealthy: " + err.Error()
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Service:  serviceName,
		Status:   status,
		Database: dbStatus,
	})
}

// handleNotFound returns a 404 for unknown routes.
func handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]string{
		"error": "not found",
		"path":  r.URL.Path,
	})
}
