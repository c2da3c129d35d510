package server

import "net/http"

// registerRoutes sets up all HTTP routes on the server mux. The /ai/*
// routes require the service bearer token; the rest are public.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", s.metrics.handler())

	mux.HandleFunc("GET /ai/config/{business_id}", s.requireAuth(s.handleGetConfig))
	mux.HandleFunc("PUT /ai/config/{business_id}", s.requireAuth(s.handlePutConfig))
	mux.HandleFunc("POST /ai/usage", s.requireAuth(s.handleRecordUsage))
	mux.HandleFunc("GET /ai/analytics/token-usage", s.requireAuth(s.handleTokenUsage))

	// Catch-all for unknown routes
	mux.HandleFunc("/", handleNotFound)
}
