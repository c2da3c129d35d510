// Package server is the whaapy-ai HTTP surface: agent config CRUD, usage
// analytics, and health reporting behind shared-secret bearer auth.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/saymetristan/whaapy-ai/internal/config"
	"github.com/saymetristan/whaapy-ai/internal/logging"
	"github.com/saymetristan/whaapy-ai/internal/store"
)

// serviceName identifies this service in health and root responses. The
// backend matches on it, so it never changes.
const serviceName = "whaapy-ai"

// Server is the whaapy-ai HTTP server.
type Server struct {
	cfg     config.Config
	log     *logging.Logger
	db      *store.DB
	configs *store.AgentConfigStore
	usage   *store.UsageStore
	metrics *metrics
	limiter *authRateLimiter

	startedAt  time.Time
	httpServer *http.Server
}

// New creates a server over an opened store.
func New(cfg config.Config, db *store.DB, log *logging.Logger) *Server {
	return &Server{
		cfg:     cfg,
		log:     log.Sub("server"),
		db:      db,
		configs: store.NewAgentConfigStore(db),
		usage:   store.NewUsageStore(db),
		metrics: newMetrics(),
		limiter: newAuthRateLimiter(),
	}
}

// Handler returns the full HTTP handler with routes and middleware; tests
// mount it directly on httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.registerRoutes(mux)
	return withMiddleware(mux, s.log, s.cfg.AllowedOrigins(), s.metrics)
}

// resolveBindAddr computes the listen address from config.
func resolveBindAddr(cfg config.ServerConfig) string {
	host := "0.0.0.0"
	if cfg.Bind == "loopback" {
		host = "127.0.0.1"
	}
	return fmt.Sprintf("%s:%d", host, cfg.Port)
}

// Start begins listening for HTTP connections. It blocks until the context
// is cancelled or an error occurs.
func (s *Server) Start(ctx context.Context) error {
	addr := resolveBindAddr(s.cfg.Server)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		BaseContext:  func(l net.Listener) context.Context { return ctx },
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	s.startedAt = time.Now()

	s.log.Info().
		Str("addr", ln.Addr().String()).
		Str("backend", s.cfg.Backend.URL).
		Msg("server ready")

	// Shutdown when context is cancelled
	go func() {
		<-ctx.Done()
		s.log.Info().Msg("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.httpServer.Shutdown(shutdownCtx)
	}()

	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Addr returns the server's listen address, or empty string if not started.
func (s *Server) Addr() string {
	if s.httpServer != nil {
		return s.httpServer.Addr
	}
	return ""
}
