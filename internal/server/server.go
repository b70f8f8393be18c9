package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/sanonone/kektorpath/internal/mcp"
	"github.com/sanonone/kektorpath/pkg/engine"
)

// Options selects the optional surfaces of the HTTP server.
type Options struct {
	Addr           string
	MCPEnabled     bool
	MetricsEnabled bool
	Logger         zerolog.Logger
}

// Server holds the HTTP interface and the underlying Engine.
type Server struct {
	Engine *engine.Engine

	httpServer *http.Server
	log        zerolog.Logger
}

// NewServer builds the HTTP server around an open Engine.
func NewServer(eng *engine.Engine, opts Options) *Server {
	s := &Server{
		Engine: eng,
		log:    opts.Logger,
	}

	mux := http.NewServeMux()
	s.registerHTTPHandlers(mux)
	if opts.MetricsEnabled {
		mux.Handle("GET /metrics", promhttp.Handler())
	}
	if opts.MCPEnabled {
		mux.Handle("/mcp", mcp.NewHTTPHandler(eng))
	}

	// Chain middlewares: Recovery -> RequestID -> Logging -> Mux
	// Recovery must be outer-most to catch everything.
	var handler http.Handler = mux
	handler = s.LoggingMiddleware(handler)
	handler = s.RequestIDMiddleware(handler)
	handler = s.RecoveryMiddleware(handler)

	rootMux := http.NewServeMux()
	rootMux.HandleFunc("GET /healthz", s.handleHealthz)
	rootMux.Handle("/", handler)
	s.httpServer = &http.Server{
		Addr:              opts.Addr,
		Handler:           rootMux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler exposes the full handler chain, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run starts the HTTP server and blocks until it stops.
func (s *Server) Run() error {
	s.log.Info().Str("addr", s.httpServer.Addr).Msg("HTTP server listening")
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP server startup failed: %w", err)
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones, up to
// five seconds. The Engine is left open.
func (s *Server) Shutdown() {
	s.log.Info().Msg("starting graceful shutdown of HTTP server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.log.Error().Err(err).Msg("HTTP server shutdown error")
	}
}
