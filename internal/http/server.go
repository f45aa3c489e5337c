package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/davidbz/ember/internal/config"
	"github.com/davidbz/ember/internal/http/middleware"
	"github.com/davidbz/ember/internal/observability"
)

// Server represents the HTTP server.
type Server struct {
	config      *config.ServerConfig
	metrics     *config.MetricsConfig
	handler     *Handler
	middlewares middleware.Middleware
	srv         *http.Server
}

// NewServer creates a new HTTP server.
func NewServer(
	serverCfg *config.ServerConfig,
	metricsCfg *config.MetricsConfig,
	handler *Handler,
	middlewares middleware.Middleware,
) *Server {
	s := &Server{
		config:      serverCfg,
		metrics:     metricsCfg,
		handler:     handler,
		middlewares: middlewares,
	}

	s.srv = &http.Server{
		Addr:        fmt.Sprintf(":%d", serverCfg.Port),
		Handler:     s.Routes(),
		ReadTimeout: time.Duration(serverCfg.ReadTimeout) * time.Second,
		// Zero keeps long streams open.
		WriteTimeout: time.Duration(serverCfg.WriteTimeout) * time.Second,
	}
	return s
}

// Routes builds the mux wrapped in the middleware chain.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /{provider}/v1/chat/completions", s.handler.HandleChatCompletion)
	mux.HandleFunc("POST /v1/chat/completions", s.handler.HandleChatCompletion)
	mux.HandleFunc("GET /health", s.handler.HandleHealth)
	mux.HandleFunc("GET /{$}", s.handler.HandleRoot)

	if s.metrics != nil && s.metrics.Enabled {
		mux.Handle("GET /metrics", promhttp.Handler())
	}

	return s.middlewares(mux)
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	observability.FromContext(context.Background()).Info("starting HTTP server",
		observability.Int("port", s.config.Port))

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	observability.FromContext(ctx).Info("shutting down HTTP server")

	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}
