// Package server provides the HTTP server implementation.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/vyrodovalexey/stockroom/internal/config"
	"github.com/vyrodovalexey/stockroom/internal/handler"
	"github.com/vyrodovalexey/stockroom/internal/middleware"
	"github.com/vyrodovalexey/stockroom/internal/store"
)

// TracerName identifies spans produced by the HTTP layer.
const TracerName = "github.com/vyrodovalexey/stockroom"

// Server represents the HTTP server.
type Server struct {
	httpServer *http.Server
	router     *mux.Router
	handler    http.Handler
	config     *config.Config
	logger     *zap.Logger
	wsHandler  *handler.WebSocketHandler
}

// New creates a new Server instance.
func New(cfg *config.Config, logger *zap.Logger, itemStore store.Store) *Server {
	router := mux.NewRouter()

	s := &Server{
		router: router,
		config: cfg,
		logger: logger,
	}

	s.setupRoutes(itemStore)
	s.setupMiddleware()
	s.setupHTTPServer()

	return s
}

// setupMiddleware configures the middleware chain.
// Route-aware middleware runs inside the router; the rest wraps it so that
// unmatched routes and preflight requests are logged and carry CORS headers.
func (s *Server) setupMiddleware() {
	allowedMethods := []string{
		http.MethodGet,
		http.MethodPost,
		http.MethodDelete,
		http.MethodOptions,
	}
	allowedHeaders := []string{
		"Content-Type",
		middleware.RequestIDHeader,
	}

	if s.config.MetricsEnabled {
		s.router.Use(mux.MiddlewareFunc(middleware.Metrics()))
	}
	s.router.Use(mux.MiddlewareFunc(middleware.Tracing(TracerName)))

	// First applied = outermost
	s.handler = middleware.Chain(
		middleware.Recovery(s.logger),
		middleware.RequestID(),
		middleware.Logging(s.logger),
		middleware.CORS(s.config.CORSAllowedOrigins, allowedMethods, allowedHeaders),
	)(s.router)
}

// setupRoutes configures the API routes.
func (s *Server) setupRoutes(itemStore store.Store) {
	// WebSocket upgrades match on any path, so they are registered first
	s.wsHandler = handler.NewWebSocketHandler(s.logger, s.config.WSSendBuffer)
	s.wsHandler.RegisterRoutes(s.router)

	// REST API handler; every created item is broadcast to WebSocket clients
	restHandler := handler.NewRESTHandler(itemStore, s.wsHandler, s.logger)
	restHandler.RegisterRoutes(s.router)

	// Metrics endpoint
	if s.config.MetricsEnabled {
		s.router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	}
}

// setupHTTPServer configures the HTTP server.
func (s *Server) setupHTTPServer() {
	s.httpServer = &http.Server{
		Addr:              s.config.Address(),
		Handler:           s.handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1 MB
	}
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Info("starting server",
		zap.String("address", s.config.Address()),
		zap.Bool("metrics_enabled", s.config.MetricsEnabled),
		zap.Bool("tracing_enabled", s.config.TracingEnabled()),
	)

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server listen and serve: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server")

	// Close all WebSocket connections first; hijacked connections are not
	// tracked by http.Server.Shutdown
	if s.wsHandler != nil {
		s.wsHandler.CloseAllConnections()
	}

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	s.logger.Info("server shutdown complete")
	return nil
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Router returns the server's router for testing purposes.
func (s *Server) Router() *mux.Router {
	return s.router
}

// WebSocket returns the server's WebSocket hub.
func (s *Server) WebSocket() *handler.WebSocketHandler {
	return s.wsHandler
}
