package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/custodia-labs/deep-core/internal/core/ports/driven"
	"github.com/custodia-labs/deep-core/internal/core/ports/driving"
)

// Pinger is a simple health check interface
type Pinger interface {
	Ping(ctx context.Context) error
}

// ProviderSwitcher lists search providers and switches the active one
type ProviderSwitcher interface {
	Keys() []string
	Lookup(key string) (driven.SearchProvider, bool)
	Active() (string, driven.SearchProvider)
	SetActive(key string) error
}

// Server represents the HTTP control API
type Server struct {
	httpServer *http.Server
	router     *http.ServeMux
	version    string
	logger     *slog.Logger

	// Services
	searchController driving.SearchController
	indexingService  driving.IndexingService
	authService      driving.AuthService // nil disables authentication
	providers        ProviderSwitcher    // optional

	// Infrastructure
	store Pinger // Storage backend health check (optional)

	// Cancelled on shutdown so streaming handlers return
	cancelRequests context.CancelFunc
}

// Config holds server configuration
type Config struct {
	Host    string
	Port    int
	Version string
	Logger  *slog.Logger
}

// DefaultConfig returns sensible defaults. The API binds to loopback
// because it drives the local desktop.
func DefaultConfig() Config {
	return Config{
		Host:    "127.0.0.1",
		Port:    7345,
		Version: "dev",
	}
}

// NewServer creates a new HTTP server
func NewServer(
	cfg Config,
	searchController driving.SearchController,
	indexingService driving.IndexingService,
	authService driving.AuthService, // can be nil
	providers ProviderSwitcher, // can be nil
	store Pinger, // can be nil
) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		router:           http.NewServeMux(),
		version:          cfg.Version,
		logger:           logger.With("category", "network"),
		searchController: searchController,
		indexingService:  indexingService,
		authService:      authService,
		providers:        providers,
		store:            store,
	}

	handler := NewRecoveryMiddleware(s.logger).Handler(
		NewLoggingMiddleware(s.logger).Handler(s.router))

	baseCtx, cancel := context.WithCancel(context.Background())
	s.cancelRequests = cancel

	s.httpServer = &http.Server{
		Addr:         net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		BaseContext:  func(net.Listener) context.Context { return baseCtx },
	}

	s.setupRoutes()
	return s
}

// Handler returns the root handler including middleware
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	authMiddleware := NewAuthMiddleware(s.authService)
	protect := func(h http.HandlerFunc) http.Handler {
		return authMiddleware.Authenticate(h)
	}

	// Health endpoints (no auth)
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /ready", s.handleReady)
	s.router.HandleFunc("GET /version", s.handleVersion)
	s.router.HandleFunc("GET /swagger.json", s.handleSwagger)

	// Search pipeline
	s.router.Handle("GET /api/v1/search", protect(s.handleGetSnapshot))
	s.router.Handle("GET /api/v1/search/events", protect(s.handleSearchEvents))
	s.router.Handle("PUT /api/v1/search/query", protect(s.handleSetQuery))
	s.router.Handle("POST /api/v1/search/next", protect(s.handleNext))
	s.router.Handle("POST /api/v1/search/previous", protect(s.handlePrevious))
	s.router.Handle("POST /api/v1/search/confirm", protect(s.handleConfirm))
	s.router.Handle("POST /api/v1/search/preview", protect(s.handlePreview))
	s.router.Handle("POST /api/v1/search/reveal", protect(s.handleReveal))
	s.router.Handle("POST /api/v1/search/detail", protect(s.handleToggleDetail))

	// Indexed paths
	s.router.Handle("GET /api/v1/paths", protect(s.handleListPaths))
	s.router.Handle("POST /api/v1/paths", protect(s.handleAddPath))
	s.router.Handle("DELETE /api/v1/paths/{id}", protect(s.handleRemovePath))
	s.router.Handle("POST /api/v1/paths/{id}/toggle", protect(s.handleTogglePath))

	// Providers
	s.router.Handle("GET /api/v1/providers", protect(s.handleListProviders))
	s.router.Handle("PUT /api/v1/providers/active", protect(s.handleSetActiveProvider))
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	s.cancelRequests()

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}

// Stop stops the server
func (s *Server) Stop(ctx context.Context) error {
	s.cancelRequests()
	return s.httpServer.Shutdown(ctx)
}
