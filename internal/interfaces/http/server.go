// Package http exposes the travel expense calculator over a JSON API.
// Handlers are a thin layer that translates requests to application service calls.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger interface for logging operations
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	Mode            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:            "0.0.0.0",
		Port:            8080,
		Mode:            gin.ReleaseMode,
		ReadTimeout:     30 * time.Second,
		WriteTimeout:    60 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Server is the HTTP server adapter
type Server struct {
	config     ServerConfig
	httpServer *http.Server
	router     *gin.Engine
	handlers   *Handlers
	logger     Logger
}

// NewServer creates a new HTTP server with the given services
func NewServer(config ServerConfig, services Services, logger Logger) *Server {
	if config.Mode != "" {
		gin.SetMode(config.Mode)
	}

	server := &Server{
		config:   config,
		router:   gin.New(),
		handlers: NewHandlers(services, logger),
		logger:   logger,
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}

// setupMiddleware configures middleware for the router
func (s *Server) setupMiddleware() {
	s.router.Use(requestIDMiddleware())
	s.router.Use(recoveryMiddleware(s.logger))
	s.router.Use(loggingMiddleware(s.logger))
	if len(s.config.AllowedOrigins) > 0 {
		s.router.Use(corsMiddleware(s.config.AllowedOrigins))
	}
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	h := s.handlers

	s.router.GET("/health", h.HealthCheck)

	api := s.router.Group("/api/v1")
	{
		api.GET("/rates", h.Rates)

		claims := api.Group("/claims")
		claims.POST("/calculate", h.Calculate)
		claims.POST("/documents/pdf", h.GeneratePDF)
		claims.POST("/documents/xlsx", h.GenerateWorkbook)
		claims.POST("/documents/preview", h.Preview)

		api.POST("/transport/taxi-estimate", h.EstimateTaxi)
		api.GET("/distance", h.RoadDistance)

		profiles := api.Group("/profiles")
		profiles.GET("", h.ListProfiles)
		profiles.POST("", h.SaveProfile)
		profiles.GET("/:name", h.GetProfile)
		profiles.DELETE("/:name", h.DeleteProfile)

		drafts := api.Group("/drafts")
		drafts.GET("", h.ListDrafts)
		drafts.POST("", h.SaveDraft)
		drafts.GET("/:id", h.GetDraft)
		drafts.DELETE("/:id", h.DeleteDraft)
	}
}

// Start starts the HTTP server and blocks until ctx is cancelled
func (s *Server) Start(ctx context.Context) error {
	addr := s.Address()

	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
	s.httpServer = srv

	s.logger.Info("Starting HTTP server", "address", addr)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("HTTP server shutdown requested")
		return s.Stop()
	case err := <-errCh:
		s.logger.Error("HTTP server error", "error", err)
		return err
	}
}

// Stop gracefully stops the HTTP server. Calling it again is a no-op.
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	s.logger.Info("Stopping HTTP server")

	timeout := s.config.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	srv := s.httpServer
	s.httpServer = nil
	if err := srv.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
		return err
	}

	s.logger.Info("HTTP server stopped")
	return nil
}

// Router returns the underlying gin router (for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Address returns the server address
func (s *Server) Address() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}
