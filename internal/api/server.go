// Package api serves the read surface of the projection: REST queries
// over gin and the realtime websocket feed.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/taste-fun/tf-indexer/internal/logger"
	"github.com/taste-fun/tf-indexer/internal/realtime"
	"github.com/taste-fun/tf-indexer/internal/store"
)

// Config holds the server configuration
type Config struct {
	Debug bool
	Host  string
	Port  int
	// ReadTimeout bounds request reads; writes are unbounded so the
	// websocket feed can stay open
	ReadTimeout time.Duration
	IdleTimeout time.Duration
}

// Server wraps the HTTP server
type Server struct {
	config     Config
	store      store.Store
	hub        *realtime.Hub
	httpServer *http.Server
}

// New creates a new API server
func New(cfg Config, s store.Store, hub *realtime.Hub) *Server {
	return &Server{
		config: cfg,
		store:  s,
		hub:    hub,
	}
}

// SetupRoutes configures all routes on the given router
func SetupRoutes(router *gin.Engine, handler Handler) {
	// Health check endpoint (no version prefix)
	router.GET("/healthz", handler.HealthCheck)

	v1 := router.Group("/v1")
	{
		v1.GET("/themes", handler.ListThemes)
		v1.GET("/themes/:key", handler.GetTheme)
		v1.GET("/themes/:key/swaps", handler.ListThemeSwaps)

		v1.GET("/ideas", handler.ListIdeas)
		v1.GET("/ideas/:key", handler.GetIdea)
		v1.GET("/ideas/:key/votes", handler.ListIdeaVotes)

		v1.GET("/stats", handler.GetStats)
		v1.GET("/jobs/parked", handler.ListParkedJobs)

		// Websocket feed; the long-lived connection bypasses the HTTP
		// write timeout because the hub manages its own deadlines
		v1.GET("/ws", handler.Subscribe)
	}
}

// Start initializes and starts the HTTP server. It blocks until the
// server stops.
func (s *Server) Start() error {
	if s.config.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(recovery())
	router.Use(requestLogger())
	router.Use(setupCORS())

	SetupRoutes(router, NewHandler(s.store, s.hub))

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.httpServer = &http.Server{
		Addr:        addr,
		Handler:     router,
		ReadTimeout: s.config.ReadTimeout,
		// WriteTimeout stays unset so websocket connections are not cut
		IdleTimeout: s.config.IdleTimeout,
	}

	logger.Info("Starting API server", zap.String("address", addr))

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Info("Shutting down API server")

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
	}

	return nil
}
