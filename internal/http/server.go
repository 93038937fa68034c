// Package http provides HTTP server implementation and request handlers.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/nyx/internal/metrics"
	secretsHTTP "github.com/allisson/nyx/internal/secrets/http"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RouterOptions carries the optional middleware settings applied by SetupRouter.
type RouterOptions struct {
	MaxBodyBytes            int64
	RateLimitEnabled        bool
	RateLimitRequestsPerSec float64
	RateLimitBurst          int
	CORSEnabled             bool
	CORSAllowOrigins        string
	MetricsProvider         *metrics.Provider
	MetricsNamespace        string
}

// Server represents the HTTP server
type Server struct {
	store  Pinger
	server *http.Server
	router *gin.Engine
	logger *slog.Logger

	// ctx bounds background work started by middleware; Shutdown cancels it.
	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a new HTTP server. The store is pinged by the readiness probe.
func NewServer(
	store Pinger,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		store:  store,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
		server: &http.Server{
			Addr:              fmt.Sprintf("%s:%d", host, port),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

// SetupRouter builds the Gin router with every route the service exposes.
func (s *Server) SetupRouter(secretHandler *secretsHTTP.SecretHandler, opts RouterOptions) {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if opts.MetricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(opts.MetricsProvider.MeterProvider(), opts.MetricsNamespace))
	}

	if corsMiddleware := createCORSMiddleware(opts.CORSEnabled, opts.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if opts.MaxBodyBytes > 0 {
		router.Use(MaxBodySizeMiddleware(opts.MaxBodyBytes))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	// Reads are the probing surface: every request consumes or misses a reference.
	readHandlers := []gin.HandlerFunc{}
	if opts.RateLimitEnabled {
		readHandlers = append(
			readHandlers,
			IPRateLimitMiddleware(s.ctx, opts.RateLimitRequestsPerSec, opts.RateLimitBurst, s.logger),
		)
	}

	v1 := router.Group("/v1")
	{
		secrets := v1.Group("/secrets")
		{
			secrets.POST("", secretHandler.SealHandler)
			secrets.GET("/:reference", append(readHandlers, secretHandler.UnsealHandler)...)
		}
	}

	router.POST("/encrypt", secretHandler.LegacyEncryptHandler)
	router.GET("/decrypt/:key", append(readHandlers, secretHandler.LegacyDecryptHandler)...)

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router is not configured")
	}

	s.server.Handler = s.router
	return serve(s.server, s.logger, "http server")
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	s.cancel()
	return s.server.Shutdown(ctx)
}

// healthHandler reports process liveness.
// GET /health
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the secret store answers.
// GET /ready
func (s *Server) readinessHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if s.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"store": "error"},
		})
		return
	}

	if err := s.store.Ping(ctx); err != nil {
		s.logger.Warn("readiness check failed", slog.Any("error", err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"store": "error"},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"store": "ok"},
	})
}
