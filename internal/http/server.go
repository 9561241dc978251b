// Package http provides the HTTP server, router and shared middleware.
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

	authHTTP "github.com/farmrakshaa/farm-guardian/internal/auth/http"
	authUseCase "github.com/farmrakshaa/farm-guardian/internal/auth/usecase"
	"github.com/farmrakshaa/farm-guardian/internal/config"
	"github.com/farmrakshaa/farm-guardian/internal/metrics"
	userHTTP "github.com/farmrakshaa/farm-guardian/internal/user/http"
)

// ReadinessCheck reports whether the user store is reachable.
type ReadinessCheck func(ctx context.Context) error

// Server represents the HTTP server.
type Server struct {
	ready  ReadinessCheck
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
}

// NewServer creates a new HTTP server. SetupRouter must be called before Start.
func NewServer(ready ReadinessCheck, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		ready:  ready,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter builds the gin engine with every route. ctx bounds background work
// started by middleware such as the rate limiter cleanup.
func (s *Server) SetupRouter(
	ctx context.Context,
	cfg *config.Config,
	sessionHandler *authHTTP.SessionHandler,
	userHandler *userHTTP.UserHandler,
	sessionUseCase authUseCase.SessionUseCase,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if cors := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); cors != nil {
		router.Use(cors)
	}
	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	auth := router.Group("/api/auth")
	{
		public := auth.Group("")
		if cfg.RateLimitAuthEnabled {
			public.Use(authHTTP.IPRateLimitMiddleware(
				ctx,
				cfg.RateLimitAuthRequestsPerSec,
				cfg.RateLimitAuthBurst,
				s.logger,
			))
		}
		public.POST("/register", sessionHandler.RegisterHandler)
		public.POST("/login", sessionHandler.LoginHandler)

		auth.POST("/logout", sessionHandler.LogoutHandler)

		protected := auth.Group("", authHTTP.AuthenticationMiddleware(sessionUseCase, s.logger))
		protected.GET("/profile", userHandler.ProfileHandler)
		protected.PUT("/farm-data", userHandler.UpdateFarmDataHandler)
	}

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router not configured")
	}
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (s *Server) readinessHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if s.ready == nil || s.ready(ctx) != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": "error"},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"database": "ok"},
	})
}
