// Package http assembles the public HTTP API server. It mounts the sign-in
// and account management endpoints behind the authentication, liveness, and
// capability enforcement stages, plus health and readiness probes.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	authHTTP "github.com/allisson/posadmin/internal/auth/http"
	authUseCase "github.com/allisson/posadmin/internal/auth/usecase"
	"github.com/allisson/posadmin/internal/config"
	"github.com/allisson/posadmin/internal/metrics"
)

// Server represents the public HTTP API server.
type Server struct {
	server *http.Server
	db     *sql.DB
	logger *slog.Logger
}

// NewServer creates the API server and assembles the full router: recovery,
// request ID, logging, optional CORS and HTTP metrics, health probes, the
// sign-in endpoint, and the protected route table.
func NewServer(
	cfg *config.Config,
	db *sql.DB,
	logger *slog.Logger,
	sessionHandler *authHTTP.SessionHandler,
	accountHandler *authHTTP.AccountHandler,
	sessionUseCase authUseCase.SessionUseCase,
	authorizer authUseCase.AuthorizerUseCase,
	metricsProvider *metrics.Provider,
) *Server {
	server := &Server{
		db:     db,
		logger: logger,
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())
	router.Use(CustomLoggerMiddleware(logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.GET("/health", server.healthHandler)
	router.GET("/ready", server.readinessHandler)

	v1 := router.Group("/v1")

	// Sign-in is the only unauthenticated business endpoint, so it gets its
	// own per-IP limiter instead of the account-keyed one.
	signInHandlers := []gin.HandlerFunc{}
	if cfg.RateLimitSignInEnabled {
		signInHandlers = append(signInHandlers, authHTTP.SignInRateLimitMiddleware(
			cfg.RateLimitSignInRequestsPerSec,
			cfg.RateLimitSignInBurst,
			logger,
		))
	}
	signInHandlers = append(signInHandlers, sessionHandler.SignInHandler)
	v1.POST("/auth/sign-in", signInHandlers...)

	var postAuth []gin.HandlerFunc
	if cfg.RateLimitEnabled {
		postAuth = append(postAuth, authHTTP.RateLimitMiddleware(
			cfg.RateLimitRequestsPerSec,
			cfg.RateLimitBurst,
			logger,
		))
	}

	authHTTP.RegisterRoutes(v1, []authHTTP.Route{
		{
			Method:      http.MethodGet,
			Path:        "/auth/me",
			Requirement: authHTTP.RequireAny(),
			Handler:     sessionHandler.MeHandler,
		},
		{
			Method:      http.MethodGet,
			Path:        "/accounts",
			Requirement: authHTTP.RequireCapabilities("manage-accounts"),
			Handler:     accountHandler.ListAccountsHandler,
		},
		{
			Method:      http.MethodPost,
			Path:        "/accounts",
			Requirement: authHTTP.RequireCapabilities("manage-accounts"),
			Handler:     accountHandler.CreateAccountHandler,
		},
		{
			Method:      http.MethodGet,
			Path:        "/accounts/:id",
			Requirement: authHTTP.RequireCapabilities("manage-accounts"),
			Handler:     accountHandler.GetAccountHandler,
		},
		{
			Method:      http.MethodDelete,
			Path:        "/accounts/:id",
			Requirement: authHTTP.RequireCapabilities("manage-accounts"),
			Handler:     accountHandler.DeleteAccountHandler,
		},
		{
			Method:      http.MethodPost,
			Path:        "/accounts/:id/capabilities",
			Requirement: authHTTP.RequireCapabilities("manage-accounts"),
			Handler:     accountHandler.GrantCapabilityHandler,
		},
		{
			Method:      http.MethodDelete,
			Path:        "/accounts/:id/capabilities/:capability",
			Requirement: authHTTP.RequireCapabilities("manage-accounts"),
			Handler:     accountHandler.RevokeCapabilityHandler,
		},
		{
			Method:      http.MethodGet,
			Path:        "/roles",
			Requirement: authHTTP.RequireCapabilities("manage-roles"),
			Handler:     accountHandler.ListRolesHandler,
		},
		{
			Method:      http.MethodGet,
			Path:        "/capabilities",
			Requirement: authHTTP.RequireCapabilities("manage-roles"),
			Handler:     accountHandler.ListCapabilitiesHandler,
		},
	}, sessionUseCase, authorizer, logger, postAuth...)

	server.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return server
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start(ctx context.Context) error {
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

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the server can serve traffic. It pings
// the database with a short timeout so a dead pool flips the probe quickly.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{"database": "ok"}
	status := "ready"
	code := http.StatusOK

	if s.db == nil {
		components["database"] = "error"
		status = "not_ready"
		code = http.StatusServiceUnavailable
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := s.db.PingContext(ctx); err != nil {
			s.logger.Error("readiness database ping failed", slog.String("error", err.Error()))
			components["database"] = "error"
			status = "not_ready"
			code = http.StatusServiceUnavailable
		}
	}

	c.JSON(code, gin.H{
		"status":     status,
		"components": components,
	})
}
