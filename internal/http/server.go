// Package http provides the HTTP API server, router setup, and health endpoints.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/passvault/passvault/internal/auth/http"
	authService "github.com/passvault/passvault/internal/auth/service"
	authUseCase "github.com/passvault/passvault/internal/auth/usecase"
	vaultHTTP "github.com/passvault/passvault/internal/vault/http"
)

// Server represents the main HTTP API server.
type Server struct {
	db     *sql.DB
	router *gin.Engine
	server *http.Server
	logger *slog.Logger
}

// NewServer creates a new HTTP server. The router is built separately via
// SetupRouter so tests can exercise individual handlers without the full
// dependency set.
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// RouterConfig carries the handlers and middleware settings SetupRouter needs.
type RouterConfig struct {
	TokenHandler *authHTTP.TokenHandler
	VaultHandler *vaultHTTP.VaultHandler

	// Bearer authentication dependencies for the vault route group.
	TokenUseCase authUseCase.TokenUseCase
	TokenService authService.TokenService

	// MetricsMiddleware records per-request metrics when set.
	MetricsMiddleware gin.HandlerFunc

	// Rate limit applied to the unauthenticated token-issue endpoint.
	TokenRateLimitEnabled bool
	TokenRateLimitRPS     float64
	TokenRateLimitBurst   int

	// CORS settings; disabled by default for a server-to-server API.
	CORSEnabled      bool
	CORSAllowOrigins string
}

// SetupRouter builds the gin router with all routes and middleware.
func (s *Server) SetupRouter(cfg RouterConfig) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if cfg.MetricsMiddleware != nil {
		router.Use(cfg.MetricsMiddleware)
	}

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	// Health endpoints are unauthenticated
	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")

	// Token issuance is unauthenticated; the per-IP rate limiter is its only guard
	auth := v1.Group("/auth")
	tokenHandlers := make([]gin.HandlerFunc, 0, 2)
	if cfg.TokenRateLimitEnabled {
		tokenHandlers = append(tokenHandlers,
			authHTTP.TokenRateLimitMiddleware(cfg.TokenRateLimitRPS, cfg.TokenRateLimitBurst, s.logger))
	}
	tokenHandlers = append(tokenHandlers, cfg.TokenHandler.IssueTokenHandler)
	auth.POST("/token", tokenHandlers...)

	// Vault routes require client Bearer authentication. Entry routes are
	// additionally session-scoped via the X-Session-Token header, enforced
	// in the handlers.
	vaults := v1.Group("/vaults")
	vaults.Use(authHTTP.AuthenticationMiddleware(cfg.TokenUseCase, cfg.TokenService, s.logger))
	{
		vaults.POST("", cfg.VaultHandler.CreateVaultHandler)
		vaults.POST("/import", cfg.VaultHandler.ImportVaultHandler)
		vaults.GET("", cfg.VaultHandler.ListVaultsHandler)
		vaults.GET("/:id", cfg.VaultHandler.GetVaultHandler)
		vaults.DELETE("/:id", cfg.VaultHandler.DeleteVaultHandler)
		vaults.POST("/:id/open", cfg.VaultHandler.OpenVaultHandler)
		vaults.DELETE("/:id/session", cfg.VaultHandler.CloseSessionHandler)
		vaults.GET("/:id/entries", cfg.VaultHandler.ListEntriesHandler)
		vaults.GET("/:id/entries/*name", cfg.VaultHandler.GetEntryHandler)
		vaults.PUT("/:id/entries/*name", cfg.VaultHandler.SetEntryHandler)
		vaults.DELETE("/:id/entries/*name", cfg.VaultHandler.RemoveEntryHandler)
	}

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the server can serve traffic by probing
// each dependent component.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{}
	ready := true

	if s.db == nil {
		components["database"] = "error"
		ready = false
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := s.db.PingContext(ctx); err != nil {
			s.logger.Warn("readiness check failed", slog.Any("error", err))
			components["database"] = "error"
			ready = false
		} else {
			components["database"] = "ok"
		}
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": components,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": components,
	})
}

// Start starts the HTTP server. SetupRouter must have been called first.
func (s *Server) Start(ctx context.Context) error {
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
