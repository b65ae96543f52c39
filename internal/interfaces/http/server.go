// internal/interfaces/http/server.go
package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/tableside/internal/config"
	"github.com/your-org/tableside/internal/domain/kitchen"
	"github.com/your-org/tableside/internal/interfaces/http/handlers"
	"github.com/your-org/tableside/internal/interfaces/http/middleware"
)

// Server is the local HTTP server the kitchen binary exposes so wall screens
// can render the dashboard state without talking to the backend directly
type Server struct {
	config     *config.Config
	gin        *gin.Engine
	httpServer *http.Server
	dashboard  *kitchen.Dashboard
	logger     *logrus.Logger
}

// NewServer creates a new dashboard server instance
func NewServer(cfg *config.Config, dashboard *kitchen.Dashboard, logger *logrus.Logger) *Server {
	return &Server{
		config:    cfg,
		dashboard: dashboard,
		logger:    logger,
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	// Set Gin mode based on environment
	if s.config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	s.gin = gin.New()
	s.gin.Use(gin.Recovery())
	s.gin.Use(middleware.Logger(s.logger))

	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%s", s.config.Kitchen.DashboardPort),
		Handler:      s.gin,
		ReadTimeout:  s.config.Kitchen.ReadTimeout,
		WriteTimeout: s.config.Kitchen.WriteTimeout,
		IdleTimeout:  s.config.Kitchen.IdleTimeout,
	}

	s.logger.WithField("port", s.config.Kitchen.DashboardPort).
		Info("Starting kitchen dashboard server")

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start dashboard server: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the server
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// setupRoutes registers the dashboard endpoints
func (s *Server) setupRoutes() {
	handler := handlers.NewDashboardHandler(s.dashboard)

	s.gin.GET("/health", handler.Health)
	s.gin.GET("/dashboard/orders", handler.GetOrders)
	s.gin.POST("/dashboard/orders/:id/status", handler.UpdateOrderStatus)
}
