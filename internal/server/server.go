package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ayusharyakashyap/InvestShield/internal/handler"
)

// Server wraps the gin router and HTTP server lifecycle.
type Server struct {
	router *gin.Engine
	srv    *http.Server
	logger *zap.Logger
}

// New builds the router, wires middleware, and registers the API routes.
func New(h *handler.Handler, logger *zap.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), handler.RequestID())

	h.RegisterRoutes(router)

	return &Server{
		router: router,
		logger: logger,
	}
}

// Run starts the HTTP server on the given port and blocks until it stops.
func (s *Server) Run(port string) error {
	s.srv = &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: s.router,
	}

	s.logger.Info("Server starting", zap.String("address", s.srv.Addr))
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.srv.Shutdown(ctx)
}

// Router exposes the underlying gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine { return s.router }
