package api

import (
	"github.com/reelpilot-org/reelpilot/pkg/api/handler"
	"github.com/reelpilot-org/reelpilot/pkg/api/middleware"
)

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	// Health (no auth required)
	s.engine.GET("/health", handler.Health)

	// API v1 group
	v1 := s.engine.Group("/api/v1")
	v1.Use(middleware.Auth(s.config.APIKey))

	videoHandler := handler.NewVideoHandler(s.store, s.planner, s.writer, s.port)
	v1.POST("/videos", videoHandler.Create)
	v1.GET("/videos", videoHandler.List)
	v1.GET("/videos/:id", videoHandler.Get)
	v1.DELETE("/videos/:id", videoHandler.Delete)
	v1.POST("/videos/:id/plan", videoHandler.GeneratePlan)
	v1.POST("/videos/:id/script", videoHandler.GenerateScript)

	// K8s health probe
	s.engine.GET("/healthz", handler.Health)
}
