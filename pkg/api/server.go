package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/reelpilot-org/reelpilot/pkg/api/handler"
	"github.com/reelpilot-org/reelpilot/pkg/api/middleware"
	"github.com/reelpilot-org/reelpilot/pkg/config"
	"github.com/reelpilot-org/reelpilot/pkg/device"
	"github.com/reelpilot-org/reelpilot/pkg/store"
)

// Server hosts the Gin engine and manages API resources.
type Server struct {
	engine *gin.Engine
	config config.HTTPConfig
	log    *slog.Logger

	store   store.Store
	planner handler.PlanGenerator
	writer  handler.ScriptGenerator
	port    device.Port
}

// NewServer constructs the HTTP API server. port may be nil when the server
// has no device bridge; plan generation then returns 503.
func NewServer(cfg config.HTTPConfig, st store.Store, pl handler.PlanGenerator, sw handler.ScriptGenerator, port device.Port, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.Logger(log))

	srv := &Server{
		engine:  engine,
		config:  cfg,
		log:     log,
		store:   st,
		planner: pl,
		writer:  sw,
		port:    port,
	}

	srv.setupRoutes()

	return srv
}

// Engine returns the underlying Gin engine (for http.Server).
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Addr returns the configured address.
func (s *Server) Addr() string {
	return s.config.Addr
}

// Run starts the HTTP server on the configured address.
func (s *Server) Run() error {
	s.log.Info("http api listening", "addr", s.config.Addr)
	return http.ListenAndServe(s.config.Addr, s.engine)
}
