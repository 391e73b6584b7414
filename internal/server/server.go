package server

import (
	"github.com/gin-gonic/gin"
	"github.com/sleepstars/fakeopenai/internal/completion"
	"github.com/sleepstars/fakeopenai/internal/logger"
)

// Server wires the fake completion service to its HTTP surface
type Server struct {
	engine *gin.Engine
	svc    *completion.Service
	logger *logger.Logger
}

// New creates a server around the given completion service. The
// recovery middleware turns a panic in one request into a 500 for
// that request alone; the process and other in-flight requests
// are unaffected.
func New(svc *completion.Service) *Server {
	s := &Server{
		engine: gin.New(),
		svc:    svc,
		logger: logger.GetLogger().WithComponent("server"),
	}
	s.engine.Use(gin.Recovery())
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.engine.POST("/v1/chat/completions", s.createChatCompletion)
	s.engine.GET("/v1/models", s.listModels)
	s.engine.GET("/is_sleeping", s.isSleeping)
	s.engine.GET("/metrics", s.metrics)
}

// Engine exposes the underlying router, primarily for tests
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run binds the server to addr and serves until it fails
func (s *Server) Run(addr string) error {
	s.logger.Info("Listening on %s", addr)
	return s.engine.Run(addr)
}
