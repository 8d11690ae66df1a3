// Package http implements the HTTP surface of codeguard: scan submission,
// policy resolution/storage, and rule-pack listing, on top of gin.
package http

import (
	"github.com/gin-gonic/gin"

	"github.com/nox-hq/codeguard/internal/policy"
	"github.com/nox-hq/codeguard/internal/scan"
)

// Server wires a Scanner and policy Store/PackRegistry into a gin.Engine.
type Server struct {
	scanner   *scan.Scanner
	policies  *policy.Store
	rulePacks *policy.PackRegistry
	engine    *gin.Engine
}

// New builds a Server and registers every route. Callers run it with
// engine.Run(addr) or by passing engine to an http.Server for graceful
// shutdown control.
func New(scanner *scan.Scanner, policies *policy.Store, rulePacks *policy.PackRegistry) *Server {
	s := &Server{
		scanner:   scanner,
		policies:  policies,
		rulePacks: rulePacks,
		engine:    gin.New(),
	}
	s.engine.Use(gin.Recovery(), requestLogger())
	s.registerRoutes()
	return s
}

// Engine returns the underlying gin.Engine, for use with http.Server or
// httptest.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerRoutes() {
	s.engine.GET("/health", s.handleHealth)

	v1 := s.engine.Group("/api/v1")
	{
		v1.POST("/scan/", s.handleScan)
		v1.POST("/scan/pr/:owner/:repo/:pr", s.handleNotImplemented)
		v1.POST("/scan/commit/:owner/:repo/:sha", s.handleNotImplemented)

		v1.GET("/policies/rule-packs", s.handleListRulePacks)
		v1.POST("/policies/rule-packs/upload", s.handleUploadRulePack)
		v1.GET("/policies/organizations/:org", s.handleGetOrgPolicy)
		v1.PUT("/policies/organizations/:org", s.handlePutOrgPolicy)
		v1.GET("/policies/:repository", s.handleGetRepoPolicy)
		v1.PUT("/policies/:repository", s.handlePutRepoPolicy)
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(200, gin.H{"status": "healthy"})
}

func (s *Server) handleNotImplemented(c *gin.Context) {
	c.JSON(501, gin.H{"detail": "not implemented"})
}
