package http

import (
	"github.com/gin-gonic/gin"

	"github.com/nox-hq/codeguard/internal/apierr"
	"github.com/nox-hq/codeguard/internal/catalog"
	"github.com/nox-hq/codeguard/internal/policy"
	"github.com/nox-hq/codeguard/internal/scan"
)

func (s *Server) handleScan(c *gin.Context) {
	var req scan.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apierr.Validation("malformed scan request", err))
		return
	}
	if req.Repository == "" {
		respondError(c, apierr.Validation("repository is required", nil))
		return
	}
	req.Repository = normalizeRepository(req.Repository)

	result := s.scanner.Scan(c.Request.Context(), req)
	c.JSON(200, result)
}

func (s *Server) handleGetRepoPolicy(c *gin.Context) {
	repo := normalizeRepository(c.Param("repository"))
	cfg := s.policies.Resolve(repo, nil)
	c.JSON(200, cfg)
}

func (s *Server) handlePutRepoPolicy(c *gin.Context) {
	repo := normalizeRepository(c.Param("repository"))

	var cfg policy.Config
	if err := c.ShouldBindJSON(&cfg); err != nil {
		respondError(c, apierr.Validation("malformed policy configuration", err))
		return
	}

	if err := s.policies.SaveRepositoryPolicy(repo, cfg); err != nil {
		respondError(c, apierr.Config("failed to save repository policy", err))
		return
	}
	c.JSON(200, cfg)
}

func (s *Server) handleGetOrgPolicy(c *gin.Context) {
	cfg := s.policies.ResolveOrganization(c.Param("org"))
	c.JSON(200, cfg)
}

func (s *Server) handlePutOrgPolicy(c *gin.Context) {
	org := c.Param("org")

	var cfg policy.Config
	if err := c.ShouldBindJSON(&cfg); err != nil {
		respondError(c, apierr.Validation("malformed policy configuration", err))
		return
	}

	if err := s.policies.SaveOrganizationPolicy(org, cfg); err != nil {
		respondError(c, apierr.Config("failed to save organization policy", err))
		return
	}
	c.JSON(200, cfg)
}

func (s *Server) handleListRulePacks(c *gin.Context) {
	packs := catalog.RulePacks(s.rulePacks, s.rulePacks.Names())
	c.JSON(200, gin.H{"rule_packs": packs})
}

// uploadRulePackBody is the wire shape of a rule-pack upload request: a name
// plus the raw YAML body of the pack, matching the original service's
// {pack_name, pack_data} contract.
type uploadRulePackBody struct {
	PackName string `json:"pack_name" binding:"required"`
	PackData string `json:"pack_data" binding:"required"`
}

func (s *Server) handleUploadRulePack(c *gin.Context) {
	var body uploadRulePackBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, apierr.Validation("malformed rule pack upload", err))
		return
	}

	pack, err := policy.ParsePack(body.PackName, []byte(body.PackData))
	if err != nil {
		respondError(c, apierr.Validation("invalid rule pack YAML", err))
		return
	}

	s.rulePacks.AddPack(body.PackName, pack)
	c.JSON(200, gin.H{
		"status":      "uploaded",
		"pack_name":   body.PackName,
		"rules_count": len(pack.Rules),
	})
}
