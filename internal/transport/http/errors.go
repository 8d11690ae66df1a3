package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/nox-hq/codeguard/internal/apierr"
)

// respondError maps err to an HTTP response per its apierr.Kind. Validation
// errors surface their message to the caller; everything else returns a
// generic message — no internal error text or stack traces cross the wire.
func respondError(c *gin.Context, err error) {
	kind, ok := apierr.KindOf(err)
	if !ok {
		slog.Error("unclassified error", "error", err)
		c.JSON(500, gin.H{"detail": "internal server error"})
		return
	}

	switch kind {
	case apierr.KindValidation:
		c.JSON(400, gin.H{"detail": err.Error()})
	case apierr.KindQuota:
		c.JSON(503, gin.H{"detail": "AI analysis temporarily unavailable"})
	case apierr.KindConfig:
		slog.Warn("policy configuration error", "error", err)
		c.JSON(400, gin.H{"detail": err.Error()})
	case apierr.KindEngine:
		slog.Error("engine error", "error", err)
		c.JSON(500, gin.H{"detail": "internal server error"})
	default:
		slog.Error("internal error", "error", err)
		c.JSON(500, gin.H{"detail": "internal server error"})
	}
}
