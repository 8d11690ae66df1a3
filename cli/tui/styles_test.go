package tui

import (
	"testing"

	"github.com/nox-hq/codeguard/internal/violations"
)

func TestSeverityBadge_AllLevelsRenderDistinctText(t *testing.T) {
	seen := make(map[string]bool)
	for _, sev := range severityOrder {
		badge := severityBadge(sev)
		if badge == "" {
			t.Fatalf("severityBadge(%s) is empty", sev)
		}
		seen[badge] = true
	}
	if len(seen) != len(severityOrder) {
		t.Fatalf("expected %d distinct badges, got %d", len(severityOrder), len(seen))
	}
}

func TestSeverityStyle_UnknownSeverityFallsBackToLow(t *testing.T) {
	style := severityStyle(violations.Severity("unknown"))
	if style.GetForeground() != colorLow {
		t.Fatalf("expected fallback to colorLow for unknown severity")
	}
}
