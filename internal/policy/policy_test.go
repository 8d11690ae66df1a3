package policy

import (
	"testing"

	"github.com/nox-hq/codeguard/internal/violations"
)

func TestDetermineEnforcement_NoViolations(t *testing.T) {
	d := DetermineEnforcement(nil, DefaultConfig(), false)
	if d.Mode != violations.EnforcementAdvisory || !d.CanMerge {
		t.Fatalf("expected advisory/true, got %+v", d)
	}
}

func TestDetermineEnforcement_BlockingOnCritical(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnforcementMode = violations.EnforcementBlocking
	vs := []violations.Violation{{RuleID: "SEC001", Severity: violations.SeverityCritical}}

	d := DetermineEnforcement(vs, cfg, false)
	if d.Mode != violations.EnforcementBlocking || d.CanMerge {
		t.Fatalf("expected blocking/false, got %+v", d)
	}
}

func TestDetermineEnforcement_CopilotCriticalBlocksOverride(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnforcementMode = violations.EnforcementBlocking
	cfg.AllowBlockingOverride = true
	vs := []violations.Violation{{RuleID: "SEC001", Severity: violations.SeverityCritical, IsCopilotGenerated: true}}

	d := DetermineEnforcement(vs, cfg, true)
	if d.Mode != violations.EnforcementBlocking || d.CanMerge {
		t.Fatalf("expected Copilot-critical to block even with override, got %+v", d)
	}
}

func TestDetermineEnforcement_OverrideDowngradesToWarning(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnforcementMode = violations.EnforcementBlocking
	cfg.AllowBlockingOverride = true
	vs := []violations.Violation{{RuleID: "SEC101", Severity: violations.SeverityHigh}}

	d := DetermineEnforcement(vs, cfg, true)
	if d.Mode != violations.EnforcementWarning || !d.CanMerge {
		t.Fatalf("expected warning/true, got %+v", d)
	}
}

func TestDetermineEnforcement_AdvisoryModeAlwaysMerges(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnforcementMode = violations.EnforcementAdvisory
	vs := []violations.Violation{{RuleID: "SEC001", Severity: violations.SeverityCritical}}

	d := DetermineEnforcement(vs, cfg, false)
	if d.Mode != violations.EnforcementAdvisory || !d.CanMerge {
		t.Fatalf("expected advisory/true, got %+v", d)
	}
}

func TestFilterViolations_SeverityThreshold(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SeverityThreshold = violations.SeverityHigh
	vs := []violations.Violation{
		{RuleID: "A", Severity: violations.SeverityLow},
		{RuleID: "B", Severity: violations.SeverityHigh},
	}

	got := FilterViolations(vs, cfg)
	if len(got) != 1 || got[0].RuleID != "B" {
		t.Fatalf("expected only high-severity violation to survive, got %+v", got)
	}
}

func TestFilterViolations_DisabledRulesWin(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnabledRules = []string{"A", "B"}
	cfg.DisabledRules = []string{"B"}
	vs := []violations.Violation{
		{RuleID: "A", Severity: violations.SeverityCritical},
		{RuleID: "B", Severity: violations.SeverityCritical},
	}

	got := FilterViolations(vs, cfg)
	if len(got) != 1 || got[0].RuleID != "A" {
		t.Fatalf("expected only A to survive, got %+v", got)
	}
}

func TestApplyRulePack_DedupesAgainstExisting(t *testing.T) {
	reg := &PackRegistry{packs: map[string]RulePack{
		"internal-compliance": {
			Name: "internal-compliance",
			Rules: []PackRule{
				{ID: "CUST001", Name: "No TODO in production", Pattern: `TODO`},
			},
		},
	}}

	content := "func f() {\n  // TODO fix this\n}\n"
	existing := []violations.Violation{
		{RuleID: "CUST001", Location: violations.Location{LineNumber: 2}},
	}

	got := reg.ApplyRulePack(existing, "internal-compliance", "main.go", content)
	if len(got) != 1 {
		t.Fatalf("expected existing violation not duplicated, got %+v", got)
	}
}

func TestApplyRulePack_AddsNewViolation(t *testing.T) {
	reg := &PackRegistry{packs: map[string]RulePack{
		"internal-compliance": {
			Name: "internal-compliance",
			Rules: []PackRule{
				{ID: "CUST001", Name: "No TODO in production", Pattern: `TODO`},
			},
		},
	}}

	content := "func f() {\n  // TODO fix this\n}\n"
	got := reg.ApplyRulePack(nil, "internal-compliance", "main.go", content)
	if len(got) != 1 || got[0].RuleID != "CUST001" {
		t.Fatalf("expected 1 new violation, got %+v", got)
	}
	if got[0].Category != violations.CategoryCompliance {
		t.Fatalf("expected default category compliance, got %s", got[0].Category)
	}
}
