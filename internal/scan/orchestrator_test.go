package scan

import (
	"context"
	"testing"

	"github.com/nox-hq/codeguard/internal/policy"
	"github.com/nox-hq/codeguard/internal/violations"
)

func newTestScanner(t *testing.T) *Scanner {
	t.Helper()
	dir := t.TempDir()
	return New(policy.NewStore(dir), policy.LoadPackRegistry(dir), nil)
}

func TestScan_DetectsSecretAndReturnsSummary(t *testing.T) {
	s := newTestScanner(t)

	req := Request{
		Repository: "acme/widgets",
		Files: []FileInput{
			{Path: "config.py", Content: "api_key = \"sk_live_abcdef1234567890abcdef\"\n"},
		},
	}

	result := s.Scan(context.Background(), req)

	if result.Summary.TotalViolations == 0 {
		t.Fatal("expected at least one violation for a hardcoded API key")
	}
	if result.Summary.FilesAffected != 1 {
		t.Errorf("expected 1 file affected, got %d", result.Summary.FilesAffected)
	}
	if result.ScanID == "" {
		t.Error("expected a non-empty scan ID")
	}
}

func TestScan_CleanCodeAdvisoryCanMerge(t *testing.T) {
	s := newTestScanner(t)

	req := Request{
		Repository: "acme/widgets",
		Files: []FileInput{
			{Path: "math.go", Content: "package math\n\nfunc Add(a, b int) int {\n\treturn a + b\n}\n"},
		},
	}

	result := s.Scan(context.Background(), req)

	if !result.CanMerge {
		t.Error("expected clean code to be mergeable")
	}
	if result.EnforcementAction != violations.EnforcementAdvisory {
		t.Errorf("expected advisory enforcement, got %s", result.EnforcementAction)
	}
}

func TestScan_SuppressionComment(t *testing.T) {
	s := newTestScanner(t)

	content := "// codeguard:ignore SEC001\napi_key = \"sk_live_abcdef1234567890abcdef\"\n"
	req := Request{
		Repository: "acme/widgets",
		Files:      []FileInput{{Path: "config.py", Content: content}},
	}

	result := s.Scan(context.Background(), req)
	for _, v := range result.Violations {
		if v.RuleID == "SEC001" {
			t.Fatalf("expected SEC001 to be suppressed, got %+v", v)
		}
	}
}

func TestScan_SkipsFileWithNoPath(t *testing.T) {
	s := newTestScanner(t)

	req := Request{
		Repository: "acme/widgets",
		Files:      []FileInput{{Path: "", Content: "whatever"}},
	}

	result := s.Scan(context.Background(), req)
	if result.Summary.TotalViolations != 0 {
		t.Fatalf("expected no violations from a pathless file, got %d", result.Summary.TotalViolations)
	}
}

