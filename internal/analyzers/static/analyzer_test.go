package static

import (
	"strings"
	"testing"

	"github.com/nox-hq/codeguard/internal/violations"
)

func TestAnalyzer_DetectsHardcodedAPIKey(t *testing.T) {
	a := New()
	content := []byte(`api_key = "abcdefghijklmnopqrstuvwxyz123456"` + "\n")

	vs, err := a.AnalyzeFile("config.py", content, false)
	if err != nil {
		t.Fatalf("AnalyzeFile: %v", err)
	}

	found := false
	for _, v := range vs {
		if v.RuleID == "SEC001" {
			found = true
			if v.Location.LineNumber != 1 {
				t.Errorf("LineNumber = %d, want 1", v.Location.LineNumber)
			}
			if v.Severity != violations.SeverityCritical {
				t.Errorf("Severity = %s, want critical", v.Severity)
			}
		}
	}
	if !found {
		t.Fatalf("expected SEC001 violation, got %+v", vs)
	}
}

func TestAnalyzer_CopilotNoteAppended(t *testing.T) {
	a := New()
	content := []byte(`password = "hunter2hunter2hunter2"` + "\n")

	vs, err := a.AnalyzeFile("a.py", content, true)
	if err != nil {
		t.Fatalf("AnalyzeFile: %v", err)
	}
	if len(vs) == 0 {
		t.Fatal("expected at least one violation")
	}
	if !vs[0].IsCopilotGenerated {
		t.Error("expected IsCopilotGenerated = true")
	}
	if !strings.Contains(vs[0].Explanation, "AI-generated") {
		t.Errorf("explanation missing copilot note: %q", vs[0].Explanation)
	}
}

func TestAnalyzer_DetectsEvalUsage(t *testing.T) {
	a := New()
	content := []byte("result = eval(user_input)\n")

	vs, err := a.AnalyzeFile("app.py", content, false)
	if err != nil {
		t.Fatalf("AnalyzeFile: %v", err)
	}
	var sawEval bool
	for _, v := range vs {
		if v.RuleID == "SEC201" {
			sawEval = true
		}
	}
	if !sawEval {
		t.Fatalf("expected SEC201 violation, got %+v", vs)
	}
}

func TestAnalyzer_NoFalsePositiveOnCleanCode(t *testing.T) {
	a := New()
	content := []byte("def add(a, b):\n    return a + b\n")

	vs, err := a.AnalyzeFile("clean.py", content, false)
	if err != nil {
		t.Fatalf("AnalyzeFile: %v", err)
	}
	if len(vs) != 0 {
		t.Errorf("expected no violations, got %+v", vs)
	}
}
