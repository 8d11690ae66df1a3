package tui

import (
	"strings"
	"testing"
)

func TestRenderDetail_NoSelectionFallsBackToList(t *testing.T) {
	m := newTestModel()
	m.filtered = nil
	out := renderDetail(m)
	if !strings.Contains(out, "violations") {
		t.Fatalf("expected list fallback, got %q", out)
	}
}

func TestRenderDetail_ShowsRuleAndSeverity(t *testing.T) {
	m := newTestModel()
	out := renderDetail(m)
	v := m.filtered[0]
	if !strings.Contains(out, v.RuleID) {
		t.Fatalf("expected rule ID %s in output", v.RuleID)
	}
}

func TestRenderDetail_ShowsCopilotMarker(t *testing.T) {
	m := newTestModel()
	m.cursor = 2 // DUP001, IsCopilotGenerated
	out := renderDetail(m)
	if !strings.Contains(out, "copilot-generated") {
		t.Fatalf("expected copilot marker in output, got %q", out)
	}
}

func TestSourceLines_WindowsAroundLineNumber(t *testing.T) {
	content := "1\n2\n3\n4\n5\n6\n7\n8\n9\n10\n11\n12\n"
	lines := sourceLines(content, 6)
	if len(lines) == 0 {
		t.Fatal("expected non-empty window")
	}
	found := false
	for _, l := range lines {
		if l.number == 6 && l.isMatch {
			found = true
		}
	}
	if !found {
		t.Fatal("expected line 6 to be marked as the match")
	}
}

func TestSourceLines_EmptyContentReturnsNil(t *testing.T) {
	if lines := sourceLines("", 5); lines != nil {
		t.Fatalf("expected nil for empty content, got %v", lines)
	}
}

func TestWrapText_WrapsAtWidth(t *testing.T) {
	out := wrapText("one two three four five", 10, "")
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		if len(line) > 10 {
			t.Fatalf("line %q exceeds width 10", line)
		}
	}
}

func TestWrapText_EmptyStringReturnsEmpty(t *testing.T) {
	if got := wrapText("", 10, ""); got != "" {
		t.Fatalf("wrapText(empty) = %q, want empty", got)
	}
}
