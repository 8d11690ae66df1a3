package tui

import (
	"strings"
	"testing"

	"github.com/nox-hq/codeguard/internal/violations"
)

func TestRenderList_ShowsTotalCount(t *testing.T) {
	m := newTestModel()
	out := renderList(m)
	if !strings.Contains(out, "3 violations") {
		t.Fatalf("expected count in output, got %q", out)
	}
}

func TestRenderList_ShowsFilteredCountWhenDiffersFromTotal(t *testing.T) {
	m := newTestModel()
	m.filter.severityIdx = 0 // critical only
	m.applyFilter()
	out := renderList(m)
	if !strings.Contains(out, "of 3 total") {
		t.Fatalf("expected filtered/total distinction in output, got %q", out)
	}
}

func TestRenderList_EmptyFilteredShowsMessage(t *testing.T) {
	m := newTestModel()
	m.filtered = nil
	out := renderList(m)
	if !strings.Contains(out, "No violations match") {
		t.Fatalf("expected empty-state message, got %q", out)
	}
}

func TestRenderViolationLine_MarksSelected(t *testing.T) {
	v := violations.Violation{RuleID: "SEC-001", Severity: violations.SeverityHigh, Location: violations.Location{FilePath: "a.go", LineNumber: 3}, Message: "test"}
	selected := renderViolationLine(v, true)
	notSelected := renderViolationLine(v, false)
	if selected == notSelected {
		t.Fatal("expected selected and unselected lines to differ")
	}
}

func TestRenderViolationLine_OmitsLineNumberWhenZero(t *testing.T) {
	v := violations.Violation{RuleID: "LIC001", Severity: violations.SeverityMedium, Location: violations.Location{FilePath: "NOTICE"}, Message: "test"}
	line := renderViolationLine(v, false)
	if strings.Contains(line, "NOTICE:0") {
		t.Fatalf("did not expect a zero line number, got %q", line)
	}
}
