package tui

import (
	"testing"

	"github.com/nox-hq/codeguard/internal/violations"
)

func TestCycleSeverity_FullCycleReturnsToAll(t *testing.T) {
	f := newFilterState()
	for range severityOrder {
		f.cycleSeverity()
	}
	if f.activeSeverity() != "all" {
		t.Fatalf("activeSeverity() = %q, want %q", f.activeSeverity(), "all")
	}
}

func TestMatchesViolation_FiltersBySeverity(t *testing.T) {
	f := newFilterState()
	f.severityIdx = 0 // critical
	v := violations.Violation{Severity: violations.SeverityLow}
	if f.matchesViolation(v) {
		t.Fatal("expected low-severity violation to be filtered out")
	}
}

func TestMatchesViolation_FiltersBySearch(t *testing.T) {
	f := newFilterState()
	f.search = "aws"
	match := violations.Violation{Message: "AWS Access Key ID detected"}
	noMatch := violations.Violation{Message: "missing function logging"}

	if !f.matchesViolation(match) {
		t.Fatal("expected match on message substring")
	}
	if f.matchesViolation(noMatch) {
		t.Fatal("expected no match")
	}
}

func TestFilterViolations_CombinesSeverityAndSearch(t *testing.T) {
	f := newFilterState()
	f.severityIdx = 3 // low
	f.search = "logging"

	all := testViolations()
	got := f.filterViolations(all)
	if len(got) != 1 || got[0].RuleID != "STD001" {
		t.Fatalf("filterViolations() = %+v, want only STD001", got)
	}
}
