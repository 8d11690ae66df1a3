package tui

import (
	"strings"

	"github.com/nox-hq/codeguard/internal/violations"
)

// severityOrder defines the cycle order for the severity filter toggle.
var severityOrder = []violations.Severity{
	violations.SeverityCritical,
	violations.SeverityHigh,
	violations.SeverityMedium,
	violations.SeverityLow,
}

// filterState tracks the active filter configuration.
type filterState struct {
	severityIdx int    // -1 = all, 0..3 = specific severity
	search      string // free-text search query
	searching   bool   // true when search input is active
}

func newFilterState() filterState {
	return filterState{severityIdx: -1}
}

// cycleSeverity advances the severity filter to the next level.
func (f *filterState) cycleSeverity() {
	f.severityIdx++
	if f.severityIdx >= len(severityOrder) {
		f.severityIdx = -1
	}
}

// activeSeverity returns the current severity filter, or "all".
func (f *filterState) activeSeverity() string {
	if f.severityIdx < 0 {
		return "all"
	}
	return string(severityOrder[f.severityIdx])
}

// matchesViolation returns true if v passes all active filters.
func (f *filterState) matchesViolation(v violations.Violation) bool {
	if f.severityIdx >= 0 && v.Severity != severityOrder[f.severityIdx] {
		return false
	}

	if f.search != "" {
		q := strings.ToLower(f.search)
		if !strings.Contains(strings.ToLower(v.RuleID), q) &&
			!strings.Contains(strings.ToLower(v.Location.FilePath), q) &&
			!strings.Contains(strings.ToLower(v.Message), q) {
			return false
		}
	}

	return true
}

// filterViolations returns the violations in all that pass active filters.
func (f *filterState) filterViolations(all []violations.Violation) []violations.Violation {
	var result []violations.Violation
	for _, v := range all {
		if f.matchesViolation(v) {
			result = append(result, v)
		}
	}
	return result
}
