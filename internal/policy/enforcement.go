package policy

import "github.com/nox-hq/codeguard/internal/violations"

// Decision is the outcome of DetermineEnforcement.
type Decision struct {
	Mode     violations.EnforcementMode
	CanMerge bool
}

// DetermineEnforcement applies the enforcement truth table: Copilot-origin
// critical violations are always treated more strictly than the same
// severity from human-authored code, and a requested override only ever
// downgrades blocking to a warning — it never silently clears violations.
//
//   - No violations: advisory, can merge.
//   - Blocking mode + override requested + allowed: warning (if any
//     critical, Copilot-critical, or high violation exists) or advisory,
//     both mergeable — the override trades a hard block for visibility, not
//     silence.
//   - Blocking mode + Copilot-critical violations: blocking, cannot merge,
//     regardless of override (Copilot-critical is a hard floor).
//   - Blocking mode + any critical or high violation: blocking, cannot merge.
//   - Blocking mode otherwise: advisory, can merge.
//   - Warning mode + critical or Copilot-critical violations: warning, can
//     merge.
//   - Warning mode otherwise: advisory, can merge.
//   - Advisory mode: always advisory, can merge.
func DetermineEnforcement(vs []violations.Violation, cfg Config, overrideRequested bool) Decision {
	if len(vs) == 0 {
		return Decision{Mode: violations.EnforcementAdvisory, CanMerge: true}
	}

	hasCritical := false
	hasHigh := false
	hasCopilotCritical := false
	for _, v := range vs {
		switch v.Severity {
		case violations.SeverityCritical:
			hasCritical = true
			if v.IsCopilotGenerated {
				hasCopilotCritical = true
			}
		case violations.SeverityHigh:
			hasHigh = true
		}
	}

	switch cfg.EnforcementMode {
	case violations.EnforcementBlocking:
		if overrideRequested && cfg.AllowBlockingOverride {
			if hasCritical || hasCopilotCritical || hasHigh {
				return Decision{Mode: violations.EnforcementWarning, CanMerge: true}
			}
			return Decision{Mode: violations.EnforcementAdvisory, CanMerge: true}
		}
		if hasCopilotCritical {
			return Decision{Mode: violations.EnforcementBlocking, CanMerge: false}
		}
		if hasCritical || hasHigh {
			return Decision{Mode: violations.EnforcementBlocking, CanMerge: false}
		}
		return Decision{Mode: violations.EnforcementAdvisory, CanMerge: true}

	case violations.EnforcementWarning:
		if hasCritical || hasCopilotCritical {
			return Decision{Mode: violations.EnforcementWarning, CanMerge: true}
		}
		return Decision{Mode: violations.EnforcementAdvisory, CanMerge: true}

	default: // Advisory
		return Decision{Mode: violations.EnforcementAdvisory, CanMerge: true}
	}
}
