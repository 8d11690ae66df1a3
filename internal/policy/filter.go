package policy

import "github.com/nox-hq/codeguard/internal/violations"

// FilterViolations applies an enabled-rules allow-list, a disabled-rules
// block-list, and a minimum severity threshold, in that order. An empty
// EnabledRules list means "no allow-list" (everything not explicitly
// disabled passes).
func FilterViolations(vs []violations.Violation, cfg Config) []violations.Violation {
	enabled := toSet(cfg.EnabledRules)
	disabled := toSet(cfg.DisabledRules)

	out := make([]violations.Violation, 0, len(vs))
	for _, v := range vs {
		if len(enabled) > 0 {
			if _, ok := enabled[v.RuleID]; !ok {
				continue
			}
		}
		if _, ok := disabled[v.RuleID]; ok {
			continue
		}
		if !v.Severity.AtLeast(cfg.SeverityThreshold) {
			continue
		}
		out = append(out, v)
	}
	return out
}

func toSet(ids []string) map[string]struct{} {
	if len(ids) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
