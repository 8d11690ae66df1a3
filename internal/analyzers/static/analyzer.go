package static

import (
	"github.com/nox-hq/codeguard/internal/rules"
	"github.com/nox-hq/codeguard/internal/violations"
)

// Analyzer runs the built-in secret, SQL-injection, and unsafe-operation
// pattern rules against a single file's content.
type Analyzer struct {
	engine *rules.Engine
}

// New returns an Analyzer loaded with the built-in rule set.
func New() *Analyzer {
	return &Analyzer{engine: rules.NewEngine(builtinRuleSet())}
}

// AnalyzeFile scans content for hardcoded secrets, SQL-injection-prone
// constructs, and unsafe execution/deserialization patterns.
func (a *Analyzer) AnalyzeFile(path string, content []byte, isCopilot bool) ([]violations.Violation, error) {
	return a.engine.ScanFile(path, content, isCopilot)
}

// Rules returns the built-in rule set's rules, for catalog listings.
func Rules() []rules.Rule {
	return builtinRuleSet().Rules()
}
