package rules

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/nox-hq/codeguard/internal/violations"
)

// Engine ties a RuleSet and a MatcherRegistry together to scan file content
// and produce violations.
type Engine struct {
	rules    *RuleSet
	matchers *MatcherRegistry
}

// NewEngine creates an Engine with the given rules and the default matcher
// registry.
func NewEngine(ruleSet *RuleSet) *Engine {
	return &Engine{
		rules:    ruleSet,
		matchers: NewDefaultMatcherRegistry(),
	}
}

// Rules returns the engine's RuleSet.
func (e *Engine) Rules() *RuleSet { return e.rules }

// ScanFile runs every applicable rule against the given file content and
// returns the resulting violations. A rule applies if its FilePatterns list
// is empty (matches every file) or if at least one pattern matches path.
func (e *Engine) ScanFile(path string, content []byte, isCopilot bool) ([]violations.Violation, error) {
	var out []violations.Violation

	var contentLower []byte
	lines := bytes.Split(content, []byte("\n"))

	for _, rule := range e.rules.Rules() {
		if !fileMatchesRule(path, rule) {
			continue
		}

		if len(rule.Keywords) > 0 {
			if contentLower == nil {
				contentLower = bytes.ToLower(content)
			}
			if !containsAnyKeyword(contentLower, rule.Keywords) {
				continue
			}
		}

		matcher := e.matchers.Get(rule.MatcherType)
		if matcher == nil {
			return nil, fmt.Errorf("no matcher registered for type %q (rule %s)", rule.MatcherType, rule.ID)
		}

		for _, mr := range matcher.Match(content, rule) {
			var snippet string
			if mr.Line-1 >= 0 && mr.Line-1 < len(lines) {
				snippet = string(bytes.TrimSpace(lines[mr.Line-1]))
			}

			explanation := rule.Metadata["explanation"]
			if isCopilot && rule.Metadata["copilot_note"] != "" {
				explanation += " " + rule.Metadata["copilot_note"]
			}

			out = append(out, violations.Violation{
				RuleID:             rule.ID,
				RuleName:           rule.Name,
				Category:           rule.Category,
				Severity:           rule.Severity,
				Location:           violations.Location{FilePath: path, LineNumber: mr.Line, ColumnNumber: mr.Column},
				Message:            rule.Metadata["message"],
				Explanation:        explanation,
				FixSuggestion:      rule.Metadata["fix_suggestion"],
				StandardMappings:   rule.StandardMappings,
				CodeSnippet:        snippet,
				IsCopilotGenerated: isCopilot,
			})
		}
	}
	return out, nil
}

func containsAnyKeyword(contentLower []byte, keywords []string) bool {
	for _, kw := range keywords {
		if bytes.Contains(contentLower, []byte(kw)) {
			return true
		}
	}
	return false
}

func fileMatchesRule(path string, rule Rule) bool {
	if len(rule.FilePatterns) == 0 {
		return true
	}
	base := filepath.Base(path)
	for _, pattern := range rule.FilePatterns {
		if matched, _ := filepath.Match(pattern, path); matched {
			return true
		}
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
	}
	return false
}
