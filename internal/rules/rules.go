// Package rules implements the declarative pattern-matching engine shared by
// the static and duplicate analyzers. Rules describe what to look for
// (Pattern + MatcherType) and how to classify a match (Severity, Category);
// matching is delegated to pluggable Matcher implementations.
package rules

import "github.com/nox-hq/codeguard/internal/violations"

// Rule is a single declarative pattern rule.
type Rule struct {
	ID               string
	Name             string
	Category         violations.Category
	Severity         violations.Severity
	MatcherType      string // "regex" or "entropy"
	Pattern          string
	FilePatterns     []string // empty matches every file
	Keywords         []string // cheap pre-filter: content must contain one of these (lowercase) before the matcher runs
	StandardMappings []string
	Metadata         map[string]string
}

// RuleSet is an ordered collection of rules with lookup by ID.
type RuleSet struct {
	rules []Rule
	byID  map[string]int
}

// NewRuleSet returns an initialised, empty RuleSet.
func NewRuleSet() *RuleSet {
	return &RuleSet{byID: make(map[string]int)}
}

// Add appends a rule to the set.
func (rs *RuleSet) Add(r Rule) {
	rs.byID[r.ID] = len(rs.rules)
	rs.rules = append(rs.rules, r)
}

// Rules returns all rules in insertion order.
func (rs *RuleSet) Rules() []Rule { return rs.rules }

// ByID looks up a rule by its identifier.
func (rs *RuleSet) ByID(id string) (Rule, bool) {
	idx, ok := rs.byID[id]
	if !ok {
		return Rule{}, false
	}
	return rs.rules[idx], true
}
