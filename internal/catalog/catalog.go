// Package catalog provides a central, read-only registry of built-in rule
// metadata and available rule packs, surfaced over the HTTP/MCP transports
// so callers can inspect what a scan will check for before running one.
package catalog

import (
	"github.com/nox-hq/codeguard/internal/analyzers/static"
	"github.com/nox-hq/codeguard/internal/policy"
	"github.com/nox-hq/codeguard/internal/violations"
)

// RuleMeta describes a single built-in rule for catalog listings.
type RuleMeta struct {
	ID               string               `json:"id"`
	Name             string               `json:"name"`
	Category         violations.Category  `json:"category"`
	Severity         violations.Severity  `json:"severity"`
	StandardMappings []string             `json:"standard_mappings,omitempty"`
}

// standardsRuleMeta lists the coding-standards and license rule IDs that
// aren't backed by the declarative rules.Engine (their analyzers don't use
// rules.RuleSet), kept here so they still show up in a catalog listing.
var standardsRuleMeta = []RuleMeta{
	{ID: "STD001", Name: "Missing Function Logging", Category: violations.CategoryStandard, Severity: violations.SeverityLow},
	{ID: "STD002", Name: "Missing Error Logging", Category: violations.CategoryStandard, Severity: violations.SeverityMedium},
	{ID: "STD003", Name: "Bare Except Clause", Category: violations.CategoryStandard, Severity: violations.SeverityMedium},
	{ID: "STD004", Name: "Silent Exception Handling", Category: violations.CategoryStandard, Severity: violations.SeverityHigh},
	{ID: "STD005", Name: "Function Naming Convention", Category: violations.CategoryStandard, Severity: violations.SeverityLow},
	{ID: "STD006", Name: "Class Naming Convention", Category: violations.CategoryStandard, Severity: violations.SeverityLow},
	{ID: "STD007", Name: "Constant Naming Convention", Category: violations.CategoryStandard, Severity: violations.SeverityLow},
	{ID: "LIC001", Name: "Restricted License Header", Category: violations.CategoryLicense, Severity: violations.SeverityHigh},
	{ID: "LIC002", Name: "Missing Third-Party Attribution", Category: violations.CategoryLicense, Severity: violations.SeverityMedium},
	{ID: "DUP001", Name: "Duplicate Code Detected", Category: violations.CategoryCodeQuality, Severity: violations.SeverityMedium},
}

// Rules returns every built-in rule's metadata, keyed by rule ID.
func Rules() map[string]RuleMeta {
	cat := make(map[string]RuleMeta)

	for _, r := range static.Rules() {
		cat[r.ID] = RuleMeta{
			ID:               r.ID,
			Name:             r.Name,
			Category:         r.Category,
			Severity:         r.Severity,
			StandardMappings: r.StandardMappings,
		}
	}
	for _, m := range standardsRuleMeta {
		cat[m.ID] = m
	}

	return cat
}

// RulePackInfo is a summary of a registered rule pack for listing endpoints.
type RulePackInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Version     string `json:"version"`
	RulesCount  int    `json:"rules_count"`
}

// RulePacks lists every rule pack registered in reg.
func RulePacks(reg *policy.PackRegistry, names []string) []RulePackInfo {
	out := make([]RulePackInfo, 0, len(names))
	for _, name := range names {
		pack, ok := reg.Get(name)
		if !ok {
			continue
		}
		out = append(out, RulePackInfo{
			Name:        pack.Name,
			Description: pack.Description,
			Version:     pack.Version,
			RulesCount:  len(pack.Rules),
		})
	}
	return out
}
