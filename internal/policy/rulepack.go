package policy

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/nox-hq/codeguard/internal/violations"
	"gopkg.in/yaml.v3"
)

// PackRule is a single custom rule defined inside a rule pack.
type PackRule struct {
	ID               string   `yaml:"id"`
	Name             string   `yaml:"name"`
	Pattern          string   `yaml:"pattern"`
	Category         string   `yaml:"category"`
	Severity         string   `yaml:"severity"`
	Explanation      string   `yaml:"explanation"`
	StandardMappings []string `yaml:"standard_mappings"`
}

// RulePack is a named collection of custom rules, typically used to encode
// an organization's compliance requirements beyond the built-in analyzers.
type RulePack struct {
	Name        string     `yaml:"-"`
	Description string     `yaml:"description"`
	Version     string     `yaml:"version"`
	Rules       []PackRule `yaml:"rules"`
}

// PackRegistry loads and caches rule packs from a directory of YAML files
// (one file per pack, named <pack>.yaml). It is safe for concurrent reads
// after LoadAll has populated it once at process start.
type PackRegistry struct {
	packs map[string]RulePack
}

// LoadPackRegistry reads every *.yaml file in dir into a RulePack keyed by
// its file name (without extension). Missing or unreadable files are
// skipped with a logged warning rather than failing the whole load, since a
// single malformed pack should never prevent the rest from being usable.
func LoadPackRegistry(dir string) *PackRegistry {
	reg := &PackRegistry{packs: make(map[string]RulePack)}

	entries, err := os.ReadDir(dir)
	if err != nil {
		slog.Warn("rule pack directory not found", "dir", dir, "error", err)
		return reg
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".yaml")
		path := filepath.Join(dir, entry.Name())

		data, err := os.ReadFile(path)
		if err != nil {
			slog.Warn("failed to read rule pack", "pack", name, "error", err)
			continue
		}
		var pack RulePack
		if err := yaml.Unmarshal(data, &pack); err != nil {
			slog.Warn("failed to parse rule pack", "pack", name, "error", err)
			continue
		}
		pack.Name = name
		reg.packs[name] = pack
		slog.Info("loaded rule pack", "pack", name, "rules", len(pack.Rules))
	}

	return reg
}

// Get returns the named pack, or false if it isn't registered.
func (r *PackRegistry) Get(name string) (RulePack, bool) {
	pack, ok := r.packs[name]
	return pack, ok
}

// Names returns every registered pack name.
func (r *PackRegistry) Names() []string {
	names := make([]string, 0, len(r.packs))
	for name := range r.packs {
		names = append(names, name)
	}
	return names
}

// AddPack registers pack under name, overwriting any existing pack of that
// name. It does not persist to disk; callers that need the pack to survive
// a restart must also write it under the registry's backing directory.
func (r *PackRegistry) AddPack(name string, pack RulePack) {
	pack.Name = name
	r.packs[name] = pack
}

// ParsePack parses raw YAML rule-pack data into a RulePack named name.
func ParsePack(name string, data []byte) (RulePack, error) {
	var pack RulePack
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return RulePack{}, err
	}
	pack.Name = name
	return pack, nil
}

// ApplyRulePack scans content line-by-line against every rule in the named
// pack and appends a violation for each match not already present (by
// rule ID + line number) in existing or among violations added earlier in
// this same call. Unknown category/severity strings fall back to
// compliance/medium rather than rejecting the rule.
func (r *PackRegistry) ApplyRulePack(existing []violations.Violation, packName, filePath, content string) []violations.Violation {
	pack, ok := r.packs[packName]
	if !ok {
		slog.Warn("rule pack not found", "pack", packName)
		return existing
	}

	if len(pack.Rules) == 0 {
		return existing
	}

	lines := strings.Split(content, "\n")
	added := make([]violations.Violation, 0)

	for _, rule := range pack.Rules {
		if rule.Pattern == "" {
			continue
		}
		re, err := regexp.Compile("(?im)" + rule.Pattern)
		if err != nil {
			slog.Warn("failed to compile rule pack pattern", "pack", packName, "rule", rule.ID, "error", err)
			continue
		}

		for i, line := range lines {
			if !re.MatchString(line) {
				continue
			}
			lineNum := i + 1
			if violationExists(existing, added, rule.ID, lineNum) {
				continue
			}

			category := violations.Category(strings.ToLower(rule.Category))
			if category == "" || !validCategory(category) {
				category = violations.CategoryCompliance
			}
			severity := violations.Severity(strings.ToLower(rule.Severity))
			if !severity.Valid() {
				severity = violations.SeverityMedium
			}

			explanation := rule.Explanation
			if explanation == "" {
				explanation = fmt.Sprintf("Violation of %s rule from %s rule pack", rule.Name, packName)
			}

			added = append(added, violations.Violation{
				RuleID:           rule.ID,
				RuleName:         rule.Name,
				Category:         category,
				Severity:         severity,
				Location:         violations.Location{FilePath: filePath, LineNumber: lineNum},
				Message:          fmt.Sprintf("%s detected", rule.Name),
				Explanation:      explanation,
				FixSuggestion:    fmt.Sprintf("Review and fix %s violation according to %s compliance requirements", rule.Name, packName),
				StandardMappings: rule.StandardMappings,
				CodeSnippet:      strings.TrimSpace(line),
			})
		}
	}

	slog.Info("applied rule pack", "pack", packName, "new_violations", len(added))
	return append(existing, added...)
}

func violationExists(existing, added []violations.Violation, ruleID string, line int) bool {
	for _, v := range existing {
		if v.RuleID == ruleID && v.Location.LineNumber == line {
			return true
		}
	}
	for _, v := range added {
		if v.RuleID == ruleID && v.Location.LineNumber == line {
			return true
		}
	}
	return false
}

func validCategory(c violations.Category) bool {
	switch c {
	case violations.CategorySecurity, violations.CategoryCompliance, violations.CategoryCodeQuality,
		violations.CategoryLicense, violations.CategoryIPRisk, violations.CategoryStandard:
		return true
	default:
		return false
	}
}
