// Package policy implements enterprise policy resolution (org → repository →
// default), violation filtering, custom rule-pack application, and the
// enforcement decision that determines whether a pull request can merge.
package policy

import (
	"os"
	"path/filepath"

	"github.com/nox-hq/codeguard/internal/violations"
	"gopkg.in/yaml.v3"
)

// Config is the policy applied to a repository's scan.
type Config struct {
	EnforcementMode       violations.EnforcementMode `yaml:"enforcement_mode" json:"enforcement_mode"`
	EnabledRules          []string                   `yaml:"enabled_rules" json:"enabled_rules"`
	DisabledRules         []string                   `yaml:"disabled_rules" json:"disabled_rules"`
	SeverityThreshold     violations.Severity        `yaml:"severity_threshold" json:"severity_threshold"`
	RulePacks             []string                   `yaml:"rule_packs" json:"rule_packs"`
	AllowBlockingOverride bool                       `yaml:"allow_blocking_override" json:"allow_blocking_override"`
}

// DefaultConfig returns the policy applied when no org- or repo-level
// override exists: warning mode, medium severity threshold, overrides of
// blocking mode allowed.
func DefaultConfig() Config {
	return Config{
		EnforcementMode:       violations.EnforcementWarning,
		SeverityThreshold:     violations.SeverityMedium,
		AllowBlockingOverride: true,
	}
}

// Override holds field-level policy overrides supplied by a caller (e.g. a
// scan request), applied on top of whatever base policy resolution finds.
type Override struct {
	EnforcementMode       *violations.EnforcementMode `json:"enforcement_mode,omitempty"`
	EnabledRules          []string                    `json:"enabled_rules,omitempty"`
	DisabledRules         []string                    `json:"disabled_rules,omitempty"`
	SeverityThreshold     *violations.Severity        `json:"severity_threshold,omitempty"`
	RulePacks             []string                    `json:"rule_packs,omitempty"`
	AllowBlockingOverride *bool                       `json:"allow_blocking_override,omitempty"`
}

func (o Override) apply(c Config) Config {
	if o.EnforcementMode != nil {
		c.EnforcementMode = *o.EnforcementMode
	}
	if o.EnabledRules != nil {
		c.EnabledRules = o.EnabledRules
	}
	if o.DisabledRules != nil {
		c.DisabledRules = o.DisabledRules
	}
	if o.SeverityThreshold != nil {
		c.SeverityThreshold = *o.SeverityThreshold
	}
	if o.RulePacks != nil {
		c.RulePacks = o.RulePacks
	}
	if o.AllowBlockingOverride != nil {
		c.AllowBlockingOverride = *o.AllowBlockingOverride
	}
	return c
}

// Store resolves policies from a directory of YAML files: organization-level
// policies under organizations/<org>.yaml, and repository-level policies
// under <repository>.yaml (repository is "org/repo", so this is a nested
// path). It is safe for concurrent use; Resolve only reads from disk.
type Store struct {
	configDir string
}

// NewStore returns a Store rooted at configDir.
func NewStore(configDir string) *Store {
	return &Store{configDir: configDir}
}

// Resolve returns the policy for repository (format "org/repo"), applying
// override on top of whichever base policy is found. Resolution order is
// organization policy, then repository policy, then the built-in default;
// the first one found on disk wins — it does not merge across tiers.
func (s *Store) Resolve(repository string, override *Override) Config {
	org := orgFromRepository(repository)

	if org != "" {
		path := filepath.Join(s.configDir, "organizations", org+".yaml")
		if cfg, ok := loadConfig(path); ok {
			return applyOverride(cfg, override)
		}
	}

	repoPath := filepath.Join(s.configDir, repository+".yaml")
	if cfg, ok := loadConfig(repoPath); ok {
		return applyOverride(cfg, override)
	}

	return applyOverride(DefaultConfig(), override)
}

// ResolveOrganization returns the policy configured for org, falling back to
// the built-in default if no organization-level policy file exists.
func (s *Store) ResolveOrganization(org string) Config {
	path := filepath.Join(s.configDir, "organizations", org+".yaml")
	if cfg, ok := loadConfig(path); ok {
		return cfg
	}
	return DefaultConfig()
}

func applyOverride(cfg Config, override *Override) Config {
	if override == nil {
		return cfg
	}
	return override.apply(cfg)
}

func orgFromRepository(repository string) string {
	for i, r := range repository {
		if r == '/' {
			return repository[:i]
		}
	}
	return ""
}

func loadConfig(path string) (Config, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, false
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, false
	}
	return cfg, true
}

// SaveRepositoryPolicy writes cfg as the repository-level policy for
// repository, creating parent directories as needed.
func (s *Store) SaveRepositoryPolicy(repository string, cfg Config) error {
	return saveConfig(filepath.Join(s.configDir, repository+".yaml"), cfg)
}

// SaveOrganizationPolicy writes cfg as the organization-level policy for org.
func (s *Store) SaveOrganizationPolicy(org string, cfg Config) error {
	return saveConfig(filepath.Join(s.configDir, "organizations", org+".yaml"), cfg)
}

func saveConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
