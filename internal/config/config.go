// Package config loads codeguard's process-level configuration — where
// policies and rule packs live on disk, how to reach the AI provider, and
// what address the HTTP server binds to — from a .codeguard.yaml file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// AISettings controls the optional AI-assisted analysis engine.
type AISettings struct {
	Enabled   bool   `yaml:"enabled"`
	APIKeyEnv string `yaml:"api_key_env"`
	Model     string `yaml:"model"`
	BaseURL   string `yaml:"base_url"`
	Timeout   string `yaml:"timeout"`
}

// ServerSettings controls the HTTP transport.
type ServerSettings struct {
	Address string `yaml:"address"`
}

// Config is codeguard's top-level process configuration.
type Config struct {
	PolicyDir   string         `yaml:"policy_dir"`
	RulePackDir string         `yaml:"rule_pack_dir"`
	AI          AISettings     `yaml:"ai"`
	Server      ServerSettings `yaml:"server"`
}

// Default returns the configuration used when no .codeguard.yaml is found.
func Default() Config {
	return Config{
		PolicyDir:   ".codeguard/policies",
		RulePackDir: ".codeguard/rule-packs",
		AI: AISettings{
			APIKeyEnv: "OPENAI_API_KEY",
			Model:     "gpt-4o",
		},
		Server: ServerSettings{
			Address: ":8080",
		},
	}
}

// Load reads .codeguard.yaml from root and merges it over Default(). A
// missing file is not an error — callers get the default configuration.
func Load(root string) (Config, error) {
	cfg := Default()

	path := filepath.Join(root, ".codeguard.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}
