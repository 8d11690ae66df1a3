// Package main is the entry point for the codeguard CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/nox-hq/codeguard/internal/analyzers/ai"
	"github.com/nox-hq/codeguard/internal/config"
	"github.com/nox-hq/codeguard/internal/discovery"
	"github.com/nox-hq/codeguard/internal/policy"
	"github.com/nox-hq/codeguard/internal/scan"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// buildScanner wires the policy store, rule pack registry, and optional AI
// analyzer into a Scanner, following cfg's configured directories and AI
// settings.
func buildScanner(cfg config.Config) (*scan.Scanner, *policy.Store, *policy.PackRegistry) {
	policies := policy.NewStore(cfg.PolicyDir)
	rulePacks := policy.LoadPackRegistry(cfg.RulePackDir)

	var analyzer *ai.Analyzer
	if cfg.AI.Enabled {
		apiKey := os.Getenv(cfg.AI.APIKeyEnv)
		if apiKey == "" {
			fmt.Fprintf(os.Stderr, "warning: AI analysis enabled but %s is unset, disabling\n", cfg.AI.APIKeyEnv)
		} else {
			var opts []ai.OpenAIOption
			opts = append(opts, ai.WithAPIKey(apiKey))
			if cfg.AI.Model != "" {
				opts = append(opts, ai.WithModel(cfg.AI.Model))
			}
			if cfg.AI.BaseURL != "" {
				opts = append(opts, ai.WithBaseURL(cfg.AI.BaseURL))
			}
			analyzer = ai.New(ai.NewOpenAIProvider(opts...))
		}
	}

	return scan.New(policies, rulePacks, analyzer), policies, rulePacks
}

// scanTarget walks target, reads every discovered file, and runs a scan
// against repository using scanner. It returns the scan result along with
// the path->content map, so callers (like show) can render source context
// without re-walking the tree.
func scanTarget(ctx context.Context, scanner *scan.Scanner, target, repository string, detectCopilot bool) (scan.Result, map[string]string, error) {
	files, err := discovery.NewWalker(target).Walk()
	if err != nil {
		return scan.Result{}, nil, fmt.Errorf("walking %s: %w", target, err)
	}
	contents, err := discovery.ReadFileInputs(files)
	if err != nil {
		return scan.Result{}, nil, fmt.Errorf("reading files under %s: %w", target, err)
	}

	inputs := make([]scan.FileInput, 0, len(files))
	for _, f := range files {
		inputs = append(inputs, scan.FileInput{Path: f.Path, Content: contents[f.Path]})
	}

	result := scanner.Scan(ctx, scan.Request{
		Repository:    repository,
		Files:         inputs,
		DetectCopilot: detectCopilot,
	})
	return result, contents, nil
}
