package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/nox-hq/codeguard/internal/config"
)

// runScan implements the "codeguard scan" command: run every analyzer over a
// directory and print the resulting violations, exiting non-zero if the
// resolved policy blocks the merge.
func runScan(args []string) int {
	fs := flag.NewFlagSet("scan", flag.ContinueOnError)
	var (
		repository    string
		detectCopilot bool
		jsonOutput    bool
		quiet         bool
	)
	fs.StringVar(&repository, "repository", "", "repository identifier for policy resolution (owner/repo)")
	fs.BoolVar(&detectCopilot, "detect-copilot", true, "flag AI-generated code for stricter review")
	fs.BoolVar(&jsonOutput, "json", false, "print the full scan result as JSON")
	fs.BoolVar(&quiet, "quiet", false, "suppress progress output")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	target := "."
	if fs.NArg() > 0 {
		target = fs.Arg(0)
	}

	cfg, err := config.Load(target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: loading .codeguard.yaml: %v\n", err)
		return 2
	}
	if repository == "" {
		repository = target
	}

	scanner, _, _ := buildScanner(cfg)

	if !quiet && !jsonOutput {
		fmt.Printf("codeguard — scanning %s\n", target)
	}

	result, _, err := scanTarget(context.Background(), scanner, target, repository, detectCopilot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: scan failed: %v\n", err)
		return 2
	}

	if jsonOutput {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: marshalling result: %v\n", err)
			return 2
		}
		fmt.Println(string(data))
	} else if !quiet {
		fmt.Printf("[results] %d violations across %d files (%s)\n",
			result.Summary.TotalViolations, result.Summary.FilesAffected, result.EnforcementAction)
		for _, v := range result.Violations {
			fmt.Printf("  %s  %s:%d  %s  %s\n", v.Severity, v.Location.FilePath, v.Location.LineNumber, v.RuleID, v.Message)
		}
	}

	if !result.CanMerge {
		return 1
	}
	return 0
}
