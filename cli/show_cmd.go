package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/nox-hq/codeguard/cli/tui"
	"github.com/nox-hq/codeguard/internal/catalog"
	"github.com/nox-hq/codeguard/internal/config"
	"github.com/nox-hq/codeguard/internal/violations"
)

// runShow implements the "codeguard show" command: scan a directory and
// either print the violations as JSON or open the interactive TUI.
func runShow(args []string) int {
	var flagArgs, positionalArgs []string
	for i := 0; i < len(args); i++ {
		if strings.HasPrefix(args[i], "-") {
			flagArgs = append(flagArgs, args[i])
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") && !isBoolFlag(args[i]) {
				i++
				flagArgs = append(flagArgs, args[i])
			}
		} else {
			positionalArgs = append(positionalArgs, args[i])
		}
	}

	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	var (
		severity   string
		repository string
		jsonOutput bool
	)
	fs.StringVar(&severity, "severity", "", "filter by minimum severity: critical,high,medium,low")
	fs.StringVar(&repository, "repository", "", "repository identifier for policy resolution (owner/repo)")
	fs.BoolVar(&jsonOutput, "json", false, "output JSON instead of the TUI")
	if err := fs.Parse(flagArgs); err != nil {
		return 2
	}
	positionalArgs = append(positionalArgs, fs.Args()...)

	target := "."
	if len(positionalArgs) > 0 {
		target = positionalArgs[0]
	}
	if repository == "" {
		repository = target
	}

	cfg, err := config.Load(target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: loading .codeguard.yaml: %v\n", err)
		return 2
	}
	scanner, _, _ := buildScanner(cfg)

	fmt.Printf("codeguard — scanning %s\n", target)
	result, contents, err := scanTarget(context.Background(), scanner, target, repository, true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: scan failed: %v\n", err)
		return 2
	}

	vs := result.Violations
	if severity != "" {
		threshold := violations.Severity(strings.ToLower(severity))
		var filtered []violations.Violation
		for _, v := range vs {
			if v.Severity.AtLeast(threshold) {
				filtered = append(filtered, v)
			}
		}
		vs = filtered
	}

	fmt.Printf("[results] %d violations\n", len(vs))
	if len(vs) == 0 {
		return 0
	}

	cat := catalog.Rules()

	if jsonOutput || !isTerminal() {
		data, err := json.MarshalIndent(vs, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: marshalling JSON: %v\n", err)
			return 2
		}
		fmt.Println(string(data))
		return 0
	}

	m := tui.New(vs, contents, cat)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: TUI failed: %v\n", err)
		return 2
	}
	return 0
}

// isBoolFlag returns true if the given flag name is a boolean flag (i.e., it
// does not consume a following value argument).
func isBoolFlag(name string) bool {
	switch strings.TrimLeft(name, "-") {
	case "json":
		return true
	default:
		return false
	}
}

// isTerminal returns true if stdout is connected to a terminal.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
