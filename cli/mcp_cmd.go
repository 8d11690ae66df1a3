package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/nox-hq/codeguard/internal/config"
	"github.com/nox-hq/codeguard/server/mcp"
)

// runMCP implements the "codeguard mcp" command: start the MCP server on
// stdio so an editor agent can drive a scan directly.
func runMCP(args []string) int {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	var root string
	fs.StringVar(&root, "config", ".", "directory to load .codeguard.yaml from")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: loading .codeguard.yaml: %v\n", err)
		return 2
	}

	scanner, policies, rulePacks := buildScanner(cfg)
	srv := mcp.New(version, scanner, policies, rulePacks)
	if err := srv.Serve(); err != nil {
		fmt.Fprintf(os.Stderr, "error: MCP server failed: %v\n", err)
		return 2
	}
	return 0
}
