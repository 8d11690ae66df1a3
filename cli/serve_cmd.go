package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/nox-hq/codeguard/internal/config"
	transporthttp "github.com/nox-hq/codeguard/internal/transport/http"
)

// runServe implements the "codeguard serve" command: start the HTTP API
// server bound to the configured address.
func runServe(args []string) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	var (
		root    string
		address string
	)
	fs.StringVar(&root, "config", ".", "directory to load .codeguard.yaml from")
	fs.StringVar(&address, "address", "", "override the configured listen address")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: loading .codeguard.yaml: %v\n", err)
		return 2
	}
	if address != "" {
		cfg.Server.Address = address
	}

	scanner, policies, rulePacks := buildScanner(cfg)
	srv := transporthttp.New(scanner, policies, rulePacks)

	fmt.Printf("codeguard %s — listening on %s\n", version, cfg.Server.Address)
	if err := srv.Engine().Run(cfg.Server.Address); err != nil {
		fmt.Fprintf(os.Stderr, "error: HTTP server failed: %v\n", err)
		return 2
	}
	return 0
}
