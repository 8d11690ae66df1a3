package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// extractInterspersedArgs reorders args so that known top-level flags come
// before positional arguments, allowing "codeguard scan . --repository x/y"
// to work the same as "codeguard --repository x/y scan .". Subcommand-
// specific flags are left in place for the subcommand to parse.
func extractInterspersedArgs(args []string) []string {
	var flags, rest []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			rest = append(rest, args[i:]...)
			break
		}
		if !strings.HasPrefix(arg, "-") {
			rest = append(rest, arg)
			continue
		}
		name := strings.TrimLeft(arg, "-")
		if eq := strings.Index(name, "="); eq >= 0 {
			name = name[:eq]
		}
		if isTopLevelBoolFlag(name) {
			flags = append(flags, arg)
		} else {
			rest = append(rest, arg)
		}
	}
	return append(flags, rest...)
}

func isTopLevelBoolFlag(name string) bool {
	switch name {
	case "quiet", "q", "verbose", "v", "version":
		return true
	}
	return false
}

// run executes the CLI and returns the exit code.
// 0 = clean (no blocking violations), 1 = violations detected, 2 = error.
func run(args []string) int {
	args = extractInterspersedArgs(args)
	fs := flag.NewFlagSet("codeguard", flag.ContinueOnError)

	var versionFlag bool
	fs.BoolVar(&versionFlag, "version", false, "print version and exit")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: codeguard <command> [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  scan <path>   Scan a directory and print a violation report\n")
		fmt.Fprintf(os.Stderr, "  show [path]   Inspect violations interactively\n")
		fmt.Fprintf(os.Stderr, "  watch [path]  Watch for changes and re-scan\n")
		fmt.Fprintf(os.Stderr, "  serve         Start the HTTP API server\n")
		fmt.Fprintf(os.Stderr, "  mcp           Start the MCP server on stdio\n")
		fmt.Fprintf(os.Stderr, "  rules         List built-in rules\n")
		fmt.Fprintf(os.Stderr, "  version       Print version and exit\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if versionFlag {
		printVersion()
		return 0
	}

	remaining := fs.Args()
	if len(remaining) == 0 {
		fs.Usage()
		return 2
	}

	command := remaining[0]
	switch command {
	case "scan":
		return runScan(remaining[1:])
	case "show":
		return runShow(remaining[1:])
	case "watch":
		return runWatch(remaining[1:])
	case "serve":
		return runServe(remaining[1:])
	case "mcp":
		return runMCP(remaining[1:])
	case "rules":
		return runRules(remaining[1:])
	case "version":
		printVersion()
		return 0
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", command)
		fs.Usage()
		return 2
	}
}

func printVersion() {
	fmt.Printf("codeguard %s (commit: %s, built: %s)\n", version, commit, date)
}
