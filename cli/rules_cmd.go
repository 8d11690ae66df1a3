package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/nox-hq/codeguard/internal/catalog"
)

// runRules implements the "codeguard rules" command: list every built-in
// rule's ID, category, and severity.
func runRules(args []string) int {
	fs := flag.NewFlagSet("rules", flag.ContinueOnError)
	var jsonOutput bool
	fs.BoolVar(&jsonOutput, "json", false, "output JSON instead of a table")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	rules := catalog.Rules()

	if jsonOutput {
		data, err := json.MarshalIndent(rules, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: marshalling rules: %v\n", err)
			return 2
		}
		fmt.Println(string(data))
		return 0
	}

	ids := make([]string, 0, len(rules))
	for id := range rules {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		r := rules[id]
		fmt.Printf("%-8s %-8s %-10s %s\n", r.ID, r.Severity, r.Category, r.Name)
	}
	return 0
}
