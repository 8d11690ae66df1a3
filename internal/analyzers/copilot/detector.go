// Package copilot implements a lightweight, heuristic detector for
// AI-generated code. It never calls an LLM: detection is based on explicit
// markers (metadata fields, generator comments) and cheap textual signals,
// in the same spirit as a path/name heuristic classifier — fast, with no
// external dependency, and willing to accept false negatives in exchange for
// never blocking a scan on a slow or unavailable call.
package copilot

import (
	"strings"
)

// markerSubstrings are lowercase fragments that, when found in a comment
// line, strongly suggest a tool generated the surrounding code.
var markerSubstrings = []string{
	"generated by github copilot",
	"copilot generated",
	"github.com/copilot",
	"@copilot",
	"generated by copilot",
}

// Detector identifies AI-generated (e.g. Copilot) code from file content and
// caller-supplied metadata.
type Detector struct{}

// New returns a Detector.
func New() *Detector {
	return &Detector{}
}

// Detect reports whether content appears to be AI-generated. metadata is an
// optional, caller-supplied map (e.g. VCS blame info, IDE telemetry) that, if
// it carries a "generator" or "author" field naming Copilot, is treated as
// authoritative.
func (d *Detector) Detect(content string, metadata map[string]string) bool {
	if metadata != nil {
		if hasCopilotHint(metadata["generator"]) || hasCopilotHint(metadata["author"]) {
			return true
		}
	}

	lower := strings.ToLower(content)
	for _, marker := range markerSubstrings {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

func hasCopilotHint(value string) bool {
	return strings.Contains(strings.ToLower(value), "copilot")
}
