// Package scan implements the orchestrator tying every analyzer engine and
// the policy engine together into a single scan operation.
package scan

import (
	"github.com/nox-hq/codeguard/internal/policy"
	"github.com/nox-hq/codeguard/internal/violations"
)

// FileInput is a single file submitted for scanning.
type FileInput struct {
	Path     string            `json:"path"`
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Request describes a scan of one or more files belonging to a repository.
type Request struct {
	Repository       string           `json:"repository"`
	PullRequestNumber *int            `json:"pull_request_number,omitempty"`
	CommitSHA        string           `json:"commit_sha,omitempty"`
	BaseSHA          string           `json:"base_sha,omitempty"`
	Files            []FileInput      `json:"files"`
	PolicyOverride   *policy.Override `json:"policy_config,omitempty"`
	DetectCopilot    bool             `json:"detect_copilot"`
	OverrideBlocking bool             `json:"override_blocking"`
}

// Summary aggregates violation counts for reporting.
type Summary struct {
	TotalViolations   int                        `json:"total_violations"`
	BySeverity        map[violations.Severity]int `json:"by_severity"`
	ByCategory        map[violations.Category]int `json:"by_category"`
	CopilotViolations int                        `json:"copilot_violations"`
	FilesAffected     int                        `json:"files_affected"`
}

// Result is the complete output of a scan.
type Result struct {
	ScanID            string                     `json:"scan_id"`
	Repository        string                     `json:"repository"`
	Violations        []violations.Violation     `json:"violations"`
	Summary           Summary                    `json:"summary"`
	EnforcementAction violations.EnforcementMode `json:"enforcement_action"`
	CanMerge          bool                       `json:"can_merge"`
	CopilotDetected   bool                       `json:"copilot_detected"`
	ProcessingTimeMs  float64                    `json:"processing_time_ms"`
}

func buildSummary(vs []violations.Violation) Summary {
	s := Summary{
		TotalViolations: len(vs),
		BySeverity:      make(map[violations.Severity]int),
		ByCategory:      make(map[violations.Category]int),
	}

	filesSeen := make(map[string]struct{})
	for _, v := range vs {
		s.BySeverity[v.Severity]++
		s.ByCategory[v.Category]++
		if v.IsCopilotGenerated {
			s.CopilotViolations++
		}
		filesSeen[v.Location.FilePath] = struct{}{}
	}
	s.FilesAffected = len(filesSeen)

	return s
}
