package ai

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/nox-hq/codeguard/internal/violations"
)

const maxContentChars = 8000

// systemPrompt is the fixed instruction prefix describing the required JSON
// contract. Kept separate from the per-file user prompt so it can be reused
// verbatim across every call.
const systemPrompt = `You are an expert enterprise code reviewer analyzing code for production systems. Your analysis must be thorough, covering security, performance, maintainability, and compliance.

Return ONLY a valid JSON array of findings. Each element has this shape:
{
  "rule_id": "AI001",
  "rule_name": "Missing Input Validation",
  "category": "security",
  "severity": "high",
  "line_number": 15,
  "message": "User input not validated before processing",
  "explanation": "...",
  "fix_suggestion": "...",
  "standard_mappings": ["CWE-20", "OWASP-A03:2021"]
}

Severity guidelines: critical = immediate security risk or system compromise; high = significant security/performance/maintainability issue; medium = moderate concern; low = minor code quality issue.
Categories: security, compliance, code_quality, license, ip_risk, standard.
If no issues are found, return [].`

// buildPrompt constructs the user-turn message for a single file.
func buildPrompt(filePath string, content string, isCopilot bool) string {
	truncated := content
	if len(truncated) > maxContentChars {
		truncated = truncated[:maxContentChars]
	}

	var copilotNote string
	if isCopilot {
		copilotNote = "\nNOTE: This code is suspected to be AI-generated (e.g. GitHub Copilot). Apply stricter security standards.\n"
	}

	return fmt.Sprintf("File: %s%s\n\nCode to analyze:\n```\n%s\n```", filePath, copilotNote, truncated)
}

// buildFixPrompt constructs the user-turn message for a single-violation fix
// suggestion request.
func buildFixPrompt(ruleName, message, codeContext string) string {
	return fmt.Sprintf("Issue: %s\nDetails: %s\n\nCode context:\n```\n%s\n```\n\nSuggest a fix.", ruleName, message, codeContext)
}

const (
	maxFixSuggestionChars = 500
	minFixSuggestionChars = 20
)

var fencedBlockRe = regexp.MustCompile("(?s)^```[a-zA-Z0-9]*\\n?(.*?)\\n?```$")

// genericPrefixes are boilerplate openers models tend to prepend to an
// otherwise-usable suggestion; stripped so the stored fix_suggestion starts
// at the actual advice.
var genericPrefixes = []string{
	"here's the fix:", "here is the fix:",
	"here's a fix:", "here is a fix:",
	"the fix:", "the fix is:",
	"solution:", "suggested fix:", "fix:",
}

// cleanFixSuggestion applies the response-cleaning contract to a raw
// SuggestFix reply: unwrap a single fenced code block if the whole response
// is one, strip a leading generic prefix, truncate to maxFixSuggestionChars,
// and discard results too short to be actionable.
func cleanFixSuggestion(raw string) string {
	cleaned := strings.TrimSpace(raw)

	if m := fencedBlockRe.FindStringSubmatch(cleaned); m != nil {
		cleaned = strings.TrimSpace(m[1])
	}

	lower := strings.ToLower(cleaned)
	for _, prefix := range genericPrefixes {
		if strings.HasPrefix(lower, prefix) {
			cleaned = strings.TrimSpace(cleaned[len(prefix):])
			break
		}
	}

	if len(cleaned) > maxFixSuggestionChars {
		cleaned = strings.TrimSpace(cleaned[:maxFixSuggestionChars])
	}

	if len(cleaned) < minFixSuggestionChars {
		return ""
	}
	return cleaned
}

// genericFixSuggestions are whole-suggestion phrases too vague to be worth
// keeping; an existing fix_suggestion matching one of these (after case
// folding and trimming) is treated the same as an empty one.
var genericFixSuggestions = map[string]bool{
	"fix the issue":           true,
	"fix this issue":          true,
	"see above":                true,
	"address the issue above": true,
	"review and fix":          true,
	"n/a":                     true,
	"tbd":                     true,
	"todo":                    true,
	"no suggestion available": true,
}

// NeedsFixSuggestion reports whether an existing fix_suggestion is missing or
// too generic to be actionable, and should be replaced by an AI-generated one.
func NeedsFixSuggestion(existing string) bool {
	trimmed := strings.ToLower(strings.TrimSpace(existing))
	return trimmed == "" || genericFixSuggestions[trimmed]
}

// aiFinding mirrors the JSON shape of a single element in the model's
// response array.
type aiFinding struct {
	RuleID           string   `json:"rule_id"`
	RuleName         string   `json:"rule_name"`
	Category         string   `json:"category"`
	Severity         string   `json:"severity"`
	LineNumber       int      `json:"line_number"`
	Message          string   `json:"message"`
	Explanation      string   `json:"explanation"`
	FixSuggestion    string   `json:"fix_suggestion"`
	StandardMappings []string `json:"standard_mappings"`
}

var jsonArrayRe = regexp.MustCompile(`(?s)\[.*\]`)

// parseResponse extracts the first JSON array from raw (tolerating markdown
// code fences around it) and converts each element into a Violation.
// Malformed array elements are skipped rather than failing the whole parse.
func parseResponse(raw, filePath string, isCopilot bool) []violations.Violation {
	match := jsonArrayRe.FindString(raw)
	if match == "" {
		return nil
	}

	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(match), &elements); err != nil {
		slog.Warn("ai response is not a JSON array", "file", filePath, "error", err)
		return nil
	}

	confidence := 0.85
	out := make([]violations.Violation, 0, len(elements))
	for _, raw := range elements {
		var f aiFinding
		if err := json.Unmarshal(raw, &f); err != nil {
			slog.Warn("dropping malformed ai finding", "file", filePath, "error", err)
			continue
		}

		ruleID := f.RuleID
		if ruleID == "" {
			ruleID = "AI000"
		}
		ruleName := f.RuleName
		if ruleName == "" {
			ruleName = "AI Detected Issue"
		}
		category := violations.Category(strings.ToLower(f.Category))
		if category == "" {
			category = violations.CategoryCodeQuality
		}
		severity := violations.Severity(strings.ToLower(f.Severity))
		if !severity.Valid() {
			severity = violations.SeverityMedium
		}
		lineNumber := f.LineNumber
		if lineNumber <= 0 {
			lineNumber = 1
		}

		out = append(out, violations.Violation{
			RuleID:             ruleID,
			RuleName:           ruleName,
			Category:           category,
			Severity:           severity,
			Location:           violations.Location{FilePath: filePath, LineNumber: lineNumber},
			Message:            f.Message,
			Explanation:        f.Explanation,
			FixSuggestion:      f.FixSuggestion,
			StandardMappings:   f.StandardMappings,
			IsCopilotGenerated: isCopilot,
			AIConfidence:       &confidence,
		})
	}
	return out
}
