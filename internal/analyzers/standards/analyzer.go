// Package standards implements the coding-standards analyzer: naming
// conventions, logging requirements, and error-handling patterns (STD001
// through STD007).
package standards

import (
	"regexp"
	"strings"

	"github.com/nox-hq/codeguard/internal/violations"
)

var (
	funcDefRe    = regexp.MustCompile(`def\s+([a-zA-Z_][a-zA-Z0-9_]*)`)
	classDefRe   = regexp.MustCompile(`class\s+([a-zA-Z_][a-zA-Z0-9_]*)`)
	constAssignRe = regexp.MustCompile(`^([A-Z_][A-Z0-9_]*)\s*=`)

	snakeCaseRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)
	pascalCaseRe = regexp.MustCompile(`^[A-Z][a-zA-Z0-9]*$`)
	upperSnakeRe = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)

	missingLoggingFuncRe = regexp.MustCompile(`def\s+\w+.*:\s*$`)
	missingLoggingErrRe  = regexp.MustCompile(`^\s*(raise|except)\b.*:\s*$`)

	bareExceptRe    = regexp.MustCompile(`^\s*except\s*:\s*$`)
	silentExceptRe  = regexp.MustCompile(`^\s*except\s+Exception\s*:\s*$`)
)

// CustomStandard is a single organization-defined coding-standard rule,
// applied in addition to the built-in checks. Currently accepted for
// forward compatibility with policy-supplied custom_standards but not yet
// enforced — unrecognized entries are ignored rather than rejected.
type CustomStandard struct {
	ID      string
	Pattern string
}

// Analyzer enforces naming, logging, and error-handling conventions.
type Analyzer struct{}

// New returns a coding-standards Analyzer.
func New() *Analyzer { return &Analyzer{} }

// AnalyzeFile checks content for naming convention violations, missing
// logging around function/error-handling blocks, and unsafe exception
// handling patterns. customStandards is accepted but not yet enforced; it
// must never cause an error.
func (a *Analyzer) AnalyzeFile(path string, content []byte, isCopilot bool, customStandards []CustomStandard) []violations.Violation {
	var out []violations.Violation
	lines := strings.Split(string(content), "\n")

	out = append(out, checkNaming(path, lines, isCopilot)...)
	out = append(out, checkLogging(path, lines, isCopilot)...)
	out = append(out, checkErrorHandling(path, lines, isCopilot)...)
	_ = customStandards // reserved: no built-in behavior defined for custom rules yet

	return out
}

func checkNaming(path string, lines []string, isCopilot bool) []violations.Violation {
	var out []violations.Violation
	for i, line := range lines {
		lineNum := i + 1

		if m := funcDefRe.FindStringSubmatch(line); m != nil {
			name := m[1]
			if !snakeCaseRe.MatchString(name) {
				out = append(out, violations.Violation{
					RuleID: "STD005", RuleName: "Function Naming Convention Violation",
					Category: violations.CategoryStandard, Severity: violations.SeverityLow,
					Location:      violations.Location{FilePath: path, LineNumber: lineNum},
					Message:       "Function '" + name + "' does not follow snake_case convention",
					Explanation:   "Functions should use snake_case naming (e.g., 'get_user_data' not '" + name + "')",
					FixSuggestion: "Rename function to follow snake_case: '" + toSnakeCase(name) + "'",
					CodeSnippet:   strings.TrimSpace(line), IsCopilotGenerated: isCopilot,
				})
			}
		}

		if m := classDefRe.FindStringSubmatch(line); m != nil {
			name := m[1]
			if !pascalCaseRe.MatchString(name) {
				out = append(out, violations.Violation{
					RuleID: "STD006", RuleName: "Class Naming Convention Violation",
					Category: violations.CategoryStandard, Severity: violations.SeverityLow,
					Location:      violations.Location{FilePath: path, LineNumber: lineNum},
					Message:       "Class '" + name + "' does not follow PascalCase convention",
					Explanation:   "Classes should use PascalCase naming (e.g., 'UserService' not '" + name + "')",
					FixSuggestion: "Rename class to follow PascalCase: '" + toPascalCase(name) + "'",
					CodeSnippet:   strings.TrimSpace(line), IsCopilotGenerated: isCopilot,
				})
			}
		}

		if m := constAssignRe.FindStringSubmatch(line); m != nil {
			name := m[1]
			if !upperSnakeRe.MatchString(name) {
				out = append(out, violations.Violation{
					RuleID: "STD007", RuleName: "Constant Naming Convention Violation",
					Category: violations.CategoryStandard, Severity: violations.SeverityLow,
					Location:      violations.Location{FilePath: path, LineNumber: lineNum},
					Message:       "Constant '" + name + "' does not follow UPPER_SNAKE_CASE convention",
					Explanation:   "Constants should use UPPER_SNAKE_CASE naming (e.g., 'MAX_RETRIES' not '" + name + "')",
					FixSuggestion: "Rename constant to follow UPPER_SNAKE_CASE: '" + strings.ToUpper(name) + "'",
					CodeSnippet:   strings.TrimSpace(line), IsCopilotGenerated: isCopilot,
				})
			}
		}
	}
	return out
}

func checkLogging(path string, lines []string, isCopilot bool) []violations.Violation {
	var out []violations.Violation

	type loggingCheck struct {
		re          *regexp.Regexp
		ruleID      string
		ruleName    string
		severity    violations.Severity
		explanation string
	}
	checks := []loggingCheck{
		{missingLoggingFuncRe, "STD001", "Missing Logging in Function", violations.SeverityMedium, "Functions should include logging for debugging and monitoring"},
		{missingLoggingErrRe, "STD002", "Missing Error Logging", violations.SeverityHigh, "Error handling should include logging for troubleshooting"},
	}

	for _, c := range checks {
		for i, line := range lines {
			if !c.re.MatchString(line) {
				continue
			}
			lineNum := i + 1
			start := lineNum - 3
			if start < 0 {
				start = 0
			}
			end := lineNum + 3
			if end > len(lines) {
				end = len(lines)
			}
			context := strings.ToLower(strings.Join(lines[start:end], "\n"))
			if strings.Contains(context, "logger") || strings.Contains(context, "log") {
				continue
			}
			out = append(out, violations.Violation{
				RuleID: c.ruleID, RuleName: c.ruleName,
				Category: violations.CategoryStandard, Severity: c.severity,
				Location:      violations.Location{FilePath: path, LineNumber: lineNum},
				Message:       c.ruleName,
				Explanation:   c.explanation,
				FixSuggestion: "Add appropriate logging: logger.info(...) on success or logger.error(..., exc_info=True) on failure",
				CodeSnippet:   strings.TrimSpace(line), IsCopilotGenerated: isCopilot,
			})
		}
	}
	return out
}

func checkErrorHandling(path string, lines []string, isCopilot bool) []violations.Violation {
	var out []violations.Violation

	type errCheck struct {
		re          *regexp.Regexp
		ruleID      string
		ruleName    string
		severity    violations.Severity
		explanation string
	}
	checks := []errCheck{
		{bareExceptRe, "STD003", "Bare Except Clause", violations.SeverityHigh, "Bare except clauses catch all exceptions including system exits"},
		{silentExceptRe, "STD004", "Silent Exception Handling", violations.SeverityMedium, "Silently catching exceptions hides errors and makes debugging difficult"},
	}

	for _, c := range checks {
		for i, line := range lines {
			if !c.re.MatchString(line) {
				continue
			}
			// STD004 requires the following line to be a bare `pass`.
			if c.ruleID == "STD004" {
				if i+1 >= len(lines) || strings.TrimSpace(lines[i+1]) != "pass" {
					continue
				}
			}
			out = append(out, violations.Violation{
				RuleID: c.ruleID, RuleName: c.ruleName,
				Category: violations.CategoryCodeQuality, Severity: c.severity,
				Location:      violations.Location{FilePath: path, LineNumber: i + 1},
				Message:       c.ruleName,
				Explanation:   c.explanation,
				FixSuggestion: "Use specific exception types and log them: except ValueError as e: logger.error(..., exc_info=True)",
				CodeSnippet:   strings.TrimSpace(line), IsCopilotGenerated: isCopilot,
			})
		}
	}
	return out
}

func toSnakeCase(name string) string {
	var b strings.Builder
	for i, r := range name {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte('_')
		}
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}

func toPascalCase(name string) string {
	parts := strings.Split(name, "_")
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]) + p[1:])
	}
	return b.String()
}
