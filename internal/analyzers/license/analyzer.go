// Package license implements the license and third-party-attribution
// analyzer: LIC001 (restricted license header) and LIC002 (missing
// attribution for a known third-party import).
package license

import (
	"regexp"
	"strings"

	"github.com/nox-hq/codeguard/internal/violations"
)

var restrictedLicenses = map[string]bool{
	"GPL-2.0": true, "GPL-3.0": true, "AGPL-3.0": true, "LGPL-2.1": true, "LGPL-3.0": true,
}

// thirdPartyLibs lists well-known third-party libraries whose licenses
// commonly require attribution in the importing project.
var thirdPartyLibs = []string{
	"requests", "numpy", "pandas", "django", "flask", "tensorflow", "pytorch",
}

// Analyzer checks source content for restricted license headers and
// unattributed third-party imports.
type Analyzer struct{}

// New returns a license Analyzer.
func New() *Analyzer { return &Analyzer{} }

// CheckFile inspects the first 50 lines of content for a recognizable
// license header, then scans the whole file for third-party imports lacking
// attribution.
func (a *Analyzer) CheckFile(path string, content string) []violations.Violation {
	var out []violations.Violation

	if lic, ok := extractLicenseHeader(content); ok {
		if restrictedLicenses[lic] {
			out = append(out, violations.Violation{
				RuleID: "LIC001", RuleName: "Restricted License Detected",
				Category: violations.CategoryLicense, Severity: violations.SeverityHigh,
				Location:    violations.Location{FilePath: path, LineNumber: 1},
				Message:     "File contains " + lic + " license which may be incompatible with enterprise policies",
				Explanation: "The " + lic + " license has copyleft requirements that may conflict with proprietary software policies. Review with legal team before including in production code.",
				FixSuggestion: "Consider using MIT, Apache-2.0, or BSD licenses, or obtain legal approval",
			})
		}
	}

	out = append(out, checkImportAttribution(path, content)...)

	return out
}

// extractLicenseHeader scans the first 50 lines of content for a license
// header and returns its identified license identifier.
func extractLicenseHeader(content string) (string, bool) {
	lines := strings.Split(content, "\n")
	if len(lines) > 50 {
		lines = lines[:50]
	}
	header := strings.ToLower(strings.Join(lines, "\n"))

	switch {
	case strings.Contains(header, "mit license") || strings.Contains(header, "the mit license"):
		return "MIT", true
	case strings.Contains(header, "apache license") || strings.Contains(header, "apache-2.0"):
		return "Apache-2.0", true
	case strings.Contains(header, "agpl") || strings.Contains(header, "gnu affero general public license"):
		return "AGPL-3.0", true
	case strings.Contains(header, "lgpl") && strings.Contains(header, "3"):
		return "LGPL-3.0", true
	case strings.Contains(header, "lgpl"):
		return "LGPL-2.1", true
	case strings.Contains(header, "gpl") && strings.Contains(header, "3"):
		return "GPL-3.0", true
	case strings.Contains(header, "gpl") || strings.Contains(header, "gnu general public license"):
		return "GPL-2.0", true
	case strings.Contains(header, "bsd license") || regexp.MustCompile(`bsd-\d`).MatchString(header):
		return "BSD", true
	case strings.Contains(header, "proprietary") || strings.Contains(header, "all rights reserved"):
		return "Proprietary", true
	default:
		return "", false
	}
}

var importRe = regexp.MustCompile(`^\s*(?:import|from)\s+([a-zA-Z_][a-zA-Z0-9_]*)`)

func checkImportAttribution(path, content string) []violations.Violation {
	var out []violations.Violation
	lines := strings.Split(content, "\n")

	for i, line := range lines {
		m := importRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		lib := m[1]
		if !containsLib(thirdPartyLibs, lib) {
			continue
		}
		if hasAttribution(lines, lib) {
			continue
		}
		out = append(out, violations.Violation{
			RuleID: "LIC002", RuleName: "Missing Third-Party Attribution",
			Category: violations.CategoryLicense, Severity: violations.SeverityMedium,
			Location:      violations.Location{FilePath: path, LineNumber: i + 1},
			Message:       "Third-party library '" + lib + "' used without attribution",
			Explanation:   "The library '" + lib + "' is used but not properly attributed. Some licenses require attribution in documentation or source code.",
			FixSuggestion: "Add attribution for " + lib + " in LICENSE or README file",
			CodeSnippet:   strings.TrimSpace(line),
		})
	}
	return out
}

func containsLib(libs []string, name string) bool {
	for _, l := range libs {
		if l == name {
			return true
		}
	}
	return false
}

// hasAttribution returns true if some comment line elsewhere in the file
// acknowledges the library (e.g. "# Uses requests for HTTP" or
// "# Attribution: pandas"), as distinct from the import statement itself.
func hasAttribution(lines []string, library string) bool {
	libLower := strings.ToLower(library)
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "#") && !strings.HasPrefix(trimmed, "//") {
			continue
		}
		if strings.Contains(strings.ToLower(trimmed), libLower) {
			return true
		}
	}
	return false
}
