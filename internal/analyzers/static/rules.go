// Package static implements the static pattern analyzer: hardcoded-secret,
// SQL-injection, and unsafe-operation detection via the shared rules engine.
package static

import (
	"github.com/nox-hq/codeguard/internal/rules"
	"github.com/nox-hq/codeguard/internal/violations"
)

// ruleDef is the compact, table-driven shape builtin rules are declared in
// before being converted into rules.Rule values.
type ruleDef struct {
	id               string
	name             string
	pattern          string
	category         violations.Category
	severity         violations.Severity
	standardMappings []string
	message          string
	explanation      string
	copilotNote      string
	fixSuggestion    string
}

const copilotSecretNote = "This appears to be AI-generated code, which may have introduced this vulnerability."
const copilotSQLNote = "This AI-generated code may not have considered security best practices."
const copilotUnsafeNote = "AI-generated code may not have considered the security implications."

var secretRuleDefs = []ruleDef{
	{
		id: "SEC001", name: "Hardcoded API Key",
		pattern:          `(?i)(api[_-]?key|apikey)\s*[=:]\s*["']([^"']{20,})["']`,
		category:         violations.CategorySecurity, severity: violations.SeverityCritical,
		standardMappings: []string{"CWE-798", "OWASP-A07:2021"},
		message:          "Hardcoded secret detected: Hardcoded API Key",
		explanation:      "This code contains a hardcoded secret which is a critical security risk. Secrets should be stored in environment variables or secret management systems.",
		copilotNote:      copilotSecretNote,
		fixSuggestion:    "Use environment variables or a secrets manager (e.g., AWS Secrets Manager, HashiCorp Vault)",
	},
	{
		id: "SEC002", name: "Hardcoded Password",
		pattern:          `(?i)(password|passwd|pwd)\s*[=:]\s*["']([^"']+)["']`,
		category:         violations.CategorySecurity, severity: violations.SeverityCritical,
		standardMappings: []string{"CWE-798", "OWASP-A07:2021"},
		message:          "Hardcoded secret detected: Hardcoded Password",
		explanation:      "This code contains a hardcoded secret which is a critical security risk. Secrets should be stored in environment variables or secret management systems.",
		copilotNote:      copilotSecretNote,
		fixSuggestion:    "Use environment variables or a secrets manager (e.g., AWS Secrets Manager, HashiCorp Vault)",
	},
	{
		id: "SEC003", name: "Hardcoded Secret",
		pattern:          `(?i)(secret|secret[_-]?key)\s*[=:]\s*["']([^"']{20,})["']`,
		category:         violations.CategorySecurity, severity: violations.SeverityCritical,
		standardMappings: []string{"CWE-798", "OWASP-A07:2021"},
		message:          "Hardcoded secret detected: Hardcoded Secret",
		explanation:      "This code contains a hardcoded secret which is a critical security risk. Secrets should be stored in environment variables or secret management systems.",
		copilotNote:      copilotSecretNote,
		fixSuggestion:    "Use environment variables or a secrets manager (e.g., AWS Secrets Manager, HashiCorp Vault)",
	},
	{
		id: "SEC004", name: "Hardcoded AWS Credentials",
		pattern:          `(?i)(aws[_-]?access[_-]?key[_-]?id|aws[_-]?secret[_-]?access[_-]?key)\s*[=:]\s*["']([^"']+)["']`,
		category:         violations.CategorySecurity, severity: violations.SeverityCritical,
		standardMappings: []string{"CWE-798", "OWASP-A07:2021"},
		message:          "Hardcoded secret detected: Hardcoded AWS Credentials",
		explanation:      "This code contains a hardcoded secret which is a critical security risk. Secrets should be stored in environment variables or secret management systems.",
		copilotNote:      copilotSecretNote,
		fixSuggestion:    "Use environment variables or a secrets manager (e.g., AWS Secrets Manager, HashiCorp Vault)",
	},
	{
		id: "SEC005", name: "Stripe Live Secret Key",
		pattern:          `sk_live_[0-9a-zA-Z]{24,}`,
		category:         violations.CategorySecurity, severity: violations.SeverityCritical,
		standardMappings: []string{"CWE-798"},
		message:          "Hardcoded secret detected: Stripe Live Secret Key",
		explanation:      "This code contains a hardcoded secret which is a critical security risk. Secrets should be stored in environment variables or secret management systems.",
		copilotNote:      copilotSecretNote,
		fixSuggestion:    "Use environment variables or a secrets manager (e.g., AWS Secrets Manager, HashiCorp Vault)",
	},
	{
		id: "SEC006", name: "Hardcoded Token",
		pattern:          `(?i)(token|bearer[_-]?token)\s*[=:]\s*["']([^"']{20,})["']`,
		category:         violations.CategorySecurity, severity: violations.SeverityCritical,
		standardMappings: []string{"CWE-798", "OWASP-A07:2021"},
		message:          "Hardcoded secret detected: Hardcoded Token",
		explanation:      "This code contains a hardcoded secret which is a critical security risk. Secrets should be stored in environment variables or secret management systems.",
		copilotNote:      copilotSecretNote,
		fixSuggestion:    "Use environment variables or a secrets manager (e.g., AWS Secrets Manager, HashiCorp Vault)",
	},
	{
		id: "SEC007", name: "Hardcoded Private Key",
		pattern:          `(?i)(private[_-]?key|privatekey)\s*[=:]\s*["']([^"']{20,})["']`,
		category:         violations.CategorySecurity, severity: violations.SeverityCritical,
		standardMappings: []string{"CWE-798", "OWASP-A07:2021"},
		message:          "Hardcoded secret detected: Hardcoded Private Key",
		explanation:      "This code contains a hardcoded secret which is a critical security risk. Secrets should be stored in environment variables or secret management systems.",
		copilotNote:      copilotSecretNote,
		fixSuggestion:    "Use environment variables or a secrets manager (e.g., AWS Secrets Manager, HashiCorp Vault)",
	},
	{
		id: "SEC008", name: "Hardcoded Private Key (PEM Format)",
		pattern:          `-----BEGIN\s+(RSA\s+)?PRIVATE\s+KEY-----`,
		category:         violations.CategorySecurity, severity: violations.SeverityCritical,
		standardMappings: []string{"CWE-798", "OWASP-A07:2021"},
		message:          "Hardcoded secret detected: Hardcoded Private Key (PEM Format)",
		explanation:      "This code contains a hardcoded secret which is a critical security risk. Secrets should be stored in environment variables or secret management systems.",
		copilotNote:      copilotSecretNote,
		fixSuggestion:    "Use environment variables or a secrets manager (e.g., AWS Secrets Manager, HashiCorp Vault)",
	},
	{
		id: "SEC009", name: "Hardcoded Database Credentials",
		pattern:          `(?i)(database[_-]?url|db[_-]?password|connection[_-]?string)\s*[=:]\s*["']([^"']*://[^"']+)["']`,
		category:         violations.CategorySecurity, severity: violations.SeverityCritical,
		standardMappings: []string{"CWE-798", "OWASP-A07:2021"},
		message:          "Hardcoded secret detected: Hardcoded Database Credentials",
		explanation:      "This code contains a hardcoded secret which is a critical security risk. Secrets should be stored in environment variables or secret management systems.",
		copilotNote:      copilotSecretNote,
		fixSuggestion:    "Use environment variables or a secrets manager (e.g., AWS Secrets Manager, HashiCorp Vault)",
	},
}

var sqlInjectionRuleDefs = []ruleDef{
	{
		id: "SEC101", name: "Potential SQL Injection (String Concatenation)",
		pattern:          `(?i)(execute|query|exec)\s*\([^)]*\+.*["']`,
		category:         violations.CategorySecurity, severity: violations.SeverityHigh,
		standardMappings: []string{"CWE-89", "OWASP-A03:2021"},
		message:          "Potential SQL injection vulnerability detected",
		explanation:      "SQL queries constructed using string concatenation or formatting are vulnerable to SQL injection attacks. Use parameterized queries or ORM methods instead.",
		copilotNote:      copilotSQLNote,
		fixSuggestion:    "Use parameterized queries instead of concatenating user input into the query string.",
	},
	{
		id: "SEC102", name: "Potential SQL Injection (Interpolated String)",
		pattern:          `(?i)(execute|query|exec)\s*\([^)]*f["']`,
		category:         violations.CategorySecurity, severity: violations.SeverityHigh,
		standardMappings: []string{"CWE-89", "OWASP-A03:2021"},
		message:          "Potential SQL injection vulnerability detected",
		explanation:      "SQL queries built from interpolated strings are vulnerable to SQL injection attacks. Use parameterized queries or ORM methods instead.",
		copilotNote:      copilotSQLNote,
		fixSuggestion:    "Use parameterized queries instead of interpolating user input into the query string.",
	},
	{
		id: "SEC103", name: "Potential SQL Injection (String Format)",
		pattern:          `(?i)(execute|query|exec)\s*\([^)]*\.format\(`,
		category:         violations.CategorySecurity, severity: violations.SeverityHigh,
		standardMappings: []string{"CWE-89", "OWASP-A03:2021"},
		message:          "Potential SQL injection vulnerability detected",
		explanation:      "SQL queries built with string formatting are vulnerable to SQL injection attacks. Use parameterized queries or ORM methods instead.",
		copilotNote:      copilotSQLNote,
		fixSuggestion:    "Use parameterized queries instead of formatting user input into the query string.",
	},
}

var unsafeRuleDefs = []ruleDef{
	{
		id: "SEC201", name: "Use of eval()",
		pattern:          `eval\s*\(`,
		category:         violations.CategorySecurity, severity: violations.SeverityCritical,
		standardMappings: []string{"CWE-95", "OWASP-A03:2021"},
		message:          "Unsafe operation detected: Use of eval()",
		explanation:      "The use of eval() can lead to code injection vulnerabilities. Only use when absolutely necessary and with proper input validation.",
		copilotNote:      copilotUnsafeNote,
		fixSuggestion:    "Use safer alternatives or implement strict input validation and sandboxing",
	},
	{
		id: "SEC202", name: "Use of exec()",
		pattern:          `exec\s*\(`,
		category:         violations.CategorySecurity, severity: violations.SeverityCritical,
		standardMappings: []string{"CWE-95", "OWASP-A03:2021"},
		message:          "Unsafe operation detected: Use of exec()",
		explanation:      "The use of exec() can lead to code injection vulnerabilities. Only use when absolutely necessary and with proper input validation.",
		copilotNote:      copilotUnsafeNote,
		fixSuggestion:    "Use safer alternatives or implement strict input validation and sandboxing",
	},
	{
		id: "SEC203", name: "Unsafe Shell Execution",
		pattern:          `(?i)subprocess\.(call|run|Popen)\s*\([^)]*shell\s*=\s*True`,
		category:         violations.CategorySecurity, severity: violations.SeverityHigh,
		standardMappings: []string{"CWE-78", "OWASP-A03:2021"},
		message:          "Unsafe operation detected: Unsafe Shell Execution",
		explanation:      "Invoking a shell with untrusted input can lead to command injection. Only use when absolutely necessary and with proper input validation.",
		copilotNote:      copilotUnsafeNote,
		fixSuggestion:    "Use safer alternatives or implement strict input validation and sandboxing",
	},
	{
		id: "SEC204", name: "Unsafe Deserialization",
		pattern:          `(?i)pickle\.(loads?|dumps?)\s*\(`,
		category:         violations.CategorySecurity, severity: violations.SeverityHigh,
		standardMappings: []string{"CWE-502", "OWASP-A08:2021"},
		message:          "Unsafe operation detected: Unsafe Deserialization",
		explanation:      "Deserializing untrusted data with pickle can execute arbitrary code. Only use when absolutely necessary and with proper input validation.",
		copilotNote:      copilotUnsafeNote,
		fixSuggestion:    "Use safer alternatives or implement strict input validation and sandboxing",
	},
	{
		id: "SEC205", name: "Path Traversal Risk",
		pattern:          `(?i)open\s*\([^)]*\.\./`,
		category:         violations.CategorySecurity, severity: violations.SeverityHigh,
		standardMappings: []string{"CWE-22", "OWASP-A01:2021"},
		message:          "Unsafe operation detected: Path Traversal Risk",
		explanation:      "Opening a path built from relative traversal segments can escape the intended directory. Only use when absolutely necessary and with proper input validation.",
		copilotNote:      copilotUnsafeNote,
		fixSuggestion:    "Use safer alternatives or implement strict input validation and sandboxing",
	},
}

func toRule(d ruleDef) rules.Rule {
	return rules.Rule{
		ID:               d.id,
		Name:             d.name,
		Category:         d.category,
		Severity:         d.severity,
		MatcherType:      "regex",
		Pattern:          d.pattern,
		StandardMappings: d.standardMappings,
		Metadata: map[string]string{
			"message":        d.message,
			"explanation":    d.explanation,
			"copilot_note":   d.copilotNote,
			"fix_suggestion": d.fixSuggestion,
		},
	}
}

// builtinRuleSet returns the fixed set of SEC001-009/SEC101-103/SEC201-205
// rules plus the supplemental generic high-entropy secret rule (SEC009
// remains reserved for database credentials, so the entropy rule uses its
// own identifier, SECGEN001, and is additive — it never replaces a required
// rule ID).
func builtinRuleSet() *rules.RuleSet {
	rs := rules.NewRuleSet()
	for _, d := range secretRuleDefs {
		rs.Add(toRule(d))
	}
	for _, d := range sqlInjectionRuleDefs {
		rs.Add(toRule(d))
	}
	for _, d := range unsafeRuleDefs {
		rs.Add(toRule(d))
	}
	rs.Add(rules.Rule{
		ID:          "SECGEN001",
		Name:        "Generic High-Entropy Secret",
		Category:    violations.CategorySecurity,
		Severity:    violations.SeverityMedium,
		MatcherType: "entropy",
		Metadata: map[string]string{
			"message":        "Generic high-entropy secret detected",
			"explanation":    "This value has unusually high randomness for its context and may be an unrecognized hardcoded credential.",
			"copilot_note":   copilotSecretNote,
			"fix_suggestion": "Confirm whether this value is a secret; if so, move it to environment variables or a secrets manager.",
			"entropy_threshold": "4.5",
		},
	})
	return rs
}
