package http

import "strings"

// normalizeRepository reduces raw (an "owner/repo" string or a GitHub URL in
// any of its common forms) to the canonical "owner/repo" form the policy
// store and scan orchestrator key on.
func normalizeRepository(raw string) string {
	r := strings.TrimSpace(raw)
	r = strings.TrimSuffix(r, "/")
	r = strings.TrimSuffix(r, ".git")

	if idx := strings.Index(r, "://"); idx != -1 {
		r = r[idx+3:]
	}
	r = strings.TrimPrefix(r, "github.com/")
	r = strings.TrimPrefix(r, "www.github.com/")

	parts := strings.Split(r, "/")
	if len(parts) >= 2 {
		return parts[len(parts)-2] + "/" + parts[len(parts)-1]
	}
	return r
}
