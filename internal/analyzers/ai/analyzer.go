package ai

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/nox-hq/codeguard/internal/violations"
)

// quotaCooldown is how long the analyzer refuses new calls after observing a
// quota-exhaustion error, before trying the provider again.
const quotaCooldown = 3600 * time.Second

// Analyzer wraps a Provider with the quota/retry state machine required by
// the AI analysis adapter: once the provider reports quota exhaustion, the
// analyzer stops calling it until quotaCooldown elapses, returning no
// violations (graceful degradation) in the meantime rather than failing the
// whole scan.
type Analyzer struct {
	provider Provider
	retry    retryConfig

	mu            sync.Mutex
	quotaExceeded bool
	quotaSetAt    time.Time
}

// New returns an Analyzer backed by provider. A nil provider disables AI
// analysis entirely; AnalyzeFile then always returns no violations.
func New(provider Provider) *Analyzer {
	return &Analyzer{provider: provider, retry: defaultRetryConfig()}
}

// Enabled reports whether a provider is configured and quota is not
// currently exhausted.
func (a *Analyzer) Enabled() bool {
	if a.provider == nil {
		return false
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return !a.inCooldownLocked()
}

func (a *Analyzer) inCooldownLocked() bool {
	if !a.quotaExceeded {
		return false
	}
	if time.Since(a.quotaSetAt) > quotaCooldown {
		a.quotaExceeded = false
		return false
	}
	return true
}

// AnalyzeFile asks the provider to review content and parses its response
// into violations. On any error — including quota exhaustion after
// exhausting retries — it logs a warning and returns no violations rather
// than failing the scan.
func (a *Analyzer) AnalyzeFile(ctx context.Context, filePath, content string, isCopilot bool) []violations.Violation {
	if !a.Enabled() {
		return nil
	}

	messages := []Message{
		{Role: RoleSystem, Content: systemPrompt},
		{Role: RoleUser, Content: buildPrompt(filePath, content, isCopilot)},
	}

	resp, err := withRetry(ctx, a.retry, func(ctx context.Context, attempt int) (*Response, error) {
		r, err := a.provider.Complete(ctx, messages)
		if err != nil {
			if re, ok := err.(*RetryableError); ok {
				return nil, re
			}
			return nil, &RetryableError{Err: err}
		}
		return r, nil
	})
	if err != nil {
		if isQuotaError(err) {
			a.mu.Lock()
			a.quotaExceeded = true
			a.quotaSetAt = time.Now()
			a.mu.Unlock()
		}
		slog.Warn("ai analysis failed", "file", filePath, "error", err)
		return nil
	}

	return parseResponse(resp.Content, filePath, isCopilot)
}

// SuggestFix asks the provider for a targeted fix for a single already-known
// violation, given the surrounding code context. It returns "" (not an
// error) whenever AI analysis is disabled or the call ultimately fails,
// since a missing suggestion simply means the violation keeps whatever fix
// text it already had.
func (a *Analyzer) SuggestFix(ctx context.Context, ruleName, message, codeContext string) string {
	if !a.Enabled() {
		return ""
	}

	messages := []Message{
		{Role: RoleSystem, Content: "You are an expert software engineer. Given a code issue and its surrounding context, respond with ONLY a concise, actionable fix suggestion (1-3 sentences). Do not repeat the code."},
		{Role: RoleUser, Content: buildFixPrompt(ruleName, message, codeContext)},
	}

	resp, err := withRetry(ctx, a.retry, func(ctx context.Context, attempt int) (*Response, error) {
		r, err := a.provider.Complete(ctx, messages)
		if err != nil {
			if re, ok := err.(*RetryableError); ok {
				return nil, re
			}
			return nil, &RetryableError{Err: err}
		}
		return r, nil
	})
	if err != nil {
		if isQuotaError(err) {
			a.mu.Lock()
			a.quotaExceeded = true
			a.quotaSetAt = time.Now()
			a.mu.Unlock()
		}
		slog.Warn("ai fix suggestion failed", "rule", ruleName, "error", err)
		return ""
	}

	return cleanFixSuggestion(resp.Content)
}

// isQuotaError reports whether err (after retry exhaustion) looks like a
// provider quota/rate-limit failure rather than a transient or
// configuration error. Providers that expose a typed quota error should be
// matched here; absent that, retry exhaustion itself is treated as a signal
// worth a cooldown, since a provider failing 3 attempts in a row is
// indistinguishable from exhausted quota without provider-specific typing.
func isQuotaError(err error) bool {
	re, ok := err.(*RetryableError)
	return ok && re.RetryAfter != nil
}
