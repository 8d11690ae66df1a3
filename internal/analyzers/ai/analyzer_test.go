package ai

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeProvider struct {
	responses []*Response
	errs      []error
	calls     int
}

func (f *fakeProvider) Complete(ctx context.Context, messages []Message) (*Response, error) {
	i := f.calls
	f.calls++
	if i < len(f.errs) && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	if i < len(f.responses) {
		return f.responses[i], nil
	}
	return &Response{Content: "[]"}, nil
}

func TestAnalyzer_EnabledWithNoProvider(t *testing.T) {
	a := New(nil)
	if a.Enabled() {
		t.Error("Enabled() = true with nil provider, want false")
	}
}

func TestAnalyzer_AnalyzeFileParsesViolations(t *testing.T) {
	p := &fakeProvider{responses: []*Response{{Content: `[{"rule_id": "AI001", "message": "needs validation", "severity": "high"}]`}}}
	a := New(p)

	vs := a.AnalyzeFile(context.Background(), "main.go", "package main", false)
	if len(vs) != 1 {
		t.Fatalf("len(vs) = %d, want 1", len(vs))
	}
	if vs[0].RuleID != "AI001" {
		t.Errorf("RuleID = %q, want AI001", vs[0].RuleID)
	}
}

func TestAnalyzer_QuotaErrorTripsCooldown(t *testing.T) {
	retryAfter := 0
	a := &Analyzer{
		provider: &fakeProvider{errs: []error{
			&RetryableError{Err: errors.New("rate limited"), RetryAfter: &retryAfter},
			&RetryableError{Err: errors.New("rate limited"), RetryAfter: &retryAfter},
			&RetryableError{Err: errors.New("rate limited"), RetryAfter: &retryAfter},
		}},
		retry: retryConfig{maxAttempts: 3, initialBackoff: time.Millisecond, maxBackoff: time.Millisecond, backoffFactor: 1, jitterFactor: 0},
	}

	if !a.Enabled() {
		t.Fatal("Enabled() = false before any quota error")
	}

	vs := a.AnalyzeFile(context.Background(), "main.go", "package main", false)
	if vs != nil {
		t.Errorf("vs = %+v, want nil after provider failure", vs)
	}

	if a.Enabled() {
		t.Error("Enabled() = true immediately after a quota error, want false (cooldown active)")
	}
}

func TestAnalyzer_CooldownClearsAfterQuotaCooldownElapses(t *testing.T) {
	a := &Analyzer{provider: &fakeProvider{}}
	a.quotaExceeded = true
	a.quotaSetAt = time.Now().Add(-(quotaCooldown + time.Second))

	if !a.Enabled() {
		t.Error("Enabled() = false after cooldown elapsed, want true")
	}
	if a.quotaExceeded {
		t.Error("quotaExceeded still true after cooldown elapsed")
	}
}

func TestAnalyzer_NonQuotaErrorDoesNotTripCooldown(t *testing.T) {
	a := &Analyzer{
		provider: &fakeProvider{errs: []error{errors.New("boom"), errors.New("boom"), errors.New("boom")}},
		retry:    retryConfig{maxAttempts: 3, initialBackoff: time.Millisecond, maxBackoff: time.Millisecond, backoffFactor: 1, jitterFactor: 0},
	}

	vs := a.AnalyzeFile(context.Background(), "main.go", "package main", false)
	if vs != nil {
		t.Errorf("vs = %+v, want nil", vs)
	}
	if !a.Enabled() {
		t.Error("Enabled() = false after a non-quota error, want true")
	}
}

func TestAnalyzer_SuggestFixCleansResponse(t *testing.T) {
	p := &fakeProvider{responses: []*Response{{Content: "Here's the fix: add a nil check before dereferencing the pointer"}}}
	a := New(p)

	got := a.SuggestFix(context.Background(), "Nil Dereference", "pointer may be nil", "if x != nil {}")
	if got == "" {
		t.Fatal("SuggestFix() = \"\", want cleaned suggestion")
	}
	want := "add a nil check before dereferencing the pointer"
	if got != want {
		t.Errorf("SuggestFix() = %q, want %q", got, want)
	}
}

func TestAnalyzer_SuggestFixEmptyWhenDisabled(t *testing.T) {
	a := New(nil)
	got := a.SuggestFix(context.Background(), "rule", "message", "context")
	if got != "" {
		t.Errorf("SuggestFix() = %q, want empty when disabled", got)
	}
}
