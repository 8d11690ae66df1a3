package ai

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestWithRetry_SucceedsWithoutRetry(t *testing.T) {
	calls := 0
	resp, err := withRetry(context.Background(), defaultRetryConfig(), func(ctx context.Context, attempt int) (*Response, error) {
		calls++
		return &Response{Content: "ok"}, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Content != "ok" {
		t.Errorf("resp.Content = %q, want ok", resp.Content)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestWithRetry_NonRetryableErrorStopsImmediately(t *testing.T) {
	calls := 0
	boom := errors.New("boom")
	_, err := withRetry(context.Background(), defaultRetryConfig(), func(ctx context.Context, attempt int) (*Response, error) {
		calls++
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want %v", err, boom)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (non-retryable error must not retry)", calls)
	}
}

func TestWithRetry_RetriesUntilMaxAttempts(t *testing.T) {
	cfg := retryConfig{maxAttempts: 3, initialBackoff: time.Millisecond, maxBackoff: 10 * time.Millisecond, backoffFactor: 2, jitterFactor: 0}

	calls := 0
	_, err := withRetry(context.Background(), cfg, func(ctx context.Context, attempt int) (*Response, error) {
		calls++
		return nil, &RetryableError{Err: errors.New("rate limited")}
	})
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if calls != cfg.maxAttempts {
		t.Errorf("calls = %d, want %d", calls, cfg.maxAttempts)
	}
}

func TestWithRetry_SucceedsAfterRetryableFailure(t *testing.T) {
	cfg := retryConfig{maxAttempts: 3, initialBackoff: time.Millisecond, maxBackoff: 10 * time.Millisecond, backoffFactor: 2, jitterFactor: 0}

	calls := 0
	resp, err := withRetry(context.Background(), cfg, func(ctx context.Context, attempt int) (*Response, error) {
		calls++
		if calls < 2 {
			return nil, &RetryableError{Err: errors.New("transient")}
		}
		return &Response{Content: "recovered"}, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Content != "recovered" {
		t.Errorf("resp.Content = %q, want recovered", resp.Content)
	}
}

func TestBackoffFor_HonorsProviderRetryAfter(t *testing.T) {
	secs := 5
	err := &RetryableError{Err: errors.New("rate limited"), RetryAfter: &secs}
	got := backoffFor(err, time.Minute, defaultRetryConfig())
	if got != 5*time.Second {
		t.Errorf("backoffFor() = %v, want 5s", got)
	}
}

func TestBackoffFor_CapsProviderRetryAfterAt300s(t *testing.T) {
	secs := 9000
	err := &RetryableError{Err: errors.New("rate limited"), RetryAfter: &secs}
	got := backoffFor(err, time.Minute, defaultRetryConfig())
	if got != 300*time.Second {
		t.Errorf("backoffFor() = %v, want 300s", got)
	}
}

func TestBackoffFor_FallsBackToJitteredScheduleWithoutRetryAfter(t *testing.T) {
	err := &RetryableError{Err: errors.New("transient")}
	got := backoffFor(err, time.Second, retryConfig{jitterFactor: 0})
	if got != time.Second {
		t.Errorf("backoffFor() = %v, want 1s with zero jitter", got)
	}
}

func TestNextBackoff_CapsAtMax(t *testing.T) {
	got := nextBackoff(200*time.Second, 2.0, 300*time.Second)
	if got != 300*time.Second {
		t.Errorf("nextBackoff() = %v, want capped at 300s", got)
	}
}
