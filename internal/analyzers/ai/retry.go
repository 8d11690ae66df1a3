package ai

import (
	"context"
	"math/rand"
	"time"
)

// retryConfig configures the exponential backoff applied between AI provider
// call attempts.
type retryConfig struct {
	maxAttempts   int
	initialBackoff time.Duration
	maxBackoff     time.Duration
	backoffFactor  float64
	jitterFactor   float64
}

// defaultRetryConfig caps retries at 3 attempts and a 300s backoff ceiling,
// matching the adapter's quota contract: prefer a provider-supplied
// retry-after hint, else back off 2^attempt seconds up to the ceiling.
func defaultRetryConfig() retryConfig {
	return retryConfig{
		maxAttempts:    3,
		initialBackoff: 1 * time.Second,
		maxBackoff:     300 * time.Second,
		backoffFactor:  2.0,
		jitterFactor:   0.2,
	}
}

// retryableFunc performs one attempt and returns nil on success. A
// *RetryableError return value drives backoff selection; any other non-nil
// error is treated as terminal (not retried).
type retryableFunc func(ctx context.Context, attempt int) (*Response, error)

// withRetry executes fn with exponential backoff, honoring a
// provider-supplied retry-after hint when present.
func withRetry(ctx context.Context, cfg retryConfig, fn retryableFunc) (*Response, error) {
	backoff := cfg.initialBackoff

	var lastErr error
	for attempt := 1; attempt <= cfg.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		resp, err := fn(ctx, attempt)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		retryable, ok := err.(*RetryableError)
		if !ok {
			return nil, err
		}

		if attempt == cfg.maxAttempts {
			break
		}

		wait := backoffFor(retryable, backoff, cfg)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}

		backoff = nextBackoff(backoff, cfg.backoffFactor, cfg.maxBackoff)
	}

	return nil, lastErr
}

// backoffFor prefers the provider's retry-after hint (capped at 300s); when
// absent it falls back to 2^attempt seconds via the jittered exponential
// schedule.
func backoffFor(err *RetryableError, fallback time.Duration, cfg retryConfig) time.Duration {
	if err.RetryAfter != nil {
		secs := *err.RetryAfter
		if secs > 300 {
			secs = 300
		}
		if secs < 0 {
			secs = 0
		}
		return time.Duration(secs) * time.Second
	}
	return jitter(fallback, cfg.jitterFactor)
}

func jitter(base time.Duration, jitterFactor float64) time.Duration {
	if jitterFactor <= 0 {
		return base
	}
	j := (rand.Float64()*2 - 1) * jitterFactor
	return time.Duration(float64(base) * (1.0 + j))
}

func nextBackoff(current time.Duration, factor float64, max time.Duration) time.Duration {
	next := time.Duration(float64(current) * factor)
	if next > max {
		return max
	}
	return next
}
