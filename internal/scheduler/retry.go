package scheduler

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"github.com/abhisek/drill/internal/session"
)

// RetryClient is a decorator that retries unavailable-scheduler failures
// with exponential backoff and jitter. Rejections and invalid responses are
// returned immediately.
type RetryClient struct {
	inner  Client
	config RetryConfig
}

// WithRetry wraps a Client with retry logic. A config allowing a single
// attempt returns c unchanged.
func WithRetry(c Client, cfg RetryConfig) Client {
	if cfg.MaxAttempts <= 1 {
		return c
	}
	return &RetryClient{inner: c, config: cfg}
}

func (r *RetryClient) Next(ctx context.Context, req session.Request) (*session.Item, error) {
	var lastErr error

	for attempt := range r.config.MaxAttempts {
		item, err := r.inner.Next(ctx, req)
		if err == nil {
			return item, nil
		}
		lastErr = err

		if !shouldRetry(err) {
			return nil, err
		}

		// No sleep after the final attempt.
		if attempt == r.config.MaxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.backoff(attempt)):
		}
	}

	return nil, lastErr
}

// shouldRetry reports whether err is worth another attempt.
func shouldRetry(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var unavail *ErrUnavailable
	return errors.As(err, &unavail)
}

// backoff computes the wait duration for the given attempt.
func (r *RetryClient) backoff(attempt int) time.Duration {
	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	if wait > float64(r.config.MaxWait) {
		wait = float64(r.config.MaxWait)
	}

	// Add ±20% jitter.
	jitter := wait * 0.2 * (2*rand.Float64() - 1)
	wait += jitter

	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}
