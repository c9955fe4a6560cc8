package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// RetryConfig holds the parameters for the retry strategy
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	// AttemptTimeout bounds each attempt; zero means no per-attempt deadline
	AttemptTimeout time.Duration
	Log            zerolog.Logger
}

// Do executes fn with exponential back-off between attempts.
// Each attempt receives its own context derived from ctx. Cancellation of ctx
// stops retrying immediately.
func (r RetryConfig) Do(ctx context.Context, operation string, fn func(ctx context.Context) error) error {
	attempts := r.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	delay := r.BaseDelay

	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = r.attempt(ctx, fn)
		if lastErr == nil {
			return nil
		}
		if ctx.Err() != nil {
			return fmt.Errorf("%s cancelled: %w", operation, lastErr)
		}

		if attempt < attempts {
			r.Log.Warn().
				Err(lastErr).
				Str("operation", operation).
				Int("attempt", attempt).
				Int("max_attempts", attempts).
				Dur("delay", delay).
				Msg("Operation failed, retrying")

			select {
			case <-ctx.Done():
				return fmt.Errorf("%s cancelled: %w", operation, ctx.Err())
			case <-time.After(delay):
			}
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operation, attempts, lastErr)
}

func (r RetryConfig) attempt(ctx context.Context, fn func(ctx context.Context) error) error {
	if r.AttemptTimeout <= 0 {
		return fn(ctx)
	}
	attemptCtx, cancel := context.WithTimeout(ctx, r.AttemptTimeout)
	defer cancel()
	return fn(attemptCtx)
}
