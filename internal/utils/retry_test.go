package utils

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryConfig_SucceedsAfterFailure(t *testing.T) {
	calls := 0
	cfg := RetryConfig{MaxAttempts: 2, BaseDelay: time.Millisecond, Log: zerolog.Nop()}

	err := cfg.Do(context.Background(), "flaky", func(ctx context.Context) error {
		calls++
		if calls == 1 {
			return errors.New("boom")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestRetryConfig_ExhaustsAttempts(t *testing.T) {
	errDown := errors.New("down")
	calls := 0
	cfg := RetryConfig{MaxAttempts: 2, BaseDelay: time.Millisecond, Log: zerolog.Nop()}

	err := cfg.Do(context.Background(), "narrate", func(ctx context.Context) error {
		calls++
		return errDown
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, errDown)
	assert.Contains(t, err.Error(), "narrate failed after 2 attempts")
	assert.Equal(t, 2, calls)
}

func TestRetryConfig_AttemptTimeout(t *testing.T) {
	cfg := RetryConfig{MaxAttempts: 2, BaseDelay: time.Millisecond, AttemptTimeout: 10 * time.Millisecond, Log: zerolog.Nop()}

	start := time.Now()
	err := cfg.Do(context.Background(), "slow", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestRetryConfig_ParentCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	calls := 0
	cfg := RetryConfig{MaxAttempts: 3, BaseDelay: time.Second, Log: zerolog.Nop()}

	err := cfg.Do(ctx, "cancelled", func(ctx context.Context) error {
		calls++
		return ctx.Err()
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetryConfig_ZeroAttemptsRunsOnce(t *testing.T) {
	calls := 0
	err := RetryConfig{Log: zerolog.Nop()}.Do(context.Background(), "once", func(ctx context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}
