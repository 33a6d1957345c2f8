package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig() Config {
	return Config{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
	}
}

func TestDo(t *testing.T) {
	ctx := context.Background()

	t.Run("succeeds first attempt", func(t *testing.T) {
		calls := 0
		err := Do(ctx, fastConfig(), func() error {
			calls++
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries until success", func(t *testing.T) {
		calls := 0
		err := Do(ctx, fastConfig(), func() error {
			calls++
			if calls < 3 {
				return errors.New("transient")
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("returns last error after exhausting attempts", func(t *testing.T) {
		calls := 0
		err := Do(ctx, fastConfig(), func() error {
			calls++
			return fmt.Errorf("attempt %d", calls)
		})
		require.Error(t, err)
		assert.Equal(t, 3, calls)
		assert.EqualError(t, err, "attempt 3")
	})

	t.Run("non-retryable error stops immediately", func(t *testing.T) {
		cfg := fastConfig()
		cfg.RetryablePatterns = []string{"connection refused"}

		calls := 0
		err := Do(ctx, cfg, func() error {
			calls++
			return errors.New("permission denied")
		})
		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("cancelled context aborts", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		err := Do(cancelled, fastConfig(), func() error {
			return errors.New("transient")
		})
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("invalid MaxAttempts rejected", func(t *testing.T) {
		err := Do(ctx, Config{MaxAttempts: 0}, func() error { return nil })
		assert.Error(t, err)
	})
}

func TestDoWithResult(t *testing.T) {
	ctx := context.Background()

	t.Run("returns result on success", func(t *testing.T) {
		got, err := DoWithResult(ctx, fastConfig(), func() (int, error) {
			return 42, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 42, got)
	})

	t.Run("zero value on failure", func(t *testing.T) {
		got, err := DoWithResult(ctx, fastConfig(), func() (string, error) {
			return "partial", errors.New("boom")
		})
		require.Error(t, err)
		assert.Empty(t, got)
	})
}

func TestRetryable(t *testing.T) {
	cfg := PostgresConfig()

	t.Run("matches known transient errors", func(t *testing.T) {
		assert.True(t, Retryable(errors.New("dial tcp 127.0.0.1:5432: connection refused"), cfg))
		assert.True(t, Retryable(errors.New("read: i/o timeout"), cfg))
	})

	t.Run("does not match permanent errors", func(t *testing.T) {
		assert.False(t, Retryable(errors.New("password authentication failed"), cfg))
	})

	t.Run("nil error is not retryable", func(t *testing.T) {
		assert.False(t, Retryable(nil, cfg))
	})

	t.Run("empty pattern list retries everything", func(t *testing.T) {
		assert.True(t, Retryable(errors.New("anything"), DefaultConfig()))
	})
}
