// Package retry provides bounded retry with exponential backoff.
package retry

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"
)

// Config holds retry strategy configuration.
type Config struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int
	// InitialDelay is the delay before the first retry.
	InitialDelay time.Duration
	// MaxDelay caps the delay between attempts.
	MaxDelay time.Duration
	// Multiplier is the exponential backoff multiplier.
	Multiplier float64
	// RetryablePatterns lists substrings of error messages worth retrying.
	// Empty means every error is retryable.
	RetryablePatterns []string
}

// DefaultConfig returns the default retry configuration.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:  5,
		InitialDelay: 1 * time.Second,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
}

// PostgresConfig returns a configuration tuned for PostgreSQL connection
// establishment: only transient network/startup errors trigger a retry.
func PostgresConfig() Config {
	cfg := DefaultConfig()
	cfg.RetryablePatterns = []string{
		"connection refused",
		"connection reset",
		"connection timed out",
		"i/o timeout",
		"dial tcp",
		"network is unreachable",
		"server closed the connection",
		"too many connections",
		"the database system is starting up",
	}
	return cfg
}

// Do executes fn with retry, honoring context cancellation between attempts.
func Do(ctx context.Context, cfg Config, fn func() error) error {
	_, err := DoWithResult(ctx, cfg, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

// DoWithResult executes fn with retry and returns its result.
func DoWithResult[T any](ctx context.Context, cfg Config, fn func() (T, error)) (T, error) {
	var zero T
	if cfg.MaxAttempts <= 0 {
		return zero, fmt.Errorf("MaxAttempts must be greater than 0")
	}

	var lastErr error
	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		if ctx.Err() != nil {
			return zero, ctx.Err()
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !Retryable(err, cfg) {
			return zero, err
		}
		if attempt == cfg.MaxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(jitter(delay(attempt, cfg))):
		}
	}

	return zero, lastErr
}

// Retryable reports whether err matches the configured retryable patterns.
func Retryable(err error, cfg Config) bool {
	if err == nil {
		return false
	}
	if len(cfg.RetryablePatterns) == 0 {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, p := range cfg.RetryablePatterns {
		if strings.Contains(msg, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

func delay(attempt int, cfg Config) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	d := float64(cfg.InitialDelay) * math.Pow(cfg.Multiplier, float64(attempt))
	if d > float64(cfg.MaxDelay) {
		d = float64(cfg.MaxDelay)
	}
	return time.Duration(d)
}

// jitter spreads delays by ±10% to avoid synchronized reconnect storms.
func jitter(d time.Duration) time.Duration {
	//nolint:gosec // math/rand is sufficient for jitter, no security requirement
	return d + time.Duration(float64(d)*0.1*(rand.Float64()*2-1))
}
