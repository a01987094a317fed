// Package retry runs operations with capped exponential backoff.
package retry

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"strings"
	"time"
)

// Config holds retry strategy configuration.
type Config struct {
	// MaxAttempts counts the initial attempt.
	MaxAttempts int
	// InitialDelay is the wait before the first retry.
	InitialDelay time.Duration
	// MaxDelay caps a single wait.
	MaxDelay time.Duration
	// Multiplier grows the wait after each retry.
	Multiplier float64
	// Retryable decides whether an error is worth another attempt.
	// When nil, Patterns are matched against the error text instead.
	Retryable func(error) bool
	// Patterns are case-insensitive substrings of retryable error messages.
	// Both Retryable and Patterns empty means every error is retried.
	Patterns []string
}

// ErrNoAttempts is returned for a config that allows no attempts.
var ErrNoAttempts = errors.New("retry: MaxAttempts must be greater than 0")

// DefaultConfig returns a conservative backoff for startup connections.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:  5,
		InitialDelay: time.Second,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
}

// PostgresConfig retries the transient network failures seen while postgres starts.
func PostgresConfig() Config {
	cfg := DefaultConfig()
	cfg.Patterns = []string{
		"connection refused",
		"connection reset",
		"connection timed out",
		"i/o timeout",
		"server closed the connection",
		"too many connections",
		"the database system is starting up",
		"network is unreachable",
		"no connection could be made",
		"dial tcp",
	}
	return cfg
}

// HTTPConfig is a short backoff for rate-limited API calls made while serving a request.
func HTTPConfig(retryable func(error) bool) Config {
	return Config{
		MaxAttempts:  3,
		InitialDelay: 250 * time.Millisecond,
		MaxDelay:     2 * time.Second,
		Multiplier:   2.0,
		Retryable:    retryable,
	}
}

// Do runs fn until it succeeds, fails permanently, or attempts run out.
func Do(ctx context.Context, cfg Config, fn func() error) error {
	_, err := DoWithResult(ctx, cfg, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

// DoWithResult is Do for operations that return a value.
func DoWithResult[T any](ctx context.Context, cfg Config, fn func() (T, error)) (T, error) {
	var zero T
	if cfg.MaxAttempts <= 0 {
		return zero, ErrNoAttempts
	}

	var lastErr error
	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !IsRetryable(err, cfg) || attempt == cfg.MaxAttempts-1 {
			break
		}

		timer := time.NewTimer(withJitter(backoff(attempt, cfg)))
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
	}
	return zero, lastErr
}

// IsRetryable reports whether err should trigger another attempt under cfg.
func IsRetryable(err error, cfg Config) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if cfg.Retryable != nil {
		return cfg.Retryable(err)
	}
	if len(cfg.Patterns) == 0 {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, p := range cfg.Patterns {
		if strings.Contains(msg, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

// backoff is InitialDelay * Multiplier^attempt, capped at MaxDelay.
func backoff(attempt int, cfg Config) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	delay := float64(cfg.InitialDelay) * math.Pow(cfg.Multiplier, float64(attempt))
	if cfg.MaxDelay > 0 && delay > float64(cfg.MaxDelay) {
		delay = float64(cfg.MaxDelay)
	}
	return time.Duration(delay)
}

// withJitter spreads delay by ±10%.
func withJitter(delay time.Duration) time.Duration {
	//nolint:gosec // jitter needs no cryptographic randomness
	return delay + time.Duration(float64(delay)*0.1*(rand.Float64()*2-1))
}
