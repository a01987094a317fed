package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig(attempts int) Config {
	return Config{MaxAttempts: attempts, InitialDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond, Multiplier: 2}
}

func TestDo(t *testing.T) {
	ctx := context.Background()

	t.Run("succeeds first time", func(t *testing.T) {
		calls := 0
		err := Do(ctx, fastConfig(3), func() error {
			calls++
			return nil
		})

		assert.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("recovers after transient failures", func(t *testing.T) {
		calls := 0
		err := Do(ctx, fastConfig(3), func() error {
			calls++
			if calls < 3 {
				return errors.New("temporary")
			}
			return nil
		})

		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("returns last error when attempts run out", func(t *testing.T) {
		calls := 0
		err := Do(ctx, fastConfig(2), func() error {
			calls++
			return errors.New("still down")
		})

		assert.EqualError(t, err, "still down")
		assert.Equal(t, 2, calls)
	})

	t.Run("stops on permanent error", func(t *testing.T) {
		cfg := fastConfig(5)
		cfg.Patterns = []string{"connection refused"}
		calls := 0
		err := Do(ctx, cfg, func() error {
			calls++
			return errors.New("password authentication failed")
		})

		assert.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("predicate wins over patterns", func(t *testing.T) {
		cfg := fastConfig(4)
		cfg.Patterns = []string{"anything"}
		cfg.Retryable = func(error) bool { return false }
		calls := 0
		_ = Do(ctx, cfg, func() error {
			calls++
			return errors.New("anything")
		})

		assert.Equal(t, 1, calls)
	})

	t.Run("zero attempts", func(t *testing.T) {
		err := Do(ctx, Config{}, func() error { return nil })

		assert.ErrorIs(t, err, ErrNoAttempts)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		calls := 0

		err := Do(cctx, fastConfig(3), func() error {
			calls++
			return nil
		})

		assert.ErrorIs(t, err, context.Canceled)
		assert.Zero(t, calls)
	})

	t.Run("cancelled while waiting", func(t *testing.T) {
		cctx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
		defer cancel()
		cfg := Config{MaxAttempts: 3, InitialDelay: time.Second, MaxDelay: time.Second, Multiplier: 1}

		start := time.Now()
		err := Do(cctx, cfg, func() error { return errors.New("temporary") })

		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Less(t, time.Since(start), 500*time.Millisecond)
	})
}

func TestDoWithResult(t *testing.T) {
	calls := 0
	v, err := DoWithResult(context.Background(), fastConfig(3), func() (string, error) {
		calls++
		if calls == 1 {
			return "", errors.New("dial tcp: connection refused")
		}
		return "connected", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "connected", v)
}

func TestIsRetryable(t *testing.T) {
	pg := PostgresConfig()

	tests := []struct {
		name string
		err  error
		cfg  Config
		want bool
	}{
		{"nil", nil, pg, false},
		{"context cancel", context.Canceled, DefaultConfig(), false},
		{"wrapped deadline", errors.Join(errors.New("query"), context.DeadlineExceeded), DefaultConfig(), false},
		{"no patterns retries everything", errors.New("boom"), DefaultConfig(), true},
		{"postgres starting", errors.New("FATAL: the database system is starting up"), pg, true},
		{"postgres refused", errors.New("dial tcp 127.0.0.1:5432: Connection Refused"), pg, true},
		{"postgres auth", errors.New("password authentication failed"), pg, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err, tt.cfg))
		})
	}
}

func TestBackoff(t *testing.T) {
	cfg := Config{InitialDelay: 100 * time.Millisecond, MaxDelay: time.Second, Multiplier: 2}

	assert.Equal(t, 100*time.Millisecond, backoff(-1, cfg))
	assert.Equal(t, 100*time.Millisecond, backoff(0, cfg))
	assert.Equal(t, 400*time.Millisecond, backoff(2, cfg))
	assert.Equal(t, time.Second, backoff(10, cfg))
}

func TestWithJitter(t *testing.T) {
	for i := 0; i < 100; i++ {
		d := withJitter(time.Second)
		assert.GreaterOrEqual(t, d, 900*time.Millisecond)
		assert.LessOrEqual(t, d, 1100*time.Millisecond)
	}
	assert.Equal(t, time.Duration(0), withJitter(0))
}

func TestHTTPConfig(t *testing.T) {
	cfg := HTTPConfig(func(error) bool { return true })

	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.NotNil(t, cfg.Retryable)
}
