package config

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// withEnv sets env vars for the duration of the test.
func withEnv(t *testing.T, envVars map[string]string) {
	t.Helper()
	for key, value := range envVars {
		original, had := os.LookupEnv(key)
		if value == "" {
			os.Unsetenv(key)
		} else {
			os.Setenv(key, value)
		}
		t.Cleanup(func() {
			if had {
				os.Setenv(key, original)
			} else {
				os.Unsetenv(key)
			}
		})
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		withEnv(t, map[string]string{
			"DB_HOST": "", "DB_USER": "", "DB_PASSWORD": "", "DB_NAME": "",
			"DB_PORT": "", "DB_SSLMODE": "", "DB_TIMEZONE": "",
		})

		assert.Equal(t, Config{
			Host:     "localhost",
			User:     "postgres",
			Password: "postgres",
			DBName:   "pitmstr",
			Port:     "5432",
			SSLMode:  "disable",
			TimeZone: "UTC",
		}, LoadConfigFromEnv())
	})

	t.Run("partial override", func(t *testing.T) {
		withEnv(t, map[string]string{
			"DB_HOST": "db.internal",
			"DB_NAME": "pitmstr_mirror",
		})

		cfg := LoadConfigFromEnv()
		assert.Equal(t, "db.internal", cfg.Host)
		assert.Equal(t, "pitmstr_mirror", cfg.DBName)
	})
}

func TestBuildDSN(t *testing.T) {
	cfg := Config{
		Host:     "localhost",
		User:     "pit",
		Password: "smoke",
		DBName:   "pitmstr",
		Port:     "5432",
		SSLMode:  "disable",
		TimeZone: "UTC",
	}

	assert.Equal(t,
		"host=localhost user=pit password=smoke dbname=pitmstr port=5432 sslmode=disable TimeZone=UTC",
		BuildDSN(cfg))
	assert.NotContains(t, cfg.String(), "smoke")
	assert.Contains(t, cfg.String(), "password=***")
}

func TestSanitizeError(t *testing.T) {
	cfg := Config{Host: "localhost", User: "pit", Password: "hunter2", DBName: "pitmstr", Port: "5432"}

	t.Run("nil error", func(t *testing.T) {
		assert.NoError(t, SanitizeError(nil, cfg))
	})

	t.Run("password removed", func(t *testing.T) {
		err := SanitizeError(errors.New("cannot connect with "+BuildDSN(cfg)+" (hunter2)"), cfg)
		assert.NotContains(t, err.Error(), "hunter2")
		assert.Contains(t, err.Error(), "failed to connect to database")
	})
}

func TestLoadRetryConfigFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		withEnv(t, map[string]string{
			"DB_RETRY_MAX_ATTEMPTS": "", "DB_RETRY_INITIAL_DELAY": "",
			"DB_RETRY_MAX_DELAY": "", "DB_RETRY_MULTIPLIER": "",
		})

		cfg := LoadRetryConfigFromEnv()
		assert.Equal(t, 5, cfg.MaxAttempts)
		assert.Equal(t, time.Second, cfg.InitialDelay)
		assert.Equal(t, 2.0, cfg.Multiplier)
		assert.NotEmpty(t, cfg.Patterns)
	})

	t.Run("overrides", func(t *testing.T) {
		withEnv(t, map[string]string{
			"DB_RETRY_MAX_ATTEMPTS":  "2",
			"DB_RETRY_INITIAL_DELAY": "50ms",
			"DB_RETRY_MAX_DELAY":     "1s",
			"DB_RETRY_MULTIPLIER":    "1.5",
		})

		cfg := LoadRetryConfigFromEnv()
		assert.Equal(t, 2, cfg.MaxAttempts)
		assert.Equal(t, 50*time.Millisecond, cfg.InitialDelay)
		assert.Equal(t, time.Second, cfg.MaxDelay)
		assert.Equal(t, 1.5, cfg.Multiplier)
	})

	t.Run("invalid multiplier keeps default", func(t *testing.T) {
		withEnv(t, map[string]string{"DB_RETRY_MULTIPLIER": "fast"})

		assert.Equal(t, 2.0, LoadRetryConfigFromEnv().Multiplier)
	})
}
