package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnv(t *testing.T, vars map[string]string) {
	t.Helper()
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func validConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:         ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
		Logger: LoggerConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
		Data: DataConfig{
			Backend:     BackendSQLite,
			SQLitePath:  ":memory:",
			HTTPTimeout: 15 * time.Second,
		},
		Auth: AuthConfig{
			ClerkAPIURL: "https://api.clerk.com/v1",
		},
		Events:  EventsConfig{Timezone: "America/Chicago"},
		GinMode: "release",
	}
}

func TestLoadFromEnv_DefaultValues(t *testing.T) {
	setEnv(t, map[string]string{
		"SERVER_PORT":    "",
		"LOG_LEVEL":      "",
		"GIN_MODE":       "",
		"DATA_BACKEND":   "",
		"EVENT_TIMEZONE": "",
	})

	cfg := LoadFromEnv()
	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "release", cfg.GinMode)
	assert.Equal(t, BackendAirtable, cfg.Data.Backend)
	assert.Equal(t, "America/Chicago", cfg.Events.Timezone)
}

func TestLoadFromEnv_CustomValues(t *testing.T) {
	setEnv(t, map[string]string{
		"SERVER_PORT":      ":9090",
		"LOG_LEVEL":        "debug",
		"GIN_MODE":         "debug",
		"DATA_BACKEND":     "postgres",
		"EVENT_TIMEZONE":   "UTC",
		"AUTH_POLICY_PATH": "policy.yaml",
	})

	cfg := LoadFromEnv()
	assert.Equal(t, ":9090", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "debug", cfg.GinMode)
	assert.Equal(t, BackendPostgres, cfg.Data.Backend)
	assert.Equal(t, "UTC", cfg.Events.Timezone)
	assert.Equal(t, "policy.yaml", cfg.Auth.PolicyPath)
}

func TestConfig_Validate(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		assert.NoError(t, validConfig().Validate())
	})

	t.Run("invalid server config", func(t *testing.T) {
		cfg := validConfig()
		cfg.Server.ReadTimeout = 0
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "server config validation failed")
	})

	t.Run("invalid logger config", func(t *testing.T) {
		cfg := validConfig()
		cfg.Logger.Level = "invalid"
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "logger config validation failed")
	})

	t.Run("missing airtable credentials", func(t *testing.T) {
		cfg := validConfig()
		cfg.Data.Backend = BackendAirtable
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "data config validation failed")
		assert.Contains(t, err.Error(), "AIRTABLE_API_KEY")
	})

	t.Run("conflicting jwt keys", func(t *testing.T) {
		cfg := validConfig()
		cfg.Auth.JWTPublicKey = "pem"
		cfg.Auth.JWTSecret = "secret"
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "auth config validation failed")
	})

	t.Run("invalid timezone", func(t *testing.T) {
		cfg := validConfig()
		cfg.Events.Timezone = "Mars/Olympus"
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "events config validation failed")
	})

	t.Run("invalid gin mode", func(t *testing.T) {
		cfg := validConfig()
		cfg.GinMode = "invalid"
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid GIN_MODE")
	})

	t.Run("valid gin modes", func(t *testing.T) {
		for _, mode := range []string{"debug", "release", "test"} {
			cfg := validConfig()
			cfg.GinMode = mode
			assert.NoError(t, cfg.Validate(), "mode %s should be valid", mode)
		}
	})
}

func TestDataConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     DataConfig
		wantErr string
	}{
		{
			name: "airtable with credentials",
			cfg:  DataConfig{Backend: BackendAirtable, AirtableAPIKey: "key", AirtableBaseID: "app", HTTPTimeout: time.Second},
		},
		{
			name:    "airtable without base",
			cfg:     DataConfig{Backend: BackendAirtable, AirtableAPIKey: "key", HTTPTimeout: time.Second},
			wantErr: "AIRTABLE_BASE_ID",
		},
		{
			name: "postgres",
			cfg:  DataConfig{Backend: BackendPostgres, HTTPTimeout: time.Second},
		},
		{
			name:    "sqlite without path",
			cfg:     DataConfig{Backend: BackendSQLite, HTTPTimeout: time.Second},
			wantErr: "SQLITE_PATH",
		},
		{
			name:    "unknown backend",
			cfg:     DataConfig{Backend: "excel", HTTPTimeout: time.Second},
			wantErr: "invalid DATA_BACKEND",
		},
		{
			name:    "zero timeout",
			cfg:     DataConfig{Backend: BackendPostgres},
			wantErr: "AIRTABLE_TIMEOUT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestEventsConfig_Location(t *testing.T) {
	loc, err := EventsConfig{Timezone: "America/Chicago"}.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/Chicago", loc.String())

	_, err = EventsConfig{Timezone: "nowhere"}.Location()
	assert.Error(t, err)
}
