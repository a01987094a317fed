package config

import (
	"fmt"
	"time"
)

// Data backends.
const (
	BackendAirtable = "airtable"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// DataConfig holds external data service configuration.
type DataConfig struct {
	// Backend selects the datastore implementation (airtable, postgres, sqlite).
	Backend string
	// AirtableAPIKey is the Airtable personal access token.
	AirtableAPIKey string
	// AirtableBaseID identifies the Airtable base.
	AirtableBaseID string
	// AirtableBaseURL overrides the Airtable API endpoint.
	AirtableBaseURL string
	// HTTPTimeout bounds a single request to the data service.
	HTTPTimeout time.Duration
	// SQLitePath is the database file for the sqlite backend.
	SQLitePath string
}

// LoadDataConfigFromEnv loads data service configuration from environment variables.
func LoadDataConfigFromEnv() DataConfig {
	return DataConfig{
		Backend:         GetEnv("DATA_BACKEND", BackendAirtable),
		AirtableAPIKey:  GetEnv("AIRTABLE_API_KEY", ""),
		AirtableBaseID:  GetEnv("AIRTABLE_BASE_ID", ""),
		AirtableBaseURL: GetEnv("AIRTABLE_BASE_URL", ""),
		HTTPTimeout:     GetEnvDuration("AIRTABLE_TIMEOUT", 15*time.Second),
		SQLitePath:      GetEnv("SQLITE_PATH", "pitmstr.db"),
	}
}

// Validate validates data service configuration.
func (c DataConfig) Validate() error {
	switch c.Backend {
	case BackendAirtable:
		if c.AirtableAPIKey == "" {
			return fmt.Errorf("AIRTABLE_API_KEY is not configured")
		}
		if c.AirtableBaseID == "" {
			return fmt.Errorf("AIRTABLE_BASE_ID is not configured")
		}
	case BackendPostgres:
	case BackendSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH must not be empty")
		}
	default:
		return fmt.Errorf("invalid DATA_BACKEND: %s (must be: airtable, postgres, sqlite)", c.Backend)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("AIRTABLE_TIMEOUT must be greater than 0")
	}
	return nil
}
