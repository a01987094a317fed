package config

import (
	"fmt"
	"time"
)

// EventsConfig holds event listing configuration.
type EventsConfig struct {
	// Timezone is the IANA zone in which event calendar days are compared.
	Timezone string
}

// LoadEventsConfigFromEnv loads events configuration from environment variables.
func LoadEventsConfigFromEnv() EventsConfig {
	return EventsConfig{
		Timezone: GetEnv("EVENT_TIMEZONE", "America/Chicago"),
	}
}

// Location returns the configured time zone.
func (c EventsConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid EVENT_TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Validate validates events configuration.
func (c EventsConfig) Validate() error {
	_, err := c.Location()
	return err
}
