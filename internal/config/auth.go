package config

import "fmt"

// AuthConfig holds identity provider and access policy configuration.
type AuthConfig struct {
	// JWTPublicKey is the PEM-encoded RS256 key used to verify session tokens.
	JWTPublicKey string
	// JWTSecret is an HS256 secret for development tokens.
	JWTSecret string
	// PolicyPath points to an optional YAML role policy overriding the defaults.
	PolicyPath string
	// ClerkSecretKey authenticates calls to the identity provider API.
	ClerkSecretKey string
	// ClerkAPIURL overrides the identity provider API endpoint.
	ClerkAPIURL string
	// WebhookSecret verifies identity provider webhooks.
	WebhookSecret string
}

// LoadAuthConfigFromEnv loads auth configuration from environment variables.
func LoadAuthConfigFromEnv() AuthConfig {
	return AuthConfig{
		JWTPublicKey:   GetEnv("CLERK_JWT_KEY", ""),
		JWTSecret:      GetEnv("AUTH_JWT_SECRET", ""),
		PolicyPath:     GetEnv("AUTH_POLICY_PATH", ""),
		ClerkSecretKey: GetEnv("CLERK_SECRET_KEY", ""),
		ClerkAPIURL:    GetEnv("CLERK_API_URL", "https://api.clerk.com/v1"),
		WebhookSecret:  GetEnv("CLERK_WEBHOOK_SECRET", ""),
	}
}

// Validate validates auth configuration.
func (c AuthConfig) Validate() error {
	if c.JWTPublicKey != "" && c.JWTSecret != "" {
		return fmt.Errorf("CLERK_JWT_KEY and AUTH_JWT_SECRET are mutually exclusive")
	}
	if c.ClerkAPIURL == "" {
		return fmt.Errorf("CLERK_API_URL must not be empty")
	}
	return nil
}
