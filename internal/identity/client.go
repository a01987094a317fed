// Package identity is a client for the identity provider's backend API (Clerk).
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultBaseURL is the public backend API endpoint.
const DefaultBaseURL = "https://api.clerk.com/v1"

var (
	// ErrUserNotFound indicates that the identity provider has no such user.
	ErrUserNotFound = errors.New("identity user not found")
	// ErrNotConfigured indicates a missing secret key.
	ErrNotConfigured = errors.New("identity provider is not configured")
)

// Config holds identity client configuration.
type Config struct {
	SecretKey string
	BaseURL   string
	Timeout   time.Duration
}

// EmailAddress is one address of a user.
type EmailAddress struct {
	ID           string `json:"id"`
	EmailAddress string `json:"email_address"`
}

// User is a user as returned by the backend API. Timestamps are Unix milliseconds.
type User struct {
	ID             string         `json:"id"`
	EmailAddresses []EmailAddress `json:"email_addresses"`
	FirstName      *string        `json:"first_name"`
	LastName       *string        `json:"last_name"`
	ImageURL       string         `json:"image_url"`
	PublicMetadata map[string]any `json:"public_metadata"`
	CreatedAt      int64          `json:"created_at"`
	LastSignInAt   *int64         `json:"last_sign_in_at"`
}

// PrimaryEmail returns the first email address, or "".
func (u User) PrimaryEmail() string {
	if len(u.EmailAddresses) == 0 {
		return ""
	}
	return u.EmailAddresses[0].EmailAddress
}

// MetadataString returns a public metadata value as text, or "".
func (u User) MetadataString(key string) string {
	s, _ := u.PublicMetadata[key].(string)
	return s
}

// ListParams filters a user listing.
type ListParams struct {
	Query  string
	Limit  int
	Offset int
}

// Client calls the identity provider backend API.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *zap.SugaredLogger
}

// New creates a new identity client.
func New(cfg Config, logger *zap.SugaredLogger) (*Client, error) {
	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("%w: CLERK_SECRET_KEY is empty", ErrNotConfigured)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{cfg: cfg, http: &http.Client{Timeout: cfg.Timeout}, logger: logger}, nil
}

// ListUsers returns a page of users. Without a query, newest users come first.
func (c *Client) ListUsers(ctx context.Context, params ListParams) ([]User, error) {
	q := url.Values{}
	if params.Query != "" {
		q.Set("query", params.Query)
	} else {
		q.Set("order_by", "-created_at")
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Offset > 0 {
		q.Set("offset", strconv.Itoa(params.Offset))
	}

	var users []User
	if err := c.do(ctx, http.MethodGet, "/users", q, nil, &users); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// CountUsers returns the number of users matching query.
func (c *Client) CountUsers(ctx context.Context, query string) (int, error) {
	q := url.Values{}
	if query != "" {
		q.Set("query", query)
	}
	var out struct {
		TotalCount int `json:"total_count"`
	}
	if err := c.do(ctx, http.MethodGet, "/users/count", q, nil, &out); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return out.TotalCount, nil
}

// GetUser returns one user.
func (c *Client) GetUser(ctx context.Context, id string) (*User, error) {
	if id == "" {
		return nil, ErrUserNotFound
	}
	var user User
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(id), nil, nil, &user); err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	return &user, nil
}

// UpdatePublicMetadata replaces the user's public metadata with metadata.
// Callers merge with the current value first.
func (c *Client) UpdatePublicMetadata(ctx context.Context, id string, metadata map[string]any) (*User, error) {
	if id == "" {
		return nil, ErrUserNotFound
	}
	body := map[string]any{"public_metadata": metadata}
	var user User
	if err := c.do(ctx, http.MethodPatch, "/users/"+url.PathEscape(id)+"/metadata", nil, body, &user); err != nil {
		return nil, fmt.Errorf("update metadata %s: %w", id, err)
	}
	c.logger.Debugw("identity metadata updated", "user_id", id)
	return &user, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	target := strings.TrimSuffix(c.cfg.BaseURL, "/") + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.SecretKey)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrUserNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("identity provider status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
