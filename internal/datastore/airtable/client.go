// Package airtable implements datastore.Store over the Airtable REST API.
package airtable

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

	"github.com/festy23/pitmstr/internal/datastore"
	"github.com/festy23/pitmstr/pkg/retry"
)

// DefaultBaseURL is the public Airtable API endpoint.
const DefaultBaseURL = "https://api.airtable.com/v0"

const pageSize = 100

// Config holds Airtable client configuration.
type Config struct {
	// APIKey is the personal access token.
	APIKey string
	// BaseID identifies the base (appXXXXXXXX).
	BaseID string
	// BaseURL overrides the API endpoint (tests).
	BaseURL string
	// Timeout bounds a single HTTP round trip.
	Timeout time.Duration
	// Retry governs retries of rate-limited and 5xx responses.
	// Zero MaxAttempts selects retry.HTTPConfig.
	Retry retry.Config
}

// APIError is a non-2xx response from the API.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return "airtable status " + strconv.Itoa(e.Status)
	}
	return fmt.Sprintf("airtable status %d: %s", e.Status, e.Body)
}

// Temporary reports whether the request may succeed when repeated.
// Airtable answers 429 once a base exceeds five requests per second.
func (e *APIError) Temporary() bool {
	return e.Status == http.StatusTooManyRequests || e.Status >= http.StatusInternalServerError
}

func retryable(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Temporary()
}

// Client is a datastore.Store backed by an Airtable base.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *zap.SugaredLogger
}

var _ datastore.Store = (*Client)(nil)

// New creates a new Airtable client. Missing credentials fail fast.
func New(cfg Config, logger *zap.SugaredLogger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: AIRTABLE_API_KEY is empty", datastore.ErrNotConfigured)
	}
	if cfg.BaseID == "" {
		return nil, fmt.Errorf("%w: AIRTABLE_BASE_ID is empty", datastore.ErrNotConfigured)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.Retry.MaxAttempts <= 0 {
		cfg.Retry = retry.HTTPConfig(retryable)
	}
	if cfg.Retry.Retryable == nil {
		cfg.Retry.Retryable = retryable
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}, nil
}

type listResponse struct {
	Records []datastore.Record `json:"records"`
	Offset  string             `json:"offset"`
}

type writeRequest struct {
	Fields   datastore.Fields `json:"fields"`
	Typecast bool             `json:"typecast"`
}

type apiError struct {
	Error json.RawMessage `json:"error"`
}

// List returns records of a table, following pagination to the end.
func (c *Client) List(ctx context.Context, table string, opts datastore.ListOptions) ([]datastore.Record, error) {
	records := []datastore.Record{}
	offset := ""
	for {
		query := listQuery(opts, offset)
		var page listResponse
		if err := c.do(ctx, http.MethodGet, c.tableURL(table, "", query), nil, &page); err != nil {
			return nil, fmt.Errorf("list %s: %w", table, err)
		}
		records = append(records, page.Records...)
		if opts.MaxRecords > 0 && len(records) >= opts.MaxRecords {
			records = records[:opts.MaxRecords]
			break
		}
		if page.Offset == "" {
			break
		}
		offset = page.Offset
	}
	c.logger.Debugw("airtable list completed", "table", table, "count", len(records))
	return records, nil
}

// Find returns one record by id.
func (c *Client) Find(ctx context.Context, table, id string) (datastore.Record, error) {
	if id == "" {
		return datastore.Record{}, datastore.ErrNotFound
	}
	var rec datastore.Record
	if err := c.do(ctx, http.MethodGet, c.tableURL(table, id, nil), nil, &rec); err != nil {
		return datastore.Record{}, fmt.Errorf("find %s/%s: %w", table, id, err)
	}
	return rec, nil
}

// Create inserts a record.
func (c *Client) Create(ctx context.Context, table string, fields datastore.Fields) (datastore.Record, error) {
	var rec datastore.Record
	body := writeRequest{Fields: fields, Typecast: true}
	if err := c.do(ctx, http.MethodPost, c.tableURL(table, "", nil), body, &rec); err != nil {
		return datastore.Record{}, fmt.Errorf("create %s: %w", table, err)
	}
	return rec, nil
}

// Update merges fields into an existing record.
func (c *Client) Update(ctx context.Context, table, id string, fields datastore.Fields) (datastore.Record, error) {
	if id == "" {
		return datastore.Record{}, datastore.ErrNotFound
	}
	var rec datastore.Record
	body := writeRequest{Fields: fields, Typecast: true}
	if err := c.do(ctx, http.MethodPatch, c.tableURL(table, id, nil), body, &rec); err != nil {
		return datastore.Record{}, fmt.Errorf("update %s/%s: %w", table, id, err)
	}
	return rec, nil
}

// Delete removes a record.
func (c *Client) Delete(ctx context.Context, table, id string) error {
	if id == "" {
		return datastore.ErrNotFound
	}
	if err := c.do(ctx, http.MethodDelete, c.tableURL(table, id, nil), nil, nil); err != nil {
		return fmt.Errorf("delete %s/%s: %w", table, id, err)
	}
	return nil
}

// Ping lists a single record of the smallest reference table.
func (c *Client) Ping(ctx context.Context) error {
	query := url.Values{}
	query.Set("maxRecords", "1")
	var page listResponse
	if err := c.do(ctx, http.MethodGet, c.tableURL(datastore.TableDivisions, "", query), nil, &page); err != nil {
		return fmt.Errorf("airtable ping: %w", err)
	}
	return nil
}

func listQuery(opts datastore.ListOptions, offset string) url.Values {
	query := url.Values{}
	query.Set("pageSize", strconv.Itoa(pageSize))
	if opts.MaxRecords > 0 {
		query.Set("maxRecords", strconv.Itoa(opts.MaxRecords))
	}
	for i, s := range opts.Sort {
		query.Set(fmt.Sprintf("sort[%d][field]", i), s.Field)
		direction := s.Direction
		if direction == "" {
			direction = datastore.SortAsc
		}
		query.Set(fmt.Sprintf("sort[%d][direction]", i), string(direction))
	}
	for _, f := range opts.Fields {
		query.Add("fields[]", f)
	}
	if offset != "" {
		query.Set("offset", offset)
	}
	return query
}

func (c *Client) tableURL(table, id string, query url.Values) string {
	var b strings.Builder
	b.WriteString(strings.TrimSuffix(c.cfg.BaseURL, "/"))
	b.WriteString("/")
	b.WriteString(url.PathEscape(c.cfg.BaseID))
	b.WriteString("/")
	b.WriteString(url.PathEscape(table))
	if id != "" {
		b.WriteString("/")
		b.WriteString(url.PathEscape(id))
	}
	if len(query) > 0 {
		b.WriteString("?")
		b.WriteString(query.Encode())
	}
	return b.String()
}

func (c *Client) do(ctx context.Context, method, target string, in, out any) error {
	var payload []byte
	if in != nil {
		var err error
		if payload, err = json.Marshal(in); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	attempt := 0
	return retry.Do(ctx, c.cfg.Retry, func() error {
		attempt++
		err := c.roundTrip(ctx, method, target, payload, out)
		if err != nil && retryable(err) {
			c.logger.Warnw("airtable request throttled", "method", method, "attempt", attempt, "error", err)
		}
		return err
	})
}

func (c *Client) roundTrip(ctx context.Context, method, target string, payload []byte, out any) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return datastore.ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var apiErr apiError
	if err := json.Unmarshal(raw, &apiErr); err == nil && len(apiErr.Error) > 0 {
		return &APIError{Status: resp.StatusCode, Body: string(apiErr.Error)}
	}
	return &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
}
