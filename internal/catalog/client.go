package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// DefaultKeyHeader is the header the BookFather API reads the shared key from.
const DefaultKeyHeader = "apikey"

// Client talks to the BookFather catalog API. It is shared by every Resource.
type Client struct {
	BaseURL   string
	APIKey    string
	KeyHeader string

	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client (30s timeout).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout of the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithRateLimit throttles outgoing requests to rps per second. Zero disables it.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// WithKeyHeader overrides the header carrying the API key.
func WithKeyHeader(name string) Option {
	return func(c *Client) {
		if name != "" {
			c.KeyHeader = name
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a new catalog client
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		APIKey:    apiKey,
		KeyHeader: DefaultKeyHeader,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do sends one request. in is JSON encoded when non-nil; out is decoded from a
// 2xx body when non-nil.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return &NetworkError{Method: method, Path: path, Err: err}
		}
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(c.KeyHeader, c.APIKey)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("Catalog request failed", "method", method, "path", path, "err", err)
		return &NetworkError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug("Catalog request", "method", method, "path", path, "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return statusError(method, path, resp.StatusCode, strings.TrimSpace(string(data)))
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return &ServerError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: "undecodable response: " + err.Error()}
	}
	return nil
}

// Resource is the typed client for one collection. T is the record as the
// server returns it, F the editable fields sent on create and update.
type Resource[T any, F any] struct {
	client *Client
	path   string
}

// NewResource binds a collection path such as "/api/books" to the client.
func NewResource[T any, F any](c *Client, path string) *Resource[T, F] {
	return &Resource[T, F]{client: c, path: path}
}

// Path returns the collection path.
func (r *Resource[T, F]) Path() string { return r.path }

// List fetches the whole collection in server order.
func (r *Resource[T, F]) List(ctx context.Context) ([]T, error) {
	var items []T
	if err := r.client.do(ctx, http.MethodGet, r.path, nil, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Create posts the draft and returns the record the server created.
func (r *Resource[T, F]) Create(ctx context.Context, fields F) (T, error) {
	var created T
	err := r.client.do(ctx, http.MethodPost, r.path, fields, &created)
	return created, err
}

// Update replaces every editable field of the record with the given id.
func (r *Resource[T, F]) Update(ctx context.Context, id string, fields F) error {
	return r.client.do(ctx, http.MethodPut, r.itemPath(id), fields, nil)
}

// Remove deletes the record with the given id.
func (r *Resource[T, F]) Remove(ctx context.Context, id string) error {
	return r.client.do(ctx, http.MethodDelete, r.itemPath(id), nil, nil)
}

func (r *Resource[T, F]) itemPath(id string) string {
	return r.path + "/" + url.PathEscape(id)
}
