// Package todoapi is the request dispatcher for the remote Todo REST API.
// Each method issues exactly one HTTP request and returns the response body
// verbatim; it never retries.
package todoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/d-kuro/todo-mcp/internal/config"
	"github.com/d-kuro/todo-mcp/internal/errors"
	"github.com/d-kuro/todo-mcp/internal/schema"
	"github.com/d-kuro/todo-mcp/pkg/version"
)

// APIKeyHeader carries the static credential on every request.
const APIKeyHeader = "x-api-key"

// Observer is notified after every completed or failed exchange.
// status is 0 when no response was received.
type Observer interface {
	ObserveRequest(method, route string, status int, elapsed time.Duration)
}

// Client dispatches todo operations to the remote API.
type Client struct {
	baseURL   string
	apiKey    string
	http      *http.Client
	userAgent string
	observer  Observer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithObserver registers an Observer for request outcomes.
func WithObserver(o Observer) Option {
	return func(c *Client) {
		c.observer = o
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// New returns a client for baseURL authenticated with apiKey.
// Without WithHTTPClient the client has no timeout beyond the transport's.
func New(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		apiKey:    apiKey,
		http:      &http.Client{},
		userAgent: version.GetVersion().UserAgent(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewFromConfig builds a client from validated configuration.
func NewFromConfig(cfg *config.Config, opts ...Option) *Client {
	base := []Option{WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout})}
	return New(cfg.BaseURL, cfg.APIKey, append(base, opts...)...)
}

// BaseURL returns the API root requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// CreateTodo sends POST /todos with the supplied fields only.
func (c *Client) CreateTodo(ctx context.Context, in schema.CreateTodoInput) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, "/todos", "/todos", in)
}

// ListTodos sends GET /todos.
func (c *Client) ListTodos(ctx context.Context) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/todos", "/todos", nil)
}

// GetTodo sends GET /todos/{id}.
func (c *Client) GetTodo(ctx context.Context, id int64) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, todoPath(id), "/todos/{id}", nil)
}

// UpdateTodo sends PATCH /todos/{id} with the fields present in patch.
func (c *Client) UpdateTodo(ctx context.Context, id int64, patch schema.TodoPatch) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPatch, todoPath(id), "/todos/{id}", patch)
}

// ToggleTodo sends PATCH /todos/{id}/toggle without a body.
func (c *Client) ToggleTodo(ctx context.Context, id int64) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPatch, todoPath(id)+"/toggle", "/todos/{id}/toggle", nil)
}

// DeleteTodo sends DELETE /todos/{id}. A 204 response yields a nil body.
func (c *Client) DeleteTodo(ctx context.Context, id int64) (json.RawMessage, error) {
	return c.do(ctx, http.MethodDelete, todoPath(id), "/todos/{id}", nil)
}

func todoPath(id int64) string {
	return "/todos/" + strconv.FormatInt(id, 10)
}

// do performs one request. route is the path template used for metrics.
func (c *Client) do(ctx context.Context, method, path, route string, body any) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build request")
	}
	req.Header.Set(APIKeyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(method, route, 0, start)
		return nil, errors.Transport(method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	c.observe(method, route, resp.StatusCode, start)
	if err != nil {
		return nil, errors.Transport(method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.Remote(resp.StatusCode, string(data))
	}

	if resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	if !json.Valid(data) {
		return nil, errors.New("invalid JSON in %s %s response (status %d)", method, path, resp.StatusCode)
	}

	return json.RawMessage(data), nil
}

func (c *Client) observe(method, route string, status int, start time.Time) {
	if c.observer != nil {
		c.observer.ObserveRequest(method, route, status, time.Since(start))
	}
}
