// Package serper is the upstream client for the Serper.dev search API.
//
// Every call is a single POST with the API key in the X-API-KEY header.
// Failures of any kind are folded into Result.Err so callers only ever
// inspect a value, never handle a panic or a second error return.
package serper

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the public Serper.dev endpoint root.
	DefaultBaseURL = "https://google.serper.dev"

	// DefaultTimeout bounds each upstream call.
	DefaultTimeout = 30 * time.Second

	// maxResponseBody caps how much of an upstream body we read.
	maxResponseBody = 10 << 20 // 10 MiB

	// maxErrorSnippet caps raw body text quoted in a StatusError.
	maxErrorSnippet = 512
)

// ErrMissingCredential is returned for every call made without an API key.
var ErrMissingCredential = errors.New("missing credential")

// StatusError reports a non-2xx upstream response.
type StatusError struct {
	Code    int
	Status  string
	Message string
}

func (e *StatusError) Error() string {
	status := e.Status
	if status == "" {
		status = fmt.Sprintf("%d %s", e.Code, http.StatusText(e.Code))
	}
	if e.Message == "" {
		return fmt.Sprintf("upstream returned %s", status)
	}
	return fmt.Sprintf("upstream returned %s: %s", status, e.Message)
}

// Result is the outcome of one upstream call. Exactly one of Body or Err is set.
type Result struct {
	Body map[string]any
	Err  error
}

// Failed reports whether the call did not produce a usable body.
func (r Result) Failed() bool { return r.Err != nil }

// Client issues requests to the Serper API. It is safe for concurrent use.
type Client struct {
	apiKey     string
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the endpoint root (used by tests and proxies).
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithTimeout overrides the per-call upper bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying transport client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient creates a client holding apiKey for its whole lifetime.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  strings.TrimSpace(apiKey),
		baseURL: DefaultBaseURL,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
	}
	return c
}

// Configured reports whether a credential is present.
func (c *Client) Configured() bool { return c.apiKey != "" }

// BaseURL returns the endpoint root requests are sent to.
func (c *Client) BaseURL() string { return c.baseURL }

// Timeout returns the per-call upper bound.
func (c *Client) Timeout() time.Duration { return c.timeout }

// Call posts payload to <base>/<endpoint> and returns the decoded JSON object.
func (c *Client) Call(ctx context.Context, endpoint string, payload map[string]any) Result {
	if !c.Configured() {
		return Result{Err: ErrMissingCredential}
	}
	body, err := c.do(ctx, endpoint, payload)
	if err != nil {
		slog.Warn("serper call failed", "endpoint", endpoint, "err", err)
		return Result{Err: err}
	}
	return Result{Body: body}
}

func (c *Client) do(ctx context.Context, endpoint string, payload map[string]any) (map[string]any, error) {
	if payload == nil {
		payload = map[string]any{}
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding payload: %w", err)
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	url := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{
			Code:    resp.StatusCode,
			Status:  resp.Status,
			Message: errorMessage(raw),
		}
	}

	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decoding response body: %w", err)
	}
	if out == nil {
		return nil, fmt.Errorf("decoding response body: expected a JSON object")
	}
	return out, nil
}

// errorMessage pulls the provider's message out of an error body, falling
// back to a truncated copy of the raw text.
func errorMessage(raw []byte) string {
	var parsed struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &parsed); err == nil {
		if parsed.Message != "" {
			return parsed.Message
		}
		if parsed.Error != "" {
			return parsed.Error
		}
	}
	text := strings.TrimSpace(string(raw))
	if len(text) > maxErrorSnippet {
		text = text[:maxErrorSnippet] + "..."
	}
	return text
}
