// Package apiclient is the HTTP side of the framework: a request executor
// that masks transient network failures behind a bounded retry policy.
// Transport-level failures (connection refused, timeout, broken response
// stream) are retried with a linearly-increasing backoff; a valid HTTP
// response is always returned as-is, error status codes included: a 404
// is an answer, not a failure.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/atheor/gowebtest/internal/logging"
)

// Request describes a single HTTP call. Header keys are applied as
// supplied, last write wins on duplicates. Body may be nil, a string,
// a []byte, or any JSON-marshalable value.
type Request struct {
	Method   string
	Endpoint string
	Headers  map[string]string
	Body     any
}

// Client executes API requests against a base URL with bounded retries.
//
// A Client is safe for concurrent Execute calls. The default-header
// mutation methods are not synchronized against in-flight requests and
// must be called from one goroutine during setup.
type Client struct {
	hc             *http.Client
	cfg            Config
	defaultHeaders map[string]string
	logger         logging.Logger
}

// NewClient creates a Client. If httpClient is nil a default client with
// the configured per-attempt timeout is constructed. Content-Type and
// Accept default to application/json.
func NewClient(cfg Config, logger logging.Logger, httpClient *http.Client) *Client {
	cfg = cfg.withDefaults()
	componentLogger := logger.With(logging.Field{Key: "component", Value: "apiclient"})

	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	componentLogger.Info("api client initialized",
		logging.Field{Key: "base_url", Value: cfg.BaseURL},
		logging.Field{Key: "max_attempts", Value: cfg.MaxAttempts})

	return &Client{
		hc:  httpClient,
		cfg: cfg,
		defaultHeaders: map[string]string{
			"Content-Type": "application/json",
			"Accept":       "application/json",
		},
		logger: componentLogger,
	}
}

// SetBaseURL replaces the base URL for subsequent requests.
func (c *Client) SetBaseURL(baseURL string) {
	c.cfg.BaseURL = baseURL
	c.logger.Info("base url updated", logging.Field{Key: "base_url", Value: baseURL})
}

// AddDefaultHeader sets a header applied to every request.
func (c *Client) AddDefaultHeader(key, value string) {
	c.defaultHeaders[key] = value
}

// RemoveDefaultHeader removes a default header.
func (c *Client) RemoveDefaultHeader(key string) {
	delete(c.defaultHeaders, key)
}

// Get executes a GET request against endpoint.
func (c *Client) Get(ctx context.Context, endpoint string) (*Response, error) {
	return c.Execute(ctx, &Request{Method: http.MethodGet, Endpoint: endpoint})
}

// Post executes a POST request with the given body.
func (c *Client) Post(ctx context.Context, endpoint string, body any) (*Response, error) {
	return c.Execute(ctx, &Request{Method: http.MethodPost, Endpoint: endpoint, Body: body})
}

// Put executes a PUT request with the given body.
func (c *Client) Put(ctx context.Context, endpoint string, body any) (*Response, error) {
	return c.Execute(ctx, &Request{Method: http.MethodPut, Endpoint: endpoint, Body: body})
}

// Patch executes a PATCH request with the given body.
func (c *Client) Patch(ctx context.Context, endpoint string, body any) (*Response, error) {
	return c.Execute(ctx, &Request{Method: http.MethodPatch, Endpoint: endpoint, Body: body})
}

// Delete executes a DELETE request against endpoint.
func (c *Client) Delete(ctx context.Context, endpoint string) (*Response, error) {
	return c.Execute(ctx, &Request{Method: http.MethodDelete, Endpoint: endpoint})
}

// Execute attempts req up to MaxAttempts times. Only transport-level
// failures are retried; between attempts the executor sleeps
// BaseDelay * attemptNumber (linear, not exponential).
// On exhaustion it fails with a *RequestFailedError wrapping the last
// transport error. A valid HTTP response, whatever its status code, ends
// the loop and is returned.
func (c *Client) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, fmt.Errorf("nil request")
	}

	url := c.buildURL(req.Endpoint)
	body, err := encodeBody(req.Body)
	if err != nil {
		return nil, fmt.Errorf("serialize request body: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= c.cfg.MaxAttempts; attempt++ {
		c.logger.Debug("sending request",
			logging.Field{Key: "method", Value: req.Method},
			logging.Field{Key: "url", Value: url},
			logging.Field{Key: "attempt", Value: attempt})

		resp, err := c.attempt(ctx, req.Method, url, req.Headers, body)
		if err == nil {
			c.logger.Info("response received",
				logging.Field{Key: "url", Value: url},
				logging.Field{Key: "status", Value: resp.StatusCode},
				logging.Field{Key: "body_length", Value: len(resp.Body)})
			return resp, nil
		}

		if ctx.Err() != nil {
			return nil, fmt.Errorf("request to %s interrupted: %w", url, ctx.Err())
		}

		lastErr = err
		c.logger.Warn("request attempt failed",
			logging.Field{Key: "url", Value: url},
			logging.Field{Key: "attempt", Value: attempt},
			logging.Field{Key: "max_attempts", Value: c.cfg.MaxAttempts},
			logging.Field{Key: "category", Value: string(Categorize(err))},
			logging.Field{Key: "error", Value: err.Error()})

		if attempt < c.cfg.MaxAttempts {
			if err := c.backoff(ctx, attempt); err != nil {
				return nil, fmt.Errorf("request to %s interrupted: %w", url, err)
			}
		}
	}

	c.logger.Error("all attempts failed",
		logging.Field{Key: "url", Value: url},
		logging.Field{Key: "attempts", Value: c.cfg.MaxAttempts})
	return nil, &RequestFailedError{URL: url, Attempts: c.cfg.MaxAttempts, Err: lastErr}
}

// attempt performs one request/response cycle. Any returned error is
// transport-level by construction: error statuses come back as a Response.
func (c *Client) attempt(ctx context.Context, method, url string, headers map[string]string, body []byte) (*Response, error) {
	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	for k, v := range c.defaultHeaders {
		httpReq.Header.Set(k, v)
	}
	for k, v := range headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := c.hc.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("http do: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       string(raw),
		Headers:    resp.Header,
	}, nil
}

// backoff sleeps BaseDelay * attempt, aborting early on cancellation.
func (c *Client) backoff(ctx context.Context, attempt int) error {
	delay := c.cfg.BaseDelay * time.Duration(attempt)
	select {
	case <-time.After(delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// buildURL resolves endpoint against the base URL. Absolute endpoints pass
// through untouched.
func (c *Client) buildURL(endpoint string) string {
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return endpoint
	}
	base := strings.TrimSuffix(c.cfg.BaseURL, "/")
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}
	return base + endpoint
}

// encodeBody serializes a request body: strings and byte slices pass
// through, anything else is JSON-marshalled.
func encodeBody(body any) ([]byte, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case string:
		return []byte(b), nil
	case []byte:
		return b, nil
	default:
		return json.Marshal(b)
	}
}
