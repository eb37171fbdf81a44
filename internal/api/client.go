// Package api provides the HTTP client for the MoodRop perfume service.
// Every call resolves to a uniform Result envelope; callers branch on
// Success instead of handling raised errors.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultTimeout is the per-request timeout.
	DefaultTimeout = 10 * time.Second

	// DeviceIDHeader carries the device identifier on every request.
	DeviceIDHeader = "X-Device-ID"
)

// Conservative rate limit: 10 requests per second.
var DefaultRateLimit = rate.Every(100 * time.Millisecond)

// ClientConfig holds configuration for the MoodRop API client.
type ClientConfig struct {
	// BaseURL is the base URL of the perfume service (e.g., "https://api.moodrop.io")
	BaseURL string

	// Timeout is the default timeout for individual requests
	Timeout time.Duration

	// DeviceID is sent as the X-Device-ID header on every request
	DeviceID string

	// RateLimit controls request frequency (default: 10 req/second)
	RateLimit rate.Limit

	// HTTPClient allows a custom HTTP client
	HTTPClient *http.Client
}

// DefaultClientConfig returns a ClientConfig with sensible defaults.
func DefaultClientConfig(baseURL, deviceID string) *ClientConfig {
	return &ClientConfig{
		BaseURL:   baseURL,
		Timeout:   DefaultTimeout,
		DeviceID:  deviceID,
		RateLimit: DefaultRateLimit,
	}
}

// Client is the HTTP client for the perfume service. Safe for concurrent
// use; the base URL may be swapped while requests are in flight.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
	limiter    *rate.Limiter

	mu      sync.RWMutex
	baseURL string
}

// NewClient creates a new API client.
func NewClient(config *ClientConfig) *Client {
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	if config.RateLimit == 0 {
		config.RateLimit = DefaultRateLimit
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		// Timeouts are enforced per request via context, not here.
		httpClient = &http.Client{}
	}

	return &Client{
		config:     config,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(config.RateLimit, 1),
		baseURL:    config.BaseURL,
	}
}

// BaseURL returns the current base URL.
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

// SetBaseURL updates the base URL for the client. A config reload may call
// this from the watcher goroutine while requests are in flight.
func (c *Client) SetBaseURL(u string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.baseURL = u
}

// RequestOptions customizes a single request.
type RequestOptions struct {
	// Headers are merged over the default headers; call-specific values win.
	Headers map[string]string

	// Timeout overrides the client default for this request.
	Timeout time.Duration

	// Query is appended to the request URL.
	Query url.Values
}

// Get issues a GET request and decodes the response into T.
func Get[T any](ctx context.Context, c *Client, path string, opts *RequestOptions) Result[T] {
	return do[T](ctx, c, http.MethodGet, path, nil, opts)
}

// Post issues a POST request with a JSON body and decodes the response into T.
func Post[T any](ctx context.Context, c *Client, path string, body any, opts *RequestOptions) Result[T] {
	return do[T](ctx, c, http.MethodPost, path, body, opts)
}

// Del issues a DELETE request and decodes the response into T.
func Del[T any](ctx context.Context, c *Client, path string, opts *RequestOptions) Result[T] {
	return do[T](ctx, c, http.MethodDelete, path, nil, opts)
}

// do performs a request and normalizes every outcome into a Result.
// Network failure, non-2xx status, timeout, JSON-parse failure and an
// application-level success:false payload all resolve as failures; nothing
// escapes as a Go error.
func do[T any](ctx context.Context, c *Client, method, path string, body any, opts *RequestOptions) Result[T] {
	fullURL := c.BaseURL() + path
	if opts != nil && len(opts.Query) > 0 {
		fullURL += "?" + opts.Query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return failure[T](fmt.Sprintf("failed to encode request body: %v", err))
		}
		reqBody = bytes.NewReader(payload)
	}

	timeout := c.config.Timeout
	if opts != nil && opts.Timeout > 0 {
		timeout = opts.Timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return failure[T]("Request timeout")
		}
		return failure[T](fmt.Sprintf("rate limiter error: %v", err))
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return failure[T](fmt.Sprintf("failed to create request: %v", err))
	}

	// Default headers first, call-specific headers take precedence.
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(DeviceIDHeader, c.config.DeviceID)
	if opts != nil {
		for k, v := range opts.Headers {
			req.Header.Set(k, v)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return failure[T]("Request timeout")
		}
		return failure[T](fmt.Sprintf("request failed: %v", err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return failure[T](fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return failure[T]("Request timeout")
		}
		return failure[T](fmt.Sprintf("failed to read response body: %v", err))
	}

	return decode[T](raw)
}

// decode parses a response body, honoring an application-level envelope
// when the server reports success:false in the payload itself.
func decode[T any](raw []byte) Result[T] {
	var probe struct {
		Success *bool  `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &probe); err == nil && probe.Success != nil && !*probe.Success {
		msg := probe.Message
		if msg == "" {
			msg = "request rejected by server"
		}
		return failure[T](msg)
	}

	var data T
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &data); err != nil {
			return failure[T](fmt.Sprintf("failed to parse JSON response: %v", err))
		}
	}
	return success(data)
}

// isTimeout reports whether err represents a per-request deadline firing.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
