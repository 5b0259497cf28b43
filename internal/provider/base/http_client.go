package base

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// maxBodyBytes caps how much of a response body is read into memory.
const maxBodyBytes = 8 << 20

// HTTPClient is a small JSON client shared by upstream API adapters. Every
// request waits on a token-bucket limiter so a burst of list sessions
// cannot hammer the public API.
type HTTPClient struct {
	client  *http.Client
	baseURL string
	name    string // upstream name for logging
	limiter *rate.Limiter
}

// Options tunes an HTTPClient. Zero values pick the defaults.
type Options struct {
	Timeout    time.Duration
	RatePerSec float64
	Burst      int
	Transport  http.RoundTripper
}

// NewHTTPClient creates a client for the upstream called name at baseURL.
func NewHTTPClient(name, baseURL string, opts Options) *HTTPClient {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	limit := rate.Inf
	if opts.RatePerSec > 0 {
		limit = rate.Limit(opts.RatePerSec)
	}
	if opts.Burst < 1 {
		opts.Burst = 1
	}

	return &HTTPClient{
		client: &http.Client{
			Timeout:   opts.Timeout,
			Transport: opts.Transport,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		name:    name,
		limiter: rate.NewLimiter(limit, opts.Burst),
	}
}

// BaseURL returns the configured base URL without a trailing slash.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// PostJSON makes a POST request with a JSON payload.
func (c *HTTPClient) PostJSON(ctx context.Context, endpoint string, payload any) (*HTTPResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON payload: %w", err)
	}
	return c.do(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
}

// Get makes a GET request.
func (c *HTTPClient) Get(ctx context.Context, endpoint string) (*HTTPResponse, error) {
	return c.do(ctx, http.MethodGet, endpoint, nil)
}

func (c *HTTPClient) do(ctx context.Context, method, endpoint string, body io.Reader) (*HTTPResponse, error) {
	url := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "launchlist/"+c.name)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log.Debug().
		Str("upstream", c.name).
		Str("method", method).
		Str("url", url).
		Msg("making HTTP request")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		log.Warn().
			Str("upstream", c.name).
			Str("url", url).
			Err(err).
			Msg("HTTP request failed")
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}

	return c.handleResponse(resp, time.Since(start))
}

func (c *HTTPClient) handleResponse(resp *http.Response, took time.Duration) (*HTTPResponse, error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	log.Debug().
		Str("upstream", c.name).
		Int("status_code", resp.StatusCode).
		Int("body_length", len(body)).
		Dur("took", took).
		Msg("received HTTP response")

	return &HTTPResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       body,
	}, nil
}

// HTTPResponse is a fully read HTTP response.
type HTTPResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// IsSuccess checks if the response indicates success (2xx status code)
func (r *HTTPResponse) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Decode unmarshals the JSON response body into v.
func (r *HTTPResponse) Decode(v any) error {
	return json.Unmarshal(r.Body, v)
}

// Snippet returns at most n bytes of the body for error messages.
func (r *HTTPResponse) Snippet(n int) string {
	if len(r.Body) <= n {
		return string(r.Body)
	}
	return string(r.Body[:n]) + "..."
}
