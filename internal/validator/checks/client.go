// Package checks implements the built-in vendor checks behind the validator
// registry. Each check speaks JSON over HTTP to its vendor.
package checks

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"fieldcheck/internal/config"
)

const (
	apiKeyHeader      = "X-API-Key"
	maxResponseBytes  = 1 << 20
	defaultRetryAfter = 60 * time.Second
)

// ErrNotConfigured is returned by a check whose vendor has no endpoint.
var ErrNotConfigured = errors.New("vendor endpoint not configured")

// VendorError is a non-2xx response from a vendor.
type VendorError struct {
	Vendor     string
	StatusCode int
	Body       string
}

func (e *VendorError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s returned status %d", e.Vendor, e.StatusCode)
	}
	return fmt.Sprintf("%s returned status %d: %s", e.Vendor, e.StatusCode, e.Body)
}

// VendorRateLimitError indicates a vendor returned HTTP 429.
type VendorRateLimitError struct {
	Err        error
	RetryAfter time.Duration
	Vendor     string
}

func (e *VendorRateLimitError) Error() string {
	return fmt.Sprintf("%s rate limited (retry after %s): %v", e.Vendor, e.RetryAfter, e.Err)
}

func (e *VendorRateLimitError) Unwrap() error {
	return e.Err
}

// parseRetryAfter parses a Retry-After header given in seconds.
func parseRetryAfter(val string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil || secs <= 0 {
		return defaultRetryAfter
	}
	return time.Duration(secs) * time.Second
}

// Client is a JSON client for one vendor.
type Client struct {
	vendor   string
	endpoint string
	apiKey   string
	http     *http.Client
	limiter  *rate.Limiter
}

// NewClient creates a vendor client. A non-positive RequestsPerSecond
// disables outbound throttling.
func NewClient(vendor string, cfg config.VendorConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	c := &Client{
		vendor:   vendor,
		endpoint: strings.TrimRight(strings.TrimSpace(cfg.Endpoint), "/"),
		apiKey:   cfg.APIKey,
		http:     httpClient,
	}
	if cfg.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}
	return c
}

// Vendor returns the vendor name used in errors.
func (c *Client) Vendor() string {
	return c.vendor
}

// PostJSON sends body to path and decodes the response into out. The raw
// response body is returned for use as evidence.
func (c *Client) PostJSON(ctx context.Context, path string, body, out any) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling %s request: %w", c.vendor, err)
	}
	return c.do(ctx, http.MethodPost, path, bytes.NewReader(payload), out)
}

// GetJSON fetches path and decodes the response into out.
func (c *Client) GetJSON(ctx context.Context, path string, out any) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, out any) ([]byte, error) {
	if c.endpoint == "" {
		return nil, fmt.Errorf("%s: %w", c.vendor, ErrNotConfigured)
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("waiting for %s rate limit: %w", c.vendor, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, body)
	if err != nil {
		return nil, fmt.Errorf("creating %s request: %w", c.vendor, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set(apiKeyHeader, c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling %s: %w", c.vendor, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("reading %s response: %w", c.vendor, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		vendorErr := &VendorError{Vendor: c.vendor, StatusCode: resp.StatusCode, Body: truncate(string(respBody), 200)}
		if resp.StatusCode == http.StatusTooManyRequests {
			return nil, &VendorRateLimitError{
				Err:        vendorErr,
				RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
				Vendor:     c.vendor,
			}
		}
		return nil, vendorErr
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return nil, fmt.Errorf("decoding %s response: %w", c.vendor, err)
	}
	return respBody, nil
}

// truncate cuts s to maxLen runes. Invalid UTF-8 is replaced first so the
// result is always safe to persist.
func truncate(s string, maxLen int) string {
	s = strings.ToValidUTF8(strings.TrimSpace(s), "\uFFFD")
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen]) + "..."
}
