package upstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/neexbeast/countries-api/internal/metrics"
)

const (
	// DefaultURL serves the full REST Countries dataset as a JSON array.
	DefaultURL     = "https://restcountries.com/v3.1/all"
	DefaultTimeout = 10 * time.Second

	// maxBodyBytes caps how much of a response body is buffered.
	maxBodyBytes = 32 << 20
)

// ErrUnavailable wraps transport-level failures: the upstream could not be
// reached or its response could not be read.
var ErrUnavailable = errors.New("upstream unavailable")

// Response is the raw result of a fetch. Body is only populated for 2xx statuses.
type Response struct {
	StatusCode int
	Body       []byte
}

// OK reports whether the upstream answered with a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Client performs the single outbound GET for the country dataset.
type Client struct {
	url    string
	client *http.Client
}

// NewClient constructs a Client for url with a timeout-bound http.Client.
func NewClient(url string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{url: url, client: &http.Client{Timeout: timeout}}
}

// NewClientWithHTTPClient constructs a Client around an existing http.Client (for tests).
func NewClientWithHTTPClient(url string, hc *http.Client) *Client {
	return &Client{url: url, client: hc}
}

// URL returns the upstream endpoint.
func (c *Client) URL() string { return c.url }

// Fetch issues one GET to the upstream. A non-2xx status is not an error: it is
// returned in Response so the caller can forward it.
func (c *Client) Fetch(ctx context.Context) (*Response, error) {
	start := time.Now()
	resp, err := c.fetch(ctx)
	metrics.UpstreamDuration.Observe(time.Since(start).Seconds())

	switch {
	case err != nil:
		metrics.UpstreamRequests.WithLabelValues("error").Inc()
	case !resp.OK():
		metrics.UpstreamRequests.WithLabelValues("status").Inc()
	default:
		metrics.UpstreamRequests.WithLabelValues("success").Inc()
	}
	return resp, err
}

func (c *Client) fetch(ctx context.Context) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request for %s: %w", c.url, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w: %w", c.url, ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return &Response{StatusCode: resp.StatusCode}, nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response from %s: %w: %w", c.url, ErrUnavailable, err)
	}

	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}
