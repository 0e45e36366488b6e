package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/Naufalpc11/Wood-Classification/client/internal/api"
)

// DefaultBaseURL is where the backend listens in local development.
const DefaultBaseURL = "http://localhost:5000/api"

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

// Client talks to the Wood Knots Detection API. It holds only immutable
// configuration and is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client

	debug bool
	retry retryConfig

	closedOnce uint32 // ensures Close is idempotent
}

// New constructs a Client for the backend rooted at baseURL, e.g.
// "http://localhost:5000/api". A trailing slash is ignored.
// Additional options can be provided via functional arguments.
func New(baseURL string, opts ...Option) (*Client, error) {
	normalized, err := normalizeBaseURL(baseURL)
	if err != nil {
		return nil, err
	}

	c := &Client{
		baseURL: normalized,
		http:    &http.Client{Timeout: 30 * time.Second},
		retry:   retryConfig{maxAttempts: 1},
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		c.debug = true
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	c.installTransports()
	return c, nil
}

func normalizeBaseURL(raw string) (string, error) {
	if raw == "" {
		return "", fmt.Errorf("baseURL cannot be empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid baseURL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("invalid baseURL %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid baseURL %q: missing host", raw)
	}
	return strings.TrimRight(raw, "/"), nil
}

// installTransports wraps the HTTP client's transport, outermost first:
// retry, request ID, debug logging, base.
func (c *Client) installTransports() {
	rt := c.http.Transport
	if rt == nil {
		rt = http.DefaultTransport
	}
	if c.debug {
		rt = &debugTransport{base: rt}
	}
	rt = &requestIDTransport{base: rt}
	if c.retry.maxAttempts > 1 {
		rt = &retryTransport{base: rt, cfg: c.retry}
	}
	c.http.Transport = rt
}

// BaseURL returns the normalized backend root.
func (c *Client) BaseURL() string { return c.baseURL }

// Close releases idle connections. Safe to call multiple times.
func (c *Client) Close() error {
	if !atomic.CompareAndSwapUint32(&c.closedOnce, 0, 1) {
		return nil
	}
	c.http.CloseIdleConnections()
	return nil
}

// --------------------------------------------------------------------
// Image operations - delegated to internal/api
// --------------------------------------------------------------------

// UploadImage uploads an image read from r under the given file name.
// The backend decides the accepted extensions (png, jpg, jpeg, bmp, tiff).
func (c *Client) UploadImage(ctx context.Context, filename string, r io.Reader) (Result, error) {
	start := time.Now()
	res, err := api.UploadImage(ctx, c.http, c.baseURL, filename, r)
	observe(opUpload, start, err)
	return res, err
}

// UploadFile uploads the image stored at path.
func (c *Client) UploadFile(ctx context.Context, path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return c.UploadImage(ctx, filepath.Base(path), f)
}

// ProcessImage runs the processing pipeline on an uploaded image.
func (c *Client) ProcessImage(ctx context.Context, imageID string) (Result, error) {
	start := time.Now()
	res, err := api.ProcessImage(ctx, c.http, c.baseURL, imageID)
	observe(opProcess, start, err)
	return res, err
}

// ClassifyImage runs only the defect classifier on an uploaded image.
func (c *Client) ClassifyImage(ctx context.Context, imageID string) (Result, error) {
	start := time.Now()
	res, err := api.ClassifyImage(ctx, c.http, c.baseURL, imageID)
	observe(opClassify, start, err)
	return res, err
}

// GetResults retrieves stored processing results.
func (c *Client) GetResults(ctx context.Context, imageID string) (Result, error) {
	start := time.Now()
	res, err := api.GetResults(ctx, c.http, c.baseURL, imageID)
	observe(opResults, start, err)
	return res, err
}

// GetDemoResults processes the backend's bundled sample image.
func (c *Client) GetDemoResults(ctx context.Context) (Result, error) {
	start := time.Now()
	res, err := api.GetDemoResults(ctx, c.http, c.baseURL)
	observe(opDemo, start, err)
	return res, err
}

// HealthCheck reports backend status. It never fails; check Reachable on the
// returned value.
func (c *Client) HealthCheck(ctx context.Context) HealthStatus {
	start := time.Now()
	hs := api.HealthCheck(ctx, c.http, c.baseURL)
	observeHealth(start, hs)
	return hs
}
