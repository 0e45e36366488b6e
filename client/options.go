package client

// This file defines functional options that configure the Client during
// construction. Keeping them in a standalone file makes it easy to discover
// all available knobs at a glance.

import (
	"fmt"
	"net/http"
	"time"
)

// Option configures a Client during construction in New.
//
// Options are applied before the transport decorators are installed, so the
// request-ID, debug and retry wrappers always sit on top of whatever
// transport the options leave in place.
type Option func(*Client) error

// WithHTTPClient uses a copy of hc for all requests. The caller's client is
// not modified.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("http client must not be nil")
		}
		cp := *hc
		c.http = &cp
		return nil
	}
}

// WithHTTPTimeout sets the underlying http.Client Timeout used by the SDK.
//
// Prefer per-request context deadlines where possible; this timeout is a
// coarse safety net that bounds the total time spent on a single HTTP request.
// The value must be greater than zero.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.http.Timeout = d
		return nil
	}
}

// WithDebugLogging logs each request/response dump when enabled is true.
// Do not enable this option in production: dumps include full bodies.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		c.debug = c.debug || enabled
		return nil
	}
}

// WithRetry retries transport failures and recoverable statuses (408, 429,
// 5xx) with exponential backoff starting at baseBackoff. maxAttempts counts
// the first try; 1 disables retry.
func WithRetry(maxAttempts int, baseBackoff time.Duration) Option {
	return func(c *Client) error {
		if maxAttempts < 1 {
			return fmt.Errorf("retry attempts must be >= 1")
		}
		if baseBackoff <= 0 {
			return fmt.Errorf("retry backoff must be > 0")
		}
		c.retry.maxAttempts = maxAttempts
		c.retry.baseBackoff = baseBackoff
		return nil
	}
}
