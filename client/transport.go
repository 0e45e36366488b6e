package client

import (
	"io"
	"net/http"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Naufalpc11/Wood-Classification/client/internal/errors"
)

const requestIDHeader = "X-Request-ID"

// requestIDTransport tags every outgoing request with a unique X-Request-ID
// unless the caller already set one.
type requestIDTransport struct {
	base http.RoundTripper
}

func (t *requestIDTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get(requestIDHeader) != "" {
		return t.base.RoundTrip(req)
	}
	// Clone the request to avoid modifying the original
	cloned := req.Clone(req.Context())
	cloned.Header.Set(requestIDHeader, uuid.NewString())
	return t.base.RoundTrip(cloned)
}

func (t *requestIDTransport) CloseIdleConnections() { closeIdle(t.base) }

// closeIdle forwards to rt when it keeps idle connections. Every wrapper
// implements this so http.Client.CloseIdleConnections reaches the base.
func closeIdle(rt http.RoundTripper) {
	if ci, ok := rt.(interface{ CloseIdleConnections() }); ok {
		ci.CloseIdleConnections()
	}
}

type retryConfig struct {
	maxAttempts int
	baseBackoff time.Duration
	maxInterval time.Duration
}

// retryTransport re-sends a request on transport failures and recoverable
// statuses. Requests with a body that cannot be replayed are sent once.
type retryTransport struct {
	base http.RoundTripper
	cfg  retryConfig
}

func (t *retryTransport) CloseIdleConnections() { closeIdle(t.base) }

func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Body != nil && req.Body != http.NoBody && req.GetBody == nil {
		return t.base.RoundTrip(req)
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = t.cfg.baseBackoff
	exp.Multiplier = 2
	if t.cfg.maxInterval > 0 {
		exp.MaxInterval = t.cfg.maxInterval
	}
	exp.MaxElapsedTime = 0
	exp.Reset()
	policy := backoff.WithContext(backoff.WithMaxRetries(exp, uint64(t.cfg.maxAttempts-1)), req.Context())

	for attempt := 1; ; attempt++ {
		r := req
		if attempt > 1 && req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return nil, err
			}
			r = req.Clone(req.Context())
			r.Body = body
		}

		resp, err := t.base.RoundTrip(r)
		if !shouldRetry(req, resp, err) {
			return resp, err
		}

		wait := policy.NextBackOff()
		if wait == backoff.Stop {
			return resp, err
		}
		if resp != nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
		}

		retriesTotal.WithLabelValues(req.Method).Inc()
		ev := log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Int("attempt", attempt).Dur("wait", wait)
		if err != nil {
			ev = ev.Err(err)
		} else {
			ev = ev.Int("status_code", resp.StatusCode)
		}
		ev.Msg("retrying request")

		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-req.Context().Done():
			timer.Stop()
			return nil, req.Context().Err()
		}
	}
}

func shouldRetry(req *http.Request, resp *http.Response, err error) bool {
	if err != nil {
		return req.Context().Err() == nil
	}
	return resp.StatusCode >= 400 && errors.Classify(resp.StatusCode) == errors.Recoverable
}
