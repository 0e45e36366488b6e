// Package errors provides the error taxonomy of the client SDK.
// Failures are split into API errors (non-2xx responses), transport errors
// (no response at all) and decode errors (a 2xx body that is not JSON), and
// each is classified so retry policies can tell transient from permanent.
package errors

import (
	"context"
	stderrors "errors"
	"fmt"
)

// ErrorCategory determines how errors should be handled by retry logic.
type ErrorCategory int

const (
	// Recoverable errors may succeed when retried with backoff.
	// Examples: 500 Internal Server Error, 429, connection resets.
	Recoverable ErrorCategory = iota

	// Irrecoverable errors should fail immediately without retry.
	// Examples: 400 Bad Request, 404 Not Found, invalid input.
	Irrecoverable
)

// String returns a human-readable representation of the error category.
func (c ErrorCategory) String() string {
	switch c {
	case Recoverable:
		return "Recoverable"
	case Irrecoverable:
		return "Irrecoverable"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

// Operation sentinels. Every *APIError unwraps to exactly one of them.
var (
	ErrUpload     = stderrors.New("upload error")
	ErrProcessing = stderrors.New("processing error")
	ErrResults    = stderrors.New("results error")
	ErrDemo       = stderrors.New("demo error")
	ErrClassify   = stderrors.New("classification error")
)

// ErrMalformedResponse matches a successful response whose body is not valid JSON.
var ErrMalformedResponse = stderrors.New("malformed response")

// ErrInvalidInput matches arguments rejected before any request is sent.
var ErrInvalidInput = stderrors.New("invalid input")

// APIError is a non-2xx response from the backend.
//
// Error returns only the human-readable message taken from the response body
// (or the operation's fallback) so callers can render it as is.
type APIError struct {
	Op         string
	Kind       error
	StatusCode int
	Message    string
	Body       []byte
	Category   ErrorCategory
}

// Error implements the error interface.
func (e *APIError) Error() string { return e.Message }

// Unwrap exposes the operation sentinel for errors.Is.
func (e *APIError) Unwrap() error { return e.Kind }

// TransportError wraps a failure that produced no HTTP response.
type TransportError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s network error: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error chain compatibility.
func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError reports a 2xx response whose body could not be parsed.
type DecodeError struct {
	Op         string
	StatusCode int
	Body       []byte
	Err        error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Op, ErrMalformedResponse, e.Err)
}

// Is makes errors.Is(err, ErrMalformedResponse) hold for every DecodeError.
func (e *DecodeError) Is(target error) bool { return target == ErrMalformedResponse }

// Unwrap returns the underlying parse error.
func (e *DecodeError) Unwrap() error { return e.Err }

// IsRecoverable reports whether err is worth retrying. Cancellation by the
// caller is never recoverable.
func IsRecoverable(err error) bool {
	if err == nil {
		return false
	}
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr.Category == Recoverable
	}
	var tErr *TransportError
	return stderrors.As(err, &tErr)
}

// IsIrrecoverable returns true if the error should not be retried.
func IsIrrecoverable(err error) bool {
	return err != nil && !IsRecoverable(err)
}
