package client

import (
	"github.com/Naufalpc11/Wood-Classification/client/internal/errors"
)

// Re-export SDK errors so callers compare against a single symbol.
var (
	ErrUpload     = errors.ErrUpload
	ErrProcessing = errors.ErrProcessing
	ErrResults    = errors.ErrResults
	ErrDemo       = errors.ErrDemo
	ErrClassify   = errors.ErrClassify

	ErrMalformedResponse = errors.ErrMalformedResponse
	ErrInvalidInput      = errors.ErrInvalidInput
)

type (
	// APIError is returned for non-2xx responses; Error() is the backend's message.
	APIError = errors.APIError
	// TransportError is returned when no response was received.
	TransportError = errors.TransportError
)

// IsRecoverable reports whether retrying the failed call may succeed.
func IsRecoverable(err error) bool { return errors.IsRecoverable(err) }
