package errors

import (
	"encoding/json"
	"fmt"
)

// Classify maps HTTP status codes to error categories:
// - 4xx client errors (except 408 and 429) are irrecoverable
// - 5xx server errors are recoverable
// - anything else is treated as recoverable
func Classify(statusCode int) ErrorCategory {
	switch {
	case statusCode >= 400 && statusCode < 500:
		switch statusCode {
		case 408, 429:
			return Recoverable
		default:
			return Irrecoverable
		}
	case statusCode >= 500 && statusCode < 600:
		return Recoverable
	default:
		return Recoverable
	}
}

// NewAPIError builds the error for a non-2xx response. The message is read
// from the string field named field in the JSON body; fallback is used when
// the body is not a JSON object or the field is missing, empty or not a string.
func NewAPIError(op string, kind error, statusCode int, body []byte, field, fallback string) *APIError {
	return &APIError{
		Op:         op,
		Kind:       kind,
		StatusCode: statusCode,
		Message:    ExtractMessage(body, field, fallback),
		Body:       body,
		Category:   Classify(statusCode),
	}
}

// ExtractMessage returns body[field] when it is a non-empty string.
func ExtractMessage(body []byte, field, fallback string) string {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fallback
	}
	raw, ok := envelope[field]
	if !ok {
		return fallback
	}
	var msg string
	if err := json.Unmarshal(raw, &msg); err != nil || msg == "" {
		return fallback
	}
	return msg
}

// NewTransportError wraps a network-level failure for op.
func NewTransportError(op string, err error) *TransportError {
	return &TransportError{Op: op, Err: err}
}

// NewDecodeError reports that a 2xx body for op is not valid JSON.
func NewDecodeError(op string, statusCode int, body []byte, err error) *DecodeError {
	if err == nil {
		err = fmt.Errorf("invalid JSON (%d bytes)", len(body))
	}
	return &DecodeError{Op: op, StatusCode: statusCode, Body: body, Err: err}
}

// NewInputError reports an argument rejected before sending a request.
func NewInputError(op, reason string) error {
	return fmt.Errorf("%s: %w: %s", op, ErrInvalidInput, reason)
}
