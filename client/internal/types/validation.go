package types

import (
	"net/http"
	"strings"
)

// ------------------------------
// Shared Interfaces
// ------------------------------

// HTTPClient interface for dependency injection
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ------------------------------
// Input checks
// ------------------------------

// ValidImageID reports whether id can be sent as an image handle.
// The backend is the authority on existence; this only rejects values that
// cannot form a path segment.
func ValidImageID(id string) bool {
	return strings.TrimSpace(id) != ""
}
