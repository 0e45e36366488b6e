package types

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// DataURI is an inline image as produced by the backend, e.g.
// "data:image/jpeg;base64,/9j/4AAQ...".
type DataURI string

// Decode splits the URI into its media type and decoded payload. Only
// base64 payloads are supported.
func (d DataURI) Decode() (string, []byte, error) {
	s := string(d)
	if !strings.HasPrefix(s, "data:") {
		return "", nil, fmt.Errorf("data uri: missing data: scheme")
	}
	header, payload, ok := strings.Cut(s[len("data:"):], ",")
	if !ok {
		return "", nil, fmt.Errorf("data uri: missing payload separator")
	}
	mediaType, isBase64 := strings.CutSuffix(header, ";base64")
	if !isBase64 {
		return "", nil, fmt.Errorf("data uri: only base64 payloads are supported")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("data uri: %w", err)
	}
	if mediaType == "" {
		mediaType = "text/plain"
	}
	return mediaType, data, nil
}

// Extension returns a file extension for the media type, without the dot.
func (d DataURI) Extension() string {
	header, _, _ := strings.Cut(strings.TrimPrefix(string(d), "data:"), ",")
	mediaType, _, _ := strings.Cut(header, ";")
	switch mediaType {
	case "image/jpeg", "image/jpg":
		return "jpg"
	case "image/png":
		return "png"
	case "image/bmp":
		return "bmp"
	case "image/tiff":
		return "tiff"
	default:
		return "bin"
	}
}

// Empty reports whether no URI is present.
func (d DataURI) Empty() bool { return d == "" }
