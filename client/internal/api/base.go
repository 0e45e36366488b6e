package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/Naufalpc11/Wood-Classification/client/internal/errors"
	"github.com/Naufalpc11/Wood-Classification/client/internal/types"
)

// HTTPClient interface for dependency injection
type HTTPClient = types.HTTPClient

// Endpoint describes one backend route: its operation name, the sentinel its
// failures unwrap to, and where the backend puts the failure message.
type Endpoint struct {
	Op         string
	Kind       error
	ErrorField string
	Fallback   string
}

// The /demo route reports failures under "error"; every other route uses
// "message".
var (
	UploadEndpoint   = Endpoint{Op: "upload", Kind: errors.ErrUpload, ErrorField: "message", Fallback: "Upload failed"}
	ProcessEndpoint  = Endpoint{Op: "process", Kind: errors.ErrProcessing, ErrorField: "message", Fallback: "Processing failed"}
	ResultsEndpoint  = Endpoint{Op: "results", Kind: errors.ErrResults, ErrorField: "message", Fallback: "Failed to get results"}
	DemoEndpoint     = Endpoint{Op: "demo", Kind: errors.ErrDemo, ErrorField: "error", Fallback: "Demo processing failed"}
	ClassifyEndpoint = Endpoint{Op: "classify", Kind: errors.ErrClassify, ErrorField: "message", Fallback: "Classification failed"}
)

// endpointURL joins baseURL and the escaped path segments with single slashes.
func endpointURL(baseURL string, segments ...string) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(baseURL, "/"))
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}

// roundTrip sends req and maps the response onto ep's error contract:
// transport failure, non-2xx (APIError), invalid JSON (DecodeError), or the
// body verbatim.
func roundTrip(httpClient HTTPClient, req *http.Request, ep Endpoint) (types.Result, error) {
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, errors.NewTransportError(ep.Op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewTransportError(ep.Op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.NewAPIError(ep.Op, ep.Kind, resp.StatusCode, body, ep.ErrorField, ep.Fallback)
	}

	var probe json.RawMessage
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil, errors.NewDecodeError(ep.Op, resp.StatusCode, body, err)
	}
	return types.Result(body), nil
}
