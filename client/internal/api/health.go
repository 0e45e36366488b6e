package api

import (
	"context"
	"io"
	"net/http"

	"github.com/Naufalpc11/Wood-Classification/client/internal/types"
)

// HealthCheck asks the backend for its status. It never fails: when no JSON
// answer arrives the unreachable status is returned. The HTTP status code is
// not inspected, so a JSON error body from a failing backend is passed through.
func HealthCheck(ctx context.Context, httpClient HTTPClient, baseURL string) types.HealthStatus {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpointURL(baseURL, "health"), nil)
	if err != nil {
		return types.Unreachable()
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return types.Unreachable()
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return types.Unreachable()
	}
	return types.ParseHealth(body)
}
