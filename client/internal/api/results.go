package api

import (
	"context"
	"net/http"

	"github.com/Naufalpc11/Wood-Classification/client/internal/errors"
	"github.com/Naufalpc11/Wood-Classification/client/internal/types"
)

// GetResults fetches stored processing results for an image.
func GetResults(ctx context.Context, httpClient HTTPClient, baseURL, imageID string) (types.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !types.ValidImageID(imageID) {
		return nil, errors.NewInputError(ResultsEndpoint.Op, "image id is required")
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpointURL(baseURL, "results", imageID), nil)
	if err != nil {
		return nil, err
	}
	return roundTrip(httpClient, httpReq, ResultsEndpoint)
}

// GetDemoResults runs the backend pipeline on its bundled sample image.
func GetDemoResults(ctx context.Context, httpClient HTTPClient, baseURL string) (types.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpointURL(baseURL, "demo"), nil)
	if err != nil {
		return nil, err
	}
	return roundTrip(httpClient, httpReq, DemoEndpoint)
}
