package api

import (
	"context"
	"net/http"

	"github.com/Naufalpc11/Wood-Classification/client/internal/errors"
	"github.com/Naufalpc11/Wood-Classification/client/internal/types"
)

// ProcessImage runs the backend pipeline on an uploaded image.
func ProcessImage(ctx context.Context, httpClient HTTPClient, baseURL, imageID string) (types.Result, error) {
	return postEmptyJSON(ctx, httpClient, baseURL, ProcessEndpoint, "process", imageID)
}

// ClassifyImage runs only the classifier on an uploaded image.
func ClassifyImage(ctx context.Context, httpClient HTTPClient, baseURL, imageID string) (types.Result, error) {
	return postEmptyJSON(ctx, httpClient, baseURL, ClassifyEndpoint, "classify", imageID)
}

// postEmptyJSON sends a body-less POST declared as JSON, as the backend's
// process-style routes expect.
func postEmptyJSON(ctx context.Context, httpClient HTTPClient, baseURL string, ep Endpoint, route, imageID string) (types.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !types.ValidImageID(imageID) {
		return nil, errors.NewInputError(ep.Op, "image id is required")
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpointURL(baseURL, route, imageID), http.NoBody)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	return roundTrip(httpClient, httpReq, ep)
}
