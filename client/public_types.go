package client

import "github.com/Naufalpc11/Wood-Classification/client/internal/types"

// Public type aliases so SDK consumers can import only the client package.
type (
	Result       = types.Result
	HealthStatus = types.HealthStatus
	DataURI      = types.DataURI

	// Typed views of backend bodies
	UploadResponse   = types.UploadResponse
	ProcessResponse  = types.ProcessResponse
	ClassifyResponse = types.ClassifyResponse
	Classification   = types.Classification
	PipelineStep     = types.PipelineStep
	DetectionResults = types.DetectionResults
	Detection        = types.Detection
	Dimensions       = types.Dimensions
)

// Health values reported when the backend cannot be reached.
const (
	HealthStatusError          = types.HealthStatusError
	MessageBackendNotReachable = types.MessageBackendNotReachable
)
