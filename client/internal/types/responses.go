package types

// ------------------------------
// Typed Views
// ------------------------------
//
// These mirror the Wood Knots Detection API. They are optional: every call
// returns a Result and callers decode into whichever view they need.

// Dimensions is an image size in pixels.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// UploadResponse is the body of POST /upload.
type UploadResponse struct {
	Success    bool       `json:"success"`
	ImageID    string     `json:"image_id"`
	Filename   string     `json:"filename"`
	Filepath   string     `json:"filepath,omitempty"`
	Dimensions Dimensions `json:"dimensions"`
	Preview    DataURI    `json:"preview,omitempty"`
}

// ModelInfo describes the classifier that produced a Classification.
type ModelInfo struct {
	Name         string   `json:"name"`
	Accuracy     *float64 `json:"accuracy"`
	FeaturesUsed []string `json:"features_used"`
}

// Classification is the defect verdict for one image.
type Classification struct {
	ClassName  string     `json:"class_name"`
	Confidence float64    `json:"confidence"`
	Prediction int        `json:"prediction"`
	ModelInfo  *ModelInfo `json:"model_info,omitempty"`
}

// PipelineStep is one stage of the backend's processing pipeline.
type PipelineStep struct {
	Step        int            `json:"step"`
	Name        string         `json:"name"`
	Technique   string         `json:"technique"`
	Description string         `json:"description"`
	Image       DataURI        `json:"image"`
	Parameters  map[string]any `json:"parameters,omitempty"`
}

// Detection is a single detected knot.
type Detection struct {
	ID          int       `json:"id"`
	Type        string    `json:"type"`
	Confidence  float64   `json:"confidence"`
	BBox        []float64 `json:"bbox"`
	Area        float64   `json:"area"`
	Circularity float64   `json:"circularity"`
	AspectRatio float64   `json:"aspect_ratio"`
}

// DetectionResults summarises all detections and the annotated image.
type DetectionResults struct {
	KnotsDetected int         `json:"knots_detected"`
	Detections    []Detection `json:"detections"`
	ResultImage   DataURI     `json:"result_image"`
}

// ShapeFeatures aggregates shape statistics over all detections.
type ShapeFeatures struct {
	TotalKnots     int     `json:"total_knots"`
	TotalArea      float64 `json:"total_area"`
	AvgCircularity float64 `json:"avg_circularity"`
	AvgAspectRatio float64 `json:"avg_aspect_ratio"`
}

// Features holds extracted feature groups.
type Features struct {
	Shape ShapeFeatures `json:"shape"`
}

// ProcessResponse is the body of POST /process/{imageId}.
type ProcessResponse struct {
	Success          bool             `json:"success"`
	ImageID          string           `json:"image_id"`
	Classification   Classification   `json:"classification"`
	PipelineSteps    []PipelineStep   `json:"pipeline_steps"`
	Features         Features         `json:"features"`
	DetectionResults DetectionResults `json:"detection_results"`
	ImageDimensions  Dimensions       `json:"image_dimensions"`
}

// ClassifyResponse is the body of POST /classify/{imageId}.
type ClassifyResponse struct {
	Success bool   `json:"success"`
	ImageID string `json:"image_id"`
	Classification
	Features map[string]any `json:"features,omitempty"`
}
