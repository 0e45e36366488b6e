package mockbackend

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// Pipeline holds the tunables of the knot detection pipeline.
type Pipeline struct {
	MaxDim        int
	Contrast      float64 // percentage passed to imaging.AdjustContrast
	BlurSigma     float64
	Threshold     uint8 // pixels darker than this become foreground
	MorphKernel   int
	MinArea       int
	DefectMinArea int // a knot larger than this marks the board defective
}

// DefaultPipeline returns the parameters used by the Flask backend.
func DefaultPipeline() Pipeline {
	return Pipeline{
		MaxDim:        512,
		Contrast:      20,
		BlurSigma:     1.1,
		Threshold:     86,
		MorphKernel:   4,
		MinArea:       200,
		DefectMinArea: 500,
	}
}

type step struct {
	Step        int            `json:"step"`
	Name        string         `json:"name"`
	Technique   string         `json:"technique"`
	Description string         `json:"description"`
	Image       string         `json:"image"`
	Parameters  map[string]any `json:"parameters"`
}

type detection struct {
	ID          int     `json:"id"`
	Type        string  `json:"type"`
	Confidence  float64 `json:"confidence"`
	BBox        []int   `json:"bbox"`
	Area        int     `json:"area"`
	Circularity float64 `json:"circularity"`
	AspectRatio float64 `json:"aspect_ratio"`
}

type modelInfo struct {
	Name         string   `json:"name"`
	Accuracy     *float64 `json:"accuracy"`
	FeaturesUsed []string `json:"features_used"`
}

type classification struct {
	ClassName  string    `json:"class_name"`
	Confidence float64   `json:"confidence"`
	Prediction int       `json:"prediction"`
	ModelInfo  modelInfo `json:"model_info"`
}

type shapeSummary struct {
	TotalKnots     int     `json:"total_knots"`
	TotalArea      int     `json:"total_area"`
	AvgCircularity float64 `json:"avg_circularity"`
	AvgAspectRatio float64 `json:"avg_aspect_ratio"`
}

type detectionResults struct {
	KnotsDetected int         `json:"knots_detected"`
	Detections    []detection `json:"detections"`
	ResultImage   string      `json:"result_image"`
}

type dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type processResult struct {
	Success          bool                    `json:"success"`
	ImageID          string                  `json:"image_id"`
	Classification   classification          `json:"classification"`
	PipelineSteps    []step                  `json:"pipeline_steps"`
	Features         map[string]shapeSummary `json:"features"`
	DetectionResults detectionResults        `json:"detection_results"`
	ImageDimensions  dimensions              `json:"image_dimensions"`
}

// Run decodes data and executes the full pipeline.
func (p Pipeline) Run(imageID string, data []byte) (*processResult, error) {
	src, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	ob := src.Bounds()
	steps := make([]step, 0, 7)
	add := func(name, technique, desc string, img image.Image, params map[string]any) error {
		uri, err := jpegDataURI(img)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		steps = append(steps, step{
			Step: len(steps) + 1, Name: name, Technique: technique,
			Description: desc, Image: uri, Parameters: params,
		})
		return nil
	}

	if err := add("Original Image", "Input", "Uploaded image.", src,
		map[string]any{"width": ob.Dx(), "height": ob.Dy()}); err != nil {
		return nil, err
	}

	resized := imaging.Clone(src)
	if ob.Dx() > p.MaxDim || ob.Dy() > p.MaxDim {
		resized = imaging.Fit(src, p.MaxDim, p.MaxDim, imaging.Lanczos)
	}
	rb := resized.Bounds()
	if err := add("Image Resizing", "Aspect Ratio Preserve", "Resize to a bounded size for faster processing.", resized,
		map[string]any{"max_dim": p.MaxDim, "new_width": rb.Dx(), "new_height": rb.Dy()}); err != nil {
		return nil, err
	}

	gray := imaging.Grayscale(resized)
	if err := add("Grayscale Conversion", "Color Space Transformation", "Convert to grayscale to focus on intensity.", gray,
		map[string]any{"method": "luminance"}); err != nil {
		return nil, err
	}

	enhanced := imaging.AdjustContrast(gray, p.Contrast)
	if err := add("Contrast Enhancement", "Linear Contrast Stretch", "Increase contrast so knots stand out from the grain.", enhanced,
		map[string]any{"percentage": p.Contrast}); err != nil {
		return nil, err
	}

	blurred := imaging.Blur(enhanced, p.BlurSigma)
	if err := add("Gaussian Blur", "Noise Reduction", "Smooth the image to suppress wood grain texture.", blurred,
		map[string]any{"sigma": p.BlurSigma}); err != nil {
		return nil, err
	}

	mask := threshold(blurred, p.Threshold)
	if err := add("Binary Thresholding", "Segmentation", "Separate dark knots from the background.", mask.image(),
		map[string]any{"threshold_value": p.Threshold, "method": "THRESH_BINARY_INV"}); err != nil {
		return nil, err
	}

	opened := mask.open(p.MorphKernel)
	if err := add("Morphology Opening", "Noise Removal", "Remove small specks with erosion followed by dilation.", opened.image(),
		map[string]any{"kernel_size": p.MorphKernel, "operation": "MORPH_OPEN"}); err != nil {
		return nil, err
	}

	blobs := opened.components(p.MinArea)
	annotated, err := jpegDataURI(drawBoxes(gray, blobs))
	if err != nil {
		return nil, fmt.Errorf("result image: %w", err)
	}

	res := &processResult{
		Success:         true,
		ImageID:         imageID,
		PipelineSteps:   steps,
		ImageDimensions: dimensions{Width: rb.Dx(), Height: rb.Dy()},
		DetectionResults: detectionResults{
			KnotsDetected: len(blobs),
			Detections:    make([]detection, 0, len(blobs)),
			ResultImage:   annotated,
		},
	}
	var summary shapeSummary
	defect := false
	for i, b := range blobs {
		res.DetectionResults.Detections = append(res.DetectionResults.Detections, detection{
			ID:          i + 1,
			Type:        "Wood Knot",
			Confidence:  round3(0.85 + b.circularity*0.1),
			BBox:        []int{b.box.Min.X, b.box.Min.Y, b.box.Dx(), b.box.Dy()},
			Area:        b.area,
			Circularity: b.circularity,
			AspectRatio: b.aspectRatio,
		})
		summary.TotalArea += b.area
		summary.AvgCircularity += b.circularity
		summary.AvgAspectRatio += b.aspectRatio
		if b.area > p.DefectMinArea {
			defect = true
		}
	}
	summary.TotalKnots = len(blobs)
	if n := float64(len(blobs)); n > 0 {
		summary.AvgCircularity = round3(summary.AvgCircularity / n)
		summary.AvgAspectRatio = round3(summary.AvgAspectRatio / n)
	}
	res.Features = map[string]shapeSummary{"shape": summary}
	res.Classification = ruleBased(defect)
	return res, nil
}

func ruleBased(defect bool) classification {
	c := classification{
		ClassName:  "Tidak Cacat",
		Confidence: 0.75,
		ModelInfo: modelInfo{
			Name:         "Rule-based (fallback)",
			FeaturesUsed: []string{"knot_detection"},
		},
	}
	if defect {
		c.ClassName = "Cacat"
		c.Prediction = 1
	}
	return c
}

// binary is a foreground mask in row-major order.
type binary struct {
	w, h int
	px   []bool
}

func threshold(img *image.NRGBA, t uint8) *binary {
	b := img.Bounds()
	m := &binary{w: b.Dx(), h: b.Dy(), px: make([]bool, b.Dx()*b.Dy())}
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			// grayscale input: R == G == B
			m.px[y*m.w+x] = img.Pix[y*img.Stride+x*4] < t
		}
	}
	return m
}

func (m *binary) at(x, y int) bool {
	if x < 0 || y < 0 || x >= m.w || y >= m.h {
		return false
	}
	return m.px[y*m.w+x]
}

// morph applies a k*k erosion (all) or dilation (any). Dilation uses the
// reflected window so that opening does not shift shapes for even k.
func (m *binary) morph(k int, all bool) *binary {
	out := &binary{w: m.w, h: m.h, px: make([]bool, len(m.px))}
	lo, hi := -(k-1)/2, k/2
	if !all {
		lo, hi = -hi, -lo
	}
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			v := all
			for dy := lo; dy <= hi && v == all; dy++ {
				for dx := lo; dx <= hi; dx++ {
					if m.at(x+dx, y+dy) != all {
						v = !all
						break
					}
				}
			}
			out.px[y*m.w+x] = v
		}
	}
	return out
}

func (m *binary) open(k int) *binary {
	if k <= 1 {
		return m
	}
	return m.morph(k, true).morph(k, false)
}

func (m *binary) image() *image.Gray {
	g := image.NewGray(image.Rect(0, 0, m.w, m.h))
	for i, on := range m.px {
		if on {
			g.Pix[i] = 255
		}
	}
	return g
}

type blob struct {
	box         image.Rectangle
	area        int
	perimeter   int
	circularity float64
	aspectRatio float64
}

// components labels 4-connected foreground regions and keeps those with at
// least minArea pixels.
func (m *binary) components(minArea int) []blob {
	seen := make([]bool, len(m.px))
	var out []blob
	stack := make([]int, 0, 64)
	for start, on := range m.px {
		if !on || seen[start] {
			continue
		}
		seen[start] = true
		stack = append(stack[:0], start)
		b := blob{box: image.Rectangle{Min: image.Pt(m.w, m.h)}}
		for len(stack) > 0 {
			i := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			x, y := i%m.w, i/m.w
			b.area++
			if x < b.box.Min.X {
				b.box.Min.X = x
			}
			if y < b.box.Min.Y {
				b.box.Min.Y = y
			}
			if x+1 > b.box.Max.X {
				b.box.Max.X = x + 1
			}
			if y+1 > b.box.Max.Y {
				b.box.Max.Y = y + 1
			}
			for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
				nx, ny := x+d[0], y+d[1]
				if !m.at(nx, ny) {
					b.perimeter++
					continue
				}
				j := ny*m.w + nx
				if !seen[j] {
					seen[j] = true
					stack = append(stack, j)
				}
			}
		}
		if b.area < minArea {
			continue
		}
		// Pixel-edge perimeters overestimate round shapes by about 4/pi.
		p := float64(b.perimeter) * math.Pi / 4
		b.circularity = round3(math.Min(1, 4*math.Pi*float64(b.area)/(p*p)))
		b.aspectRatio = round3(float64(b.box.Dx()) / float64(b.box.Dy()))
		out = append(out, b)
	}
	return out
}

func drawBoxes(gray *image.NRGBA, blobs []blob) *image.NRGBA {
	out := imaging.Clone(gray)
	green := color.NRGBA{G: 255, A: 255}
	for _, b := range blobs {
		r := b.box
		for x := r.Min.X; x < r.Max.X; x++ {
			out.Set(x, r.Min.Y, green)
			out.Set(x, r.Max.Y-1, green)
		}
		for y := r.Min.Y; y < r.Max.Y; y++ {
			out.Set(r.Min.X, y, green)
			out.Set(r.Max.X-1, y, green)
		}
	}
	return out
}

func jpegDataURI(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return "", err
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
