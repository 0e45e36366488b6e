package mockbackend

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

var allowedExtensions = map[string]bool{
	"png": true, "jpg": true, "jpeg": true, "bmp": true, "tiff": true,
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "healthy",
		"message": "Wood Knots Detection API is running",
	})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes)
	file, header, err := r.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		writeError(w, http.StatusBadRequest, "No image file provided")
		return
	}
	defer file.Close()

	filename := secureFilename(header.Filename)
	if header.Filename == "" || filename == "" {
		writeError(w, http.StatusBadRequest, "No file selected")
		return
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if !allowedExtensions[ext] {
		writeError(w, http.StatusBadRequest, "File type not allowed")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "No image file provided")
		return
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "Invalid image",
			"message": "Uploaded file is not a readable image",
		})
		return
	}

	id := uuid.NewString()
	s.store.put(id, sample{name: filename, ext: ext, data: data})
	log.Info().Str("image_id", id).Str("filename", filename).Int("bytes", len(data)).Msg("image uploaded")

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"image_id":   id,
		"filename":   filename,
		"filepath":   "uploads/" + id + "." + ext,
		"dimensions": dimensions{Width: img.Bounds().Dx(), Height: img.Bounds().Dy()},
		"preview":    fmt.Sprintf("data:image/%s;base64,%s", ext, base64.StdEncoding.EncodeToString(data)),
	})
}

func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["imageId"]
	smp, ok := s.store.get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Image not found")
		return
	}
	res, err := s.pipeline.Run(id, smp.data)
	if err != nil {
		log.Error().Err(err).Str("image_id", id).Msg("processing failed")
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "error": err.Error()})
		return
	}
	body, err := json.Marshal(res)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "error": err.Error()})
		return
	}
	s.store.setResult(id, body)
	log.Info().Str("image_id", id).Int("knots", res.DetectionResults.KnotsDetected).
		Str("class", res.Classification.ClassName).Msg("image processed")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["imageId"]
	smp, ok := s.store.get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Image not found")
		return
	}
	res, err := s.pipeline.Run(id, smp.data)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "error": err.Error()})
		return
	}
	shape := res.Features["shape"]
	c := res.Classification
	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"image_id":   id,
		"class_name": c.ClassName,
		"confidence": c.Confidence,
		"prediction": c.Prediction,
		"model_info": c.ModelInfo,
		"features": map[string]any{
			"num_knots":        shape.TotalKnots,
			"total_area":       shape.TotalArea,
			"avg_circularity":  shape.AvgCircularity,
			"avg_aspect_ratio": shape.AvgAspectRatio,
		},
	})
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["imageId"]
	body, ok := s.store.result(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"error":   "Results not found",
			"message": "Process the image first",
		})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (s *Server) handleDemo(w http.ResponseWriter, _ *http.Request) {
	if s.demo == nil {
		writeError(w, http.StatusNotFound, "Demo image not available")
		return
	}
	res, err := s.pipeline.Run("demo", s.demo.data)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// secureFilename keeps the base name and drops characters outside
// [A-Za-z0-9._-].
func secureFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	return strings.Trim(b.String(), "._")
}
