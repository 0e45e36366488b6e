package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	apierrors "github.com/Naufalpc11/Wood-Classification/client/internal/errors"
)

func TestUploadImage_Success(t *testing.T) {
	t.Parallel()
	// Arrange
	body := `{"success":true,"image_id":"abc","filename":"knot.png","dimensions":{"width":2,"height":2}}`
	srv, base := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/api/upload" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			t.Errorf("expected multipart content type, got %q", r.Header.Get("Content-Type"))
		}
		f, hdr, err := r.FormFile("image")
		if err != nil {
			t.Errorf("missing image field: %v", err)
			return
		}
		defer func() { _ = f.Close() }()
		data, _ := io.ReadAll(f)
		if string(data) != "PNGDATA" || hdr.Filename != "knot.png" {
			t.Errorf("unexpected file %q %q", hdr.Filename, data)
		}
		if ct := hdr.Header.Get("Content-Type"); ct != "image/png" {
			t.Errorf("unexpected part content type %q", ct)
		}
		respond(http.StatusOK, body)(w, r)
	}))

	// Act
	res, err := UploadImage(context.Background(), srv.Client(), base, "knot.png", strings.NewReader("PNGDATA"))

	// Assert
	if err != nil {
		t.Fatalf("UploadImage error: %v", err)
	}
	if res.String() != body {
		t.Fatalf("body not passed through: %s", res)
	}
}

func TestUploadImage_ErrorMessageFromBody(t *testing.T) {
	t.Parallel()
	srv, base := newBackend(t, respond(http.StatusBadRequest, `{"message":"File too large"}`))
	_, err := UploadImage(context.Background(), srv.Client(), base, "a.png", strings.NewReader("x"))
	if err == nil || err.Error() != "File too large" {
		t.Fatalf("unexpected error: %v", err)
	}
	if !errors.Is(err, apierrors.ErrUpload) {
		t.Fatalf("expected ErrUpload, got %v", err)
	}
}

func TestUploadImage_DefaultMessage(t *testing.T) {
	t.Parallel()
	// The Flask backend reports upload failures under "error", which the
	// upload contract does not read.
	srv, base := newBackend(t, respond(http.StatusBadRequest, `{"error":"File type not allowed"}`))
	_, err := UploadImage(context.Background(), srv.Client(), base, "a.gif", strings.NewReader("x"))
	if err == nil || err.Error() != "Upload failed" {
		t.Fatalf("unexpected error: %v", err)
	}
	var apiErr *apierrors.APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected APIError with 400, got %#v", err)
	}
	if string(apiErr.Body) != `{"error":"File type not allowed"}` {
		t.Fatalf("body not kept on error: %s", apiErr.Body)
	}
}

func TestUploadImage_InputValidation(t *testing.T) {
	t.Parallel()
	hc := &http.Client{Transport: &errRT{}}
	if _, err := UploadImage(context.Background(), hc, "http://example.com/api", "", strings.NewReader("x")); !errors.Is(err, apierrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for empty filename, got %v", err)
	}
	if _, err := UploadImage(context.Background(), hc, "http://example.com/api", "a.png", nil); !errors.Is(err, apierrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for nil reader, got %v", err)
	}
}

func TestUploadImage_FilenameEscaping(t *testing.T) {
	t.Parallel()
	srv, base := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hdr, err := r.FormFile("image")
		if err != nil {
			t.Errorf("form file: %v", err)
			return
		}
		if hdr.Filename != `we"ird.jpg` {
			t.Errorf("unexpected filename %q", hdr.Filename)
		}
		respond(http.StatusOK, `{}`)(w, r)
	}))
	if _, err := UploadImage(context.Background(), srv.Client(), base, `we"ird.jpg`, strings.NewReader("x")); err != nil {
		t.Fatalf("UploadImage error: %v", err)
	}
}
