package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"
)

func TestClassify(t *testing.T) {
	cases := map[int]ErrorCategory{
		400: Irrecoverable,
		404: Irrecoverable,
		408: Recoverable,
		429: Recoverable,
		500: Recoverable,
		503: Recoverable,
	}
	for code, want := range cases {
		if got := Classify(code); got != want {
			t.Errorf("Classify(%d) = %s, want %s", code, got, want)
		}
	}
}

func TestExtractMessage(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
		want  string
	}{
		{"message present", `{"message":"X"}`, "message", "X"},
		{"error field", `{"error":"boom","message":"ignored"}`, "error", "boom"},
		{"field missing", `{"error":"Image not found"}`, "message", "fallback"},
		{"empty string", `{"message":""}`, "message", "fallback"},
		{"non-string", `{"message":42}`, "message", "fallback"},
		{"not json", `<html>oops</html>`, "message", "fallback"},
		{"array body", `["message"]`, "message", "fallback"},
		{"empty body", ``, "message", "fallback"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractMessage([]byte(tc.body), tc.field, "fallback"); got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}

func TestAPIError_UnwrapsToKind(t *testing.T) {
	err := error(NewAPIError("upload", ErrUpload, 400, []byte(`{"message":"bad file"}`), "message", "Upload failed"))
	if err.Error() != "bad file" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if !stderrors.Is(err, ErrUpload) {
		t.Fatal("expected errors.Is(err, ErrUpload)")
	}
	if stderrors.Is(err, ErrDemo) {
		t.Fatal("upload error must not match ErrDemo")
	}
	wrapped := fmt.Errorf("ui: %w", err)
	var apiErr *APIError
	if !stderrors.As(wrapped, &apiErr) || apiErr.StatusCode != 400 {
		t.Fatalf("errors.As failed: %+v", apiErr)
	}
}

func TestDecodeError_MatchesSentinel(t *testing.T) {
	err := NewDecodeError("results", 200, []byte("{bad"), nil)
	if !stderrors.Is(err, ErrMalformedResponse) {
		t.Fatal("expected ErrMalformedResponse")
	}
}

func TestIsRecoverable(t *testing.T) {
	if !IsRecoverable(NewTransportError("health", fmt.Errorf("connection refused"))) {
		t.Error("transport errors are recoverable")
	}
	if IsRecoverable(NewTransportError("health", context.Canceled)) {
		t.Error("cancellation is not recoverable")
	}
	if !IsRecoverable(NewAPIError("process", ErrProcessing, 503, nil, "message", "x")) {
		t.Error("503 is recoverable")
	}
	if !IsIrrecoverable(NewAPIError("process", ErrProcessing, 404, nil, "message", "x")) {
		t.Error("404 is irrecoverable")
	}
	if IsRecoverable(NewInputError("process", "empty image id")) {
		t.Error("input errors are not recoverable")
	}
	if IsRecoverable(nil) || IsIrrecoverable(nil) {
		t.Error("nil is neither")
	}
}

func TestErrorCategory_String(t *testing.T) {
	if Recoverable.String() != "Recoverable" || Irrecoverable.String() != "Irrecoverable" {
		t.Fatal("unexpected category names")
	}
	if ErrorCategory(7).String() != "Unknown(7)" {
		t.Fatal("unexpected unknown category name")
	}
}
