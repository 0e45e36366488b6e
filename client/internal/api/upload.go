package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"
	"strings"

	"github.com/Naufalpc11/Wood-Classification/client/internal/errors"
	"github.com/Naufalpc11/Wood-Classification/client/internal/types"
)

// UploadFieldName is the multipart field the backend reads the file from.
const UploadFieldName = "image"

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// UploadImage posts the content of r as a multipart form with the file under
// the "image" field.
func UploadImage(ctx context.Context, httpClient HTTPClient, baseURL, filename string, r io.Reader) (types.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if filename == "" {
		return nil, errors.NewInputError(UploadEndpoint.Op, "filename is required")
	}
	if r == nil {
		return nil, errors.NewInputError(UploadEndpoint.Op, "image reader is nil")
	}

	// Buffered so the request body can be replayed by a retrying transport.
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreatePart(fileHeader(filename))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("upload: read image: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpointURL(baseURL, "upload"), bytes.NewReader(buf.Bytes()))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())

	return roundTrip(httpClient, httpReq, UploadEndpoint)
}

func fileHeader(filename string) textproto.MIMEHeader {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		UploadFieldName, quoteEscaper.Replace(filename)))
	ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename)))
	if ct == "" {
		ct = "application/octet-stream"
	}
	h.Set("Content-Type", ct)
	return h
}
