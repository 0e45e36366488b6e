package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Naufalpc11/Wood-Classification/client"
	"github.com/Naufalpc11/Wood-Classification/mockbackend"
)

func newClient(t *testing.T) *client.Client {
	t.Helper()
	srv := httptest.NewServer(mockbackend.New().Router())
	t.Cleanup(srv.Close)
	c, err := client.New(srv.URL + "/api")
	if err != nil {
		t.Fatalf("client.New: %v", err)
	}
	return c
}

func callReq(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{Params: mcp.CallToolParams{Arguments: args}}
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if res == nil || len(res.Content) == 0 {
		t.Fatal("empty tool result")
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected TextContent, got %T", res.Content[0])
	}
	return tc.Text
}

func TestImageTools_UploadProcessResults(t *testing.T) {
	ih := NewImageHandler(newClient(t))
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "board.png")
	if err := os.WriteFile(path, mockbackend.DemoBoardPNG(), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := ih.handleUploadImage(ctx, callReq(map[string]any{"path": path}))
	if err != nil || res.IsError {
		t.Fatalf("upload_image: err=%v result=%v", err, res)
	}
	var up struct {
		ImageID string `json:"image_id"`
	}
	if err := json.Unmarshal([]byte(text(t, res)), &up); err != nil || up.ImageID == "" {
		t.Fatalf("unexpected upload payload: %v", err)
	}

	results := ih.imageTool("get_results", ih.client.GetResults)
	res, _ = results(ctx, callReq(map[string]any{"image_id": up.ImageID}))
	if !res.IsError {
		t.Fatal("results before processing should be a tool error")
	}

	process := ih.imageTool("process_image", ih.client.ProcessImage)
	res, _ = process(ctx, callReq(map[string]any{"image_id": up.ImageID}))
	if res.IsError {
		t.Fatalf("process_image failed: %s", text(t, res))
	}
	var pr client.ProcessResponse
	if err := json.Unmarshal([]byte(text(t, res)), &pr); err != nil {
		t.Fatalf("decode process: %v", err)
	}
	if len(pr.PipelineSteps) == 0 || pr.Classification.ClassName == "" {
		t.Fatalf("incomplete process payload: %+v", pr.Classification)
	}

	res, _ = results(ctx, callReq(map[string]any{"image_id": up.ImageID}))
	if res.IsError {
		t.Fatalf("get_results failed: %s", text(t, res))
	}

	classify := ih.imageTool("classify_image", ih.client.ClassifyImage)
	res, _ = classify(ctx, callReq(map[string]any{"image_id": up.ImageID}))
	if res.IsError {
		t.Fatalf("classify_image failed: %s", text(t, res))
	}
}

func TestImageTools_MissingArguments(t *testing.T) {
	ih := NewImageHandler(newClient(t))
	ctx := context.Background()

	res, err := ih.handleUploadImage(ctx, callReq(map[string]any{}))
	if err != nil || !res.IsError {
		t.Fatal("expected tool error for missing path")
	}
	res, err = ih.imageTool("process_image", ih.client.ProcessImage)(ctx, callReq(map[string]any{"image_id": ""}))
	if err != nil || !res.IsError {
		t.Fatal("expected tool error for empty image_id")
	}
}

func TestImageTools_UnknownImageIsToolError(t *testing.T) {
	ih := NewImageHandler(newClient(t))
	res, err := ih.imageTool("process_image", ih.client.ProcessImage)(context.Background(), callReq(map[string]any{"image_id": "missing"}))
	if err != nil {
		t.Fatalf("protocol error: %v", err)
	}
	if !res.IsError {
		t.Fatal("expected tool error")
	}
	if got := text(t, res); got != "process_image failed for image missing: Processing failed" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestDemoTool(t *testing.T) {
	ih := NewImageHandler(newClient(t))
	res, err := ih.handleGetDemoResults(context.Background(), callReq(nil))
	if err != nil || res.IsError {
		t.Fatalf("get_demo_results: err=%v", err)
	}
}

func TestHealthTool(t *testing.T) {
	hh := NewHealthHandler(newClient(t))
	res, err := hh.handleHealthCheck(context.Background(), callReq(nil))
	if err != nil || res.IsError {
		t.Fatalf("health_check: err=%v", err)
	}

	srv := httptest.NewServer(mockbackend.New().Router())
	url := srv.URL + "/api"
	srv.Close()
	c, err := client.New(url)
	if err != nil {
		t.Fatal(err)
	}
	res, _ = NewHealthHandler(c).handleHealthCheck(context.Background(), callReq(nil))
	if !res.IsError {
		t.Fatal("unreachable backend should be a tool error")
	}
	var hs map[string]string
	if err := json.Unmarshal([]byte(text(t, res)), &hs); err != nil {
		t.Fatal(err)
	}
	if hs["status"] != "error" || hs["message"] != "Backend not reachable" {
		t.Fatalf("unexpected health payload %v", hs)
	}
}
