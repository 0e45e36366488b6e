package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/Naufalpc11/Wood-Classification/client"
)

// ImageHandler exposes upload, processing and result tools.
type ImageHandler struct {
	client *client.Client
}

// NewImageHandler creates a new image handler instance.
func NewImageHandler(c *client.Client) *ImageHandler {
	return &ImageHandler{client: c}
}

// RegisterTools registers all image tools with the MCP server.
func (ih *ImageHandler) RegisterTools(s *server.MCPServer) error {
	uploadTool := mcp.NewTool("upload_image",
		mcp.WithDescription("Upload a local wood board image (png, jpg, jpeg, bmp, tiff). Returns the image_id used by the other tools."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path of the image file on the server's filesystem")),
	)
	s.AddTool(uploadTool, ih.handleUploadImage)

	processTool := mcp.NewTool("process_image",
		mcp.WithDescription("Run the knot detection pipeline on an uploaded image and classify it"),
		mcp.WithString("image_id", mcp.Required(), mcp.Description("The image_id returned by upload_image")),
	)
	s.AddTool(processTool, ih.imageTool("process_image", ih.client.ProcessImage))

	resultsTool := mcp.NewTool("get_results",
		mcp.WithDescription("Fetch the stored results of a previously processed image"),
		mcp.WithString("image_id", mcp.Required(), mcp.Description("The image_id returned by upload_image")),
	)
	s.AddTool(resultsTool, ih.imageTool("get_results", ih.client.GetResults))

	classifyTool := mcp.NewTool("classify_image",
		mcp.WithDescription("Classify an uploaded image as defective (Cacat) or not (Tidak Cacat)"),
		mcp.WithString("image_id", mcp.Required(), mcp.Description("The image_id returned by upload_image")),
	)
	s.AddTool(classifyTool, ih.imageTool("classify_image", ih.client.ClassifyImage))

	demoTool := mcp.NewTool("get_demo_results",
		mcp.WithDescription("Run the pipeline on the backend's bundled sample image"),
	)
	s.AddTool(demoTool, ih.handleGetDemoResults)

	return nil
}

// handleUploadImage handles the upload_image tool call.
func (ih *ImageHandler) handleUploadImage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		log.Error().Err(err).Msg("path parameter validation failed")
		return mcp.NewToolResultError("path parameter is required"), nil
	}

	log.Debug().Str("path", path).Msg("handling upload_image request")

	start := time.Now()
	res, err := ih.client.UploadFile(ctx, path)
	elapsed := time.Since(start)
	if err != nil {
		log.Error().Err(err).Str("path", path).Dur("elapsed", elapsed).Msg("upload_image failed")
		return mcp.NewToolResultError(fmt.Sprintf("Failed to upload %s: %v", path, err)), nil
	}

	id, _ := res.ImageID()
	log.Debug().Str("path", path).Str("image_id", id).Dur("elapsed", elapsed).Msg("upload_image completed")
	return resultText(res)
}

// imageTool adapts a client call keyed by image id into a tool handler.
func (ih *ImageHandler) imageTool(name string, call func(context.Context, string) (client.Result, error)) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		imageID, err := request.RequireString("image_id")
		if err != nil || imageID == "" {
			log.Error().Err(err).Str("tool", name).Msg("image_id parameter validation failed")
			return mcp.NewToolResultError("image_id parameter is required"), nil
		}

		log.Debug().Str("tool", name).Str("image_id", imageID).Msg("handling image request")

		start := time.Now()
		res, err := call(ctx, imageID)
		elapsed := time.Since(start)
		if err != nil {
			log.Error().Err(err).Str("tool", name).Str("image_id", imageID).Dur("elapsed", elapsed).Msg("tool call failed")
			return mcp.NewToolResultError(fmt.Sprintf("%s failed for image %s: %v", name, imageID, err)), nil
		}

		log.Debug().Str("tool", name).Str("image_id", imageID).Dur("elapsed", elapsed).Msg("tool call completed")
		return resultText(res)
	}
}

// handleGetDemoResults handles the get_demo_results tool call.
func (ih *ImageHandler) handleGetDemoResults(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()
	res, err := ih.client.GetDemoResults(ctx)
	if err != nil {
		log.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("get_demo_results failed")
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get demo results: %v", err)), nil
	}
	return resultText(res)
}

func resultText(res client.Result) (*mcp.CallToolResult, error) {
	out, err := res.Indent()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to format response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}
