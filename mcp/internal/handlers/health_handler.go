package handlers

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/Naufalpc11/Wood-Classification/client"
)

// HealthHandler reports backend availability.
type HealthHandler struct {
	client *client.Client
}

// NewHealthHandler creates a new health handler instance.
func NewHealthHandler(c *client.Client) *HealthHandler {
	return &HealthHandler{client: c}
}

// RegisterTools registers the health_check tool.
func (hh *HealthHandler) RegisterTools(s *server.MCPServer) error {
	tool := mcp.NewTool("health_check",
		mcp.WithDescription("Check whether the Wood Knots Detection backend is reachable"),
	)
	s.AddTool(tool, hh.handleHealthCheck)
	return nil
}

func (hh *HealthHandler) handleHealthCheck(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	hs := hh.client.HealthCheck(ctx)
	body, err := json.MarshalIndent(hs, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !hs.Reachable() {
		log.Warn().Str("base_url", hh.client.BaseURL()).Msg("backend not reachable")
		return mcp.NewToolResultError(string(body)), nil
	}
	return mcp.NewToolResultText(string(body)), nil
}
