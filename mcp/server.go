// Package mcp serves the Wood Knots Detection client operations as MCP tools.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/Naufalpc11/Wood-Classification/client"
	appconfig "github.com/Naufalpc11/Wood-Classification/internal/config"
	"github.com/Naufalpc11/Wood-Classification/mcp/internal/handlers"
)

// Config holds the MCP_* settings. Backend and client settings come from
// the shared PCD_* configuration.
type Config struct {
	Addr            string        `envconfig:"ADDR" default:":5100"`
	ServerName      string        `envconfig:"SERVER_NAME" default:"pcd-mcp-server"`
	ServerVersion   string        `envconfig:"SERVER_VERSION" default:"0.1.0"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	HTTPReadTimeout time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"5s"`
	HTTPIdleTimeout time.Duration `envconfig:"HTTP_IDLE_TIMEOUT" default:"120s"`
	ForceStdio      bool          `envconfig:"STDIO" default:"false"`
	ForceHTTP       bool          `envconfig:"HTTP" default:"false"`
}

// LoadConfig reads MCP_* environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("MCP", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	return &cfg, nil
}

type toolRegisterer interface {
	RegisterTools(s *server.MCPServer) error
}

// NewServer builds the MCP server with every tool registered against c.
func NewServer(name, version string, c *client.Client) (*server.MCPServer, error) {
	s := server.NewMCPServer(
		name,
		version,
		server.WithToolCapabilities(true),
	)
	for _, h := range []struct {
		name    string
		handler toolRegisterer
	}{
		{"health", handlers.NewHealthHandler(c)},
		{"image", handlers.NewImageHandler(c)},
	} {
		if err := h.handler.RegisterTools(s); err != nil {
			return nil, fmt.Errorf("register %s tools: %w", h.name, err)
		}
	}
	return s, nil
}

// RunMCPServer starts the MCP server and blocks until it stops.
func RunMCPServer() error {
	appCfg, err := appconfig.Load()
	if err != nil {
		return err
	}
	appCfg.Init()

	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	log.Info().Str("api_base_url", appCfg.APIBaseURL).Msg("Creating client")
	c, err := appCfg.NewClient()
	if err != nil {
		log.Error().Err(err).Msg("Failed to create client")
		return err
	}
	defer func() { _ = c.Close() }()

	s, err := NewServer(cfg.ServerName, cfg.ServerVersion, c)
	if err != nil {
		return err
	}

	if cfg.useStdio() {
		// Stdio transport (for desktop hosts that launch the process)
		log.Info().Msg("Starting MCP server (stdio transport)")
		return server.ServeStdio(s)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return ServeHTTP(ctx, cfg, s)
}

// ServeHTTP serves s over Streamable HTTP at cfg.Addr/mcp until ctx is done.
func ServeHTTP(ctx context.Context, cfg *Config, s *server.MCPServer) error {
	streamSrv := server.NewStreamableHTTPServer(
		s,
		server.WithEndpointPath("/mcp"),
		server.WithHeartbeatInterval(30*time.Second),
	)
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      streamSrv,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: 0, // streaming responses have no deadline
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr).Msg("Starting MCP server (Streamable HTTP)")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		log.Error().Err(err).Msg("HTTP server error")
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	log.Info().Msg("Shutting down HTTP server...")
	var errs []error
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during HTTP server shutdown")
		errs = append(errs, err)
	}
	if err := streamSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during MCP server shutdown")
		errs = append(errs, err)
	}
	log.Info().Msg("MCP server shutdown complete")
	return errors.Join(errs...)
}

// useStdio determines whether to use stdio transport. MCP_STDIO and
// MCP_HTTP force a transport; otherwise stdio is used when stdin is not a
// terminal.
func (c *Config) useStdio() bool {
	if c.ForceStdio {
		return true
	}
	if c.ForceHTTP {
		return false
	}
	if fileInfo, err := os.Stdin.Stat(); err == nil {
		return (fileInfo.Mode() & os.ModeCharDevice) == 0
	}
	return false
}
