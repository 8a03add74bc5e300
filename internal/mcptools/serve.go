package mcptools

import (
	"context"
	"errors"
	"io"
	"log"

	mcpserver "github.com/mark3labs/mcp-go/server"
)

// ServerName is advertised to MCP clients.
const ServerName = "ecotrip-co2"

// NewServer creates an MCP server with every tool registered.
func (t *Toolset) NewServer(version string) *mcpserver.MCPServer {
	srv := mcpserver.NewMCPServer(
		ServerName,
		version,
		mcpserver.WithToolCapabilities(false),
		mcpserver.WithRecovery(),
	)
	t.Register(srv)
	return srv
}

// Serve speaks MCP over in and out until in is closed or ctx is cancelled.
// Diagnostics go to the Toolset logger, never to out.
func (t *Toolset) Serve(ctx context.Context, version string, in io.Reader, out io.Writer) error {
	stdio := mcpserver.NewStdioServer(t.NewServer(version))
	stdio.SetErrorLogger(log.New(t.logger, "", 0))

	t.logger.Info().Str("name", ServerName).Str("version", version).Msg("starting MCP server on stdio")
	err := stdio.Listen(ctx, in, out)
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
