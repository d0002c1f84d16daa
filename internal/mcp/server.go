// ABOUTME: MCP server setup for the workout log.
// ABOUTME: Wraps the MCP server around the app's stores.
package mcp

import (
	"context"

	"github.com/harperreed/gym/internal/app"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server exposes the workout log over MCP.
type Server struct {
	mcpServer *mcp.Server
	app       *app.App
}

// NewServer creates a new MCP server backed by the given app.
func NewServer(a *app.App) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "gym",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		app:       a,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
