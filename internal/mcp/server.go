// Package mcp exposes display, window and cursor operations as MCP tools.
package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/bnema/cgdisplay/internal/config"
	"github.com/bnema/cgdisplay/internal/display"
)

const (
	ServerName = "cgdisplay"

	// DefaultCaptureScale keeps inline screenshots small enough for a model
	// context.
	DefaultCaptureScale = 0.5
)

// Server is the MCP server for display inspection and cursor control.
type Server struct {
	mcpServer *mcpsdk.Server
	config    *config.Config

	// snapshot is replaced in tests.
	snapshot func(ctx context.Context) (*display.Display, error)
}

// NewServer creates a new MCP server with every tool registered.
func NewServer(cfg *config.Config, version string) *Server {
	s := &Server{
		config:   cfg,
		snapshot: display.New,
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: version,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_displays",
		Description: "List the active displays with their bounds in global coordinates, pixel size, scale, refresh rate and flags. Also returns the union of all display bounds.",
	}, s.handleListDisplays)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "display_mode",
		Description: "Return the current display mode of a display, or every supported mode when all is true.",
	}, s.handleDisplayMode)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_windows",
		Description: "List windows known to the window server, front to back. By default only on-screen windows are returned and desktop elements are excluded.",
	}, s.handleListWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "move_cursor",
		Description: "Move the mouse cursor. With a display the point is relative to that display's origin; without one the point is global and the cursor is warped without generating mouse events.",
	}, s.handleMoveCursor)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_cursor_visible",
		Description: "Hide or show the mouse cursor on a display. Hide and show calls are counted by the system and must be balanced.",
	}, s.handleSetCursorVisible)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "capture_display",
		Description: "Capture the contents of a display as a PNG image. Requires screen recording permission.",
	}, s.handleCaptureDisplay)
}
