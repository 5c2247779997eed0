package mcp

import (
	"bytes"
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	cg "github.com/bnema/cgdisplay/coregraphics"
	"github.com/bnema/cgdisplay/internal/capture"
	"github.com/bnema/cgdisplay/internal/config"
	"github.com/bnema/cgdisplay/internal/display"
	"github.com/bnema/cgdisplay/internal/logger"
)

// resolveDisplay picks the display a tool acts on. An empty selector falls back
// to the configured default, and "ask" means main since there is nobody to
// prompt.
func (s *Server) resolveDisplay(ctx context.Context, sel string) (*display.Monitor, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if sel == "" && s.config != nil && s.config.Display.Default != config.DisplayAsk {
		sel = s.config.Display.Default
	}
	return snap.Resolve(sel)
}

func (s *Server) handleListDisplays(ctx context.Context, _ *mcpsdk.CallToolRequest, _ ListDisplaysInput) (*mcpsdk.CallToolResult, ListDisplaysOutput, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, ListDisplaysOutput{}, err
	}
	inv := snap.Inventory()
	logger.Debug("list_displays", "count", len(inv.Monitors))

	return nil, ListDisplaysOutput{
		Displays: inv.Monitors,
		Virtual:  inv.Virtual,
	}, nil
}

func (s *Server) handleDisplayMode(ctx context.Context, _ *mcpsdk.CallToolRequest, args DisplayModeInput) (*mcpsdk.CallToolResult, DisplayModeOutput, error) {
	m, err := s.resolveDisplay(ctx, args.Display)
	if err != nil {
		return nil, DisplayModeOutput{}, err
	}

	out := DisplayModeOutput{Display: uint32(m.ID)}
	if args.All {
		modes, ok := display.AllModes(m.Display())
		if !ok {
			return nil, DisplayModeOutput{}, fmt.Errorf("display %d reported no modes", m.ID)
		}
		out.Modes = modes
		return nil, out, nil
	}

	mode, ok := display.CurrentMode(m.Display())
	if !ok {
		return nil, DisplayModeOutput{}, fmt.Errorf("display %d has no current mode", m.ID)
	}
	out.Modes = []display.ModeInfo{mode}
	return nil, out, nil
}

func (s *Server) handleListWindows(_ context.Context, _ *mcpsdk.CallToolRequest, args ListWindowsInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	option := cg.WindowListOptionOnScreenOnly
	if args.All {
		option = cg.WindowListOptionAll
	}
	if !args.IncludeDesktop {
		option |= cg.WindowListExcludeDesktopElements
	}

	windows, err := display.ListWindows(display.WindowQuery{
		Option:     option,
		RelativeTo: cg.NullWindowID,
		Owner:      args.Owner,
	})
	if err != nil {
		return nil, ListWindowsOutput{}, err
	}
	logger.Debug("list_windows", "count", len(windows), "option", uint32(option))

	return nil, ListWindowsOutput{Windows: display.Windows(windows)}, nil
}

func (s *Server) handleMoveCursor(ctx context.Context, _ *mcpsdk.CallToolRequest, args MoveCursorInput) (*mcpsdk.CallToolResult, MoveCursorOutput, error) {
	p := cg.Point{X: args.X, Y: args.Y}

	if args.Display == "" {
		if err := cg.WarpMouseCursorPosition(p); err != nil {
			return nil, MoveCursorOutput{}, fmt.Errorf("warp cursor: %w", err)
		}
		return nil, MoveCursorOutput{X: p.X, Y: p.Y}, nil
	}

	m, err := s.resolveDisplay(ctx, args.Display)
	if err != nil {
		return nil, MoveCursorOutput{}, err
	}
	if err := m.Display().MoveCursorToPoint(p); err != nil {
		return nil, MoveCursorOutput{}, fmt.Errorf("move cursor on display %d: %w", m.ID, err)
	}
	return nil, MoveCursorOutput{Display: uint32(m.ID), X: p.X, Y: p.Y}, nil
}

func (s *Server) handleSetCursorVisible(ctx context.Context, _ *mcpsdk.CallToolRequest, args SetCursorVisibleInput) (*mcpsdk.CallToolResult, SetCursorVisibleOutput, error) {
	m, err := s.resolveDisplay(ctx, args.Display)
	if err != nil {
		return nil, SetCursorVisibleOutput{}, err
	}

	d := m.Display()
	if args.Visible {
		err = d.ShowCursor()
	} else {
		err = d.HideCursor()
	}
	if err != nil {
		return nil, SetCursorVisibleOutput{}, fmt.Errorf("set cursor visibility on display %d: %w", m.ID, err)
	}
	return nil, SetCursorVisibleOutput{Display: uint32(m.ID), Visible: args.Visible}, nil
}

func (s *Server) handleCaptureDisplay(ctx context.Context, _ *mcpsdk.CallToolRequest, args CaptureDisplayInput) (*mcpsdk.CallToolResult, any, error) {
	m, err := s.resolveDisplay(ctx, args.Display)
	if err != nil {
		return nil, nil, err
	}

	scale := args.Scale
	if scale <= 0 {
		scale = DefaultCaptureScale
	}

	var buf bytes.Buffer
	req := capture.Request{Display: m.ID, Scale: scale}
	if err := capture.Capture(&buf, req, capture.FormatPNG); err != nil {
		return nil, nil, fmt.Errorf("capture display %d: %w", m.ID, err)
	}
	logger.Debug("capture_display", "display", m.ID, "bytes", buf.Len())

	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.ImageContent{Data: buf.Bytes(), MIMEType: "image/png"},
			&mcpsdk.TextContent{Text: fmt.Sprintf("%s (%s), scale %g", m.Name, m.Resolution(), scale)},
		},
	}, nil, nil
}
