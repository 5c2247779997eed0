package mcp

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"image/png"
	"sort"
	"testing"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cg "github.com/bnema/cgdisplay/coregraphics"
	"github.com/bnema/cgdisplay/coregraphics/cgtest"
	"github.com/bnema/cgdisplay/internal/config"
)

func newTestServer(t *testing.T) (*Server, *cgtest.Backend) {
	t.Helper()
	fake := cgtest.New().Install(t)
	fake.AddDisplay(&cgtest.Display{
		ID:     1,
		Bounds: cg.Rect{Size: cg.Size{Width: 1440, Height: 900}},
		Mode:   &cgtest.ModeSpec{Width: 1440, Height: 900, PixelWidth: 2880, PixelHeight: 1800, RefreshRate: 60, IODisplayModeID: 11},
		Modes: []cgtest.ModeSpec{
			{Width: 1440, Height: 900, PixelWidth: 2880, PixelHeight: 1800, RefreshRate: 60, IODisplayModeID: 11},
			{Width: 1280, Height: 800, PixelWidth: 2560, PixelHeight: 1600, RefreshRate: 60, IODisplayModeID: 12},
		},
		Image: &cgtest.ImageSpec{Width: 64, Height: 40, Fill: color.RGBA{R: 255, A: 255}},
	})
	fake.AddDisplay(&cgtest.Display{
		ID:     2,
		Bounds: cg.Rect{Origin: cg.Point{X: 1440}, Size: cg.Size{Width: 1920, Height: 1080}},
	})

	cfg := config.DefaultConfig
	return NewServer(&cfg, "test"), fake
}

func TestRegisteredTools(t *testing.T) {
	s, _ := newTestServer(t)
	ctx := context.Background()

	clientTransport, serverTransport := mcpsdk.NewInMemoryTransports()
	serverSession, err := s.mcpServer.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	defer serverSession.Close()

	client := mcpsdk.NewClient(&mcpsdk.Implementation{Name: "test-client", Version: "0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	defer session.Close()

	res, err := session.ListTools(ctx, nil)
	require.NoError(t, err)

	var names []string
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	sort.Strings(names)
	assert.Equal(t, []string{
		"capture_display",
		"display_mode",
		"list_displays",
		"list_windows",
		"move_cursor",
		"set_cursor_visible",
	}, names)
}

func TestHandleListDisplays(t *testing.T) {
	s, _ := newTestServer(t)

	_, out, err := s.handleListDisplays(context.Background(), nil, ListDisplaysInput{})
	require.NoError(t, err)
	require.Len(t, out.Displays, 2)
	assert.True(t, out.Displays[0].Main)
	assert.Equal(t, 2.0, out.Displays[0].Scale)
	assert.Equal(t, 3360.0, out.Virtual.Width)
	assert.Equal(t, 1080.0, out.Virtual.Height)
}

func TestHandleDisplayMode(t *testing.T) {
	s, fake := newTestServer(t)
	ctx := context.Background()

	_, out, err := s.handleDisplayMode(ctx, nil, DisplayModeInput{})
	require.NoError(t, err)
	assert.Equal(t, uint32(1), out.Display)
	require.Len(t, out.Modes, 1)
	assert.Equal(t, 2880, out.Modes[0].PixelWidth)

	_, out, err = s.handleDisplayMode(ctx, nil, DisplayModeInput{Display: "1", All: true})
	require.NoError(t, err)
	require.Len(t, out.Modes, 2)
	assert.True(t, out.Modes[0].Current)
	assert.False(t, out.Modes[1].Current)

	_, _, err = s.handleDisplayMode(ctx, nil, DisplayModeInput{Display: "2"})
	assert.Error(t, err)

	_, _, err = s.handleDisplayMode(ctx, nil, DisplayModeInput{Display: "99"})
	assert.Error(t, err)

	assert.Equal(t, 0, fake.Live())
}

func TestHandleListWindows(t *testing.T) {
	s, fake := newTestServer(t)
	fake.Windows = []cg.WindowInfo{
		{Number: 10, OwnerName: "Finder", OwnerPID: 400, OnScreen: true},
		{Number: 11, OwnerName: "Safari", OwnerPID: 401, Name: "Docs", OnScreen: true, SharingState: cg.SharingReadOnly},
	}

	_, out, err := s.handleListWindows(context.Background(), nil, ListWindowsInput{Owner: "safari"})
	require.NoError(t, err)
	require.Len(t, out.Windows, 1)
	assert.Equal(t, uint32(11), out.Windows[0].ID)
	assert.Equal(t, "read-only", out.Windows[0].Sharing)

	_, out, err = s.handleListWindows(context.Background(), nil, ListWindowsInput{All: true, IncludeDesktop: true})
	require.NoError(t, err)
	assert.Len(t, out.Windows, 2)

	assert.Equal(t, []cgtest.WindowQuery{
		{Option: cg.WindowListOptionOnScreenOnly | cg.WindowListExcludeDesktopElements},
		{Option: cg.WindowListOptionAll},
	}, fake.WindowCalls)
	assert.Equal(t, 0, fake.Live())
}

func TestHandleListWindowsNull(t *testing.T) {
	s, _ := newTestServer(t)

	_, _, err := s.handleListWindows(context.Background(), nil, ListWindowsInput{})
	assert.Error(t, err)
}

func TestHandleMoveCursor(t *testing.T) {
	s, fake := newTestServer(t)
	ctx := context.Background()

	_, out, err := s.handleMoveCursor(ctx, nil, MoveCursorInput{X: 5, Y: 6})
	require.NoError(t, err)
	assert.Zero(t, out.Display)
	assert.Equal(t, []cg.Point{{X: 5, Y: 6}}, fake.Warps)

	_, out, err = s.handleMoveCursor(ctx, nil, MoveCursorInput{X: 100, Y: 50, Display: "2"})
	require.NoError(t, err)
	assert.Equal(t, uint32(2), out.Display)
	assert.Equal(t, []cgtest.CursorMove{{Display: 2, Point: cg.Point{X: 100, Y: 50}}}, fake.CursorMoves)
}

func TestHandleMoveCursorKeepsNativeCode(t *testing.T) {
	s, fake := newTestServer(t)
	fake.Codes[cgtest.CallWarpCursor] = 1001

	_, _, err := s.handleMoveCursor(context.Background(), nil, MoveCursorInput{X: 1, Y: 1})
	require.Error(t, err)
	var cgErr cg.Error
	require.True(t, errors.As(err, &cgErr))
	assert.Equal(t, int32(1001), cgErr.Code())
	assert.Contains(t, err.Error(), "illegal argument")
}

func TestHandleSetCursorVisible(t *testing.T) {
	s, fake := newTestServer(t)
	ctx := context.Background()

	_, out, err := s.handleSetCursorVisible(ctx, nil, SetCursorVisibleInput{Visible: false})
	require.NoError(t, err)
	assert.Equal(t, uint32(1), out.Display)
	assert.Equal(t, 1, fake.HideCounts[1])

	_, _, err = s.handleSetCursorVisible(ctx, nil, SetCursorVisibleInput{Visible: true})
	require.NoError(t, err)
	assert.Equal(t, 0, fake.HideCounts[1])

	fake.Codes[cgtest.CallHideCursor] = 1000
	_, _, err = s.handleSetCursorVisible(ctx, nil, SetCursorVisibleInput{Visible: false})
	assert.ErrorIs(t, err, cg.ErrorFailure)
}

func TestConfiguredDefaultDisplay(t *testing.T) {
	s, fake := newTestServer(t)
	s.config.Display.Default = "2"

	_, out, err := s.handleSetCursorVisible(context.Background(), nil, SetCursorVisibleInput{Visible: false})
	require.NoError(t, err)
	assert.Equal(t, uint32(2), out.Display)
	assert.Equal(t, 1, fake.HideCounts[2])

	s.config.Display.Default = config.DisplayAsk
	_, out, err = s.handleSetCursorVisible(context.Background(), nil, SetCursorVisibleInput{Visible: true})
	require.NoError(t, err)
	assert.Equal(t, uint32(1), out.Display)
}

func TestHandleCaptureDisplay(t *testing.T) {
	s, fake := newTestServer(t)
	ctx := context.Background()

	res, _, err := s.handleCaptureDisplay(ctx, nil, CaptureDisplayInput{})
	require.NoError(t, err)
	require.Len(t, res.Content, 2)

	img, ok := res.Content[0].(*mcpsdk.ImageContent)
	require.True(t, ok)
	assert.Equal(t, "image/png", img.MIMEType)
	cfg, err := png.DecodeConfig(bytes.NewReader(img.Data))
	require.NoError(t, err)
	assert.Equal(t, 32, cfg.Width)
	assert.Equal(t, 20, cfg.Height)

	_, _, err = s.handleCaptureDisplay(ctx, nil, CaptureDisplayInput{Display: "2"})
	assert.Error(t, err)

	assert.Equal(t, 0, fake.Live())
}
