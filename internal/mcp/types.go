package mcp

import "github.com/bnema/cgdisplay/internal/display"

// ListDisplaysInput is the input for the list_displays tool.
type ListDisplaysInput struct{}

// ListDisplaysOutput is the output for the list_displays tool.
type ListDisplaysOutput struct {
	Displays []*display.Monitor `json:"displays"`
	Virtual  display.Area       `json:"virtual"`
}

// DisplayModeInput is the input for the display_mode tool.
type DisplayModeInput struct {
	Display string `json:"display,omitempty" jsonschema:"Display ID, or main (default)"`
	All     bool   `json:"all,omitempty" jsonschema:"List every supported mode instead of only the current one"`
}

// DisplayModeOutput is the output for the display_mode tool.
type DisplayModeOutput struct {
	Display uint32             `json:"display"`
	Modes   []display.ModeInfo `json:"modes"`
}

// ListWindowsInput is the input for the list_windows tool.
type ListWindowsInput struct {
	All            bool   `json:"all,omitempty" jsonschema:"Include off-screen windows"`
	IncludeDesktop bool   `json:"include_desktop,omitempty" jsonschema:"Include desktop elements such as the wallpaper and icons"`
	Owner          string `json:"owner,omitempty" jsonschema:"Only return windows whose owning application name contains this text"`
}

// ListWindowsOutput is the output for the list_windows tool.
type ListWindowsOutput struct {
	Windows []display.Window `json:"windows"`
}

// MoveCursorInput is the input for the move_cursor tool.
type MoveCursorInput struct {
	X       float64 `json:"x" jsonschema:"Horizontal coordinate"`
	Y       float64 `json:"y" jsonschema:"Vertical coordinate"`
	Display string  `json:"display,omitempty" jsonschema:"Display ID the coordinates are relative to. When empty the coordinates are global and the cursor is warped."`
}

// MoveCursorOutput is the output for the move_cursor tool.
type MoveCursorOutput struct {
	Display uint32  `json:"display,omitempty"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
}

// SetCursorVisibleInput is the input for the set_cursor_visible tool.
type SetCursorVisibleInput struct {
	Visible bool   `json:"visible" jsonschema:"true to show the cursor, false to hide it"`
	Display string `json:"display,omitempty" jsonschema:"Display ID, or main (default)"`
}

// SetCursorVisibleOutput is the output for the set_cursor_visible tool.
type SetCursorVisibleOutput struct {
	Display uint32 `json:"display"`
	Visible bool   `json:"visible"`
}

// CaptureDisplayInput is the input for the capture_display tool.
type CaptureDisplayInput struct {
	Display string  `json:"display,omitempty" jsonschema:"Display ID, or main (default)"`
	Scale   float64 `json:"scale,omitempty" jsonschema:"Resize factor applied before encoding (default 0.5)"`
}
