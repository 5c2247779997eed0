package display

import (
	"fmt"

	cg "github.com/bnema/cgdisplay/coregraphics"
)

// ModeInfo is a detached copy of a display mode's properties
type ModeInfo struct {
	Width            int     `json:"width" yaml:"width"`
	Height           int     `json:"height" yaml:"height"`
	PixelWidth       int     `json:"pixel_width" yaml:"pixel_width"`
	PixelHeight      int     `json:"pixel_height" yaml:"pixel_height"`
	RefreshRate      float64 `json:"refresh_rate" yaml:"refresh_rate"`
	Scale            float64 `json:"scale" yaml:"scale"`
	IOFlags          uint32  `json:"io_flags" yaml:"io_flags"`
	IODisplayModeID  int32   `json:"io_display_mode_id" yaml:"io_display_mode_id"`
	UsableForDesktop bool    `json:"usable_for_desktop" yaml:"usable_for_desktop"`
	Current          bool    `json:"current" yaml:"current"`
}

func (m ModeInfo) String() string {
	s := fmt.Sprintf("%dx%d", m.Width, m.Height)
	if m.PixelWidth != m.Width || m.PixelHeight != m.Height {
		s += fmt.Sprintf(" (%dx%d)", m.PixelWidth, m.PixelHeight)
	}
	if m.RefreshRate > 0 {
		s += fmt.Sprintf(" @ %gHz", m.RefreshRate)
	}
	return s
}

func modeInfo(m *cg.Mode) ModeInfo {
	return ModeInfo{
		Width:            int(m.Width()),
		Height:           int(m.Height()),
		PixelWidth:       int(m.PixelWidth()),
		PixelHeight:      int(m.PixelHeight()),
		RefreshRate:      m.RefreshRate(),
		Scale:            m.Scale(),
		IOFlags:          m.IOFlags(),
		IODisplayModeID:  m.IODisplayModeID(),
		UsableForDesktop: m.IsUsableForDesktopGUI(),
	}
}

// CurrentMode reads the active mode of a display and releases the handle
func CurrentMode(d cg.Display) (ModeInfo, bool) {
	mode, ok := d.Mode()
	if !ok {
		return ModeInfo{}, false
	}
	defer mode.Release()

	info := modeInfo(mode)
	info.Current = true
	return info, true
}

// AllModes lists every mode a display supports, marking the current one.
// Handles are released before returning.
func AllModes(d cg.Display) ([]ModeInfo, bool) {
	modes, ok := d.Modes()
	if !ok {
		return nil, false
	}

	current, hasCurrent := CurrentMode(d)
	infos := make([]ModeInfo, 0, len(modes))
	for _, m := range modes {
		info := modeInfo(m)
		m.Release()
		if hasCurrent && sameMode(info, current) {
			info.Current = true
		}
		infos = append(infos, info)
	}
	return infos, true
}

func sameMode(a, b ModeInfo) bool {
	if a.IODisplayModeID != 0 || b.IODisplayModeID != 0 {
		return a.IODisplayModeID == b.IODisplayModeID
	}
	return a.Width == b.Width && a.Height == b.Height &&
		a.PixelWidth == b.PixelWidth && a.PixelHeight == b.PixelHeight &&
		a.RefreshRate == b.RefreshRate
}
