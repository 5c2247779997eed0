package coregraphics

import "runtime"

// Mode is an owned reference to a CGDisplayMode. Clone shares the native
// mode; each wrapper must be released independently.
type Mode struct {
	h *handle
}

// AdoptMode takes ownership of one reference to a CGDisplayModeRef.
func AdoptMode(ref Ref) (*Mode, error) {
	b := native()
	h, err := adopt(b, ref, b.ReleaseMode)
	if err != nil {
		return nil, err
	}
	return &Mode{h: h}, nil
}

// Clone retains the mode and returns a second wrapper for it.
func (m *Mode) Clone() *Mode {
	return &Mode{h: m.h.clone()}
}

// Release drops this wrapper's reference. It is safe to call more than once.
func (m *Mode) Release() {
	m.h.release()
}

// Width returns the width of the mode in points.
func (m *Mode) Width() uint64 {
	defer runtime.KeepAlive(m.h)
	return m.h.backend.ModeDimension(m.h.get(), DimensionWidth)
}

// Height returns the height of the mode in points.
func (m *Mode) Height() uint64 {
	defer runtime.KeepAlive(m.h)
	return m.h.backend.ModeDimension(m.h.get(), DimensionHeight)
}

// PixelWidth returns the width of the mode in pixels.
func (m *Mode) PixelWidth() uint64 {
	defer runtime.KeepAlive(m.h)
	return m.h.backend.ModeDimension(m.h.get(), DimensionPixelWidth)
}

// PixelHeight returns the height of the mode in pixels.
func (m *Mode) PixelHeight() uint64 {
	defer runtime.KeepAlive(m.h)
	return m.h.backend.ModeDimension(m.h.get(), DimensionPixelHeight)
}

// RefreshRate returns the refresh rate in hertz, or 0 for displays that do
// not report one.
func (m *Mode) RefreshRate() float64 {
	defer runtime.KeepAlive(m.h)
	return m.h.backend.ModeRefreshRate(m.h.get())
}

// IOFlags returns the IOKit flags of the mode.
func (m *Mode) IOFlags() uint32 {
	defer runtime.KeepAlive(m.h)
	return m.h.backend.ModeIOFlags(m.h.get())
}

// IODisplayModeID returns the IOKit mode ID, stable across copies of the same mode.
func (m *Mode) IODisplayModeID() int32 {
	defer runtime.KeepAlive(m.h)
	return m.h.backend.ModeIODisplayModeID(m.h.get())
}

// IsUsableForDesktopGUI reports whether the mode can drive the desktop.
func (m *Mode) IsUsableForDesktopGUI() bool {
	defer runtime.KeepAlive(m.h)
	return m.h.backend.ModeIsUsableForDesktopGUI(m.h.get())
}

// Scale returns the ratio of pixel width to point width, 1 when the mode
// reports no width.
func (m *Mode) Scale() float64 {
	w := m.Width()
	if w == 0 {
		return 1
	}
	return float64(m.PixelWidth()) / float64(w)
}
