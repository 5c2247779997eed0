package coregraphics

import "fmt"

// Display is a display identified by its CGDirectDisplayID.
type Display struct {
	ID DisplayID
}

// NewDisplay wraps a display ID.
func NewDisplay(id DisplayID) Display {
	return Display{ID: id}
}

// MainDisplay returns the display with the menu bar.
func MainDisplay() Display {
	return NewDisplay(native().MainDisplayID())
}

func (d Display) String() string {
	return fmt.Sprintf("display %d", d.ID)
}

// Bounds returns the display bounds in the global display coordinate space.
func (d Display) Bounds() Rect {
	return native().DisplayBounds(d.ID)
}

// Mode returns the current display mode, or false if the display has none.
func (d Display) Mode() (*Mode, bool) {
	m, err := AdoptMode(native().CopyDisplayMode(d.ID))
	if err != nil {
		return nil, false
	}
	return m, true
}

// Modes returns every mode the display can be switched to, or false when
// the display reports no mode list. The caller owns the returned modes.
func (d Display) Modes() ([]*Mode, bool) {
	refs := native().CopyAllDisplayModes(d.ID)
	if refs == nil {
		return nil, false
	}
	modes := make([]*Mode, 0, len(refs))
	for _, ref := range refs {
		if m, err := AdoptMode(ref); err == nil {
			modes = append(modes, m)
		}
	}
	return modes, true
}

func (d Display) flag(f Flag) bool {
	return native().DisplayFlag(d.ID, f)
}

// IsActive reports whether the display is active (drawable).
func (d Display) IsActive() bool { return d.flag(FlagActive) }

// IsAlwaysInMirrorSet reports whether the display is always in a mirroring set.
func (d Display) IsAlwaysInMirrorSet() bool { return d.flag(FlagAlwaysInMirrorSet) }

// IsAsleep reports whether the display is sleeping and therefore not drawable.
func (d Display) IsAsleep() bool { return d.flag(FlagAsleep) }

// IsBuiltin reports whether the display is built in, such as a laptop panel.
func (d Display) IsBuiltin() bool { return d.flag(FlagBuiltin) }

// IsInHWMirrorSet reports whether the display is in a hardware mirroring set.
func (d Display) IsInHWMirrorSet() bool { return d.flag(FlagInHWMirrorSet) }

// IsInMirrorSet reports whether the display is in a mirroring set.
func (d Display) IsInMirrorSet() bool { return d.flag(FlagInMirrorSet) }

// IsMain reports whether the display is the main display.
func (d Display) IsMain() bool { return d.flag(FlagMain) }

// IsOnline reports whether the display is connected.
func (d Display) IsOnline() bool { return d.flag(FlagOnline) }

// IsStereo reports whether the display runs in a stereo graphics mode.
func (d Display) IsStereo() bool { return d.flag(FlagStereo) }

// UsesOpenGLAcceleration reports whether Quartz Extreme renders the display.
func (d Display) UsesOpenGLAcceleration() bool { return d.flag(FlagOpenGLAcceleration) }

// MirrorsDisplay returns the primary display of the mirroring set for a
// secondary display.
func (d Display) MirrorsDisplay() DisplayID {
	return native().MirrorsDisplay(d.ID)
}

// PrimaryDisplay returns the primary display in a hardware mirroring set.
func (d Display) PrimaryDisplay() DisplayID {
	return native().PrimaryDisplay(d.ID)
}

// Rotation returns the rotation of the display in degrees.
func (d Display) Rotation() float64 {
	return native().DisplayRotation(d.ID)
}

// ScreenSize returns the physical size of the display in millimeters.
func (d Display) ScreenSize() Size {
	return native().DisplayScreenSize(d.ID)
}

// SerialNumber returns the serial number from the display EDID, or 0.
func (d Display) SerialNumber() uint32 {
	return native().DisplayAttribute(d.ID, AttributeSerialNumber)
}

// UnitNumber returns the logical unit number of the display.
func (d Display) UnitNumber() uint32 {
	return native().DisplayAttribute(d.ID, AttributeUnitNumber)
}

// VendorNumber returns the EDID vendor number of the display.
func (d Display) VendorNumber() uint32 {
	return native().DisplayAttribute(d.ID, AttributeVendorNumber)
}

// ModelNumber returns the EDID model number of the display.
func (d Display) ModelNumber() uint32 {
	return native().DisplayAttribute(d.ID, AttributeModelNumber)
}

// PixelsHigh returns the display height in pixels.
func (d Display) PixelsHigh() uint64 {
	return native().DisplayPixelsHigh(d.ID)
}

// PixelsWide returns the display width in pixels.
func (d Display) PixelsWide() uint64 {
	return native().DisplayPixelsWide(d.ID)
}

// ActiveDisplayCount returns the number of active displays.
func ActiveDisplayCount() (uint32, error) {
	count, code := native().GetActiveDisplayList(nil)
	if err := check(code); err != nil {
		return 0, err
	}
	return count, nil
}

// ActiveDisplays returns the IDs of all active displays. The list is
// queried twice: once for its size and once to fill a buffer of that size.
func ActiveDisplays() ([]DisplayID, error) {
	count, err := ActiveDisplayCount()
	if err != nil {
		return nil, err
	}
	return fillDisplayList(count, native().GetActiveDisplayList)
}

// OnlineDisplays returns the IDs of all connected displays, including
// inactive and mirrored ones.
func OnlineDisplays() ([]DisplayID, error) {
	b := native()
	count, code := b.GetOnlineDisplayList(nil)
	if err := check(code); err != nil {
		return nil, err
	}
	return fillDisplayList(count, b.GetOnlineDisplayList)
}

// DisplaysWithPoint returns the online displays containing p in global
// coordinates.
func DisplaysWithPoint(p Point) ([]DisplayID, error) {
	b := native()
	list := func(buf []DisplayID) (uint32, int32) { return b.GetDisplaysWithPoint(p, buf) }
	count, code := list(nil)
	if err := check(code); err != nil {
		return nil, err
	}
	return fillDisplayList(count, list)
}

func fillDisplayList(count uint32, list func([]DisplayID) (uint32, int32)) ([]DisplayID, error) {
	if count == 0 {
		return []DisplayID{}, nil
	}
	buf := make([]DisplayID, count)
	n, code := list(buf)
	if err := check(code); err != nil {
		return nil, err
	}
	if n < count {
		buf = buf[:n]
	}
	return buf, nil
}
