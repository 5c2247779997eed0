// Package display builds display inventories on top of the CoreGraphics binding
package display

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	cg "github.com/bnema/cgdisplay/coregraphics"
	"github.com/bnema/cgdisplay/internal/logger"
)

var (
	ErrNoDisplays     = errors.New("no active displays")
	ErrUnknownDisplay = errors.New("unknown display")
)

// Monitor is a point-in-time description of one display
type Monitor struct {
	ID     cg.DisplayID `json:"id" yaml:"id"`
	Name   string       `json:"name" yaml:"name"`
	X      float64      `json:"x" yaml:"x"` // Position in global coordinate space
	Y      float64      `json:"y" yaml:"y"`
	Width  float64      `json:"width" yaml:"width"`
	Height float64      `json:"height" yaml:"height"`

	PixelWidth  int     `json:"pixel_width" yaml:"pixel_width"`
	PixelHeight int     `json:"pixel_height" yaml:"pixel_height"`
	Scale       float64 `json:"scale" yaml:"scale"`
	RefreshRate float64 `json:"refresh_rate" yaml:"refresh_rate"`
	Rotation    float64 `json:"rotation" yaml:"rotation"`

	// Physical size in millimetres, zero when the display does not report it
	PhysicalWidth  float64 `json:"physical_width_mm" yaml:"physical_width_mm"`
	PhysicalHeight float64 `json:"physical_height_mm" yaml:"physical_height_mm"`

	Main     bool         `json:"main" yaml:"main"`
	Builtin  bool         `json:"builtin" yaml:"builtin"`
	Asleep   bool         `json:"asleep" yaml:"asleep"`
	Online   bool         `json:"online" yaml:"online"`
	Stereo   bool         `json:"stereo" yaml:"stereo"`
	Mirrored bool         `json:"mirrored" yaml:"mirrored"`
	MirrorOf cg.DisplayID `json:"mirror_of,omitempty" yaml:"mirror_of,omitempty"`

	Vendor uint32 `json:"vendor" yaml:"vendor"`
	Model  uint32 `json:"model" yaml:"model"`
	Serial uint32 `json:"serial" yaml:"serial"`
}

// Bounds returns the monitor rectangle in global coordinates
func (m *Monitor) Bounds() cg.Rect {
	return cg.Rect{
		Origin: cg.Point{X: m.X, Y: m.Y},
		Size:   cg.Size{Width: m.Width, Height: m.Height},
	}
}

// Contains checks if a global point is on this monitor
func (m *Monitor) Contains(p cg.Point) bool {
	return m.Bounds().Contains(p)
}

// Display returns the binding value for this monitor
func (m *Monitor) Display() cg.Display {
	return cg.NewDisplay(m.ID)
}

// Resolution formats the logical size, with the backing pixels when they differ
func (m *Monitor) Resolution() string {
	res := fmt.Sprintf("%gx%g", m.Width, m.Height)
	if m.PixelWidth > 0 && (float64(m.PixelWidth) != m.Width || float64(m.PixelHeight) != m.Height) {
		res += fmt.Sprintf(" (%dx%d)", m.PixelWidth, m.PixelHeight)
	}
	return res
}

// Display holds a snapshot of the active displays
type Display struct {
	monitors []*Monitor
}

// New takes a snapshot of every active display
func New(ctx context.Context) (*Display, error) {
	ids, err := cg.ActiveDisplays()
	if err != nil {
		return nil, fmt.Errorf("failed to list active displays: %w", err)
	}
	logger.Debugf("Display.New: %d active display(s)", len(ids))
	return snapshot(ctx, ids)
}

// NewOnline takes a snapshot of every online display, including sleeping
// and mirrored ones.
func NewOnline(ctx context.Context) (*Display, error) {
	ids, err := cg.OnlineDisplays()
	if err != nil {
		return nil, fmt.Errorf("failed to list online displays: %w", err)
	}
	logger.Debugf("Display.NewOnline: %d online display(s)", len(ids))
	return snapshot(ctx, ids)
}

// NewAt takes a snapshot of the online displays containing a global point
func NewAt(ctx context.Context, p cg.Point) (*Display, error) {
	ids, err := cg.DisplaysWithPoint(p)
	if err != nil {
		return nil, fmt.Errorf("failed to find displays at (%g, %g): %w", p.X, p.Y, err)
	}
	return snapshot(ctx, ids)
}

func snapshot(ctx context.Context, ids []cg.DisplayID) (*Display, error) {
	monitors := make([]*Monitor, 0, len(ids))
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		monitors = append(monitors, Describe(cg.NewDisplay(id)))
	}

	return &Display{monitors: monitors}, nil
}

// FromMonitors wraps an existing set of monitors
func FromMonitors(monitors []*Monitor) *Display {
	return &Display{monitors: monitors}
}

// Describe reads everything the binding reports about one display
func Describe(d cg.Display) *Monitor {
	b := d.Bounds()
	screen := d.ScreenSize()

	m := &Monitor{
		ID:             d.ID,
		X:              b.Origin.X,
		Y:              b.Origin.Y,
		Width:          b.Size.Width,
		Height:         b.Size.Height,
		PixelWidth:     int(d.PixelsWide()),
		PixelHeight:    int(d.PixelsHigh()),
		Scale:          1,
		Rotation:       d.Rotation(),
		PhysicalWidth:  screen.Width,
		PhysicalHeight: screen.Height,
		Main:           d.IsMain(),
		Builtin:        d.IsBuiltin(),
		Asleep:         d.IsAsleep(),
		Online:         d.IsOnline(),
		Stereo:         d.IsStereo(),
		Mirrored:       d.IsInMirrorSet(),
		MirrorOf:       d.MirrorsDisplay(),
		Vendor:         d.VendorNumber(),
		Model:          d.ModelNumber(),
		Serial:         d.SerialNumber(),
	}

	if mode, ok := d.Mode(); ok {
		m.PixelWidth = int(mode.PixelWidth())
		m.PixelHeight = int(mode.PixelHeight())
		m.RefreshRate = mode.RefreshRate()
		m.Scale = mode.Scale()
		mode.Release()
	} else {
		logger.Debugf("Display.Describe: no current mode for %s", d)
	}

	if m.Builtin {
		m.Name = "Built-in"
	} else {
		m.Name = fmt.Sprintf("Display %d", d.ID)
	}
	return m
}

// Monitors returns all monitors in enumeration order
func (d *Display) Monitors() []*Monitor {
	return d.monitors
}

// Primary returns the main display, falling back to the first one
func (d *Display) Primary() *Monitor {
	for _, m := range d.monitors {
		if m.Main {
			return m
		}
	}
	if len(d.monitors) > 0 {
		return d.monitors[0]
	}
	return nil
}

// MonitorAt returns the monitor containing the given global point
func (d *Display) MonitorAt(p cg.Point) *Monitor {
	for _, m := range d.monitors {
		if m.Contains(p) {
			return m
		}
	}
	return nil
}

// ByID returns the monitor with the given display ID
func (d *Display) ByID(id cg.DisplayID) *Monitor {
	for _, m := range d.monitors {
		if m.ID == id {
			return m
		}
	}
	return nil
}

// VirtualBounds returns the union of every monitor rectangle
func (d *Display) VirtualBounds() cg.Rect {
	if len(d.monitors) == 0 {
		return cg.Rect{}
	}
	r := d.monitors[0].Bounds()
	for _, m := range d.monitors[1:] {
		r = r.Union(m.Bounds())
	}
	return r
}

// ToLocal converts a global point into the containing monitor and a point
// relative to that monitor's origin.
func (d *Display) ToLocal(p cg.Point) (*Monitor, cg.Point, bool) {
	m := d.MonitorAt(p)
	if m == nil {
		return nil, cg.Point{}, false
	}
	return m, cg.Point{X: p.X - m.X, Y: p.Y - m.Y}, true
}

// Resolve looks a monitor up by "main" or by numeric display ID
func (d *Display) Resolve(sel string) (*Monitor, error) {
	sel = strings.TrimSpace(sel)
	if sel == "" || strings.EqualFold(sel, "main") {
		m := d.Primary()
		if m == nil {
			return nil, ErrNoDisplays
		}
		return m, nil
	}

	id, err := strconv.ParseUint(sel, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a display ID", ErrUnknownDisplay, sel)
	}
	if m := d.ByID(cg.DisplayID(id)); m != nil {
		return m, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownDisplay, id)
}
