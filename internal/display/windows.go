package display

import (
	"errors"
	"strings"

	cg "github.com/bnema/cgdisplay/coregraphics"
)

// ErrNoWindowList is returned when the window server hands back no list
var ErrNoWindowList = errors.New("window server returned no window list")

// WindowQuery selects the windows returned by ListWindows
type WindowQuery struct {
	Option     cg.WindowListOption
	RelativeTo cg.WindowID
	// Owner keeps windows whose owner name contains it, case-insensitively
	Owner string
}

// ListWindows copies the window list and decodes every descriptor, front
// to back. The native list is released before returning.
func ListWindows(q WindowQuery) ([]cg.WindowInfo, error) {
	list, ok := cg.WindowListInfo(q.Option, q.RelativeTo)
	if !ok {
		return nil, ErrNoWindowList
	}
	defer list.Release()

	owner := strings.ToLower(q.Owner)
	windows := make([]cg.WindowInfo, 0, list.Len())
	for _, w := range list.Windows() {
		if owner != "" && !strings.Contains(strings.ToLower(w.OwnerName), owner) {
			continue
		}
		windows = append(windows, w)
	}
	return windows, nil
}

// Window is the serialized form of a window descriptor
type Window struct {
	ID       uint32  `json:"id" yaml:"id"`
	Owner    string  `json:"owner" yaml:"owner"`
	PID      int32   `json:"pid" yaml:"pid"`
	Name     string  `json:"name,omitempty" yaml:"name,omitempty"`
	Layer    int32   `json:"layer" yaml:"layer"`
	X        float64 `json:"x" yaml:"x"`
	Y        float64 `json:"y" yaml:"y"`
	Width    float64 `json:"width" yaml:"width"`
	Height   float64 `json:"height" yaml:"height"`
	Alpha    float64 `json:"alpha" yaml:"alpha"`
	OnScreen bool    `json:"on_screen" yaml:"on_screen"`
	Sharing  string  `json:"sharing" yaml:"sharing"`
	Memory   int64   `json:"memory,omitempty" yaml:"memory,omitempty"`
}

// NewWindow flattens a descriptor for encoding
func NewWindow(w cg.WindowInfo) Window {
	return Window{
		ID:       uint32(w.Number),
		Owner:    w.OwnerName,
		PID:      w.OwnerPID,
		Name:     w.Name,
		Layer:    w.Layer,
		X:        w.Bounds.Origin.X,
		Y:        w.Bounds.Origin.Y,
		Width:    w.Bounds.Size.Width,
		Height:   w.Bounds.Size.Height,
		Alpha:    w.Alpha,
		OnScreen: w.OnScreen,
		Sharing:  w.SharingState.String(),
		Memory:   w.MemoryUsage,
	}
}

// Windows flattens a list of descriptors, never returning nil
func Windows(infos []cg.WindowInfo) []Window {
	out := make([]Window, 0, len(infos))
	for _, w := range infos {
		out = append(out, NewWindow(w))
	}
	return out
}
