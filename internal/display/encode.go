package display

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Inventory is the serialized form of a snapshot
type Inventory struct {
	Monitors []*Monitor `json:"monitors" yaml:"monitors"`
	Virtual  Area       `json:"virtual" yaml:"virtual"`
	Error    string     `json:"error,omitempty" yaml:"error,omitempty"`
}

// Area is a rectangle with flat fields for serialization
type Area struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Inventory returns the serializable form of the snapshot
func (d *Display) Inventory() Inventory {
	v := d.VirtualBounds()
	monitors := d.monitors
	if monitors == nil {
		monitors = []*Monitor{}
	}
	return Inventory{
		Monitors: monitors,
		Virtual: Area{
			X:      v.Origin.X,
			Y:      v.Origin.Y,
			Width:  v.Size.Width,
			Height: v.Size.Height,
		},
	}
}

// Encode writes v as json or yaml
func Encode(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}
