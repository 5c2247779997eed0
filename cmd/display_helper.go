package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	cg "github.com/bnema/cgdisplay/coregraphics"
	"github.com/bnema/cgdisplay/internal/config"
	"github.com/bnema/cgdisplay/internal/display"
	"github.com/bnema/cgdisplay/internal/ui"
)

// selectDisplay resolves a --display value against a fresh snapshot. An
// empty value falls back to display.default from the config, which may ask
// the user to pick one.
func selectDisplay(cmd *cobra.Command, sel string) (*display.Monitor, error) {
	snap, err := display.New(cmd.Context())
	if err != nil {
		return nil, err
	}
	if sel == "" {
		sel = config.Get().Display.Default
	}
	if strings.EqualFold(sel, config.DisplayAsk) {
		return ui.PickDisplay(snap)
	}
	return snap.Resolve(sel)
}

// outputFormat returns the --format value, or output.format from the config
func outputFormat(flag string) (string, error) {
	format := strings.ToLower(flag)
	if format == "" {
		format = config.Get().Output.Format
	}
	switch format {
	case "table", "json", "yaml":
		return format, nil
	}
	return "", fmt.Errorf("unsupported output format %q (want table, json or yaml)", flag)
}

func addFormatFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, "format", "o", "", "output format: table, json or yaml (default from config)")
}

func parseFloat(name, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, s, err)
	}
	return v, nil
}

// parsePoint reads a point given either as two arguments or as one "x,y"
// argument.
func parsePoint(args []string) (cg.Point, error) {
	if len(args) == 1 {
		args = strings.Split(args[0], ",")
	}
	if len(args) != 2 {
		return cg.Point{}, fmt.Errorf("expected a point as X Y or X,Y")
	}
	x, err := parseFloat("x", args[0])
	if err != nil {
		return cg.Point{}, err
	}
	y, err := parseFloat("y", args[1])
	if err != nil {
		return cg.Point{}, err
	}
	return cg.Point{X: x, Y: y}, nil
}

// parseRect reads "x,y,width,height".
func parseRect(s string) (cg.Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return cg.Rect{}, fmt.Errorf("invalid region %q: want x,y,width,height", s)
	}
	var v [4]float64
	for i, name := range []string{"x", "y", "width", "height"} {
		f, err := parseFloat(name, parts[i])
		if err != nil {
			return cg.Rect{}, err
		}
		v[i] = f
	}
	if v[2] <= 0 || v[3] <= 0 {
		return cg.Rect{}, fmt.Errorf("invalid region %q: width and height must be positive", s)
	}
	return cg.Rect{Origin: cg.Point{X: v[0], Y: v[1]}, Size: cg.Size{Width: v[2], Height: v[3]}}, nil
}
