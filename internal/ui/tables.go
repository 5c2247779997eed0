package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	cg "github.com/bnema/cgdisplay/coregraphics"
	"github.com/bnema/cgdisplay/internal/display"
)

// newTable applies the shared table look. highlight marks rows drawn in
// the success color, indexed like rows.
func newTable(headers []string, rows [][]string, highlight func(row int) bool) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(ColorSubtle)).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return lipgloss.NewStyle().
					Foreground(ColorPrimary).
					Bold(true).
					Padding(0, 1)
			case highlight != nil && highlight(row):
				return lipgloss.NewStyle().
					Foreground(ColorSuccess).
					Padding(0, 1)
			case col == 0:
				return lipgloss.NewStyle().
					Foreground(ColorInfo).
					Bold(true).
					Padding(0, 1)
			default:
				return lipgloss.NewStyle().
					Foreground(ColorText).
					Padding(0, 1)
			}
		}).
		Headers(headers...).
		Rows(rows...)
}

func monitorFlags(m *display.Monitor) string {
	var flags []string
	if m.Main {
		flags = append(flags, IconMain+" main")
	}
	if m.Builtin {
		flags = append(flags, IconBuiltin+" built-in")
	}
	if m.Asleep {
		flags = append(flags, IconAsleep+" asleep")
	}
	if m.Mirrored {
		if m.MirrorOf != 0 {
			flags = append(flags, fmt.Sprintf("%s mirror of %d", IconMirror, m.MirrorOf))
		} else {
			flags = append(flags, IconMirror+" mirrored")
		}
	}
	return strings.Join(flags, ", ")
}

// DisplayTable renders the monitors of a snapshot
func DisplayTable(monitors []*display.Monitor) string {
	rows := make([][]string, 0, len(monitors))
	for _, m := range monitors {
		refresh := "-"
		if m.RefreshRate > 0 {
			refresh = fmt.Sprintf("%gHz", m.RefreshRate)
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", m.ID),
			m.Name,
			m.Resolution(),
			fmt.Sprintf("(%g, %g)", m.X, m.Y),
			fmt.Sprintf("%gx", m.Scale),
			refresh,
			monitorFlags(m),
		})
	}

	return newTable(
		[]string{"ID", "NAME", "RESOLUTION", "ORIGIN", "SCALE", "REFRESH", "FLAGS"},
		rows,
		func(row int) bool { return row >= 0 && row < len(monitors) && monitors[row].Main },
	).String()
}

// ModeTable renders display modes, highlighting the current one
func ModeTable(modes []display.ModeInfo) string {
	rows := make([][]string, 0, len(modes))
	for _, m := range modes {
		current := ""
		if m.Current {
			current = IconCheck
		}
		usable := "no"
		if m.UsableForDesktop {
			usable = "yes"
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", m.IODisplayModeID),
			fmt.Sprintf("%dx%d", m.Width, m.Height),
			fmt.Sprintf("%dx%d", m.PixelWidth, m.PixelHeight),
			fmt.Sprintf("%gHz", m.RefreshRate),
			fmt.Sprintf("%gx", m.Scale),
			usable,
			current,
		})
	}

	return newTable(
		[]string{"MODE", "SIZE", "PIXELS", "REFRESH", "SCALE", "DESKTOP", "CURRENT"},
		rows,
		func(row int) bool { return row >= 0 && row < len(modes) && modes[row].Current },
	).String()
}

// WindowTable renders decoded window descriptors
func WindowTable(windows []cg.WindowInfo) string {
	rows := make([][]string, 0, len(windows))
	for _, w := range windows {
		name := w.Name
		if name == "" {
			name = SubtleStyle.Render("-")
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", w.Number),
			w.OwnerName,
			fmt.Sprintf("%d", w.OwnerPID),
			name,
			fmt.Sprintf("%d", w.Layer),
			fmt.Sprintf("%gx%g+%g+%g", w.Bounds.Size.Width, w.Bounds.Size.Height, w.Bounds.Origin.X, w.Bounds.Origin.Y),
			w.SharingState.String(),
		})
	}

	return newTable(
		[]string{"ID", "OWNER", "PID", "NAME", "LAYER", "BOUNDS", "SHARING"},
		rows,
		func(row int) bool {
			return row >= 0 && row < len(windows) && windows[row].OnScreen && windows[row].Layer == 0
		},
	).String()
}
