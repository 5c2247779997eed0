package ui

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/bnema/cgdisplay/internal/display"
)

// ErrNotInteractive is returned when a prompt is needed but stdin is not a
// terminal.
var ErrNotInteractive = errors.New("cannot prompt for a display: stdin is not a terminal")

// IsInteractive reports whether stdin and stdout are terminals
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// DisplayOptions builds picker options, main display first
func DisplayOptions(monitors []*display.Monitor) []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(monitors))
	for _, m := range monitors {
		label := fmt.Sprintf("%s  %s", m.Name, m.Resolution())
		if m.Main {
			label += "  " + IconMain
			options = append([]huh.Option[string]{huh.NewOption(label, strconv.FormatUint(uint64(m.ID), 10))}, options...)
			continue
		}
		options = append(options, huh.NewOption(label, strconv.FormatUint(uint64(m.ID), 10)))
	}
	return options
}

// PickDisplay asks the user to choose a display. A single display is
// returned without prompting.
func PickDisplay(snapshot *display.Display) (*display.Monitor, error) {
	monitors := snapshot.Monitors()
	switch len(monitors) {
	case 0:
		return nil, display.ErrNoDisplays
	case 1:
		return monitors[0], nil
	}

	if !IsInteractive() {
		return nil, ErrNotInteractive
	}

	var selected string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select a display").
				Description(fmt.Sprintf("%d active displays", len(monitors))).
				Options(DisplayOptions(monitors)...).
				Value(&selected),
		),
	)
	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("display selection cancelled: %w", err)
	}

	return snapshot.Resolve(selected)
}
