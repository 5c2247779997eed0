package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	cg "github.com/bnema/cgdisplay/coregraphics"
	"github.com/bnema/cgdisplay/internal/display"
	"github.com/bnema/cgdisplay/internal/logger"
	"github.com/bnema/cgdisplay/internal/ui"
)

var (
	cursorDisplay string
	cursorGlobal  bool
)

var cursorCmd = &cobra.Command{
	Use:   "cursor",
	Short: "Hide, show and move the mouse cursor",
}

var cursorHideCmd = &cobra.Command{
	Use:   "hide",
	Short: "Hide the cursor on a display",
	Long: `Hide the cursor. Hide and show calls are counted by the window server, so
every hide must be matched by a show before the cursor reappears.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return setCursorVisible(cmd, false)
	},
}

var cursorShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the cursor on a display",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return setCursorVisible(cmd, true)
	},
}

var cursorMoveCmd = &cobra.Command{
	Use:   "move X Y",
	Short: "Move the cursor to a point relative to a display",
	Long: `Move the cursor to a point relative to the origin of a display.

With --global the point is in global coordinates and the display that
contains it is picked automatically.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runCursorMove,
}

var cursorWarpCmd = &cobra.Command{
	Use:   "warp X Y",
	Short: "Warp the cursor to a global point without generating mouse events",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := parsePoint(args)
		if err != nil {
			return err
		}
		if err := cg.WarpMouseCursorPosition(p); err != nil {
			return fmt.Errorf("warp cursor: %w", err)
		}
		logger.Debug("cursor warped", "x", p.X, "y", p.Y)
		fmt.Fprintf(cmd.OutOrStdout(), "%s Cursor warped to (%g, %g)\n", ui.IconCheck, p.X, p.Y)
		return nil
	},
}

var cursorAssociateCmd = &cobra.Command{
	Use:       "associate true|false",
	Short:     "Connect or disconnect the mouse from the cursor",
	Long:      `With false, mouse movement no longer moves the cursor until it is associated again.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"true", "false"},
	RunE: func(cmd *cobra.Command, args []string) error {
		connected, err := strconv.ParseBool(args[0])
		if err != nil {
			return fmt.Errorf("invalid value %q: want true or false", args[0])
		}
		if err := cg.AssociateMouseAndMouseCursorPosition(connected); err != nil {
			return fmt.Errorf("associate mouse and cursor: %w", err)
		}
		state := "disconnected from"
		if connected {
			state = "connected to"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s Mouse %s the cursor\n", ui.IconCheck, state)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{cursorHideCmd, cursorShowCmd, cursorMoveCmd} {
		c.Flags().StringVarP(&cursorDisplay, "display", "d", "", "display ID, main or ask (default from config)")
	}
	cursorMoveCmd.Flags().BoolVarP(&cursorGlobal, "global", "g", false, "treat the point as global coordinates")
	cursorMoveCmd.MarkFlagsMutuallyExclusive("display", "global")

	cursorCmd.AddCommand(cursorHideCmd, cursorShowCmd, cursorMoveCmd, cursorWarpCmd, cursorAssociateCmd)
	rootCmd.AddCommand(cursorCmd)
}

func setCursorVisible(cmd *cobra.Command, visible bool) error {
	m, err := selectDisplay(cmd, cursorDisplay)
	if err != nil {
		return err
	}

	d := m.Display()
	action := "hidden"
	if visible {
		action = "shown"
		err = d.ShowCursor()
	} else {
		err = d.HideCursor()
	}
	if err != nil {
		return fmt.Errorf("cursor on display %d: %w", m.ID, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Cursor %s on %s\n", ui.IconCheck, action, m.Name)
	return nil
}

func runCursorMove(cmd *cobra.Command, args []string) error {
	p, err := parsePoint(args)
	if err != nil {
		return err
	}

	var (
		m     *display.Monitor
		local = p
	)
	if cursorGlobal {
		snap, err := display.New(cmd.Context())
		if err != nil {
			return err
		}
		var ok bool
		if m, local, ok = snap.ToLocal(p); !ok {
			return fmt.Errorf("no display contains (%g, %g)", p.X, p.Y)
		}
	} else if m, err = selectDisplay(cmd, cursorDisplay); err != nil {
		return err
	}

	if err := m.Display().MoveCursorToPoint(local); err != nil {
		return fmt.Errorf("move cursor on display %d: %w", m.ID, err)
	}
	logger.Debug("cursor moved", "display", m.ID, "x", local.X, "y", local.Y)
	fmt.Fprintf(cmd.OutOrStdout(), "%s Cursor moved to (%g, %g) on %s\n", ui.IconCheck, local.X, local.Y, m.Name)
	return nil
}
