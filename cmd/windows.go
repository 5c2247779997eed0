package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	cg "github.com/bnema/cgdisplay/coregraphics"
	"github.com/bnema/cgdisplay/internal/config"
	"github.com/bnema/cgdisplay/internal/display"
	"github.com/bnema/cgdisplay/internal/ui"
)

// windowFlags mirrors the windows command line
type windowFlags struct {
	all            bool
	onScreen       bool
	includeDesktop bool
	relativeTo     uint32
	above          bool
	below          bool
	including      bool
	owner          string
	format         string
}

var windowsOpts windowFlags

var windowsCmd = &cobra.Command{
	Use:   "windows",
	Short: "List windows known to the window server",
	Long: `List windows front to back with their owner, layer, bounds and sharing state.

--relative-to selects windows by their position in the stacking order:
--above and --below list the on-screen windows in front of or behind the
reference window, and --including adds the reference window itself.`,
	Args: cobra.NoArgs,
	RunE: runWindows,
}

func init() {
	f := windowsCmd.Flags()
	f.BoolVarP(&windowsOpts.all, "all", "a", false, "include off-screen windows")
	f.BoolVar(&windowsOpts.onScreen, "on-screen", false, "only on-screen windows (default from config)")
	f.BoolVar(&windowsOpts.includeDesktop, "include-desktop", false, "include desktop elements such as the wallpaper")
	f.Uint32Var(&windowsOpts.relativeTo, "relative-to", 0, "reference window ID for --above, --below and --including")
	f.BoolVar(&windowsOpts.above, "above", false, "on-screen windows in front of the reference window")
	f.BoolVar(&windowsOpts.below, "below", false, "on-screen windows behind the reference window")
	f.BoolVar(&windowsOpts.including, "including", false, "include the reference window")
	f.StringVar(&windowsOpts.owner, "owner", "", "only windows whose owner name contains this text")
	addFormatFlag(windowsCmd, &windowsOpts.format)

	windowsCmd.MarkFlagsMutuallyExclusive("all", "on-screen")
	windowsCmd.MarkFlagsMutuallyExclusive("above", "below")
	rootCmd.AddCommand(windowsCmd)
}

// query turns the flags into window list options, filling unset choices
// from the windows section of the config.
func (f windowFlags) query(defaults config.WindowsConfig) (display.WindowQuery, error) {
	q := display.WindowQuery{Owner: f.owner}

	relative := f.above || f.below || f.including
	if relative && f.relativeTo == 0 {
		return q, errors.New("--above, --below and --including need --relative-to")
	}
	if f.relativeTo != 0 && !relative {
		return q, errors.New("--relative-to needs --above, --below or --including")
	}

	switch {
	case f.above:
		q.Option = cg.WindowListOptionOnScreenAboveWindow
	case f.below:
		q.Option = cg.WindowListOptionOnScreenBelowWindow
	case f.all:
		q.Option = cg.WindowListOptionAll
	case f.onScreen || (defaults.OnScreenOnly && !f.including):
		q.Option = cg.WindowListOptionOnScreenOnly
	default:
		q.Option = cg.WindowListOptionAll
	}

	if f.including {
		q.Option |= cg.WindowListOptionIncludingWindow
	}
	if relative {
		q.RelativeTo = cg.WindowID(f.relativeTo)
	}
	if defaults.ExcludeDesktop && !f.includeDesktop {
		q.Option |= cg.WindowListExcludeDesktopElements
	}
	return q, nil
}

func runWindows(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(windowsOpts.format)
	if err != nil {
		return err
	}

	q, err := windowsOpts.query(config.Get().Windows)
	if err != nil {
		return err
	}

	windows, err := display.ListWindows(q)
	if err != nil {
		return err
	}

	if format != "table" {
		return display.Encode(cmd.OutOrStdout(), format, display.Windows(windows))
	}

	out := cmd.OutOrStdout()
	if len(windows) == 0 {
		fmt.Fprintln(out, ui.FormatWarning("No windows matched"))
		return nil
	}
	fmt.Fprintln(out, ui.FormatHeader("Windows", fmt.Sprintf("%d front to back", len(windows))))
	fmt.Fprintln(out, ui.WindowTable(windows))
	return nil
}
