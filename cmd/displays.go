package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/cgdisplay/internal/display"
	"github.com/bnema/cgdisplay/internal/ui"
)

var (
	displaysFormat string
	displaysOnline bool
	displaysAt     string
)

var displaysCmd = &cobra.Command{
	Use:     "displays",
	Aliases: []string{"monitors", "ls"},
	Short:   "Show display configuration",
	Long: `List displays with their bounds in global coordinates, pixel size, scale,
refresh rate and state flags.

By default only active displays are listed. --online also includes sleeping
and mirrored displays, and --at lists the displays containing a point.`,
	Args: cobra.NoArgs,
	RunE: runDisplays,
}

func init() {
	addFormatFlag(displaysCmd, &displaysFormat)
	displaysCmd.Flags().BoolVar(&displaysOnline, "online", false, "include online displays that are not drawable")
	displaysCmd.Flags().StringVar(&displaysAt, "at", "", "only displays containing the global point X,Y")
	displaysCmd.MarkFlagsMutuallyExclusive("online", "at")
	rootCmd.AddCommand(displaysCmd)
}

func runDisplays(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(displaysFormat)
	if err != nil {
		return err
	}

	var snap *display.Display
	switch {
	case displaysAt != "":
		p, perr := parsePoint([]string{displaysAt})
		if perr != nil {
			return perr
		}
		snap, err = display.NewAt(cmd.Context(), p)
	case displaysOnline:
		snap, err = display.NewOnline(cmd.Context())
	default:
		snap, err = display.New(cmd.Context())
	}
	if err != nil {
		if format != "table" {
			// keep the output machine readable
			return display.Encode(cmd.OutOrStdout(), format, display.Inventory{
				Monitors: []*display.Monitor{},
				Error:    err.Error(),
			})
		}
		return fmt.Errorf("failed to read displays: %w", err)
	}

	inv := snap.Inventory()
	if format != "table" {
		return display.Encode(cmd.OutOrStdout(), format, inv)
	}

	out := cmd.OutOrStdout()
	if len(inv.Monitors) == 0 {
		fmt.Fprintln(out, ui.FormatWarning("No displays found"))
		return nil
	}

	fmt.Fprintln(out, ui.FormatHeader("Displays", fmt.Sprintf("%d found", len(inv.Monitors))))
	fmt.Fprintln(out, ui.DisplayTable(inv.Monitors))
	fmt.Fprintln(out, ui.SubtleStyle.Render(fmt.Sprintf("Virtual screen: %gx%g at (%g, %g)",
		inv.Virtual.Width, inv.Virtual.Height, inv.Virtual.X, inv.Virtual.Y)))
	return nil
}
