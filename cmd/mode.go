package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/cgdisplay/internal/display"
	"github.com/bnema/cgdisplay/internal/ui"
)

var (
	modeDisplay string
	modeAll     bool
	modeFormat  string
)

// modeReport is the json/yaml form of the mode command
type modeReport struct {
	Display uint32             `json:"display" yaml:"display"`
	Name    string             `json:"name" yaml:"name"`
	Modes   []display.ModeInfo `json:"modes" yaml:"modes"`
}

var modeCmd = &cobra.Command{
	Use:     "mode",
	Aliases: []string{"modes"},
	Short:   "Show the current or supported display modes",
	Args:    cobra.NoArgs,
	RunE:    runMode,
}

func init() {
	modeCmd.Flags().StringVarP(&modeDisplay, "display", "d", "", "display ID, main or ask (default from config)")
	modeCmd.Flags().BoolVarP(&modeAll, "all", "a", false, "list every mode the display supports")
	addFormatFlag(modeCmd, &modeFormat)
	rootCmd.AddCommand(modeCmd)
}

func runMode(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(modeFormat)
	if err != nil {
		return err
	}

	m, err := selectDisplay(cmd, modeDisplay)
	if err != nil {
		return err
	}

	var modes []display.ModeInfo
	if modeAll {
		var ok bool
		if modes, ok = display.AllModes(m.Display()); !ok {
			return fmt.Errorf("display %d reported no modes", m.ID)
		}
	} else {
		current, ok := display.CurrentMode(m.Display())
		if !ok {
			return fmt.Errorf("display %d has no current mode", m.ID)
		}
		modes = []display.ModeInfo{current}
	}

	if format != "table" {
		return display.Encode(cmd.OutOrStdout(), format, modeReport{
			Display: uint32(m.ID),
			Name:    m.Name,
			Modes:   modes,
		})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, ui.FormatHeader(m.Name, fmt.Sprintf("display %d", m.ID)))
	fmt.Fprintln(out, ui.ModeTable(modes))
	return nil
}
