package cmd

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/cgdisplay/internal/config"
	"github.com/bnema/cgdisplay/internal/display"
	"github.com/bnema/cgdisplay/internal/ui"
)

var watchInterval time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the display layout and report changes",
	Long: `Poll the active displays and redraw the layout when it changes, for example
when a monitor is plugged in, rearranged or switches resolution.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVarP(&watchInterval, "interval", "i", 0, "poll interval (default from config)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	interval := config.Get().Watch.Interval
	if cmd.Flags().Changed("interval") {
		if watchInterval <= 0 {
			return fmt.Errorf("--interval must be positive, got %v", watchInterval)
		}
		interval = watchInterval
	}

	model := ui.NewWatchModel(cmd.Context(), interval, display.New)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	return nil
}
