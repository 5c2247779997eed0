package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	cg "github.com/bnema/cgdisplay/coregraphics"
)

var (
	// Commit and Date are set by the linker
	Commit = "none"
	Date   = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "cgdisplay %s\n", Version)
		fmt.Fprintf(out, "commit: %s\n", Commit)
		fmt.Fprintf(out, "built: %s\n", Date)
		backend := "coregraphics"
		if !cg.Supported {
			backend = "unavailable"
		}
		fmt.Fprintf(out, "platform: %s/%s (%s)\n", runtime.GOOS, runtime.GOARCH, backend)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
