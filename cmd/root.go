package cmd

import (
	"runtime"

	"github.com/spf13/cobra"

	cg "github.com/bnema/cgdisplay/coregraphics"
	"github.com/bnema/cgdisplay/internal/config"
	"github.com/bnema/cgdisplay/internal/logger"
)

var (
	// Version is set during build
	Version = "0.1.0-dev"

	configFile string
	logLevel   string

	rootCmd = &cobra.Command{
		Use:   "cgdisplay",
		Short: "cgdisplay - inspect macOS displays, windows and the cursor",
		Long: `cgdisplay reads the display configuration, window list and cursor state
from the macOS window server through CoreGraphics.

It lists active and online displays with their bounds, modes and flags,
captures display and window images, moves and hides the cursor, and can
expose the same operations to an assistant as an MCP server.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}
)

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s\n" .Version}}`)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default $HOME/.config/cgdisplay/cgdisplay.toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config and LOG_LEVEL)")
}

// setup loads the configuration and applies the log level before any
// subcommand runs.
func setup(cmd *cobra.Command, args []string) error {
	if configFile != "" {
		config.SetConfigPath(configFile)
	}
	if err := config.Init(); err != nil {
		return err
	}

	level := config.Get().Logging.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	if level != "" {
		if err := logger.SetLevel(level); err != nil {
			return err
		}
	}

	if !cg.Supported {
		logger.Warn("CoreGraphics is not available in this build, display calls will fail", "os", runtime.GOOS)
	}
	logger.Debug("configuration loaded", "path", config.GetConfigPath())
	return nil
}
