package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/cgdisplay/internal/config"
	"github.com/bnema/cgdisplay/internal/logger"
	"github.com/bnema/cgdisplay/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage cgdisplay configuration",
	Long:  `Manage cgdisplay configuration: output format, default display, window filters, screenshots and logging.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		out := cmd.OutOrStdout()

		fmt.Fprintln(out, ui.FormatHeader("Current Configuration", config.GetConfigPath()))

		fmt.Fprintln(out, ui.HeaderStyle.Render("[output]"))
		fmt.Fprintf(out, "  format: %s\n", cfg.Output.Format)

		fmt.Fprintln(out, ui.HeaderStyle.Render("[display]"))
		fmt.Fprintf(out, "  default: %s\n", cfg.Display.Default)

		fmt.Fprintln(out, ui.HeaderStyle.Render("[windows]"))
		fmt.Fprintf(out, "  on_screen_only: %v\n", cfg.Windows.OnScreenOnly)
		fmt.Fprintf(out, "  exclude_desktop: %v\n", cfg.Windows.ExcludeDesktop)

		fmt.Fprintln(out, ui.HeaderStyle.Render("[screenshot]"))
		fmt.Fprintf(out, "  directory: %s\n", cfg.Screenshot.Directory)
		fmt.Fprintf(out, "  format: %s\n", cfg.Screenshot.Format)
		fmt.Fprintf(out, "  scale: %g\n", cfg.Screenshot.Scale)
		fmt.Fprintf(out, "  best_resolution: %v\n", cfg.Screenshot.BestResolution)

		fmt.Fprintln(out, ui.HeaderStyle.Render("[watch]"))
		fmt.Fprintf(out, "  interval: %s\n", cfg.Watch.Interval)

		fmt.Fprintln(out, ui.HeaderStyle.Render("[logging]"))
		level := cfg.Logging.LogLevel
		if level == "" {
			level = "(LOG_LEVEL or info)"
		}
		fmt.Fprintf(out, "  log_level: %s\n", level)
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), config.GetConfigPath())
	},
}

var configSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save current configuration to file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Save(); err != nil {
			return err
		}
		logger.Infof("Configuration saved to: %s", config.GetConfigPath())
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting and save it",
	Long: `Change a setting by its dotted key and save the config file, for example:

  cgdisplay config set display.default ask
  cgdisplay config set screenshot.scale 0.5
  cgdisplay config set watch.interval 500ms`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.SetValue(args[0], args[1]); err != nil {
			return err
		}
		if err := config.Save(); err != nil {
			return err
		}
		logger.Infof("Set %s = %s in %s", args[0], args[1], config.GetConfigPath())
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration file with defaults",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := config.GetConfigPath()
		if _, err := os.Stat(configPath); err == nil {
			logger.Infof("Configuration file already exists at: %s", configPath)

			force, _ := cmd.Flags().GetBool("force")
			if !force {
				logger.Info("Use --force to overwrite")
				return nil
			}
		}

		if err := config.Save(); err != nil {
			return err
		}

		logger.Infof("Configuration initialized at: %s", configPath)
		logger.Info("You can now edit the file directly, or use 'cgdisplay config set' and 'cgdisplay config show'")
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configSaveCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)

	configInitCmd.Flags().Bool("force", false, "Force overwrite existing configuration")
	rootCmd.AddCommand(configCmd)
}
