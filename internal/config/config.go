// Package config handles configuration management using Viper
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Output     OutputConfig     `mapstructure:"output"`
	Display    DisplayConfig    `mapstructure:"display"`
	Windows    WindowsConfig    `mapstructure:"windows"`
	Screenshot ScreenshotConfig `mapstructure:"screenshot"`
	Watch      WatchConfig      `mapstructure:"watch"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// OutputConfig controls how listings are printed
type OutputConfig struct {
	Format string `mapstructure:"format"` // table, json or yaml
}

// DisplayConfig selects the display commands act on when none is given
type DisplayConfig struct {
	Default string `mapstructure:"default"` // "main", "ask" or a numeric display ID
}

// WindowsConfig holds the default window list filter
type WindowsConfig struct {
	OnScreenOnly   bool `mapstructure:"on_screen_only"`
	ExcludeDesktop bool `mapstructure:"exclude_desktop"`
}

// ScreenshotConfig contains capture settings
type ScreenshotConfig struct {
	Directory      string  `mapstructure:"directory"`
	Format         string  `mapstructure:"format"` // png, bmp or tiff
	Scale          float64 `mapstructure:"scale"`
	BestResolution bool    `mapstructure:"best_resolution"`
}

// WatchConfig controls the live display view
type WatchConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	LogLevel string `mapstructure:"log_level"` // Override LOG_LEVEL env var
}

const (
	DisplayMain = "main"
	DisplayAsk  = "ask"
)

var (
	// DefaultConfig provides sensible defaults
	DefaultConfig = Config{
		Output: OutputConfig{
			Format: "table",
		},
		Display: DisplayConfig{
			Default: DisplayMain,
		},
		Windows: WindowsConfig{
			OnScreenOnly:   true,
			ExcludeDesktop: true,
		},
		Screenshot: ScreenshotConfig{
			Directory:      ".",
			Format:         "png",
			Scale:          1.0,
			BestResolution: true,
		},
		Watch: WatchConfig{
			Interval: time.Second,
		},
		Logging: LoggingConfig{
			LogLevel: "", // Empty means use LOG_LEVEL env var
		},
	}

	// Global config instance
	cfg *Config

	// Override config path if set
	configPathOverride string
)

var (
	outputFormats     = []string{"table", "json", "yaml"}
	screenshotFormats = []string{"png", "bmp", "tiff"}
)

// SetConfigPath allows overriding the config path
func SetConfigPath(path string) {
	configPathOverride = path
}

// Init initializes the configuration system
func Init() error {
	viper.SetConfigName("cgdisplay")
	viper.SetConfigType("toml")

	if configPathOverride != "" {
		viper.SetConfigFile(configPathOverride)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "cgdisplay"))
		}
		viper.AddConfigPath(".")
	}

	viper.SetEnvPrefix("CGDISPLAY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Set defaults - need to set individual fields for proper merging
	viper.SetDefault("output.format", DefaultConfig.Output.Format)
	viper.SetDefault("display.default", DefaultConfig.Display.Default)
	viper.SetDefault("windows.on_screen_only", DefaultConfig.Windows.OnScreenOnly)
	viper.SetDefault("windows.exclude_desktop", DefaultConfig.Windows.ExcludeDesktop)
	viper.SetDefault("screenshot.directory", DefaultConfig.Screenshot.Directory)
	viper.SetDefault("screenshot.format", DefaultConfig.Screenshot.Format)
	viper.SetDefault("screenshot.scale", DefaultConfig.Screenshot.Scale)
	viper.SetDefault("screenshot.best_resolution", DefaultConfig.Screenshot.BestResolution)
	viper.SetDefault("watch.interval", DefaultConfig.Watch.Interval)
	viper.SetDefault("logging.log_level", DefaultConfig.Logging.LogLevel)

	if err := viper.ReadInConfig(); err != nil {
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if !notFound && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, use defaults
	}

	c := &Config{}
	if err := viper.Unmarshal(c); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return err
	}
	cfg = c

	return nil
}

// Validate rejects values the commands cannot act on.
func (c *Config) Validate() error {
	if !oneOf(c.Output.Format, outputFormats) {
		return fmt.Errorf("output.format: unsupported format %q (want %s)", c.Output.Format, strings.Join(outputFormats, ", "))
	}
	if !oneOf(c.Screenshot.Format, screenshotFormats) {
		return fmt.Errorf("screenshot.format: unsupported format %q (want %s)", c.Screenshot.Format, strings.Join(screenshotFormats, ", "))
	}
	if c.Screenshot.Scale <= 0 {
		return fmt.Errorf("screenshot.scale must be positive, got %v", c.Screenshot.Scale)
	}
	if c.Watch.Interval <= 0 {
		return fmt.Errorf("watch.interval must be positive, got %v", c.Watch.Interval)
	}
	switch c.Display.Default {
	case DisplayMain, DisplayAsk:
	default:
		if _, err := strconv.ParseUint(c.Display.Default, 10, 32); err != nil {
			return fmt.Errorf("display.default: want %q, %q or a display ID, got %q", DisplayMain, DisplayAsk, c.Display.Default)
		}
	}
	return nil
}

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

// Get returns the current configuration
func Get() *Config {
	if cfg == nil {
		// Return defaults if not initialized
		d := DefaultConfig
		return &d
	}
	return cfg
}

// Set sets the current configuration (for testing)
func Set(c *Config) {
	cfg = c
}

// SetValue updates one setting by its dotted key, for example
// "display.default", and makes the result current if it validates.
func SetValue(key, value string) error {
	key = strings.ToLower(key)
	if !viper.IsSet(key) {
		return fmt.Errorf("unknown setting %q", key)
	}

	prev := viper.Get(key)
	viper.Set(key, value)

	c := &Config{}
	err := viper.Unmarshal(c)
	if err == nil {
		err = c.Validate()
	}
	if err != nil {
		viper.Set(key, prev)
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	cfg = c
	return nil
}

// Save writes the current settings to the config file
func Save() error {
	configPath := GetConfigPath()

	if err := os.MkdirAll(filepath.Dir(configPath), 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := viper.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() string {
	if configPathOverride != "" {
		return configPathOverride
	}

	if viper.ConfigFileUsed() != "" {
		return viper.ConfigFileUsed()
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "cgdisplay.toml"
	}

	return filepath.Join(home, ".config", "cgdisplay", "cgdisplay.toml")
}
