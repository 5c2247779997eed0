package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME and the working directory at an empty temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)

	viper.Reset()
	SetConfigPath("")
	t.Cleanup(func() {
		viper.Reset()
		SetConfigPath("")
		Set(nil)
	})
	return dir
}

func TestInitDefaults(t *testing.T) {
	isolate(t)

	require.NoError(t, Init())
	c := Get()

	assert.Equal(t, "table", c.Output.Format)
	assert.Equal(t, DisplayMain, c.Display.Default)
	assert.True(t, c.Windows.OnScreenOnly)
	assert.True(t, c.Windows.ExcludeDesktop)
	assert.Equal(t, ".", c.Screenshot.Directory)
	assert.Equal(t, "png", c.Screenshot.Format)
	assert.Equal(t, 1.0, c.Screenshot.Scale)
	assert.True(t, c.Screenshot.BestResolution)
	assert.Equal(t, time.Second, c.Watch.Interval)
	assert.Empty(t, c.Logging.LogLevel)
}

func TestInitReadsUserConfig(t *testing.T) {
	home := isolate(t)

	dir := filepath.Join(home, ".config", "cgdisplay")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cgdisplay.toml"), []byte(`
[output]
format = "json"

[display]
default = "69733382"

[screenshot]
format = "tiff"
scale = 0.5

[watch]
interval = "250ms"
`), 0o644))

	require.NoError(t, Init())
	c := Get()

	assert.Equal(t, "json", c.Output.Format)
	assert.Equal(t, "69733382", c.Display.Default)
	assert.Equal(t, "tiff", c.Screenshot.Format)
	assert.Equal(t, 0.5, c.Screenshot.Scale)
	assert.Equal(t, 250*time.Millisecond, c.Watch.Interval)
	// untouched sections keep defaults
	assert.True(t, c.Windows.OnScreenOnly)
	assert.Equal(t, filepath.Join(dir, "cgdisplay.toml"), GetConfigPath())
}

func TestInitEnvOverride(t *testing.T) {
	isolate(t)
	t.Setenv("CGDISPLAY_OUTPUT_FORMAT", "yaml")
	t.Setenv("CGDISPLAY_LOGGING_LOG_LEVEL", "debug")

	require.NoError(t, Init())
	assert.Equal(t, "yaml", Get().Output.Format)
	assert.Equal(t, "debug", Get().Logging.LogLevel)
}

func TestInitExplicitPath(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte("[windows]\non_screen_only = false\n"), 0o644))

	SetConfigPath(path)
	require.NoError(t, Init())
	assert.False(t, Get().Windows.OnScreenOnly)
	assert.Equal(t, path, GetConfigPath())
}

func TestInitInvalidTOML(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cgdisplay.toml"), []byte("[output\nformat = 1"), 0o644))

	err := Init()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"defaults", func(c *Config) {}, ""},
		{"display id", func(c *Config) { c.Display.Default = "1" }, ""},
		{"ask", func(c *Config) { c.Display.Default = DisplayAsk }, ""},
		{"bad display", func(c *Config) { c.Display.Default = "left" }, "display.default"},
		{"bad output", func(c *Config) { c.Output.Format = "xml" }, "output.format"},
		{"bad screenshot format", func(c *Config) { c.Screenshot.Format = "jpeg" }, "screenshot.format"},
		{"zero scale", func(c *Config) { c.Screenshot.Scale = 0 }, "screenshot.scale"},
		{"zero interval", func(c *Config) { c.Watch.Interval = 0 }, "watch.interval"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSaveWritesDefaults(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "nested", "cgdisplay.toml")
	SetConfigPath(path)

	require.NoError(t, Init())
	require.NoError(t, Save())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[screenshot]")
	assert.Contains(t, string(data), "png")
}

func TestGetWithoutInitReturnsCopy(t *testing.T) {
	Set(nil)
	c := Get()
	c.Output.Format = "json"
	assert.Equal(t, "table", DefaultConfig.Output.Format)
}

func TestSetValue(t *testing.T) {
	isolate(t)
	require.NoError(t, Init())

	require.NoError(t, SetValue("display.default", "69733382"))
	assert.Equal(t, "69733382", Get().Display.Default)

	require.NoError(t, SetValue("Watch.Interval", "250ms"))
	assert.Equal(t, 250*time.Millisecond, Get().Watch.Interval)

	require.NoError(t, SetValue("windows.on_screen_only", "false"))
	assert.False(t, Get().Windows.OnScreenOnly)

	err := SetValue("output.format", "xml")
	require.Error(t, err)
	assert.Equal(t, "table", Get().Output.Format)
	assert.Equal(t, "table", viper.GetString("output.format"))

	assert.Error(t, SetValue("server.port", "52525"))
}
