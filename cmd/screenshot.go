package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	cg "github.com/bnema/cgdisplay/coregraphics"
	"github.com/bnema/cgdisplay/internal/capture"
	"github.com/bnema/cgdisplay/internal/config"
	"github.com/bnema/cgdisplay/internal/logger"
	"github.com/bnema/cgdisplay/internal/ui"
)

var (
	shotDisplay       string
	shotWindows       []uint
	shotDesktop       bool
	shotRegion        string
	shotOutput        string
	shotScale         float64
	shotFormat        string
	shotNominal       bool
	shotIgnoreFraming bool
)

// now is replaced in tests
var now = time.Now

var screenshotCmd = &cobra.Command{
	Use:     "screenshot",
	Aliases: []string{"capture"},
	Short:   "Capture a display, a region, windows or the whole desktop",
	Long: `Capture an image and write it as PNG, BMP or TIFF.

Without --output a timestamped file is written to screenshot.directory
from the config. --output - writes the image to stdout.

Capturing other applications' windows requires the screen recording
permission in System Settings.`,
	Args: cobra.NoArgs,
	RunE: runScreenshot,
}

func init() {
	f := screenshotCmd.Flags()
	f.StringVarP(&shotDisplay, "display", "d", "", "display ID, main or ask (default from config)")
	f.UintSliceVarP(&shotWindows, "window", "w", nil, "window IDs to composite, front to back")
	f.BoolVar(&shotDesktop, "desktop", false, "every on-screen window across all displays")
	f.StringVar(&shotRegion, "region", "", "display-local region x,y,width,height")
	f.StringVarP(&shotOutput, "output", "O", "", "output file, or - for stdout")
	f.Float64Var(&shotScale, "scale", 0, "resize factor (default from config)")
	f.StringVar(&shotFormat, "format", "", "png, bmp or tiff (default from the output extension or config)")
	f.BoolVar(&shotNominal, "nominal", false, "capture at nominal rather than best resolution")
	f.BoolVar(&shotIgnoreFraming, "ignore-framing", false, "exclude window shadows and framing")

	screenshotCmd.MarkFlagsMutuallyExclusive("window", "desktop", "region")
	screenshotCmd.MarkFlagsMutuallyExclusive("window", "display")
	screenshotCmd.MarkFlagsMutuallyExclusive("desktop", "display")
	rootCmd.AddCommand(screenshotCmd)
}

func screenshotFormat(cfg config.ScreenshotConfig) (capture.Format, error) {
	switch {
	case shotFormat != "":
		return capture.ParseFormat(shotFormat)
	case shotOutput != "" && shotOutput != "-" && filepath.Ext(shotOutput) != "":
		return capture.ParseFormat(filepath.Ext(shotOutput))
	default:
		return capture.ParseFormat(cfg.Format)
	}
}

func runScreenshot(cmd *cobra.Command, args []string) error {
	cfg := config.Get().Screenshot

	format, err := screenshotFormat(cfg)
	if err != nil {
		return err
	}

	req := capture.Request{
		Desktop:        shotDesktop,
		BestResolution: cfg.BestResolution && !shotNominal,
		IgnoreFraming:  shotIgnoreFraming,
		Scale:          cfg.Scale,
	}
	if cmd.Flags().Changed("scale") {
		if shotScale <= 0 {
			return fmt.Errorf("--scale must be positive, got %g", shotScale)
		}
		req.Scale = shotScale
	}
	for _, id := range shotWindows {
		req.Windows = append(req.Windows, cg.WindowID(id))
	}

	if len(req.Windows) == 0 && !req.Desktop {
		m, err := selectDisplay(cmd, shotDisplay)
		if err != nil {
			return err
		}
		req.Display = m.ID
		if shotRegion != "" {
			r, err := parseRect(shotRegion)
			if err != nil {
				return err
			}
			req.Region = &r
		}
	}

	switch shotOutput {
	case "-":
		return capture.Capture(cmd.OutOrStdout(), req, format)
	case "":
		path, err := capture.Save(cfg.Directory, req, format, now())
		if err != nil {
			return err
		}
		logger.Debug("screenshot saved", "path", path, "format", format)
		fmt.Fprintf(cmd.OutOrStdout(), "%s Saved %s\n", ui.IconCheck, path)
		return nil
	}

	file, err := os.Create(shotOutput)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", shotOutput, err)
	}
	if err := capture.Capture(file, req, format); err != nil {
		file.Close()
		os.Remove(shotOutput)
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Saved %s\n", ui.IconCheck, shotOutput)
	return nil
}
