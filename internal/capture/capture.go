// Package capture grabs display and window images and writes them to disk
package capture

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"

	cg "github.com/bnema/cgdisplay/coregraphics"
	"github.com/bnema/cgdisplay/internal/logger"
)

// ErrNoImage is returned when the system produced no image, usually because
// screen recording permission was not granted.
var ErrNoImage = errors.New("capture: no image returned")

// Format is an output image encoding
type Format string

const (
	FormatPNG  Format = "png"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
)

// ParseFormat accepts a format name or a file extension
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "png", "":
		return FormatPNG, nil
	case "bmp":
		return FormatBMP, nil
	case "tiff", "tif":
		return FormatTIFF, nil
	default:
		return "", fmt.Errorf("unsupported image format %q", s)
	}
}

// Request selects what to capture. With Windows set, those windows are
// composited; with Desktop set, every on-screen window is; otherwise the
// display is captured, optionally cropped to Region.
type Request struct {
	Display        cg.DisplayID
	Region         *cg.Rect // display-local
	Windows        []cg.WindowID
	Desktop        bool
	BestResolution bool
	IgnoreFraming  bool
	Scale          float64 // 0 and 1 leave the image untouched
}

func (r Request) imageOption() cg.WindowImageOption {
	opt := cg.WindowImageNominalResolution
	if r.BestResolution {
		opt = cg.WindowImageBestResolution
	}
	if r.IgnoreFraming {
		opt |= cg.WindowImageBoundsIgnoreFraming
	}
	return opt
}

func (r Request) grab() (*cg.Image, bool) {
	switch {
	case len(r.Windows) > 0:
		return cg.ScreenshotFromWindows(cg.RectNull, r.Windows, r.imageOption())
	case r.Desktop:
		return cg.Screenshot(cg.RectInfinite, cg.WindowListOptionOnScreenOnly, cg.NullWindowID, r.imageOption())
	case r.Region != nil:
		return cg.NewDisplay(r.Display).ImageForRect(*r.Region)
	default:
		return cg.NewDisplay(r.Display).Image()
	}
}

// Grab captures the request into memory
func Grab(req Request) (*image.RGBA, error) {
	img, ok := req.grab()
	if !ok {
		return nil, ErrNoImage
	}
	defer img.Release()

	logger.Debugf("capture: %dx%d image, %d bits per pixel", img.Width(), img.Height(), img.BitsPerPixel())
	rgba, err := img.RGBA()
	if err != nil {
		return nil, err
	}
	return Scale(rgba, req.Scale), nil
}

// Scale resizes src by factor using Catmull-Rom resampling
func Scale(src *image.RGBA, factor float64) *image.RGBA {
	if factor <= 0 || factor == 1 {
		return src
	}
	b := src.Bounds()
	w := int(math.Max(1, math.Round(float64(b.Dx())*factor)))
	h := int(math.Max(1, math.Round(float64(b.Dy())*factor)))

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

// Encode writes img in the given format
func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("unsupported image format %q", f)
	}
}

// Capture grabs the request and encodes it to w
func Capture(w io.Writer, req Request, f Format) error {
	img, err := Grab(req)
	if err != nil {
		return err
	}
	return Encode(w, img, f)
}

// FileName builds a timestamped name for a capture of the request
func FileName(req Request, f Format, now time.Time) string {
	subject := fmt.Sprintf("display%d", req.Display)
	switch {
	case len(req.Windows) == 1:
		subject = fmt.Sprintf("window%d", req.Windows[0])
	case len(req.Windows) > 1:
		subject = "windows"
	case req.Desktop:
		subject = "desktop"
	}
	return fmt.Sprintf("cgdisplay-%s-%s.%s", subject, now.Format("20060102-150405"), f)
}

// Save captures the request into a new file in dir and returns its path
func Save(dir string, req Request, f Format, now time.Time) (string, error) {
	img, err := Grab(req)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(dir, FileName(req, f, now))

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := Encode(file, img, f); err != nil {
		file.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return "", err
	}

	logger.Infof("Saved %dx%d capture to %s", img.Bounds().Dx(), img.Bounds().Dy(), path)
	return path, nil
}
