// Package coregraphics binds the macOS CoreGraphics display, window list
// and cursor APIs.
//
// Display identifiers are plain values. Display modes, images and window
// lists are reference-counted native objects; they are wrapped in owning
// types (Mode, Image, WindowList) that retain on Clone and release exactly
// once on Release. Calls that return a CGError report a non-zero code as an
// Error holding that code unchanged.
package coregraphics

import (
	"math"
	"unsafe"
)

// DisplayID identifies a display known to the window server.
type DisplayID uint32

// WindowID identifies a window known to the window server.
type WindowID uint32

// NullWindowID is the invalid window ID.
const NullWindowID WindowID = 0

// WindowListOption selects the windows included in a window list query.
type WindowListOption uint32

const (
	WindowListOptionAll                 WindowListOption = 0
	WindowListOptionOnScreenOnly        WindowListOption = 1 << 0
	WindowListOptionOnScreenAboveWindow WindowListOption = 1 << 1
	WindowListOptionOnScreenBelowWindow WindowListOption = 1 << 2
	WindowListOptionIncludingWindow     WindowListOption = 1 << 3
	WindowListExcludeDesktopElements    WindowListOption = 1 << 4
)

// WindowImageOption controls how a window list image is composed.
type WindowImageOption uint32

const (
	WindowImageDefault             WindowImageOption = 0
	WindowImageBoundsIgnoreFraming WindowImageOption = 1 << 0
	WindowImageShouldBeOpaque      WindowImageOption = 1 << 1
	WindowImageOnlyShadows         WindowImageOption = 1 << 2
	WindowImageBestResolution      WindowImageOption = 1 << 3
	WindowImageNominalResolution   WindowImageOption = 1 << 4
)

// Point is a CGPoint.
type Point struct {
	X, Y float64
}

// Size is a CGSize.
type Size struct {
	Width, Height float64
}

// Rect is a CGRect.
type Rect struct {
	Origin Point
	Size   Size
}

var (
	// RectNull is the null rectangle (CGRectNull).
	RectNull = Rect{Origin: Point{X: math.Inf(1), Y: math.Inf(1)}}

	// RectInfinite is the infinite rectangle (CGRectInfinite).
	RectInfinite = Rect{
		Origin: Point{X: -math.MaxFloat64 / 2, Y: -math.MaxFloat64 / 2},
		Size:   Size{Width: math.MaxFloat64, Height: math.MaxFloat64},
	}
)

// MaxX returns the largest x coordinate of the rectangle.
func (r Rect) MaxX() float64 { return r.Origin.X + r.Size.Width }

// MaxY returns the largest y coordinate of the rectangle.
func (r Rect) MaxY() float64 { return r.Origin.Y + r.Size.Height }

// Contains reports whether p lies inside the rectangle. The maximum edges
// are exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Origin.X && p.X < r.MaxX() && p.Y >= r.Origin.Y && p.Y < r.MaxY()
}

// Union returns the smallest rectangle containing both r and o.
func (r Rect) Union(o Rect) Rect {
	minX := math.Min(r.Origin.X, o.Origin.X)
	minY := math.Min(r.Origin.Y, o.Origin.Y)
	maxX := math.Max(r.MaxX(), o.MaxX())
	maxY := math.Max(r.MaxY(), o.MaxY())
	return Rect{Origin: Point{X: minX, Y: minY}, Size: Size{Width: maxX - minX, Height: maxY - minY}}
}

// Ref is an opaque pointer to a native CoreFoundation object.
type Ref unsafe.Pointer

// Flag names a boolean display property.
type Flag int

const (
	FlagActive Flag = iota
	FlagAlwaysInMirrorSet
	FlagAsleep
	FlagBuiltin
	FlagInHWMirrorSet
	FlagInMirrorSet
	FlagMain
	FlagOnline
	FlagStereo
	FlagOpenGLAcceleration
)

// Attribute names a numeric display property.
type Attribute int

const (
	AttributeSerialNumber Attribute = iota
	AttributeUnitNumber
	AttributeVendorNumber
	AttributeModelNumber
)

// Dimension names a size field of a display mode.
type Dimension int

const (
	DimensionWidth Dimension = iota
	DimensionHeight
	DimensionPixelWidth
	DimensionPixelHeight
)

// ImageMetric names a size field of an image.
type ImageMetric int

const (
	ImageWidth ImageMetric = iota
	ImageHeight
	ImageBitsPerComponent
	ImageBitsPerPixel
	ImageBytesPerRow
)
