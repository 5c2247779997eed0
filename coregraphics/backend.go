package coregraphics

// Backend is the native CoreGraphics call surface. Every method forwards to
// exactly one framework call (or a fixed sequence of calls for helpers that
// build or decode CoreFoundation containers). Codes are raw CGError values.
//
// Methods returning a Ref transfer one reference to the caller; a nil Ref
// means the framework returned NULL.
type Backend interface {
	MainDisplayID() DisplayID
	DisplayFlag(id DisplayID, f Flag) bool
	DisplayAttribute(id DisplayID, a Attribute) uint32
	MirrorsDisplay(id DisplayID) DisplayID
	PrimaryDisplay(id DisplayID) DisplayID
	DisplayRotation(id DisplayID) float64
	DisplayScreenSize(id DisplayID) Size
	DisplayPixelsWide(id DisplayID) uint64
	DisplayPixelsHigh(id DisplayID) uint64
	DisplayBounds(id DisplayID) Rect

	// The display list calls follow CGGetActiveDisplayList: a nil buf asks
	// for the number of displays, a non-nil buf is filled up to len(buf).
	GetActiveDisplayList(buf []DisplayID) (count uint32, code int32)
	GetOnlineDisplayList(buf []DisplayID) (count uint32, code int32)
	GetDisplaysWithPoint(p Point, buf []DisplayID) (count uint32, code int32)

	CopyDisplayMode(id DisplayID) Ref
	// CopyAllDisplayModes returns one owned reference per available mode.
	CopyAllDisplayModes(id DisplayID) []Ref
	ModeDimension(mode Ref, d Dimension) uint64
	ModeRefreshRate(mode Ref) float64
	ModeIOFlags(mode Ref) uint32
	ModeIODisplayModeID(mode Ref) int32
	ModeIsUsableForDesktopGUI(mode Ref) bool
	ReleaseMode(mode Ref)

	CreateDisplayImage(id DisplayID) Ref
	CreateDisplayImageForRect(id DisplayID, rect Rect) Ref
	CreateWindowListImage(bounds Rect, list WindowListOption, window WindowID, opt WindowImageOption) Ref
	CreateWindowListImageFromArray(bounds Rect, windows []WindowID, opt WindowImageOption) Ref
	ImageMetric(img Ref, m ImageMetric) uint64
	// ImageCopyRGBA draws img into dst as premultiplied 8-bit RGBA rows.
	ImageCopyRGBA(img Ref, dst []byte, width, height int) bool
	ReleaseImage(img Ref)

	CopyWindowInfo(option WindowListOption, relativeTo WindowID) Ref
	WindowListCount(list Ref) int
	WindowInfoAt(list Ref, i int) WindowInfo

	Retain(ref Ref) Ref
	Release(ref Ref)

	HideCursor(id DisplayID) int32
	ShowCursor(id DisplayID) int32
	MoveCursorToPoint(id DisplayID, p Point) int32
	WarpMouseCursorPosition(p Point) int32
	AssociateMouseAndMouseCursorPosition(connected bool) int32
}

var active Backend = newNativeBackend()

func native() Backend {
	return active
}

// SetBackend replaces the native backend and returns a function restoring
// the previous one. It exists for tests and must not race with other calls
// into this package.
func SetBackend(b Backend) (restore func()) {
	prev := active
	active = b
	return func() { active = prev }
}
