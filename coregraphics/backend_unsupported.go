//go:build !darwin || !cgo

package coregraphics

// Supported reports whether the native CoreGraphics backend is compiled in.
const Supported = false

// unsupportedBackend stands in for CoreGraphics on other platforms and in
// builds without cgo. Queries return zero values, optional results are
// absent and fallible calls report ErrorNotImplemented.
type unsupportedBackend struct{}

func newNativeBackend() Backend {
	return unsupportedBackend{}
}

const notImplemented = int32(ErrorNotImplemented)

func (unsupportedBackend) MainDisplayID() DisplayID                     { return 0 }
func (unsupportedBackend) DisplayFlag(DisplayID, Flag) bool             { return false }
func (unsupportedBackend) DisplayAttribute(DisplayID, Attribute) uint32 { return 0 }
func (unsupportedBackend) MirrorsDisplay(DisplayID) DisplayID           { return 0 }
func (unsupportedBackend) PrimaryDisplay(DisplayID) DisplayID           { return 0 }
func (unsupportedBackend) DisplayRotation(DisplayID) float64            { return 0 }
func (unsupportedBackend) DisplayScreenSize(DisplayID) Size             { return Size{} }
func (unsupportedBackend) DisplayPixelsWide(DisplayID) uint64           { return 0 }
func (unsupportedBackend) DisplayPixelsHigh(DisplayID) uint64           { return 0 }
func (unsupportedBackend) DisplayBounds(DisplayID) Rect                 { return Rect{} }
func (unsupportedBackend) GetActiveDisplayList([]DisplayID) (uint32, int32) {
	return 0, notImplemented
}
func (unsupportedBackend) GetOnlineDisplayList([]DisplayID) (uint32, int32) {
	return 0, notImplemented
}
func (unsupportedBackend) GetDisplaysWithPoint(Point, []DisplayID) (uint32, int32) {
	return 0, notImplemented
}

func (unsupportedBackend) CopyDisplayMode(DisplayID) Ref                 { return nil }
func (unsupportedBackend) CopyAllDisplayModes(DisplayID) []Ref           { return nil }
func (unsupportedBackend) ModeDimension(Ref, Dimension) uint64           { return 0 }
func (unsupportedBackend) ModeRefreshRate(Ref) float64                   { return 0 }
func (unsupportedBackend) ModeIOFlags(Ref) uint32                        { return 0 }
func (unsupportedBackend) ModeIODisplayModeID(Ref) int32                 { return 0 }
func (unsupportedBackend) ModeIsUsableForDesktopGUI(Ref) bool            { return false }
func (unsupportedBackend) ReleaseMode(Ref)                               {}
func (unsupportedBackend) CreateDisplayImage(DisplayID) Ref              { return nil }
func (unsupportedBackend) CreateDisplayImageForRect(DisplayID, Rect) Ref { return nil }
func (unsupportedBackend) CreateWindowListImage(Rect, WindowListOption, WindowID, WindowImageOption) Ref {
	return nil
}
func (unsupportedBackend) CreateWindowListImageFromArray(Rect, []WindowID, WindowImageOption) Ref {
	return nil
}
func (unsupportedBackend) ImageMetric(Ref, ImageMetric) uint64           { return 0 }
func (unsupportedBackend) ImageCopyRGBA(Ref, []byte, int, int) bool      { return false }
func (unsupportedBackend) ReleaseImage(Ref)                              {}
func (unsupportedBackend) CopyWindowInfo(WindowListOption, WindowID) Ref { return nil }
func (unsupportedBackend) WindowListCount(Ref) int                       { return 0 }
func (unsupportedBackend) WindowInfoAt(Ref, int) WindowInfo              { return WindowInfo{} }
func (unsupportedBackend) Retain(ref Ref) Ref                            { return ref }
func (unsupportedBackend) Release(Ref)                                   {}

func (unsupportedBackend) HideCursor(DisplayID) int32 { return notImplemented }
func (unsupportedBackend) ShowCursor(DisplayID) int32 { return notImplemented }
func (unsupportedBackend) MoveCursorToPoint(DisplayID, Point) int32 {
	return notImplemented
}
func (unsupportedBackend) WarpMouseCursorPosition(Point) int32 { return notImplemented }
func (unsupportedBackend) AssociateMouseAndMouseCursorPosition(bool) int32 {
	return notImplemented
}
