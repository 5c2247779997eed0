// Package cgtest provides an in-memory coregraphics.Backend that counts
// retains and releases of every native object it hands out.
package cgtest

import (
	"image/color"
	"sync"
	"unsafe"

	cg "github.com/bnema/cgdisplay/coregraphics"
)

// Call names a fallible native call whose result code can be overridden.
type Call string

const (
	CallActiveDisplayList Call = "CGGetActiveDisplayList"
	CallOnlineDisplayList Call = "CGGetOnlineDisplayList"
	CallDisplaysWithPoint Call = "CGGetDisplaysWithPoint"
	CallHideCursor        Call = "CGDisplayHideCursor"
	CallShowCursor        Call = "CGDisplayShowCursor"
	CallMoveCursor        Call = "CGDisplayMoveCursorToPoint"
	CallWarpCursor        Call = "CGWarpMouseCursorPosition"
	CallAssociateMouse    Call = "CGAssociateMouseAndMouseCursorPosition"
)

// ModeSpec describes a simulated display mode.
type ModeSpec struct {
	Width, Height           uint64
	PixelWidth, PixelHeight uint64
	RefreshRate             float64
	IOFlags                 uint32
	IODisplayModeID         int32
	UsableForDesktopGUI     bool
}

// ImageSpec describes a simulated image filled with a single color.
type ImageSpec struct {
	Width, Height int
	Fill          color.RGBA
}

// Display describes a simulated display.
type Display struct {
	ID         cg.DisplayID
	Bounds     cg.Rect
	Flags      map[cg.Flag]bool
	Attributes map[cg.Attribute]uint32
	Mirrors    cg.DisplayID
	Primary    cg.DisplayID
	Rotation   float64
	ScreenSize cg.Size
	PixelsWide uint64
	PixelsHigh uint64
	Mode       *ModeSpec
	Modes      []ModeSpec
	Image      *ImageSpec
}

// ScreenshotCall records the arguments of a window list image request.
type ScreenshotCall struct {
	Bounds      cg.Rect
	ListOption  cg.WindowListOption
	Window      cg.WindowID
	Windows     []cg.WindowID
	ImageOption cg.WindowImageOption
}

// WindowQuery records the arguments of a window info request.
type WindowQuery struct {
	Option     cg.WindowListOption
	RelativeTo cg.WindowID
}

type objectKind int

const (
	kindMode objectKind = iota
	kindImage
	kindWindowList
)

type object struct {
	kind     objectKind
	refs     int
	frees    int
	overfree int
	mode     ModeSpec
	image    ImageSpec
	windows  []cg.WindowInfo
}

// Backend is a simulated CoreGraphics. The zero value is not usable; call
// New.
type Backend struct {
	mu sync.Mutex

	Main     cg.DisplayID
	Displays map[cg.DisplayID]*Display
	// Active and Online list display IDs in the order the list calls
	// return them.
	Active []cg.DisplayID
	Online []cg.DisplayID

	// Windows is returned by CopyWindowInfo. A nil slice makes the call
	// return NULL.
	Windows []cg.WindowInfo
	// ScreenshotImage is returned by the window list image calls. Nil makes
	// them return NULL.
	ScreenshotImage *ImageSpec

	// Codes overrides the CGError returned by a call.
	Codes map[Call]int32

	// Recorded calls.
	ListBuffers  []int
	HideCounts   map[cg.DisplayID]int
	CursorMoves  []CursorMove
	Warps        []cg.Point
	Associations []bool
	Screenshots  []ScreenshotCall
	WindowCalls  []WindowQuery

	objects []*object
}

// CursorMove records a display-relative cursor move.
type CursorMove struct {
	Display cg.DisplayID
	Point   cg.Point
}

// New returns an empty simulated backend.
func New() *Backend {
	return &Backend{
		Displays:   map[cg.DisplayID]*Display{},
		Codes:      map[Call]int32{},
		HideCounts: map[cg.DisplayID]int{},
	}
}

// Install makes b the active coregraphics backend until the test ends.
func (b *Backend) Install(t interface{ Cleanup(func()) }) *Backend {
	restore := cg.SetBackend(b)
	t.Cleanup(restore)
	return b
}

// AddDisplay registers d, marks it active and online, and makes it the main
// display if none is set yet.
func (b *Backend) AddDisplay(d *Display) *Backend {
	b.mu.Lock()
	defer b.mu.Unlock()
	if d.Flags == nil {
		d.Flags = map[cg.Flag]bool{}
	}
	if d.Attributes == nil {
		d.Attributes = map[cg.Attribute]uint32{}
	}
	if b.Main == 0 {
		b.Main = d.ID
		d.Flags[cg.FlagMain] = true
	}
	d.Flags[cg.FlagActive] = true
	d.Flags[cg.FlagOnline] = true
	b.Displays[d.ID] = d
	b.Active = append(b.Active, d.ID)
	b.Online = append(b.Online, d.ID)
	return b
}

func (b *Backend) newObject(o *object) cg.Ref {
	o.refs = 1
	b.objects = append(b.objects, o)
	return cg.Ref(unsafe.Pointer(o))
}

// NewMode allocates a simulated mode holding one reference owned by the
// caller.
func (b *Backend) NewMode(spec ModeSpec) cg.Ref {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.newObject(&object{kind: kindMode, mode: spec})
}

// NewImage allocates a simulated image holding one reference owned by the
// caller.
func (b *Backend) NewImage(spec ImageSpec) cg.Ref {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.newObject(&object{kind: kindImage, image: spec})
}

// NewWindowList allocates a simulated window list holding one reference
// owned by the caller.
func (b *Backend) NewWindowList(windows []cg.WindowInfo) cg.Ref {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.newObject(&object{kind: kindWindowList, windows: windows})
}

func obj(ref cg.Ref) *object {
	return (*object)(unsafe.Pointer(ref))
}

// RefCount returns the outstanding references held on ref.
func (b *Backend) RefCount(ref cg.Ref) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return obj(ref).refs
}

// Frees returns how many times ref was freed, which is 1 for a correctly
// released object.
func (b *Backend) Frees(ref cg.Ref) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return obj(ref).frees
}

// Live returns the number of allocated objects with outstanding references.
func (b *Backend) Live() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, o := range b.objects {
		if o.refs > 0 {
			n++
		}
	}
	return n
}

// OverReleases returns the number of releases issued on objects that had
// already been freed.
func (b *Backend) OverReleases() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, o := range b.objects {
		n += o.overfree
	}
	return n
}

// Allocated returns the number of objects handed out so far.
func (b *Backend) Allocated() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.objects)
}

func (b *Backend) release(ref cg.Ref) {
	b.mu.Lock()
	defer b.mu.Unlock()
	o := obj(ref)
	if o.refs == 0 {
		o.overfree++
		return
	}
	o.refs--
	if o.refs == 0 {
		o.frees++
	}
}

func (b *Backend) display(id cg.DisplayID) *Display {
	if d, ok := b.Displays[id]; ok {
		return d
	}
	return &Display{}
}

func (b *Backend) code(c Call) int32 {
	return b.Codes[c]
}

func (b *Backend) MainDisplayID() cg.DisplayID {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.Main
}

func (b *Backend) DisplayFlag(id cg.DisplayID, f cg.Flag) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.display(id).Flags[f]
}

func (b *Backend) DisplayAttribute(id cg.DisplayID, a cg.Attribute) uint32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.display(id).Attributes[a]
}

func (b *Backend) MirrorsDisplay(id cg.DisplayID) cg.DisplayID {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.display(id).Mirrors
}

func (b *Backend) PrimaryDisplay(id cg.DisplayID) cg.DisplayID {
	b.mu.Lock()
	defer b.mu.Unlock()
	if p := b.display(id).Primary; p != 0 {
		return p
	}
	return id
}

func (b *Backend) DisplayRotation(id cg.DisplayID) float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.display(id).Rotation
}

func (b *Backend) DisplayScreenSize(id cg.DisplayID) cg.Size {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.display(id).ScreenSize
}

func (b *Backend) DisplayPixelsWide(id cg.DisplayID) uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.display(id).PixelsWide
}

func (b *Backend) DisplayPixelsHigh(id cg.DisplayID) uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.display(id).PixelsHigh
}

func (b *Backend) DisplayBounds(id cg.DisplayID) cg.Rect {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.display(id).Bounds
}

func fill(ids []cg.DisplayID, buf []cg.DisplayID) uint32 {
	if buf == nil {
		return uint32(len(ids))
	}
	return uint32(copy(buf, ids))
}

func (b *Backend) GetActiveDisplayList(buf []cg.DisplayID) (uint32, int32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ListBuffers = append(b.ListBuffers, len(buf))
	if code := b.code(CallActiveDisplayList); code != 0 {
		return 0, code
	}
	return fill(b.Active, buf), 0
}

func (b *Backend) GetOnlineDisplayList(buf []cg.DisplayID) (uint32, int32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if code := b.code(CallOnlineDisplayList); code != 0 {
		return 0, code
	}
	return fill(b.Online, buf), 0
}

func (b *Backend) GetDisplaysWithPoint(p cg.Point, buf []cg.DisplayID) (uint32, int32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if code := b.code(CallDisplaysWithPoint); code != 0 {
		return 0, code
	}
	var ids []cg.DisplayID
	for _, id := range b.Online {
		if b.display(id).Bounds.Contains(p) {
			ids = append(ids, id)
		}
	}
	return fill(ids, buf), 0
}

func (b *Backend) CopyDisplayMode(id cg.DisplayID) cg.Ref {
	b.mu.Lock()
	defer b.mu.Unlock()
	spec := b.display(id).Mode
	if spec == nil {
		return nil
	}
	return b.newObject(&object{kind: kindMode, mode: *spec})
}

func (b *Backend) CopyAllDisplayModes(id cg.DisplayID) []cg.Ref {
	b.mu.Lock()
	defer b.mu.Unlock()
	d := b.display(id)
	if d.Modes == nil {
		return nil
	}
	refs := make([]cg.Ref, len(d.Modes))
	for i, spec := range d.Modes {
		refs[i] = b.newObject(&object{kind: kindMode, mode: spec})
	}
	return refs
}

func (b *Backend) modeSpec(ref cg.Ref) ModeSpec {
	b.mu.Lock()
	defer b.mu.Unlock()
	return obj(ref).mode
}

func (b *Backend) ModeDimension(ref cg.Ref, d cg.Dimension) uint64 {
	m := b.modeSpec(ref)
	switch d {
	case cg.DimensionWidth:
		return m.Width
	case cg.DimensionHeight:
		return m.Height
	case cg.DimensionPixelWidth:
		return m.PixelWidth
	case cg.DimensionPixelHeight:
		return m.PixelHeight
	}
	return 0
}

func (b *Backend) ModeRefreshRate(ref cg.Ref) float64 { return b.modeSpec(ref).RefreshRate }
func (b *Backend) ModeIOFlags(ref cg.Ref) uint32      { return b.modeSpec(ref).IOFlags }
func (b *Backend) ModeIODisplayModeID(ref cg.Ref) int32 {
	return b.modeSpec(ref).IODisplayModeID
}
func (b *Backend) ModeIsUsableForDesktopGUI(ref cg.Ref) bool {
	return b.modeSpec(ref).UsableForDesktopGUI
}
func (b *Backend) ReleaseMode(ref cg.Ref) { b.release(ref) }

func (b *Backend) CreateDisplayImage(id cg.DisplayID) cg.Ref {
	b.mu.Lock()
	defer b.mu.Unlock()
	spec := b.display(id).Image
	if spec == nil {
		return nil
	}
	return b.newObject(&object{kind: kindImage, image: *spec})
}

func (b *Backend) CreateDisplayImageForRect(id cg.DisplayID, rect cg.Rect) cg.Ref {
	b.mu.Lock()
	defer b.mu.Unlock()
	spec := b.display(id).Image
	if spec == nil {
		return nil
	}
	cropped := *spec
	cropped.Width = int(rect.Size.Width)
	cropped.Height = int(rect.Size.Height)
	return b.newObject(&object{kind: kindImage, image: cropped})
}

func (b *Backend) screenshot(call ScreenshotCall) cg.Ref {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Screenshots = append(b.Screenshots, call)
	if b.ScreenshotImage == nil {
		return nil
	}
	return b.newObject(&object{kind: kindImage, image: *b.ScreenshotImage})
}

func (b *Backend) CreateWindowListImage(bounds cg.Rect, list cg.WindowListOption, window cg.WindowID, opt cg.WindowImageOption) cg.Ref {
	return b.screenshot(ScreenshotCall{Bounds: bounds, ListOption: list, Window: window, ImageOption: opt})
}

func (b *Backend) CreateWindowListImageFromArray(bounds cg.Rect, windows []cg.WindowID, opt cg.WindowImageOption) cg.Ref {
	ids := append([]cg.WindowID(nil), windows...)
	return b.screenshot(ScreenshotCall{Bounds: bounds, Windows: ids, ImageOption: opt})
}

func (b *Backend) ImageMetric(ref cg.Ref, m cg.ImageMetric) uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	img := obj(ref).image
	switch m {
	case cg.ImageWidth:
		return uint64(img.Width)
	case cg.ImageHeight:
		return uint64(img.Height)
	case cg.ImageBitsPerComponent:
		return 8
	case cg.ImageBitsPerPixel:
		return 32
	case cg.ImageBytesPerRow:
		return uint64(img.Width * 4)
	}
	return 0
}

func (b *Backend) ImageCopyRGBA(ref cg.Ref, dst []byte, width, height int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	c := obj(ref).image.Fill
	if len(dst) < width*height*4 {
		return false
	}
	for i := 0; i+3 < len(dst); i += 4 {
		dst[i], dst[i+1], dst[i+2], dst[i+3] = c.R, c.G, c.B, c.A
	}
	return true
}

func (b *Backend) ReleaseImage(ref cg.Ref) { b.release(ref) }

func (b *Backend) CopyWindowInfo(option cg.WindowListOption, relativeTo cg.WindowID) cg.Ref {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.WindowCalls = append(b.WindowCalls, WindowQuery{Option: option, RelativeTo: relativeTo})
	if b.Windows == nil {
		return nil
	}
	windows := append([]cg.WindowInfo(nil), b.Windows...)
	return b.newObject(&object{kind: kindWindowList, windows: windows})
}

func (b *Backend) WindowListCount(ref cg.Ref) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(obj(ref).windows)
}

func (b *Backend) WindowInfoAt(ref cg.Ref, i int) cg.WindowInfo {
	b.mu.Lock()
	defer b.mu.Unlock()
	return obj(ref).windows[i]
}

func (b *Backend) Retain(ref cg.Ref) cg.Ref {
	b.mu.Lock()
	defer b.mu.Unlock()
	obj(ref).refs++
	return ref
}

func (b *Backend) Release(ref cg.Ref) { b.release(ref) }

func (b *Backend) HideCursor(id cg.DisplayID) int32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	if code := b.code(CallHideCursor); code != 0 {
		return code
	}
	b.HideCounts[id]++
	return 0
}

func (b *Backend) ShowCursor(id cg.DisplayID) int32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	if code := b.code(CallShowCursor); code != 0 {
		return code
	}
	if b.HideCounts[id] > 0 {
		b.HideCounts[id]--
	}
	return 0
}

func (b *Backend) MoveCursorToPoint(id cg.DisplayID, p cg.Point) int32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	if code := b.code(CallMoveCursor); code != 0 {
		return code
	}
	b.CursorMoves = append(b.CursorMoves, CursorMove{Display: id, Point: p})
	return 0
}

func (b *Backend) WarpMouseCursorPosition(p cg.Point) int32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	if code := b.code(CallWarpCursor); code != 0 {
		return code
	}
	b.Warps = append(b.Warps, p)
	return 0
}

func (b *Backend) AssociateMouseAndMouseCursorPosition(connected bool) int32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	if code := b.code(CallAssociateMouse); code != 0 {
		return code
	}
	b.Associations = append(b.Associations, connected)
	return 0
}

var _ cg.Backend = (*Backend)(nil)
