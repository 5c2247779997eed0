//go:build darwin && cgo

package coregraphics

/*
#cgo CFLAGS: -mmacosx-version-min=11.0 -Wno-deprecated-declarations
#cgo LDFLAGS: -framework CoreGraphics -framework CoreFoundation
#include <CoreGraphics/CoreGraphics.h>
#include <CoreFoundation/CoreFoundation.h>
#include <stdlib.h>
#include <string.h>

typedef struct {
    uint32_t number;
    int32_t owner_pid;
    int32_t layer;
    int32_t sharing_state;
    int32_t store_type;
    int64_t memory_usage;
    double alpha;
    int on_screen;
    CGRect bounds;
    char owner_name[256];
    char name[256];
} cg_window_info;

static int32_t dict_int32(CFDictionaryRef dict, CFStringRef key) {
    int32_t v = 0;
    CFNumberRef num = CFDictionaryGetValue(dict, key);
    if (num != NULL && CFGetTypeID(num) == CFNumberGetTypeID()) {
        CFNumberGetValue(num, kCFNumberSInt32Type, &v);
    }
    return v;
}

static int64_t dict_int64(CFDictionaryRef dict, CFStringRef key) {
    int64_t v = 0;
    CFNumberRef num = CFDictionaryGetValue(dict, key);
    if (num != NULL && CFGetTypeID(num) == CFNumberGetTypeID()) {
        CFNumberGetValue(num, kCFNumberSInt64Type, &v);
    }
    return v;
}

static double dict_double(CFDictionaryRef dict, CFStringRef key) {
    double v = 0;
    CFNumberRef num = CFDictionaryGetValue(dict, key);
    if (num != NULL && CFGetTypeID(num) == CFNumberGetTypeID()) {
        CFNumberGetValue(num, kCFNumberDoubleType, &v);
    }
    return v;
}

static void dict_string(CFDictionaryRef dict, CFStringRef key, char *out, CFIndex size) {
    out[0] = '\0';
    CFStringRef str = CFDictionaryGetValue(dict, key);
    if (str != NULL && CFGetTypeID(str) == CFStringGetTypeID()) {
        CFStringGetCString(str, out, size, kCFStringEncodingUTF8);
    }
}

static void cg_window_info_at(CFArrayRef list, CFIndex i, cg_window_info *out) {
    memset(out, 0, sizeof(*out));
    CFDictionaryRef dict = CFArrayGetValueAtIndex(list, i);
    if (dict == NULL || CFGetTypeID(dict) != CFDictionaryGetTypeID()) {
        return;
    }
    out->number = (uint32_t)dict_int64(dict, kCGWindowNumber);
    out->owner_pid = dict_int32(dict, kCGWindowOwnerPID);
    out->layer = dict_int32(dict, kCGWindowLayer);
    out->sharing_state = dict_int32(dict, kCGWindowSharingState);
    out->store_type = dict_int32(dict, kCGWindowStoreType);
    out->memory_usage = dict_int64(dict, kCGWindowMemoryUsage);
    out->alpha = dict_double(dict, kCGWindowAlpha);

    CFBooleanRef onscreen = CFDictionaryGetValue(dict, kCGWindowIsOnscreen);
    out->on_screen = onscreen != NULL && CFBooleanGetValue(onscreen);

    CFDictionaryRef bounds = CFDictionaryGetValue(dict, kCGWindowBounds);
    if (bounds != NULL) {
        CGRectMakeWithDictionaryRepresentation(bounds, &out->bounds);
    }

    dict_string(dict, kCGWindowOwnerName, out->owner_name, sizeof(out->owner_name));
    dict_string(dict, kCGWindowName, out->name, sizeof(out->name));
}

static CGImageRef cg_window_list_image_from_ids(CGRect bounds, const uint32_t *ids, int n, uint32_t opt) {
    const void **values = NULL;
    if (n > 0) {
        values = malloc(sizeof(void *) * n);
        if (values == NULL) {
            return NULL;
        }
        for (int i = 0; i < n; i++) {
            values[i] = (const void *)(uintptr_t)ids[i];
        }
    }
    CFArrayRef array = CFArrayCreate(NULL, values, n, NULL);
    free(values);
    if (array == NULL) {
        return NULL;
    }
    CGImageRef image = CGWindowListCreateImageFromArray(bounds, array, opt);
    CFRelease(array);
    return image;
}

static int cg_image_copy_rgba(CGImageRef image, void *dst, size_t width, size_t height) {
    CGColorSpaceRef space = CGColorSpaceCreateDeviceRGB();
    if (space == NULL) {
        return 0;
    }
    CGContextRef ctx = CGBitmapContextCreate(dst, width, height, 8, width * 4, space,
        kCGImageAlphaPremultipliedLast | kCGBitmapByteOrder32Big);
    CGColorSpaceRelease(space);
    if (ctx == NULL) {
        return 0;
    }
    CGContextDrawImage(ctx, CGRectMake(0, 0, width, height), image);
    CGContextRelease(ctx);
    return 1;
}

// Returns the number of modes written to out, or -1 if the display has no
// mode list. Every written mode is retained.
static CFIndex cg_copy_all_modes(CGDirectDisplayID display, CGDisplayModeRef **out) {
    CFArrayRef modes = CGDisplayCopyAllDisplayModes(display, NULL);
    if (modes == NULL) {
        return -1;
    }
    CFIndex n = CFArrayGetCount(modes);
    *out = NULL;
    if (n > 0) {
        *out = malloc(sizeof(CGDisplayModeRef) * n);
        if (*out == NULL) {
            CFRelease(modes);
            return -1;
        }
        for (CFIndex i = 0; i < n; i++) {
            (*out)[i] = CGDisplayModeRetain((CGDisplayModeRef)CFArrayGetValueAtIndex(modes, i));
        }
    }
    CFRelease(modes);
    return n;
}
*/
import "C"

import "unsafe"

// Supported reports whether the native CoreGraphics backend is compiled in.
const Supported = true

type cgBackend struct{}

func newNativeBackend() Backend {
	return cgBackend{}
}

func cgPoint(p Point) C.CGPoint {
	return C.CGPoint{x: C.CGFloat(p.X), y: C.CGFloat(p.Y)}
}

func cgRect(r Rect) C.CGRect {
	return C.CGRect{
		origin: cgPoint(r.Origin),
		size:   C.CGSize{width: C.CGFloat(r.Size.Width), height: C.CGFloat(r.Size.Height)},
	}
}

func goRect(r C.CGRect) Rect {
	return Rect{
		Origin: Point{X: float64(r.origin.x), Y: float64(r.origin.y)},
		Size:   Size{Width: float64(r.size.width), Height: float64(r.size.height)},
	}
}

func did(id DisplayID) C.CGDirectDisplayID {
	return C.CGDirectDisplayID(id)
}

func modeRef(r Ref) C.CGDisplayModeRef {
	return C.CGDisplayModeRef(unsafe.Pointer(r))
}

func imageRef(r Ref) C.CGImageRef {
	return C.CGImageRef(unsafe.Pointer(r))
}

func arrayRef(r Ref) C.CFArrayRef {
	return C.CFArrayRef(unsafe.Pointer(r))
}

func (cgBackend) MainDisplayID() DisplayID {
	return DisplayID(C.CGMainDisplayID())
}

func (cgBackend) DisplayFlag(id DisplayID, f Flag) bool {
	var v C.boolean_t
	switch f {
	case FlagActive:
		v = C.CGDisplayIsActive(did(id))
	case FlagAlwaysInMirrorSet:
		v = C.CGDisplayIsAlwaysInMirrorSet(did(id))
	case FlagAsleep:
		v = C.CGDisplayIsAsleep(did(id))
	case FlagBuiltin:
		v = C.CGDisplayIsBuiltin(did(id))
	case FlagInHWMirrorSet:
		v = C.CGDisplayIsInHWMirrorSet(did(id))
	case FlagInMirrorSet:
		v = C.CGDisplayIsInMirrorSet(did(id))
	case FlagMain:
		v = C.CGDisplayIsMain(did(id))
	case FlagOnline:
		v = C.CGDisplayIsOnline(did(id))
	case FlagStereo:
		v = C.CGDisplayIsStereo(did(id))
	case FlagOpenGLAcceleration:
		v = C.CGDisplayUsesOpenGLAcceleration(did(id))
	}
	return v != 0
}

func (cgBackend) DisplayAttribute(id DisplayID, a Attribute) uint32 {
	switch a {
	case AttributeSerialNumber:
		return uint32(C.CGDisplaySerialNumber(did(id)))
	case AttributeUnitNumber:
		return uint32(C.CGDisplayUnitNumber(did(id)))
	case AttributeVendorNumber:
		return uint32(C.CGDisplayVendorNumber(did(id)))
	case AttributeModelNumber:
		return uint32(C.CGDisplayModelNumber(did(id)))
	}
	return 0
}

func (cgBackend) MirrorsDisplay(id DisplayID) DisplayID {
	return DisplayID(C.CGDisplayMirrorsDisplay(did(id)))
}

func (cgBackend) PrimaryDisplay(id DisplayID) DisplayID {
	return DisplayID(C.CGDisplayPrimaryDisplay(did(id)))
}

func (cgBackend) DisplayRotation(id DisplayID) float64 {
	return float64(C.CGDisplayRotation(did(id)))
}

func (cgBackend) DisplayScreenSize(id DisplayID) Size {
	s := C.CGDisplayScreenSize(did(id))
	return Size{Width: float64(s.width), Height: float64(s.height)}
}

func (cgBackend) DisplayPixelsWide(id DisplayID) uint64 {
	return uint64(C.CGDisplayPixelsWide(did(id)))
}

func (cgBackend) DisplayPixelsHigh(id DisplayID) uint64 {
	return uint64(C.CGDisplayPixelsHigh(did(id)))
}

func (cgBackend) DisplayBounds(id DisplayID) Rect {
	return goRect(C.CGDisplayBounds(did(id)))
}

// listArgs converts a Go buffer into the max/pointer pair expected by the
// CGGet*DisplayList family. A nil buffer becomes (0, NULL).
func listArgs(buf []DisplayID) (C.uint32_t, *C.CGDirectDisplayID) {
	if len(buf) == 0 {
		return 0, nil
	}
	return C.uint32_t(len(buf)), (*C.CGDirectDisplayID)(unsafe.Pointer(&buf[0]))
}

func (cgBackend) GetActiveDisplayList(buf []DisplayID) (uint32, int32) {
	var count C.uint32_t
	size, ptr := listArgs(buf)
	code := C.CGGetActiveDisplayList(size, ptr, &count)
	return uint32(count), int32(code)
}

func (cgBackend) GetOnlineDisplayList(buf []DisplayID) (uint32, int32) {
	var count C.uint32_t
	size, ptr := listArgs(buf)
	code := C.CGGetOnlineDisplayList(size, ptr, &count)
	return uint32(count), int32(code)
}

func (cgBackend) GetDisplaysWithPoint(p Point, buf []DisplayID) (uint32, int32) {
	var count C.uint32_t
	size, ptr := listArgs(buf)
	code := C.CGGetDisplaysWithPoint(cgPoint(p), size, ptr, &count)
	return uint32(count), int32(code)
}

func (cgBackend) CopyDisplayMode(id DisplayID) Ref {
	return Ref(unsafe.Pointer(C.CGDisplayCopyDisplayMode(did(id))))
}

func (cgBackend) CopyAllDisplayModes(id DisplayID) []Ref {
	var modes *C.CGDisplayModeRef
	n := int(C.cg_copy_all_modes(did(id), &modes))
	if n < 0 {
		return nil
	}
	refs := make([]Ref, n)
	if n == 0 {
		return refs
	}
	defer C.free(unsafe.Pointer(modes))
	for i, m := range unsafe.Slice(modes, n) {
		refs[i] = Ref(unsafe.Pointer(m))
	}
	return refs
}

func (cgBackend) ModeDimension(mode Ref, d Dimension) uint64 {
	m := modeRef(mode)
	switch d {
	case DimensionWidth:
		return uint64(C.CGDisplayModeGetWidth(m))
	case DimensionHeight:
		return uint64(C.CGDisplayModeGetHeight(m))
	case DimensionPixelWidth:
		return uint64(C.CGDisplayModeGetPixelWidth(m))
	case DimensionPixelHeight:
		return uint64(C.CGDisplayModeGetPixelHeight(m))
	}
	return 0
}

func (cgBackend) ModeRefreshRate(mode Ref) float64 {
	return float64(C.CGDisplayModeGetRefreshRate(modeRef(mode)))
}

func (cgBackend) ModeIOFlags(mode Ref) uint32 {
	return uint32(C.CGDisplayModeGetIOFlags(modeRef(mode)))
}

func (cgBackend) ModeIODisplayModeID(mode Ref) int32 {
	return int32(C.CGDisplayModeGetIODisplayModeID(modeRef(mode)))
}

func (cgBackend) ModeIsUsableForDesktopGUI(mode Ref) bool {
	return bool(C.CGDisplayModeIsUsableForDesktopGUI(modeRef(mode)))
}

func (cgBackend) ReleaseMode(mode Ref) {
	C.CGDisplayModeRelease(modeRef(mode))
}

func (cgBackend) CreateDisplayImage(id DisplayID) Ref {
	return Ref(unsafe.Pointer(C.CGDisplayCreateImage(did(id))))
}

func (cgBackend) CreateDisplayImageForRect(id DisplayID, rect Rect) Ref {
	return Ref(unsafe.Pointer(C.CGDisplayCreateImageForRect(did(id), cgRect(rect))))
}

func (cgBackend) CreateWindowListImage(bounds Rect, list WindowListOption, window WindowID, opt WindowImageOption) Ref {
	img := C.CGWindowListCreateImage(cgRect(bounds), C.CGWindowListOption(list), C.CGWindowID(window), C.CGWindowImageOption(opt))
	return Ref(unsafe.Pointer(img))
}

func (cgBackend) CreateWindowListImageFromArray(bounds Rect, windows []WindowID, opt WindowImageOption) Ref {
	var ids *C.uint32_t
	if len(windows) > 0 {
		ids = (*C.uint32_t)(unsafe.Pointer(&windows[0]))
	}
	img := C.cg_window_list_image_from_ids(cgRect(bounds), ids, C.int(len(windows)), C.uint32_t(opt))
	return Ref(unsafe.Pointer(img))
}

func (cgBackend) ImageMetric(img Ref, m ImageMetric) uint64 {
	i := imageRef(img)
	switch m {
	case ImageWidth:
		return uint64(C.CGImageGetWidth(i))
	case ImageHeight:
		return uint64(C.CGImageGetHeight(i))
	case ImageBitsPerComponent:
		return uint64(C.CGImageGetBitsPerComponent(i))
	case ImageBitsPerPixel:
		return uint64(C.CGImageGetBitsPerPixel(i))
	case ImageBytesPerRow:
		return uint64(C.CGImageGetBytesPerRow(i))
	}
	return 0
}

func (cgBackend) ImageCopyRGBA(img Ref, dst []byte, width, height int) bool {
	if len(dst) < width*height*4 || len(dst) == 0 {
		return false
	}
	return C.cg_image_copy_rgba(imageRef(img), unsafe.Pointer(&dst[0]), C.size_t(width), C.size_t(height)) != 0
}

func (cgBackend) ReleaseImage(img Ref) {
	C.CGImageRelease(imageRef(img))
}

func (cgBackend) CopyWindowInfo(option WindowListOption, relativeTo WindowID) Ref {
	return Ref(unsafe.Pointer(C.CGWindowListCopyWindowInfo(C.CGWindowListOption(option), C.CGWindowID(relativeTo))))
}

func (cgBackend) WindowListCount(list Ref) int {
	return int(C.CFArrayGetCount(arrayRef(list)))
}

func (cgBackend) WindowInfoAt(list Ref, i int) WindowInfo {
	var info C.cg_window_info
	C.cg_window_info_at(arrayRef(list), C.CFIndex(i), &info)
	return WindowInfo{
		Number:       WindowID(info.number),
		OwnerPID:     int32(info.owner_pid),
		OwnerName:    C.GoString(&info.owner_name[0]),
		Name:         C.GoString(&info.name[0]),
		Layer:        int32(info.layer),
		Bounds:       goRect(info.bounds),
		Alpha:        float64(info.alpha),
		OnScreen:     info.on_screen != 0,
		SharingState: SharingState(info.sharing_state),
		StoreType:    int32(info.store_type),
		MemoryUsage:  int64(info.memory_usage),
	}
}

func (cgBackend) Retain(ref Ref) Ref {
	return Ref(unsafe.Pointer(C.CFRetain(C.CFTypeRef(unsafe.Pointer(ref)))))
}

func (cgBackend) Release(ref Ref) {
	C.CFRelease(C.CFTypeRef(unsafe.Pointer(ref)))
}

func (cgBackend) HideCursor(id DisplayID) int32 {
	return int32(C.CGDisplayHideCursor(did(id)))
}

func (cgBackend) ShowCursor(id DisplayID) int32 {
	return int32(C.CGDisplayShowCursor(did(id)))
}

func (cgBackend) MoveCursorToPoint(id DisplayID, p Point) int32 {
	return int32(C.CGDisplayMoveCursorToPoint(did(id), cgPoint(p)))
}

func (cgBackend) WarpMouseCursorPosition(p Point) int32 {
	return int32(C.CGWarpMouseCursorPosition(cgPoint(p)))
}

func (cgBackend) AssociateMouseAndMouseCursorPosition(connected bool) int32 {
	var v C.boolean_t
	if connected {
		v = 1
	}
	return int32(C.CGAssociateMouseAndMouseCursorPosition(v))
}
