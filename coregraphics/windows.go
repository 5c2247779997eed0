package coregraphics

import "runtime"

// SharingState is the kCGWindowSharingState of a window.
type SharingState int32

const (
	SharingNone      SharingState = 0
	SharingReadOnly  SharingState = 1
	SharingReadWrite SharingState = 2
)

func (s SharingState) String() string {
	switch s {
	case SharingNone:
		return "none"
	case SharingReadOnly:
		return "read-only"
	case SharingReadWrite:
		return "read-write"
	default:
		return "unknown"
	}
}

// WindowInfo is one window descriptor from a window list. Fields missing
// from the native dictionary keep their zero value.
type WindowInfo struct {
	Number       WindowID
	OwnerPID     int32
	OwnerName    string
	Name         string
	Layer        int32
	Bounds       Rect
	Alpha        float64
	OnScreen     bool
	SharingState SharingState
	StoreType    int32
	MemoryUsage  int64
}

// WindowList is an owned reference to the array returned by
// CGWindowListCopyWindowInfo.
type WindowList struct {
	h *handle
}

// AdoptWindowList takes ownership of one reference to a CFArrayRef of
// window info dictionaries.
func AdoptWindowList(ref Ref) (*WindowList, error) {
	b := native()
	h, err := adopt(b, ref, b.Release)
	if err != nil {
		return nil, err
	}
	return &WindowList{h: h}, nil
}

// WindowListInfo returns information about the windows selected by option.
// Pass NullWindowID as relativeTo unless option names a reference window.
func WindowListInfo(option WindowListOption, relativeTo WindowID) (*WindowList, bool) {
	l, err := AdoptWindowList(native().CopyWindowInfo(option, relativeTo))
	if err != nil {
		return nil, false
	}
	return l, true
}

// Clone retains the list and returns a second wrapper for it.
func (l *WindowList) Clone() *WindowList {
	return &WindowList{h: l.h.clone()}
}

// Release drops this wrapper's reference. It is safe to call more than once.
func (l *WindowList) Release() {
	l.h.release()
}

// Len returns the number of windows in the list.
func (l *WindowList) Len() int {
	defer runtime.KeepAlive(l.h)
	return l.h.backend.WindowListCount(l.h.get())
}

// At decodes the i-th window descriptor. It panics if i is out of range.
func (l *WindowList) At(i int) WindowInfo {
	defer runtime.KeepAlive(l.h)
	ref := l.h.get()
	if n := l.h.backend.WindowListCount(ref); i < 0 || i >= n {
		panic("coregraphics: window index out of range")
	}
	return l.h.backend.WindowInfoAt(ref, i)
}

// Windows decodes every descriptor in the list, front to back.
func (l *WindowList) Windows() []WindowInfo {
	defer runtime.KeepAlive(l.h)
	ref := l.h.get()
	n := l.h.backend.WindowListCount(ref)
	out := make([]WindowInfo, n)
	for i := range out {
		out[i] = l.h.backend.WindowInfoAt(ref, i)
	}
	return out
}
