package coregraphics

import (
	"runtime"
	"sync/atomic"
)

// handle owns exactly one reference to a native object. The reference is
// dropped by release, or by a runtime cleanup if the handle becomes
// unreachable first.
type handle struct {
	backend  Backend
	ref      Ref
	free     func(Ref)
	released atomic.Bool
	cleanup  runtime.Cleanup
}

func adopt(b Backend, ref Ref, free func(Ref)) (*handle, error) {
	if ref == nil {
		return nil, ErrNullHandle
	}
	h := &handle{backend: b, ref: ref, free: free}
	h.cleanup = runtime.AddCleanup(h, free, ref)
	return h, nil
}

// get returns the wrapped reference. Using a released handle is a
// programming error. Callers passing the reference to the backend must keep
// h reachable until the call returns, or the cleanup may free the object
// mid-call.
func (h *handle) get() Ref {
	if h.released.Load() {
		panic("coregraphics: use of released handle")
	}
	return h.ref
}

// clone retains the native object and wraps the new reference.
func (h *handle) clone() *handle {
	defer runtime.KeepAlive(h)
	ref := h.backend.Retain(h.get())
	c, err := adopt(h.backend, ref, h.free)
	if err != nil {
		panic("coregraphics: retain returned a null reference")
	}
	return c
}

func (h *handle) release() {
	if !h.released.CompareAndSwap(false, true) {
		return
	}
	h.cleanup.Stop()
	h.free(h.ref)
}
