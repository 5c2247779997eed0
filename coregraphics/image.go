package coregraphics

import (
	"fmt"
	"image"
	"runtime"
)

// Image is an owned reference to a CGImage.
type Image struct {
	h *handle
}

// AdoptImage takes ownership of one reference to a CGImageRef.
func AdoptImage(ref Ref) (*Image, error) {
	b := native()
	h, err := adopt(b, ref, b.ReleaseImage)
	if err != nil {
		return nil, err
	}
	return &Image{h: h}, nil
}

func adoptImageOrNone(ref Ref) (*Image, bool) {
	img, err := AdoptImage(ref)
	if err != nil {
		return nil, false
	}
	return img, true
}

// Clone retains the image and returns a second wrapper for it.
func (i *Image) Clone() *Image {
	return &Image{h: i.h.clone()}
}

// Release drops this wrapper's reference. It is safe to call more than once.
func (i *Image) Release() {
	i.h.release()
}

// Width returns the image width in pixels.
func (i *Image) Width() int {
	defer runtime.KeepAlive(i.h)
	return int(i.h.backend.ImageMetric(i.h.get(), ImageWidth))
}

// Height returns the image height in pixels.
func (i *Image) Height() int {
	defer runtime.KeepAlive(i.h)
	return int(i.h.backend.ImageMetric(i.h.get(), ImageHeight))
}

// BitsPerComponent returns the bits per color component.
func (i *Image) BitsPerComponent() int {
	defer runtime.KeepAlive(i.h)
	return int(i.h.backend.ImageMetric(i.h.get(), ImageBitsPerComponent))
}

// BitsPerPixel returns the bits per pixel.
func (i *Image) BitsPerPixel() int {
	defer runtime.KeepAlive(i.h)
	return int(i.h.backend.ImageMetric(i.h.get(), ImageBitsPerPixel))
}

// BytesPerRow returns the bytes per row of the backing store.
func (i *Image) BytesPerRow() int {
	defer runtime.KeepAlive(i.h)
	return int(i.h.backend.ImageMetric(i.h.get(), ImageBytesPerRow))
}

// RGBA renders the image into a new premultiplied RGBA image.
func (i *Image) RGBA() (*image.RGBA, error) {
	defer runtime.KeepAlive(i.h)
	w, h := i.Width(), i.Height()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("coregraphics: empty image %dx%d", w, h)
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if !i.h.backend.ImageCopyRGBA(i.h.get(), dst.Pix, w, h) {
		return nil, fmt.Errorf("coregraphics: failed to render %dx%d image", w, h)
	}
	return dst, nil
}

// Image returns an image containing the contents of the display.
func (d Display) Image() (*Image, bool) {
	return adoptImageOrNone(native().CreateDisplayImage(d.ID))
}

// ImageForRect returns an image of a portion of the display. The rectangle
// is in display-local coordinates.
func (d Display) ImageForRect(rect Rect) (*Image, bool) {
	return adoptImageOrNone(native().CreateDisplayImageForRect(d.ID, rect))
}

// Screenshot returns a composite image of the windows selected by
// listOption relative to window, clipped to bounds.
func Screenshot(bounds Rect, listOption WindowListOption, window WindowID, imageOption WindowImageOption) (*Image, bool) {
	return adoptImageOrNone(native().CreateWindowListImage(bounds, listOption, window, imageOption))
}

// ScreenshotFromWindows returns a composite image of the given windows.
func ScreenshotFromWindows(bounds Rect, windows []WindowID, imageOption WindowImageOption) (*Image, bool) {
	return adoptImageOrNone(native().CreateWindowListImageFromArray(bounds, windows, imageOption))
}
