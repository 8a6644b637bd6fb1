package render

import (
	"bytes"
	"image"
	"image/draw"
	"image/png"
	"sync"

	"github.com/pkg/errors"
)

// ImageOutput keeps the last presented frame in memory. The simulator serves
// it over HTTP and tests inspect it directly.
type ImageOutput struct {
	mu       sync.Mutex
	frame    *image.RGBA
	dirty    []image.Rectangle
	presents int
}

func (o *ImageOutput) Open() error { return nil }

func (o *ImageOutput) Close() error { return nil }

func (o *ImageOutput) Present(frame *image.RGBA, dirty image.Rectangle) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.frame == nil || !o.frame.Rect.Eq(frame.Rect) {
		o.frame = image.NewRGBA(frame.Rect)
	}
	draw.Draw(o.frame, dirty, frame, dirty.Min, draw.Src)
	o.dirty = append(o.dirty, dirty)
	o.presents++
	return nil
}

// Frame returns a copy of the last presented frame, or nil before the first present.
func (o *ImageOutput) Frame() *image.RGBA {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.frame == nil {
		return nil
	}
	out := image.NewRGBA(o.frame.Rect)
	copy(out.Pix, o.frame.Pix)
	return out
}

// Presents returns how many frames were pushed.
func (o *ImageOutput) Presents() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.presents
}

// TakeDirty returns the dirty rectangles of every present since the last call.
func (o *ImageOutput) TakeDirty() []image.Rectangle {
	o.mu.Lock()
	defer o.mu.Unlock()
	d := o.dirty
	o.dirty = nil
	return d
}

// PNG encodes the last frame.
func (o *ImageOutput) PNG() ([]byte, error) {
	frame := o.Frame()
	if frame == nil {
		return nil, errors.New("no frame presented yet")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, frame); err != nil {
		return nil, errors.Wrap(err, "encode frame")
	}
	return buf.Bytes(), nil
}
