package render

import (
	"image"
	"image/color"

	fb "github.com/gonutz/framebuffer"
	"github.com/pkg/errors"
)

const DefaultFramebuffer = "/dev/fb0"

// FBOutput scales the canvas onto a Linux framebuffer with nearest-neighbor sampling.
type FBOutput struct {
	Path   string
	Logger Logger
	dev    *fb.Device
}

func (o *FBOutput) Open() error {
	path := o.Path
	if path == "" {
		path = DefaultFramebuffer
	}
	dev, err := fb.Open(path)
	if err != nil {
		return errors.Wrapf(err, "open framebuffer %s", path)
	}
	o.dev = dev
	if o.Logger != nil {
		bounds := dev.Bounds()
		o.Logger.Infof("fb", "framebuffer open, bounds=%dx%d", bounds.Dx(), bounds.Dy())
	}
	return nil
}

func (o *FBOutput) Present(frame *image.RGBA, dirty image.Rectangle) error {
	if o.dev == nil {
		return errors.New("framebuffer not open")
	}
	blitToFB(o.dev, frame, dirty)
	return nil
}

func (o *FBOutput) Close() error {
	if o.dev == nil {
		return nil
	}
	o.dev.Close()
	o.dev = nil
	return nil
}

// scaleRect maps a canvas rectangle onto device pixels, rounding outward.
func scaleRect(r image.Rectangle, canvas, device image.Rectangle) image.Rectangle {
	cw, ch := canvas.Dx(), canvas.Dy()
	dw, dh := device.Dx(), device.Dy()
	if cw == 0 || ch == 0 {
		return image.Rectangle{}
	}
	out := image.Rect(
		r.Min.X*dw/cw,
		r.Min.Y*dh/ch,
		(r.Max.X*dw+cw-1)/cw,
		(r.Max.Y*dh+ch-1)/ch,
	)
	return out.Add(device.Min).Intersect(device)
}

// blitToFB copies the dirty part of canvas to the framebuffer via nearest-neighbor scaling.
func blitToFB(dev *fb.Device, canvas *image.RGBA, dirty image.Rectangle) {
	bounds := dev.Bounds()
	cb := canvas.Bounds()
	target := scaleRect(dirty, cb, bounds)
	fbWidth := bounds.Dx()
	fbHeight := bounds.Dy()
	for y := target.Min.Y; y < target.Max.Y; y++ {
		sy := cb.Min.Y + ((y-bounds.Min.Y)*cb.Dy())/fbHeight
		for x := target.Min.X; x < target.Max.X; x++ {
			sx := cb.Min.X + ((x-bounds.Min.X)*cb.Dx())/fbWidth
			pixel := canvas.RGBAAt(sx, sy)
			dev.Set(x, y, color.RGBA{R: pixel.R, G: pixel.G, B: pixel.B, A: 0xFF})
		}
	}
}
