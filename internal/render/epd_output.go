package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/pkg/errors"
	xdraw "golang.org/x/image/draw"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/ssd1306/image1bit"
	"periph.io/x/devices/v3/waveshare2in13v4"
	"periph.io/x/host/v3"
)

// EPDOutput drives a Waveshare 2.13" v4 e-paper HAT over SPI. The canvas is
// scaled to fit the panel and only the rows and columns that differ from the
// previous frame are sent.
type EPDOutput struct {
	// SPIPort names the SPI port; empty picks the first one registered.
	SPIPort string
	Logger  Logger

	port    spi.PortCloser
	display *waveshare2in13v4.Dev
	last    *image.Gray
}

func (o *EPDOutput) Open() error {
	if _, err := host.Init(); err != nil {
		return errors.Wrap(err, "periph host init")
	}
	port, err := spireg.Open(o.SPIPort)
	if err != nil {
		return errors.Wrap(err, "open spi port")
	}
	opts := waveshare2in13v4.EPD2in13v4
	display, err := waveshare2in13v4.NewHat(port, &opts)
	if err != nil {
		port.Close()
		return errors.Wrap(err, "open e-paper hat")
	}
	if err := display.Init(); err != nil {
		port.Close()
		return errors.Wrap(err, "init e-paper")
	}
	if err := display.Clear(color.White); err != nil {
		port.Close()
		return errors.Wrap(err, "clear e-paper")
	}
	o.port = port
	o.display = display
	o.last = nil
	if o.Logger != nil {
		b := display.Bounds()
		o.Logger.Infof("epd", "e-paper open, bounds=%dx%d", b.Dx(), b.Dy())
	}
	return nil
}

func (o *EPDOutput) Present(frame *image.RGBA, dirty image.Rectangle) error {
	if o.display == nil {
		return errors.New("e-paper not open")
	}
	panel := o.display.Bounds()
	gray := image.NewGray(panel)
	draw.Draw(gray, panel, image.White, image.Point{}, draw.Src)
	xdraw.NearestNeighbor.Scale(gray, fitRect(frame.Bounds(), panel), frame, frame.Bounds(), xdraw.Src, nil)

	diff, changed := diffRectGray(o.last, gray)
	if !changed {
		return nil
	}
	img := image1bit.NewVerticalLSB(panel)
	draw.Draw(img, panel, gray, panel.Min, draw.Src)
	if err := o.display.Init(); err != nil {
		return errors.Wrap(err, "wake e-paper")
	}
	if err := o.display.Draw(alignRectForEPD(diff, panel), img, image.Point{}); err != nil {
		return errors.Wrap(err, "draw e-paper")
	}
	o.last = gray
	return o.display.Sleep()
}

func (o *EPDOutput) Close() error {
	if o.display != nil {
		_ = o.display.Halt()
		o.display = nil
	}
	if o.port != nil {
		err := o.port.Close()
		o.port = nil
		return err
	}
	return nil
}

// fitRect returns the largest rectangle with src's aspect ratio centered in dst.
func fitRect(src, dst image.Rectangle) image.Rectangle {
	sw, sh := src.Dx(), src.Dy()
	dw, dh := dst.Dx(), dst.Dy()
	if sw == 0 || sh == 0 {
		return image.Rectangle{}
	}
	w, h := dw, sh*dw/sw
	if h > dh {
		w, h = sw*dh/sh, dh
	}
	x := dst.Min.X + (dw-w)/2
	y := dst.Min.Y + (dh-h)/2
	return image.Rect(x, y, x+w, y+h)
}

// alignRectForEPD widens r to whole bytes on the x axis as the controller
// addresses eight pixels per byte.
func alignRectForEPD(r, bounds image.Rectangle) image.Rectangle {
	if r.Empty() {
		return r
	}
	x0 := r.Min.X &^ 7
	x1 := (r.Max.X + 7) &^ 7
	if x0 < bounds.Min.X {
		x0 = bounds.Min.X
	}
	if x1 > bounds.Max.X {
		x1 = bounds.Max.X
	}
	if x1 <= x0 {
		return bounds
	}
	return image.Rect(x0, r.Min.Y, x1, r.Max.Y).Intersect(bounds)
}

// diffRectGray returns the bounding box of pixels that differ between prev
// and curr. A nil or differently sized prev counts as fully changed.
func diffRectGray(prev, curr *image.Gray) (image.Rectangle, bool) {
	if prev == nil || !prev.Rect.Eq(curr.Rect) {
		return curr.Bounds(), true
	}
	minX, minY := curr.Rect.Max.X, curr.Rect.Max.Y
	maxX, maxY := curr.Rect.Min.X, curr.Rect.Min.Y
	changed := false
	for y := curr.Rect.Min.Y; y < curr.Rect.Max.Y; y++ {
		for x := curr.Rect.Min.X; x < curr.Rect.Max.X; x++ {
			if prev.GrayAt(x, y) == curr.GrayAt(x, y) {
				continue
			}
			changed = true
			minX = min(minX, x)
			minY = min(minY, y)
			maxX = max(maxX, x)
			maxY = max(maxY, y)
		}
	}
	if !changed {
		return image.Rectangle{}, false
	}
	return image.Rect(minX, minY, maxX+1, maxY+1), true
}
