package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/golang/freetype/truetype"
	"github.com/rook-computer/wristface/internal/assets"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Canvas is the offscreen logical frame screens draw into. It records the
// union of every rectangle touched since the last TakeDamage so outputs only
// push what changed.
type Canvas struct {
	img       *image.RGBA
	clockFace font.Face
	wordFace  font.Face
	damage    image.Rectangle
	Logger    Logger
}

// NewCanvas allocates a width x height canvas and loads both faces. A face
// that fails to load falls back to basicfont.
func NewCanvas(width, height int, logger Logger) *Canvas {
	c := &Canvas{
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
		Logger: logger,
	}
	c.clockFace = c.loadClockFace()
	c.wordFace = c.loadWordFace()
	return c
}

func (c *Canvas) loadClockFace() font.Face {
	tt, err := truetype.Parse(assets.ClockFontTTF)
	if err != nil {
		c.errorf("clock font parse failed, using basicfont: %v", err)
		return basicfont.Face7x13
	}
	c.infof("clock font loaded at %dpt", ClockFontSize)
	return truetype.NewFace(tt, &truetype.Options{Size: ClockFontSize, DPI: 72, Hinting: font.HintingFull})
}

func (c *Canvas) loadWordFace() font.Face {
	fnt, err := opentype.Parse(assets.WordFontTTF)
	if err != nil {
		c.errorf("word font parse failed, using basicfont: %v", err)
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{Size: WordFontSize, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		c.errorf("word font face create failed, using basicfont: %v", err)
		return basicfont.Face7x13
	}
	return face
}

func (c *Canvas) Size() (int, int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

// Image exposes the backing frame. Callers must not retain it across draws.
func (c *Canvas) Image() *image.RGBA { return c.img }

// TakeDamage returns the area touched since the last call and resets it.
func (c *Canvas) TakeDamage() image.Rectangle {
	d := c.damage
	c.damage = image.Rectangle{}
	return d
}

func (c *Canvas) touch(rect image.Rectangle) {
	rect = rect.Intersect(c.img.Bounds())
	if rect.Empty() {
		return
	}
	c.damage = c.damage.Union(rect)
}

func (c *Canvas) Fill(rect image.Rectangle, col color.Color) {
	rect = rect.Intersect(c.img.Bounds())
	if rect.Empty() {
		return
	}
	draw.Draw(c.img, rect, &image.Uniform{C: col}, image.Point{}, draw.Src)
	c.touch(rect)
}

func (c *Canvas) face(id FontID) font.Face {
	switch id {
	case FontClock:
		if c.clockFace != nil {
			return c.clockFace
		}
	default:
		if c.wordFace != nil {
			return c.wordFace
		}
	}
	return basicfont.Face7x13
}

func (c *Canvas) MeasureText(text string, style TextStyle) TextMetrics {
	face := c.face(style.Font)
	m := face.Metrics()
	return TextMetrics{
		Width:      font.MeasureString(face, text).Ceil(),
		Height:     m.Ascent.Ceil() + m.Descent.Ceil(),
		Ascent:     m.Ascent.Ceil(),
		Descent:    m.Descent.Ceil(),
		LineHeight: m.Height.Ceil(),
	}
}

func (c *Canvas) DrawText(text string, rect image.Rectangle, style TextStyle) TextMetrics {
	metrics := c.MeasureText(text, style)
	clip := rect.Intersect(c.img.Bounds())
	if clip.Empty() || text == "" {
		return metrics
	}
	x := rect.Min.X
	switch style.Align {
	case TextAlignCenter:
		x += (rect.Dx() - metrics.Width) / 2
	case TextAlignRight:
		x += rect.Dx() - metrics.Width
	}
	col := style.Color
	if col == nil {
		col = color.Black
	}
	drawer := &font.Drawer{
		Dst:  c.img.SubImage(clip).(*image.RGBA),
		Src:  image.NewUniform(col),
		Face: c.face(style.Font),
		Dot:  fixed.P(x, rect.Min.Y+metrics.Ascent),
	}
	drawer.DrawString(text)
	c.touch(clip)
	return metrics
}

func (c *Canvas) DrawImage(img image.Image, rect image.Rectangle) {
	if img == nil {
		return
	}
	b := img.Bounds()
	dst := image.Rectangle{Min: rect.Min, Max: rect.Min.Add(b.Size())}.Intersect(rect).Intersect(c.img.Bounds())
	if dst.Empty() {
		return
	}
	draw.Draw(c.img, dst, img, b.Min.Add(dst.Min.Sub(rect.Min)), draw.Over)
	c.touch(dst)
}

func (c *Canvas) infof(format string, args ...interface{}) {
	if c.Logger != nil {
		c.Logger.Infof("canvas", format, args...)
	}
}

func (c *Canvas) errorf(format string, args ...interface{}) {
	if c.Logger != nil {
		c.Logger.Errorf("canvas", format, args...)
	}
}
