package render

import (
	"context"
	"image"
	"image/color"

	"github.com/rook-computer/wristface/internal/state"
)

// Logger is the component-tagged logger renderers and outputs report through.
type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type Renderer interface {
	Start(ctx context.Context) error
	Stop() error
	SetScreen(screen Screen)
	RunLoop(ctx context.Context, store *state.Store)
	RedrawWithState(snap state.State)
}

type Screen interface {
	Start(ctx context.Context) error
	Stop() error
	Draw(r Drawer, s state.State)
}

type NoopRenderer struct{}

func (n *NoopRenderer) Start(ctx context.Context) error                 { return nil }
func (n *NoopRenderer) Stop() error                                     { return nil }
func (n *NoopRenderer) SetScreen(screen Screen)                         {}
func (n *NoopRenderer) RunLoop(ctx context.Context, store *state.Store) {}
func (n *NoopRenderer) RedrawWithState(snap state.State)                {}

// Drawer is an abstraction the renderer provides to screens to draw primitives
// without exposing the output device.
type Drawer interface {
	// Size returns the logical canvas size (in pixels) that screens draw into.
	Size() (width int, height int)

	Fill(rect image.Rectangle, c color.Color)

	MeasureText(text string, style TextStyle) TextMetrics
	// DrawText draws text inside rect, clipped to it. The first line's top
	// edge sits on rect.Min.Y; Align positions it horizontally.
	DrawText(text string, rect image.Rectangle, style TextStyle) TextMetrics

	// DrawImage composites img over the canvas at rect.Min, clipped to rect.
	// Transparent pixels leave the canvas untouched.
	DrawImage(img image.Image, rect image.Rectangle)
}

type TextAlign int

const (
	TextAlignLeft TextAlign = iota
	TextAlignCenter
	TextAlignRight
)

type FontID int

const (
	FontWord FontID = iota
	FontClock
)

type TextStyle struct {
	Color color.Color
	Font  FontID
	Align TextAlign
}

type TextMetrics struct {
	Width      int
	Height     int
	Ascent     int
	Descent    int
	LineHeight int
}
