package render

import (
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/rook-computer/wristface/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stripeScreen struct {
	draws int
}

func (s *stripeScreen) Start(ctx context.Context) error { return nil }
func (s *stripeScreen) Stop() error                     { return nil }
func (s *stripeScreen) Draw(d Drawer, st state.State) {
	s.draws++
	if st.Dirty.Has(state.SurfaceBattery) {
		d.Fill(image.Rect(0, 0, 144, 6), color.Black)
	}
}

func TestCanvasRenderer_PresentsOnlyDamage(t *testing.T) {
	out := &ImageOutput{}
	r := NewRenderer(out)
	require.NoError(t, r.Start(context.Background()))
	defer r.Stop()
	screen := &stripeScreen{}
	r.SetScreen(screen)

	r.RedrawWithState(state.State{Dirty: state.SurfaceBattery})
	assert.Equal(t, 1, out.Presents())
	assert.Equal(t, []image.Rectangle{image.Rect(0, 0, 144, 6)}, out.TakeDirty())

	// Nothing drawn, nothing pushed.
	r.RedrawWithState(state.State{Dirty: state.SurfaceClock})
	assert.Equal(t, 1, out.Presents())
	assert.Equal(t, 2, screen.draws)
	assert.EqualValues(t, 1, r.Frames())

	frame := out.Frame()
	require.NotNil(t, frame)
	assert.Equal(t, color.RGBA{A: 0xFF}, frame.RGBAAt(3, 3))
}

func TestCanvasRenderer_IdleWhenStopped(t *testing.T) {
	out := &ImageOutput{}
	r := NewRenderer(out)
	r.SetScreen(&stripeScreen{})
	r.RedrawWithState(state.State{Dirty: state.SurfaceBattery})
	assert.Equal(t, 0, out.Presents())
}

func TestImageOutput_PNG(t *testing.T) {
	out := &ImageOutput{}
	_, err := out.PNG()
	assert.Error(t, err)

	frame := image.NewRGBA(image.Rect(0, 0, 4, 4))
	require.NoError(t, out.Present(frame, frame.Bounds()))
	data, err := out.PNG()
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), data[:4])
}
