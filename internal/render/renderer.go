package render

import (
	"context"
	"image"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/rook-computer/wristface/internal/state"
)

// Output is a device the finished canvas is pushed to.
type Output interface {
	Open() error
	// Present pushes frame to the device. dirty is the part of frame that
	// changed since the previous call; outputs may push more than that.
	Present(frame *image.RGBA, dirty image.Rectangle) error
	Close() error
}

// CanvasRenderer draws the current screen into an offscreen Canvas and
// presents only the damaged area to its Output.
type CanvasRenderer struct {
	out           Output
	canvas        *Canvas
	mu            sync.Mutex
	current       Screen
	running       atomic.Bool
	frames        atomic.Int64
	Logger        Logger
	FrameInterval time.Duration
}

func NewRenderer(out Output) *CanvasRenderer {
	return &CanvasRenderer{out: out, FrameInterval: time.Second / 30}
}

func (r *CanvasRenderer) Start(ctx context.Context) error {
	if r.out == nil {
		return errors.New("render: no output")
	}
	if err := r.out.Open(); err != nil {
		return errors.Wrap(err, "render: open output")
	}
	r.canvas = NewCanvas(CanvasWidth, CanvasHeight, r.Logger)
	r.running.Store(true)
	r.infof("renderer started, canvas=%dx%d", CanvasWidth, CanvasHeight)
	return nil
}

func (r *CanvasRenderer) Stop() error {
	if !r.running.Swap(false) {
		return nil
	}
	r.mu.Lock()
	screen := r.current
	r.mu.Unlock()
	if screen != nil {
		_ = screen.Stop()
	}
	return r.out.Close()
}

// SetScreen sets the current logical screen to be drawn.
func (r *CanvasRenderer) SetScreen(screen Screen) {
	r.mu.Lock()
	r.current = screen
	r.mu.Unlock()
}

// Frames is the number of presents pushed to the output so far.
func (r *CanvasRenderer) Frames() int64 { return r.frames.Load() }

// RedrawWithState lets the screen repaint the surfaces marked dirty in snap
// and presents the touched area. Nothing is pushed when nothing changed.
func (r *CanvasRenderer) RedrawWithState(snap state.State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.running.Load() || r.current == nil || r.canvas == nil {
		return
	}
	r.current.Draw(r.canvas, snap)
	dirty := r.canvas.TakeDamage()
	if dirty.Empty() {
		return
	}
	if err := r.out.Present(r.canvas.Image(), dirty); err != nil {
		r.errorf("present failed: %v", err)
		return
	}
	r.frames.Add(1)
}

// RunLoop polls the store for dirty surfaces until the context is done.
func (r *CanvasRenderer) RunLoop(ctx context.Context, store *state.Store) {
	interval := r.FrameInterval
	if interval <= 0 {
		interval = time.Second / 30
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			snap := store.TakeDirty()
			if snap.Dirty == state.SurfaceNone {
				continue
			}
			r.RedrawWithState(snap)
		}
	}
}

func (r *CanvasRenderer) infof(format string, args ...interface{}) {
	if r.Logger != nil {
		r.Logger.Infof("render", format, args...)
	}
}

func (r *CanvasRenderer) errorf(format string, args ...interface{}) {
	if r.Logger != nil {
		r.Logger.Errorf("render", format, args...)
	}
}
