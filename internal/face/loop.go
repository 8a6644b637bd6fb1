package face

import (
	"context"

	pkgerrors "github.com/pkg/errors"
)

const DefaultQueueSize = 64

var ErrLoopStopped = pkgerrors.New("event loop stopped")

// Loop serializes events from every source onto one goroutine.
type Loop struct {
	handler Handler
	events  chan Event
	done    chan struct{}
	Logger  logger
}

func NewLoop(h Handler, queueSize int) *Loop {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &Loop{handler: h, events: make(chan Event, queueSize), done: make(chan struct{})}
}

// Post queues ev, waiting for room until ctx is done or the loop stops.
func (l *Loop) Post(ctx context.Context, ev Event) error {
	select {
	case <-l.done:
		return ErrLoopStopped
	default:
	}
	select {
	case l.events <- ev:
		return nil
	case <-l.done:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TryPost queues ev without waiting. It reports false when the queue is full
// or the loop has stopped.
func (l *Loop) TryPost(ev Event) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.events <- ev:
		return true
	default:
		if l.Logger != nil {
			l.Logger.Errorf("loop", "queue full, dropping %s event", ev.Kind())
		}
		return false
	}
}

// Run dispatches events until ctx is done. It must be called once.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-l.events:
			ev.Dispatch(l.handler)
		}
	}
}

// Done is closed when Run returns.
func (l *Loop) Done() <-chan struct{} { return l.done }
