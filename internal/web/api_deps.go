package web

import (
	"context"
	"net/http"
	"time"

	"github.com/rook-computer/wristface/internal/companion"
	"github.com/rook-computer/wristface/internal/face"
	"github.com/rook-computer/wristface/internal/state"
)

// EventPoster queues an event for the watch loop.
//
// The concrete implementation is typically *face.Loop.
type EventPoster interface {
	Post(ctx context.Context, ev face.Event) error
}

// StateReader exposes the watch model for the state endpoint.
type StateReader interface {
	Snapshot() state.State
}

// StepRecorder stores a pushed step total for the day containing now.
type StepRecorder interface {
	Set(now time.Time, total float64)
}

// apiLogger matches the component-tagged loggers used across the daemon.
type apiLogger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type APIV1Deps struct {
	Events EventPoster
	State  StateReader
	Steps  StepRecorder
	Logger apiLogger

	// InboxSize caps inbound message bodies, in bytes.
	InboxSize int

	// PublicURL is the address the companion uses to reach this watch,
	// e.g. "http://wristface.local". It is encoded in the pairing QR code.
	PublicURL string

	// PostTimeout bounds how long a handler waits for room in the event queue.
	PostTimeout time.Duration

	Now func() time.Time
}

const defaultPostTimeout = 2 * time.Second

func (d APIV1Deps) withDefaults() APIV1Deps {
	out := d
	if out.InboxSize <= 0 {
		out.InboxSize = companion.DefaultInboxSize
	}
	if out.PostTimeout <= 0 {
		out.PostTimeout = defaultPostTimeout
	}
	if out.Now == nil {
		out.Now = time.Now
	}
	return out
}

func (d APIV1Deps) post(r *http.Request, ev face.Event) error {
	if d.Events == nil {
		return errNoEventLoop
	}
	ctx, cancel := context.WithTimeout(r.Context(), d.PostTimeout)
	defer cancel()
	return d.Events.Post(ctx, ev)
}

func (d APIV1Deps) infof(format string, args ...interface{}) {
	if d.Logger != nil {
		d.Logger.Infof("web", format, args...)
	}
}

func (d APIV1Deps) errorf(format string, args ...interface{}) {
	if d.Logger != nil {
		d.Logger.Errorf("web", format, args...)
	}
}
