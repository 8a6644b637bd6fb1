// Package face routes watch events to the state-owning controller.
package face

import (
	"time"

	"github.com/rook-computer/wristface/internal/companion"
	"github.com/rook-computer/wristface/internal/state"
)

// Handler has one method per event kind. Each call runs to completion before
// the next one starts.
type Handler interface {
	MinuteTick(now time.Time)
	BatteryChanged(status state.BatteryStatus)
	HealthMovement()
	ConnectionChanged(connected bool)
	InboxReceived(msg companion.Message)
	InboxDropped(reason error)
	OutboxSent(req companion.Request)
	OutboxFailed(req companion.Request, err error)
}

// Event is something a source posts into the Loop.
type Event interface {
	Dispatch(h Handler)
	Kind() string
}

type MinuteTick struct{ Now time.Time }

type BatteryChanged struct{ Status state.BatteryStatus }

type HealthMovement struct{}

type ConnectionChanged struct{ Connected bool }

type InboxReceived struct{ Message companion.Message }

type InboxDropped struct{ Reason error }

type OutboxSent struct{ Request companion.Request }

type OutboxFailed struct {
	Request companion.Request
	Err     error
}

func (e MinuteTick) Dispatch(h Handler)        { h.MinuteTick(e.Now) }
func (e BatteryChanged) Dispatch(h Handler)    { h.BatteryChanged(e.Status) }
func (e HealthMovement) Dispatch(h Handler)    { h.HealthMovement() }
func (e ConnectionChanged) Dispatch(h Handler) { h.ConnectionChanged(e.Connected) }
func (e InboxReceived) Dispatch(h Handler)     { h.InboxReceived(e.Message) }
func (e InboxDropped) Dispatch(h Handler)      { h.InboxDropped(e.Reason) }
func (e OutboxSent) Dispatch(h Handler)        { h.OutboxSent(e.Request) }
func (e OutboxFailed) Dispatch(h Handler)      { h.OutboxFailed(e.Request, e.Err) }

func (MinuteTick) Kind() string        { return "minute-tick" }
func (BatteryChanged) Kind() string    { return "battery" }
func (HealthMovement) Kind() string    { return "health" }
func (ConnectionChanged) Kind() string { return "connection" }
func (InboxReceived) Kind() string     { return "inbox" }
func (InboxDropped) Kind() string      { return "inbox-dropped" }
func (OutboxSent) Kind() string        { return "outbox-sent" }
func (OutboxFailed) Kind() string      { return "outbox-failed" }
