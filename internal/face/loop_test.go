package face

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rook-computer/wristface/internal/companion"
	"github.com/rook-computer/wristface/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHandler struct {
	mu    sync.Mutex
	calls []string
}

func (h *recordingHandler) record(s string) {
	h.mu.Lock()
	h.calls = append(h.calls, s)
	h.mu.Unlock()
}

func (h *recordingHandler) Calls() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.calls...)
}

func (h *recordingHandler) MinuteTick(now time.Time)                    { h.record("tick") }
func (h *recordingHandler) BatteryChanged(s state.BatteryStatus)        { h.record("battery") }
func (h *recordingHandler) HealthMovement()                             { h.record("health") }
func (h *recordingHandler) ConnectionChanged(connected bool)            { h.record("connection") }
func (h *recordingHandler) InboxReceived(msg companion.Message)         { h.record("inbox") }
func (h *recordingHandler) InboxDropped(reason error)                   { h.record("dropped") }
func (h *recordingHandler) OutboxSent(req companion.Request)            { h.record("sent") }
func (h *recordingHandler) OutboxFailed(req companion.Request, _ error) { h.record("failed") }

func TestLoop_DispatchesInOrder(t *testing.T) {
	h := &recordingHandler{}
	loop := NewLoop(h, 0)
	ctx, cancel := context.WithCancel(context.Background())

	events := []Event{
		MinuteTick{Now: noon},
		BatteryChanged{},
		HealthMovement{},
		ConnectionChanged{},
		InboxReceived{},
		InboxDropped{},
		OutboxSent{},
		OutboxFailed{},
	}
	for _, ev := range events {
		require.NoError(t, loop.Post(ctx, ev))
	}

	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx) }()

	want := []string{"tick", "battery", "health", "connection", "inbox", "dropped", "sent", "failed"}
	assert.Eventually(t, func() bool { return len(h.Calls()) == len(want) }, time.Second, 5*time.Millisecond)
	assert.Equal(t, want, h.Calls())

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
	assert.Equal(t, ErrLoopStopped, loop.Post(context.Background(), HealthMovement{}))
	assert.False(t, loop.TryPost(HealthMovement{}))
}

func TestLoop_TryPostWhenFull(t *testing.T) {
	loop := NewLoop(&recordingHandler{}, 1)
	assert.True(t, loop.TryPost(HealthMovement{}))
	assert.False(t, loop.TryPost(HealthMovement{}))
}

func TestLoop_PostHonorsContext(t *testing.T) {
	loop := NewLoop(&recordingHandler{}, 1)
	require.NoError(t, loop.Post(context.Background(), HealthMovement{}))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, loop.Post(ctx, HealthMovement{}), context.Canceled)
}

func TestEventKinds(t *testing.T) {
	assert.Equal(t, "minute-tick", MinuteTick{}.Kind())
	assert.Equal(t, "inbox-dropped", InboxDropped{}.Kind())
}
