// Package sources turns host facilities into watch events.
package sources

import (
	"context"
	"time"
)

// MinuteTicker fires once at the start of every wall-clock minute.
type MinuteTicker struct {
	Now   func() time.Time
	After func(d time.Duration) <-chan time.Time
}

func NewMinuteTicker() *MinuteTicker {
	return &MinuteTicker{Now: time.Now, After: time.After}
}

// UntilNextMinute is the wait from now to the next minute boundary.
func UntilNextMinute(now time.Time) time.Duration {
	next := now.Truncate(time.Minute).Add(time.Minute)
	return next.Sub(now)
}

// Run calls emit with the current time at each minute boundary until ctx is done.
func (t *MinuteTicker) Run(ctx context.Context, emit func(now time.Time)) {
	for {
		wait := UntilNextMinute(t.Now())
		select {
		case <-ctx.Done():
			return
		case <-t.After(wait):
			if ctx.Err() != nil {
				return
			}
			emit(t.Now())
		}
	}
}
