// Package health keeps today's step count.
package health

import (
	"sync"
	"time"
)

// DayCounter holds the cumulative steps of the current local day. The count
// starts over from zero the first time it is touched on a new day.
type DayCounter struct {
	mu    sync.Mutex
	day   time.Time
	steps float64
}

func NewDayCounter() *DayCounter { return &DayCounter{} }

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func (c *DayCounter) rollover(now time.Time) {
	today := dayOf(now)
	if !c.day.Equal(today) {
		c.day = today
		c.steps = 0
	}
}

// Set replaces today's total, as reported by a health service that already sums the day.
func (c *DayCounter) Set(now time.Time, total float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rollover(now)
	if total < 0 {
		total = 0
	}
	c.steps = total
}

// Add counts additional steps taken now. Negative deltas are ignored.
func (c *DayCounter) Add(now time.Time, delta float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rollover(now)
	if delta > 0 {
		c.steps += delta
	}
}

// StepsToday returns the cumulative count for the day containing now.
func (c *DayCounter) StepsToday(now time.Time) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rollover(now)
	return c.steps
}
