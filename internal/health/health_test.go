package health

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayCounter_Accumulates(t *testing.T) {
	c := NewDayCounter()
	morning := time.Date(2024, 6, 5, 8, 0, 0, 0, time.UTC)
	c.Add(morning, 40)
	c.Add(morning.Add(time.Hour), 25)
	c.Add(morning.Add(2*time.Hour), -10)
	assert.Equal(t, 65.0, c.StepsToday(morning.Add(3*time.Hour)))
}

func TestDayCounter_ResetsAtMidnight(t *testing.T) {
	c := NewDayCounter()
	late := time.Date(2024, 6, 5, 23, 59, 0, 0, time.UTC)
	c.Set(late, 9000)
	assert.Equal(t, 9000.0, c.StepsToday(late))
	assert.Equal(t, 0.0, c.StepsToday(late.Add(2*time.Minute)))

	c.Add(late.Add(3*time.Minute), 12)
	assert.Equal(t, 12.0, c.StepsToday(late.Add(4*time.Minute)))
}

func TestDayCounter_SetClampsNegative(t *testing.T) {
	c := NewDayCounter()
	now := time.Date(2024, 6, 5, 12, 0, 0, 0, time.UTC)
	c.Set(now, -3)
	assert.Equal(t, 0.0, c.StepsToday(now))
}
