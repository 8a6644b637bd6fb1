package face

import (
	"fmt"
	"time"

	"github.com/rook-computer/wristface/internal/state"
)

// FormatClock renders the three clock strings for now.
func FormatClock(now time.Time, clock24h bool) state.ClockText {
	layout := "03:04"
	if clock24h {
		layout = "15:04"
	}
	return state.ClockText{
		Time: now.Format(layout),
		Date: now.Format("January 2"),
		Day:  now.Format("Monday"),
	}
}

func FormatTemperature(degrees int) string {
	return fmt.Sprintf("%d°", degrees)
}

// WeatherDue reports whether the tick at now should ask for fresh weather.
func WeatherDue(now time.Time) bool {
	return now.Minute()%30 == 0
}
