package state

import "strings"

// Surface is a set of drawable regions of the watchface.
type Surface uint16

const (
	SurfaceBattery Surface = 1 << iota
	SurfaceSteps
	SurfaceBluetooth
	SurfaceWeatherIcon
	SurfaceTemperature
	SurfaceClock
	SurfaceDate
	SurfaceDay

	SurfaceNone Surface = 0
	SurfaceAll          = SurfaceBattery | SurfaceSteps | SurfaceBluetooth | SurfaceWeatherIcon |
		SurfaceTemperature | SurfaceClock | SurfaceDate | SurfaceDay
)

var surfaceNames = []struct {
	s    Surface
	name string
}{
	{SurfaceBattery, "battery"},
	{SurfaceSteps, "steps"},
	{SurfaceBluetooth, "bluetooth"},
	{SurfaceWeatherIcon, "weather-icon"},
	{SurfaceTemperature, "temperature"},
	{SurfaceClock, "clock"},
	{SurfaceDate, "date"},
	{SurfaceDay, "day"},
}

// Each returns the individual surfaces in s, in paint order.
func (s Surface) Each() []Surface {
	var out []Surface
	for _, entry := range surfaceNames {
		if s&entry.s != 0 {
			out = append(out, entry.s)
		}
	}
	return out
}

func (s Surface) Has(other Surface) bool { return s&other == other }

func (s Surface) String() string {
	if s == SurfaceNone {
		return "none"
	}
	var names []string
	for _, entry := range surfaceNames {
		if s&entry.s != 0 {
			names = append(names, entry.name)
		}
	}
	return strings.Join(names, "|")
}
