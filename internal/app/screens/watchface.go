package screens

import (
	"context"
	"image"

	"github.com/rook-computer/wristface/internal/render"
	"github.com/rook-computer/wristface/internal/render/layout"
	"github.com/rook-computer/wristface/internal/state"
)

const DefaultLineWidth = 6

// WatchfaceScreen paints the watchface surfaces marked dirty in the state it
// is handed. Surfaces whose rectangles overlap a repainted one are repainted
// too, so the Bluetooth icon survives a battery bar update.
type WatchfaceScreen struct {
	LineWidth int
}

func NewWatchfaceScreen() *WatchfaceScreen {
	return &WatchfaceScreen{LineWidth: DefaultLineWidth}
}

func (screen *WatchfaceScreen) Start(ctx context.Context) error { return nil }
func (screen *WatchfaceScreen) Stop() error                     { return nil }

// Layout returns the surface rectangles for a width x height canvas.
func (screen *WatchfaceScreen) Layout(width, height int) layout.Watch {
	lineWidth := screen.LineWidth
	if lineWidth <= 0 {
		lineWidth = DefaultLineWidth
	}
	return layout.Diorite(image.Rect(0, 0, width, height), lineWidth)
}

func (screen *WatchfaceScreen) Draw(r render.Drawer, st state.State) {
	w, h := r.Size()
	lay := screen.Layout(w, h)
	rects := surfaceRects(lay)
	dirty := ExpandDirty(st.Dirty, rects)
	if dirty == state.SurfaceNone {
		return
	}

	background := st.Settings.Background.RGBA()
	foreground := st.Settings.Foreground.RGBA()

	if dirty == state.SurfaceAll {
		r.Fill(image.Rect(0, 0, w, h), background)
	}
	// Clear everything first so a later clear never wipes an earlier paint.
	for _, surface := range dirty.Each() {
		r.Fill(rects[surface], background)
	}

	word := render.TextStyle{Color: foreground, Font: render.FontWord, Align: render.TextAlignCenter}
	for _, surface := range dirty.Each() {
		switch surface {
		case state.SurfaceBattery:
			r.Fill(render.BatteryBarRect(lay.Battery, st.Battery.Percent, lay.Battery.Dy()), foreground)
		case state.SurfaceSteps:
			r.Fill(render.StepBarRect(lay.Steps, st.Steps.Steps, st.Steps.Goal, lay.Steps.Dy()), foreground)
		case state.SurfaceBluetooth:
			if st.BluetoothIconVisible() && st.BluetoothIcon != nil {
				r.DrawImage(st.BluetoothIcon.Image, lay.Bluetooth)
			}
		case state.SurfaceWeatherIcon:
			if st.WeatherIcon != nil {
				r.DrawImage(st.WeatherIcon.Image, lay.WeatherIcon)
			}
		case state.SurfaceTemperature:
			r.DrawText(st.Weather.TemperatureText, lay.Temperature, word)
		case state.SurfaceClock:
			clock := word
			clock.Font = render.FontClock
			r.DrawText(st.Clock.Time, lay.Clock, clock)
		case state.SurfaceDate:
			r.DrawText(st.Clock.Date, lay.Date, word)
		case state.SurfaceDay:
			r.DrawText(st.Clock.Day, lay.Day, word)
		}
	}
}

func surfaceRects(lay layout.Watch) map[state.Surface]image.Rectangle {
	return map[state.Surface]image.Rectangle{
		state.SurfaceBattery:     lay.Battery,
		state.SurfaceSteps:       lay.Steps,
		state.SurfaceBluetooth:   lay.Bluetooth,
		state.SurfaceWeatherIcon: lay.WeatherIcon,
		state.SurfaceTemperature: lay.Temperature,
		state.SurfaceClock:       lay.Clock,
		state.SurfaceDate:        lay.Date,
		state.SurfaceDay:         lay.Day,
	}
}

// ExpandDirty grows dirty until no clean surface overlaps a dirty one.
func ExpandDirty(dirty state.Surface, rects map[state.Surface]image.Rectangle) state.Surface {
	for changed := true; changed; {
		changed = false
		for _, s := range dirty.Each() {
			for _, other := range state.SurfaceAll.Each() {
				if dirty.Has(other) || !rects[s].Overlaps(rects[other]) {
					continue
				}
				dirty |= other
				changed = true
			}
		}
	}
	return dirty
}
