package screens

import (
	"image"
	"image/color"
	"testing"

	"github.com/rook-computer/wristface/internal/icons"
	"github.com/rook-computer/wristface/internal/render"
	"github.com/rook-computer/wristface/internal/settings"
	"github.com/rook-computer/wristface/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	white = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	black = color.RGBA{A: 0xFF}
)

func baseState() state.State {
	return state.State{
		Settings: settings.Defaults(),
		Battery:  state.BatteryStatus{Percent: 50},
		Steps:    state.StepStatus{Steps: 25, Goal: 100},
		Clock:    state.ClockText{Time: "12:34", Date: "June 5", Day: "Friday"},
		Weather:  state.WeatherStatus{IconCode: "01d", TemperatureText: "72°"},
		Dirty:    state.SurfaceAll,
	}
}

func hasInk(img *image.RGBA, rect image.Rectangle, bg color.RGBA) bool {
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if img.RGBAAt(x, y) != bg {
				return true
			}
		}
	}
	return false
}

func TestWatchfaceScreen_DrawsBars(t *testing.T) {
	canvas := render.NewCanvas(144, 168, nil)
	screen := NewWatchfaceScreen()
	screen.Draw(canvas, baseState())
	img := canvas.Image()

	assert.Equal(t, black, img.RGBAAt(10, 2))
	assert.Equal(t, white, img.RGBAAt(100, 2))
	assert.Equal(t, black, img.RGBAAt(10, 165))
	assert.Equal(t, white, img.RGBAAt(60, 165))
	assert.Equal(t, white, img.RGBAAt(72, 150))

	lay := screen.Layout(144, 168)
	assert.True(t, hasInk(img, lay.Clock, white))
	assert.True(t, hasInk(img, lay.Date, white))
	assert.True(t, hasInk(img, lay.Day, white))
	assert.True(t, hasInk(img, lay.Temperature, white))
}

func TestWatchfaceScreen_InvertedColors(t *testing.T) {
	canvas := render.NewCanvas(144, 168, nil)
	st := baseState()
	st.Settings = settings.ApplyInvert(true)
	NewWatchfaceScreen().Draw(canvas, st)
	img := canvas.Image()

	assert.Equal(t, white, img.RGBAAt(10, 2))
	assert.Equal(t, black, img.RGBAAt(100, 2))
	assert.Equal(t, black, img.RGBAAt(72, 150))
}

func TestWatchfaceScreen_RepaintsOnlyDirtySurfaces(t *testing.T) {
	canvas := render.NewCanvas(144, 168, nil)
	screen := NewWatchfaceScreen()
	screen.Draw(canvas, baseState())
	canvas.TakeDamage()

	st := baseState()
	st.Dirty = state.SurfaceDay
	st.Clock.Day = "Saturday"
	screen.Draw(canvas, st)
	assert.Equal(t, screen.Layout(144, 168).Day, canvas.TakeDamage())

	st.Dirty = state.SurfaceNone
	screen.Draw(canvas, st)
	assert.True(t, canvas.TakeDamage().Empty())
}

func TestWatchfaceScreen_BluetoothIconOnlyWhenDisconnected(t *testing.T) {
	bank := icons.NewAssetBank()
	bt, err := bank.Acquire(icons.BluetoothAsset(false))
	require.NoError(t, err)

	screen := NewWatchfaceScreen()
	lay := screen.Layout(144, 168)
	// Keep the battery bar away from the icon so only the icon can ink it.
	st := baseState()
	st.Battery.Percent = 0
	st.BluetoothIcon = bt

	st.Bluetooth = state.BluetoothStatus{Connected: true, Known: true}
	canvas := render.NewCanvas(144, 168, nil)
	screen.Draw(canvas, st)
	assert.False(t, hasInk(canvas.Image(), lay.Bluetooth, white))

	st.Bluetooth = state.BluetoothStatus{Connected: false, Known: true}
	screen.Draw(canvas, st)
	assert.True(t, hasInk(canvas.Image(), lay.Bluetooth, white))
}

func TestWatchfaceScreen_WeatherIcon(t *testing.T) {
	bank := icons.NewAssetBank()
	id, ok := icons.Resolve("01d", false)
	require.True(t, ok)
	bm, err := bank.Acquire(id)
	require.NoError(t, err)

	screen := NewWatchfaceScreen()
	lay := screen.Layout(144, 168)
	canvas := render.NewCanvas(144, 168, nil)
	st := baseState()
	st.WeatherIcon = bm
	screen.Draw(canvas, st)
	assert.True(t, hasInk(canvas.Image(), lay.WeatherIcon, white))

	st.WeatherIcon = nil
	st.Dirty = state.SurfaceWeatherIcon
	screen.Draw(canvas, st)
	assert.False(t, hasInk(canvas.Image(), lay.WeatherIcon, white))
}

func TestExpandDirty(t *testing.T) {
	rects := surfaceRects(NewWatchfaceScreen().Layout(144, 168))
	assert.Equal(t, state.SurfaceBattery|state.SurfaceBluetooth, ExpandDirty(state.SurfaceBattery, rects))
	assert.Equal(t, state.SurfaceBattery|state.SurfaceBluetooth, ExpandDirty(state.SurfaceBluetooth, rects))
	assert.Equal(t, state.SurfaceClock, ExpandDirty(state.SurfaceClock, rects))
	assert.Equal(t, state.SurfaceNone, ExpandDirty(state.SurfaceNone, rects))
}
