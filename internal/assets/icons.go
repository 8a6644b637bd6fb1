package assets

import (
	"image"
	"math"
	"sort"

	"golang.org/x/image/vector"
)

// WeatherIconSize is the edge length of the square weather icons.
const WeatherIconSize = 24

// Icon mask names.
const (
	IconClearSkyDay           = "clear_sky_day"
	IconClearSkyNight         = "clear_sky_night"
	IconRain                  = "rain"
	IconMistDay               = "mist_day"
	IconMistNight             = "mist_night"
	IconSnow                  = "snow"
	IconSleet                 = "sleet"
	IconWind                  = "wind"
	IconFog                   = "fog"
	IconCloudy                = "cloudy"
	IconPartlyCloudyDay       = "partly_cloudy_day"
	IconPartlyCloudyNight     = "partly_cloudy_night"
	IconBluetoothDisconnected = "bluetooth_disconnected"
)

var painters = map[string]func(m *image.Alpha){
	IconClearSkyDay:       func(m *image.Alpha) { paintSun(m, 12, 12, 5, 7.5, 10.5) },
	IconClearSkyNight:     func(m *image.Alpha) { paintMoon(m, 12, 12, 8) },
	IconRain:              paintRain,
	IconMistDay:           func(m *image.Alpha) { paintSun(m, 12, 8, 3.5, 5, 7); paintHaze(m, 15) },
	IconMistNight:         func(m *image.Alpha) { paintMoon(m, 12, 8, 6); paintHaze(m, 15) },
	IconSnow:              paintSnow,
	IconSleet:             paintSleet,
	IconWind:              paintWind,
	IconFog:               func(m *image.Alpha) { paintHaze(m, 5) },
	IconCloudy:            paintCloudy,
	IconPartlyCloudyDay:   func(m *image.Alpha) { paintSun(m, 8, 8, 3.5, 5, 7); paintCloudOver(m, 2, 2) },
	IconPartlyCloudyNight: func(m *image.Alpha) { paintMoon(m, 8, 8, 6); paintCloudOver(m, 2, 2) },
}

// bluetooth rune with a gap, 9x10
var bluetoothDisconnected = []string{
	"....#....",
	"....##...",
	".#..#.#..",
	"..#.#..#.",
	"...##.#..",
	"...##....",
	"..#.#.#..",
	".#..#..#.",
	"....#.#..",
	"....##...",
}

// IconMask returns the 1-bit coverage mask for the named icon.
// Opaque pixels are drawn in the icon's variant color.
func IconMask(name string) (*image.Alpha, bool) {
	if name == IconBluetoothDisconnected {
		return maskFromRows(bluetoothDisconnected), true
	}
	paint, ok := painters[name]
	if !ok {
		return nil, false
	}
	m := image.NewAlpha(image.Rect(0, 0, WeatherIconSize, WeatherIconSize))
	paint(m)
	threshold(m)
	return m, true
}

// IconNames lists every icon mask this package can produce.
func IconNames() []string {
	names := make([]string, 0, len(painters)+1)
	for name := range painters {
		names = append(names, name)
	}
	names = append(names, IconBluetoothDisconnected)
	sort.Strings(names)
	return names
}

func maskFromRows(rows []string) *image.Alpha {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	m := image.NewAlpha(image.Rect(0, 0, width, len(rows)))
	for y, row := range rows {
		for x, ch := range row {
			if ch == '#' {
				m.Pix[y*m.Stride+x] = 0xFF
			}
		}
	}
	return m
}

// threshold snaps anti-aliased coverage to on/off for 1-bit panels.
func threshold(m *image.Alpha) {
	for i, a := range m.Pix {
		if a >= 0x80 {
			m.Pix[i] = 0xFF
		} else {
			m.Pix[i] = 0
		}
	}
}

type shape func(z *vector.Rasterizer)

// fill paints the union of shapes. Each shape is rasterized on its own so
// overlapping paths with opposite winding do not cancel out.
func fill(m *image.Alpha, shapes ...shape) {
	b := m.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	for _, s := range shapes {
		z.Reset(b.Dx(), b.Dy())
		s(z)
		z.Draw(m, b, image.Opaque, image.Point{})
	}
}

func cut(m *image.Alpha, shapes ...shape) {
	b := m.Bounds()
	hole := image.NewAlpha(b)
	fill(hole, shapes...)
	for i, a := range hole.Pix {
		m.Pix[i] = uint8(uint16(m.Pix[i]) * uint16(0xFF-a) / 0xFF)
	}
}

func circle(cx, cy, r float32) shape {
	// cubic approximation of a quarter arc
	k := r * 0.5523
	return func(z *vector.Rasterizer) {
		z.MoveTo(cx+r, cy)
		z.CubeTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
		z.CubeTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
		z.CubeTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
		z.CubeTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
		z.ClosePath()
	}
}

func rect(x0, y0, x1, y1 float32) shape {
	return func(z *vector.Rasterizer) {
		z.MoveTo(x0, y0)
		z.LineTo(x1, y0)
		z.LineTo(x1, y1)
		z.LineTo(x0, y1)
		z.ClosePath()
	}
}

// line is a stroke of width w with square ends.
func line(x0, y0, x1, y1, w float32) shape {
	dx, dy := x1-x0, y1-y0
	length := float32(math.Hypot(float64(dx), float64(dy)))
	if length == 0 {
		return func(*vector.Rasterizer) {}
	}
	nx, ny := -dy/length*w/2, dx/length*w/2
	return func(z *vector.Rasterizer) {
		z.MoveTo(x0+nx, y0+ny)
		z.LineTo(x1+nx, y1+ny)
		z.LineTo(x1-nx, y1-ny)
		z.LineTo(x0-nx, y0-ny)
		z.ClosePath()
	}
}

func paintSun(m *image.Alpha, cx, cy, r, rayIn, rayOut float32) {
	shapes := []shape{circle(cx, cy, r)}
	for i := 0; i < 8; i++ {
		a := float64(i) * math.Pi / 4
		sin, cos := float32(math.Sin(a)), float32(math.Cos(a))
		shapes = append(shapes, line(cx+cos*rayIn, cy+sin*rayIn, cx+cos*rayOut, cy+sin*rayOut, 2))
	}
	fill(m, shapes...)
}

func paintMoon(m *image.Alpha, cx, cy, r float32) {
	fill(m, circle(cx, cy, r))
	cut(m, circle(cx+r*0.5, cy-r*0.4, r*0.85))
}

func cloud(dx, dy float32) []shape {
	return []shape{
		circle(7+dx, 15+dy, 4.5),
		circle(12.5+dx, 11.5+dy, 6),
		circle(18+dx, 15+dy, 4.5),
		rect(7+dx, 15+dy, 18+dx, 19.5+dy),
	}
}

func cloudHalo(dx, dy float32) []shape {
	return []shape{
		circle(7+dx, 15+dy, 6),
		circle(12.5+dx, 11.5+dy, 7.5),
		circle(18+dx, 15+dy, 6),
		rect(7+dx, 15+dy, 18+dx, 21+dy),
	}
}

// paintCloudOver draws a cloud separated from what is already painted by a gap.
func paintCloudOver(m *image.Alpha, dx, dy float32) {
	cut(m, cloudHalo(dx, dy)...)
	fill(m, cloud(dx, dy)...)
}

func paintCloudy(m *image.Alpha) {
	fill(m, cloud(3, -5)...)
	paintCloudOver(m, -1, 1)
}

func paintRain(m *image.Alpha) {
	fill(m, cloud(0, -5)...)
	fill(m,
		line(8, 18, 6, 23, 1.6),
		line(13, 18, 11, 23, 1.6),
		line(18, 18, 16, 23, 1.6),
	)
}

func paintSnow(m *image.Alpha) {
	fill(m, cloud(0, -5)...)
	fill(m,
		circle(7, 18.5, 1.3), circle(12.5, 18.5, 1.3), circle(18, 18.5, 1.3),
		circle(9.5, 22, 1.3), circle(15, 22, 1.3),
	)
}

func paintSleet(m *image.Alpha) {
	fill(m, cloud(0, -5)...)
	fill(m,
		line(8, 18, 6.5, 22.5, 1.6),
		circle(12.5, 20.5, 1.4),
		line(18, 18, 16.5, 22.5, 1.6),
	)
}

func paintWind(m *image.Alpha) {
	fill(m,
		line(2, 7, 15, 7, 2), circle(17, 6, 2.5),
		line(2, 12, 20, 12, 2),
		line(2, 17, 12, 17, 2), circle(14, 18, 2.5),
	)
	cut(m, circle(17, 6, 1), circle(14, 18, 1))
}

func paintHaze(m *image.Alpha, top float32) {
	for i := float32(0); top+i*3.5 < WeatherIconSize-1; i++ {
		y := top + i*3.5
		if int(i)%2 == 0 {
			fill(m, line(2, y, 19, y, 1.8))
		} else {
			fill(m, line(5, y, 22, y, 1.8))
		}
	}
}
