package layout

import "image"

// Watch holds the rectangle of every watchface surface.
type Watch struct {
	Battery     image.Rectangle
	Steps       image.Rectangle
	Bluetooth   image.Rectangle
	WeatherIcon image.Rectangle
	Temperature image.Rectangle
	Clock       image.Rectangle
	Date        image.Rectangle
	Day         image.Rectangle
}

// Diorite lays the watchface out on a 144x168 style canvas.
// Bars are lineWidthPx thick along the top and bottom edges.
func Diorite(bounds image.Rectangle, lineWidthPx int) Watch {
	bounds = Normalize(bounds)
	width := bounds.Dx()

	_, right := SplitVertical(bounds, width/2)
	temperature := Band(right, 26, 16)
	temperature.Max.X -= 14
	if temperature.Max.X < temperature.Min.X {
		temperature.Max.X = temperature.Min.X
	}

	return Watch{
		Battery:     AnchorTopLeft(bounds, width, lineWidthPx),
		Steps:       AnchorBottomLeft(bounds, width, lineWidthPx),
		Bluetooth:   Place(bounds, 118, 1, 9, 10),
		WeatherIcon: Place(bounds, 36, 24, 24, 24),
		Temperature: temperature,
		Clock:       Band(bounds, 50, 62),
		Date:        Band(bounds, 114, 16),
		Day:         Band(bounds, 130, 16),
	}
}
