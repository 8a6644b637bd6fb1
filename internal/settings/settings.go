package settings

import "image/color"

// Color is one of the two colors a 1-bit watch display can show.
type Color byte

const (
	ColorBlack Color = 0x00
	ColorWhite Color = 0xFF
)

// RGBA returns the canvas color for c.
func (c Color) RGBA() color.RGBA {
	if c == ColorWhite {
		return color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	}
	return color.RGBA{A: 0xFF}
}

func (c Color) String() string {
	switch c {
	case ColorBlack:
		return "black"
	case ColorWhite:
		return "white"
	default:
		return "invalid"
	}
}

func (c Color) valid() bool { return c == ColorBlack || c == ColorWhite }

// Settings is the persisted watchface configuration.
// Background and Foreground are always derived from InvertColors.
type Settings struct {
	Background   Color
	Foreground   Color
	InvertColors bool
}

// Defaults returns white background, black foreground, not inverted.
func Defaults() Settings {
	return ApplyInvert(false)
}

// ApplyInvert returns the settings for the given invert directive.
func ApplyInvert(invert bool) Settings {
	if invert {
		return Settings{Background: ColorBlack, Foreground: ColorWhite, InvertColors: true}
	}
	return Settings{Background: ColorWhite, Foreground: ColorBlack, InvertColors: false}
}

// Valid reports whether s holds a complementary color pair matching its invert flag.
func (s Settings) Valid() bool {
	if !s.Background.valid() || !s.Foreground.valid() {
		return false
	}
	return s == ApplyInvert(s.InvertColors)
}
