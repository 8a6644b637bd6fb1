package render

// Logical canvas size of the watch display; outputs scale it to the panel.
var (
	CanvasWidth  = 144
	CanvasHeight = 168
)

// Font sizes in points at 72 DPI, so one point is one canvas pixel.
const (
	ClockFontSize = 42
	WordFontSize  = 14
)
