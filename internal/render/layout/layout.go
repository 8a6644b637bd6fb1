package layout

import "image"

// Normalize ensures Min is <= Max on both axes.
func Normalize(rect image.Rectangle) image.Rectangle {
	if rect.Min.X > rect.Max.X {
		rect.Min.X, rect.Max.X = rect.Max.X, rect.Min.X
	}
	if rect.Min.Y > rect.Max.Y {
		rect.Min.Y, rect.Max.Y = rect.Max.Y, rect.Min.Y
	}
	return rect
}

// SplitVertical splits rect into left and right parts.
// leftWidthPx is clamped to [0, rect.Dx()].
func SplitVertical(rect image.Rectangle, leftWidthPx int) (left image.Rectangle, right image.Rectangle) {
	rect = Normalize(rect)
	leftWidthPx = clamp(leftWidthPx, 0, rect.Dx())
	left = image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+leftWidthPx, rect.Max.Y)
	right = image.Rect(rect.Min.X+leftWidthPx, rect.Min.Y, rect.Max.X, rect.Max.Y)
	return left, right
}

// SplitHorizontal splits rect into top and bottom parts.
// topHeightPx is clamped to [0, rect.Dy()].
func SplitHorizontal(rect image.Rectangle, topHeightPx int) (top image.Rectangle, bottom image.Rectangle) {
	rect = Normalize(rect)
	topHeightPx = clamp(topHeightPx, 0, rect.Dy())
	top = image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+topHeightPx)
	bottom = image.Rect(rect.Min.X, rect.Min.Y+topHeightPx, rect.Max.X, rect.Max.Y)
	return top, bottom
}

// Band returns the full-width horizontal strip of rect starting at offsetPx with heightPx.
func Band(rect image.Rectangle, offsetPx, heightPx int) image.Rectangle {
	_, below := SplitHorizontal(rect, offsetPx)
	band, _ := SplitHorizontal(below, heightPx)
	return band
}

// AnchorTopLeft returns a rectangle of size (widthPx,heightPx) placed in the top-left of rect.
func AnchorTopLeft(rect image.Rectangle, widthPx, heightPx int) image.Rectangle {
	rect = Normalize(rect)
	widthPx = clamp(widthPx, 0, rect.Dx())
	heightPx = clamp(heightPx, 0, rect.Dy())
	return image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+widthPx, rect.Min.Y+heightPx)
}

// AnchorBottomLeft returns a rectangle of size (widthPx,heightPx) placed in the bottom-left of rect.
func AnchorBottomLeft(rect image.Rectangle, widthPx, heightPx int) image.Rectangle {
	rect = Normalize(rect)
	widthPx = clamp(widthPx, 0, rect.Dx())
	heightPx = clamp(heightPx, 0, rect.Dy())
	return image.Rect(rect.Min.X, rect.Max.Y-heightPx, rect.Min.X+widthPx, rect.Max.Y)
}

// Place returns a widthPx x heightPx rectangle at offset (x,y) inside rect, clipped to rect.
func Place(rect image.Rectangle, x, y, widthPx, heightPx int) image.Rectangle {
	rect = Normalize(rect)
	origin := rect.Min.Add(image.Pt(x, y))
	return image.Rectangle{Min: origin, Max: origin.Add(image.Pt(widthPx, heightPx))}.Intersect(rect)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
