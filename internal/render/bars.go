package render

import "image"

// BatteryBarRect returns the filled part of the battery bar: percent of the
// width of bounds, thickness pixels tall along its top edge.
func BatteryBarRect(bounds image.Rectangle, percent, thickness int) image.Rectangle {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	length := bounds.Dx() * percent / 100
	return image.Rect(bounds.Min.X, bounds.Min.Y, bounds.Min.X+length, bounds.Min.Y+thickness).Intersect(bounds)
}

// StepBarRect returns the filled part of the step bar: steps/goal of the
// width of bounds, anchored to its bottom edge. Progress past the goal is
// clamped to the full width.
func StepBarRect(bounds image.Rectangle, steps float64, goal, thickness int) image.Rectangle {
	if goal <= 0 || steps <= 0 {
		return image.Rectangle{}
	}
	fraction := steps / float64(goal)
	if fraction > 1 {
		fraction = 1
	}
	length := int(fraction * float64(bounds.Dx()))
	return image.Rect(bounds.Min.X, bounds.Max.Y-thickness, bounds.Min.X+length, bounds.Max.Y).Intersect(bounds)
}
