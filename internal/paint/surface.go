// Package paint provides the drawing surface that marks and cursor previews
// render onto. The interface mirrors a small immediate-mode 2D context: a
// current transform, path building, stroking, filling and glyph drawing.
package paint

import "image/color"

// TextMetrics describes the ink bounds of a string relative to its baseline
// origin, in user-space units. Ascent is measured upwards and Descent
// downwards, so a glyph sitting on the baseline has Descent 0.
type TextMetrics struct {
	Width   float64 // advance width
	Left    float64 // leftmost ink, relative to the origin
	Right   float64 // rightmost ink, relative to the origin
	Ascent  float64
	Descent float64
}

// Height is the ink height of the measured string.
func (m TextMetrics) Height() float64 {
	return m.Ascent + m.Descent
}

// Surface is an addressable 2D raster target.
//
// Coordinates passed to path and text methods are in user space and are
// mapped through the current transform. Save and Restore bracket changes to
// the transform, line width and colors.
type Surface interface {
	// Size reports the surface dimensions in device pixels.
	Size() (width, height int)

	// Clear resets every pixel to fully transparent.
	Clear()
	// FillBackground paints every pixel with c, ignoring the transform.
	FillBackground(c color.Color)

	SetLineWidth(w float64)
	SetStrokeColor(c color.Color)
	SetFillColor(c color.Color)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	// Circle adds a closed full circle to the current path.
	Circle(cx, cy, r float64)
	Stroke()
	Fill()

	Save()
	Restore()
	Translate(x, y float64)
	Rotate(radians float64)
	Scale(sx, sy float64)

	MeasureText(text string) TextMetrics
	// FillText draws text with its baseline origin at (x, y).
	FillText(text string, x, y float64)
}
