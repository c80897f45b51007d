package state

import (
	"fmt"
	"image/color"

	"LetsGetSketchy/internal/paint"
)

// recorder is a paint.Surface that logs every call.
type recorder struct {
	calls []string
	depth int
}

var _ paint.Surface = (*recorder)(nil)

func (r *recorder) add(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func colorString(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A)
}

func (r *recorder) Size() (int, int)                { return 100, 100 }
func (r *recorder) Clear()                          { r.add("clear") }
func (r *recorder) FillBackground(c color.Color)    { r.add("background %s", colorString(c)) }
func (r *recorder) SetLineWidth(w float64)          { r.add("width %g", w) }
func (r *recorder) SetStrokeColor(c color.Color)    { r.add("stroke-color %s", colorString(c)) }
func (r *recorder) SetFillColor(c color.Color)      { r.add("fill-color %s", colorString(c)) }
func (r *recorder) BeginPath()                      { r.add("begin") }
func (r *recorder) MoveTo(x, y float64)             { r.add("move %g,%g", x, y) }
func (r *recorder) LineTo(x, y float64)             { r.add("line %g,%g", x, y) }
func (r *recorder) Circle(cx, cy, rad float64)      { r.add("circle %g,%g r%g", cx, cy, rad) }
func (r *recorder) Stroke()                         { r.add("stroke") }
func (r *recorder) Fill()                           { r.add("fill") }
func (r *recorder) Translate(x, y float64)          { r.add("translate %g,%g", x, y) }
func (r *recorder) Rotate(rad float64)              { r.add("rotate %.4f", rad) }
func (r *recorder) Scale(sx, sy float64)            { r.add("scale %g,%g", sx, sy) }
func (r *recorder) FillText(s string, x, y float64) { r.add("text %s %g,%g", s, x, y) }

func (r *recorder) Save() {
	r.depth++
	r.add("save")
}

func (r *recorder) Restore() {
	r.depth--
	r.add("restore")
}

// MeasureText pretends every glyph is 10 wide, 8 above and 2 below the
// baseline.
func (r *recorder) MeasureText(s string) paint.TextMetrics {
	w := 10 * float64(len([]rune(s)))
	return paint.TextMetrics{Width: w, Left: 0, Right: w, Ascent: 8, Descent: 2}
}
