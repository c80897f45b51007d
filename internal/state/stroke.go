package state

import (
	"image/color"

	"LetsGetSketchy/internal/paint"
)

// Stroke is a freehand polyline. Every pointer sample is kept, in order.
type Stroke struct {
	id     string
	points []Point
	width  float64
	color  color.NRGBA
}

var _ Drawable = (*Stroke)(nil)

// NewStroke starts a stroke at origin with the given width and color.
func NewStroke(origin Point, width float64, c color.NRGBA) *Stroke {
	return &Stroke{
		id:     newID(),
		points: []Point{origin},
		width:  width,
		color:  c,
	}
}

func (s *Stroke) ID() string     { return s.id }
func (s *Stroke) Kind() Kind     { return KindStroke }
func (s *Stroke) Width() float64 { return s.width }

func (s *Stroke) Color() color.NRGBA { return s.color }

// Points returns a copy of the polyline.
func (s *Stroke) Points() []Point {
	pts := make([]Point, len(s.points))
	copy(pts, s.points)
	return pts
}

func (s *Stroke) Extend(p Point) {
	s.points = append(s.points, p)
}

// Render strokes the polyline once. A stroke that was never dragged has a
// single point and draws nothing.
func (s *Stroke) Render(sf paint.Surface) {
	if len(s.points) < 2 {
		return
	}
	sf.SetLineWidth(s.width)
	sf.SetStrokeColor(s.color)
	sf.BeginPath()
	sf.MoveTo(s.points[0].X, s.points[0].Y)
	for _, p := range s.points[1:] {
		sf.LineTo(p.X, p.Y)
	}
	sf.Stroke()
}
