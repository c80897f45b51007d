package state

import (
	"image/color"
	"math"

	"LetsGetSketchy/internal/paint"
)

// StampColor is the ink used for sticker glyphs.
var StampColor = color.NRGBA{A: 255}

// Stamp is a sticker glyph placed at a position with a fixed rotation.
type Stamp struct {
	id       string
	pos      Point
	glyph    string
	rotation float64 // radians
}

var _ Drawable = (*Stamp)(nil)

// NewStamp places glyph at origin rotated by rotationDeg degrees.
func NewStamp(origin Point, glyph string, rotationDeg float64) (*Stamp, error) {
	if glyph == "" {
		return nil, ErrNoSticker
	}
	return &Stamp{
		id:       newID(),
		pos:      origin,
		glyph:    glyph,
		rotation: degToRad(rotationDeg),
	}, nil
}

func (s *Stamp) ID() string        { return s.id }
func (s *Stamp) Kind() Kind        { return KindStamp }
func (s *Stamp) Position() Point   { return s.pos }
func (s *Stamp) Glyph() string     { return s.glyph }
func (s *Stamp) Rotation() float64 { return s.rotation }

// Extend drags the stamp to p.
func (s *Stamp) Extend(p Point) {
	s.pos = p
}

func (s *Stamp) Render(sf paint.Surface) {
	drawGlyph(sf, s.glyph, s.pos, s.rotation, StampColor)
}

// drawGlyph draws glyph rotated about at and centered on it. The surface
// state is restored afterwards.
func drawGlyph(sf paint.Surface, glyph string, at Point, rotation float64, c color.Color) {
	if glyph == "" {
		return
	}
	sf.Save()
	defer sf.Restore()
	sf.Translate(at.X, at.Y)
	sf.Rotate(rotation)
	m := sf.MeasureText(glyph)
	sf.SetFillColor(c)
	sf.FillText(glyph, -(m.Left+m.Right)/2, (m.Ascent-m.Descent)/2)
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}
