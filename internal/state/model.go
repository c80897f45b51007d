package state

import (
	"errors"
	"fmt"

	"LetsGetSketchy/internal/paint"

	"github.com/google/uuid"
)

// Point is a 2D coordinate in surface pixels.
type Point struct{ X, Y float64 }

func (p Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}

// Kind discriminates the Drawable variants.
type Kind int

const (
	KindStroke Kind = iota
	KindStamp
)

func (k Kind) String() string {
	switch k {
	case KindStroke:
		return "stroke"
	case KindStamp:
		return "stamp"
	default:
		return "unknown"
	}
}

// Drawable is a mark on the sketch surface. Every attribute a Drawable
// renders with is captured when it is created; Render never consults the
// current tool configuration.
type Drawable interface {
	ID() string
	Kind() Kind
	// Extend applies a drag sample: a stroke grows, a stamp moves.
	Extend(p Point)
	Render(s paint.Surface)
}

// ErrNoSticker is returned when a stamp is requested while no sticker glyph
// is selected.
var ErrNoSticker = errors.New("no sticker selected")

func newID() string {
	return uuid.NewString()
}
