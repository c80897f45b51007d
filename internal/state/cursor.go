package state

import "LetsGetSketchy/internal/paint"

// CursorKind discriminates the cursor preview variants.
type CursorKind int

const (
	CursorBrush CursorKind = iota
	CursorStamp
)

func (k CursorKind) String() string {
	if k == CursorStamp {
		return "stamp-preview"
	}
	return "brush-preview"
}

// CursorFor returns the preview that matches tool t.
func CursorFor(t Tool) CursorKind {
	if t == ToolSticker {
		return CursorStamp
	}
	return CursorBrush
}

// Cursor previews the active tool at the last pointer position. It is never
// part of the history, and unlike a Drawable it reads the Toolbox each time
// it renders.
type Cursor interface {
	Kind() CursorKind
	Position() Point
	// Inside reports whether the pointer is over the surface.
	Inside() bool
	// Moved records a pointer position and publishes EventToolMoved.
	Moved(p Point)
	// Left parks the cursor off the surface and publishes EventToolMoved.
	Left()
	Render(s paint.Surface, t *Toolbox)

	base() *cursorBase
}

// OffSurface is where a cursor waits while the pointer is outside a
// width x height surface.
func OffSurface(width, height int) Point {
	return Point{X: 2 * float64(width), Y: 2 * float64(height)}
}

type cursorBase struct {
	pos      Point
	inside   bool
	sentinel Point
	bus      *Bus
}

func (c *cursorBase) Position() Point   { return c.pos }
func (c *cursorBase) Inside() bool      { return c.inside }
func (c *cursorBase) base() *cursorBase { return c }

func (c *cursorBase) Moved(p Point) {
	c.pos = p
	c.inside = true
	c.bus.Publish(EventToolMoved)
}

func (c *cursorBase) Left() {
	c.pos = c.sentinel
	c.inside = false
	c.bus.Publish(EventToolMoved)
}

// BrushCursor shows a dot of the current brush size and color.
type BrushCursor struct{ cursorBase }

func (*BrushCursor) Kind() CursorKind { return CursorBrush }

func (c *BrushCursor) Render(s paint.Surface, t *Toolbox) {
	s.SetFillColor(t.Color)
	s.BeginPath()
	s.Circle(c.pos.X, c.pos.Y, float64(t.Brush))
	s.Fill()
}

// StampCursor shows the current sticker at the current rotation.
type StampCursor struct{ cursorBase }

func (*StampCursor) Kind() CursorKind { return CursorStamp }

func (c *StampCursor) Render(s paint.Surface, t *Toolbox) {
	drawGlyph(s, t.Sticker, c.pos, degToRad(t.Rotation), StampColor)
}

// NewCursor creates a cursor of the given kind parked at sentinel.
func NewCursor(kind CursorKind, sentinel Point, bus *Bus) Cursor {
	return build(kind, cursorBase{pos: sentinel, sentinel: sentinel, bus: bus})
}

// SwitchCursor replaces prev with a cursor of the given kind at the same
// position, so the preview does not jump when the tool changes.
func SwitchCursor(kind CursorKind, prev Cursor) Cursor {
	return build(kind, *prev.base())
}

func build(kind CursorKind, b cursorBase) Cursor {
	if kind == CursorStamp {
		return &StampCursor{b}
	}
	return &BrushCursor{b}
}
