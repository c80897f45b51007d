package state

import (
	"fmt"
	"image/color"
	"log"
	"strconv"
	"strings"
)

// BrushWidth is one of the fixed stroke widths offered by the brush buttons.
type BrushWidth float64

const (
	BrushThin  BrushWidth = 2
	BrushThick BrushWidth = 4
)

func (b BrushWidth) String() string {
	switch b {
	case BrushThin:
		return "thin"
	case BrushThick:
		return "thick"
	default:
		return strconv.FormatFloat(float64(b), 'g', -1, 64)
	}
}

// ParseBrush maps a brush button name to its width.
func ParseBrush(name string) (BrushWidth, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "thin":
		return BrushThin, nil
	case "thick":
		return BrushThick, nil
	}
	return 0, fmt.Errorf("unknown brush %q", name)
}

// Tool is the kind of mark the next pointer-down creates.
type Tool int

const (
	ToolBrush Tool = iota
	ToolSticker
)

func (t Tool) String() string {
	if t == ToolSticker {
		return "sticker"
	}
	return "brush"
}

// Toolbox is the live tool configuration of a sketch session. Marks copy
// what they need from it when created; cursor previews read it on every
// render.
type Toolbox struct {
	Tool     Tool
	Brush    BrushWidth
	Color    color.NRGBA
	Sticker  string  // empty until a sticker is chosen
	Rotation float64 // degrees
}

// NewToolbox returns the starting configuration: thin black brush, no
// sticker, no rotation.
func NewToolbox() *Toolbox {
	return &Toolbox{
		Tool:  ToolBrush,
		Brush: BrushThin,
		Color: color.NRGBA{A: 255},
	}
}

// SelectBrush activates the brush tool with width b.
func (t *Toolbox) SelectBrush(b BrushWidth) {
	t.Brush = b
	t.Tool = ToolBrush
}

// SelectColor sets the brush color. Alpha is forced to opaque.
func (t *Toolbox) SelectColor(c color.Color) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = 255
	t.Color = n
}

// SelectSticker activates the sticker tool with glyph.
func (t *Toolbox) SelectSticker(glyph string) {
	t.Sticker = glyph
	t.Tool = ToolSticker
}

func (t *Toolbox) SetRotation(degrees float64) {
	t.Rotation = degrees
}

// NewDrawable creates the mark for a pointer-down at origin, capturing the
// toolbox values it needs. A sticker request with no glyph chosen falls back
// to a stroke.
func NewDrawable(origin Point, t *Toolbox) Drawable {
	if t.Tool == ToolSticker {
		stamp, err := NewStamp(origin, t.Sticker, t.Rotation)
		if err == nil {
			return stamp
		}
		log.Printf("[TOOLS] %v, drawing a stroke instead", err)
	}
	return NewStroke(origin, float64(t.Brush), t.Color)
}

// ParseColor reads "#rgb" or "#rrggbb" into an opaque color.
func ParseColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

// FormatColor is the inverse of ParseColor.
func FormatColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
