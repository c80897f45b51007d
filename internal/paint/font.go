package paint

import (
	"fmt"
	"log"
	"math"
	"os"

	"fyne.io/fyne/v2/theme"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// DefaultFontSize matches the 13px sans-serif the sketch canvas uses for
// stickers.
const DefaultFontSize = 13

// typeface is one entry of the fallback chain.
type typeface struct {
	name string
	font *opentype.Font
}

type faceKey struct {
	index int
	px    float64
}

// Fonts hands out faces of a primary typeface and its fallbacks at arbitrary
// pixel sizes. Each rune is drawn with the first typeface in the chain that
// has a glyph for it. Faces are cached by size, so rendering at a fixed
// export scale reuses one face per typeface.
type Fonts struct {
	chain   []typeface
	size    float64
	faces   map[faceKey]font.Face
	buf     sfnt.Buffer
	missing map[rune]bool
}

// NewFonts returns Go Regular at the given base size, falling back to the
// emoji typeface bundled with the toolkit.
func NewFonts(size float64) (*Fonts, error) {
	return LoadFonts("", size)
}

// LoadFonts reads a TrueType or OpenType file as the primary typeface. An
// empty path selects the built-in Go Regular typeface. Fallback files are
// tried in order before the bundled emoji typeface; a fallback that cannot
// be read is logged and skipped.
func LoadFonts(path string, size float64, fallbacks ...string) (*Fonts, error) {
	if size <= 0 {
		size = DefaultFontSize
	}
	f := &Fonts{
		size:    size,
		faces:   make(map[faceKey]font.Face),
		missing: make(map[rune]bool),
	}

	name, data := "goregular", goregular.TTF
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("could not read font %s: %w", path, err)
		}
		name = path
	}
	if err := f.add(name, data); err != nil {
		return nil, err
	}

	for _, fb := range fallbacks {
		data, err := os.ReadFile(fb)
		if err == nil {
			err = f.add(fb, data)
		}
		if err != nil {
			log.Printf("[PAINT] skipping fallback font: %v", err)
		}
	}
	if res := theme.DefaultEmojiFont(); res != nil {
		if err := f.add(res.Name(), res.Content()); err != nil {
			log.Printf("[PAINT] skipping bundled emoji font: %v", err)
		}
	}
	return f, nil
}

func (f *Fonts) add(name string, data []byte) error {
	parsed, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("failed to parse font %s: %w", name, err)
	}
	f.chain = append(f.chain, typeface{name: name, font: parsed})
	return nil
}

// Size is the base size in user-space pixels.
func (f *Fonts) Size() float64 {
	return f.size
}

// Names lists the typefaces of the chain, primary first.
func (f *Fonts) Names() []string {
	names := make([]string, len(f.chain))
	for i, tf := range f.chain {
		names[i] = tf.name
	}
	return names
}

// Covers reports whether some typeface in the chain has a glyph for r.
func (f *Fonts) Covers(r rune) bool {
	_, ok := f.lookup(r)
	return ok
}

// lookup finds the first typeface with a glyph for r. Runes nobody covers
// use the primary typeface's missing-glyph box.
func (f *Fonts) lookup(r rune) (int, bool) {
	for i, tf := range f.chain {
		if gi, err := tf.font.GlyphIndex(&f.buf, r); err == nil && gi != 0 {
			return i, true
		}
	}
	return 0, false
}

// Face returns the primary face for the base size multiplied by scale.
func (f *Fonts) Face(scale float64) (font.Face, error) {
	return f.face(0, scale)
}

func (f *Fonts) face(index int, scale float64) (font.Face, error) {
	// Round so that tiny floating point differences in the transform do
	// not each allocate a new face.
	px := math.Round(f.size*scale*64) / 64
	key := faceKey{index: index, px: px}
	if face, ok := f.faces[key]; ok {
		return face, nil
	}
	face, err := opentype.NewFace(f.chain[index].font, &opentype.FaceOptions{
		Size:    px,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %.2fpx face for %s: %w", px, f.chain[index].name, err)
	}
	f.faces[key] = face
	return face, nil
}

// textRun is a stretch of text drawn with one face, starting dot pixels
// right of the text origin.
type textRun struct {
	face font.Face
	text string
	dot  fixed.Int26_6
}

// layout splits text into runs by typeface at the given scale and returns
// the ink bounds and advance of the whole line relative to its origin.
func (f *Fonts) layout(text string, scale float64) ([]textRun, fixed.Rectangle26_6, fixed.Int26_6, error) {
	var (
		runs   []textRun
		bounds fixed.Rectangle26_6
		dot    fixed.Int26_6
	)
	flush := func(index int, s string) error {
		if s == "" {
			return nil
		}
		face, err := f.face(index, scale)
		if err != nil {
			return err
		}
		b, adv := font.BoundString(face, s)
		b = b.Add(fixed.Point26_6{X: dot})
		if len(runs) == 0 {
			bounds = b
		} else {
			bounds = bounds.Union(b)
		}
		runs = append(runs, textRun{face: face, text: s, dot: dot})
		dot += adv
		return nil
	}

	cur, start := -1, 0
	for i, r := range text {
		index, ok := f.lookup(r)
		if !ok && !f.missing[r] {
			f.missing[r] = true
			log.Printf("[PAINT] no typeface has a glyph for %q (U+%04X)", r, r)
		}
		if index != cur {
			if cur >= 0 {
				if err := flush(cur, text[start:i]); err != nil {
					return nil, bounds, 0, err
				}
			}
			cur, start = index, i
		}
	}
	if cur >= 0 {
		if err := flush(cur, text[start:]); err != nil {
			return nil, bounds, 0, err
		}
	}
	return runs, bounds, dot, nil
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
