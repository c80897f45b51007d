// Package export renders committed marks onto an offscreen, higher
// resolution image and encodes it as PNG.
package export

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"log"

	"LetsGetSketchy/internal/paint"
	"LetsGetSketchy/internal/state"
)

// Options sizes the exported image. Marks are drawn in visible-surface
// coordinates and magnified by Scale.
type Options struct {
	Width      int
	Height     int
	Scale      float64
	Background color.Color
}

// DefaultOptions is a 1024x1024 image at 4x scale on white.
func DefaultOptions() Options {
	return Options{
		Width:      1024,
		Height:     1024,
		Scale:      4,
		Background: color.White,
	}
}

func (o Options) validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("export size %dx%d must be positive", o.Width, o.Height)
	}
	if o.Scale <= 0 {
		return fmt.Errorf("export scale %g must be positive", o.Scale)
	}
	return nil
}

// Render draws marks, in order, onto a fresh surface. Nothing but the marks
// and the background is drawn.
func Render(marks []state.Drawable, fonts *paint.Fonts, opts Options) (*image.RGBA, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	bg := opts.Background
	if bg == nil {
		bg = color.White
	}
	surface := paint.NewRaster(opts.Width, opts.Height, fonts)
	surface.FillBackground(bg)
	surface.Scale(opts.Scale, opts.Scale)
	for _, d := range marks {
		d.Render(surface)
	}
	return surface.Image(), nil
}

// WritePNG renders marks and writes them to w as PNG.
func WritePNG(w io.Writer, marks []state.Drawable, fonts *paint.Fonts, opts Options) error {
	img, err := Render(marks, fonts, opts)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	log.Printf("[EXPORT] wrote %d marks at %dx%d (scale %g)", len(marks), opts.Width, opts.Height, opts.Scale)
	return nil
}

// EncodePNG is WritePNG into memory.
func EncodePNG(marks []state.Drawable, fonts *paint.Fonts, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, marks, fonts, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
