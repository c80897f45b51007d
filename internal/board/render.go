package board

import (
	"image"
	"image/color"
	"io"

	"LetsGetSketchy/internal/export"
)

// Redraw repaints the visible surface: clear, every committed mark in order,
// then the cursor preview if the pointer is over the surface.
func (b *Board) Redraw() {
	b.surface.Clear()
	for _, d := range b.history.Snapshot() {
		d.Render(b.surface)
	}
	if b.cursor.Inside() {
		b.cursor.Render(b.surface, b.tools)
	}
	b.redraws++
}

// Frame returns the visible image when the surface is image backed, or nil.
func (b *Board) Frame() image.Image {
	if f, ok := b.surface.(interface{ Image() *image.RGBA }); ok {
		return f.Image()
	}
	return nil
}

// ExportImage renders the committed marks at width x height, magnified by
// scale, on white, and returns the PNG bytes. The cursor preview is never
// exported.
func (b *Board) ExportImage(width, height int, scale float64) ([]byte, error) {
	return export.EncodePNG(b.history.Snapshot(), b.fonts, export.Options{
		Width:      width,
		Height:     height,
		Scale:      scale,
		Background: color.White,
	})
}

// ExportPNG writes the committed marks to w using the session's export
// settings.
func (b *Board) ExportPNG(w io.Writer) error {
	return export.WritePNG(w, b.history.Snapshot(), b.fonts, b.exportOpts)
}

// ExportOptions reports the session's export settings.
func (b *Board) ExportOptions() export.Options {
	return b.exportOpts
}
