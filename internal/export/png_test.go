package export

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"LetsGetSketchy/internal/paint"
	"LetsGetSketchy/internal/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFonts(t *testing.T) *paint.Fonts {
	t.Helper()
	f, err := paint.NewFonts(paint.DefaultFontSize)
	require.NoError(t, err)
	return f
}

func TestRenderScalesMarks(t *testing.T) {
	s := state.NewStroke(state.Point{X: 2, Y: 10}, 2, color.NRGBA{R: 255, A: 255})
	s.Extend(state.Point{X: 30, Y: 10})

	img, err := Render([]state.Drawable{s}, testFonts(t), Options{Width: 128, Height: 128, Scale: 4})
	require.NoError(t, err)

	assert.Equal(t, color.RGBA{255, 0, 0, 255}, img.RGBAAt(60, 40), "line lands at 4x its surface position")
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, img.RGBAAt(60, 20), "background is opaque white")
}

func TestRenderEmpty(t *testing.T) {
	img, err := Render(nil, testFonts(t), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 1024, img.Bounds().Dx())
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, img.RGBAAt(512, 512))
}

func TestRenderRejectsBadOptions(t *testing.T) {
	_, err := Render(nil, testFonts(t), Options{Width: 0, Height: 10, Scale: 1})
	assert.Error(t, err)
	_, err = Render(nil, testFonts(t), Options{Width: 10, Height: 10})
	assert.Error(t, err)
}

func TestEncodePNG(t *testing.T) {
	st, err := state.NewStamp(state.Point{X: 16, Y: 16}, "⭐", 30)
	require.NoError(t, err)

	data, err := EncodePNG([]state.Drawable{st}, testFonts(t), Options{Width: 64, Height: 64, Scale: 2})
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())

	var ink int
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			if r < 0x8000 && g < 0x8000 && b < 0x8000 {
				ink++
			}
		}
	}
	assert.Greater(t, ink, 0, "the stamp glyph is drawn")
}
