package paint

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var stickers = []string{"⭐", "💜", "💀"}

func testFonts(t *testing.T) *Fonts {
	t.Helper()
	f, err := NewFonts(DefaultFontSize)
	require.NoError(t, err)
	return f
}

func TestFallbackCoversStickers(t *testing.T) {
	f := testFonts(t)
	require.GreaterOrEqual(t, len(f.Names()), 2, "an emoji typeface follows the primary one")
	assert.Equal(t, "goregular", f.Names()[0])

	for _, s := range stickers {
		assert.True(t, f.Covers([]rune(s)[0]), s)
	}
	assert.True(t, f.Covers('A'))
	assert.False(t, f.Covers('\U0010FFFD'))
}

func TestPrimaryWinsWhenItHasTheGlyph(t *testing.T) {
	f := testFonts(t)
	i, ok := f.lookup('A')
	require.True(t, ok)
	assert.Zero(t, i)

	i, ok = f.lookup('💀')
	require.True(t, ok)
	assert.NotZero(t, i)
}

func TestLayoutSplitsRunsByTypeface(t *testing.T) {
	f := testFonts(t)
	runs, bounds, adv, err := f.layout("A⭐B", 1)
	require.NoError(t, err)
	require.Len(t, runs, 3)

	assert.Equal(t, "A", runs[0].text)
	assert.Equal(t, "⭐", runs[1].text)
	assert.Equal(t, "B", runs[2].text)
	assert.Zero(t, runs[0].dot)
	assert.Greater(t, runs[1].dot, runs[0].dot)
	assert.Greater(t, runs[2].dot, runs[1].dot)
	assert.Greater(t, adv, runs[2].dot)
	assert.False(t, bounds.Empty())

	single, _, _, err := f.layout("AB", 1)
	require.NoError(t, err)
	assert.Len(t, single, 1)
}

func TestMissingFallbackIsSkipped(t *testing.T) {
	f, err := LoadFonts("", DefaultFontSize, filepath.Join(t.TempDir(), "NotoEmoji-Regular.ttf"))
	require.NoError(t, err)
	assert.Equal(t, testFonts(t).Names(), f.Names())
}

func TestMissingPrimaryFails(t *testing.T) {
	_, err := LoadFonts(filepath.Join(t.TempDir(), "nope.ttf"), DefaultFontSize)
	assert.Error(t, err)
}

func renderGlyph(t *testing.T, f *Fonts, s string) *image.RGBA {
	t.Helper()
	r := NewRaster(40, 40, f)
	r.SetFillColor(color.Black)
	m := r.MeasureText(s)
	r.FillText(s, 20-(m.Left+m.Right)/2, 20+(m.Ascent-m.Descent)/2)
	return r.Image()
}

func inkPixels(img *image.RGBA) int {
	var n int
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] > 0 {
			n++
		}
	}
	return n
}

func TestStickersRasterizeDistinctly(t *testing.T) {
	f := testFonts(t)
	images := make([]*image.RGBA, len(stickers))
	for i, s := range stickers {
		images[i] = renderGlyph(t, f, s)
		assert.Greater(t, inkPixels(images[i]), 0, s)
	}
	for i := range images {
		for j := i + 1; j < len(images); j++ {
			assert.NotEqual(t, images[i].Pix, images[j].Pix, "%s and %s draw the same pixels", stickers[i], stickers[j])
		}
	}

	tofu := renderGlyph(t, f, "\U0010FFFD")
	assert.NotEqual(t, tofu.Pix, images[0].Pix, "the star is not the missing-glyph box")
}

func TestMeasureStickerHasExtent(t *testing.T) {
	r := NewRaster(10, 10, testFonts(t))
	m := r.MeasureText("💜")
	assert.Greater(t, m.Width, 0.0)
	assert.Greater(t, m.Right-m.Left, 0.0)
}
