package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 256, cfg.Canvas.Width)
	assert.Equal(t, 1024, cfg.Export.Width)
	assert.Equal(t, 4.0, cfg.Export.Scale)
	assert.Equal(t, []string{"⭐", "💜", "💀"}, cfg.Stickers.Glyphs)
	require.NoError(t, cfg.Validate())
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	cfg, err := Parse(`
[canvas]
width = 400

[stickers]
glyphs = ["A", "B"]
`)
	require.NoError(t, err)
	assert.Equal(t, 400, cfg.Canvas.Width)
	assert.Equal(t, DefaultCanvasSize, cfg.Canvas.Height)
	assert.Equal(t, []string{"A", "B"}, cfg.Stickers.Glyphs)
	assert.Equal(t, DefaultExportFile, cfg.Export.File)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sketchpad.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[export]
scale = 2
[remote]
addr = "127.0.0.1:9000"
advertise = false
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2.0, cfg.Export.Scale)
	assert.Equal(t, "127.0.0.1:9000", cfg.Remote.Addr)
	assert.False(t, cfg.Remote.Advertise)
}

func TestFontFallbacks(t *testing.T) {
	cfg, err := Parse(`
[font]
fallbacks = ["/usr/share/fonts/truetype/noto/NotoEmoji-Regular.ttf", "Symbola.ttf"]
`)
	require.NoError(t, err)
	assert.Equal(t, []string{"/usr/share/fonts/truetype/noto/NotoEmoji-Regular.ttf", "Symbola.ttf"}, cfg.Font.Fallbacks)
	assert.Equal(t, float64(DefaultFontSize), cfg.Font.Size)
	assert.Empty(t, Default().Font.Fallbacks)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestValidateRejectsBadSizes(t *testing.T) {
	_, err := Parse(`
[canvas]
width = 0
[export]
scale = -1
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "canvas size")
	assert.Contains(t, err.Error(), "export scale")
}
