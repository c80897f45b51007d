// Package config loads the sketchpad settings file.
package config

import (
	"errors"
	"fmt"
	"log"

	"github.com/BurntSushi/toml"
)

const (
	DefaultCanvasSize  = 256
	DefaultExportSize  = 1024
	DefaultExportScale = 4
	DefaultExportFile  = "sketchpad.png"
	DefaultFontSize    = 13
	DefaultRemoteAddr  = ":8899"
)

// DefaultStickers are the sticker buttons offered on startup.
var DefaultStickers = []string{"⭐", "💜", "💀"}

type Canvas struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

type Export struct {
	Width  int     `toml:"width"`
	Height int     `toml:"height"`
	Scale  float64 `toml:"scale"`
	File   string  `toml:"file"`
}

type Font struct {
	Path      string   `toml:"path"` // TTF/OTF file; empty uses Go Regular
	Size      float64  `toml:"size"`
	Fallbacks []string `toml:"fallbacks"` // tried per glyph before the bundled emoji font
}

type Stickers struct {
	Glyphs []string `toml:"glyphs"`
}

type Remote struct {
	Addr      string `toml:"addr"`
	Advertise bool   `toml:"advertise"`
}

// Config is the whole settings file.
type Config struct {
	Canvas   Canvas   `toml:"canvas"`
	Export   Export   `toml:"export"`
	Font     Font     `toml:"font"`
	Stickers Stickers `toml:"stickers"`
	Remote   Remote   `toml:"remote"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Canvas: Canvas{Width: DefaultCanvasSize, Height: DefaultCanvasSize},
		Export: Export{
			Width:  DefaultExportSize,
			Height: DefaultExportSize,
			Scale:  DefaultExportScale,
			File:   DefaultExportFile,
		},
		Font:     Font{Size: DefaultFontSize},
		Stickers: Stickers{Glyphs: append([]string(nil), DefaultStickers...)},
		Remote:   Remote{Addr: DefaultRemoteAddr, Advertise: true},
	}
}

// Load reads path on top of the defaults. An empty path returns Default().
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	for _, key := range md.Undecoded() {
		log.Printf("[CONFIG] ignoring unknown key %s in %s", key, path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes settings from TOML text on top of the defaults.
func Parse(data string) (Config, error) {
	cfg := Default()
	if _, err := toml.Decode(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects sizes and scales that cannot produce an image.
func (c Config) Validate() error {
	var errs []error
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		errs = append(errs, fmt.Errorf("canvas size %dx%d must be positive", c.Canvas.Width, c.Canvas.Height))
	}
	if c.Export.Width <= 0 || c.Export.Height <= 0 {
		errs = append(errs, fmt.Errorf("export size %dx%d must be positive", c.Export.Width, c.Export.Height))
	}
	if c.Export.Scale <= 0 {
		errs = append(errs, fmt.Errorf("export scale %g must be positive", c.Export.Scale))
	}
	if c.Font.Size <= 0 {
		errs = append(errs, fmt.Errorf("font size %g must be positive", c.Font.Size))
	}
	return errors.Join(errs...)
}
