// Package config loads the TOML settings of the meme generator.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	meme "github.com/AngadSinghLamba/meme-generator"
)

// AppID identifies the application to the feed backend.
const AppID = "9365d762-bda6-4928-80c2-14e1d0e64bc2"

//go:embed default.toml
var defaultTOML []byte

type Config struct {
	Editor    EditorConfig    `toml:"editor"`
	Fonts     FontsConfig     `toml:"fonts"`
	Templates []meme.Template `toml:"templates"`
	Export    ExportConfig    `toml:"export"`
	Logging   LoggingConfig   `toml:"logging"`
	Serve     ServeConfig     `toml:"serve"`
	Feed      FeedConfig      `toml:"feed"`
}

type EditorConfig struct {
	FontSizeMin float64 `toml:"font_size_min"`
	FontSizeMax float64 `toml:"font_size_max"`
	FontSize    float64 `toml:"font_size"`
	Color       string  `toml:"color"`
	DebounceMS  int     `toml:"debounce_ms"`
}

type FontsConfig struct {
	Families []string `toml:"families"`
	Files    []string `toml:"files"`
}

type ExportConfig struct {
	Filename string `toml:"filename"`
}

type LoggingConfig struct {
	Level string `toml:"level"`
}

type ServeConfig struct {
	Addr   string `toml:"addr"`
	Root   string `toml:"root"`
	Minify bool   `toml:"minify"`
	Open   bool   `toml:"open"`
}

type FeedConfig struct {
	PageSize int `toml:"page_size"`
}

// Default returns the built-in configuration.
func Default() Config {
	var cfg Config
	if err := toml.Unmarshal(defaultTOML, &cfg); err != nil {
		panic("config: bad default.toml: " + err.Error())
	}
	return cfg
}

// Parse overlays TOML data on top of the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if len(strings.TrimSpace(string(data))) != 0 {
		// tables given in data replace the default lists
		cfg.Templates = nil
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, err
		}
		if cfg.Templates == nil {
			cfg.Templates = Default().Templates
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads a configuration file. An empty path or a missing file results in the defaults.
func Load(path string) (Config, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the bounds of the editor settings, the feed page size and the template list.
func (c Config) Validate() error {
	e := c.Editor
	if e.FontSizeMin <= 0.0 || e.FontSizeMax < e.FontSizeMin {
		return fmt.Errorf("editor: bad font size range [%g,%g]", e.FontSizeMin, e.FontSizeMax)
	} else if e.FontSize < e.FontSizeMin || e.FontSizeMax < e.FontSize {
		return fmt.Errorf("editor: font size %g outside [%g,%g]", e.FontSize, e.FontSizeMin, e.FontSizeMax)
	} else if e.DebounceMS < 0 {
		return fmt.Errorf("editor: negative debounce %d", e.DebounceMS)
	}
	if _, err := meme.ParseColor(e.Color); err != nil {
		return fmt.Errorf("editor: %w", err)
	}
	if c.Feed.PageSize <= 0 {
		return fmt.Errorf("feed: page size %d must be positive", c.Feed.PageSize)
	}
	for i, t := range c.Templates {
		if strings.TrimSpace(t.Name) == "" || strings.TrimSpace(t.Path) == "" {
			return fmt.Errorf("templates[%d]: name and path are required", i)
		}
	}
	return nil
}

// EditorOptions returns the options for a new editor.
func (c Config) EditorOptions() meme.Options {
	col, err := meme.ParseColor(c.Editor.Color)
	if err != nil {
		col = meme.DefaultColor
	}
	return meme.Options{
		FontSizeMin: c.Editor.FontSizeMin,
		FontSizeMax: c.Editor.FontSizeMax,
		FontSize:    c.Editor.FontSize,
		Color:       col,
	}
}

// Debounce returns the hold time before a pressed layer is dragged.
func (c Config) Debounce() time.Duration {
	if c.Editor.DebounceMS <= 0 {
		return meme.DefaultDebounce
	}
	return time.Duration(c.Editor.DebounceMS) * time.Millisecond
}

// ExportFilename returns the name of exported memes.
func (c Config) ExportFilename() string {
	if name := strings.TrimSpace(c.Export.Filename); name != "" {
		return name
	}
	return meme.ExportFilename
}

// LogLevel returns the logging level.
func (c Config) LogLevel() string {
	if level := strings.TrimSpace(c.Logging.Level); level != "" {
		return level
	}
	return "info"
}

// FontStack loads the configured display font, falling back to the bundled fonts.
func (c Config) FontStack() (*meme.FontStack, error) {
	return meme.NewFontStack(c.Fonts.Files, c.Fonts.Families)
}
