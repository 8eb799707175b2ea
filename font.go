package meme

import (
	"errors"
	"fmt"
	"image/color"
	"path/filepath"

	"github.com/go-fonts/latin-modern/lmsans10bold"
	"github.com/tdewolff/canvas"
	"golang.org/x/image/font/gofont/gobold"
)

// one canvas unit is one image pixel, font sizes are given to canvas in points
const ptPerPx = 72.0 / 25.4

// DefaultFamilies is the display typeface stack looked up in the system fonts, in order of preference.
var DefaultFamilies = []string{"Impact", "Arial Black"}

type bundledFont struct {
	name string
	b    []byte
}

// bundled fonts are the generic fallbacks when no display typeface is found
var bundledFonts = []bundledFont{
	{"Go Bold", gobold.TTF},
	{"Latin Modern Sans Bold", lmsans10bold.TTF},
}

// FontStack is the bold display face used for all layers. It implements Measurer.
type FontStack struct {
	name   string
	family *canvas.FontFamily
}

// NewFontStack loads the first usable font of: the given font files, the given system font families, and the
// bundled fallback fonts.
func NewFontStack(files, families []string) (*FontStack, error) {
	var errs []error
	for _, filename := range files {
		name := filepath.Base(filename)
		family := canvas.NewFontFamily(name)
		if err := family.LoadFontFile(filename, canvas.FontBold); err != nil {
			errs = append(errs, fmt.Errorf("font file %s: %w", filename, err))
			continue
		}
		return &FontStack{name, family}, nil
	}

	for _, name := range families {
		family := canvas.NewFontFamily(name)
		if err := family.LoadSystemFont(name, canvas.FontBold); err == nil {
			return &FontStack{name, family}, nil
		}
		// display faces such as Impact only come in a regular weight and are emboldened
		if err := family.LoadSystemFont(name, canvas.FontRegular); err != nil {
			errs = append(errs, fmt.Errorf("system font %s: %w", name, err))
			continue
		}
		return &FontStack{name, family}, nil
	}

	fonts, err := BundledFontStack()
	if err != nil {
		errs = append(errs, err)
		return nil, errors.Join(errs...)
	}
	return fonts, nil
}

// BundledFontStack loads the first bundled fallback font. It does not depend on the fonts installed on the system.
func BundledFontStack() (*FontStack, error) {
	var errs []error
	for _, font := range bundledFonts {
		family := canvas.NewFontFamily(font.name)
		if err := family.LoadFont(font.b, 0, canvas.FontBold); err != nil {
			errs = append(errs, fmt.Errorf("bundled font %s: %w", font.name, err))
			continue
		}
		return &FontStack{font.name, family}, nil
	}
	return nil, errors.Join(errs...)
}

// Name returns the name of the loaded font.
func (fonts *FontStack) Name() string {
	return fonts.name
}

// Face returns the bold face at a font size in pixels.
func (fonts *FontStack) Face(fontSize float64, col color.Color) *canvas.FontFace {
	return fonts.family.Face(fontSize*ptPerPx, col, canvas.FontBold, canvas.FontNormal)
}

// TextWidth returns the advance width of a line in pixels.
func (fonts *FontStack) TextWidth(s string, fontSize float64) float64 {
	if s == "" {
		return 0.0
	}
	return fonts.Face(fontSize, OutlineColor).TextWidth(s)
}
