package meme

import (
	"fmt"
	"image/color"
	"strings"
)

var (
	// DefaultColor is the fill color of layers without a color, opaque white.
	DefaultColor = color.RGBA{0xff, 0xff, 0xff, 0xff}

	// OutlineColor is the stroke color around all glyphs.
	OutlineColor = color.RGBA{0x00, 0x00, 0x00, 0xff}
)

// ParseColor parses a CSS hexadecimal color such as #ff0000, F00 or #ff000080. Colors with alpha are returned alpha
// premultiplied.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	hex := strings.TrimPrefix(s, "#")
	h := make([]uint8, len(hex))
	for i, c := range hex {
		if '0' <= c && c <= '9' {
			h[i] = uint8(c - '0')
		} else if 'a' <= c && c <= 'f' {
			h[i] = 10 + uint8(c-'a')
		} else if 'A' <= c && c <= 'F' {
			h[i] = 10 + uint8(c-'A')
		} else {
			return color.RGBA{}, fmt.Errorf("bad color %q", s)
		}
	}

	switch len(hex) {
	case 3:
		return color.RGBA{h[0]*16 + h[0], h[1]*16 + h[1], h[2]*16 + h[2], 0xff}, nil
	case 4:
		return premultiply(h[0]*16+h[0], h[1]*16+h[1], h[2]*16+h[2], h[3]*16+h[3]), nil
	case 6:
		return color.RGBA{h[0]*16 + h[1], h[2]*16 + h[3], h[4]*16 + h[5], 0xff}, nil
	case 8:
		return premultiply(h[0]*16+h[1], h[2]*16+h[3], h[4]*16+h[5], h[6]*16+h[7]), nil
	}
	return color.RGBA{}, fmt.Errorf("bad color %q", s)
}

func premultiply(r, g, b, a uint8) color.RGBA {
	f := float64(a) / 255.0
	return color.RGBA{
		uint8(f*float64(r) + 0.5),
		uint8(f*float64(g) + 0.5),
		uint8(f*float64(b) + 0.5),
		a,
	}
}

// FormatColor formats an opaque color as #RRGGBB, the notation used by color inputs. Transparent colors get an extra
// alpha byte and are un-premultiplied.
func FormatColor(c color.RGBA) string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	} else if c.A == 0 {
		return "#00000000"
	}
	f := 255.0 / float64(c.A)
	return fmt.Sprintf("#%02X%02X%02X%02X", uint8(f*float64(c.R)+0.5), uint8(f*float64(c.G)+0.5), uint8(f*float64(c.B)+0.5), c.A)
}
