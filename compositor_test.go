package meme

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/tdewolff/test"
)

func inkBounds(img *image.RGBA) (image.Rectangle, bool) {
	r := image.Rectangle{}
	found := false
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y).A < 128 {
				continue
			}
			p := image.Rect(x, y, x+1, y+1)
			if !found {
				r, found = p, true
			} else {
				r = r.Union(p)
			}
		}
	}
	return r, found
}

func TestStrokeWidth(t *testing.T) {
	test.Float(t, StrokeWidth(20.0), 3.0)
	test.Float(t, StrokeWidth(24.0), 3.0)
	test.Float(t, StrokeWidth(40.0), 5.0)
	test.Float(t, StrokeWidth(200.0), 25.0)
}

func TestRenderCentered(t *testing.T) {
	fonts, err := BundledFontStack()
	test.Error(t, err)

	base := image.NewRGBA(image.Rect(0, 0, 800, 600))
	v := Viewport{800.0, 600.0, 400.0, 300.0}
	p := v.ToImage(Point{200.0, 150.0})
	layer := TextLayer{ID: 1, Text: "HHH", X: p.X, Y: p.Y, FontSize: 40.0}

	img := Rasterize(fonts, base, []TextLayer{layer})
	test.T(t, img.Bounds().Size(), image.Point{800, 600})

	ink, ok := inkBounds(img)
	test.That(t, ok, "no text rendered")
	cx := float64(ink.Min.X+ink.Max.X) / 2.0
	cy := float64(ink.Min.Y+ink.Max.Y) / 2.0
	test.FloatDiff(t, cx, 400.0, 4.0)
	test.FloatDiff(t, cy, 300.0, 6.0)

	// ink stays within the measured block grown by the outline
	bounds := Bounds(fonts, layer)
	sw := StrokeWidth(layer.FontSize)
	test.That(t, bounds.X0-sw-2.0 <= float64(ink.Min.X) && float64(ink.Max.X) <= bounds.X1+sw+2.0, ink, bounds)
}

func TestRenderOutline(t *testing.T) {
	fonts, err := BundledFontStack()
	test.Error(t, err)

	base := image.NewRGBA(image.Rect(0, 0, 200, 200))
	layer := TextLayer{ID: 1, Text: "I", X: 100.0, Y: 100.0, FontSize: 120.0}
	img := Rasterize(fonts, base, []TextLayer{layer})

	// the stem is filled white and outlined in black
	white, black := 0, 0
	for x := 0; x < 200; x++ {
		c := img.RGBAAt(x, 100)
		if c.A == 0xff && c.R == 0xff && c.G == 0xff && c.B == 0xff {
			white++
		} else if c.A == 0xff && c.R == 0x00 && c.G == 0x00 && c.B == 0x00 {
			black++
		}
	}
	test.That(t, 0 < white, "no fill")
	test.That(t, 0 < black, "no outline")
}

func TestExport(t *testing.T) {
	fonts, err := BundledFontStack()
	test.Error(t, err)

	base := image.NewRGBA(image.Rect(0, 0, 800, 600))
	layers := []TextLayer{{ID: 1, Text: "TOP\nTEXT", X: 400.0, Y: 300.0, FontSize: 40.0}}

	_, err = Export(fonts, nil, layers)
	test.That(t, errors.Is(err, ErrNoImage))
	test.That(t, errors.Is(err, ErrNothingToExport))
	_, err = Export(fonts, base, nil)
	test.That(t, errors.Is(err, ErrNoLayers))

	b, err := Export(fonts, base, layers)
	test.Error(t, err)
	img, err := png.Decode(bytes.NewReader(b))
	test.Error(t, err)
	test.T(t, img.Bounds().Size(), image.Point{800, 600})
}

func TestExportFile(t *testing.T) {
	fonts, err := BundledFontStack()
	test.Error(t, err)

	dir := t.TempDir()
	filename := filepath.Join(dir, ExportFilename)
	err = ExportFile(filename, fonts, image.NewRGBA(image.Rect(0, 0, 10, 10)), nil)
	test.That(t, errors.Is(err, ErrNoLayers))
	_, err = os.Stat(filename)
	test.That(t, os.IsNotExist(err), "no file expected")

	e := newTestEditor(64, 32)
	e.AddLayer("ok")
	b, err := e.Export(fonts)
	test.Error(t, err)
	test.That(t, 0 < len(b))
}

func TestRasterizeInto(t *testing.T) {
	fonts, err := BundledFontStack()
	test.Error(t, err)

	base := image.NewRGBA(image.Rect(0, 0, 100, 50))
	layers := []TextLayer{{ID: 1, Text: "A", X: 50.0, Y: 25.0, FontSize: 30.0}}
	dst := image.NewRGBA(image.Rect(0, 0, 100, 50))
	RasterizeInto(dst, fonts, base, layers)
	_, ok := inkBounds(dst)
	test.That(t, ok)

	// redrawing without layers leaves nothing of the previous frame
	RasterizeInto(dst, fonts, base, nil)
	_, ok = inkBounds(dst)
	test.That(t, !ok)
}

func inkRows(img *image.RGBA) [][2]int {
	var bands [][2]int
	b := img.Bounds()
	inBand := false
	for y := b.Min.Y; y < b.Max.Y; y++ {
		ink := false
		for x := b.Min.X; x < b.Max.X; x++ {
			if 128 <= img.RGBAAt(x, y).A {
				ink = true
				break
			}
		}
		if ink && !inBand {
			bands = append(bands, [2]int{y, y})
		} else if ink {
			bands[len(bands)-1][1] = y
		}
		inBand = ink
	}
	return bands
}

func TestRenderLineCenters(t *testing.T) {
	fonts, err := BundledFontStack()
	test.Error(t, err)

	base := image.NewRGBA(image.Rect(0, 0, 800, 600))
	layers := []TextLayer{{ID: 1, Text: "TOP\nTEXT", X: 400.0, Y: 300.0, FontSize: 40.0}}
	img := Rasterize(fonts, base, layers)

	bands := inkRows(img)
	test.T(t, len(bands), 2)
	test.FloatDiff(t, float64(bands[0][0]+bands[0][1])/2.0, 276.0, 3.0)
	test.FloatDiff(t, float64(bands[1][0]+bands[1][1])/2.0, 324.0, 3.0)
}

func TestRenderBase(t *testing.T) {
	fonts, err := BundledFontStack()
	test.Error(t, err)

	base := image.NewRGBA(image.Rect(0, 0, 40, 20))
	draw.Draw(base, base.Bounds(), image.NewUniform(color.RGBA{0xff, 0x00, 0x00, 0xff}), image.Point{}, draw.Src)

	img := Rasterize(fonts, base, nil)
	for _, p := range []image.Point{{2, 2}, {20, 10}, {37, 17}} {
		c := img.RGBAAt(p.X, p.Y)
		test.That(t, 0xf0 <= c.R && c.G <= 0x0f && c.B <= 0x0f && c.A == 0xff, p, c)
	}
}
