package meme

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/tdewolff/test"
)

func encodePNG(t *testing.T, w, h int) []byte {
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{0xff, 0x00, 0x00, 0xff})
	test.Error(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecodeImage(t *testing.T) {
	img, err := DecodeImage(bytes.NewReader(encodePNG(t, 30, 20)))
	test.Error(t, err)
	test.String(t, img.Format, "png")
	test.String(t, img.Mimetype(), "image/png")
	test.T(t, img.Bounds().Size(), image.Point{30, 20})

	var buf bytes.Buffer
	pal := image.NewPaletted(image.Rect(0, 0, 4, 4), color.Palette{color.Black, color.White})
	test.Error(t, gif.Encode(&buf, pal, nil))
	img, err = DecodeImage(&buf)
	test.Error(t, err)
	test.String(t, img.Format, "gif")

	_, err = DecodeImage(strings.NewReader("not an image"))
	test.That(t, errors.Is(err, ErrDecode))
	test.String(t, Notice(err), "Failed to load image. Please try another file.")
}

func TestLoadTemplate(t *testing.T) {
	fsys := fstest.MapFS{
		"assets/bell-curve-v0-ua8cx3e0fa3f1.jpg": {Data: encodePNG(t, 64, 48)},
		"assets/big-brain-wojak.gif":             {Data: []byte("GIF89a broken")},
	}

	tmpl, ok := FindTemplate(DefaultTemplates, "Bell Curve")
	test.That(t, ok)
	img, err := LoadTemplate(fsys, tmpl)
	test.Error(t, err)
	test.T(t, img.Bounds().Size(), image.Point{64, 48})

	tmpl, _ = FindTemplate(DefaultTemplates, "Big Brain Wojak")
	_, err = LoadTemplate(fsys, tmpl)
	test.That(t, errors.Is(err, ErrTemplateNotFound))

	tmpl, _ = FindTemplate(DefaultTemplates, "Puppet Awkward")
	_, err = LoadTemplate(fsys, tmpl)
	test.That(t, errors.Is(err, ErrTemplateNotFound))

	_, ok = FindTemplate(DefaultTemplates, "Distracted Boyfriend")
	test.That(t, !ok)
}

func TestThumbnail(t *testing.T) {
	test.T(t, Thumbnail(image.NewRGBA(image.Rect(0, 0, 400, 100)), 80).Bounds().Size(), image.Point{80, 20})
	test.T(t, Thumbnail(image.NewRGBA(image.Rect(0, 0, 100, 400)), 80).Bounds().Size(), image.Point{20, 80})
	test.T(t, Thumbnail(image.NewRGBA(image.Rect(0, 0, 10, 10)), 80).Bounds().Size(), image.Point{80, 80})
}
