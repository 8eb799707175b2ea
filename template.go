package meme

import (
	"fmt"
	"image"
	"io/fs"

	"golang.org/x/image/draw"
)

// Template is a stock base image.
type Template struct {
	Name string `toml:"name"`
	Path string `toml:"path"` // slash-separated, relative to the asset root
}

// DefaultTemplates are the stock images shipped in the assets directory.
var DefaultTemplates = []Template{
	{"Bell Curve", "assets/bell-curve-v0-ua8cx3e0fa3f1.jpg"},
	{"Big Brain Wojak", "assets/big-brain-wojak.gif"},
	{"Puppet Awkward", "assets/puppet-awkward.gif"},
}

// FindTemplate returns the template with the given name.
func FindTemplate(templates []Template, name string) (Template, bool) {
	for _, t := range templates {
		if t.Name == name {
			return t, true
		}
	}
	return Template{}, false
}

// LoadTemplate decodes the image of a template from fsys. Any failure wraps ErrTemplateNotFound.
func LoadTemplate(fsys fs.FS, t Template) (Image, error) {
	f, err := fsys.Open(t.Path)
	if err != nil {
		return Image{}, fmt.Errorf("%w: %w", ErrTemplateNotFound, err)
	}
	defer f.Close()

	img, err := DecodeImage(f)
	if err != nil {
		return Image{}, fmt.Errorf("%w: %s: %w", ErrTemplateNotFound, t.Path, err)
	}
	return img, nil
}

// Thumbnail scales img to fit within a size×size square, keeping its aspect ratio.
func Thumbnail(img image.Image, size int) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 || size <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}
	if h < w {
		w, h = size, max(1, h*size/w)
	} else {
		w, h = max(1, w*size/h), size
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
