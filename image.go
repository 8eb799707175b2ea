package meme

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Image is a decoded base image. Animated images are reduced to their first frame.
type Image struct {
	image.Image
	Format string // as registered with the image package, e.g. png or gif
}

// Mimetype returns the media type of the encoded image.
func (img Image) Mimetype() string {
	return "image/" + img.Format
}

// DecodeImage decodes a PNG, JPEG, GIF, WebP, BMP or TIFF image. Errors wrap ErrDecode.
func DecodeImage(r io.Reader) (Image, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return Image{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	size := img.Bounds().Size()
	if size.X <= 0 || size.Y <= 0 {
		return Image{}, fmt.Errorf("%w: empty %s image", ErrDecode, format)
	}
	return Image{img, format}, nil
}

// LoadImageFile decodes the image in a file.
func LoadImageFile(filename string) (Image, error) {
	f, err := os.Open(filename)
	if err != nil {
		return Image{}, err
	}
	defer f.Close()

	img, err := DecodeImage(f)
	if err != nil {
		return Image{}, fmt.Errorf("%s: %w", filename, err)
	}
	return img, nil
}
