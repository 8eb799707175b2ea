package meme

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
)

// ExportFilename is the name under which an exported meme is saved.
const ExportFilename = "meme.png"

// Export composes base and layers at the native resolution of base and encodes the result as PNG. It fails with
// ErrNoImage or ErrNoLayers, both wrapped in ErrNothingToExport, without producing any output.
func Export(fonts *FontStack, base image.Image, layers []TextLayer) ([]byte, error) {
	if base == nil {
		return nil, fmt.Errorf("%w: %w", ErrNothingToExport, ErrNoImage)
	} else if len(layers) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrNothingToExport, ErrNoLayers)
	}

	img := Rasterize(fonts, base, layers)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportFile writes the PNG export to a file. No file is created when there is nothing to export.
func ExportFile(filename string, fonts *FontStack, base image.Image, layers []TextLayer) error {
	b, err := Export(fonts, base, layers)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}
