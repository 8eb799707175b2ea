package meme

import (
	"image"
	"image/draw"
	"math"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"
)

// MinStrokeWidth is the minimum outline width in pixels.
const MinStrokeWidth = 3.0

// StrokeWidth returns the outline width for a font size, max(3, fontSize/8).
func StrokeWidth(fontSize float64) float64 {
	return math.Max(MinStrokeWidth, fontSize/8.0)
}

// Rasterize composes base and layers into a new image at the native resolution of base.
func Rasterize(fonts *FontStack, base image.Image, layers []TextLayer) *image.RGBA {
	size := base.Bounds().Size()
	img := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
	RasterizeInto(img, fonts, base, layers)
	return img
}

// RasterizeInto clears img and composes base and layers into it, scaled to the size of img.
func RasterizeInto(img *image.RGBA, fonts *FontStack, base image.Image, layers []TextLayer) {
	Clear(img)
	// one unit is one pixel
	ras := rasterizer.FromImage(img, canvas.DPMM(1.0), canvas.DefaultColorSpace)
	Render(canvas.NewContext(ras), fonts, base, layers)
	ras.Close()
}

// Clear erases an image surface to transparent.
func Clear(img draw.Image) {
	draw.Draw(img, img.Bounds(), image.Transparent, image.Point{}, draw.Src)
}

// Render draws base scaled to fill the context and then each layer in order, so that later layers are on top. The
// context must be blank and is expected to be sized to the intrinsic size of base in units, with its default
// coordinate system (Y up). Both the on-screen preview and the export go through Render.
func Render(ctx *canvas.Context, fonts *FontStack, base image.Image, layers []TextLayer) {
	w, h := ctx.Size()
	if base != nil {
		size := base.Bounds().Size()
		if 0 < size.X && 0 < size.Y {
			ctx.Push()
			ctx.ComposeView(canvas.Identity.Scale(w/float64(size.X), h/float64(size.Y)))
			ctx.DrawImage(0.0, 0.0, base, canvas.DPMM(1.0))
			ctx.Pop()
		}
	}
	for _, layer := range layers {
		renderLayer(ctx, fonts, h, layer)
	}
}

func renderLayer(ctx *canvas.Context, fonts *FontStack, h float64, layer TextLayer) {
	face := fonts.Face(layer.FontSize, layer.Fill())
	fm := face.Metrics()
	metrics := MeasureLayer(fonts, layer)
	lines := layer.Lines()

	// glyphs are centered vertically on the middle of their ascent and descent
	middle := (fm.Ascent - fm.Descent) / 2.0

	ctx.Push()
	defer ctx.Pop()
	ctx.SetStrokeWidth(StrokeWidth(layer.FontSize))
	ctx.SetStrokeCapper(canvas.RoundCap)
	ctx.SetStrokeJoiner(canvas.RoundJoin)
	for i, y := range metrics.LineCenters(layer.Y) {
		if lines[i] == "" {
			continue
		}
		p, _, err := face.ToPath(lines[i])
		if err != nil || p.Empty() {
			continue
		}
		baseline := y + middle
		p = p.Translate(layer.X-metrics.LineWidths[i]/2.0, h-baseline)

		// outline first, fill on top
		ctx.SetFillColor(canvas.Transparent)
		ctx.SetStrokeColor(OutlineColor)
		ctx.DrawPath(0.0, 0.0, p)
		ctx.SetFillColor(layer.Fill())
		ctx.SetStrokeColor(canvas.Transparent)
		ctx.DrawPath(0.0, 0.0, p)
	}
}
