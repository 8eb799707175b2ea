package meme

import "image/color"

// TextLayer is one positioned, styled text block overlaid on the base image.
type TextLayer struct {
	ID int

	// Text is displayed and may contain newlines. OriginalText is what an edit field is populated with, it is always
	// set together with Text.
	Text         string
	OriginalText string

	// X and Y are the center of the text block in image space.
	X, Y float64

	FontSize float64    // in pixels
	Color    color.RGBA // zero means DefaultColor
}

// Center returns the center of the text block.
func (l TextLayer) Center() Point {
	return Point{l.X, l.Y}
}

// Fill returns the fill color of the glyphs.
func (l TextLayer) Fill() color.RGBA {
	if l.Color == (color.RGBA{}) {
		return DefaultColor
	}
	return l.Color
}

// Lines returns the text split on explicit line breaks.
func (l TextLayer) Lines() []string {
	return SplitLines(l.Text)
}

func indexLayer(layers []TextLayer, id int) int {
	for i, layer := range layers {
		if layer.ID == id {
			return i
		}
	}
	return -1
}
