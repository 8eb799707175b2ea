package meme

import "strings"

// LineHeightFactor is the line height relative to the font size.
const LineHeightFactor = 1.2

// Measurer measures the advance width of a single line of text set at a font size, both in pixels.
type Measurer interface {
	TextWidth(s string, fontSize float64) float64
}

// Metrics is the layout of a text block.
type Metrics struct {
	LineWidths  []float64
	MaxWidth    float64
	LineCount   int
	LineHeight  float64
	TotalHeight float64
}

// SplitLines splits s on line breaks, accepting both \n and \r\n. It always returns at least one line.
func SplitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.Split(s, "\n")
}

// Measure lays out text at the given font size. Empty text results in a single empty line of zero width.
func Measure(m Measurer, text string, fontSize float64) Metrics {
	lines := SplitLines(text)
	metrics := Metrics{
		LineWidths: make([]float64, len(lines)),
		LineCount:  len(lines),
		LineHeight: fontSize * LineHeightFactor,
	}
	metrics.TotalHeight = float64(metrics.LineCount) * metrics.LineHeight
	for i, line := range lines {
		if line == "" {
			continue
		}
		w := m.TextWidth(line, fontSize)
		metrics.LineWidths[i] = w
		if metrics.MaxWidth < w {
			metrics.MaxWidth = w
		}
	}
	return metrics
}

// MeasureLayer lays out the text of a layer.
func MeasureLayer(m Measurer, layer TextLayer) Metrics {
	return Measure(m, layer.Text, layer.FontSize)
}

// LineCenters returns the vertical center of each line for a block centered at y. The first line is centered at
// y - TotalHeight/2 + LineHeight/2 and each next line one LineHeight below.
func (metrics Metrics) LineCenters(y float64) []float64 {
	ys := make([]float64, metrics.LineCount)
	y0 := y - metrics.TotalHeight/2.0 + metrics.LineHeight/2.0
	for i := range ys {
		ys[i] = y0 + float64(i)*metrics.LineHeight
	}
	return ys
}

// Bounds returns the bounding box of a block centered at c.
func (metrics Metrics) Bounds(c Point) Rect {
	return Rect{
		c.X - metrics.MaxWidth/2.0,
		c.Y - metrics.TotalHeight/2.0,
		c.X + metrics.MaxWidth/2.0,
		c.Y + metrics.TotalHeight/2.0,
	}
}
