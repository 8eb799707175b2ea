package meme

import (
	"testing"

	"github.com/tdewolff/test"
)

func TestMeasure(t *testing.T) {
	var tts = []struct {
		text       string
		fontSize   float64
		lineWidths []float64
		maxWidth   float64
		lineCount  int
	}{
		{"", 40.0, []float64{0.0}, 0.0, 1},
		{"TOP", 40.0, []float64{60.0}, 60.0, 1},
		{"TOP\nTEXT", 40.0, []float64{60.0, 80.0}, 80.0, 2},
		{"A\r\nBB", 20.0, []float64{10.0, 20.0}, 20.0, 2},
		{"A\n\nB", 20.0, []float64{10.0, 0.0, 10.0}, 10.0, 3},
		{"\n", 20.0, []float64{0.0, 0.0}, 0.0, 2},
	}
	for _, tt := range tts {
		t.Run(tt.text, func(t *testing.T) {
			metrics := Measure(monoMeasurer{}, tt.text, tt.fontSize)
			test.Floats(t, metrics.LineWidths, tt.lineWidths)
			test.Float(t, metrics.MaxWidth, tt.maxWidth)
			test.T(t, metrics.LineCount, tt.lineCount)
			test.Float(t, metrics.LineHeight, tt.fontSize*1.2)
			test.Float(t, metrics.TotalHeight, float64(tt.lineCount)*tt.fontSize*1.2)
		})
	}
}

func TestMeasureTwoLines(t *testing.T) {
	e := newTestEditor(800, 600)
	layer, err := e.AddLayer("TOP\nTEXT")
	test.Error(t, err)
	test.Float(t, layer.X, 400.0)
	test.Float(t, layer.Y, 300.0)

	metrics := MeasureLayer(monoMeasurer{}, layer)
	test.T(t, metrics.LineCount, 2)
	test.Float(t, metrics.LineHeight, 48.0)
	test.Float(t, metrics.TotalHeight, 96.0)
	test.Floats(t, metrics.LineCenters(layer.Y), []float64{276.0, 324.0})
}

func TestMetricsBounds(t *testing.T) {
	metrics := Measure(monoMeasurer{}, "ABCD\nAB", 10.0)
	r := metrics.Bounds(Point{100.0, 50.0})
	test.T(t, r, Rect{90.0, 38.0, 110.0, 62.0})
	test.T(t, r.Center(), Point{100.0, 50.0})
}
