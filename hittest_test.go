package meme

import (
	"testing"

	"github.com/tdewolff/test"
)

func TestHitTest(t *testing.T) {
	layers := []TextLayer{
		{ID: 1, Text: "AAAA", X: 100.0, Y: 100.0, FontSize: 20.0},
		{ID: 2, Text: "BB", X: 120.0, Y: 100.0, FontSize: 20.0},
	}

	var tts = []struct {
		p  Point
		id int
		ok bool
	}{
		{Point{80.0, 100.0}, 1, true},  // left edge of A
		{Point{110.0, 100.0}, 2, true}, // in both, B is on top
		{Point{130.0, 112.0}, 2, true}, // bottom-right corner of B
		{Point{141.0, 100.0}, 0, false},
		{Point{100.0, 113.0}, 0, false},
	}
	for _, tt := range tts {
		t.Run(tt.p.String(), func(t *testing.T) {
			id, ok := HitTest(monoMeasurer{}, tt.p, layers)
			test.T(t, ok, tt.ok)
			test.T(t, id, tt.id)
		})
	}
}

func TestHitTestRemoved(t *testing.T) {
	e := newTestEditor(400, 400)
	a, _ := e.AddLayer("same")
	b, _ := e.AddLayer("same")
	p := Point{200.0, 200.0}

	id, ok := HitTest(monoMeasurer{}, p, e.Layers())
	test.That(t, ok)
	test.T(t, id, b.ID)

	// removing the lower layer leaves the upper one hit and selectable
	e.RemoveLayer(a.ID)
	id, ok = HitTest(monoMeasurer{}, p, e.Layers())
	test.That(t, ok)
	test.T(t, id, b.ID)
	test.That(t, e.SelectLayer(id))

	bounds := Bounds(monoMeasurer{}, b)
	e.RemoveLayer(b.ID)
	for _, q := range []Point{p, {bounds.X0, bounds.Y0}, {bounds.X1, bounds.Y1}} {
		_, ok = HitTest(monoMeasurer{}, q, e.Layers())
		test.That(t, !ok, "removed layer hit at", q)
	}
}
