package meme

import (
	"testing"

	"github.com/tdewolff/test"
)

func TestBundledFontStack(t *testing.T) {
	fonts, err := BundledFontStack()
	test.Error(t, err)
	test.String(t, fonts.Name(), "Go Bold")

	test.Float(t, fonts.TextWidth("", 40.0), 0.0)
	w := fonts.TextWidth("MEME", 40.0)
	test.That(t, 0.0 < w, "zero width", w)
	test.FloatDiff(t, fonts.TextWidth("MEME", 80.0), 2.0*w, 1e-6)
	test.That(t, fonts.TextWidth("MEMES", 40.0) > w)
}

func TestFontStackFallback(t *testing.T) {
	fonts, err := NewFontStack([]string{"does-not-exist.ttf"}, nil)
	test.Error(t, err)
	test.String(t, fonts.Name(), "Go Bold")
}

func TestFontStackMetrics(t *testing.T) {
	fonts, err := BundledFontStack()
	test.Error(t, err)

	m := Measure(fonts, "TOP\nTEXT", 40.0)
	test.T(t, m.LineCount, 2)
	test.Float(t, m.LineHeight, 48.0)
	test.That(t, m.LineWidths[0] < m.LineWidths[1], "TOP is narrower than TEXT")
	test.Float(t, m.MaxWidth, m.LineWidths[1])
}
