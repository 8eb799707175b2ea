package main

import (
	"image"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tdewolff/test"

	meme "github.com/AngadSinghLamba/meme-generator"
)

func TestParseLayers(t *testing.T) {
	entries, err := ParseLayers([]byte(`
[[layer]]
text = "TOP"
y = 50.0

[[layer]]
text = "BOTTOM"
font_size = 60.0
color = "#FFFF00"
`))
	test.Error(t, err)
	test.T(t, len(entries), 2)
	test.String(t, entries[0].Text, "TOP")
	test.That(t, entries[0].X == nil)
	test.Float(t, *entries[0].Y, 50.0)
	test.Float(t, entries[1].FontSize, 60.0)
	test.String(t, entries[1].Color, "#FFFF00")

	_, err = ParseLayers([]byte(`[[layer]`))
	test.That(t, err != nil)
}

func TestApplyLayers(t *testing.T) {
	e := meme.NewEditor(meme.DefaultOptions)
	e.SetImage(image.NewRGBA(image.Rect(0, 0, 600, 400)))

	y := 50.0
	err := ApplyLayers(e, []LayerEntry{
		{Text: "TOP", Y: &y},
		{Text: "BOTTOM", FontSize: 500.0, Color: "#FF0"},
	})
	test.Error(t, err)

	layers := e.Layers()
	test.T(t, len(layers), 2)
	test.Float(t, layers[0].X, 300.0)
	test.Float(t, layers[0].Y, 50.0)
	test.Float(t, layers[0].FontSize, 40.0)
	test.T(t, layers[0].Color, meme.DefaultColor)
	test.Float(t, layers[1].Y, 200.0)
	test.Float(t, layers[1].FontSize, 200.0)
	test.String(t, meme.FormatColor(layers[1].Color), "#FFFF00")

	err = ApplyLayers(e, []LayerEntry{{Text: "X", Color: "yellow"}})
	test.That(t, err != nil)
}

func TestApplyLayersNoImage(t *testing.T) {
	e := meme.NewEditor(meme.DefaultOptions)
	err := ApplyLayers(e, []LayerEntry{{Text: "TOP"}})
	test.That(t, err != nil)
	test.T(t, e.Len(), 0)
}

func TestHandler(t *testing.T) {
	root := t.TempDir()
	test.Error(t, os.WriteFile(filepath.Join(root, "style.css"), []byte("body {\n  margin : 0px ;\n}\n"), 0644))
	test.Error(t, os.WriteFile(filepath.Join(root, "app.wasm"), []byte("\x00asm"), 0644))

	h := NewHandler(root, true)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/style.css", nil))
	test.T(t, rec.Code, http.StatusOK)
	test.That(t, strings.Contains(rec.Body.String(), "body{margin:0}"), rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/app.wasm", nil))
	test.T(t, rec.Code, http.StatusOK)
	test.String(t, rec.Header().Get("Content-Type"), "application/wasm")
	test.String(t, rec.Body.String(), "\x00asm")

	rec = httptest.NewRecorder()
	NewHandler(root, false).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/style.css", nil))
	test.String(t, rec.Body.String(), "body {\n  margin : 0px ;\n}\n")
}
