package main

import (
	"testing"

	"github.com/tdewolff/test"
)

func TestFitWindow(t *testing.T) {
	var tts = []struct {
		w, h   int
		ew, eh int
	}{
		{600, 400, 600, 400},
		{2048, 1024, 1024, 512},
		{1000, 3000, 341, 1024},
		{1024, 1024, 1024, 1024},
	}
	for _, tt := range tts {
		w, h := fitWindow(tt.w, tt.h, 1024)
		test.T(t, w, tt.ew)
		test.T(t, h, tt.eh)
	}
}
