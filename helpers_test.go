package meme

import (
	"image"
	"time"
	"unicode/utf8"
)

// monoMeasurer gives every rune an advance of half the font size.
type monoMeasurer struct{}

func (monoMeasurer) TextWidth(s string, fontSize float64) float64 {
	return float64(utf8.RuneCountInString(s)) * fontSize / 2.0
}

type manualTimer struct {
	s       *manualScheduler
	f       func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// manualScheduler fires timers only when asked to.
type manualScheduler struct {
	timers []*manualTimer
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	t := &manualTimer{s: s, f: f}
	s.timers = append(s.timers, t)
	return t
}

// Elapse fires all pending timers.
func (s *manualScheduler) Elapse() {
	timers := s.timers
	s.timers = nil
	for _, t := range timers {
		if !t.stopped && !t.fired {
			t.fired = true
			t.f()
		}
	}
}

// FireStale runs the callbacks of all timers, including stopped ones, as a timer racing its Stop would.
func (s *manualScheduler) FireStale() {
	timers := s.timers
	s.timers = nil
	for _, t := range timers {
		t.fired = true
		t.f()
	}
}

func newTestEditor(w, h int) *Editor {
	e := NewEditor(DefaultOptions)
	e.SetImage(image.NewRGBA(image.Rect(0, 0, w, h)))
	return e
}
