package meme

import (
	"testing"

	"github.com/tdewolff/test"
)

func newTestGesture() (*Editor, *Gesture, *manualScheduler) {
	e := newTestEditor(800, 600)
	sched := &manualScheduler{}
	return e, NewGesture(e, monoMeasurer{}, sched, 0), sched
}

func TestViewport(t *testing.T) {
	v := Viewport{ImageW: 800.0, ImageH: 600.0, DisplayW: 400.0, DisplayH: 200.0}
	test.T(t, v.ToImage(Point{200.0, 100.0}), Point{400.0, 300.0})
	test.T(t, Viewport{ImageW: 800.0, ImageH: 600.0}.ToImage(Point{1.0, 2.0}), Point{1.0, 2.0})
}

func TestGestureTap(t *testing.T) {
	e, g, sched := newTestGesture()
	layer, _ := e.AddLayer("TAP")
	v := Viewport{800.0, 600.0, 800.0, 600.0}

	g.PointerDown(v, Point{400.0, 300.0})
	test.T(t, g.State(), ArmedForSelect)
	sel, ok := e.Selected()
	test.That(t, ok)
	test.T(t, sel.ID, layer.ID)

	// release before the timer fires is a pure selection
	g.PointerMove(v, Point{420.0, 310.0})
	g.PointerUp()
	sched.Elapse()
	test.T(t, g.State(), Idle)
	test.T(t, g.Cursor(), CursorMove)
	moved, _ := e.Layer(layer.ID)
	test.Float(t, moved.X, 400.0)
	test.Float(t, moved.Y, 300.0)
	_, ok = e.Selected()
	test.That(t, ok)
}

func TestGestureDrag(t *testing.T) {
	e, g, sched := newTestGesture()
	layer, _ := e.AddLayer("DRAG")
	v := Viewport{800.0, 600.0, 400.0, 300.0}

	// press 5 display pixels right of the center, 10 image pixels
	g.PointerDown(v, Point{205.0, 150.0})
	sched.Elapse()
	test.T(t, g.State(), Dragging)
	test.T(t, g.Cursor(), CursorGrabbing)

	g.PointerMove(v, Point{105.0, 50.0})
	moved, _ := e.Layer(layer.ID)
	test.Float(t, moved.X, 200.0)
	test.Float(t, moved.Y, 100.0)

	g.PointerLeave()
	test.T(t, g.State(), Idle)
	g.PointerMove(v, Point{0.0, 0.0})
	moved, _ = e.Layer(layer.ID)
	test.Float(t, moved.X, 200.0)
}

func TestGestureMiss(t *testing.T) {
	e, g, _ := newTestGesture()
	layer, _ := e.AddLayer("MISS")
	e.SelectLayer(layer.ID)
	v := Viewport{800.0, 600.0, 800.0, 600.0}

	g.PointerDown(v, Point{5.0, 5.0})
	test.T(t, g.State(), Idle)
	_, ok := e.Selected()
	test.That(t, !ok, "pointer down on nothing deselects")
}

func TestGestureStaleFire(t *testing.T) {
	e, g, sched := newTestGesture()
	e.AddLayer("STALE")
	v := Viewport{800.0, 600.0, 800.0, 600.0}

	g.PointerDown(v, Point{400.0, 300.0})
	g.PointerUp()
	g.PointerDown(v, Point{400.0, 300.0})

	// the first timer fires despite being stopped and is ignored, the second one still arms the drag
	first := sched.timers[0]
	first.fired = true
	first.f()
	test.T(t, g.State(), ArmedForSelect)

	sched.Elapse()
	test.T(t, g.State(), Dragging)

	g.PointerUp()
	sched.FireStale()
	test.T(t, g.State(), Idle)
}

func TestGestureHover(t *testing.T) {
	e, g, _ := newTestGesture()
	e.AddLayer("HOVER")
	v := Viewport{800.0, 600.0, 800.0, 600.0}

	g.PointerMove(v, Point{400.0, 300.0})
	test.T(t, g.Cursor(), CursorGrab)
	test.String(t, g.Cursor().CSS(), "grab")
	g.PointerMove(v, Point{0.0, 0.0})
	test.T(t, g.Cursor(), CursorMove)
	test.T(t, e.Len(), 1)
}
