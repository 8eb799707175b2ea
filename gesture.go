package meme

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// DefaultDebounce is the time a pointer must stay down on a layer before it is dragged.
const DefaultDebounce = 200 * time.Millisecond

// GestureState is the state of the pointer gesture.
type GestureState int

// see GestureState
const (
	Idle GestureState = iota
	ArmedForSelect
	Dragging
)

func (state GestureState) String() string {
	switch state {
	case Idle:
		return "Idle"
	case ArmedForSelect:
		return "ArmedForSelect"
	case Dragging:
		return "Dragging"
	}
	return fmt.Sprintf("GestureState(%d)", int(state))
}

// Cursor is the pointer affordance shown over the canvas.
type Cursor int

// see Cursor
const (
	CursorMove Cursor = iota
	CursorGrab
	CursorGrabbing
)

// CSS returns the value of the CSS cursor property.
func (c Cursor) CSS() string {
	switch c {
	case CursorGrab:
		return "grab"
	case CursorGrabbing:
		return "grabbing"
	}
	return "move"
}

func (c Cursor) String() string {
	return c.CSS()
}

// Viewport relates the displayed size of the canvas to the intrinsic size of the image. Both axes scale
// independently.
type Viewport struct {
	ImageW, ImageH     float64
	DisplayW, DisplayH float64
}

// ToImage converts a point in display space to image space.
func (v Viewport) ToImage(p Point) Point {
	sx, sy := 1.0, 1.0
	if v.DisplayW != 0.0 {
		sx = v.ImageW / v.DisplayW
	}
	if v.DisplayH != 0.0 {
		sy = v.ImageH / v.DisplayH
	}
	return Point{p.X * sx, p.Y * sy}
}

// Gesture turns pointer events over the canvas into selection and dragging of layers. A pointer down on a layer
// selects it and arms a timer, only when the timer fires before the pointer is released does the layer follow the
// pointer. A short press is thus a pure selection. The pending timer is cleared on every transition and a fire that
// belongs to an earlier press is ignored.
type Gesture struct {
	editor *Editor
	m      Measurer
	sched  Scheduler
	delay  time.Duration
	log    *zap.Logger

	state   GestureState
	cursor  Cursor
	layer   int   // pressed layer
	offset  Point // pointer minus layer center at press
	pending Timer
	token   uint64
}

// NewGesture returns a gesture controller for the editor. A non-positive delay uses DefaultDebounce.
func NewGesture(editor *Editor, m Measurer, sched Scheduler, delay time.Duration) *Gesture {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Gesture{
		editor: editor,
		m:      m,
		sched:  sched,
		delay:  delay,
		log:    zap.NewNop(),
	}
}

// SetLogger sets the logger for gesture transitions.
func (g *Gesture) SetLogger(log *zap.Logger) {
	g.log = log
}

// State returns the gesture state.
func (g *Gesture) State() GestureState {
	return g.state
}

// Cursor returns the pointer affordance.
func (g *Gesture) Cursor() Cursor {
	return g.cursor
}

// PointerDown handles a press at p in display space. Hitting a layer selects it and arms the drag timer, missing all
// layers clears the selection.
func (g *Gesture) PointerDown(v Viewport, p Point) {
	g.cancel()
	q := v.ToImage(p)
	id, ok := HitTest(g.m, q, g.editor.layers)
	if !ok {
		g.state = Idle
		g.cursor = CursorMove
		g.editor.DeselectAll()
		return
	}

	layer, _ := g.editor.Layer(id)
	g.editor.SelectLayer(id)
	g.layer = id
	g.offset = q.Sub(layer.Center())
	g.state = ArmedForSelect
	g.token++
	token := g.token
	g.pending = g.sched.AfterFunc(g.delay, func() {
		g.Fire(token)
	})
	g.log.Debug("armed", zap.Int("layer", id), zap.Stringer("at", q))
}

// Fire is called by the drag timer. It starts dragging if the press of the timer is still held.
func (g *Gesture) Fire(token uint64) {
	if token != g.token || g.state != ArmedForSelect {
		return
	}
	g.pending = nil
	if _, ok := g.editor.Layer(g.layer); !ok {
		g.state = Idle
		g.cursor = CursorMove
		return
	}
	g.state = Dragging
	g.cursor = CursorGrabbing
	g.log.Debug("dragging", zap.Int("layer", g.layer))
}

// PointerMove handles pointer motion at p in display space. While dragging, the pressed layer follows the pointer,
// otherwise only the hover affordance is updated.
func (g *Gesture) PointerMove(v Viewport, p Point) {
	q := v.ToImage(p)
	switch g.state {
	case Dragging:
		c := q.Sub(g.offset)
		if !g.editor.MoveLayer(g.layer, c.X, c.Y) {
			g.reset()
		}
	case ArmedForSelect:
	default:
		if _, ok := HitTest(g.m, q, g.editor.layers); ok {
			g.cursor = CursorGrab
		} else {
			g.cursor = CursorMove
		}
	}
}

// PointerUp ends the gesture.
func (g *Gesture) PointerUp() {
	g.reset()
}

// PointerLeave ends the gesture when the pointer leaves the canvas.
func (g *Gesture) PointerLeave() {
	g.reset()
}

func (g *Gesture) reset() {
	g.cancel()
	g.state = Idle
	g.cursor = CursorMove
	g.layer = 0
	g.offset = Point{}
}

func (g *Gesture) cancel() {
	if g.pending != nil {
		g.pending.Stop()
		g.pending = nil
	}
	g.token++
}
