// Package desktop runs the editor in a window. Keyboard input fills the text field, the mouse selects and drags
// layers.
//
//	Enter            add or update the text
//	Shift+Enter      new line
//	F2               edit the selected layer
//	Delete           remove the selected layer
//	Escape           deselect
//	PageUp/PageDown  font size
//	Ctrl+S           export
package desktop

import (
	"image"
	"strings"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	meme "github.com/AngadSinghLamba/meme-generator"
	"github.com/AngadSinghLamba/meme-generator/config"
)

const fontSizeStep = 4.0

// Game is the ebiten game of the editor. Timers post to it and are run at the start of the next tick.
type Game struct {
	editor  *meme.Editor
	gesture *meme.Gesture
	fonts   *meme.FontStack
	log     *zap.Logger

	output string
	status string
	loop   chan func()

	raster  *image.RGBA
	preview *ebiten.Image
	dirty   bool

	screenW, screenH int
	inside           bool
	cursor           meme.Cursor
}

// NewGame returns a game editing base. Exports are written to output.
func NewGame(cfg config.Config, fonts *meme.FontStack, base image.Image, output string, log *zap.Logger) *Game {
	g := &Game{
		fonts:  fonts,
		log:    log,
		output: output,
		loop:   make(chan func(), 16),
		dirty:  true,
	}
	g.editor = meme.NewEditor(cfg.EditorOptions())
	g.editor.SetLogger(log.Named("editor"))
	g.editor.OnChange(func(c meme.Change) {
		if c.Redraw() {
			g.dirty = true
		}
	})
	g.editor.SetImage(base)

	sched := meme.ClockScheduler{Post: func(f func()) { g.loop <- f }}
	g.gesture = meme.NewGesture(g.editor, fonts, sched, cfg.Debounce())
	g.gesture.SetLogger(log.Named("gesture"))
	return g
}

// Editor returns the editor of the game.
func (g *Game) Editor() *meme.Editor {
	return g.editor
}

// Layout implements ebiten.Game. The image is stretched to the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.screenW, g.screenH = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

func (g *Game) viewport() meme.Viewport {
	size := g.editor.Image().Bounds().Size()
	return meme.Viewport{
		ImageW:   float64(size.X),
		ImageH:   float64(size.Y),
		DisplayW: float64(g.screenW),
		DisplayH: float64(g.screenH),
	}
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	for {
		select {
		case f := <-g.loop:
			f()
			continue
		default:
		}
		break
	}

	g.updatePointer()
	g.updateKeys()
	if g.cursor != g.gesture.Cursor() {
		g.cursor = g.gesture.Cursor()
		ebiten.SetCursorShape(cursorShape(g.cursor))
	}
	return nil
}

func cursorShape(c meme.Cursor) ebiten.CursorShapeType {
	switch c {
	case meme.CursorGrab:
		return ebiten.CursorShapePointer
	case meme.CursorGrabbing:
		return ebiten.CursorShapeMove
	}
	return ebiten.CursorShapeDefault
}

func (g *Game) updatePointer() {
	x, y := ebiten.CursorPosition()
	p := meme.Point{X: float64(x), Y: float64(y)}
	v := g.viewport()

	inside := 0 <= x && x < g.screenW && 0 <= y && y < g.screenH
	if g.inside && !inside {
		g.gesture.PointerLeave()
	}
	g.inside = inside
	if !inside {
		return
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.gesture.PointerDown(v, p)
	} else if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.gesture.PointerUp()
	} else {
		g.gesture.PointerMove(v, p)
	}
}

func (g *Game) updateKeys() {
	input := g.editor.Input()
	if chars := ebiten.AppendInputChars(nil); 0 < len(chars) {
		input += string(chars)
	}
	if repeating(ebiten.KeyBackspace) && 0 < len(input) {
		_, n := utf8.DecodeLastRuneInString(input)
		input = input[:len(input)-n]
	}
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	enter := inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter)
	if enter && shift {
		input += "\n"
	}
	g.editor.SetInput(input)

	switch {
	case enter && !shift:
		g.notify(g.editor.Submit())
	case inpututil.IsKeyJustPressed(ebiten.KeyF2):
		if layer, ok := g.editor.Selected(); ok {
			g.editor.BeginEdit(layer.ID)
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyDelete):
		if layer, ok := g.editor.Selected(); ok {
			g.editor.RemoveLayer(layer.ID)
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		g.editor.DeselectAll()
	case repeating(ebiten.KeyPageUp):
		g.editor.SetFontSize(g.editor.FontSize() + fontSizeStep)
	case repeating(ebiten.KeyPageDown):
		g.editor.SetFontSize(g.editor.FontSize() - fontSizeStep)
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.export()
	}
}

// repeating returns true when a key is pressed and periodically while it is held.
func repeating(key ebiten.Key) bool {
	d := inpututil.KeyPressDuration(key)
	return d == 1 || (30 <= d && d%4 == 0)
}

func (g *Game) export() {
	err := meme.ExportFile(g.output, g.fonts, g.editor.Image(), g.editor.Layers())
	if err != nil {
		g.log.Error("export", zap.String("path", g.output), zap.Error(err))
		g.notify(err)
		return
	}
	g.log.Info("exported", zap.String("path", g.output))
	g.status = "saved " + g.output
}

func (g *Game) notify(err error) {
	if err != nil {
		g.status = meme.Notice(err)
	}
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.dirty {
		g.redraw()
	}
	if g.preview != nil {
		b := g.preview.Bounds()
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(float64(g.screenW)/float64(b.Dx()), float64(g.screenH)/float64(b.Dy()))
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(g.preview, op)
	}

	var sb strings.Builder
	sb.WriteString(g.editor.Intent().Label())
	sb.WriteString(": ")
	sb.WriteString(strings.ReplaceAll(g.editor.Input(), "\n", "⏎"))
	if layer, ok := g.editor.Selected(); ok {
		sb.WriteString("\nselected: ")
		sb.WriteString(strings.ReplaceAll(layer.Text, "\n", " / "))
	}
	if g.status != "" {
		sb.WriteString("\n")
		sb.WriteString(g.status)
	}
	ebitenutil.DebugPrint(screen, sb.String())
}

// redraw rasterizes the composition into the preview texture.
func (g *Game) redraw() {
	g.dirty = false
	base := g.editor.Image()
	if base == nil {
		return
	}
	size := base.Bounds().Size()
	if g.raster == nil || g.raster.Bounds().Size() != size {
		g.raster = image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
		if g.preview != nil {
			g.preview.Deallocate()
		}
		g.preview = ebiten.NewImage(size.X, size.Y)
	}
	meme.RasterizeInto(g.raster, g.fonts, base, g.editor.Layers())
	g.preview.WritePixels(g.raster.Pix)
}
