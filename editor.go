package meme

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"go.uber.org/zap"
)

// Intent is what the add/update control does when submitted.
type Intent int

// see Intent
const (
	IntentCreate Intent = iota
	IntentCommitEdit
)

func (intent Intent) String() string {
	switch intent {
	case IntentCreate:
		return "create"
	case IntentCommitEdit:
		return "commit-edit"
	}
	return fmt.Sprintf("Intent(%d)", int(intent))
}

// Label returns the caption of the add/update control.
func (intent Intent) Label() string {
	if intent == IntentCommitEdit {
		return "Update Text"
	}
	return "Add Text to Canvas"
}

// Change is a bitmask describing what part of the editor state changed.
type Change int

// see Change
const (
	ChangeImage Change = 1 << iota
	ChangeLayers
	ChangeSelection
	ChangeStyle
	ChangeInput
)

// Redraw returns true if the change affects the composed image.
func (c Change) Redraw() bool {
	return c&(ChangeImage|ChangeLayers) != 0
}

// Options are the ambient style defaults and bounds of the editor.
type Options struct {
	FontSizeMin, FontSizeMax float64
	FontSize                 float64
	Color                    color.RGBA
}

// DefaultOptions are a font size of 40 within [20,200] and white text.
var DefaultOptions = Options{
	FontSizeMin: 20.0,
	FontSizeMax: 200.0,
	FontSize:    40.0,
	Color:       DefaultColor,
}

// ClampFontSize bounds size to [FontSizeMin,FontSizeMax].
func (opts Options) ClampFontSize(size float64) float64 {
	if math.IsNaN(size) {
		return opts.FontSize
	}
	return math.Max(opts.FontSizeMin, math.Min(opts.FontSizeMax, size))
}

// Load is an image load in progress, see Editor.BeginLoad.
type Load struct {
	gen uint64
}

// Editor owns the composition: the base image, the ordered text layers, the selection, the ambient style and the
// text input buffer of the add/update control. Only the selection's ID is kept, and it is cleared whenever that layer
// is removed. Editor is not safe for concurrent use, hosts confine it to a single event loop.
type Editor struct {
	opts Options
	log  *zap.Logger

	image image.Image
	loads uint64

	layers   []TextLayer
	selected int // 0 if none, IDs start at 1
	nextID   int

	fontSize float64
	color    color.RGBA
	input    string
	intent   Intent

	listeners []func(Change)
}

// NewEditor returns an editor without image or layers.
func NewEditor(opts Options) *Editor {
	if opts.FontSizeMax < opts.FontSizeMin {
		opts.FontSizeMin, opts.FontSizeMax = opts.FontSizeMax, opts.FontSizeMin
	}
	if opts.Color == (color.RGBA{}) {
		opts.Color = DefaultColor
	}
	opts.FontSize = opts.ClampFontSize(opts.FontSize)
	return &Editor{
		opts:     opts,
		log:      zap.NewNop(),
		nextID:   1,
		fontSize: opts.FontSize,
		color:    opts.Color,
	}
}

// SetLogger sets the logger for state changes.
func (e *Editor) SetLogger(log *zap.Logger) {
	e.log = log
}

// Options returns the options the editor was created with.
func (e *Editor) Options() Options {
	return e.opts
}

// OnChange registers a listener that is called after every state change, with the state already updated.
func (e *Editor) OnChange(f func(Change)) {
	e.listeners = append(e.listeners, f)
}

func (e *Editor) notify(c Change) {
	if c == 0 {
		return
	}
	for _, f := range e.listeners {
		f(c)
	}
}

// Image returns the base image or nil.
func (e *Editor) Image() image.Image {
	return e.image
}

// HasImage returns true if a base image is loaded.
func (e *Editor) HasImage() bool {
	return e.image != nil
}

// SetImage replaces the base image. Existing layers are kept as they are, their coordinates are not rescaled.
func (e *Editor) SetImage(img image.Image) {
	if img == nil {
		return
	}
	e.image = img
	size := img.Bounds().Size()
	e.log.Debug("set image", zap.Int("width", size.X), zap.Int("height", size.Y), zap.Int("layers", len(e.layers)))
	e.notify(ChangeImage)
}

// BeginLoad starts an asynchronous image load. Starting another load supersedes this one.
func (e *Editor) BeginLoad() Load {
	e.loads++
	return Load{e.loads}
}

// Current returns false if a later load was started after load.
func (e *Editor) Current(load Load) bool {
	return load.gen == e.loads
}

// FinishLoad installs the decoded image of a load, unless a later load was started in the meantime. It returns
// whether the image was installed.
func (e *Editor) FinishLoad(load Load, img image.Image) bool {
	if !e.Current(load) {
		e.log.Debug("discard superseded image load", zap.Uint64("load", load.gen), zap.Uint64("latest", e.loads))
		return false
	}
	e.SetImage(img)
	return img != nil
}

// Layers returns a copy of the layers in z-order.
func (e *Editor) Layers() []TextLayer {
	return append([]TextLayer{}, e.layers...)
}

// Len returns the number of layers.
func (e *Editor) Len() int {
	return len(e.layers)
}

// Layer returns the layer with the given ID.
func (e *Editor) Layer(id int) (TextLayer, bool) {
	if i := indexLayer(e.layers, id); i != -1 {
		return e.layers[i], true
	}
	return TextLayer{}, false
}

// Selected returns the selected layer.
func (e *Editor) Selected() (TextLayer, bool) {
	if e.selected == 0 {
		return TextLayer{}, false
	}
	return e.Layer(e.selected)
}

// FontSize returns the ambient font size.
func (e *Editor) FontSize() float64 {
	return e.fontSize
}

// Color returns the ambient color.
func (e *Editor) Color() color.RGBA {
	return e.color
}

// Input returns the text input buffer.
func (e *Editor) Input() string {
	return e.input
}

// Intent returns what Submit will do.
func (e *Editor) Intent() Intent {
	return e.intent
}

// SetInput replaces the text input buffer.
func (e *Editor) SetInput(s string) {
	if s == e.input {
		return
	}
	e.input = s
	e.notify(ChangeInput)
}

// AddLayer appends a layer with the ambient style at the center of the image and clears the text input. It fails
// with ErrNoImage when no image is loaded.
func (e *Editor) AddLayer(text string) (TextLayer, error) {
	if e.image == nil {
		return TextLayer{}, ErrNoImage
	}
	bounds := e.image.Bounds()
	layer := TextLayer{
		ID:           e.nextID,
		Text:         text,
		OriginalText: text,
		X:            float64(bounds.Dx()) / 2.0,
		Y:            float64(bounds.Dy()) / 2.0,
		FontSize:     e.fontSize,
		Color:        e.color,
	}
	e.nextID++
	e.layers = append(e.layers, layer)

	c := ChangeLayers
	if e.input != "" {
		e.input = ""
		c |= ChangeInput
	}
	e.log.Debug("add layer", zap.Int("layer", layer.ID))
	e.notify(c)
	return layer, nil
}

// UpdateLayer sets the text of a layer. It returns false if the layer does not exist.
func (e *Editor) UpdateLayer(id int, text string) bool {
	i := indexLayer(e.layers, id)
	if i == -1 {
		return false
	}
	e.layers[i].Text = text
	e.layers[i].OriginalText = text
	e.log.Debug("update layer", zap.Int("layer", id))
	e.notify(ChangeLayers)
	return true
}

// MoveLayer sets the center of a layer. It returns false if the layer does not exist.
func (e *Editor) MoveLayer(id int, x, y float64) bool {
	i := indexLayer(e.layers, id)
	if i == -1 {
		return false
	}
	e.layers[i].X = x
	e.layers[i].Y = y
	e.notify(ChangeLayers)
	return true
}

// SetFontSize sets the ambient font size, bounded to the options, and that of the selected layer if any.
func (e *Editor) SetFontSize(size float64) {
	e.fontSize = e.opts.ClampFontSize(size)
	c := ChangeStyle
	if i := indexLayer(e.layers, e.selected); i != -1 {
		e.layers[i].FontSize = e.fontSize
		c |= ChangeLayers
	}
	e.notify(c)
}

// SetColor sets the ambient color and that of the selected layer if any.
func (e *Editor) SetColor(col color.RGBA) {
	e.color = col
	c := ChangeStyle
	if i := indexLayer(e.layers, e.selected); i != -1 {
		e.layers[i].Color = col
		c |= ChangeLayers
	}
	e.notify(c)
}

// RemoveLayer deletes a layer and clears the selection if it was selected. It returns false if the layer does not
// exist.
func (e *Editor) RemoveLayer(id int) bool {
	i := indexLayer(e.layers, id)
	if i == -1 {
		return false
	}
	e.layers = append(e.layers[:i], e.layers[i+1:]...)
	c := ChangeLayers
	if e.selected == id {
		c |= e.deselect()
	}
	e.log.Debug("remove layer", zap.Int("layer", id))
	e.notify(c)
	return true
}

// SelectLayer selects a layer and copies its style into the ambient style. Selecting another layer than the one
// being edited leaves edit mode. It returns false if the layer does not exist.
func (e *Editor) SelectLayer(id int) bool {
	i := indexLayer(e.layers, id)
	if i == -1 {
		return false
	}
	c := ChangeStyle
	if e.selected != id {
		c |= ChangeSelection
		if e.intent == IntentCommitEdit {
			e.intent = IntentCreate
			c |= ChangeInput
		}
	}
	e.selected = id
	e.fontSize = e.layers[i].FontSize
	e.color = e.layers[i].Fill()
	e.notify(c)
	return true
}

// DeselectAll clears the selection and leaves edit mode.
func (e *Editor) DeselectAll() {
	e.notify(e.deselect())
}

func (e *Editor) deselect() Change {
	var c Change
	if e.selected != 0 {
		e.selected = 0
		c |= ChangeSelection
	}
	if e.intent == IntentCommitEdit {
		e.intent = IntentCreate
		c |= ChangeInput
	}
	return c
}

// BeginEdit selects a layer, fills the text input with its original text and switches Submit to commit the edit.
// It returns false if the layer does not exist.
func (e *Editor) BeginEdit(id int) bool {
	if !e.SelectLayer(id) {
		return false
	}
	layer, _ := e.Layer(id)
	e.input = layer.OriginalText
	if e.input == "" {
		e.input = layer.Text
	}
	e.intent = IntentCommitEdit
	e.notify(ChangeInput)
	return true
}

// Submit performs the add/update control: in edit mode it commits the trimmed input to the selected layer and
// leaves edit mode, otherwise it adds a new layer. Empty input is ignored. It fails with ErrNoImage when no image is
// loaded.
func (e *Editor) Submit() error {
	if e.image == nil {
		return ErrNoImage
	}
	text := strings.TrimSpace(e.input)
	if text == "" {
		return nil
	}

	if e.intent == IntentCommitEdit {
		if i := indexLayer(e.layers, e.selected); i != -1 {
			e.layers[i].Text = text
			e.layers[i].OriginalText = text
			e.log.Debug("commit edit", zap.Int("layer", e.selected))
			e.input = ""
			e.notify(ChangeLayers | ChangeInput | e.deselect())
			return nil
		}
		e.intent = IntentCreate
	}
	_, err := e.AddLayer(text)
	return err
}

// Export returns the composition as PNG, see Export.
func (e *Editor) Export(fonts *FontStack) ([]byte, error) {
	return Export(fonts, e.image, e.layers)
}
