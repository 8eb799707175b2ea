//go:build js && wasm

package htmlapp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"syscall/js"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/htmlcanvas"
	"go.uber.org/zap"

	meme "github.com/AngadSinghLamba/meme-generator"
	"github.com/AngadSinghLamba/meme-generator/config"
	"github.com/AngadSinghLamba/meme-generator/feed"
)

// App is the browser host of the editor.
type App struct {
	cfg     config.Config
	fonts   *meme.FontStack
	editor  *meme.Editor
	gesture *meme.Gesture
	client  *feed.Client
	auth    feed.Auth
	log     *zap.Logger

	doc   js.Value
	el    map[string]js.Value
	loop  chan func()
	funcs []js.Func

	frame    bool // a redraw is scheduled
	feedURLs []js.Value
}

// element IDs in index.html
var ids = []string{
	"memeCanvas", "canvasPlaceholder", "imageInput", "textInput", "addTextBtn", "fontSizeInput", "fontSizeDisplay",
	"textColorInput", "colorValue", "textBoxesList", "layerCount", "downloadBtn", "templatesGrid", "captionInput",
	"postBtn", "authEmail", "authCode", "sendCodeBtn", "verifyCodeBtn", "signOutBtn", "authStatus", "feedList",
}

// New returns the browser host for the given document.
func New(cfg config.Config, fonts *meme.FontStack, client *feed.Client, auth feed.Auth, log *zap.Logger) *App {
	editor := meme.NewEditor(cfg.EditorOptions())
	editor.SetLogger(log.Named("editor"))

	a := &App{
		cfg:    cfg,
		fonts:  fonts,
		editor: editor,
		client: client,
		auth:   auth,
		log:    log,
		doc:    js.Global().Get("document"),
		el:     map[string]js.Value{},
		loop:   make(chan func(), 256),
	}
	for _, id := range ids {
		a.el[id] = a.doc.Call("getElementById", id)
	}
	sched := meme.ClockScheduler{Post: func(f func()) {
		a.post(func() {
			f()
			a.syncCursor()
		})
	}}
	a.gesture = meme.NewGesture(editor, fonts, sched, cfg.Debounce())
	a.gesture.SetLogger(log.Named("gesture"))
	editor.OnChange(a.changed)
	return a
}

func (a *App) post(f func()) {
	a.loop <- f
}

// on registers a DOM event listener that runs f on the event loop.
func (a *App) on(target js.Value, event string, f func(ev js.Value)) {
	if !target.Truthy() {
		a.log.Warn("missing element", zap.String("event", event))
		return
	}
	fn := js.FuncOf(func(this js.Value, args []js.Value) any {
		ev := args[0]
		if event == "pointerdown" || event == "pointermove" {
			ev.Call("preventDefault")
		}
		a.post(func() { f(ev) })
		return nil
	})
	a.funcs = append(a.funcs, fn)
	target.Call("addEventListener", event, fn)
}

// Run binds the document and processes events until ctx is canceled.
func (a *App) Run(ctx context.Context) error {
	defer func() {
		for _, fn := range a.funcs {
			fn.Release()
		}
	}()

	a.bind()
	a.renderTemplates()
	a.changed(meme.ChangeLayers | meme.ChangeStyle | meme.ChangeInput | meme.ChangeSelection)
	a.syncAuth()
	a.post(a.refreshFeed)
	a.log.Info("started", zap.String("font", a.fonts.Name()))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case f := <-a.loop:
			f()
		}
	}
}

func (a *App) bind() {
	a.on(a.el["imageInput"], "change", func(ev js.Value) {
		files := ev.Get("target").Get("files")
		if files.Get("length").Int() == 0 {
			return
		}
		file := files.Index(0)
		a.load(file.Call("arrayBuffer"), meme.ErrDecode)
	})
	a.on(a.el["textInput"], "input", func(ev js.Value) {
		a.editor.SetInput(ev.Get("target").Get("value").String())
	})
	a.on(a.el["addTextBtn"], "click", func(js.Value) {
		alert(meme.Notice(a.editor.Submit()))
	})
	a.on(a.el["fontSizeInput"], "input", func(ev js.Value) {
		size, err := strconv.ParseFloat(ev.Get("target").Get("value").String(), 64)
		if err == nil {
			a.editor.SetFontSize(size)
		}
	})
	a.on(a.el["textColorInput"], "input", func(ev js.Value) {
		if col, err := meme.ParseColor(ev.Get("target").Get("value").String()); err == nil {
			a.editor.SetColor(col)
		}
	})
	a.on(a.el["textBoxesList"], "click", func(ev js.Value) {
		action, id, ok := dataset(ev.Get("target"))
		if !ok {
			return
		}
		n, err := strconv.Atoi(id)
		if err != nil {
			return
		}
		switch action {
		case meme.ActionSelect:
			a.editor.SelectLayer(n)
		case meme.ActionEdit:
			if a.editor.BeginEdit(n) {
				a.el["textInput"].Call("focus")
			}
		case meme.ActionDelete:
			a.editor.RemoveLayer(n)
		}
	})
	a.on(a.el["templatesGrid"], "click", func(ev js.Value) {
		_, name, ok := dataset(ev.Get("target"))
		if !ok {
			return
		}
		t, ok := meme.FindTemplate(a.cfg.Templates, name)
		if !ok {
			return
		}
		a.load(js.Global().Call("fetch", t.Path), meme.ErrTemplateNotFound)
	})
	a.on(a.el["downloadBtn"], "click", func(js.Value) {
		b, err := a.editor.Export(a.fonts)
		if err != nil {
			alert(meme.Notice(err))
			return
		}
		download(a.doc, b, a.cfg.ExportFilename(), "image/png")
	})

	canvasEl := a.el["memeCanvas"]
	a.on(canvasEl, "pointerdown", func(ev js.Value) {
		if a.editor.HasImage() {
			canvasEl.Call("setPointerCapture", ev.Get("pointerId"))
			a.gesture.PointerDown(a.viewport(), a.point(ev))
			a.syncCursor()
		}
	})
	a.on(canvasEl, "pointermove", func(ev js.Value) {
		if a.editor.HasImage() {
			a.gesture.PointerMove(a.viewport(), a.point(ev))
			a.syncCursor()
		}
	})
	a.on(canvasEl, "pointerup", func(js.Value) {
		a.gesture.PointerUp()
		a.syncCursor()
	})
	a.on(canvasEl, "pointerleave", func(js.Value) {
		a.gesture.PointerLeave()
		a.syncCursor()
	})

	a.on(a.el["postBtn"], "click", func(js.Value) { a.publish() })
	a.on(a.el["sendCodeBtn"], "click", func(js.Value) { a.sendCode() })
	a.on(a.el["verifyCodeBtn"], "click", func(js.Value) { a.verifyCode() })
	a.on(a.el["signOutBtn"], "click", func(js.Value) {
		if err := a.auth.SignOut(context.Background()); err != nil {
			a.log.Error("sign out", zap.Error(err))
		}
		a.syncAuth()
		a.refreshFeed()
	})
	a.on(a.el["feedList"], "click", func(ev js.Value) {
		if action, id, ok := dataset(ev.Get("target")); ok && action == "vote" {
			a.vote(actionElement(ev.Get("target")), id)
		}
	})
}

// load decodes the bytes of a promise resolving to a Blob or Response off the event loop. A load started later
// supersedes this one.
func (a *App) load(promise js.Value, failure error) {
	load := a.editor.BeginLoad()
	go func() {
		v, err := await(promise)
		var b []byte
		if err == nil {
			if v.Get("ok").Type() == js.TypeBoolean && !v.Get("ok").Bool() {
				err = fmt.Errorf("%s: %s", v.Get("url").String(), v.Get("statusText").String())
			} else if v.Get("arrayBuffer").Type() == js.TypeFunction {
				b, err = bytesOf(v.Call("arrayBuffer"))
			} else {
				b = toBytes(v)
			}
		}
		var img meme.Image
		if err == nil {
			img, err = meme.DecodeImage(bytes.NewReader(b))
		}
		a.post(func() {
			if !a.editor.Current(load) {
				a.log.Debug("discard superseded image load", zap.Error(err))
				return
			} else if err != nil {
				a.log.Error("load image", zap.Error(err))
				alert(meme.Notice(fmt.Errorf("%w: %w", failure, err)))
				return
			}
			a.editor.FinishLoad(load, img)
		})
	}()
}

func (a *App) point(ev js.Value) meme.Point {
	rect := a.el["memeCanvas"].Call("getBoundingClientRect")
	return meme.Point{
		X: ev.Get("clientX").Float() - rect.Get("left").Float(),
		Y: ev.Get("clientY").Float() - rect.Get("top").Float(),
	}
}

func (a *App) viewport() meme.Viewport {
	rect := a.el["memeCanvas"].Call("getBoundingClientRect")
	size := a.editor.Image().Bounds().Size()
	return meme.Viewport{
		ImageW:   float64(size.X),
		ImageH:   float64(size.Y),
		DisplayW: rect.Get("width").Float(),
		DisplayH: rect.Get("height").Float(),
	}
}

func (a *App) syncCursor() {
	a.el["memeCanvas"].Get("style").Set("cursor", a.gesture.Cursor().CSS())
}

// changed projects the editor state onto the controls and schedules a redraw.
func (a *App) changed(c meme.Change) {
	if c&(meme.ChangeLayers|meme.ChangeSelection) != 0 {
		var sb strings.Builder
		if err := meme.RenderLayerListHTML(&sb, meme.LayerList(a.editor)); err != nil {
			a.log.Error("render layer list", zap.Error(err))
		}
		a.el["textBoxesList"].Set("innerHTML", sb.String())
		setText(a.el["layerCount"], strconv.Itoa(a.editor.Len()))
	}
	if c&meme.ChangeStyle != 0 {
		size := strconv.FormatFloat(a.editor.FontSize(), 'f', -1, 64)
		a.el["fontSizeInput"].Set("value", size)
		setText(a.el["fontSizeDisplay"], size)
		col := meme.FormatColor(a.editor.Color())
		a.el["textColorInput"].Set("value", strings.ToLower(col[:7]))
		setText(a.el["colorValue"], col)
	}
	if c&meme.ChangeInput != 0 {
		if input := a.el["textInput"]; input.Get("value").String() != a.editor.Input() {
			input.Set("value", a.editor.Input())
		}
		setText(a.el["addTextBtn"], a.editor.Intent().Label())
	}
	if c&meme.ChangeImage != 0 {
		setDisplay(a.el["memeCanvas"], true)
		setDisplay(a.el["canvasPlaceholder"], false)
	}
	if c.Redraw() && !a.frame && a.editor.HasImage() {
		a.frame = true
		var fn js.Func
		fn = js.FuncOf(func(js.Value, []js.Value) any {
			fn.Release()
			a.post(a.render)
			return nil
		})
		js.Global().Call("requestAnimationFrame", fn)
	}
}

// render composes the editor into an offscreen canvas and copies it onto the visible one in one step.
func (a *App) render() {
	a.frame = false
	img := a.editor.Image()
	if img == nil {
		return
	}
	size := img.Bounds().Size()
	w, h := float64(size.X), float64(size.Y)

	offscreen := a.doc.Call("createElement", "canvas")
	ctx := canvas.NewContext(htmlcanvas.New(offscreen, w, h, 1.0))
	meme.Render(ctx, a.fonts, img, a.editor.Layers())

	visible := a.el["memeCanvas"]
	if visible.Get("width").Int() != size.X || visible.Get("height").Int() != size.Y {
		visible.Set("width", size.X)
		visible.Set("height", size.Y)
	}
	ctx2d := visible.Call("getContext", "2d")
	ctx2d.Call("clearRect", 0, 0, w, h)
	ctx2d.Call("drawImage", offscreen, 0, 0)
}

func (a *App) renderTemplates() {
	grid := a.el["templatesGrid"]
	if !grid.Truthy() {
		return
	}
	grid.Set("innerHTML", "")
	for _, t := range a.cfg.Templates {
		item := a.doc.Call("createElement", "div")
		item.Set("className", "template-item")
		item.Get("dataset").Set("action", "template")
		item.Get("dataset").Set("id", t.Name)

		img := a.doc.Call("createElement", "img")
		img.Set("src", t.Path)
		img.Set("alt", t.Name)
		img.Set("className", "template-thumbnail")
		overlay := a.doc.Call("createElement", "div")
		overlay.Set("className", "template-overlay")
		name := a.doc.Call("createElement", "span")
		name.Set("className", "template-name")
		name.Set("textContent", t.Name)
		overlay.Call("appendChild", name)
		item.Call("appendChild", img)
		item.Call("appendChild", overlay)
		grid.Call("appendChild", item)
	}
}

// remote runs a feed call off the event loop with btn disabled, and posts done back to it.
func (a *App) remote(btn js.Value, call func(ctx context.Context) error, done func(error)) {
	runRemote(a.post, control(btn), call, done)
}

func (a *App) publish() {
	if a.client.Posting() {
		return
	}
	img, layers := a.editor.Image(), a.editor.Layers()
	caption := a.el["captionInput"].Get("value").String()
	a.remote(a.el["postBtn"], func(ctx context.Context) error {
		_, err := a.client.Publish(ctx, a.fonts, img, layers, caption)
		return err
	}, func(err error) {
		if errors.Is(err, feed.ErrInFlight) {
			return
		}
		alert(feed.PublishNotice(err))
		if err == nil {
			a.el["captionInput"].Set("value", "")
			a.refreshFeed()
		}
	})
}

func (a *App) vote(btn js.Value, postID string) {
	if a.client.Voting(postID) {
		return
	}
	a.remote(btn, func(ctx context.Context) error {
		_, _, err := a.client.ToggleVote(ctx, postID)
		return err
	}, func(err error) {
		alert(feed.VoteNotice(err))
		a.refreshFeed()
	})
}

func (a *App) sendCode() {
	email := a.el["authEmail"].Get("value").String()
	a.remote(a.el["sendCodeBtn"], func(ctx context.Context) error {
		return a.auth.RequestCode(ctx, email)
	}, func(err error) {
		if err != nil {
			alert(err.Error())
		}
	})
}

func (a *App) verifyCode() {
	email := a.el["authEmail"].Get("value").String()
	code := a.el["authCode"].Get("value").String()
	a.remote(a.el["verifyCodeBtn"], func(ctx context.Context) error {
		_, err := a.auth.VerifyCode(ctx, email, code)
		return err
	}, func(err error) {
		if err != nil {
			alert(err.Error())
		}
		a.syncAuth()
		a.refreshFeed()
	})
}

func (a *App) syncAuth() {
	user, ok := a.auth.CurrentUser()
	if ok {
		setText(a.el["authStatus"], user.Email)
	} else {
		setText(a.el["authStatus"], "Not signed in")
	}
	setDisplay(a.el["signOutBtn"], ok)
	setDisplay(a.el["verifyCodeBtn"], !ok)
	setDisplay(a.el["sendCodeBtn"], !ok)
}

type feedEntry struct {
	post  feed.Post
	votes int
	voted bool
}

func (a *App) refreshFeed() {
	list := a.el["feedList"]
	if !list.Truthy() {
		return
	}
	go func() {
		ctx := context.Background()
		posts, err := a.client.Feed(ctx)
		entries := make([]feedEntry, 0, len(posts))
		for _, post := range posts {
			if a.cfg.Feed.PageSize <= len(entries) {
				break
			}
			n, voted, verr := a.client.VoteState(ctx, post.ID)
			if verr != nil {
				err = verr
				break
			}
			entries = append(entries, feedEntry{post, n, voted})
		}
		a.post(func() {
			if err != nil {
				a.log.Error("load feed", zap.Error(err))
				return
			}
			a.renderFeed(list, entries)
		})
	}()
}

func (a *App) renderFeed(list js.Value, entries []feedEntry) {
	url := js.Global().Get("URL")
	for _, u := range a.feedURLs {
		url.Call("revokeObjectURL", u)
	}
	a.feedURLs = a.feedURLs[:0]

	list.Set("innerHTML", "")
	if len(entries) == 0 {
		empty := a.doc.Call("createElement", "p")
		empty.Set("className", "empty-state")
		empty.Set("textContent", "No memes yet")
		list.Call("appendChild", empty)
		return
	}
	for _, entry := range entries {
		card := a.doc.Call("createElement", "div")
		card.Set("className", "meme-card")

		src := blobURL(entry.post.Image, "image/png")
		a.feedURLs = append(a.feedURLs, src)
		img := a.doc.Call("createElement", "img")
		img.Set("className", "meme-image")
		img.Set("src", src)
		img.Set("alt", entry.post.Caption)
		card.Call("appendChild", img)

		info := a.doc.Call("createElement", "div")
		info.Set("className", "meme-info")
		author := a.doc.Call("createElement", "div")
		author.Set("className", "meme-author")
		author.Set("textContent", entry.post.AuthorEmail)
		info.Call("appendChild", author)
		if entry.post.Caption != "" {
			caption := a.doc.Call("createElement", "div")
			caption.Set("className", "meme-caption")
			caption.Set("textContent", entry.post.Caption)
			info.Call("appendChild", caption)
		}

		btn := a.doc.Call("createElement", "button")
		btn.Set("type", "button")
		btn.Set("className", "upvote-button")
		if entry.voted {
			btn.Get("classList").Call("add", "upvoted")
		}
		btn.Get("dataset").Set("action", "vote")
		btn.Get("dataset").Set("id", entry.post.ID)
		btn.Set("textContent", "▲ "+strconv.Itoa(entry.votes))
		info.Call("appendChild", btn)

		card.Call("appendChild", info)
		list.Call("appendChild", card)
	}
}
