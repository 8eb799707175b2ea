package main

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/pkg/browser"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
	"github.com/tdewolff/minify/v2/svg"
	"go.uber.org/zap"

	"github.com/AngadSinghLamba/meme-generator/logger"
)

type Serve struct {
	Config   string `short:"c" desc:"Configuration file"`
	Level    string `desc:"Log level"`
	Addr     string `short:"a" desc:"Listen address"`
	Root     string `short:"r" desc:"Directory with index.html, the wasm binary and the assets"`
	Open     bool   `desc:"Open the editor in the browser"`
	NoMinify bool   `desc:"Serve files as they are"`
}

// NewMinifier returns a minifier for the static files of the browser editor.
func NewMinifier() *minify.M {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/html", html.Minify)
	m.AddFunc("image/svg+xml", svg.Minify)
	m.AddFuncRegexp(regexp.MustCompile("^(application|text)/(x-)?(java|ecma)script$"), js.Minify)
	return m
}

// NewHandler serves the files in root. The wasm binary is served with its media type so that it can be compiled
// while streaming.
func NewHandler(root string, minified bool) http.Handler {
	files := http.FileServer(http.Dir(root))
	var h http.Handler = files
	if minified {
		h = NewMinifier().Middleware(files)
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, ".wasm") {
			w.Header().Set("Content-Type", "application/wasm")
			files.ServeHTTP(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})
}

func (cmd *Serve) Run() error {
	cfg, ctx, err := setup(cmd.Config, cmd.Level)
	if err != nil {
		return fail(nil, "setup", err)
	}
	log := logger.L(ctx)

	addr, root := cfg.Serve.Addr, cfg.Serve.Root
	if cmd.Addr != "" {
		addr = cmd.Addr
	}
	if cmd.Root != "" {
		root = cmd.Root
	}
	minified := cfg.Serve.Minify && !cmd.NoMinify

	url := "http://" + addr
	if strings.HasPrefix(addr, ":") {
		url = "http://localhost" + addr
	}
	log.Info("listening", zap.String("url", url), zap.String("root", root), zap.Bool("minify", minified))
	if cmd.Open || cfg.Serve.Open {
		if err := browser.OpenURL(url); err != nil {
			log.Warn("open browser", zap.Error(err))
		}
	}
	return http.ListenAndServe(addr, NewHandler(root, minified))
}
