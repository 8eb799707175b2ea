//go:build js && wasm

//go:generate sh -c "GOOS=js GOARCH=wasm go build -o ../../web/memeforge.wasm ."
//go:generate sh -c "cp \"$(go env GOROOT)/lib/wasm/wasm_exec.js\" ../../web/"

package main

import (
	"context"
	"fmt"
	"syscall/js"

	"go.uber.org/zap"

	meme "github.com/AngadSinghLamba/meme-generator"
	"github.com/AngadSinghLamba/meme-generator/config"
	"github.com/AngadSinghLamba/meme-generator/feed"
	"github.com/AngadSinghLamba/meme-generator/htmlapp"
	"github.com/AngadSinghLamba/meme-generator/logger"
)

func main() {
	cfg := config.Default()
	log, err := logger.New(cfg.LogLevel())
	if err != nil {
		panic(err)
	}
	defer log.Sync() //nolint:errcheck
	log = log.With(zap.String("app", config.AppID))
	zap.ReplaceGlobals(log)

	// system fonts are out of reach of the browser sandbox
	fonts, err := meme.BundledFontStack()
	if err != nil {
		log.Fatal("load fonts", zap.Error(err))
	}

	auth := feed.NewMemoryAuth(func(email, code string) {
		js.Global().Call("alert", fmt.Sprintf("Your sign-in code for %s is %s", email, code))
	})
	client := feed.NewClient(feed.NewMemoryStore(), auth, log.Named("feed"))

	ctx := logger.NewContext(context.Background(), log)
	app := htmlapp.New(cfg, fonts, client, auth, log)
	if err := app.Run(ctx); err != nil {
		logger.L(ctx).Error("run", zap.Error(err))
	}
}
