package main

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tdewolff/argp"
	"go.uber.org/zap"

	meme "github.com/AngadSinghLamba/meme-generator"
	"github.com/AngadSinghLamba/meme-generator/config"
	"github.com/AngadSinghLamba/meme-generator/desktop"
	"github.com/AngadSinghLamba/meme-generator/logger"
)

type Desktop struct {
	Config string `short:"c" desc:"Configuration file"`
	Level  string `desc:"Log level"`
	Output string `short:"o" desc:"Export file, defaults to the configured filename"`
	Input  string `index:"0" desc:"Base image"`
}

func main() {
	cmd := argp.NewCmd(&Desktop{}, "Meme editor window")
	cmd.Parse()
}

func (cmd *Desktop) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}
	cfg, err := config.Load(cmd.Config)
	if err != nil {
		return err
	}
	level := cmd.Level
	if level == "" {
		level = cfg.LogLevel()
	}
	log, err := logger.New(level)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck
	zap.ReplaceGlobals(log)

	base, err := meme.LoadImageFile(cmd.Input)
	if err != nil {
		log.Error("load image", zap.String("path", cmd.Input), zap.Error(err))
		return err
	}
	fonts, err := cfg.FontStack()
	if err != nil {
		log.Error("load fonts", zap.Error(err))
		return err
	}
	output := cmd.Output
	if output == "" {
		output = cfg.ExportFilename()
	}

	size := base.Bounds().Size()
	w, h := fitWindow(size.X, size.Y, 1024)
	ebiten.SetWindowTitle(fmt.Sprintf("Meme Generator - %s", cmd.Input))
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	game := desktop.NewGame(cfg, fonts, base.Image, output, log.Named("desktop"))
	if err := ebiten.RunGame(game); err != nil {
		log.Error("run", zap.Error(err))
		os.Exit(1)
	}
	return nil
}

// fitWindow scales w×h down so that neither side exceeds max.
func fitWindow(w, h, max int) (int, int) {
	if w <= max && h <= max {
		return w, h
	}
	if h < w {
		return max, h * max / w
	}
	return w * max / h, max
}
