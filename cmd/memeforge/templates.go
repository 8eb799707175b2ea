package main

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	meme "github.com/AngadSinghLamba/meme-generator"
	"github.com/AngadSinghLamba/meme-generator/logger"
)

type Templates struct {
	Config string `short:"c" desc:"Configuration file"`
	Level  string `desc:"Log level"`
	Root   string `short:"r" desc:"Asset root, defaults to the serve root"`
	Thumbs string `short:"t" desc:"Write PNG thumbnails to this directory"`
	Size   int    `short:"s" default:"160" desc:"Thumbnail size"`
}

func (cmd *Templates) Run() error {
	cfg, ctx, err := setup(cmd.Config, cmd.Level)
	if err != nil {
		return fail(nil, "setup", err)
	}
	log := logger.L(ctx)

	root := cmd.Root
	if root == "" {
		root = cfg.Serve.Root
	}
	if cmd.Thumbs != "" {
		if err := os.MkdirAll(cmd.Thumbs, 0755); err != nil {
			return fail(ctx, "thumbnails", err)
		}
	}

	fsys := os.DirFS(root)
	failed := 0
	for _, t := range cfg.Templates {
		img, err := meme.LoadTemplate(fsys, t)
		if err != nil {
			failed++
			log.Error("template", zap.String("name", t.Name), zap.Error(err))
			fmt.Printf("%-20s %s  %s\n", t.Name, t.Path, meme.Notice(err))
			continue
		}
		size := img.Bounds().Size()
		fmt.Printf("%-20s %s  %dx%d %s\n", t.Name, t.Path, size.X, size.Y, img.Format)

		if cmd.Thumbs != "" {
			name := strings.ToLower(strings.ReplaceAll(t.Name, " ", "-")) + ".png"
			if err := writePNG(filepath.Join(cmd.Thumbs, name), meme.Thumbnail(img, cmd.Size)); err != nil {
				return fail(ctx, "thumbnail", err)
			}
		}
	}
	if failed != 0 {
		return fmt.Errorf("%d of %d templates failed", failed, len(cfg.Templates))
	}
	return nil
}

func writePNG(filename string, img *image.RGBA) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
