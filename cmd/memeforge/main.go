package main

import (
	"context"
	"fmt"
	"os"

	"github.com/tdewolff/argp"
	"go.uber.org/zap"

	"github.com/AngadSinghLamba/meme-generator/config"
	"github.com/AngadSinghLamba/meme-generator/logger"
)

type Root struct{}

func main() {
	root := argp.NewCmd(&Root{}, "Meme generator toolkit")
	root.AddCmd(&Render{}, "render", "Compose text layers over an image and export a PNG")
	root.AddCmd(&Serve{}, "serve", "Serve the browser editor")
	root.AddCmd(&Templates{}, "templates", "List and check the template images")
	root.Parse()
	root.PrintHelp()
}

func (cmd *Root) Run() error {
	return argp.ShowUsage
}

// setup loads the configuration and returns a context carrying a logger at the configured level.
func setup(path, level string) (config.Config, context.Context, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, nil, err
	}
	if level == "" {
		level = cfg.LogLevel()
	}
	l, err := logger.New(level)
	if err != nil {
		return config.Config{}, nil, err
	}
	zap.ReplaceGlobals(l)
	return cfg, logger.NewContext(context.Background(), l), nil
}

func fail(ctx context.Context, msg string, err error) error {
	if ctx != nil {
		logger.L(ctx).Error(msg, zap.Error(err))
	} else {
		fmt.Fprintln(os.Stderr, msg+":", err)
	}
	return err
}
