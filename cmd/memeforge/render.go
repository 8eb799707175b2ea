package main

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/tdewolff/argp"
	"go.uber.org/zap"

	meme "github.com/AngadSinghLamba/meme-generator"
	"github.com/AngadSinghLamba/meme-generator/logger"
)

type Render struct {
	Config string `short:"c" desc:"Configuration file"`
	Level  string `desc:"Log level"`
	Input  string `short:"i" desc:"Base image"`
	Layers string `short:"l" desc:"Layers file (TOML)"`
	Output string `short:"o" desc:"Output PNG file, defaults to the configured filename"`
}

// LayersFile is the TOML file with the layers of a headless render.
type LayersFile struct {
	Layers []LayerEntry `toml:"layer"`
}

// LayerEntry is a layer in a LayersFile. Missing fields take the editor defaults, a layer is centered on the image
// unless X and Y are given.
type LayerEntry struct {
	Text     string   `toml:"text"`
	X        *float64 `toml:"x"`
	Y        *float64 `toml:"y"`
	FontSize float64  `toml:"font_size"`
	Color    string   `toml:"color"`
}

// ParseLayers reads a layers file.
func ParseLayers(data []byte) ([]LayerEntry, error) {
	var f LayersFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return f.Layers, nil
}

// ApplyLayers adds the layers to an editor in order, through the same operations as the interactive editor.
func ApplyLayers(e *meme.Editor, entries []LayerEntry) error {
	opts := e.Options()
	for i, entry := range entries {
		size := opts.FontSize
		if entry.FontSize != 0.0 {
			size = entry.FontSize
		}
		e.SetFontSize(size)

		col := opts.Color
		if entry.Color != "" {
			var err error
			if col, err = meme.ParseColor(entry.Color); err != nil {
				return fmt.Errorf("layer %d: %w", i+1, err)
			}
		}
		e.SetColor(col)

		layer, err := e.AddLayer(entry.Text)
		if err != nil {
			return fmt.Errorf("layer %d: %w", i+1, err)
		}
		x, y := layer.X, layer.Y
		if entry.X != nil {
			x = *entry.X
		}
		if entry.Y != nil {
			y = *entry.Y
		}
		e.MoveLayer(layer.ID, x, y)
	}
	return nil
}

func (cmd *Render) Run() error {
	if cmd.Input == "" || cmd.Layers == "" {
		return argp.ShowUsage
	}
	cfg, ctx, err := setup(cmd.Config, cmd.Level)
	if err != nil {
		return fail(nil, "setup", err)
	}
	log := logger.L(ctx)

	base, err := meme.LoadImageFile(cmd.Input)
	if err != nil {
		return fail(ctx, "load image", err)
	}
	data, err := os.ReadFile(cmd.Layers)
	if err != nil {
		return fail(ctx, "read layers", err)
	}
	entries, err := ParseLayers(data)
	if err != nil {
		return fail(ctx, "parse layers", fmt.Errorf("%s: %w", cmd.Layers, err))
	}

	e := meme.NewEditor(cfg.EditorOptions())
	e.SetLogger(log.Named("editor"))
	e.SetImage(base)
	if err := ApplyLayers(e, entries); err != nil {
		return fail(ctx, "apply layers", err)
	}

	fonts, err := cfg.FontStack()
	if err != nil {
		return fail(ctx, "load fonts", err)
	}
	output := cmd.Output
	if output == "" {
		output = cfg.ExportFilename()
	}
	if err := meme.ExportFile(output, fonts, e.Image(), e.Layers()); err != nil {
		log.Error("export", zap.String("notice", meme.Notice(err)), zap.Error(err))
		return err
	}
	size := base.Bounds().Size()
	log.Info("exported",
		zap.String("path", output),
		zap.String("font", fonts.Name()),
		zap.Int("layers", e.Len()),
		zap.Int("width", size.X),
		zap.Int("height", size.Y))
	return nil
}
