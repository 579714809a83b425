package commands

import (
	"context"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/mdinline/internal/config"
	"git.home.luguber.info/inful/mdinline/internal/document"
	ferrors "git.home.luguber.info/inful/mdinline/internal/foundation/errors"
	"git.home.luguber.info/inful/mdinline/internal/logfields"
	"git.home.luguber.info/inful/mdinline/internal/metrics"
)

// RenderCmd implements the 'render' command.
type RenderCmd struct {
	File   string `arg:"" type:"existingfile" help:"Markdown file to render"`
	Format string `short:"f" name:"format" help:"Output format (text, json, yaml). Defaults to render.format from the config."`
	Color  string `name:"color" default:"auto" enum:"auto,always,never" help:"Colorize text output (auto, always, never)"`
}

func (r *RenderCmd) Run(g *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	return r.render(ctx, g, cfg)
}

func (r *RenderCmd) render(ctx context.Context, g *Global, cfg *config.Config) error {
	format, err := outputFormat(r.Format, cfg)
	if err != nil {
		return err
	}
	p, err := newPrinter(g.out(), format, r.Color)
	if err != nil {
		return err
	}

	doc, err := document.Load(r.File)
	if err != nil {
		return err
	}
	logger := g.logger()
	eng, err := newEngine(cfg, doc, metrics.NoopRecorder{}, logger)
	if err != nil {
		return err
	}

	blocks, images, err := eng.renderBlocks(ctx, doc.Blocks)
	if err != nil {
		return err
	}
	logger.Debug("Rendered document",
		logfields.File(r.File),
		logfields.Count(len(blocks)),
		logfields.Resolved(len(images)))

	return p.document(newDocumentView(r.File, doc.Meta.Title, 0, images, blocks))
}

// outputFormat returns the --format flag when set, else the configured
// format.
func outputFormat(flag string, cfg *config.Config) (config.OutputFormat, error) {
	if flag == "" {
		return cfg.Render.Format, nil
	}
	f, err := config.ParseOutputFormat(flag)
	if err != nil {
		return "", ferrors.ValidationError("invalid output format").
			WithCause(err).
			WithContext("value", flag).
			Build()
	}
	return f, nil
}
