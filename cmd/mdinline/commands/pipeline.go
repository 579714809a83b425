package commands

import (
	"cmp"
	"context"
	"log/slog"
	"net/url"
	"os"

	"git.home.luguber.info/inful/mdinline/internal/config"
	"git.home.luguber.info/inful/mdinline/internal/document"
	ferrors "git.home.luguber.info/inful/mdinline/internal/foundation/errors"
	"git.home.luguber.info/inful/mdinline/internal/imageload"
	"git.home.luguber.info/inful/mdinline/internal/inline"
	"git.home.luguber.info/inful/mdinline/internal/metrics"
	"git.home.luguber.info/inful/mdinline/internal/render"
	"git.home.luguber.info/inful/mdinline/internal/theme"
)

// engine wires the resolver and renderer for one document.
type engine struct {
	resolver *imageload.Resolver
	base     render.Context
}

func newEngine(cfg *config.Config, doc *document.Document, recorder metrics.Recorder, logger *slog.Logger) (*engine, error) {
	linkBase, err := parseBase("render.base_url", cmp.Or(doc.Meta.BaseURL, cfg.Render.BaseURL))
	if err != nil {
		return nil, err
	}
	imageBase, err := parseBase("render.image_base_url", cmp.Or(doc.Meta.ImageBaseURL, cfg.Render.ImageBaseURL))
	if err != nil {
		return nil, err
	}
	if imageBase == nil {
		imageBase = linkBase
	}

	styles, err := theme.FromConfig(cfg.Theme)
	if err != nil {
		return nil, err
	}
	attrs, err := theme.BaseAttributes(cfg.Theme)
	if err != nil {
		return nil, err
	}

	assets := os.DirFS(cmp.Or(cfg.Images.AssetDir, doc.Dir()))
	fetcher := imageload.NewFetcher(cfg.Images, assets, recorder, logger)
	resolver := imageload.NewResolver(fetcher,
		imageload.WithBaseURL(imageBase),
		imageload.WithMaxConcurrent(cfg.Images.MaxConcurrent),
		imageload.WithRecorder(recorder),
		imageload.WithLogger(logger),
	)

	return &engine{
		resolver: resolver,
		base: render.Context{
			BaseURL:    linkBase,
			Styles:     styles,
			Attributes: attrs,
		},
	}, nil
}

// renderContext returns the render context for a set of resolved images.
func (e *engine) renderContext(images render.Images) render.Context {
	rc := e.base
	rc.Images = images
	return rc
}

// renderBlocks resolves the images of all blocks in one pass and renders
// each block.
func (e *engine) renderBlocks(ctx context.Context, blocks [][]inline.Node) ([][]render.Run, render.Images, error) {
	images, err := e.resolver.Resolve(ctx, document.Join(blocks))
	if err != nil {
		return nil, nil, err
	}
	rc := e.renderContext(images)
	out := make([][]render.Run, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, render.Render(b, rc))
	}
	return out, images, nil
}

func parseBase(field, raw string) (*url.URL, error) {
	if raw == "" {
		return nil, nil
	}
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() {
		return nil, ferrors.ValidationError("base URL must be absolute").
			WithCause(err).
			WithContext("field", field).
			WithContext("value", raw).
			Build()
	}
	return u, nil
}
