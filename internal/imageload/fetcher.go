package imageload

import (
	"context"
	stderrors "errors"
	"image"
	"io/fs"
	"log/slog"
	"net/url"
	"strings"

	"git.home.luguber.info/inful/mdinline/internal/config"
	ferrors "git.home.luguber.info/inful/mdinline/internal/foundation/errors"
	"git.home.luguber.info/inful/mdinline/internal/metrics"
	"git.home.luguber.info/inful/mdinline/internal/retry"
)

// ErrUnsupportedScheme is the cause of errors for URLs no fetcher handles.
var ErrUnsupportedScheme = stderrors.New("unsupported URL scheme")

// Fetcher loads a single image. alt is the alt text of the first reference
// to the source.
type Fetcher interface {
	Fetch(ctx context.Context, u *url.URL, alt string) (image.Image, error)
}

// FetchFunc adapts a function to Fetcher.
type FetchFunc func(ctx context.Context, u *url.URL, alt string) (image.Image, error)

func (f FetchFunc) Fetch(ctx context.Context, u *url.URL, alt string) (image.Image, error) {
	return f(ctx, u, alt)
}

// SchemeFetcher dispatches on the lowercase URL scheme. The empty key
// handles relative URLs.
type SchemeFetcher map[string]Fetcher

func (s SchemeFetcher) Fetch(ctx context.Context, u *url.URL, alt string) (image.Image, error) {
	f, ok := s[strings.ToLower(u.Scheme)]
	if !ok || f == nil {
		return nil, unsupportedScheme(u)
	}
	return f.Fetch(ctx, u, alt)
}

func unsupportedScheme(u *url.URL) error {
	return ferrors.WrapError(ErrUnsupportedScheme, ferrors.CategoryValidation, "no fetcher for image URL").
		WithContext("scheme", u.Scheme).
		WithContext("url", u.String()).
		Build()
}

// NewFetcher builds the standard fetcher for cfg: HTTP(S) over the network,
// plus file: and relative URLs from assets when it is non-nil.
func NewFetcher(cfg config.ImagesConfig, assets fs.FS, recorder metrics.Recorder, logger *slog.Logger) Fetcher {
	limits := Limits{MaxBytes: cfg.MaxBytes, MaxPixels: cfg.MaxPixels}
	httpFetcher := NewHTTPFetcher(HTTPConfig{
		Timeout:   cfg.Timeout,
		UserAgent: cfg.UserAgent,
		Limits:    limits,
		Policy:    retry.FromConfig(cfg.Retry),
		Recorder:  recorder,
		Logger:    logger,
	})
	fetchers := SchemeFetcher{
		"http":  httpFetcher,
		"https": httpFetcher,
	}
	if assets != nil {
		assetFetcher := NewAssetFetcher(assets, limits)
		fetchers[""] = assetFetcher
		fetchers["file"] = assetFetcher
	}
	return fetchers
}
