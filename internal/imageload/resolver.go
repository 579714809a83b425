package imageload

import (
	"context"
	"image"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	ferrors "git.home.luguber.info/inful/mdinline/internal/foundation/errors"
	"git.home.luguber.info/inful/mdinline/internal/inline"
	"git.home.luguber.info/inful/mdinline/internal/logfields"
	"git.home.luguber.info/inful/mdinline/internal/metrics"
	"git.home.luguber.info/inful/mdinline/internal/render"
)

// DefaultMaxConcurrent bounds the fetches in flight per pass.
const DefaultMaxConcurrent = 8

// Resolver fetches the images referenced by a node sequence.
type Resolver struct {
	fetcher       Fetcher
	baseURL       *url.URL
	maxConcurrent int
	recorder      metrics.Recorder
	logger        *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithBaseURL resolves relative image sources against base.
func WithBaseURL(base *url.URL) Option {
	return func(r *Resolver) { r.baseURL = base }
}

// WithMaxConcurrent bounds the number of concurrent fetches. Values below
// one are ignored.
func WithMaxConcurrent(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.maxConcurrent = n
		}
	}
}

func WithRecorder(rec metrics.Recorder) Option {
	return func(r *Resolver) {
		if rec != nil {
			r.recorder = rec
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func NewResolver(fetcher Fetcher, opts ...Option) *Resolver {
	r := &Resolver{
		fetcher:       fetcher,
		maxConcurrent: DefaultMaxConcurrent,
		recorder:      metrics.NoopRecorder{},
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve runs one resolution pass over nodes. Every distinct image source
// is fetched at most once; sources that fail to parse, fail to fetch or
// yield no image are left out of the result. The returned error is non-nil
// only when ctx ends before the pass completes, and then no images are
// returned.
func (r *Resolver) Resolve(ctx context.Context, nodes []inline.Node) (render.Images, error) {
	refs := inline.ImageReferences(nodes)
	images := make(render.Images, len(refs))
	if len(refs) == 0 {
		return images, nil
	}

	start := time.Now()
	r.recorder.SetResolveConcurrency(min(r.maxConcurrent, len(refs)))

	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		sem = make(chan struct{}, r.maxConcurrent)
	)
dispatch:
	for _, ref := range refs {
		u, ok := r.resolveSource(ref.Source)
		if !ok {
			r.logger.Debug("Skipping unresolvable image source", logfields.Source(ref.Source))
			continue
		}

		// Acquire before spawning to avoid goroutine backlogs.
		select {
		case <-ctx.Done():
			break dispatch
		case sem <- struct{}{}:
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			if img := r.fetch(ctx, u, ref); img != nil {
				mu.Lock()
				images[ref.Source] = img
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	elapsed := time.Since(start)
	r.recorder.ObserveResolveDuration(elapsed)
	if err := ctx.Err(); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryCanceled, "image resolution canceled").
			WithContext("count", len(refs)).
			Build()
	}
	r.logger.Debug("Resolved images",
		logfields.Count(len(refs)),
		logfields.Resolved(len(images)),
		logfields.Duration(elapsed))
	return images, nil
}

// fetch loads one reference, returning nil on any failure.
func (r *Resolver) fetch(ctx context.Context, u *url.URL, ref inline.ImageReference) image.Image {
	start := time.Now()
	img, err := r.fetcher.Fetch(ctx, u, ref.AltText)
	if err == nil && render.IsNilImage(img) {
		err = ferrors.ImageError("fetcher returned no image").Build()
	}

	result := metrics.ResultSuccess
	switch {
	case err != nil && ctx.Err() != nil:
		result = metrics.ResultCanceled
	case err != nil:
		result = metrics.ResultFailed
	}
	r.recorder.ObserveFetchDuration(u.Scheme, time.Since(start), result)
	r.recorder.IncFetchResult(result)

	if err != nil {
		attrs := []slog.Attr{logfields.Source(ref.Source), logfields.URL(u.String())}
		if classified, ok := ferrors.AsClassified(err); ok {
			attrs = append(attrs, classified.LogAttrs()...)
		} else {
			attrs = append(attrs, logfields.Error(err))
		}
		r.logger.LogAttrs(ctx, slog.LevelDebug, "Image fetch failed", attrs...)
		return nil
	}
	return img
}

// resolveSource turns an image source into the URL handed to the fetcher.
func (r *Resolver) resolveSource(source string) (*url.URL, bool) {
	if strings.TrimSpace(source) == "" {
		return nil, false
	}
	u, err := url.Parse(source)
	if err != nil {
		return nil, false
	}
	if r.baseURL != nil {
		u = r.baseURL.ResolveReference(u)
	}
	return u, true
}
