package imageload

import (
	"context"
	"image"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	ferrors "git.home.luguber.info/inful/mdinline/internal/foundation/errors"
	"git.home.luguber.info/inful/mdinline/internal/logfields"
	"git.home.luguber.info/inful/mdinline/internal/metrics"
	"git.home.luguber.info/inful/mdinline/internal/retry"
)

// HTTPConfig configures an HTTPFetcher. Zero values select defaults.
type HTTPConfig struct {
	Timeout   time.Duration
	UserAgent string
	Limits    Limits
	Policy    retry.Policy
	Transport http.RoundTripper
	Recorder  metrics.Recorder
	Logger    *slog.Logger
}

// HTTPFetcher loads images over HTTP(S). Transport errors, 429 and 5xx
// responses are retried according to the policy.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
	limits    Limits
	policy    retry.Policy
	recorder  metrics.Recorder
	logger    *slog.Logger
}

func NewHTTPFetcher(cfg HTTPConfig) *HTTPFetcher {
	transport := cfg.Transport
	if transport == nil {
		// Respects HTTP_PROXY, HTTPS_PROXY and NO_PROXY.
		transport = http.DefaultTransport.(*http.Transport).Clone()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	policy := cfg.Policy
	if policy.Validate() != nil {
		policy = retry.DefaultPolicy()
	}
	f := &HTTPFetcher{
		client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		userAgent: cfg.UserAgent,
		limits:    cfg.Limits,
		policy:    policy,
		recorder:  cfg.Recorder,
		logger:    cfg.Logger,
	}
	if f.userAgent == "" {
		f.userAgent = "mdinline"
	}
	if f.recorder == nil {
		f.recorder = metrics.NoopRecorder{}
	}
	if f.logger == nil {
		f.logger = slog.Default()
	}
	return f
}

func (f *HTTPFetcher) Fetch(ctx context.Context, u *url.URL, _ string) (image.Image, error) {
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, unsupportedScheme(u)
	}
	var img image.Image
	err := f.policy.Do(ctx,
		func(ctx context.Context) error {
			var err error
			img, err = f.fetchOnce(ctx, u)
			return err
		},
		ferrors.IsRetryable,
		func(attempt int, err error) {
			f.recorder.IncFetchRetry(u.Scheme)
			f.logger.Debug("Retrying image fetch",
				logfields.URL(u.String()),
				logfields.Attempt(attempt),
				logfields.Error(err))
		},
	)
	if err != nil {
		return nil, err
	}
	return img, nil
}

func (f *HTTPFetcher) fetchOnce(ctx context.Context, u *url.URL) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, ferrors.ValidationError("failed to create image request").
			WithCause(err).
			WithContext("url", u.String()).
			Build()
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "image/*")

	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, ferrors.NetworkError("image request failed").
			WithCause(err).
			WithContext("url", u.String()).
			Build()
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		b := ferrors.NewError(ferrors.CategoryNetwork, "unexpected HTTP status").
			WithContext("url", u.String()).
			WithContext("status", resp.StatusCode)
		if isTransientStatus(resp.StatusCode) {
			b = b.Retryable()
		}
		return nil, b.Build()
	}
	return decode(resp.Body, f.limits, func(err error) error {
		return ferrors.NetworkError("failed to read image data").
			WithCause(err).
			WithContext("url", u.String()).
			Build()
	})
}

func isTransientStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}
