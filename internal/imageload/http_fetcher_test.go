package imageload

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/mdinline/internal/config"
	ferrors "git.home.luguber.info/inful/mdinline/internal/foundation/errors"
	"git.home.luguber.info/inful/mdinline/internal/retry"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func fastPolicy(retries int) retry.Policy {
	return retry.NewPolicy(config.RetryBackoffFixed, time.Millisecond, time.Millisecond, retries)
}

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestHTTPFetcher_DecodesImage(t *testing.T) {
	data := pngBytes(t, 4, 3)
	var gotUA, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	f := NewHTTPFetcher(HTTPConfig{UserAgent: "mdinline-test"})
	got, err := f.Fetch(context.Background(), mustURL(t, srv.URL+"/a.png"), "alt")
	require.NoError(t, err)
	assert.Equal(t, 4, got.Bounds().Dx())
	assert.Equal(t, 3, got.Bounds().Dy())
	assert.Equal(t, "mdinline-test", gotUA)
	assert.Equal(t, "image/*", gotAccept)
}

func TestHTTPFetcher_RetriesTransientStatus(t *testing.T) {
	data := pngBytes(t, 1, 1)
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	rec := newCountingRecorder()
	f := NewHTTPFetcher(HTTPConfig{Policy: fastPolicy(3), Recorder: rec})
	_, err := f.Fetch(context.Background(), mustURL(t, srv.URL), "")
	require.NoError(t, err)
	assert.Equal(t, int32(3), hits.Load())
	assert.Equal(t, 2, rec.retries)
}

func TestHTTPFetcher_DoesNotRetryClientError(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		http.NotFound(w, nil)
	}))
	defer srv.Close()

	f := NewHTTPFetcher(HTTPConfig{Policy: fastPolicy(3)})
	_, err := f.Fetch(context.Background(), mustURL(t, srv.URL), "")
	require.Error(t, err)
	assert.Equal(t, int32(1), hits.Load())

	classified, ok := ferrors.AsClassified(err)
	require.True(t, ok)
	assert.Equal(t, ferrors.CategoryNetwork, classified.Category())
	assert.Equal(t, 404, classified.Context()["status"])
}

func TestHTTPFetcher_TransportErrorRetried(t *testing.T) {
	var calls atomic.Int32
	f := NewHTTPFetcher(HTTPConfig{
		Policy: fastPolicy(2),
		Transport: roundTripperFunc(func(*http.Request) (*http.Response, error) {
			calls.Add(1)
			return nil, errors.New("connection reset")
		}),
	})
	_, err := f.Fetch(context.Background(), mustURL(t, "https://images.example.com/a.png"), "")
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryNetwork))
	assert.Equal(t, int32(3), calls.Load())
}

func TestHTTPFetcher_Limits(t *testing.T) {
	data := pngBytes(t, 50, 50)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	tests := []struct {
		name   string
		limits Limits
	}{
		{"bytes", Limits{MaxBytes: 16}},
		{"pixels", Limits{MaxPixels: 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewHTTPFetcher(HTTPConfig{Limits: tt.limits, Policy: fastPolicy(0)})
			_, err := f.Fetch(context.Background(), mustURL(t, srv.URL), "")
			require.Error(t, err)
			assert.True(t, ferrors.HasCategory(err, ferrors.CategoryImage))
		})
	}
}

func TestHTTPFetcher_NotAnImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>nope</html>"))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(HTTPConfig{Policy: fastPolicy(2)})
	_, err := f.Fetch(context.Background(), mustURL(t, srv.URL), "")
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryImage))
}

func TestHTTPFetcher_RejectsOtherSchemes(t *testing.T) {
	f := NewHTTPFetcher(HTTPConfig{})
	_, err := f.Fetch(context.Background(), mustURL(t, "ftp://example.com/a.png"), "")
	assert.ErrorIs(t, err, ErrUnsupportedScheme)
}

func TestHTTPFetcher_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	f := NewHTTPFetcher(HTTPConfig{
		Policy: fastPolicy(5),
		Transport: roundTripperFunc(func(r *http.Request) (*http.Response, error) {
			cancel()
			return nil, r.Context().Err()
		}),
	})
	_, err := f.Fetch(ctx, mustURL(t, "https://example.com/a.png"), "")
	assert.ErrorIs(t, err, context.Canceled)
}
