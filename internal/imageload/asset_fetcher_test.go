package imageload

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/mdinline/internal/foundation/errors"
)

func TestAssetFetcher(t *testing.T) {
	fsys := fstest.MapFS{
		"img/logo.png": {Data: pngBytes(t, 3, 2)},
		"broken.png":   {Data: []byte("not an image")},
	}
	f := NewAssetFetcher(fsys, Limits{})

	tests := []struct {
		name     string
		raw      string
		category ferrors.ErrorCategory // empty means success
	}{
		{"relative", "img/logo.png", ""},
		{"rooted", "/img/logo.png", ""},
		{"file url", "file:///img/logo.png", ""},
		{"opaque file", "file:img/logo.png", ""},
		{"dot segments stay inside", "../img/logo.png", ""},
		{"missing", "img/none.png", ferrors.CategoryNotFound},
		{"corrupt", "broken.png", ferrors.CategoryImage},
		{"root", "/", ferrors.CategoryValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := f.Fetch(context.Background(), mustURL(t, tt.raw), "")
			if tt.category == "" {
				require.NoError(t, err)
				assert.Equal(t, 3, img.Bounds().Dx())
				return
			}
			require.Error(t, err)
			assert.True(t, ferrors.HasCategory(err, tt.category), "%v", err)
		})
	}
}

func TestAssetFetcher_RejectsRemote(t *testing.T) {
	f := NewAssetFetcher(fstest.MapFS{}, Limits{})
	_, err := f.Fetch(context.Background(), mustURL(t, "https://example.com/a.png"), "")
	assert.ErrorIs(t, err, ErrUnsupportedScheme)
}

func TestAssetFetcher_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f := NewAssetFetcher(fstest.MapFS{"a.png": {Data: pngBytes(t, 1, 1)}}, Limits{})
	_, err := f.Fetch(ctx, mustURL(t, "a.png"), "")
	assert.ErrorIs(t, err, context.Canceled)
}
