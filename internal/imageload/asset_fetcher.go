package imageload

import (
	"context"
	stderrors "errors"
	"image"
	"io/fs"
	"net/url"
	"path"
	"strings"

	ferrors "git.home.luguber.info/inful/mdinline/internal/foundation/errors"
)

// AssetFetcher loads images from a file system such as an asset bundle or
// the directory of the document. It serves relative and file: URLs; the URL
// path is taken relative to the root of the file system.
type AssetFetcher struct {
	fsys   fs.FS
	limits Limits
}

func NewAssetFetcher(fsys fs.FS, limits Limits) *AssetFetcher {
	return &AssetFetcher{fsys: fsys, limits: limits}
}

func (a *AssetFetcher) Fetch(ctx context.Context, u *url.URL, _ string) (image.Image, error) {
	if u.Scheme != "" && u.Scheme != "file" {
		return nil, unsupportedScheme(u)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := assetName(u)
	if name == "" {
		return nil, ferrors.ValidationError("invalid asset path").
			WithContext("url", u.String()).
			Build()
	}
	f, err := a.fsys.Open(name)
	if stderrors.Is(err, fs.ErrNotExist) {
		return nil, ferrors.NotFoundError("asset not found").
			WithCause(err).
			WithContext("file", name).
			Build()
	}
	if err != nil {
		return nil, ferrors.FileSystemError("failed to open asset").
			WithCause(err).
			WithContext("file", name).
			Build()
	}
	defer func() { _ = f.Close() }()

	return decode(f, a.limits, func(err error) error {
		return ferrors.FileSystemError("failed to read asset").
			WithCause(err).
			WithContext("file", name).
			Build()
	})
}

// assetName maps a URL onto an fs.FS path, or "" when the path cannot name a
// file.
func assetName(u *url.URL) string {
	p := u.Path
	if p == "" {
		p = u.Opaque
	}
	name := strings.TrimPrefix(path.Clean("/"+p), "/")
	if name == "" || !fs.ValidPath(name) {
		return ""
	}
	return name
}
