package imageload

import (
	"bytes"
	"image"
	"io"

	// Registered decoders.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	ferrors "git.home.luguber.info/inful/mdinline/internal/foundation/errors"
)

// Limits bound what a fetcher is willing to decode. Zero means unlimited.
type Limits struct {
	MaxBytes  int64
	MaxPixels int
}

// decode reads and decodes one image. The header is checked against the
// pixel limit before the image is decoded. readErr classifies failures of
// the underlying reader, since only the caller knows where the bytes come
// from.
func decode(r io.Reader, lim Limits, readErr func(error) error) (image.Image, error) {
	if lim.MaxBytes > 0 {
		r = io.LimitReader(r, lim.MaxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, readErr(err)
	}
	if lim.MaxBytes > 0 && int64(len(data)) > lim.MaxBytes {
		return nil, ferrors.ImageError("image exceeds size limit").
			WithContext("max_bytes", lim.MaxBytes).
			Build()
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, ferrors.ImageError("unrecognized image data").WithCause(err).Build()
	}
	if lim.MaxPixels > 0 && int64(cfg.Width)*int64(cfg.Height) > int64(lim.MaxPixels) {
		return nil, ferrors.ImageError("image exceeds pixel limit").
			WithContext("width", cfg.Width).
			WithContext("height", cfg.Height).
			Build()
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, ferrors.ImageError("failed to decode image").
			WithCause(err).
			WithContext("format", format).
			Build()
	}
	return img, nil
}
