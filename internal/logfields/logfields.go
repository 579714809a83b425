package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field names shared by the resolver, the loader and the CLI.
const (
	KeySource     = "source"
	KeyURL        = "url"
	KeyAlt        = "alt"
	KeyPass       = "pass"
	KeyCount      = "count"
	KeyResolved   = "resolved"
	KeyDurationMS = "duration_ms"
	KeyFile       = "file"
	KeyFormat     = "format"
	KeyScheme     = "scheme"
	KeyStatus     = "status"
	KeyAttempt    = "attempt"
	KeyError      = "error"
)

func Source(s string) slog.Attr   { return slog.String(KeySource, s) }
func URL(u string) slog.Attr      { return slog.String(KeyURL, u) }
func Alt(a string) slog.Attr      { return slog.String(KeyAlt, a) }
func Pass(n uint64) slog.Attr     { return slog.Uint64(KeyPass, n) }
func Count(n int) slog.Attr       { return slog.Int(KeyCount, n) }
func Resolved(n int) slog.Attr    { return slog.Int(KeyResolved, n) }
func File(path string) slog.Attr  { return slog.String(KeyFile, path) }
func Format(f string) slog.Attr   { return slog.String(KeyFormat, f) }
func Scheme(s string) slog.Attr   { return slog.String(KeyScheme, s) }
func Status(code int) slog.Attr   { return slog.Int(KeyStatus, code) }
func Attempt(n int) slog.Attr     { return slog.Int(KeyAttempt, n) }

// Duration logs d in milliseconds.
func Duration(d time.Duration) slog.Attr {
	return slog.Float64(KeyDurationMS, float64(d.Microseconds())/1000)
}

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
