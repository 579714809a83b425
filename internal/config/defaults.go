package config

import "time"

// Defaults for fields left unset.
const (
	DefaultTimeout       = 10 * time.Second
	DefaultMaxConcurrent = 8
	DefaultMaxBytes      = 20 << 20
	DefaultMaxPixels     = 64 << 20
	DefaultUserAgent     = "mdinline"
	DefaultDebounce      = 250 * time.Millisecond
	DefaultMetricsListen = ":9464"
)

func applyDefaults(cfg *Config) {
	if cfg.Render.Format == "" {
		cfg.Render.Format = OutputFormatText
	}

	im := &cfg.Images
	if im.Timeout <= 0 {
		im.Timeout = DefaultTimeout
	}
	if im.MaxConcurrent <= 0 {
		im.MaxConcurrent = DefaultMaxConcurrent
	}
	if im.MaxBytes <= 0 {
		im.MaxBytes = DefaultMaxBytes
	}
	if im.MaxPixels <= 0 {
		im.MaxPixels = DefaultMaxPixels
	}
	if im.UserAgent == "" {
		im.UserAgent = DefaultUserAgent
	}

	cfg.Logging.Level = NormalizeLogLevel(string(cfg.Logging.Level))
	cfg.Logging.Format = NormalizeLogFormat(string(cfg.Logging.Format))

	if cfg.Watch.Debounce <= 0 {
		cfg.Watch.Debounce = DefaultDebounce
	}
	if cfg.Watch.Refresh < 0 {
		cfg.Watch.Refresh = 0
	}
	if cfg.Metrics.Listen == "" {
		cfg.Metrics.Listen = DefaultMetricsListen
	}
}
