package config

import (
	"net/url"

	"git.home.luguber.info/inful/mdinline/internal/foundation/errors"
)

// Validate checks a defaulted configuration.
func Validate(cfg *Config) error {
	format, err := ParseOutputFormat(string(cfg.Render.Format))
	if err != nil {
		return invalid("render.format", err)
	}
	cfg.Render.Format = format

	for field, raw := range map[string]string{
		"render.base_url":       cfg.Render.BaseURL,
		"render.image_base_url": cfg.Render.ImageBaseURL,
	} {
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil {
			return invalid(field, err)
		}
		if !u.IsAbs() {
			return errors.ConfigError("base URL must be absolute").
				WithContext("field", field).
				WithContext("value", raw).
				Build()
		}
	}

	r := cfg.Images.Retry
	if r.Backoff != "" && NormalizeRetryBackoff(r.Backoff) == "" {
		return errors.ConfigError("unknown retry backoff").
			WithContext("field", "images.retry.backoff").
			WithContext("value", r.Backoff).
			Build()
	}
	if r.MaxRetries != nil && *r.MaxRetries < 0 {
		return errors.ConfigError("max_retries cannot be negative").
			WithContext("field", "images.retry.max_retries").
			Build()
	}
	return nil
}

func invalid(field string, err error) error {
	return errors.ConfigError("invalid configuration value").
		WithCause(err).
		WithContext("field", field).
		Build()
}
