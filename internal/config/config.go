package config

import (
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/mdinline/internal/foundation/errors"
)

// DefaultPath is the config file looked up when -c is not given.
const DefaultPath = "mdinline.yaml"

// Config represents the application configuration.
type Config struct {
	Render  RenderConfig  `yaml:"render"`
	Images  ImagesConfig  `yaml:"images"`
	Theme   ThemeConfig   `yaml:"theme,omitempty"`
	Logging LoggingConfig `yaml:"logging"`
	Watch   WatchConfig   `yaml:"watch"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// RenderConfig controls link resolution and output.
type RenderConfig struct {
	BaseURL      string       `yaml:"base_url,omitempty"`       // Resolves relative link destinations
	ImageBaseURL string       `yaml:"image_base_url,omitempty"` // Resolves relative image sources; falls back to base_url
	Format       OutputFormat `yaml:"format,omitempty"`
}

// ImagesConfig controls image fetching.
type ImagesConfig struct {
	AssetDir      string        `yaml:"asset_dir,omitempty"` // Serves file: and relative sources
	Timeout       time.Duration `yaml:"timeout"`
	MaxConcurrent int           `yaml:"max_concurrent"`
	MaxBytes      int64         `yaml:"max_bytes"`
	MaxPixels     int           `yaml:"max_pixels"`
	UserAgent     string        `yaml:"user_agent,omitempty"`
	Retry         RetryConfig   `yaml:"retry"`
}

// RetryConfig configures retries of transient network failures.
type RetryConfig struct {
	Backoff    string        `yaml:"backoff,omitempty"` // fixed|linear|exponential
	Initial    time.Duration `yaml:"initial,omitempty"`
	Max        time.Duration `yaml:"max,omitempty"`
	MaxRetries *int          `yaml:"max_retries,omitempty"`
}

// LoggingConfig selects the slog handler.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// WatchConfig tunes the watch command.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
	Refresh  time.Duration `yaml:"refresh,omitempty"` // Zero disables periodic refresh passes
}

// MetricsConfig exposes Prometheus metrics while watching.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen,omitempty"`
}

// Load reads the configuration at path. Variables from .env files are loaded
// first so ${VAR} references in the YAML can use them. A missing file at the
// default path is not an error: the defaults are returned.
func Load(path string) (*Config, error) {
	loadEnvFiles(slog.Default())

	if path == "" {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err) && path == DefaultPath:
		cfg := &Config{}
		applyDefaults(cfg)
		return cfg, nil
	case os.IsNotExist(err):
		return nil, errors.NotFoundError("configuration file not found").
			WithContext("file", path).
			WithRetry(errors.RetryUserAction).
			Build()
	case err != nil:
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read config file").
			WithContext("file", path).
			Build()
	}
	return Parse(data, path)
}

// Parse decodes YAML config data, expanding environment references, then
// applies defaults and validates. source only labels errors.
func Parse(data []byte, source string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, errors.ConfigError("failed to parse config").
			WithCause(err).
			WithContext("file", source).
			Build()
	}
	applyDefaults(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Init writes an example configuration file.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.ValidationError("configuration file already exists (use --force to overwrite)").
			WithContext("file", path).
			Build()
	}
	example := Example()
	data, err := yaml.Marshal(example)
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to marshal config").Build()
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write config file").
			WithContext("file", path).
			Build()
	}
	return nil
}

// Example returns the configuration written by Init.
func Example() *Config {
	retries := 2
	cfg := &Config{
		Render: RenderConfig{
			BaseURL:      "https://example.com/docs/",
			ImageBaseURL: "https://cdn.example.com/docs/",
			Format:       OutputFormatText,
		},
		Images: ImagesConfig{
			AssetDir:  "./assets",
			UserAgent: "mdinline/1.0",
			Retry: RetryConfig{
				Backoff:    string(RetryBackoffLinear),
				Initial:    200 * time.Millisecond,
				Max:        2 * time.Second,
				MaxRetries: &retries,
			},
		},
		Theme: ThemeConfig{
			Code: StyleConfig{Monospace: true, Background: "#eeeeee"},
			Link: StyleConfig{Underline: true, Foreground: "#0366d6"},
		},
		Watch: WatchConfig{Refresh: 10 * time.Minute},
		Metrics: MetricsConfig{
			Enabled: false,
			Listen:  ":9464",
		},
	}
	applyDefaults(cfg)
	return cfg
}
