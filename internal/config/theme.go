package config

// ThemeConfig overrides the text styles applied per inline kind.
type ThemeConfig struct {
	Base          StyleConfig `yaml:"base,omitempty"`
	Code          StyleConfig `yaml:"code,omitempty"`
	Emphasis      StyleConfig `yaml:"emphasis,omitempty"`
	Strong        StyleConfig `yaml:"strong,omitempty"`
	Strikethrough StyleConfig `yaml:"strikethrough,omitempty"`
	Link          StyleConfig `yaml:"link,omitempty"`
}

// StyleConfig is one style in YAML form. Colors are #rrggbb or #rgb.
type StyleConfig struct {
	Font          string  `yaml:"font,omitempty"`
	Scale         float64 `yaml:"scale,omitempty"`
	Bold          bool    `yaml:"bold,omitempty"`
	Italic        bool    `yaml:"italic,omitempty"`
	Monospace     bool    `yaml:"monospace,omitempty"`
	Strikethrough bool    `yaml:"strikethrough,omitempty"`
	Underline     bool    `yaml:"underline,omitempty"`
	Foreground    string  `yaml:"foreground,omitempty"`
	Background    string  `yaml:"background,omitempty"`
}

// IsZero reports whether the style sets nothing.
func (s StyleConfig) IsZero() bool { return s == StyleConfig{} }
