// Package theme supplies the text styles the renderer applies per inline
// kind.
package theme

import (
	"image/color"
	"strings"

	gcolor "github.com/gookit/color"

	"git.home.luguber.info/inful/mdinline/internal/config"
	ferrors "git.home.luguber.info/inful/mdinline/internal/foundation/errors"
	"git.home.luguber.info/inful/mdinline/internal/render"
)

var (
	codeBackground = color.RGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}
	linkForeground = color.RGBA{R: 0x03, G: 0x66, B: 0xd6, A: 0xff}
)

// Default returns the built-in styles: monospace on grey for code, italic
// emphasis, bold strong text, struck-through strikethrough and blue
// underlined links.
func Default() render.TextStyles {
	return render.TextStyles{
		Code:          render.Combine(render.Monospaced(), render.Background(codeBackground)),
		Emphasis:      render.Italic(),
		Strong:        render.Bold(),
		Strikethrough: render.StrikethroughLine(),
		Link:          render.Combine(render.Underlined(), render.Foreground(linkForeground)),
	}
}

// FromConfig returns Default with every kind configured in c replaced by its
// configured style.
func FromConfig(c config.ThemeConfig) (render.TextStyles, error) {
	styles := Default()
	for _, k := range []struct {
		name  string
		cfg   config.StyleConfig
		style *render.TextStyle
	}{
		{"code", c.Code, &styles.Code},
		{"emphasis", c.Emphasis, &styles.Emphasis},
		{"strong", c.Strong, &styles.Strong},
		{"strikethrough", c.Strikethrough, &styles.Strikethrough},
		{"link", c.Link, &styles.Link},
	} {
		if k.cfg.IsZero() {
			continue
		}
		s, err := Style(k.cfg)
		if err != nil {
			return render.TextStyles{}, withField(err, "theme."+k.name)
		}
		*k.style = s
	}
	return styles, nil
}

// BaseAttributes returns the body text attributes with the base style of c
// applied.
func BaseAttributes(c config.ThemeConfig) (render.Attributes, error) {
	s, err := Style(c.Base)
	if err != nil {
		return render.Attributes{}, withField(err, "theme.base")
	}
	return s.Apply(render.DefaultAttributes()), nil
}

// Style converts one configured style.
func Style(c config.StyleConfig) (render.TextStyle, error) {
	var styles []render.TextStyle
	if c.Font != "" {
		styles = append(styles, render.FontFamily(c.Font))
	}
	if c.Scale > 0 {
		styles = append(styles, render.FontScale(c.Scale))
	}
	if c.Bold {
		styles = append(styles, render.Bold())
	}
	if c.Italic {
		styles = append(styles, render.Italic())
	}
	if c.Monospace {
		styles = append(styles, render.Monospaced())
	}
	if c.Strikethrough {
		styles = append(styles, render.StrikethroughLine())
	}
	if c.Underline {
		styles = append(styles, render.Underlined())
	}
	if c.Foreground != "" {
		fg, err := ParseColor(c.Foreground)
		if err != nil {
			return nil, err
		}
		styles = append(styles, render.Foreground(fg))
	}
	if c.Background != "" {
		bg, err := ParseColor(c.Background)
		if err != nil {
			return nil, err
		}
		styles = append(styles, render.Background(bg))
	}
	return render.Combine(styles...), nil
}

// ParseColor parses #rgb or #rrggbb into an opaque color.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	hex := strings.TrimPrefix(s, "#")
	if hex == s || (len(hex) != 3 && len(hex) != 6) || strings.Trim(hex, "0123456789abcdefABCDEF") != "" {
		return color.RGBA{}, ferrors.ConfigError("invalid color, want #rgb or #rrggbb").
			WithContext("value", s).
			Build()
	}
	rgb := gcolor.HexToRgb(hex)
	return color.RGBA{R: uint8(rgb[0]), G: uint8(rgb[1]), B: uint8(rgb[2]), A: 0xff}, nil
}

func withField(err error, field string) error {
	if c, ok := ferrors.AsClassified(err); ok {
		return ferrors.ConfigError(c.Message()).
			WithCause(err).
			WithContext("field", field).
			Build()
	}
	return err
}
