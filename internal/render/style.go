package render

import "image/color"

// Attributes are the visual attributes of a piece of rendered text.
type Attributes struct {
	Font          string
	Scale         float64 // size multiplier, 1.0 = body text
	Bold          bool
	Italic        bool
	Monospace     bool
	Strikethrough bool
	Underline     bool
	Foreground    color.Color
	Background    color.Color
	Link          string // absolute link target, empty when not a link
}

// Equal reports whether a and b render identically. Colors are compared by
// their RGBA values, so any color.Color implementation is accepted.
func (a Attributes) Equal(b Attributes) bool {
	return a.Font == b.Font &&
		a.Scale == b.Scale &&
		a.Bold == b.Bold &&
		a.Italic == b.Italic &&
		a.Monospace == b.Monospace &&
		a.Strikethrough == b.Strikethrough &&
		a.Underline == b.Underline &&
		a.Link == b.Link &&
		sameColor(a.Foreground, b.Foreground) &&
		sameColor(a.Background, b.Background)
}

func sameColor(a, b color.Color) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return ar == br && ag == bg && ab == bb && aa == ba
}

// DefaultAttributes returns body text attributes.
func DefaultAttributes() Attributes {
	return Attributes{Scale: 1.0}
}

// TextStyle modifies attributes. A nil TextStyle leaves them unchanged.
type TextStyle func(*Attributes)

// Apply returns a copy of a with the style applied.
func (s TextStyle) Apply(a Attributes) Attributes {
	if s != nil {
		s(&a)
	}
	return a
}

// TextStyles maps the styled node kinds to their text style.
// The values come from a theme; the renderer treats them as opaque.
type TextStyles struct {
	Code          TextStyle
	Emphasis      TextStyle
	Strong        TextStyle
	Strikethrough TextStyle
	Link          TextStyle
}

func Bold() TextStyle              { return func(a *Attributes) { a.Bold = true } }
func Italic() TextStyle            { return func(a *Attributes) { a.Italic = true } }
func Monospaced() TextStyle        { return func(a *Attributes) { a.Monospace = true } }
func StrikethroughLine() TextStyle { return func(a *Attributes) { a.Strikethrough = true } }
func Underlined() TextStyle        { return func(a *Attributes) { a.Underline = true } }

func Foreground(c color.Color) TextStyle {
	return func(a *Attributes) { a.Foreground = c }
}

func Background(c color.Color) TextStyle {
	return func(a *Attributes) { a.Background = c }
}

func FontFamily(name string) TextStyle {
	return func(a *Attributes) { a.Font = name }
}

// FontScale multiplies the current scale. A zero scale is treated as 1.
func FontScale(f float64) TextStyle {
	return func(a *Attributes) {
		if a.Scale == 0 {
			a.Scale = 1
		}
		a.Scale *= f
	}
}

// Combine applies styles left to right.
func Combine(styles ...TextStyle) TextStyle {
	return func(a *Attributes) {
		for _, s := range styles {
			if s != nil {
				s(a)
			}
		}
	}
}
