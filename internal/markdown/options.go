package markdown

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Options selects the goldmark extensions used when parsing.
type Options struct {
	// Strikethrough enables GFM ~~strikethrough~~.
	Strikethrough bool
	// Linkify turns bare URLs into links.
	Linkify bool
}

// DefaultOptions enables strikethrough only.
func DefaultOptions() Options {
	return Options{Strikethrough: true}
}

func (o Options) goldmark() goldmark.Markdown {
	var exts []goldmark.Extender
	if o.Strikethrough {
		exts = append(exts, extension.Strikethrough)
	}
	if o.Linkify {
		exts = append(exts, extension.Linkify)
	}
	return goldmark.New(goldmark.WithExtensions(exts...))
}
