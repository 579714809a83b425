package render

import (
	"strings"

	"golang.org/x/net/html"
)

// htmlTag is a single inline HTML tag.
type htmlTag struct {
	name        string // lower case
	closing     bool
	selfClosing bool
}

// parseHTMLTag reports whether raw is exactly one HTML tag and returns it.
// Text, comments, multiple tags or incomplete markup are not tags.
func parseHTMLTag(raw string) (htmlTag, bool) {
	z := html.NewTokenizer(strings.NewReader(strings.TrimSpace(raw)))

	var tag htmlTag
	switch z.Next() {
	case html.StartTagToken:
	case html.EndTagToken:
		tag.closing = true
	case html.SelfClosingTagToken:
		tag.selfClosing = true
	default:
		return htmlTag{}, false
	}

	name, _ := z.TagName()
	tag.name = string(name)

	if z.Next() != html.ErrorToken {
		return htmlTag{}, false
	}
	return tag, true
}

func (t htmlTag) isLineBreak() bool {
	return t.name == "br"
}
