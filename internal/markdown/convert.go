package markdown

import (
	"strings"

	gmast "github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/util"

	"git.home.luguber.info/inful/mdinline/internal/inline"
)

// convertChildren converts the inline children of n. Adjacent text nodes
// are merged.
func convertChildren(n gmast.Node, source []byte) []inline.Node {
	var out []inline.Node
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		out = appendMerged(out, convert(c, source)...)
	}
	return out
}

func convert(n gmast.Node, source []byte) []inline.Node {
	switch node := n.(type) {
	case *gmast.Text:
		out := []inline.Node{inline.Text{Content: textValue(node, source)}}
		switch {
		case node.HardLineBreak():
			out = append(out, inline.LineBreak{})
		case node.SoftLineBreak():
			out = append(out, inline.SoftBreak{})
		}
		return out
	case *gmast.String:
		return []inline.Node{inline.Text{Content: string(node.Value)}}
	case *gmast.CodeSpan:
		var b strings.Builder
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			switch t := c.(type) {
			case *gmast.Text:
				b.Write(t.Value(source))
			case *gmast.String:
				b.Write(t.Value)
			}
		}
		return []inline.Node{inline.Code{Content: b.String()}}
	case *gmast.Emphasis:
		inner := convertChildren(node, source)
		if node.Level >= 2 {
			return []inline.Node{inline.Strong{Inner: inner}}
		}
		return []inline.Node{inline.Emphasis{Inner: inner}}
	case *extast.Strikethrough:
		return []inline.Node{inline.Strikethrough{Inner: convertChildren(node, source)}}
	case *gmast.Link:
		return []inline.Node{inline.Link{
			Destination: string(node.Destination),
			Inner:       convertChildren(node, source),
		}}
	case *gmast.AutoLink:
		return []inline.Node{inline.Link{
			Destination: string(node.URL(source)),
			Inner:       []inline.Node{inline.Text{Content: string(node.Label(source))}},
		}}
	case *gmast.Image:
		return []inline.Node{inline.Image{
			Source: string(node.Destination),
			Inner:  convertChildren(node, source),
		}}
	case *gmast.RawHTML:
		var b strings.Builder
		for i := 0; i < node.Segments.Len(); i++ {
			seg := node.Segments.At(i)
			b.Write(seg.Value(source))
		}
		return []inline.Node{inline.HTML{Content: b.String()}}
	default:
		// Unknown inline extensions contribute their content.
		return convertChildren(n, source)
	}
}

func appendMerged(out []inline.Node, nodes ...inline.Node) []inline.Node {
	for _, n := range nodes {
		if t, ok := n.(inline.Text); ok {
			if t.Content == "" {
				continue
			}
			if last := len(out) - 1; last >= 0 {
				if prev, ok := out[last].(inline.Text); ok {
					out[last] = inline.Text{Content: prev.Content + t.Content}
					continue
				}
			}
		}
		out = append(out, n)
	}
	return out
}

// textValue resolves backslash escapes and character references the way the
// goldmark HTML writer does. Raw text is returned as is.
func textValue(t *gmast.Text, source []byte) string {
	v := t.Value(source)
	if t.IsRaw() {
		return string(v)
	}
	v = util.UnescapePunctuations(v)
	v = util.ResolveNumericReferences(v)
	v = util.ResolveEntityNames(v)
	return string(v)
}
