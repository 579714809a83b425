package inline

import (
	"strings"

	"git.home.luguber.info/inful/mdinline/internal/util/sets"
)

// ImageReference is one distinct image referenced by a node sequence.
type ImageReference struct {
	Source  string
	AltText string
}

// ImageReferences collects the images reachable from nodes, descending into
// the children of every container. References are keyed by Source alone: when
// several Image nodes share a source, the first one in document order
// supplies the alt text. The result is in document order.
func ImageReferences(nodes []Node) []ImageReference {
	var refs []ImageReference
	seen := sets.New[string]()

	var visit func([]Node)
	visit = func(nodes []Node) {
		for _, n := range nodes {
			if img, ok := n.(Image); ok && seen.Insert(img.Source) {
				refs = append(refs, ImageReference{Source: img.Source, AltText: PlainText(img.Inner)})
			}
			visit(n.Children())
		}
	}
	visit(nodes)

	return refs
}

// PlainText flattens nodes into unstyled text. Soft breaks become a space,
// line breaks a newline; raw HTML is kept verbatim.
func PlainText(nodes []Node) string {
	var b strings.Builder
	writePlain(&b, nodes)
	return b.String()
}

func writePlain(b *strings.Builder, nodes []Node) {
	for _, n := range nodes {
		switch v := n.(type) {
		case Text:
			b.WriteString(v.Content)
		case Code:
			b.WriteString(v.Content)
		case HTML:
			b.WriteString(v.Content)
		case SoftBreak:
			b.WriteByte(' ')
		case LineBreak:
			b.WriteByte('\n')
		default:
			writePlain(b, n.Children())
		}
	}
}
