// Package inline models inline markdown content as an immutable tree.
//
// A Node is a closed sum: the variants declared in this file are the only
// implementations. Container variants (Emphasis, Strong, Strikethrough, Link,
// Image) own an ordered slice of children; leaves carry only a payload.
// Nodes are never mutated after construction. Rewrites build new trees and may
// share unchanged child slices with the input.
package inline

// Kind identifies the variant of a Node.
type Kind int

const (
	KindText Kind = iota
	KindSoftBreak
	KindLineBreak
	KindCode
	KindHTML
	KindEmphasis
	KindStrong
	KindStrikethrough
	KindLink
	KindImage
)

var kindNames = [...]string{
	KindText:          "text",
	KindSoftBreak:     "soft_break",
	KindLineBreak:     "line_break",
	KindCode:          "code",
	KindHTML:          "html",
	KindEmphasis:      "emphasis",
	KindStrong:        "strong",
	KindStrikethrough: "strikethrough",
	KindLink:          "link",
	KindImage:         "image",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// IsContainer reports whether nodes of this kind carry children.
func (k Kind) IsContainer() bool {
	switch k {
	case KindEmphasis, KindStrong, KindStrikethrough, KindLink, KindImage:
		return true
	default:
		return false
	}
}

// Node is one unit of inline content.
type Node interface {
	Kind() Kind
	// Children returns the ordered children. Leaves return nil.
	Children() []Node
	// WithChildren returns a node of the same variant with its children
	// replaced. Leaves return themselves unchanged.
	WithChildren(children []Node) Node

	inline()
}

type Text struct{ Content string }

type SoftBreak struct{}

type LineBreak struct{}

type Code struct{ Content string }

// HTML is a raw inline HTML fragment, usually a single tag.
type HTML struct{ Content string }

type Emphasis struct{ Inner []Node }

type Strong struct{ Inner []Node }

type Strikethrough struct{ Inner []Node }

type Link struct {
	Destination string
	Inner       []Node
}

// Image references an image by Source. Inner holds the alt text nodes.
type Image struct {
	Source string
	Inner  []Node
}

func (Text) inline()          {}
func (SoftBreak) inline()     {}
func (LineBreak) inline()     {}
func (Code) inline()          {}
func (HTML) inline()          {}
func (Emphasis) inline()      {}
func (Strong) inline()        {}
func (Strikethrough) inline() {}
func (Link) inline()          {}
func (Image) inline()         {}

func (Text) Kind() Kind          { return KindText }
func (SoftBreak) Kind() Kind     { return KindSoftBreak }
func (LineBreak) Kind() Kind     { return KindLineBreak }
func (Code) Kind() Kind          { return KindCode }
func (HTML) Kind() Kind          { return KindHTML }
func (Emphasis) Kind() Kind      { return KindEmphasis }
func (Strong) Kind() Kind        { return KindStrong }
func (Strikethrough) Kind() Kind { return KindStrikethrough }
func (Link) Kind() Kind          { return KindLink }
func (Image) Kind() Kind         { return KindImage }

func (Text) Children() []Node            { return nil }
func (SoftBreak) Children() []Node       { return nil }
func (LineBreak) Children() []Node       { return nil }
func (Code) Children() []Node            { return nil }
func (HTML) Children() []Node            { return nil }
func (n Emphasis) Children() []Node      { return n.Inner }
func (n Strong) Children() []Node        { return n.Inner }
func (n Strikethrough) Children() []Node { return n.Inner }
func (n Link) Children() []Node          { return n.Inner }
func (n Image) Children() []Node         { return n.Inner }

func (n Text) WithChildren([]Node) Node      { return n }
func (n SoftBreak) WithChildren([]Node) Node { return n }
func (n LineBreak) WithChildren([]Node) Node { return n }
func (n Code) WithChildren([]Node) Node      { return n }
func (n HTML) WithChildren([]Node) Node      { return n }

func (Emphasis) WithChildren(c []Node) Node      { return Emphasis{Inner: c} }
func (Strong) WithChildren(c []Node) Node        { return Strong{Inner: c} }
func (Strikethrough) WithChildren(c []Node) Node { return Strikethrough{Inner: c} }
func (n Link) WithChildren(c []Node) Node {
	return Link{Destination: n.Destination, Inner: c}
}
func (n Image) WithChildren(c []Node) Node {
	return Image{Source: n.Source, Inner: c}
}
