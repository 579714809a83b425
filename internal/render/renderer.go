// Package render turns a sequence of inline nodes into text and image runs.
//
// Render walks the top-level nodes once, left to right. Styled text is
// accumulated into the open text run; a resolved image closes that run, emits
// an image run and opens a fresh text run. Images missing from the resolved
// mapping are dropped, so the text around them stays in one run.
package render

import (
	"net/url"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/mdinline/internal/inline"
)

const (
	softBreakText = " "
	lineBreakText = "\n"
)

// Context carries everything Render needs besides the nodes.
type Context struct {
	// BaseURL resolves relative link destinations. May be nil.
	BaseURL *url.URL
	Styles  TextStyles
	// Images holds the resolved images; image nodes whose source is absent
	// are dropped.
	Images Images
	// Attributes are the inherited attributes all text starts from.
	Attributes Attributes
	// NewID returns text run ids. Defaults to random UUIDs.
	NewID func() string
}

// Render produces the runs for nodes. It never fails and does not retain
// nodes or rc. The last run is always a text run, possibly empty.
func Render(nodes []inline.Node, rc Context) []Run {
	if rc.NewID == nil {
		rc.NewID = uuid.NewString
	}
	r := &renderer{ctx: &rc}
	r.open()
	for _, n := range nodes {
		r.render(n)
	}
	r.runs = append(r.runs, r.current)
	return r.runs
}

type renderer struct {
	ctx                *Context
	runs               []Run
	current            *TextRun
	skipNextWhitespace bool
}

func (r *renderer) open() {
	r.current = &TextRun{ID: r.ctx.NewID()}
}

func (r *renderer) render(n inline.Node) {
	switch v := n.(type) {
	case inline.Text:
		r.renderText(v.Content)
	case inline.SoftBreak:
		r.renderSoftBreak()
	case inline.HTML:
		r.renderHTML(v.Content)
	case inline.Image:
		r.renderImage(v)
	default:
		r.current.append(renderFragment(r.ctx, n)...)
	}
}

func (r *renderer) renderText(text string) {
	if r.skipNextWhitespace {
		r.skipNextWhitespace = false
		text = strings.TrimLeftFunc(text, unicode.IsSpace)
	}
	r.current.append(renderFragment(r.ctx, inline.Text{Content: text})...)
}

func (r *renderer) renderSoftBreak() {
	if r.skipNextWhitespace {
		r.skipNextWhitespace = false
		return
	}
	r.current.append(renderFragment(r.ctx, inline.SoftBreak{})...)
}

func (r *renderer) renderHTML(raw string) {
	if tag, ok := parseHTMLTag(raw); ok && tag.isLineBreak() {
		r.current.append(renderFragment(r.ctx, inline.LineBreak{})...)
		r.skipNextWhitespace = true
		return
	}
	r.current.append(renderFragment(r.ctx, inline.HTML{Content: raw})...)
}

func (r *renderer) renderImage(img inline.Image) {
	resolved, ok := r.ctx.Images[img.Source]
	if !ok || IsNilImage(resolved) {
		return
	}
	r.runs = append(r.runs, r.current, ImageRun{
		Source: img.Source,
		Alt:    inline.PlainText(img.Inner),
		Image:  resolved,
	})
	r.open()
}

// fragment renders one node into styled segments. Each fragment keeps its
// own whitespace state, so a <br> inside a container only swallows
// whitespace inside that container.
type fragment struct {
	ctx                *Context
	segs               []Segment
	skipNextWhitespace bool
}

func renderFragment(ctx *Context, n inline.Node) []Segment {
	f := &fragment{ctx: ctx}
	f.render(n, ctx.Attributes)
	return f.segs
}

func (f *fragment) emit(text string, attrs Attributes) {
	if text == "" {
		return
	}
	f.segs = append(f.segs, Segment{Text: text, Attributes: attrs})
}

func (f *fragment) renderChildren(nodes []inline.Node, attrs Attributes) {
	for _, n := range nodes {
		f.render(n, attrs)
	}
}

func (f *fragment) render(n inline.Node, attrs Attributes) {
	styles := f.ctx.Styles

	switch v := n.(type) {
	case inline.Text:
		text := v.Content
		if f.skipNextWhitespace {
			f.skipNextWhitespace = false
			text = strings.TrimLeftFunc(text, unicode.IsSpace)
		}
		f.emit(text, attrs)
	case inline.SoftBreak:
		if f.skipNextWhitespace {
			f.skipNextWhitespace = false
			return
		}
		f.emit(softBreakText, attrs)
	case inline.LineBreak:
		f.emit(lineBreakText, attrs)
	case inline.Code:
		f.emit(v.Content, styles.Code.Apply(attrs))
	case inline.HTML:
		if tag, ok := parseHTMLTag(v.Content); ok && tag.isLineBreak() {
			f.emit(lineBreakText, attrs)
			f.skipNextWhitespace = true
			return
		}
		f.emit(v.Content, attrs)
	case inline.Emphasis:
		f.renderChildren(v.Inner, styles.Emphasis.Apply(attrs))
	case inline.Strong:
		f.renderChildren(v.Inner, styles.Strong.Apply(attrs))
	case inline.Strikethrough:
		f.renderChildren(v.Inner, styles.Strikethrough.Apply(attrs))
	case inline.Link:
		attrs.Link = resolveLink(f.ctx.BaseURL, v.Destination)
		f.renderChildren(v.Inner, styles.Link.Apply(attrs))
	case inline.Image:
		// Only top-level images become image runs; nested ones show their
		// alt text.
		f.renderChildren(v.Inner, attrs)
	default:
		f.renderChildren(n.Children(), attrs)
	}
}

// resolveLink returns the absolute form of dest, or "" if dest is not a
// valid URL reference.
func resolveLink(base *url.URL, dest string) string {
	u, err := url.Parse(strings.TrimSpace(dest))
	if err != nil {
		return ""
	}
	if base != nil {
		u = base.ResolveReference(u)
	}
	return u.String()
}
