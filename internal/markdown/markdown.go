// Package markdown adapts goldmark to the inline node model.
package markdown

import (
	"unicode/utf8"

	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	ferrors "git.home.luguber.info/inful/mdinline/internal/foundation/errors"
	"git.home.luguber.info/inful/mdinline/internal/inline"
)

// ParseBody parses a Markdown body into a goldmark AST.
func ParseBody(body []byte, opts Options) (gmast.Node, error) {
	if !utf8.Valid(body) {
		return nil, ferrors.ParseError("markdown is not valid UTF-8").Build()
	}
	return opts.goldmark().Parser().Parse(text.NewReader(body)), nil
}

// ParseInlines parses body with DefaultOptions and returns the inline
// content of every paragraph and heading in document order. Code blocks and
// HTML blocks carry no inline content and are skipped.
func ParseInlines(body []byte) ([][]inline.Node, error) {
	return Parse(body, DefaultOptions())
}

// Parse is ParseInlines with explicit options.
func Parse(body []byte, opts Options) ([][]inline.Node, error) {
	root, err := ParseBody(body, opts)
	if err != nil {
		return nil, err
	}

	var blocks [][]inline.Node
	err = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch n.Kind() {
		case gmast.KindParagraph, gmast.KindTextBlock, gmast.KindHeading:
			blocks = append(blocks, convertChildren(n, body))
			return gmast.WalkSkipChildren, nil
		case gmast.KindCodeBlock, gmast.KindFencedCodeBlock, gmast.KindHTMLBlock:
			return gmast.WalkSkipChildren, nil
		}
		return gmast.WalkContinue, nil
	})
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryParse, "failed to walk markdown").Build()
	}
	return blocks, nil
}
