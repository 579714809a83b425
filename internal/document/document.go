// Package document loads a markdown file into the inline block sequences the
// renderer consumes.
package document

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	ferrors "git.home.luguber.info/inful/mdinline/internal/foundation/errors"
	"git.home.luguber.info/inful/mdinline/internal/inline"
	"git.home.luguber.info/inful/mdinline/internal/markdown"
)

// Document is a parsed markdown file.
type Document struct {
	Path        string
	Meta        Meta
	Body        []byte
	Blocks      [][]inline.Node
	Fingerprint string
}

// Dir returns the directory containing the document, or "." for documents
// without a path.
func (d *Document) Dir() string {
	if d.Path == "" {
		return "."
	}
	return filepath.Dir(d.Path)
}

// Nodes returns all blocks as one sequence, blocks separated by a blank
// line.
func (d *Document) Nodes() []inline.Node {
	return Join(d.Blocks)
}

// Join concatenates blocks, separating them with two line breaks.
func Join(blocks [][]inline.Node) []inline.Node {
	var out []inline.Node
	for i, b := range blocks {
		if i > 0 {
			out = append(out, inline.LineBreak{}, inline.LineBreak{})
		}
		out = append(out, b...)
	}
	return out
}

// Load reads and parses the document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ferrors.NotFoundError("document not found").
				WithCause(err).
				WithContext("file", path).
				Build()
		}
		return nil, ferrors.FileSystemError("failed to read document").
			WithCause(err).
			WithContext("file", path).
			Build()
	}
	return Parse(data, path, markdown.DefaultOptions())
}

// Parse parses data as a markdown document. path is recorded but not read.
func Parse(data []byte, path string, opts markdown.Options) (*Document, error) {
	front, body, _, err := splitFrontMatter(data)
	if err != nil {
		return nil, ferrors.ParseError("invalid front matter").
			WithCause(err).
			WithContext("file", path).
			Build()
	}
	meta, err := parseMeta(front)
	if err != nil {
		return nil, ferrors.ParseError("invalid front matter").
			WithCause(err).
			WithContext("file", path).
			Build()
	}
	blocks, err := markdown.Parse(body, opts)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryParse, "failed to parse markdown").
			WithContext("file", path).
			Build()
	}
	return &Document{
		Path:        path,
		Meta:        meta,
		Body:        body,
		Blocks:      blocks,
		Fingerprint: Fingerprint(front, body),
	}, nil
}
