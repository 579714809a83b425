package document

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/mdinline/internal/foundation/errors"
	"git.home.luguber.info/inful/mdinline/internal/inline"
	"git.home.luguber.info/inful/mdinline/internal/markdown"
)

func TestSplitFrontMatter(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		wantFront string
		wantBody  string
		wantOK    bool
		wantErr   bool
	}{
		{name: "none", in: "hello\n", wantBody: "hello\n"},
		{name: "yaml", in: "---\ntitle: x\n---\nbody\n", wantFront: "title: x\n", wantBody: "body\n", wantOK: true},
		{name: "crlf", in: "---\r\ntitle: x\r\n---\r\nbody", wantFront: "title: x\r\n", wantBody: "body", wantOK: true},
		{name: "empty block", in: "---\n---\nbody", wantFront: "", wantBody: "body", wantOK: true},
		{name: "empty block at eof", in: "---\n---", wantOK: true},
		{name: "closing at eof", in: "---\ntitle: x\n---", wantFront: "title: x\n", wantOK: true},
		{name: "unterminated", in: "---\ntitle: x\n", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			front, body, ok, err := splitFrontMatter([]byte(tt.in))
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnterminatedFrontMatter)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantFront, string(front))
			assert.Equal(t, tt.wantBody, string(body))
		})
	}
}

func TestParse(t *testing.T) {
	src := "---\ntitle: Guide\nbase_url: https://example.com/docs/\nimage_base_url: https://cdn.example.com/\n---\n# Intro\n\nSee ![logo](logo.png).\n"

	doc, err := Parse([]byte(src), "guide.md", markdown.DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, Meta{
		Title:        "Guide",
		BaseURL:      "https://example.com/docs/",
		ImageBaseURL: "https://cdn.example.com/",
	}, doc.Meta)
	require.Len(t, doc.Blocks, 2)
	assert.Equal(t, []inline.Node{inline.Text{Content: "Intro"}}, doc.Blocks[0])
	assert.NotEmpty(t, doc.Fingerprint)
	assert.Equal(t, ".", doc.Dir())

	nodes := doc.Nodes()
	assert.Equal(t, inline.LineBreak{}, nodes[1])
	assert.Equal(t, inline.LineBreak{}, nodes[2])
	assert.Equal(t, []inline.ImageReference{{Source: "logo.png", AltText: "logo"}}, inline.ImageReferences(nodes))
}

func TestParseInvalidFrontMatter(t *testing.T) {
	_, err := Parse([]byte("---\ntitle: [\n---\nbody"), "bad.md", markdown.DefaultOptions())
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryParse))

	_, err = Parse([]byte("---\ntitle: x\n"), "open.md", markdown.DefaultOptions())
	require.ErrorIs(t, err, ErrUnterminatedFrontMatter)
}

func TestFingerprintIgnoresLineEndings(t *testing.T) {
	a, err := Parse([]byte("---\ntitle: x\n---\none\ntwo\n"), "", markdown.DefaultOptions())
	require.NoError(t, err)
	b, err := Parse([]byte("---\r\ntitle: x\r\n---\r\none\r\ntwo\r\n"), "", markdown.DefaultOptions())
	require.NoError(t, err)
	c, err := Parse([]byte("---\ntitle: x\n---\none\nthree\n"), "", markdown.DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, a.Fingerprint, b.Fingerprint)
	assert.NotEqual(t, a.Fingerprint, c.Fingerprint)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	require.NoError(t, os.WriteFile(path, []byte("Hello *world*\n"), 0o600))

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, dir, doc.Dir())
	assert.Equal(t, [][]inline.Node{{
		inline.Text{Content: "Hello "},
		inline.Emphasis{Inner: []inline.Node{inline.Text{Content: "world"}}},
	}}, doc.Blocks)

	_, err = Load(filepath.Join(dir, "missing.md"))
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryNotFound))
}
