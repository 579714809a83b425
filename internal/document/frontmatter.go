package document

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

// ErrUnterminatedFrontMatter is returned when a document opens a YAML front
// matter block but never closes it.
var ErrUnterminatedFrontMatter = errors.New("front matter opened with --- but not closed")

// Meta holds the front matter fields mdinline understands. Unknown fields
// are ignored.
type Meta struct {
	Title        string `yaml:"title"`
	BaseURL      string `yaml:"base_url"`
	ImageBaseURL string `yaml:"image_base_url"`
}

// splitFrontMatter separates a leading `---` delimited YAML block from the
// markdown body. ok is false when content has no front matter, in which case
// body is content unchanged.
func splitFrontMatter(content []byte) (front, body []byte, ok bool, err error) {
	nl := newline(content)
	delim := []byte("---" + nl)
	if !bytes.HasPrefix(content, delim) {
		return nil, content, false, nil
	}

	rest := content[len(delim):]
	if bytes.Equal(rest, []byte("---")) {
		return []byte{}, []byte{}, true, nil
	}
	if bytes.HasPrefix(rest, delim) {
		return []byte{}, rest[len(delim):], true, nil
	}

	closing := []byte(nl + "---" + nl)
	idx := bytes.Index(rest, closing)
	if idx < 0 {
		// A closing delimiter on the last line without a trailing newline.
		if end := []byte(nl + "---"); bytes.HasSuffix(rest, end) {
			return rest[:len(rest)-len(end)+len(nl)], []byte{}, true, nil
		}
		return nil, nil, false, ErrUnterminatedFrontMatter
	}
	return rest[:idx+len(nl)], rest[idx+len(closing):], true, nil
}

func parseMeta(front []byte) (Meta, error) {
	var m Meta
	if len(bytes.TrimSpace(front)) == 0 {
		return m, nil
	}
	if err := yaml.Unmarshal(front, &m); err != nil {
		return Meta{}, err
	}
	return m, nil
}

// newline reports the line ending used by the first line of content.
func newline(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
