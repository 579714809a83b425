package render

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseHTMLTag(t *testing.T) {
	cases := []struct {
		raw  string
		ok   bool
		want htmlTag
	}{
		{"<br>", true, htmlTag{name: "br"}},
		{"<BR>", true, htmlTag{name: "br"}},
		{" <br/> ", true, htmlTag{name: "br", selfClosing: true}},
		{"</br>", true, htmlTag{name: "br", closing: true}},
		{"<span class=\"a\">", true, htmlTag{name: "span"}},
		{"</em>", true, htmlTag{name: "em", closing: true}},
		{"<br><br>", false, htmlTag{}},
		{"<br> tail", false, htmlTag{}},
		{"text", false, htmlTag{}},
		{"<!-- comment -->", false, htmlTag{}},
		{"", false, htmlTag{}},
	}
	for _, tc := range cases {
		got, ok := parseHTMLTag(tc.raw)
		require.Equal(t, tc.ok, ok, tc.raw)
		require.Equal(t, tc.want, got, tc.raw)
	}
}
