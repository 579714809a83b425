package render

import (
	"image"
	"image/color"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/mdinline/internal/inline"
)

func counterIDs() func() string {
	n := 0
	return func() string {
		n++
		return "t" + strconv.Itoa(n)
	}
}

func testContext(images Images) Context {
	return Context{
		Styles: TextStyles{
			Code:          Monospaced(),
			Emphasis:      Italic(),
			Strong:        Bold(),
			Strikethrough: StrikethroughLine(),
			Link:          Combine(Underlined(), Foreground(color.RGBA{B: 238, A: 255})),
		},
		Images:     images,
		Attributes: DefaultAttributes(),
		NewID:      counterIDs(),
	}
}

// texts returns the unstyled text of every text run and "<img:source>" for
// image runs.
func texts(runs []Run) []string {
	out := make([]string, 0, len(runs))
	for _, r := range runs {
		switch v := r.(type) {
		case *TextRun:
			out = append(out, v.String())
		case ImageRun:
			out = append(out, "<img:"+v.Source+">")
		}
	}
	return out
}

func testImage() image.Image {
	return image.NewRGBA(image.Rect(0, 0, 4, 3))
}

func TestRender_NoImagesYieldsSingleTextRun(t *testing.T) {
	nodes := []inline.Node{
		inline.Text{Content: "Hello"},
		inline.SoftBreak{},
		inline.Strong{Inner: []inline.Node{inline.Text{Content: "bold"}}},
		inline.LineBreak{},
		inline.Code{Content: "x()"},
	}
	runs := Render(nodes, testContext(nil))
	require.Len(t, runs, 1)
	require.Equal(t, "Hello bold\nx()", runs[0].(*TextRun).String())
}

func TestRender_EmptyInput(t *testing.T) {
	runs := Render(nil, testContext(nil))
	require.Len(t, runs, 1)
	require.Empty(t, runs[0].(*TextRun).Segments)
}

func TestRender_ResolvedImageSplitsRuns(t *testing.T) {
	img := testImage()
	nodes := []inline.Node{
		inline.Text{Content: "See "},
		inline.Image{Source: "a.png", Inner: []inline.Node{inline.Text{Content: "diagram"}}},
		inline.Text{Content: " here"},
	}
	runs := Render(nodes, testContext(Images{"a.png": img}))
	require.Equal(t, []string{"See ", "<img:a.png>", " here"}, texts(runs))

	ir := runs[1].(ImageRun)
	require.Equal(t, "a.png", ir.Key())
	require.Equal(t, "diagram", ir.Alt)
	require.Equal(t, image.Pt(4, 3), ir.Size())
	require.NotEqual(t, runs[0].Key(), runs[2].Key())
}

func TestRender_UnresolvedImageMergesText(t *testing.T) {
	nodes := []inline.Node{
		inline.Text{Content: "See "},
		inline.Image{Source: "a.png"},
		inline.Text{Content: " here"},
	}
	runs := Render(nodes, testContext(Images{}))
	require.Equal(t, []string{"See  here"}, texts(runs))
}

func TestRender_ImageBoundariesAlwaysClose(t *testing.T) {
	img := testImage()
	nodes := []inline.Node{
		inline.Image{Source: "a.png"},
		inline.Image{Source: "missing.png"},
		inline.Image{Source: "b.png"},
	}
	runs := Render(nodes, testContext(Images{"a.png": img, "b.png": img}))
	require.Equal(t, []string{"", "<img:a.png>", "", "<img:b.png>", ""}, texts(runs))
}

func TestRender_ImageRunsFollowDocumentOrder(t *testing.T) {
	img := testImage()
	nodes := []inline.Node{
		inline.Image{Source: "b.png"},
		inline.Text{Content: "x"},
		inline.Image{Source: "a.png"},
		inline.Image{Source: "b.png"},
	}
	runs := Render(nodes, testContext(Images{"a.png": img, "b.png": img}))

	var sources []string
	for _, r := range runs {
		if ir, ok := r.(ImageRun); ok {
			sources = append(sources, ir.Source)
		}
	}
	require.Equal(t, []string{"b.png", "a.png", "b.png"}, sources)
}

func TestRender_BreakTagAbsorbsSoftBreak(t *testing.T) {
	with := Render([]inline.Node{
		inline.HTML{Content: "<br>"}, inline.SoftBreak{}, inline.Text{Content: "hello"},
	}, testContext(nil))
	without := Render([]inline.Node{
		inline.HTML{Content: "<br>"}, inline.Text{Content: "hello"},
	}, testContext(nil))
	require.Equal(t, texts(without), texts(with))
	require.Equal(t, []string{"\nhello"}, texts(with))
}

func TestRender_BreakTagTrimsLeadingWhitespaceOnce(t *testing.T) {
	runs := Render([]inline.Node{
		inline.HTML{Content: "<BR />"},
		inline.Text{Content: " \t hello "},
		inline.SoftBreak{},
		inline.Text{Content: " world"},
	}, testContext(nil))
	require.Equal(t, []string{"\nhello   world"}, texts(runs))
}

func TestRender_OtherHTMLIsLiteral(t *testing.T) {
	cases := []string{"<span class=\"x\">", "</span>", "<br", "<!-- c -->", "plain", "<b><i>"}
	for _, raw := range cases {
		runs := Render([]inline.Node{inline.HTML{Content: raw}, inline.SoftBreak{}}, testContext(nil))
		require.Equal(t, []string{raw + " "}, texts(runs), raw)
	}
}

func TestRender_NestedBreakDoesNotLeak(t *testing.T) {
	runs := Render([]inline.Node{
		inline.Emphasis{Inner: []inline.Node{inline.Text{Content: "a"}, inline.HTML{Content: "<br>"}, inline.SoftBreak{}, inline.Text{Content: " b"}}},
		inline.SoftBreak{},
		inline.Text{Content: "c"},
	}, testContext(nil))
	require.Equal(t, []string{"a\n b c"}, texts(runs))
}

func TestRender_Styles(t *testing.T) {
	base, err := url.Parse("https://example.com/docs/")
	require.NoError(t, err)

	rc := testContext(nil)
	rc.BaseURL = base
	runs := Render([]inline.Node{
		inline.Text{Content: "a"},
		inline.Text{Content: "b"},
		inline.Emphasis{Inner: []inline.Node{inline.Strong{Inner: []inline.Node{inline.Text{Content: "c"}}}}},
		inline.Link{Destination: "guide.md", Inner: []inline.Node{inline.Text{Content: "d"}}},
		inline.Strikethrough{Inner: []inline.Node{inline.Code{Content: "e"}}},
	}, rc)

	require.Len(t, runs, 1)
	segs := runs[0].(*TextRun).Segments
	require.Len(t, segs, 4)

	require.Equal(t, "ab", segs[0].Text, "adjacent plain text coalesced")
	require.Equal(t, DefaultAttributes(), segs[0].Attributes)

	require.Equal(t, "c", segs[1].Text)
	require.True(t, segs[1].Attributes.Bold)
	require.True(t, segs[1].Attributes.Italic)

	require.Equal(t, "d", segs[2].Text)
	require.Equal(t, "https://example.com/docs/guide.md", segs[2].Attributes.Link)
	require.True(t, segs[2].Attributes.Underline)

	require.Equal(t, "e", segs[3].Text)
	require.True(t, segs[3].Attributes.Monospace)
	require.True(t, segs[3].Attributes.Strikethrough)
	require.False(t, segs[3].Attributes.Bold, "styles do not leak to siblings")
}

func TestRender_LinkWithoutBaseAndInvalidDestination(t *testing.T) {
	runs := Render([]inline.Node{
		inline.Link{Destination: "/abs", Inner: []inline.Node{inline.Text{Content: "ok"}}},
		inline.Link{Destination: "%zz", Inner: []inline.Node{inline.Text{Content: "bad"}}},
	}, testContext(nil))
	segs := runs[0].(*TextRun).Segments
	require.Equal(t, "/abs", segs[0].Attributes.Link)
	require.Empty(t, segs[1].Attributes.Link)
}

func TestRender_NestedImageShowsAltText(t *testing.T) {
	img := testImage()
	runs := Render([]inline.Node{
		inline.Strong{Inner: []inline.Node{inline.Image{Source: "a.png", Inner: []inline.Node{inline.Text{Content: "alt"}}}}},
	}, testContext(Images{"a.png": img}))
	require.Equal(t, []string{"alt"}, texts(runs))
}

func TestRender_Idempotent(t *testing.T) {
	img := testImage()
	nodes := []inline.Node{
		inline.Text{Content: "x"}, inline.Image{Source: "a.png"}, inline.HTML{Content: "<br>"}, inline.SoftBreak{},
	}
	first := Render(nodes, testContext(Images{"a.png": img}))
	second := Render(nodes, testContext(Images{"a.png": img}))
	require.Equal(t, first, second)
}

func TestRender_DefaultIDsAreUnique(t *testing.T) {
	img := testImage()
	runs := Render([]inline.Node{inline.Image{Source: "a.png"}}, Context{Images: Images{"a.png": img}})
	require.Len(t, runs, 3)
	require.NotEmpty(t, runs[0].Key())
	require.NotEqual(t, runs[0].Key(), runs[2].Key())
}

func TestRender_BreakTagWhitespaceState(t *testing.T) {
	img := testImage()
	tests := []struct {
		name  string
		nodes []inline.Node
		want  []string
	}{
		{
			name:  "flag survives a resolved image",
			nodes: []inline.Node{inline.HTML{Content: "<br>"}, inline.Image{Source: "a.png"}, inline.Text{Content: " x"}},
			want:  []string{"\n", "<img:a.png>", "x"},
		},
		{
			name:  "flag survives an unresolved image",
			nodes: []inline.Node{inline.HTML{Content: "<br>"}, inline.Image{Source: "missing.png"}, inline.Text{Content: " x"}},
			want:  []string{"\nx"},
		},
		{
			name:  "whitespace-only text consumes the flag",
			nodes: []inline.Node{inline.HTML{Content: "<br>"}, inline.Text{Content: "  "}, inline.SoftBreak{}},
			want:  []string{"\n "},
		},
		{
			name:  "consecutive break tags",
			nodes: []inline.Node{inline.HTML{Content: "<br>"}, inline.HTML{Content: "<br/>"}, inline.SoftBreak{}, inline.Text{Content: " y"}},
			want:  []string{"\n\n y"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runs := Render(tt.nodes, testContext(Images{"a.png": img}))
			require.Equal(t, tt.want, texts(runs))
		})
	}
}

func TestRender_TypedNilImageIsDropped(t *testing.T) {
	nodes := []inline.Node{
		inline.Text{Content: "a"},
		inline.Image{Source: "nil.png"},
		inline.Text{Content: "b"},
	}
	runs := Render(nodes, testContext(Images{"nil.png": (*image.RGBA)(nil)}))
	require.Equal(t, []string{"ab"}, texts(runs))
	require.Equal(t, image.Point{}, ImageRun{Image: (*image.RGBA)(nil)}.Size())
}

func TestRender_NonComparableColorsMerge(t *testing.T) {
	rc := testContext(nil)
	rc.Attributes.Foreground = paletteColor{rgba: []uint32{0xffff, 0, 0, 0xffff}}
	runs := Render([]inline.Node{
		inline.Text{Content: "a"},
		inline.SoftBreak{},
		inline.Text{Content: "b"},
	}, rc)
	require.Len(t, runs, 1)
	tr := runs[0].(*TextRun)
	require.Len(t, tr.Segments, 1)
	require.Equal(t, "a b", tr.Segments[0].Text)
}
