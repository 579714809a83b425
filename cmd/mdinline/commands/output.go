package commands

import (
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"os"
	"strings"

	gcolor "github.com/gookit/color"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/mdinline/internal/config"
	ferrors "git.home.luguber.info/inful/mdinline/internal/foundation/errors"
	"git.home.luguber.info/inful/mdinline/internal/inline"
	"git.home.luguber.info/inful/mdinline/internal/render"
)

// Color modes accepted by --color.
const (
	colorAuto   = "auto"
	colorAlways = "always"
	colorNever  = "never"
)

type documentView struct {
	File   string      `json:"file" yaml:"file"`
	Title  string      `json:"title,omitempty" yaml:"title,omitempty"`
	Pass   uint64      `json:"pass,omitempty" yaml:"pass,omitempty"`
	Images int         `json:"images" yaml:"images"`
	Blocks [][]runView `json:"blocks" yaml:"blocks"`
}

type runView struct {
	Type     string        `json:"type" yaml:"type"`
	ID       string        `json:"id,omitempty" yaml:"id,omitempty"`
	Text     string        `json:"text,omitempty" yaml:"text,omitempty"`
	Segments []segmentView `json:"segments,omitempty" yaml:"segments,omitempty"`
	Source   string        `json:"source,omitempty" yaml:"source,omitempty"`
	Alt      string        `json:"alt,omitempty" yaml:"alt,omitempty"`
	Width    int           `json:"width,omitempty" yaml:"width,omitempty"`
	Height   int           `json:"height,omitempty" yaml:"height,omitempty"`
}

type segmentView struct {
	Text       string   `json:"text" yaml:"text"`
	Styles     []string `json:"styles,omitempty" yaml:"styles,omitempty"`
	Font       string   `json:"font,omitempty" yaml:"font,omitempty"`
	Scale      float64  `json:"scale,omitempty" yaml:"scale,omitempty"`
	Foreground string   `json:"foreground,omitempty" yaml:"foreground,omitempty"`
	Background string   `json:"background,omitempty" yaml:"background,omitempty"`
	Link       string   `json:"link,omitempty" yaml:"link,omitempty"`
}

type refView struct {
	Source string `json:"source" yaml:"source"`
	Alt    string `json:"alt,omitempty" yaml:"alt,omitempty"`
}

func newRunView(r render.Run) runView {
	switch r := r.(type) {
	case *render.TextRun:
		v := runView{Type: "text", ID: r.ID, Text: r.String()}
		for _, s := range r.Segments {
			v.Segments = append(v.Segments, newSegmentView(s))
		}
		return v
	case render.ImageRun:
		size := r.Size()
		return runView{Type: "image", Source: r.Source, Alt: r.Alt, Width: size.X, Height: size.Y}
	default:
		return runView{Type: fmt.Sprintf("%T", r)}
	}
}

func newSegmentView(s render.Segment) segmentView {
	a := s.Attributes
	v := segmentView{
		Text:       s.Text,
		Styles:     styleNames(a),
		Font:       a.Font,
		Foreground: hexColor(a.Foreground),
		Background: hexColor(a.Background),
		Link:       a.Link,
	}
	if a.Scale != 0 && a.Scale != 1 {
		v.Scale = a.Scale
	}
	return v
}

func styleNames(a render.Attributes) []string {
	var names []string
	for _, f := range []struct {
		on   bool
		name string
	}{
		{a.Bold, "bold"},
		{a.Italic, "italic"},
		{a.Monospace, "monospace"},
		{a.Strikethrough, "strikethrough"},
		{a.Underline, "underline"},
	} {
		if f.on {
			names = append(names, f.name)
		}
	}
	return names
}

func hexColor(c color.Color) string {
	if c == nil {
		return ""
	}
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}

func newDocumentView(file, title string, pass uint64, images render.Images, blocks [][]render.Run) documentView {
	v := documentView{File: file, Title: title, Pass: pass, Images: len(images), Blocks: make([][]runView, 0, len(blocks))}
	for _, runs := range blocks {
		rv := make([]runView, 0, len(runs))
		for _, r := range runs {
			rv = append(rv, newRunView(r))
		}
		v.Blocks = append(v.Blocks, rv)
	}
	return v
}

// printer writes documents and references in one output format.
type printer struct {
	w      io.Writer
	format config.OutputFormat
	color  bool
}

func newPrinter(w io.Writer, format config.OutputFormat, mode string) (*printer, error) {
	p := &printer{w: w, format: format}
	switch mode {
	case colorAlways:
		p.color = true
	case colorNever:
	case colorAuto, "":
		p.color = isTerminal(w) && gcolor.SupportColor() && os.Getenv("NO_COLOR") == ""
	default:
		return nil, ferrors.ValidationError("invalid color mode").
			WithContext("value", mode).
			WithContext("allowed", "auto, always, never").
			Build()
	}
	return p, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}

func (p *printer) document(v documentView) error {
	switch p.format {
	case config.OutputFormatJSON:
		return p.json(v)
	case config.OutputFormatYAML:
		return p.yaml(v)
	default:
		return p.text(v)
	}
}

func (p *printer) refs(refs []inline.ImageReference) error {
	views := make([]refView, 0, len(refs))
	for _, r := range refs {
		views = append(views, refView{Source: r.Source, Alt: r.AltText})
	}
	switch p.format {
	case config.OutputFormatJSON:
		return p.json(views)
	case config.OutputFormatYAML:
		return p.yaml(views)
	}
	for _, r := range views {
		if r.Alt == "" {
			if _, err := fmt.Fprintln(p.w, r.Source); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(p.w, "%s\t%s\n", r.Source, r.Alt); err != nil {
			return err
		}
	}
	return nil
}

func (p *printer) json(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (p *printer) yaml(v any) error {
	enc := yaml.NewEncoder(p.w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		_ = enc.Close()
		return err
	}
	return enc.Close()
}

func (p *printer) text(v documentView) error {
	var b strings.Builder
	if v.Pass > 0 {
		fmt.Fprintf(&b, "--- %s (pass %d) ---\n", v.File, v.Pass)
	}
	for i, runs := range v.Blocks {
		if i > 0 {
			b.WriteString("\n")
		}
		for _, r := range runs {
			p.writeRun(&b, r)
		}
	}
	_, err := io.WriteString(p.w, b.String())
	return err
}

func (p *printer) writeRun(b *strings.Builder, r runView) {
	var line string
	switch r.Type {
	case "image":
		label := r.Alt
		if label == "" {
			label = r.Source
		}
		line = fmt.Sprintf("[image: %s %dx%d]", label, r.Width, r.Height)
		if p.color {
			line = fmt.Sprintf(gcolor.FullColorTpl, gcolor.OpFuzzy.Code(), line)
		}
	default:
		if r.Text == "" {
			return
		}
		var sb strings.Builder
		for _, s := range r.Segments {
			sb.WriteString(p.styled(s))
		}
		line = sb.String()
	}
	b.WriteString(line)
	if !strings.HasSuffix(line, "\n") {
		b.WriteString("\n")
	}
}

// styled renders a segment with ANSI attributes when color is on.
func (p *printer) styled(s segmentView) string {
	if !p.color {
		return s.Text
	}
	style := &gcolor.RGBStyle{}
	if s.Foreground != "" {
		style.SetFg(gcolor.HEX(s.Foreground))
	}
	if s.Background != "" {
		style.SetBg(gcolor.HEX(s.Background, true))
	}
	for _, name := range s.Styles {
		switch name {
		case "bold":
			style.AddOpts(gcolor.OpBold)
		case "italic":
			style.AddOpts(gcolor.OpItalic)
		case "strikethrough":
			style.AddOpts(gcolor.OpStrikethrough)
		case "underline":
			style.AddOpts(gcolor.OpUnderscore)
		}
	}
	code := style.String()
	if code == "" {
		return s.Text
	}
	return fmt.Sprintf(gcolor.FullColorTpl, code, s.Text)
}
