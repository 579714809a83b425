package render

import (
	"image"
	"reflect"
	"strings"
)

// Images maps an image source key to its resolved image. The renderer only
// reads it.
type Images map[string]image.Image

// Segment is a piece of text with uniform attributes.
type Segment struct {
	Text       string
	Attributes Attributes
}

// Run is one unit of renderer output: a *TextRun or an ImageRun.
type Run interface {
	// Key is the stable identity of the run. Image runs are keyed by
	// source, text runs by a synthetic unique id.
	Key() string

	run()
}

// TextRun is a sequence of styled segments laid out as one block of text.
type TextRun struct {
	ID       string
	Segments []Segment
}

func (r *TextRun) Key() string { return r.ID }
func (*TextRun) run()          {}

// String returns the unstyled text of the run.
func (r *TextRun) String() string {
	var b strings.Builder
	for _, s := range r.Segments {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Len returns the run length in bytes.
func (r *TextRun) Len() int {
	n := 0
	for _, s := range r.Segments {
		n += len(s.Text)
	}
	return n
}

// ImageRun places a resolved image between text runs.
type ImageRun struct {
	Source string
	Alt    string
	Image  image.Image
}

func (r ImageRun) Key() string { return r.Source }
func (ImageRun) run()          {}

// Size returns the pixel size of the image, or the zero point if the image
// is nil.
func (r ImageRun) Size() image.Point {
	if IsNilImage(r.Image) {
		return image.Point{}
	}
	return r.Image.Bounds().Size()
}

// IsNilImage reports whether img is nil or an interface holding a nil
// pointer, map, slice or similar, such as a (*image.RGBA)(nil).
func IsNilImage(img image.Image) bool {
	if img == nil {
		return true
	}
	v := reflect.ValueOf(img)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}

// append adds text to the run, merging with the last segment when the
// attributes match.
func (r *TextRun) append(segs ...Segment) {
	for _, s := range segs {
		if s.Text == "" {
			continue
		}
		if n := len(r.Segments); n > 0 && r.Segments[n-1].Attributes.Equal(s.Attributes) {
			r.Segments[n-1].Text += s.Text
			continue
		}
		r.Segments = append(r.Segments, s)
	}
}
