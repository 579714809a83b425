package inline

import (
	"strconv"
	"strings"
)

// Equal reports whether a and b have the same variant, payload and children.
// Children are compared in order.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	if payload(a) != payload(b) {
		return false
	}
	return EqualNodes(a.Children(), b.Children())
}

// EqualNodes reports whether two sequences are element-wise Equal.
func EqualNodes(a, b []Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// Key returns a canonical encoding of n. Two nodes are Equal exactly when
// their keys are equal, so a Key can stand in for a hash in map lookups.
func Key(n Node) string {
	var b strings.Builder
	writeKey(&b, n)
	return b.String()
}

// KeyNodes is Key for a sequence.
func KeyNodes(nodes []Node) string {
	var b strings.Builder
	writeKeys(&b, nodes)
	return b.String()
}

func writeKeys(b *strings.Builder, nodes []Node) {
	b.WriteByte('[')
	for _, n := range nodes {
		writeKey(b, n)
	}
	b.WriteByte(']')
}

func writeKey(b *strings.Builder, n Node) {
	if n == nil {
		b.WriteString("nil;")
		return
	}
	b.WriteString(n.Kind().String())
	p := payload(n)
	// Length prefix keeps payloads containing delimiters unambiguous.
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(len(p)))
	b.WriteByte(':')
	b.WriteString(p)
	if n.Kind().IsContainer() {
		writeKeys(b, n.Children())
	}
	b.WriteByte(';')
}

func payload(n Node) string {
	switch v := n.(type) {
	case Text:
		return v.Content
	case Code:
		return v.Content
	case HTML:
		return v.Content
	case Link:
		return v.Destination
	case Image:
		return v.Source
	default:
		return ""
	}
}
