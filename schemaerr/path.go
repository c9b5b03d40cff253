package schemaerr

import (
	"strconv"
	"strings"
)

// Segment is one step from a container value to one of its children:
// either an object property name or an array index.
type Segment struct {
	Key     string
	Index   int
	IsIndex bool
}

// Key returns a property-name segment.
func Key(name string) Segment {
	return Segment{Key: name}
}

// Index returns an array-index segment.
func Index(i int) Segment {
	return Segment{Index: i, IsIndex: true}
}

// Path locates a value inside the validated document, from the root.
// The empty Path is the root itself.
type Path []Segment

// Append returns a new Path with seg added; p is never modified.
func (p Path) Append(seg Segment) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, seg)
}

// String renders the path in dotted form, e.g. "children[0].children".
func (p Path) String() string {
	var b strings.Builder
	for i, seg := range p {
		if seg.IsIndex {
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(seg.Index))
			b.WriteByte(']')
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(seg.Key)
	}
	return b.String()
}

// Pointer renders the path as an RFC 6901 JSON pointer, e.g.
// "/children/0/children". The root is the empty string.
func (p Path) Pointer() string {
	var b strings.Builder
	for _, seg := range p {
		b.WriteByte('/')
		if seg.IsIndex {
			b.WriteString(strconv.Itoa(seg.Index))
			continue
		}
		b.WriteString(escapePointer(seg.Key))
	}
	return b.String()
}

// Equal reports whether both paths have the same segments.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func escapePointer(s string) string {
	return pointerEscaper.Replace(s)
}
