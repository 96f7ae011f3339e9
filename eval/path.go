package eval

import (
	"strconv"
	"strings"
)

// PathElement is one step of a NormalizedPath: either an object member
// name or an array index (RFC 9535 §2.7).
type PathElement struct {
	Name    string
	Index   int
	IsIndex bool
}

func nameElement(name string) PathElement  { return PathElement{Name: name} }
func indexElement(i int) PathElement       { return PathElement{Index: i, IsIndex: true} }

// NormalizedPath identifies exactly where a node was found within the
// queried document, as the sequence of member names / array indices
// leading to it from the root.
type NormalizedPath []PathElement

func (p NormalizedPath) withName(name string) NormalizedPath {
	next := make(NormalizedPath, len(p)+1)
	copy(next, p)
	next[len(p)] = nameElement(name)
	return next
}

func (p NormalizedPath) withIndex(i int) NormalizedPath {
	next := make(NormalizedPath, len(p)+1)
	copy(next, p)
	next[len(p)] = indexElement(i)
	return next
}

// String renders the canonical normalized-path form (RFC 9535 §2.7), e.g.
// $['foo'][42]. The root is always "$", and names are always rendered in
// single-quoted bracket notation regardless of whether the original query
// used shorthand ".foo".
func (p NormalizedPath) String() string {
	var b strings.Builder
	b.WriteByte('$')
	for _, el := range p {
		if el.IsIndex {
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(el.Index))
			b.WriteByte(']')
			continue
		}
		b.WriteString("['")
		for _, r := range el.Name {
			switch r {
			case '\'':
				b.WriteString(`\'`)
			case '\\':
				b.WriteString(`\\`)
			default:
				b.WriteRune(r)
			}
		}
		b.WriteString("']")
	}
	return b.String()
}

// ToJSONPointer renders p as an RFC 6901 JSON Pointer, escaping '~' as
// "~0" and '/' as "~1" within member names.
func (p NormalizedPath) ToJSONPointer() string {
	var b strings.Builder
	for _, el := range p {
		b.WriteByte('/')
		if el.IsIndex {
			b.WriteString(strconv.Itoa(el.Index))
			continue
		}
		for _, r := range el.Name {
			switch r {
			case '~':
				b.WriteString("~0")
			case '/':
				b.WriteString("~1")
			default:
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}
