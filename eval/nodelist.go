package eval

import (
	"strconv"

	"github.com/hiltontj/go-jsonpath/value"
)

// NodeList is the ordered result of evaluating a query: the values
// selected, without their locations. It corresponds to the reference
// implementation's NodeList type (original_source/serde_json_path_core/
// src/node.rs), with Go-idiomatic exported-method casing.
type NodeList struct {
	nodes []value.Value
}

// Len returns the number of nodes in the list.
func (n NodeList) Len() int { return len(n.nodes) }

// IsEmpty reports whether the list has no nodes.
func (n NodeList) IsEmpty() bool { return len(n.nodes) == 0 }

// All returns every node in the list, in document order.
func (n NodeList) All() []value.Value { return n.nodes }

// First returns the first node, or nil if the list is empty.
func (n NodeList) First() value.Value {
	if len(n.nodes) == 0 {
		return nil
	}
	return n.nodes[0]
}

// Last returns the last node, or nil if the list is empty.
func (n NodeList) Last() value.Value {
	if len(n.nodes) == 0 {
		return nil
	}
	return n.nodes[len(n.nodes)-1]
}

// Get returns the node at index i, or nil if i is out of range.
func (n NodeList) Get(i int) value.Value {
	if i < 0 || i >= len(n.nodes) {
		return nil
	}
	return n.nodes[i]
}

// AtMostOneError is returned by AtMostOne when the list contains more than
// one node.
type AtMostOneError struct {
	Count int
}

func (e *AtMostOneError) Error() string {
	return "nodelist expected to contain at most one entry, but instead contains " + strconv.Itoa(e.Count) + " entries"
}

// AtMostOne extracts the list's sole node, if it has one. A list with zero
// nodes yields (nil, nil); a list with more than one is an error.
func (n NodeList) AtMostOne() (value.Value, error) {
	switch len(n.nodes) {
	case 0:
		return nil, nil
	case 1:
		return n.nodes[0], nil
	default:
		return nil, &AtMostOneError{Count: len(n.nodes)}
	}
}

// ExactlyOneError is returned by ExactlyOne when the list does not contain
// exactly one node.
type ExactlyOneError struct {
	Empty bool
	Count int
}

func (e *ExactlyOneError) Error() string {
	if e.Empty {
		return "nodelist expected to contain one entry, but is empty"
	}
	return "nodelist expected to contain one entry, but instead contains " + strconv.Itoa(e.Count) + " entries"
}

// IsEmpty reports whether the error is the "empty list" variant.
func (e *ExactlyOneError) IsEmpty() bool { return e.Empty }

// IsMoreThanOne reports whether the error is the "more than one" variant.
func (e *ExactlyOneError) IsMoreThanOne() bool { return !e.Empty }

// ExactlyOne extracts the list's sole node, erroring if it has zero or
// more than one.
func (n NodeList) ExactlyOne() (value.Value, error) {
	switch len(n.nodes) {
	case 0:
		return nil, &ExactlyOneError{Empty: true}
	case 1:
		return n.nodes[0], nil
	default:
		return nil, &ExactlyOneError{Count: len(n.nodes)}
	}
}

// LocatedNode pairs a selected value with the normalized path it was found
// at.
type LocatedNode struct {
	Path NormalizedPath
	Node value.Value
}

// LocatedNodeList is the ordered result of evaluating a query with
// location tracking.
type LocatedNodeList struct {
	located []LocatedNode
}

// Len returns the number of located nodes.
func (n LocatedNodeList) Len() int { return len(n.located) }

// IsEmpty reports whether the list has no nodes.
func (n LocatedNodeList) IsEmpty() bool { return len(n.located) == 0 }

// All returns every located node, in document order.
func (n LocatedNodeList) All() []LocatedNode { return n.located }

// Nodes discards location information, returning a plain NodeList.
func (n LocatedNodeList) Nodes() NodeList {
	nodes := make([]value.Value, len(n.located))
	for i, l := range n.located {
		nodes[i] = l.Node
	}
	return NodeList{nodes: nodes}
}

// Locations returns just the normalized paths, in document order.
func (n LocatedNodeList) Locations() []NormalizedPath {
	paths := make([]NormalizedPath, len(n.located))
	for i, l := range n.located {
		paths[i] = l.Path
	}
	return paths
}

// Dedup returns a copy of the list with duplicate locations removed,
// keeping the first occurrence of each. Two queries that both select a
// node by distinct paths (e.g. via a union) are not duplicates of each
// other unless the paths themselves match.
func (n LocatedNodeList) Dedup() LocatedNodeList {
	seen := make(map[string]bool, len(n.located))
	out := make([]LocatedNode, 0, len(n.located))
	for _, l := range n.located {
		key := l.Path.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, l)
	}
	return LocatedNodeList{located: out}
}

// DedupInPlace removes duplicate-location entries from n, replacing n with
// the result of Dedup.
func (n *LocatedNodeList) DedupInPlace() {
	*n = n.Dedup()
}
