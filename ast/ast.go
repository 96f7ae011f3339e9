// Package ast defines the query syntax tree produced by the parser package
// and consumed by the eval package.
//
// The shapes here follow RFC 9535 §2 directly: a Query is a root identifier
// followed by zero or more Segments, each Segment holds one or more
// Selectors, and a filter Selector wraps a LogicalExpr tree whose leaves are
// Comparables and FilterPaths/FunctionCalls used as existence or boolean
// tests.
package ast

// Query is a complete, parsed JSONPath expression.
type Query struct {
	Segments []Segment
}

// IsSingular reports whether the query can select at most one node: every
// segment is a child segment with exactly one selector, and that selector
// is a Name or Index selector (RFC 9535 §2.3.5.1).
func (q *Query) IsSingular() bool {
	for _, seg := range q.Segments {
		if seg.Descendant || len(seg.Selectors) != 1 {
			return false
		}
		switch seg.Selectors[0].(type) {
		case NameSelector, IndexSelector:
			// ok
		default:
			return false
		}
	}
	return true
}

// Segment is one step of a query: either a child segment (".a", "[...]")
// or a descendant segment ("..a", "..[...]"), applying one or more
// selectors.
type Segment struct {
	Descendant bool
	Selectors  []Selector
}

// Selector is any of the five selector kinds RFC 9535 §2.3 defines.
type Selector interface {
	selectorNode()
}

// NameSelector selects the member of an object with the given name.
type NameSelector struct {
	Name string
}

func (NameSelector) selectorNode() {}

// WildcardSelector selects all children of a node (array elements or object
// member values).
type WildcardSelector struct{}

func (WildcardSelector) selectorNode() {}

// IndexSelector selects the array element at Index, with negative values
// counting from the end of the array (RFC 9535 §2.3.3).
type IndexSelector struct {
	Index int64
}

func (IndexSelector) selectorNode() {}

// SliceSelector selects a range of array elements. A nil component means
// the component was omitted from the source text, so the default applies
// (RFC 9535 §2.3.4.2).
type SliceSelector struct {
	Start *int64
	End   *int64
	Step  *int64
}

func (SliceSelector) selectorNode() {}

// FilterSelector selects children for which Expr evaluates to logical true
// (RFC 9535 §2.3.5).
type FilterSelector struct {
	Expr *LogicalExpr
}

func (FilterSelector) selectorNode() {}

// LogicalExpr is a boolean expression tree within a filter selector.
//
// Exactly one of the fields is set, matching the filter grammar's
// logical-or-expr / logical-and-expr / basic-expr production (RFC 9535
// §2.3.5.1):
//
//	Or, And   - non-empty slices of sub-expressions, left-associative
//	Not       - negates Operand
//	Test      - a bare existence/function test (no Compare)
//	Compare   - a comparison between two Comparables
type LogicalExpr struct {
	Or      []*LogicalExpr
	And     []*LogicalExpr
	Not     *LogicalExpr
	Test    *Test
	Compare *Comparison
}

// Test is a filter-query existence test or a function call used as a bare
// boolean expression.
type Test struct {
	Path     *FilterPath
	Function *FunctionCall
}

// Comparison is a single comparison-expr: Left Op Right (RFC 9535 §2.3.5.2).
type Comparison struct {
	Left  Comparable
	Op    CompOp
	Right Comparable
}

// CompOp is a comparison operator.
type CompOp int

const (
	OpEqual CompOp = iota
	OpNotEqual
	OpLess
	OpLessEqual
	OpGreater
	OpGreaterEqual
)

func (op CompOp) String() string {
	switch op {
	case OpEqual:
		return "=="
	case OpNotEqual:
		return "!="
	case OpLess:
		return "<"
	case OpLessEqual:
		return "<="
	case OpGreater:
		return ">"
	case OpGreaterEqual:
		return ">="
	default:
		return "?"
	}
}

// Comparable is one side of a Comparison: a literal, a singular query, or a
// function call (RFC 9535 §2.3.5.1's comparable production).
type Comparable interface {
	comparableNode()
	String() string
}

// Literal is a JSON literal used directly in a comparison: a number,
// string, boolean, or null.
type Literal struct {
	Kind LiteralKind
	Num  float64
	Str  string
	Bool bool
}

func (*Literal) comparableNode() {}

// LiteralKind identifies which field of a Literal is populated.
type LiteralKind int

const (
	LiteralNull LiteralKind = iota
	LiteralBool
	LiteralNumber
	LiteralString
)

// SingularQuery is a comparable that is a filter-query restricted to
// selecting at most one node (RFC 9535 §2.3.5.1). Query.IsSingular() is
// true for any query that parses into this form.
type SingularQuery struct {
	Query *FilterPath
}

func (*SingularQuery) comparableNode() {}

// FunctionCallComparable is a comparable that is a function call whose
// declared return type is ValueType (RFC 9535 §2.4.1's function-type
// system).
type FunctionCallComparable struct {
	Call *FunctionCall
}

func (*FunctionCallComparable) comparableNode() {}

// FilterPath is a relative (current-node, "@") or absolute (root, "$")
// query embedded within a filter expression.
type FilterPath struct {
	Root     bool // true for "$...", false for "@..."
	Segments []Segment
}

// IsSingular reports whether the embedded query selects at most one node.
func (p *FilterPath) IsSingular() bool {
	q := Query{Segments: p.Segments}
	return q.IsSingular()
}

// FunctionCall is an invocation of a named function extension with a fixed
// argument list (RFC 9535 §2.4).
type FunctionCall struct {
	Name string
	Args []FunctionArg
}

// FunctionArg is one argument to a function call: a literal, a filter
// query (singular or not), a nested function call, or a logical
// expression.
type FunctionArg struct {
	Literal  *Literal
	Path     *FilterPath
	Call     *FunctionCall
	Logical  *LogicalExpr
}
