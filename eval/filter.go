package eval

import (
	"github.com/hiltontj/go-jsonpath/ast"
	"github.com/hiltontj/go-jsonpath/function"
	"github.com/hiltontj/go-jsonpath/value"
)

// evalLogical evaluates a filter expression's boolean value for the
// current node cur (the "@" context), with "$" resolving against e.root.
func (e *evaluator) evalLogical(expr *ast.LogicalExpr, cur value.Value) bool {
	switch {
	case len(expr.Or) > 0:
		for _, sub := range expr.Or {
			if e.evalLogical(sub, cur) {
				return true
			}
		}
		return false
	case len(expr.And) > 0:
		for _, sub := range expr.And {
			if !e.evalLogical(sub, cur) {
				return false
			}
		}
		return true
	case expr.Not != nil:
		return !e.evalLogical(expr.Not, cur)
	case expr.Test != nil:
		return e.evalTest(expr.Test, cur)
	case expr.Compare != nil:
		return e.evalCompare(expr.Compare, cur)
	default:
		return false
	}
}

func (e *evaluator) evalTest(t *ast.Test, cur value.Value) bool {
	if t.Function != nil {
		return e.evalFunctionCall(t.Function, cur).AsLogical()
	}
	return len(e.evalFilterPath(t.Path, cur)) > 0
}

// evalFilterPath evaluates a relative ("@") or absolute ("$") query
// embedded in a filter expression, returning the selected values without
// location tracking (filter expressions never need normalized paths).
func (e *evaluator) evalFilterPath(p *ast.FilterPath, cur value.Value) []value.Value {
	start := cur
	if p.Root {
		start = e.root
	}
	locs := []located{{node: start}}
	for _, seg := range p.Segments {
		var next []located
		for _, l := range locs {
			next = append(next, e.applySegment(l, seg)...)
		}
		locs = next
	}
	nodes := make([]value.Value, len(locs))
	for i, l := range locs {
		nodes[i] = l.node
	}
	return nodes
}

func (e *evaluator) evalCompare(c *ast.Comparison, cur value.Value) bool {
	lv, lp := e.evalComparable(c.Left, cur)
	rv, rp := e.evalComparable(c.Right, cur)
	switch c.Op {
	case ast.OpEqual:
		return compareEqual(lv, lp, rv, rp)
	case ast.OpNotEqual:
		return !compareEqual(lv, lp, rv, rp)
	case ast.OpLess:
		return compareLess(lv, lp, rv, rp)
	case ast.OpLessEqual:
		return compareLess(lv, lp, rv, rp) || compareEqual(lv, lp, rv, rp)
	case ast.OpGreater:
		return compareLess(rv, rp, lv, lp)
	case ast.OpGreaterEqual:
		return compareLess(rv, rp, lv, lp) || compareEqual(lv, lp, rv, rp)
	default:
		return false
	}
}

// evalComparable evaluates one side of a comparison, returning the value
// and whether it is present (the RFC's "Nothing" result is represented by
// present == false).
func (e *evaluator) evalComparable(c ast.Comparable, cur value.Value) (value.Value, bool) {
	switch v := c.(type) {
	case *ast.Literal:
		return literalToValue(v), true
	case *ast.SingularQuery:
		nodes := e.evalFilterPath(v.Query, cur)
		if len(nodes) == 0 {
			return nil, false
		}
		return nodes[0], true
	case *ast.FunctionCallComparable:
		res := e.evalFunctionCall(v.Call, cur)
		if res.Kind == function.ValueType && res.Present {
			return res.Node, true
		}
		return nil, false
	default:
		return nil, false
	}
}

func literalToValue(l *ast.Literal) value.Value {
	switch l.Kind {
	case ast.LiteralNull:
		return value.Null{}
	case ast.LiteralBool:
		return value.Bool(l.Bool)
	case ast.LiteralNumber:
		return value.Number(l.Num)
	case ast.LiteralString:
		return value.String(l.Str)
	default:
		return value.Null{}
	}
}

// compareEqual implements the comparison-equality relation (RFC 9535
// §2.3.5.2.2): Nothing equals only Nothing, and otherwise structural
// equality via value.Equal.
func compareEqual(l value.Value, lp bool, r value.Value, rp bool) bool {
	if !lp && !rp {
		return true
	}
	if lp != rp {
		return false
	}
	return value.Equal(l, r)
}

// compareLess implements the "<" ordering relation: only Number-vs-Number
// and String-vs-String are ordered; anything else (including Nothing,
// mismatched kinds, or objects/arrays/booleans/null) is unordered and
// compares false.
func compareLess(l value.Value, lp bool, r value.Value, rp bool) bool {
	if !lp || !rp {
		return false
	}
	if l.Kind() != r.Kind() {
		return false
	}
	switch lv := l.(type) {
	case value.Number:
		return float64(lv) < float64(r.(value.Number))
	case value.String:
		return string(lv) < string(r.(value.String))
	default:
		return false
	}
}

func (e *evaluator) evalFunctionCall(call *ast.FunctionCall, cur value.Value) function.Value {
	fn, ok := function.Lookup(call.Name)
	if !ok {
		// Unreachable for a query that passed parser type checking, since
		// the registry cannot shrink between parse and evaluate.
		return function.Value{}
	}
	args := make([]function.Value, len(call.Args))
	for i, a := range call.Args {
		want := function.ValueType
		if i < len(fn.Sig.Params) {
			want = fn.Sig.Params[i]
		}
		args[i] = e.evalFunctionArg(a, cur, want)
	}
	return fn.Eval(args)
}

// evalFunctionArg evaluates one already-type-checked function argument.
// want is the declared parameter kind it must be produced as: in
// particular, a singular-query path argument (static kind NodeType, see
// function.TypeKind) is realized as a ValueType or a NodesType depending
// on what the parameter actually wants, since a one-or-zero-node query
// result converts to either.
func (e *evaluator) evalFunctionArg(arg ast.FunctionArg, cur value.Value, want function.TypeKind) function.Value {
	switch {
	case arg.Literal != nil:
		return function.FromValue(literalToValue(arg.Literal))
	case arg.Call != nil:
		return e.evalFunctionCall(arg.Call, cur)
	case arg.Logical != nil:
		return function.FromLogical(e.evalLogical(arg.Logical, cur))
	case arg.Path != nil:
		nodes := e.evalFilterPath(arg.Path, cur)
		switch want {
		case function.NodesType:
			return function.FromNodes(nodes)
		case function.LogicalType:
			return function.FromLogical(len(nodes) > 0)
		default:
			if len(nodes) == 0 {
				return function.FromValue(nil)
			}
			return function.FromValue(nodes[0])
		}
	default:
		return function.Value{}
	}
}
