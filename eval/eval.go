// Package eval walks an *ast.Query over a value.Value document, producing
// either a plain NodeList or a LocatedNodeList that also records each
// result's normalized path.
package eval

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/hiltontj/go-jsonpath/ast"
	"github.com/hiltontj/go-jsonpath/value"
)

// tracer is this package's default Tracer, obtained from the global
// TracerProvider. Until an application calls
// go.opentelemetry.io/otel.SetTracerProvider with a real SDK, the global
// provider hands back a no-op tracer, so evaluation costs nothing extra
// until tracing is actually configured.
var tracer = otel.Tracer("jsonpath")

type located struct {
	path NormalizedPath
	node value.Value
}

type evaluator struct {
	root   value.Value
	tracer trace.Tracer
}

// Query evaluates q against root and returns the selected values, without
// location tracking.
func Query(root value.Value, q *ast.Query) NodeList {
	return QueryWithTracer(root, q, nil)
}

// QueryWithTracer is Query, additionally emitting a span on tracer around
// the evaluation. A nil tracer falls back to this package's default
// tracer rather than disabling tracing outright, so callers that never
// thread a Tracer through still get spans once an application installs a
// real TracerProvider.
func QueryWithTracer(root value.Value, q *ast.Query, tracer trace.Tracer) NodeList {
	return QueryLocatedWithTracer(root, q, tracer).Nodes()
}

// QueryLocated evaluates q against root and returns the selected values
// together with their normalized paths.
func QueryLocated(root value.Value, q *ast.Query) LocatedNodeList {
	return QueryLocatedWithTracer(root, q, nil)
}

// QueryLocatedWithTracer is QueryLocated, additionally emitting a span on
// tracer around the evaluation. See QueryWithTracer for the nil-tracer
// fallback behavior.
func QueryLocatedWithTracer(root value.Value, q *ast.Query, t trace.Tracer) LocatedNodeList {
	if t == nil {
		t = tracer
	}
	e := &evaluator{root: root, tracer: t}
	ctx, span := e.startSpan("jsonpath.evaluate")
	defer span.End()
	_ = ctx

	locs := []located{{node: root}}
	for _, seg := range q.Segments {
		var next []located
		for _, l := range locs {
			next = append(next, e.applySegment(l, seg)...)
		}
		locs = next
	}
	out := make([]LocatedNode, len(locs))
	for i, l := range locs {
		out[i] = LocatedNode{Path: l.path, Node: l.node}
	}
	return LocatedNodeList{located: out}
}

func (e *evaluator) applySegment(l located, seg ast.Segment) []located {
	if !seg.Descendant {
		var out []located
		for _, sel := range seg.Selectors {
			out = append(out, e.applySelector(l, sel)...)
		}
		return out
	}
	var out []located
	e.visitPreorder(l, func(v located) {
		for _, sel := range seg.Selectors {
			out = append(out, e.applySelector(v, sel)...)
		}
	})
	return out
}

// visitPreorder visits l, then each of its descendants in document order,
// depth-first, matching RFC 9535 §2.5.2.2's descendant-segment semantics.
func (e *evaluator) visitPreorder(l located, visit func(located)) {
	visit(l)
	switch v := l.node.(type) {
	case value.Array:
		for i, elem := range v {
			e.visitPreorder(located{path: l.path.withIndex(i), node: elem}, visit)
		}
	case value.Object:
		for _, m := range v {
			e.visitPreorder(located{path: l.path.withName(m.Key), node: m.Value}, visit)
		}
	}
}

func (e *evaluator) applySelector(l located, sel ast.Selector) []located {
	switch s := sel.(type) {
	case ast.NameSelector:
		obj, ok := l.node.(value.Object)
		if !ok {
			return nil
		}
		v, found := obj.Get(s.Name)
		if !found {
			return nil
		}
		return []located{{path: l.path.withName(s.Name), node: v}}

	case ast.WildcardSelector:
		switch v := l.node.(type) {
		case value.Array:
			out := make([]located, len(v))
			for i, elem := range v {
				out[i] = located{path: l.path.withIndex(i), node: elem}
			}
			return out
		case value.Object:
			out := make([]located, 0, len(v))
			for _, m := range v {
				out = append(out, located{path: l.path.withName(m.Key), node: m.Value})
			}
			return out
		default:
			return nil
		}

	case ast.IndexSelector:
		arr, ok := l.node.(value.Array)
		if !ok {
			return nil
		}
		idx := normalizeArrayIndex(s.Index, len(arr))
		if idx < 0 || idx >= len(arr) {
			return nil
		}
		return []located{{path: l.path.withIndex(idx), node: arr[idx]}}

	case ast.SliceSelector:
		arr, ok := l.node.(value.Array)
		if !ok {
			return nil
		}
		var out []located
		for _, idx := range sliceIndices(s, len(arr)) {
			out = append(out, located{path: l.path.withIndex(idx), node: arr[idx]})
		}
		return out

	case ast.FilterSelector:
		switch v := l.node.(type) {
		case value.Array:
			var out []located
			for i, elem := range v {
				cand := located{path: l.path.withIndex(i), node: elem}
				if e.evalLogical(s.Expr, cand.node) {
					out = append(out, cand)
				}
			}
			return out
		case value.Object:
			var out []located
			for _, m := range v {
				cand := located{path: l.path.withName(m.Key), node: m.Value}
				if e.evalLogical(s.Expr, cand.node) {
					out = append(out, cand)
				}
			}
			return out
		default:
			return nil
		}
	}
	return nil
}

func normalizeArrayIndex(idx int64, length int) int {
	if idx < 0 {
		idx += int64(length)
	}
	return int(idx)
}

// sliceIndices implements the array-slice bounds algorithm (RFC 9535
// §2.3.4.2.2), returning the selected indices in selection order (which is
// descending when step is negative).
func sliceIndices(s ast.SliceSelector, length int) []int {
	n := int64(length)
	step := int64(1)
	if s.Step != nil {
		step = *s.Step
	}
	if step == 0 {
		return nil
	}

	normalize := func(i int64) int64 {
		if i >= 0 {
			return i
		}
		return n + i
	}
	clamp := func(v, lo, hi int64) int64 {
		if v < lo {
			return lo
		}
		if v > hi {
			return hi
		}
		return v
	}

	var lower, upper int64
	if step > 0 {
		start := int64(0)
		if s.Start != nil {
			start = normalize(*s.Start)
		}
		end := n
		if s.End != nil {
			end = normalize(*s.End)
		}
		lower = clamp(start, 0, n)
		upper = clamp(end, 0, n)
	} else {
		start := n - 1
		if s.Start != nil {
			start = normalize(*s.Start)
		}
		end := -n - 1
		if s.End != nil {
			end = normalize(*s.End)
		}
		lower = clamp(end, -1, n-1)
		upper = clamp(start, -1, n-1)
	}

	var out []int
	if step > 0 {
		for i := lower; i < upper; i += step {
			out = append(out, int(i))
		}
	} else {
		for i := upper; i > lower; i += step {
			out = append(out, int(i))
		}
	}
	return out
}
