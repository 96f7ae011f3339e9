// Package function implements the JSONPath function extension registry
// (RFC 9535 §2.4). A Function has a fixed parameter signature and declared
// return type; the parser package uses the registry to type-check function
// calls at parse time, and the eval package uses it to evaluate them.
//
// Built-ins (length, count, value, and the capability-gated match/search)
// register themselves in init(), mirroring the registry's design as a
// process-wide singleton populated before any query is ever parsed.
package function

import (
	"fmt"
	"sync"

	"github.com/hiltontj/go-jsonpath/value"
)

// TypeKind is one of the function-extension types RFC 9535 §2.4.1 defines
// for this implementation's purposes.
type TypeKind int

const (
	// ValueType holds a single JSON value, or the special "Nothing" when
	// empty (represented by Value.Present == false).
	ValueType TypeKind = iota
	// NodesType holds an ordered list of nodes (a NodeList).
	NodesType
	// LogicalType holds a boolean.
	LogicalType
	// NodeType is the static kind of a singular query argument: it is
	// still a query result (a nodelist of at most one node), so it must
	// convert to NodesType, but it is also usable wherever a single value
	// is expected, so it must convert to ValueType too. The reference
	// implementation (serde_json_path_core/src/spec/functions.rs) models
	// this as a distinct Node kind for exactly this reason; collapsing it
	// into ValueType, as an earlier version of this package did, wrongly
	// rejects calls like count(@.a) and value(@.a) over a singular path.
	NodeType
)

func (k TypeKind) String() string {
	switch k {
	case ValueType:
		return "ValueType"
	case NodesType:
		return "NodesType"
	case LogicalType:
		return "LogicalType"
	case NodeType:
		return "NodeType"
	default:
		return "unknown"
	}
}

// ConvertsTo reports whether a value of kind from may be used where kind to
// is expected, per RFC 9535 §2.4.1's type-conversion table collapsed to
// this package's four-kind model: NodesType converts to LogicalType via
// existence; NodeType converts to ValueType, NodesType, and (via existence)
// LogicalType; anything else only converts to its own kind.
func (from TypeKind) ConvertsTo(to TypeKind) bool {
	if from == to {
		return true
	}
	if from == NodesType && to == LogicalType {
		return true
	}
	if from == NodeType && (to == ValueType || to == NodesType || to == LogicalType) {
		return true
	}
	return false
}

// Value is a tagged union carrying the result of evaluating a function
// argument or a function call, in whichever of the three kinds applies.
type Value struct {
	Kind    TypeKind
	Node    value.Value // ValueType payload; nil means Nothing
	Present bool        // for ValueType: whether Node holds Nothing
	Nodes   []value.Value
	Logical bool
}

// FromValue builds a ValueType Value. Pass nil for v to represent Nothing.
func FromValue(v value.Value) Value {
	if v == nil {
		return Value{Kind: ValueType, Present: false}
	}
	return Value{Kind: ValueType, Node: v, Present: true}
}

// FromNodes builds a NodesType Value.
func FromNodes(nodes []value.Value) Value {
	return Value{Kind: NodesType, Nodes: nodes}
}

// FromLogical builds a LogicalType Value.
func FromLogical(b bool) Value {
	return Value{Kind: LogicalType, Logical: b}
}

// AsLogical converts v to a boolean per the existence-test rule: Nothing
// and an empty node list are false, everything else is true. It is the
// caller's responsibility to have already checked ConvertsTo(LogicalType).
func (v Value) AsLogical() bool {
	switch v.Kind {
	case LogicalType:
		return v.Logical
	case NodesType:
		return len(v.Nodes) > 0
	case ValueType:
		return v.Present
	default:
		return false
	}
}

// Signature describes a function's fixed parameter types and return type.
type Signature struct {
	Params     []TypeKind
	ReturnType TypeKind
}

// Evaluator computes a function's result given its already-evaluated
// arguments, which are guaranteed by the parser to match Signature.Params
// in count and (post-conversion) kind.
type Evaluator func(args []Value) Value

// Function is one registered function extension.
type Function struct {
	Name string
	Sig  Signature
	Eval Evaluator

	// ValidateArg, if set, is called during parsing for each argument at
	// the given index that was parsed as a string literal, letting a
	// function reject an invalid literal (e.g. a malformed regex pattern)
	// at parse time rather than silently failing at evaluation time.
	ValidateArg func(index int, literal string) error
}

var (
	mu       sync.RWMutex
	registry = map[string]*Function{}
)

// Register installs fn in the process-wide registry, overwriting any
// existing entry with the same name. Built-ins use this in init(); callers
// may also register their own extensions before parsing any query that
// references them.
func Register(fn *Function) {
	mu.Lock()
	defer mu.Unlock()
	registry[fn.Name] = fn
}

// Lookup returns the named function, or nil, false if no such function is
// registered.
func Lookup(name string) (*Function, bool) {
	mu.RLock()
	defer mu.RUnlock()
	fn, ok := registry[name]
	return fn, ok
}

// ValidationError describes why a function call failed type checking,
// mirroring the reference implementation's FunctionValidationError variants.
type ValidationError struct {
	Name     string
	Reason   string
	Position int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("function %q: %s", e.Name, e.Reason)
}

// Check validates a prospective call to the named function against its
// registered signature: that the function exists, that the argument count
// matches, and that each argument's static kind converts to the
// corresponding parameter kind. It does not evaluate anything.
func Check(name string, argKinds []TypeKind) (*Function, error) {
	fn, ok := Lookup(name)
	if !ok {
		return nil, &ValidationError{Name: name, Reason: "undefined function"}
	}
	if len(argKinds) != len(fn.Sig.Params) {
		return nil, &ValidationError{
			Name:   name,
			Reason: fmt.Sprintf("expects %d argument(s), got %d", len(fn.Sig.Params), len(argKinds)),
		}
	}
	for i, k := range argKinds {
		if !k.ConvertsTo(fn.Sig.Params[i]) {
			return nil, &ValidationError{
				Name:   name,
				Reason: fmt.Sprintf("argument %d: cannot use %s as %s", i+1, k, fn.Sig.Params[i]),
			}
		}
	}
	return fn, nil
}
