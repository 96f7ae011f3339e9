package parser

import (
	"github.com/hiltontj/go-jsonpath/ast"
	"github.com/hiltontj/go-jsonpath/function"
)

// checkFunctionCall type-checks a just-parsed function call against the
// registry: that the name is registered, the argument count matches, and
// each argument's static kind converts to the declared parameter kind
// (RFC 9535 §2.4.3). It then gives any string-literal argument a chance to
// be rejected eagerly via the function's ValidateArg hook (e.g. match/
// search compiling their pattern argument at parse time). It runs
// immediately after the call's arguments are parsed, so pos (the call's
// start offset) is still close at hand for the error.
func (p *parser) checkFunctionCall(pos int, call *ast.FunctionCall) error {
	kinds := make([]function.TypeKind, len(call.Args))
	for i, arg := range call.Args {
		k, err := p.argKind(arg)
		if err != nil {
			return err
		}
		kinds[i] = k
	}
	fn, err := function.Check(call.Name, kinds)
	if err != nil {
		return p.errorfAt(pos, "%s", err)
	}
	if fn.ValidateArg != nil {
		for i, arg := range call.Args {
			if arg.Literal == nil || arg.Literal.Kind != ast.LiteralString {
				continue
			}
			if err := fn.ValidateArg(i, arg.Literal.Str); err != nil {
				return p.errorfAt(pos, "function %q: argument %d: %s", call.Name, i+1, err)
			}
		}
	}
	return nil
}

// argKind determines the static type-system kind (RFC 9535 §2.4.1) of an
// already-parsed function argument.
func (p *parser) argKind(arg ast.FunctionArg) (function.TypeKind, error) {
	switch {
	case arg.Literal != nil:
		return function.ValueType, nil
	case arg.Call != nil:
		fn, ok := function.Lookup(arg.Call.Name)
		if !ok {
			return 0, p.errorf("function %q is not defined", arg.Call.Name)
		}
		return fn.Sig.ReturnType, nil
	case arg.Logical != nil:
		return function.LogicalType, nil
	case arg.Path != nil:
		if arg.Path.IsSingular() {
			return function.NodeType, nil
		}
		return function.NodesType, nil
	default:
		return 0, p.errorf("malformed function argument")
	}
}

// checkFunctionCallReturn verifies that call's declared return type
// converts to want, used when a call appears directly as a test-expr
// (wants LogicalType) or as a comparable (wants ValueType).
func (p *parser) checkFunctionCallReturn(call *ast.FunctionCall, want function.TypeKind) error {
	fn, ok := function.Lookup(call.Name)
	if !ok {
		return p.errorf("function %q is not defined", call.Name)
	}
	if !fn.Sig.ReturnType.ConvertsTo(want) {
		return p.errorf("function %q returns %s, which cannot be used here", call.Name, fn.Sig.ReturnType)
	}
	return nil
}
