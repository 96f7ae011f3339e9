package function

import "github.com/hiltontj/go-jsonpath/value"

func init() {
	Register(&Function{
		Name: "length",
		Sig:  Signature{Params: []TypeKind{ValueType}, ReturnType: ValueType},
		Eval: evalLength,
	})
	Register(&Function{
		Name: "count",
		Sig:  Signature{Params: []TypeKind{NodesType}, ReturnType: ValueType},
		Eval: evalCount,
	})
	Register(&Function{
		Name: "value",
		Sig:  Signature{Params: []TypeKind{NodesType}, ReturnType: ValueType},
		Eval: evalValue,
	})
}

// evalLength implements the length() function extension (RFC 9535 §2.4.4):
// the length of a string (in Unicode scalar values), array, or object, or
// Nothing for any other argument kind.
func evalLength(args []Value) Value {
	arg := args[0]
	if !arg.Present {
		return FromValue(nil)
	}
	n, ok := value.Len(arg.Node)
	if !ok {
		return FromValue(nil)
	}
	return FromValue(value.Number(n))
}

// evalCount implements the count() function extension (RFC 9535 §2.4.5):
// the number of nodes in its nodelist argument.
func evalCount(args []Value) Value {
	return FromValue(value.Number(len(args[0].Nodes)))
}

// evalValue implements the value() function extension (RFC 9535 §2.4.8):
// the value of the node in its nodelist argument if it contains exactly
// one node, or Nothing otherwise.
func evalValue(args []Value) Value {
	nodes := args[0].Nodes
	if len(nodes) != 1 {
		return FromValue(nil)
	}
	return FromValue(nodes[0])
}
