package jsonpath

import (
	"errors"

	"github.com/hiltontj/go-jsonpath/parser"
)

// IsParseError reports whether err is a *parser.ParseError: the query text
// failed to parse, or failed the static type checking performed during
// parsing (function-call arity/types, singular-query restrictions, I-JSON
// index range). It follows this package's own predicate-helper naming
// convention for distinguishing error categories without a switch on a
// concrete type at every call site.
func IsParseError(err error) bool {
	var pe *parser.ParseError
	return errors.As(err, &pe)
}
