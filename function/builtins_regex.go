//go:build !nojsonpathregex

package function

import (
	"strings"
	"sync"

	"github.com/dlclark/regexp2"

	"github.com/hiltontj/go-jsonpath/value"
)

// match() and search() are compiled in by default, backed by regexp2 rather
// than the standard library's RE2-based regexp: RFC 9535's I-Regexp dialect
// (§2.4.7) needs whole-string anchoring semantics for match() that are
// awkward to express correctly alongside RE2's line-anchor handling, and
// regexp2 supports the backtracking constructs (lookaround, backreferences)
// that I-Regexp-adjacent patterns in practice rely on.
func init() {
	Register(&Function{
		Name: "match",
		Sig:  Signature{Params: []TypeKind{ValueType, ValueType}, ReturnType: LogicalType},
		Eval: evalMatch,
		ValidateArg: func(index int, literal string) error {
			if index != 1 {
				return nil
			}
			_, err := compileMatch(literal)
			return err
		},
	})
	Register(&Function{
		Name: "search",
		Sig:  Signature{Params: []TypeKind{ValueType, ValueType}, ReturnType: LogicalType},
		Eval: evalSearch,
		ValidateArg: func(index int, literal string) error {
			if index != 1 {
				return nil
			}
			_, err := compileSearch(literal)
			return err
		},
	})
}

var (
	reCacheMu sync.Mutex
	reCache   = map[string]*regexp2.Regexp{}
)

func compile(pattern string) (*regexp2.Regexp, error) {
	reCacheMu.Lock()
	defer reCacheMu.Unlock()
	if re, ok := reCache[pattern]; ok {
		return re, nil
	}
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return nil, err
	}
	reCache[pattern] = re
	return re, nil
}

// excludeLineTerminators rewrites every unescaped, unbracketed "." in
// pattern to "[^\r\n]". RFC 9535 §2.4.7 requires I-Regexp's "." to match
// any character except a line terminator, including the two-character
// CRLF sequence; regexp2 (like RE2) has no dot-excludes-CR option, only
// dot-excludes-LF, so the translation has to happen in the pattern text
// itself. This is the same approach the reference serde_json_path
// implementation takes.
func excludeLineTerminators(pattern string) string {
	var b strings.Builder
	inClass := false
	escaped := false
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch {
		case escaped:
			b.WriteByte(c)
			escaped = false
		case c == '\\':
			b.WriteByte(c)
			escaped = true
		case c == '[':
			inClass = true
			b.WriteByte(c)
		case c == ']':
			inClass = false
			b.WriteByte(c)
		case c == '.' && !inClass:
			b.WriteString(`[^\r\n]`)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// compileMatch compiles pattern for match() (RFC 9535 §2.4.6): the whole
// subject string must match, so the translated pattern is anchored on
// both ends.
func compileMatch(pattern string) (*regexp2.Regexp, error) {
	return compile(`\A(?:` + excludeLineTerminators(pattern) + `)\z`)
}

// compileSearch compiles pattern for search() (RFC 9535 §2.4.7): any
// substring may match, so the translated pattern is left unanchored.
func compileSearch(pattern string) (*regexp2.Regexp, error) {
	return compile(excludeLineTerminators(pattern))
}

func stringArgs(args []Value) (subject, pattern string, ok bool) {
	a, b := args[0], args[1]
	if !a.Present || !b.Present {
		return "", "", false
	}
	s, ok1 := a.Node.(value.String)
	p, ok2 := b.Node.(value.String)
	if !ok1 || !ok2 {
		return "", "", false
	}
	return string(s), string(p), true
}

// evalMatch implements match() (RFC 9535 §2.4.6): true if the entire
// subject string matches the regex.
func evalMatch(args []Value) Value {
	subject, pattern, ok := stringArgs(args)
	if !ok {
		return FromLogical(false)
	}
	re, err := compileMatch(pattern)
	if err != nil {
		return FromLogical(false)
	}
	matched, err := re.MatchString(subject)
	if err != nil {
		return FromLogical(false)
	}
	return FromLogical(matched)
}

// evalSearch implements search() (RFC 9535 §2.4.7): true if some substring
// of the subject matches the regex.
func evalSearch(args []Value) Value {
	subject, pattern, ok := stringArgs(args)
	if !ok {
		return FromLogical(false)
	}
	re, err := compileSearch(pattern)
	if err != nil {
		return FromLogical(false)
	}
	matched, err := re.MatchString(subject)
	if err != nil {
		return FromLogical(false)
	}
	return FromLogical(matched)
}
