// Package jsonpath provides a complete, RFC 9535-compliant JSONPath query
// engine for Go.
//
// JSONPath is a query language for JSON, similar to XPath for XML. This
// package compiles a JSONPath expression once into a reusable Path and
// evaluates it against any number of documents, returning either the
// matched values or the matched values together with the normalized path
// each was found at.
//
// # Basic Usage
//
//	doc, err := value.Unmarshal([]byte(`{"store":{"book":[{"title":"Go Programming","price":29.99}]}}`))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	path, err := jsonpath.Parse("$.store.book[*].title")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	titles := path.Query(doc).All()
//
// # Design
//
// Parsing performs full static type checking of function calls and
// singular-query restrictions (RFC 9535 §2.4), so a successfully parsed
// Path is guaranteed to evaluate without a type error. Evaluation never
// mutates the queried document and never fails: a query that matches
// nothing simply yields an empty result.
package jsonpath

import (
	"github.com/hiltontj/go-jsonpath/ast"
	"github.com/hiltontj/go-jsonpath/eval"
	"github.com/hiltontj/go-jsonpath/parser"
	"github.com/hiltontj/go-jsonpath/value"
)

// Path is a parsed, validated JSONPath query, ready to be evaluated
// against any number of documents.
type Path struct {
	raw   string
	query *ast.Query
}

// Parse compiles text into a Path. text must begin with the root
// identifier "$", optionally preceded by blank characters.
func Parse(text string) (*Path, error) {
	q, err := parser.Parse(text)
	if err != nil {
		return nil, err
	}
	return &Path{raw: text, query: q}, nil
}

// MustParse is like Parse but panics if text fails to parse. It is
// intended for use with package-level query constants known to be valid.
func MustParse(text string) *Path {
	p, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return p
}

// Compile is an alias for Parse.
func Compile(text string) (*Path, error) { return Parse(text) }

// MustCompile is an alias for MustParse.
func MustCompile(text string) *Path { return MustParse(text) }

// Query evaluates p against doc, returning the matched values in document
// order.
func (p *Path) Query(doc value.Value) eval.NodeList {
	return eval.Query(doc, p.query)
}

// QueryLocated evaluates p against doc, returning the matched values
// together with the normalized path each was found at.
func (p *Path) QueryLocated(doc value.Value) eval.LocatedNodeList {
	return eval.QueryLocated(doc, p.query)
}

// String returns the canonical bracket-notation rendering of p. Re-parsing
// it yields a Path with the same meaning as p, though not necessarily the
// exact source text p was parsed from.
func (p *Path) String() string {
	return p.query.String()
}

// MarshalJSON renders p as a JSON string holding its canonical form, so a
// Path can be stored as a struct field and serialized along with other
// data.
func (p *Path) MarshalJSON() ([]byte, error) {
	return marshalJSONString(p.String())
}

// UnmarshalJSON parses a JSON string as a JSONPath query and stores the
// result in p.
func (p *Path) UnmarshalJSON(data []byte) error {
	text, err := unmarshalJSONString(data)
	if err != nil {
		return err
	}
	parsed, err := Parse(text)
	if err != nil {
		return err
	}
	*p = *parsed
	return nil
}
