// Package parser compiles RFC 9535 JSONPath query text into an *ast.Query,
// performing lexical analysis, selector/segment/filter-expression parsing,
// and the spec's static type checking (function-call arity and argument
// kinds, singular-query discipline on comparables, I-JSON integer-range
// validation) as it goes, so that any error it returns carries the byte
// position at which the failure was detected.
package parser

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"

	"github.com/hiltontj/go-jsonpath/ast"
)

// tracer is this package's Tracer, obtained from the global
// TracerProvider. Until an application installs a real SDK via
// go.opentelemetry.io/otel.SetTracerProvider, it hands back a no-op
// tracer, so parsing costs nothing extra until tracing is configured.
var tracer = otel.Tracer("jsonpath")

// ParseError reports a JSONPath query that failed to parse or failed
// static type checking, together with the byte offset into the source text
// where the problem was detected.
type ParseError struct {
	msg string
	pos int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("jsonpath: %s (at position %d)", e.msg, e.pos)
}

// Message returns the human-readable description of the error, without the
// position suffix.
func (e *ParseError) Message() string { return e.msg }

// Position returns the byte offset into the source text where the error
// was detected.
func (e *ParseError) Position() int { return e.pos }

// Parse compiles text into a validated query AST. text must be a complete
// JSONPath query starting with the root identifier "$"; blank characters
// before the "$" and after the last segment are skipped.
func Parse(text string) (*ast.Query, error) {
	_, span := tracer.Start(context.Background(), "jsonpath.parse")
	defer span.End()

	p := &parser{s: text}
	p.skipWS()
	if p.pos >= len(p.s) || p.s[p.pos] != '$' {
		return nil, p.errorf("expected '$' at start of query")
	}
	p.pos++
	segs, err := p.parseSegments()
	if err != nil {
		return nil, err
	}
	p.skipWS()
	if p.pos != len(p.s) {
		return nil, p.errorf("unexpected trailing input %q", p.s[p.pos:])
	}
	return &ast.Query{Segments: segs}, nil
}

type parser struct {
	s   string
	pos int
}

func (p *parser) errorf(format string, args ...interface{}) *ParseError {
	return &ParseError{msg: fmt.Sprintf(format, args...), pos: p.pos}
}

func (p *parser) errorfAt(pos int, format string, args ...interface{}) *ParseError {
	return &ParseError{msg: fmt.Sprintf(format, args...), pos: pos}
}

func (p *parser) eof() bool { return p.pos >= len(p.s) }

func (p *parser) peekByte() byte {
	if p.eof() {
		return 0
	}
	return p.s[p.pos]
}

// skipWS consumes the blank characters RFC 9535 defines for S: space, tab,
// newline, carriage return.
func (p *parser) skipWS() {
	for !p.eof() {
		switch p.s[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) consumeByte(b byte) bool {
	if p.peekByte() == b {
		p.pos++
		return true
	}
	return false
}

func (p *parser) expectByte(b byte) error {
	if !p.consumeByte(b) {
		return p.errorf("expected %q", b)
	}
	return nil
}

func (p *parser) hasPrefix(s string) bool {
	return p.pos+len(s) <= len(p.s) && p.s[p.pos:p.pos+len(s)] == s
}

func (p *parser) consumePrefix(s string) bool {
	if p.hasPrefix(s) {
		p.pos += len(s)
		return true
	}
	return false
}
