package parser

import (
	"strconv"

	"github.com/hiltontj/go-jsonpath/ast"
	"github.com/hiltontj/go-jsonpath/function"
)

// primary is the result of parsing a basic-expr/comparable building block
// before its role (test-expr vs. one side of a comparison) is known.
// Exactly one field is set.
type primary struct {
	lit  *ast.Literal
	path *ast.FilterPath
	call *ast.FunctionCall
}

func (p *parser) parseLogicalOr() (*ast.LogicalExpr, error) {
	first, err := p.parseLogicalAnd()
	if err != nil {
		return nil, err
	}
	ors := []*ast.LogicalExpr{first}
	for {
		save := p.pos
		p.skipWS()
		if !p.consumePrefix("||") {
			p.pos = save
			break
		}
		p.skipWS()
		next, err := p.parseLogicalAnd()
		if err != nil {
			return nil, err
		}
		ors = append(ors, next)
	}
	if len(ors) == 1 {
		return ors[0], nil
	}
	return &ast.LogicalExpr{Or: ors}, nil
}

func (p *parser) parseLogicalAnd() (*ast.LogicalExpr, error) {
	first, err := p.parseBasicExpr()
	if err != nil {
		return nil, err
	}
	ands := []*ast.LogicalExpr{first}
	for {
		save := p.pos
		p.skipWS()
		if !p.consumePrefix("&&") {
			p.pos = save
			break
		}
		p.skipWS()
		next, err := p.parseBasicExpr()
		if err != nil {
			return nil, err
		}
		ands = append(ands, next)
	}
	if len(ands) == 1 {
		return ands[0], nil
	}
	return &ast.LogicalExpr{And: ands}, nil
}

func (p *parser) parseBasicExpr() (*ast.LogicalExpr, error) {
	p.skipWS()
	if p.consumeByte('!') {
		p.skipWS()
		if p.peekByte() == '(' {
			inner, err := p.parseParenExprBody()
			if err != nil {
				return nil, err
			}
			return &ast.LogicalExpr{Not: inner}, nil
		}
		pr, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		test, err := p.primaryToTest(pr)
		if err != nil {
			return nil, err
		}
		return &ast.LogicalExpr{Not: &ast.LogicalExpr{Test: test}}, nil
	}
	if p.peekByte() == '(' {
		return p.parseParenExprBody()
	}
	pr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	save := p.pos
	p.skipWS()
	if op, ok := p.tryParseCompOp(); ok {
		left, err := p.primaryToComparable(pr)
		if err != nil {
			return nil, err
		}
		p.skipWS()
		pr2, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		right, err := p.primaryToComparable(pr2)
		if err != nil {
			return nil, err
		}
		return &ast.LogicalExpr{Compare: &ast.Comparison{Left: left, Op: op, Right: right}}, nil
	}
	p.pos = save
	test, err := p.primaryToTest(pr)
	if err != nil {
		return nil, err
	}
	return &ast.LogicalExpr{Test: test}, nil
}

func (p *parser) parseParenExprBody() (*ast.LogicalExpr, error) {
	if err := p.expectByte('('); err != nil {
		return nil, err
	}
	p.skipWS()
	expr, err := p.parseLogicalOr()
	if err != nil {
		return nil, err
	}
	p.skipWS()
	if err := p.expectByte(')'); err != nil {
		return nil, err
	}
	return expr, nil
}

func (p *parser) primaryToTest(pr primary) (*ast.Test, error) {
	switch {
	case pr.lit != nil:
		return nil, p.errorf("a literal cannot be used as a test expression")
	case pr.call != nil:
		if err := p.checkFunctionCallReturn(pr.call, function.LogicalType); err != nil {
			return nil, err
		}
		return &ast.Test{Function: pr.call}, nil
	default:
		return &ast.Test{Path: pr.path}, nil
	}
}

func (p *parser) primaryToComparable(pr primary) (ast.Comparable, error) {
	switch {
	case pr.lit != nil:
		return pr.lit, nil
	case pr.call != nil:
		if err := p.checkFunctionCallReturn(pr.call, function.ValueType); err != nil {
			return nil, err
		}
		return &ast.FunctionCallComparable{Call: pr.call}, nil
	default:
		if !pr.path.IsSingular() {
			return nil, p.errorf("only singular queries may be used as a comparable")
		}
		return &ast.SingularQuery{Query: pr.path}, nil
	}
}

func (p *parser) tryParseCompOp() (ast.CompOp, bool) {
	switch {
	case p.consumePrefix("=="):
		return ast.OpEqual, true
	case p.consumePrefix("!="):
		return ast.OpNotEqual, true
	case p.consumePrefix("<="):
		return ast.OpLessEqual, true
	case p.consumePrefix(">="):
		return ast.OpGreaterEqual, true
	case p.consumePrefix("<"):
		return ast.OpLess, true
	case p.consumePrefix(">"):
		return ast.OpGreater, true
	}
	return 0, false
}

// parsePrimary parses one of: a relative ("@") or absolute ("$") filter
// query, a literal, or a function call.
func (p *parser) parsePrimary() (primary, error) {
	p.skipWS()
	if p.eof() {
		return primary{}, p.errorf("expected expression")
	}
	switch p.peekByte() {
	case '@':
		p.pos++
		segs, err := p.parseSegments()
		if err != nil {
			return primary{}, err
		}
		return primary{path: &ast.FilterPath{Root: false, Segments: segs}}, nil
	case '$':
		p.pos++
		segs, err := p.parseSegments()
		if err != nil {
			return primary{}, err
		}
		return primary{path: &ast.FilterPath{Root: true, Segments: segs}}, nil
	case '\'', '"':
		s, err := p.parseQuotedString(p.peekByte())
		if err != nil {
			return primary{}, err
		}
		return primary{lit: &ast.Literal{Kind: ast.LiteralString, Str: s}}, nil
	}
	if p.consumePrefix("true") {
		return primary{lit: &ast.Literal{Kind: ast.LiteralBool, Bool: true}}, nil
	}
	if p.consumePrefix("false") {
		return primary{lit: &ast.Literal{Kind: ast.LiteralBool, Bool: false}}, nil
	}
	if p.consumePrefix("null") {
		return primary{lit: &ast.Literal{Kind: ast.LiteralNull}}, nil
	}
	if isDigit(p.peekByte()) || p.peekByte() == '-' {
		n, err := p.parseNumberLiteral()
		if err != nil {
			return primary{}, err
		}
		return primary{lit: &ast.Literal{Kind: ast.LiteralNumber, Num: n}}, nil
	}
	if isFunctionNameStart(p.peekByte()) {
		call, err := p.parseFunctionCall()
		if err != nil {
			return primary{}, err
		}
		return primary{call: call}, nil
	}
	return primary{}, p.errorf("unexpected character %q", p.peekByte())
}

func isFunctionNameStart(b byte) bool { return b >= 'a' && b <= 'z' }

func isFunctionNameChar(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9') || b == '_'
}

// parseNumberLiteral parses a general JSON number (RFC 8259 grammar), used
// for comparison literals, which — unlike index/slice integers — permit
// "-0" and fractional/exponent forms.
func (p *parser) parseNumberLiteral() (float64, error) {
	start := p.pos
	p.consumeByte('-')
	if p.eof() || !isDigit(p.peekByte()) {
		return 0, p.errorfAt(start, "expected number")
	}
	if p.peekByte() == '0' {
		p.pos++
	} else {
		for !p.eof() && isDigit(p.peekByte()) {
			p.pos++
		}
	}
	if p.peekByte() == '.' {
		p.pos++
		if p.eof() || !isDigit(p.peekByte()) {
			return 0, p.errorfAt(start, "expected digit after decimal point")
		}
		for !p.eof() && isDigit(p.peekByte()) {
			p.pos++
		}
	}
	if p.peekByte() == 'e' || p.peekByte() == 'E' {
		p.pos++
		if p.peekByte() == '+' || p.peekByte() == '-' {
			p.pos++
		}
		if p.eof() || !isDigit(p.peekByte()) {
			return 0, p.errorfAt(start, "expected digit in exponent")
		}
		for !p.eof() && isDigit(p.peekByte()) {
			p.pos++
		}
	}
	text := p.s[start:p.pos]
	n, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, p.errorfAt(start, "invalid number %q", text)
	}
	return n, nil
}

func (p *parser) parseFunctionCall() (*ast.FunctionCall, error) {
	start := p.pos
	nameStart := p.pos
	for !p.eof() && isFunctionNameChar(p.s[p.pos]) {
		p.pos++
	}
	name := p.s[nameStart:p.pos]
	if name == "" {
		return nil, p.errorf("expected function name")
	}
	if err := p.expectByte('('); err != nil {
		return nil, err
	}
	p.skipWS()
	var args []ast.FunctionArg
	if p.peekByte() != ')' {
		for {
			arg, err := p.parseFunctionArgument()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			p.skipWS()
			if p.consumeByte(',') {
				p.skipWS()
				continue
			}
			break
		}
	}
	if err := p.expectByte(')'); err != nil {
		return nil, err
	}
	call := &ast.FunctionCall{Name: name, Args: args}
	if err := p.checkFunctionCall(start, call); err != nil {
		return nil, err
	}
	return call, nil
}

// parseFunctionArgument parses one function-argument production: a
// literal, filter-query, function-expr, or a parenthesized/negated
// logical-expr. A bare, non-parenthesized "&&"/"||" combination is not
// accepted in argument position; callers needing that must parenthesize
// it, matching this implementation's simplified argument grammar.
func (p *parser) parseFunctionArgument() (ast.FunctionArg, error) {
	p.skipWS()
	if p.peekByte() == '!' || p.peekByte() == '(' {
		expr, err := p.parseBasicExpr()
		if err != nil {
			return ast.FunctionArg{}, err
		}
		return ast.FunctionArg{Logical: expr}, nil
	}
	pr, err := p.parsePrimary()
	if err != nil {
		return ast.FunctionArg{}, err
	}
	save := p.pos
	p.skipWS()
	if op, ok := p.tryParseCompOp(); ok {
		left, err := p.primaryToComparable(pr)
		if err != nil {
			return ast.FunctionArg{}, err
		}
		p.skipWS()
		pr2, err := p.parsePrimary()
		if err != nil {
			return ast.FunctionArg{}, err
		}
		right, err := p.primaryToComparable(pr2)
		if err != nil {
			return ast.FunctionArg{}, err
		}
		return ast.FunctionArg{Logical: &ast.LogicalExpr{Compare: &ast.Comparison{Left: left, Op: op, Right: right}}}, nil
	}
	p.pos = save
	switch {
	case pr.lit != nil:
		return ast.FunctionArg{Literal: pr.lit}, nil
	case pr.call != nil:
		return ast.FunctionArg{Call: pr.call}, nil
	default:
		return ast.FunctionArg{Path: pr.path}, nil
	}
}
