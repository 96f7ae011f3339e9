package parser

import (
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/hiltontj/go-jsonpath/ast"
)

// maxSafeInteger is the largest (and, negated, smallest) integer an I-JSON
// number can represent exactly as an IEEE-754 double (RFC 9535 §2.3.3,
// §2.3.4.2): 2^53 - 1.
const maxSafeInteger = 1<<53 - 1

// parseSegments parses zero or more child/descendant segments following a
// root identifier or relative-query "@"/"$".
func (p *parser) parseSegments() ([]ast.Segment, error) {
	var segs []ast.Segment
	for {
		save := p.pos
		p.skipWS()
		if p.eof() {
			p.pos = save
			return segs, nil
		}
		if p.consumePrefix("..") {
			seg, err := p.parseDescendantSegmentBody()
			if err != nil {
				return nil, err
			}
			segs = append(segs, seg)
			continue
		}
		if p.peekByte() == '.' {
			p.pos++
			seg, err := p.parseDotSegmentBody()
			if err != nil {
				return nil, err
			}
			segs = append(segs, seg)
			continue
		}
		if p.peekByte() == '[' {
			sels, err := p.parseBracketedSelection()
			if err != nil {
				return nil, err
			}
			segs = append(segs, ast.Segment{Selectors: sels})
			continue
		}
		// Not a segment; whitespace we consumed wasn't segment-leading, so
		// rewind it and let the caller decide (e.g. closing ')' or ']').
		p.pos = save
		return segs, nil
	}
}

func (p *parser) parseDescendantSegmentBody() (ast.Segment, error) {
	if p.peekByte() == '[' {
		sels, err := p.parseBracketedSelection()
		if err != nil {
			return ast.Segment{}, err
		}
		return ast.Segment{Descendant: true, Selectors: sels}, nil
	}
	if p.peekByte() == '*' {
		p.pos++
		return ast.Segment{Descendant: true, Selectors: []ast.Selector{ast.WildcardSelector{}}}, nil
	}
	name, err := p.parseShorthandName()
	if err != nil {
		return ast.Segment{}, err
	}
	return ast.Segment{Descendant: true, Selectors: []ast.Selector{ast.NameSelector{Name: name}}}, nil
}

func (p *parser) parseDotSegmentBody() (ast.Segment, error) {
	if p.peekByte() == '*' {
		p.pos++
		return ast.Segment{Selectors: []ast.Selector{ast.WildcardSelector{}}}, nil
	}
	name, err := p.parseShorthandName()
	if err != nil {
		return ast.Segment{}, err
	}
	return ast.Segment{Selectors: []ast.Selector{ast.NameSelector{Name: name}}}, nil
}

// parseShorthandName parses the member-name-shorthand production: a name
// consisting of ASCII letters, digits, underscore, and non-ASCII
// characters, not starting with a digit (RFC 9535 §2.5.1.1).
func (p *parser) parseShorthandName() (string, error) {
	start := p.pos
	if p.eof() || !isNameFirst(p.s[p.pos]) {
		return "", p.errorf("expected member name after '.'")
	}
	p.pos++
	for !p.eof() && isNameChar(p.s[p.pos]) {
		p.pos++
	}
	return p.s[start:p.pos], nil
}

func isNameFirst(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b >= 0x80
}

func isNameChar(b byte) bool {
	return isNameFirst(b) || (b >= '0' && b <= '9')
}

func (p *parser) parseBracketedSelection() ([]ast.Selector, error) {
	if err := p.expectByte('['); err != nil {
		return nil, err
	}
	var sels []ast.Selector
	p.skipWS()
	for {
		sel, err := p.parseSelector()
		if err != nil {
			return nil, err
		}
		sels = append(sels, sel)
		p.skipWS()
		if p.consumeByte(',') {
			p.skipWS()
			continue
		}
		break
	}
	p.skipWS()
	if err := p.expectByte(']'); err != nil {
		return nil, err
	}
	return sels, nil
}

func (p *parser) parseSelector() (ast.Selector, error) {
	if p.eof() {
		return nil, p.errorf("expected selector")
	}
	switch p.peekByte() {
	case '\'', '"':
		name, err := p.parseQuotedString(p.peekByte())
		if err != nil {
			return nil, err
		}
		return ast.NameSelector{Name: name}, nil
	case '*':
		p.pos++
		return ast.WildcardSelector{}, nil
	case '?':
		p.pos++
		p.skipWS()
		expr, err := p.parseLogicalOr()
		if err != nil {
			return nil, err
		}
		return ast.FilterSelector{Expr: expr}, nil
	case ':':
		return p.parseSliceSelector(nil)
	}
	if isDigit(p.peekByte()) || p.peekByte() == '-' {
		n, err := p.parseIndexInt()
		if err != nil {
			return nil, err
		}
		p.skipWS()
		if p.peekByte() == ':' {
			return p.parseSliceSelector(&n)
		}
		return ast.IndexSelector{Index: n}, nil
	}
	return nil, p.errorf("unexpected character %q in selector", p.peekByte())
}

func (p *parser) parseSliceSelector(start *int64) (ast.Selector, error) {
	if err := p.expectByte(':'); err != nil {
		return nil, err
	}
	sel := ast.SliceSelector{Start: start}
	p.skipWS()
	if end, ok, err := p.maybeParseIndexInt(); err != nil {
		return nil, err
	} else if ok {
		sel.End = &end
	}
	p.skipWS()
	if p.consumeByte(':') {
		p.skipWS()
		if step, ok, err := p.maybeParseIndexInt(); err != nil {
			return nil, err
		} else if ok {
			sel.Step = &step
		}
	}
	return sel, nil
}

func (p *parser) maybeParseIndexInt() (int64, bool, error) {
	if p.eof() {
		return 0, false, nil
	}
	switch p.peekByte() {
	case ':', ']', ',':
		return 0, false, nil
	}
	n, err := p.parseIndexInt()
	if err != nil {
		return 0, false, err
	}
	return n, true, nil
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// parseIndexInt parses the RFC 9535 "int" production used by index and
// slice components: "0", or an optional '-' followed by a nonzero leading
// digit and more digits. "-0" is rejected (int = "0" / (["-"] DIGIT1
// *DIGIT)), and the result is range-checked against the I-JSON safe
// integer bound.
func (p *parser) parseIndexInt() (int64, error) {
	start := p.pos
	neg := p.consumeByte('-')
	if p.eof() || !isDigit(p.peekByte()) {
		return 0, p.errorfAt(start, "expected integer")
	}
	if p.peekByte() == '0' {
		p.pos++
		if neg {
			return 0, p.errorfAt(start, "-0 is not a valid index")
		}
		return 0, nil
	}
	digitsStart := p.pos
	for !p.eof() && isDigit(p.peekByte()) {
		p.pos++
	}
	text := p.s[digitsStart:p.pos]
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil || n > maxSafeInteger {
		return 0, p.errorfAt(start, "index %s out of I-JSON safe integer range", p.s[start:p.pos])
	}
	if neg {
		n = -n
	}
	return n, nil
}

// parseQuotedString parses a single- or double-quoted string literal,
// decoding the RFC 9535 §2.3.1.1 escape sequences, including \uXXXX and
// surrogate pairs for astral characters.
func (p *parser) parseQuotedString(quote byte) (string, error) {
	start := p.pos
	p.pos++ // opening quote
	var b strings.Builder
	for {
		if p.eof() {
			return "", p.errorfAt(start, "unterminated string literal")
		}
		c := p.s[p.pos]
		if c == quote {
			p.pos++
			return b.String(), nil
		}
		if c == '\\' {
			p.pos++
			if p.eof() {
				return "", p.errorfAt(start, "unterminated escape sequence")
			}
			esc := p.s[p.pos]
			switch esc {
			case 'b':
				b.WriteByte('\b')
				p.pos++
			case 'f':
				b.WriteByte('\f')
				p.pos++
			case 'n':
				b.WriteByte('\n')
				p.pos++
			case 'r':
				b.WriteByte('\r')
				p.pos++
			case 't':
				b.WriteByte('\t')
				p.pos++
			case '/':
				b.WriteByte('/')
				p.pos++
			case '\\':
				b.WriteByte('\\')
				p.pos++
			case '\'':
				b.WriteByte('\'')
				p.pos++
			case '"':
				b.WriteByte('"')
				p.pos++
			case 'u':
				p.pos++
				r, err := p.parseUnicodeEscape()
				if err != nil {
					return "", err
				}
				b.WriteRune(r)
			default:
				return "", p.errorf("invalid escape sequence '\\%c'", esc)
			}
			continue
		}
		r, size := utf8.DecodeRuneInString(p.s[p.pos:])
		b.WriteRune(r)
		p.pos += size
	}
}

func (p *parser) parseUnicodeEscape() (rune, error) {
	hi, err := p.parseHex4()
	if err != nil {
		return 0, err
	}
	if utf16.IsSurrogate(rune(hi)) {
		if !p.consumePrefix(`\u`) {
			return 0, p.errorf("expected low surrogate \\u escape")
		}
		lo, err := p.parseHex4()
		if err != nil {
			return 0, err
		}
		r := utf16.DecodeRune(rune(hi), rune(lo))
		if r == utf8.RuneError {
			return 0, p.errorf("invalid surrogate pair \\u%04x\\u%04x", hi, lo)
		}
		return r, nil
	}
	return rune(hi), nil
}

func (p *parser) parseHex4() (uint32, error) {
	if p.pos+4 > len(p.s) {
		return 0, p.errorf("incomplete \\u escape")
	}
	text := p.s[p.pos : p.pos+4]
	n, err := strconv.ParseUint(text, 16, 32)
	if err != nil {
		return 0, p.errorf("invalid \\u escape %q", text)
	}
	p.pos += 4
	return uint32(n), nil
}
