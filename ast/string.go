package ast

import (
	"strconv"
	"strings"
)

// String renders q in canonical bracket-notation form, e.g. $['a'][0][?@['b']].
// Re-parsing the result yields a query with the same meaning as q, though
// not necessarily the same surface syntax it was originally parsed from
// (shorthand ".a" renders as "['a']").
func (q *Query) String() string {
	var b strings.Builder
	b.WriteByte('$')
	for _, seg := range q.Segments {
		seg.writeTo(&b)
	}
	return b.String()
}

func (seg Segment) writeTo(b *strings.Builder) {
	if seg.Descendant {
		b.WriteString("..")
	}
	b.WriteByte('[')
	for i, sel := range seg.Selectors {
		if i > 0 {
			b.WriteByte(',')
		}
		writeSelector(b, sel)
	}
	b.WriteByte(']')
}

func writeSelector(b *strings.Builder, sel Selector) {
	switch s := sel.(type) {
	case NameSelector:
		writeQuotedName(b, s.Name)
	case WildcardSelector:
		b.WriteByte('*')
	case IndexSelector:
		b.WriteString(strconv.FormatInt(s.Index, 10))
	case SliceSelector:
		writeIntPtr(b, s.Start)
		b.WriteByte(':')
		writeIntPtr(b, s.End)
		if s.Step != nil {
			b.WriteByte(':')
			b.WriteString(strconv.FormatInt(*s.Step, 10))
		}
	case FilterSelector:
		b.WriteByte('?')
		b.WriteString(s.Expr.String())
	}
}

func writeIntPtr(b *strings.Builder, p *int64) {
	if p != nil {
		b.WriteString(strconv.FormatInt(*p, 10))
	}
}

func writeQuotedName(b *strings.Builder, name string) {
	b.WriteByte('\'')
	for _, r := range name {
		switch r {
		case '\'':
			b.WriteString(`\'`)
		case '\\':
			b.WriteString(`\\`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
}

// String renders the logical expression using infix operators, matching
// the precedence the parser accepts (! binds tighter than &&, which binds
// tighter than ||).
func (e *LogicalExpr) String() string {
	switch {
	case len(e.Or) > 0:
		parts := make([]string, len(e.Or))
		for i, sub := range e.Or {
			parts[i] = sub.String()
		}
		return strings.Join(parts, " || ")
	case len(e.And) > 0:
		parts := make([]string, len(e.And))
		for i, sub := range e.And {
			parts[i] = sub.parenthesizedIfOr()
		}
		return strings.Join(parts, " && ")
	case e.Not != nil:
		return "!" + e.Not.parenthesizedIfCompound()
	case e.Test != nil:
		return e.Test.String()
	case e.Compare != nil:
		return e.Compare.String()
	default:
		return ""
	}
}

func (e *LogicalExpr) parenthesizedIfOr() string {
	if len(e.Or) > 0 {
		return "(" + e.String() + ")"
	}
	return e.String()
}

func (e *LogicalExpr) parenthesizedIfCompound() string {
	if len(e.Or) > 0 || len(e.And) > 0 || e.Not != nil || e.Compare != nil {
		return "(" + e.String() + ")"
	}
	return e.String()
}

func (t *Test) String() string {
	if t.Function != nil {
		return t.Function.String()
	}
	return t.Path.String()
}

func (c *Comparison) String() string {
	return c.Left.String() + " " + c.Op.String() + " " + c.Right.String()
}

func (p *FilterPath) String() string {
	var b strings.Builder
	if p.Root {
		b.WriteByte('$')
	} else {
		b.WriteByte('@')
	}
	for _, seg := range p.Segments {
		seg.writeTo(&b)
	}
	return b.String()
}

func (c *FunctionCall) String() string {
	var b strings.Builder
	b.WriteString(c.Name)
	b.WriteByte('(')
	for i, arg := range c.Args {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(arg.String())
	}
	b.WriteByte(')')
	return b.String()
}

func (a FunctionArg) String() string {
	switch {
	case a.Literal != nil:
		return a.Literal.String()
	case a.Path != nil:
		return a.Path.String()
	case a.Call != nil:
		return a.Call.String()
	case a.Logical != nil:
		return a.Logical.String()
	default:
		return ""
	}
}

func (l *Literal) String() string {
	switch l.Kind {
	case LiteralNull:
		return "null"
	case LiteralBool:
		if l.Bool {
			return "true"
		}
		return "false"
	case LiteralNumber:
		return strconv.FormatFloat(l.Num, 'g', -1, 64)
	case LiteralString:
		var b strings.Builder
		b.WriteByte('"')
		for _, r := range l.Str {
			switch r {
			case '"':
				b.WriteString(`\"`)
			case '\\':
				b.WriteString(`\\`)
			default:
				b.WriteRune(r)
			}
		}
		b.WriteByte('"')
		return b.String()
	default:
		return ""
	}
}

func (q *SingularQuery) String() string          { return q.Query.String() }
func (f *FunctionCallComparable) String() string { return f.Call.String() }
