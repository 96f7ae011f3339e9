package ast_test

import (
	"testing"

	"github.com/hiltontj/go-jsonpath/ast"
)

func TestQueryIsSingular(t *testing.T) {
	cases := []struct {
		name string
		q    *ast.Query
		want bool
	}{
		{
			name: "name then index",
			q: &ast.Query{Segments: []ast.Segment{
				{Selectors: []ast.Selector{ast.NameSelector{Name: "a"}}},
				{Selectors: []ast.Selector{ast.IndexSelector{Index: 0}}},
			}},
			want: true,
		},
		{
			name: "wildcard",
			q: &ast.Query{Segments: []ast.Segment{
				{Selectors: []ast.Selector{ast.WildcardSelector{}}},
			}},
			want: false,
		},
		{
			name: "descendant",
			q: &ast.Query{Segments: []ast.Segment{
				{Descendant: true, Selectors: []ast.Selector{ast.NameSelector{Name: "a"}}},
			}},
			want: false,
		},
		{
			name: "multiple selectors in one segment",
			q: &ast.Query{Segments: []ast.Segment{
				{Selectors: []ast.Selector{ast.IndexSelector{Index: 0}, ast.IndexSelector{Index: 1}}},
			}},
			want: false,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.q.IsSingular(); got != c.want {
				t.Errorf("IsSingular() = %v, want %v", got, c.want)
			}
		})
	}
}

func TestQueryString(t *testing.T) {
	q := &ast.Query{Segments: []ast.Segment{
		{Selectors: []ast.Selector{ast.NameSelector{Name: "a"}}},
		{Selectors: []ast.Selector{ast.IndexSelector{Index: -1}}},
		{Descendant: true, Selectors: []ast.Selector{ast.WildcardSelector{}}},
	}}
	got := q.String()
	want := "$['a'][-1]..[*]"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestLogicalExprStringPrecedence(t *testing.T) {
	leaf := func(name string) *ast.LogicalExpr {
		return &ast.LogicalExpr{Test: &ast.Test{Path: &ast.FilterPath{Root: false, Segments: []ast.Segment{
			{Selectors: []ast.Selector{ast.NameSelector{Name: name}}},
		}}}}
	}
	expr := &ast.LogicalExpr{Or: []*ast.LogicalExpr{
		{And: []*ast.LogicalExpr{leaf("a"), leaf("b")}},
		leaf("c"),
	}}
	got := expr.String()
	want := "@['a'] && @['b'] || @['c']"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
