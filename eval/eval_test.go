package eval_test

import (
	"testing"

	"github.com/hiltontj/go-jsonpath/eval"
	"github.com/hiltontj/go-jsonpath/parser"
	"github.com/hiltontj/go-jsonpath/value"
)

func TestQueryBasic(t *testing.T) {
	doc, err := value.Unmarshal([]byte(`{"a": {"b": [1,2,3]}, "c": 10}`))
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	q, err := parser.Parse("$.a.b[1]")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	result := eval.Query(doc, q)
	if result.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", result.Len())
	}
	if result.First() != value.Number(2) {
		t.Errorf("First() = %v, want 2", result.First())
	}
}

func TestQueryWildcardDocumentOrder(t *testing.T) {
	doc, _ := value.Unmarshal([]byte(`{"z": 1, "a": 2}`))
	q, _ := parser.Parse("$.*")
	result := eval.Query(doc, q)
	got := result.All()
	if len(got) != 2 || got[0] != value.Number(1) || got[1] != value.Number(2) {
		t.Errorf("got %v, want [1, 2] in document order", got)
	}
}

func TestQuerySlice(t *testing.T) {
	doc, _ := value.Unmarshal([]byte(`[0,1,2,3,4,5]`))
	cases := []struct {
		q    string
		want []float64
	}{
		{"$[1:3]", []float64{1, 2}},
		{"$[::2]", []float64{0, 2, 4}},
		{"$[::-1]", []float64{5, 4, 3, 2, 1, 0}},
		{"$[-2:]", []float64{4, 5}},
	}
	for _, c := range cases {
		q, err := parser.Parse(c.q)
		if err != nil {
			t.Fatalf("Parse(%q): %v", c.q, err)
		}
		got := eval.Query(doc, q).All()
		if len(got) != len(c.want) {
			t.Fatalf("%s: got %v, want %v", c.q, got, c.want)
		}
		for i, w := range c.want {
			if got[i] != value.Number(w) {
				t.Errorf("%s: got[%d] = %v, want %v", c.q, i, got[i], w)
			}
		}
	}
}

func TestQueryDescendant(t *testing.T) {
	doc, _ := value.Unmarshal([]byte(`{"a": {"a": 1}, "b": [{"a": 2}]}`))
	q, _ := parser.Parse("$..a")
	got := eval.Query(doc, q).All()
	// ..a selects "a" at the root and at every descendant: {"a":1}, 1, 2.
	if len(got) != 3 {
		t.Fatalf("got %v, want 3 results", got)
	}
}

func TestQueryFilterComparison(t *testing.T) {
	doc, _ := value.Unmarshal([]byte(`[{"v": 1}, {"v": 5}, {"v": 10}]`))
	q, _ := parser.Parse("$[?@.v > 3]")
	got := eval.Query(doc, q).All()
	if len(got) != 2 {
		t.Fatalf("got %d results, want 2", len(got))
	}
}

func TestQueryFilterExistence(t *testing.T) {
	doc, _ := value.Unmarshal([]byte(`[{"v": 1}, {}]`))
	q, _ := parser.Parse("$[?@.v]")
	got := eval.Query(doc, q).All()
	if len(got) != 1 {
		t.Fatalf("got %d results, want 1", len(got))
	}
}

func TestQueryFunctionLength(t *testing.T) {
	doc, _ := value.Unmarshal([]byte(`[{"s": "abc"}, {"s": "de"}]`))
	q, _ := parser.Parse("$[?length(@.s) > 2]")
	got := eval.Query(doc, q).All()
	if len(got) != 1 {
		t.Fatalf("got %d results, want 1", len(got))
	}
}

func TestQueryFunctionCountAndValueOverSingularPath(t *testing.T) {
	doc, _ := value.Unmarshal([]byte(`[{"a": 1}, {}]`))

	countQ, _ := parser.Parse("$[?count(@.a) == 1]")
	if got := eval.Query(doc, countQ).Len(); got != 1 {
		t.Errorf("count(@.a) over singular path: got %d results, want 1", got)
	}

	valueQ, _ := parser.Parse("$[?value(@.a) == 1]")
	if got := eval.Query(doc, valueQ).Len(); got != 1 {
		t.Errorf("value(@.a) over singular path: got %d results, want 1", got)
	}
}

func TestQueryLocatedNormalizedPath(t *testing.T) {
	doc, _ := value.Unmarshal([]byte(`{"a": [10, 20]}`))
	q, _ := parser.Parse("$.a[*]")
	result := eval.QueryLocated(doc, q)
	locs := result.Locations()
	if len(locs) != 2 {
		t.Fatalf("got %d locations, want 2", len(locs))
	}
	if locs[0].String() != "$['a'][0]" {
		t.Errorf("locs[0] = %q, want $['a'][0]", locs[0].String())
	}
	if locs[1].String() != "$['a'][1]" {
		t.Errorf("locs[1] = %q, want $['a'][1]", locs[1].String())
	}
}

func TestNormalizedPathJSONPointer(t *testing.T) {
	doc, _ := value.Unmarshal([]byte(`{"a~b": [1], "c/d": 2}`))
	q, _ := parser.Parse("$['a~b'][0]")
	result := eval.QueryLocated(doc, q)
	locs := result.Locations()
	if len(locs) != 1 {
		t.Fatalf("got %d locations, want 1", len(locs))
	}
	if got := locs[0].ToJSONPointer(); got != "/a~0b/0" {
		t.Errorf("ToJSONPointer() = %q, want /a~0b/0", got)
	}
}

func TestNodeListAtMostOneAndExactlyOne(t *testing.T) {
	doc, _ := value.Unmarshal([]byte(`{"a": [1,2,3]}`))

	q1, _ := parser.Parse("$.a[0]")
	one := eval.Query(doc, q1)
	if v, err := one.ExactlyOne(); err != nil || v != value.Number(1) {
		t.Errorf("ExactlyOne() = (%v, %v), want (1, nil)", v, err)
	}

	q2, _ := parser.Parse("$.a[*]")
	many := eval.Query(doc, q2)
	if _, err := many.ExactlyOne(); err == nil {
		t.Error("ExactlyOne() should error on multiple nodes")
	}
	if _, err := many.AtMostOne(); err == nil {
		t.Error("AtMostOne() should error on multiple nodes")
	}

	q3, _ := parser.Parse("$.missing")
	none := eval.Query(doc, q3)
	if v, err := none.AtMostOne(); err != nil || v != nil {
		t.Errorf("AtMostOne() on empty = (%v, %v), want (nil, nil)", v, err)
	}
}

func TestDedup(t *testing.T) {
	doc, _ := value.Unmarshal([]byte(`{"a": 1}`))
	q, _ := parser.Parse("$['a','a']")
	result := eval.QueryLocated(doc, q)
	if result.Len() != 2 {
		t.Fatalf("got %d results before dedup, want 2", result.Len())
	}
	deduped := result.Dedup()
	if deduped.Len() != 1 {
		t.Errorf("got %d results after dedup, want 1", deduped.Len())
	}
}
