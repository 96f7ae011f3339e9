package jsonpath_test

import (
	"encoding/json"
	"testing"

	"github.com/hiltontj/go-jsonpath"
	"github.com/hiltontj/go-jsonpath/value"
)

const sampleJSON = `{
	"store": {
		"book": [
			{"category": "reference", "title": "Sayings of the Century", "author": "Nigel Rees", "price": 8.95},
			{"category": "fiction", "title": "Sword of Honour", "author": "Evelyn Waugh", "price": 12.99},
			{"category": "fiction", "title": "Moby Dick", "author": "Herman Melville", "price": 8.99, "isbn": "0-553-21311-3"}
		],
		"bicycle": {"color": "red", "price": 19.95}
	}
}`

func mustSample(t *testing.T) value.Value {
	t.Helper()
	doc, err := value.Unmarshal([]byte(sampleJSON))
	if err != nil {
		t.Fatalf("Unmarshal sample: %v", err)
	}
	return doc
}

func TestQueryScenarios(t *testing.T) {
	doc := mustSample(t)
	cases := []struct {
		name string
		path string
		want int // expected result count
	}{
		{"root", "$", 1},
		{"child", "$.store", 1},
		{"nested child", "$.store.bicycle.color", 1},
		{"array index", "$.store.book[0].title", 1},
		{"negative index", "$.store.book[-1].title", 1},
		{"wildcard array", "$.store.book[*]", 3},
		{"wildcard object", "$.store.*", 2},
		{"recursive descent", "$..price", 4},
		{"slice with step", "$.store.book[0:3:2]", 2},
		{"filter less-than", "$.store.book[?@.price < 10]", 2},
		{"filter equality", "$.store.book[?@.category == 'fiction']", 2},
		{"filter existence", "$.store.book[?@.isbn]", 1},
		{"filter and", "$.store.book[?@.price < 10 && @.category == 'fiction']", 1},
		{"filter or", "$.store.book[?@.category == 'reference' || @.price > 12]", 2},
		{"union indices", "$.store.book[0,2].title", 2},
		{"union keys", "$.store.bicycle['color','price']", 2},
		{"bracket quoted key", "$.store['bicycle']['color']", 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			path, err := jsonpath.Parse(c.path)
			if err != nil {
				t.Fatalf("Parse(%q): %v", c.path, err)
			}
			got := path.Query(doc).Len()
			if got != c.want {
				t.Errorf("Query(%q).Len() = %d, want %d", c.path, got, c.want)
			}
		})
	}
}

func TestQueryFunctionExtensions(t *testing.T) {
	doc := mustSample(t)
	cases := []struct {
		path string
		want int
	}{
		{"$.store.book[?length(@.title) > 15]", 1},
		{"$.store.book[?count(@.*) > 4]", 1},
		{"$.store.book[?match(@.category, 'fic.*')]", 2},
		{"$.store.book[?search(@.author, 'Waugh')]", 1},
	}
	for _, c := range cases {
		path, err := jsonpath.Parse(c.path)
		if err != nil {
			t.Fatalf("Parse(%q): %v", c.path, err)
		}
		got := path.Query(doc).Len()
		if got != c.want {
			t.Errorf("Query(%q).Len() = %d, want %d", c.path, got, c.want)
		}
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("MustParse should have panicked on invalid input")
		}
	}()
	jsonpath.MustParse("not a path")
}

func TestIsParseError(t *testing.T) {
	_, err := jsonpath.Parse("$[")
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !jsonpath.IsParseError(err) {
		t.Errorf("IsParseError(%v) = false, want true", err)
	}
}

func TestPathStringRoundTrip(t *testing.T) {
	path := jsonpath.MustParse("$.store.book[0].title")
	s := path.String()
	reparsed, err := jsonpath.Parse(s)
	if err != nil {
		t.Fatalf("re-Parse(%q): %v", s, err)
	}
	if reparsed.String() != s {
		t.Errorf("round trip mismatch: %q != %q", reparsed.String(), s)
	}
}

func TestPathJSONMarshaling(t *testing.T) {
	type config struct {
		Selector *jsonpath.Path `json:"selector"`
	}
	c := config{Selector: jsonpath.MustParse("$.store.book[*].price")}
	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded config
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.Selector.String() != c.Selector.String() {
		t.Errorf("round trip: got %q, want %q", decoded.Selector.String(), c.Selector.String())
	}
}

func TestQueryLocatedMatchesNodes(t *testing.T) {
	doc := mustSample(t)
	path := jsonpath.MustParse("$.store.book[*].price")
	located := path.QueryLocated(doc)
	plain := path.Query(doc)
	if located.Len() != plain.Len() {
		t.Fatalf("located.Len() = %d, plain.Len() = %d", located.Len(), plain.Len())
	}
	for i, l := range located.All() {
		if l.Node != plain.All()[i] {
			t.Errorf("node %d mismatch: %v != %v", i, l.Node, plain.All()[i])
		}
	}
}

func TestEmptyResult(t *testing.T) {
	doc := mustSample(t)
	path := jsonpath.MustParse("$.store.nonexistent")
	got := path.Query(doc)
	if !got.IsEmpty() {
		t.Errorf("expected empty result, got %d nodes", got.Len())
	}
}

func TestNullValue(t *testing.T) {
	doc, err := value.Unmarshal([]byte(`{"a": null}`))
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	path := jsonpath.MustParse("$.a")
	got, err := path.Query(doc).ExactlyOne()
	if err != nil {
		t.Fatalf("ExactlyOne: %v", err)
	}
	if _, ok := got.(value.Null); !ok {
		t.Errorf("got %T, want value.Null", got)
	}
}
