package jsonpath_test

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/hiltontj/go-jsonpath"
	"github.com/hiltontj/go-jsonpath/value"
)

func ExampleParse() {
	doc, err := value.Unmarshal([]byte(`{"store":{"book":[{"title":"Go Programming","price":29.99},{"title":"Clean Code","price":34.99}]}}`))
	if err != nil {
		log.Fatal(err)
	}
	path, err := jsonpath.Parse("$.store.book[*].title")
	if err != nil {
		log.Fatal(err)
	}
	for _, v := range path.Query(doc).All() {
		fmt.Println(v)
	}
	// Output:
	// Go Programming
	// Clean Code
}

func ExamplePath_Query_exactlyOne() {
	doc, _ := value.Unmarshal([]byte(`{"user":{"name":"Alice","role":"admin"}}`))
	path := jsonpath.MustParse("$.user.name")
	name, err := path.Query(doc).ExactlyOne()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(name)
	// Output:
	// Alice
}

func ExamplePath_Query_existence() {
	doc, _ := value.Unmarshal([]byte(`{"feature":{"enabled":true}}`))
	path := jsonpath.MustParse("$.feature.enabled")
	fmt.Println(!path.Query(doc).IsEmpty())
	// Output:
	// true
}

func ExampleMustCompile() {
	path := jsonpath.MustCompile("$.store.book[*].price")

	doc1, _ := value.Unmarshal([]byte(`{"store":{"book":[{"price":9.99},{"price":14.99}]}}`))
	doc2, _ := value.Unmarshal([]byte(`{"store":{"book":[{"price":4.99}]}}`))

	for _, doc := range []value.Value{doc1, doc2} {
		for _, v := range path.Query(doc).All() {
			fmt.Println(v)
		}
	}
	// Output:
	// 9.99
	// 14.99
	// 4.99
}

func ExamplePath_Query_filter() {
	doc, _ := value.Unmarshal([]byte(`{"products":[{"name":"Widget","price":5.00},{"name":"Gadget","price":25.00},{"name":"Doohickey","price":8.50}]}`))
	path := jsonpath.MustParse("$.products[?@.price < 10].name")
	for _, v := range path.Query(doc).All() {
		fmt.Println(v)
	}
	// Output:
	// Widget
	// Doohickey
}

func ExamplePath_Query_count() {
	doc, _ := value.Unmarshal([]byte(`{"scores":[10,20,30,40]}`))
	path := jsonpath.MustParse("$.scores[*]")
	fmt.Println(path.Query(doc).Len())
	// Output:
	// 4
}

func ExamplePath_Query_recursiveDescent() {
	doc, _ := value.Unmarshal([]byte(`{"a":{"price":1},"b":{"c":{"price":2}}}`))
	path := jsonpath.MustParse("$..price")
	fmt.Println(path.Query(doc).Len())
	// Output:
	// 2
}

func ExamplePath_MarshalJSON() {
	path := jsonpath.MustParse("$.key")
	b, _ := json.Marshal(path)
	fmt.Println(string(b))
	// Output:
	// "$['key']"
}
