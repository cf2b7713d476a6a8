package node

import (
	"errors"
	"strings"
	"testing"

	"github.com/signadot/configurator/schema"
)

func TestCheckEnumOverlap(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want int
	}{
		{"instance types", `{"type": ["boolean", "string", "null"]}`, 0},
		{"literals", `{"enum": ["a", "b", 1]}`, 0},
		{"string and literal", `{"anyOf": [{"type": "string"}, {"enum": ["a", "b"]}]}`, 1},
		{"any", `{"anyOf": [{}, {"type": "integer"}]}`, 1},
		{
			"disjoint objects",
			`{"anyOf": [
  {"type": "object", "properties": {"a": {"type": "string"}}},
  {"type": "object", "properties": {"b": {"type": "boolean"}}}
]}`,
			0,
		},
		{
			"optional field",
			`{"anyOf": [
  {"type": "object", "properties": {"a": {"type": "string"}}},
  {"type": "object", "properties": {"a": {"type": "string"}, "b": {"type": ["boolean", "null"]}}}
]}`,
			1,
		},
		{
			"tuples of other lengths",
			`{"anyOf": [
  {"type": "array", "items": [{"type": "string"}]},
  {"type": "array", "items": [{"type": "string"}, {"type": "string"}]}
]}`,
			0,
		},
		{
			"nested in a field",
			`{"type": "object", "properties": {"x": {"anyOf": [{"type": "number"}, {"const": 3}]}}}`,
			1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := compileDoc(t, tt.doc)
			if got := CheckEnumOverlap(c); len(got) != tt.want {
				t.Errorf("got %v, want %d overlaps", got, tt.want)
			}
		})
	}
}

func TestStrictRejectsOverlap(t *testing.T) {
	r, err := schema.Load([]byte(`{"type": "object", "properties": {"x": {"anyOf": [{"type": "string"}, {"const": "a"}]}}}`))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Compile(r); err != nil {
		t.Fatal(err)
	}
	_, err = Compile(r, Strict())
	var serr *SchemaError
	if !errors.As(err, &serr) {
		t.Fatalf("got %v", err)
	}
	if serr.Path != "$.x" || !strings.Contains(serr.Message, "variants 0 and 1") {
		t.Errorf("got %v", serr)
	}
}
