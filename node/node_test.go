package node

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/configurator/schema"
	"github.com/signadot/configurator/value"
)

const configSchema = `{
  "type": "object",
  "properties": {
    "zoom": {"type": "integer", "format": "uint8", "default": 3},
    "name": {"type": ["string", "null"], "default": null},
    "mode": {"$ref": "#/definitions/Mode"},
    "tags": {"type": "array", "items": {"type": "string"}},
    "extra": {"type": "object", "additionalProperties": {"type": "string"}}
  },
  "definitions": {
    "Mode": {"enum": ["Light", "Dark"]}
  }
}`

func compileDoc(t *testing.T, doc string, opts ...CompileOption) *Container {
	t.Helper()
	r, err := schema.Load([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	c, err := Compile(r, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func expectValue(t *testing.T, c *Container, want value.Value) {
	t.Helper()
	got, ok := c.ToValue()
	if want.IsEmpty() {
		if ok {
			t.Errorf("ToValue() = %s, want nothing", got)
		}
		return
	}
	if !ok {
		t.Fatalf("ToValue() returned nothing, want %s", want)
	}
	if !got.Equal(want) {
		t.Errorf("ToValue() (-want +got):\n%s", cmp.Diff(want.String(), got.String()))
	}
}

func TestApplyThenClear(t *testing.T) {
	c := compileDoc(t, `{
  "type": "object",
  "properties": {
    "bool": {"type": "boolean"},
    "tags": {"type": "array", "items": {"type": "string"}}
  }
}`)
	v := value.Struct(
		value.F("bool", value.FromBool(true)),
		value.F("tags", value.FromList(value.FromString("a"), value.FromString("b"))))
	if err := c.ApplyValue(v, true); err != nil {
		t.Fatal(err)
	}
	expectValue(t, c, v)

	c.RemoveValueRec()
	if err := c.ApplyValue(value.Empty, true); err != nil {
		t.Fatal(err)
	}
	expectValue(t, c, value.Empty)
}

func TestDefaultsAreNotWritten(t *testing.T) {
	c := compileDoc(t, configSchema)
	expectValue(t, c, value.Empty)

	zoom, err := c.GetAt(MustParsePath("$.zoom"))
	if err != nil {
		t.Fatal(err)
	}
	n := zoom.Node.(*Number)
	if !n.Bound || n.Display != "3" || zoom.Modified {
		t.Errorf("zoom = %+v modified=%v", n, zoom.Modified)
	}
	name, err := c.GetAt(MustParsePath("$.name"))
	if err != nil {
		t.Fatal(err)
	}
	if name.Kind() != NullKind {
		t.Errorf("name resolves to %s, want Null", name.Kind())
	}
}

func TestEffective(t *testing.T) {
	c := compileDoc(t, configSchema)
	if err := c.ApplyValue(value.Struct(value.F("zoom", value.FromI64(7))), true); err != nil {
		t.Fatal(err)
	}
	expectValue(t, c, value.Struct(value.F("zoom", value.FromI64(7))))

	got, ok := c.Effective()
	if !ok {
		t.Fatal("no effective value")
	}
	want := value.Struct(
		value.F("zoom", value.FromI64(7)),
		value.F("name", value.None()),
		value.F("extra", value.Struct()),
	)
	if !got.Equal(want) {
		t.Errorf("Effective() (-want +got):\n%s", cmp.Diff(want.String(), got.String()))
	}
}

func TestRoundTrip(t *testing.T) {
	c := compileDoc(t, configSchema)
	v := value.Struct(
		value.F("mode", value.FromString("Dark")),
		value.F("extra", value.Struct(value.F("a", value.FromString("x")))))
	if err := c.ApplyValue(v, true); err != nil {
		t.Fatal(err)
	}
	expectValue(t, c, v)

	// applying the projection again changes nothing.
	out, _ := c.ToValue()
	c.RemoveValueRec()
	if err := c.ApplyValue(out, true); err != nil {
		t.Fatal(err)
	}
	expectValue(t, c, v)
}

func TestApplyTwice(t *testing.T) {
	c := compileDoc(t, configSchema)
	v := value.Struct(
		value.F("zoom", value.FromI64(9)),
		value.F("name", value.Some(value.FromString("n"))),
		value.F("mode", value.FromString("Dark")),
		value.F("tags", value.FromList(value.FromString("a"), value.FromString("b"))),
		value.F("extra", value.Struct(value.F("k", value.FromString("v")))))
	for i := 0; i < 2; i++ {
		if err := c.ApplyValue(v, true); err != nil {
			t.Fatal(err)
		}
		expectValue(t, c, v)
	}
	extra, _ := c.GetAt(MustParsePath("$.extra"))
	if n := extra.Node.(*Object).Fields.Len(); n != 1 {
		t.Errorf("extra has %d entries, want 1", n)
	}
	tags, _ := c.GetAt(MustParsePath("$.tags"))
	if n := len(tags.Node.(*Array).Values); n != 2 {
		t.Errorf("tags has %d elements, want 2", n)
	}
}

func TestRefinedReferenceNotShared(t *testing.T) {
	doc := `{
  "type": "object",
  "properties": {
    "p1": {"allOf": [{"$ref": "#/definitions/X"}, {"properties": {"b": {"type": "boolean"}}}]},
    "p2": {"$ref": "#/definitions/X"}
  },
  "definitions": {
    "X": {"type": ["object", "null"], "properties": {"a": {"type": "string"}}}
  }
}`
	c := compileDoc(t, doc)
	v := value.Struct(
		value.F("p1", value.Struct(value.F("a", value.FromString("x")), value.F("b", value.FromBool(true)))),
		value.F("p2", value.Struct(value.F("a", value.FromString("y")))))
	if err := c.ApplyValue(v, true); err != nil {
		t.Fatal(err)
	}
	expectValue(t, c, v)

	c = compileDoc(t, doc)
	err := c.ApplyValue(value.Struct(
		value.F("p2", value.Struct(value.F("a", value.FromString("x")), value.F("b", value.FromBool(true))))), true)
	if !errors.Is(err, ErrReconcile) {
		t.Errorf("p2 accepted a field of p1: got %v", err)
	}
}

func TestUndeclaredKeysDropped(t *testing.T) {
	c := compileDoc(t, `{"type": "object", "properties": {"a": {"type": "string"}}}`)
	v := value.Struct(value.F("a", value.FromString("x")), value.F("zzz", value.FromI64(1)))
	if err := c.ApplyValue(v, true); err != nil {
		t.Fatal(err)
	}
	expectValue(t, c, value.Struct(value.F("a", value.FromString("x"))))
}

func TestMissingFieldFallsBackToDefault(t *testing.T) {
	c := compileDoc(t, configSchema)
	if err := c.ApplyValue(value.Struct(value.F("zoom", value.FromI64(9))), true); err != nil {
		t.Fatal(err)
	}
	if err := c.ApplyValue(value.Struct(value.F("mode", value.FromString("Light"))), true); err != nil {
		t.Fatal(err)
	}
	expectValue(t, c, value.Struct(value.F("mode", value.FromString("Light"))))
	zoom, _ := c.GetAt(MustParsePath("$.zoom"))
	if d := zoom.Node.(*Number).Display; d != "3" {
		t.Errorf("zoom display = %q, want 3", d)
	}
}

func TestEnumSelection(t *testing.T) {
	c := compileDoc(t, `{"type": ["boolean", "string"]}`)
	e := c.Node.(*Enum)

	if err := c.ApplyValue(value.FromString("x"), true); err != nil {
		t.Fatal(err)
	}
	if e.Selected != 1 {
		t.Errorf("selected %d, want 1", e.Selected)
	}
	expectValue(t, c, value.FromString("x"))

	if err := c.ApplyValue(value.FromBool(true), true); err != nil {
		t.Fatal(err)
	}
	if e.Selected != 0 {
		t.Errorf("selected %d, want 0", e.Selected)
	}
	expectValue(t, c, value.FromBool(true))

	err := c.ApplyValue(value.FromI64(1), true)
	var rerr *ReconcileError
	if !errors.As(err, &rerr) || !errors.Is(err, ErrReconcile) {
		t.Fatalf("got %v, want a reconcile error", err)
	}
	if rerr.Path != "$" {
		t.Errorf("error path %q", rerr.Path)
	}
}

func TestEnumObjectVariants(t *testing.T) {
	c := compileDoc(t, `{"anyOf": [
  {"type": "object", "properties": {"a": {"type": "string"}}},
  {"type": "object", "properties": {"b": {"type": "boolean"}}}
]}`)
	e := c.Node.(*Enum)
	for i, v := range []value.Value{
		value.Struct(value.F("a", value.FromString("x"))),
		value.Struct(value.F("b", value.FromBool(false))),
	} {
		if err := c.ApplyValue(v, true); err != nil {
			t.Fatal(err)
		}
		if e.Selected != i {
			t.Errorf("%s selected %d", v, e.Selected)
		}
		expectValue(t, c, v)
	}
}

func TestOptionRewrap(t *testing.T) {
	c := compileDoc(t, `{"type": ["string", "null"]}`)
	some := value.Some(value.FromString("x"))
	if err := c.ApplyValue(some, true); err != nil {
		t.Fatal(err)
	}
	expectValue(t, c, some)
	if err := c.ApplyValue(value.None(), true); err != nil {
		t.Fatal(err)
	}
	expectValue(t, c, value.None())
}

func TestEmptyClearsEnum(t *testing.T) {
	c := compileDoc(t, `{"type": ["boolean", "string"]}`)
	if err := c.ApplyValue(value.FromBool(true), true); err != nil {
		t.Fatal(err)
	}
	if err := c.ApplyValue(value.Empty, true); err != nil {
		t.Fatal(err)
	}
	if c.Node.(*Enum).Selection() != nil || c.Modified {
		t.Error("enum still selected")
	}
}

func TestArrayRebuilt(t *testing.T) {
	c := compileDoc(t, `{"type": "array", "items": {"type": "string"}}`)
	three := value.FromList(value.FromString("a"), value.FromString("b"), value.FromString("c"))
	if err := c.ApplyValue(three, true); err != nil {
		t.Fatal(err)
	}
	one := value.FromList(value.FromString("z"))
	if err := c.ApplyValue(one, true); err != nil {
		t.Fatal(err)
	}
	if n := len(c.Node.(*Array).Values); n != 1 {
		t.Errorf("%d elements, want 1", n)
	}
	expectValue(t, c, one)
}

func TestShapes(t *testing.T) {
	mapDoc := `{"type": "object", "additionalProperties": {"type": "integer"}}`
	tupleDoc := `{"type": "array", "items": [{"type": "boolean"}, {"type": "integer"}]}`
	tests := []struct {
		name string
		doc  string
		v    value.Value
	}{
		{"map", mapDoc, value.FromMap(value.MapOf(value.FromString("a"), value.FromI64(1)))},
		{"tagged struct", mapDoc, value.FromStruct("Point", value.Struct(value.F("x", value.FromI64(1))).Fields)},
		{"tuple", tupleDoc, value.FromTuple(value.FromBool(true), value.FromI64(2))},
		{"list", tupleDoc, value.FromList(value.FromBool(true), value.FromI64(2))},
		{"named tuple", tupleDoc, value.FromNamedTuple("P", value.FromBool(true), value.FromI64(2))},
		{
			"named tuple as object",
			`{"type": "object", "properties": {"V": {"type": "string"}}}`,
			value.FromNamedTuple("V", value.FromString("s")),
		},
		{
			"unit struct as object",
			`{"type": "object", "properties": {"U": {"type": "null"}}}`,
			value.FromUnitStruct("U"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := compileDoc(t, tt.doc)
			if err := c.ApplyValue(tt.v, true); err != nil {
				t.Fatal(err)
			}
			expectValue(t, c, tt.v)
		})
	}
}

func TestTupleLength(t *testing.T) {
	c := compileDoc(t, `{"type": "array", "items": [{"type": "boolean"}, {"type": "integer"}]}`)
	err := c.ApplyValue(value.FromList(value.FromBool(true)), true)
	if !errors.Is(err, ErrReconcile) {
		t.Errorf("got %v", err)
	}
}

func TestPositionalElementWithoutData(t *testing.T) {
	c := compileDoc(t, `{"type": "array", "items": [{"type": "boolean"}, {"type": "integer", "default": 4}]}`)
	if err := c.ApplyValue(value.FromTuple(value.FromBool(true), value.FromString("x")), true); err != nil {
		t.Fatal(err)
	}
	expectValue(t, c, value.FromTuple(value.FromBool(true), value.FromI64(4)))

	c = compileDoc(t, `{"type": "array", "items": [{"type": "boolean"}, {"type": "integer"}]}`)
	if err := c.ApplyValue(value.FromTuple(value.FromBool(true), value.FromString("x")), true); err != nil {
		t.Fatal(err)
	}
	expectValue(t, c, value.Empty)
}

func TestRecursiveSchema(t *testing.T) {
	c := compileDoc(t, `{
  "$ref": "#/definitions/Tree",
  "definitions": {
    "Tree": {
      "type": "object",
      "properties": {
        "name": {"type": "string"},
        "children": {"type": "array", "items": {"$ref": "#/definitions/Tree"}}
      }
    }
  }
}`)
	leaf := value.Struct(value.F("name", value.FromString("leaf")), value.F("children", value.FromList()))
	v := value.Struct(value.F("name", value.FromString("root")), value.F("children", value.FromList(leaf, leaf)))
	if err := c.ApplyValue(v, true); err != nil {
		t.Fatal(err)
	}
	expectValue(t, c, v)

	a := c.Node.(*Object)
	children, _ := a.Fields.Get("children")
	vals := children.Node.(*Array).Values
	if vals[0] == vals[1] {
		t.Error("elements share a container")
	}
}

func TestReferenceCycle(t *testing.T) {
	r, err := schema.Load([]byte(`{
  "$ref": "#/definitions/A",
  "definitions": {
    "A": {"type": "object", "properties": {"a": {"$ref": "#/definitions/A"}}}
  }
}`))
	if err != nil {
		t.Fatal(err)
	}
	_, err = Compile(r)
	var serr *SchemaError
	if !errors.As(err, &serr) || !errors.Is(err, ErrSchema) {
		t.Fatalf("got %v, want a schema error", err)
	}
	if serr.Path != "$.a" {
		t.Errorf("error path %q", serr.Path)
	}
}

func TestFalseSchema(t *testing.T) {
	r, err := schema.Load([]byte(`{"type": "object", "properties": {"a": false}}`))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Compile(r); !errors.Is(err, ErrSchema) {
		t.Errorf("got %v", err)
	}
}

func TestNoDefaults(t *testing.T) {
	c := compileDoc(t, configSchema, NoDefaults())
	zoom, _ := c.GetAt(MustParsePath("$.zoom"))
	if zoom.Node.(*Number).Bound {
		t.Error("default applied")
	}
}

func TestWalkAndList(t *testing.T) {
	c := compileDoc(t, configSchema)
	v := value.Struct(value.F("tags", value.FromList(value.FromString("a"), value.FromString("b"))))
	if err := c.ApplyValue(v, true); err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, e := range c.List(MustParsePath("$.tags[*]")) {
		got = append(got, e.Node.(*String).Value)
	}
	if diff := cmp.Diff([]string{"a", "b"}, got); diff != "" {
		t.Error(diff)
	}
	strs := 0
	for _, e := range c.List(MustParsePath("$..")) {
		if e.Kind() == StringKind {
			strs++
		}
	}
	if strs != 2 {
		t.Errorf("found %d strings", strs)
	}
	var paths []string
	c.Walk(func(p *Path, d *Container) bool {
		if d.Modified {
			paths = append(paths, p.String())
		}
		return true
	})
	if diff := cmp.Diff([]string{"$", "$.tags", "$.tags[0]", "$.tags[1]"}, paths); diff != "" {
		t.Error(diff)
	}
}
