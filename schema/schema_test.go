package schema

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/configurator/value"
)

const sample = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "Config",
  "type": "object",
  "properties": {
    "zoom": {"type": "integer", "format": "uint8", "default": 3},
    "name": {"type": ["string", "null"], "default": null},
    "mode": {"$ref": "#/definitions/Mode"},
    "pair": {"type": "array", "items": [{"type": "boolean"}, {"type": "number"}]},
    "extra": {"type": "object", "additionalProperties": {"type": "string"}}
  },
  "required": ["mode"],
  "definitions": {
    "Mode": {"enum": ["Light", "Dark"]}
  },
  "X_CONFIGURATOR_SOURCE_PATHS": "/etc/app/a.json;/etc/app/b.json",
  "X_CONFIGURATOR_SOURCE_HOME_PATH": ".config/app/config.json"
}`

func TestLoad(t *testing.T) {
	r, err := Load([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"zoom", "name", "mode", "pair", "extra"}, r.Schema.Properties.Keys()); diff != "" {
		t.Errorf("property order (-want +got):\n%s", diff)
	}
	zoom, _ := r.Schema.Properties.Get("zoom")
	if zoom.Format != "uint8" || zoom.Default == nil || !zoom.Default.Equal(value.FromI64(3)) {
		t.Errorf("zoom = %+v", zoom)
	}
	name, _ := r.Schema.Properties.Get("name")
	if diff := cmp.Diff([]InstanceType{StringType, NullType}, name.Types); diff != "" {
		t.Error(diff)
	}
	if name.Default == nil || !name.Default.IsNull() {
		t.Errorf("name default = %v", name.Default)
	}
	pair, _ := r.Schema.Properties.Get("pair")
	if len(pair.TupleItems) != 2 || pair.Items != nil {
		t.Errorf("pair = %+v", pair)
	}
	extra, _ := r.Schema.Properties.Get("extra")
	if extra.AdditionalProperties == nil || extra.Properties != nil {
		t.Errorf("extra = %+v", extra)
	}
	if diff := cmp.Diff([]string{"/etc/app/a.json", "/etc/app/b.json"}, r.SourcePaths); diff != "" {
		t.Error(diff)
	}
	if r.SourceHomePath != ".config/app/config.json" || r.WritePath != "" {
		t.Errorf("paths: %q %q", r.SourceHomePath, r.WritePath)
	}
	_, mode, err := r.Resolve("#/definitions/Mode")
	if err != nil {
		t.Fatal(err)
	}
	if len(mode.Enum) != 2 {
		t.Errorf("mode = %+v", mode)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not an object", `[1]`},
		{"bad type", `{"type": "thing"}`},
		{"bad properties", `{"properties": 3}`},
		{"bad subschema", `{"allOf": [3]}`},
		{"bad required", `{"required": [1]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.doc))
			if !errors.Is(err, ErrSchema) {
				t.Errorf("expected ErrSchema, got %v", err)
			}
		})
	}
}

func TestBooleanSchemas(t *testing.T) {
	r, err := Load([]byte(`{"properties": {"a": true, "b": false}, "additionalProperties": false}`))
	if err != nil {
		t.Fatal(err)
	}
	a, _ := r.Schema.Properties.Get("a")
	b, _ := r.Schema.Properties.Get("b")
	if a.Never || !b.Never {
		t.Errorf("a.Never=%v b.Never=%v", a.Never, b.Never)
	}
	if !r.Schema.NoAdditionalProperties || r.Schema.AdditionalProperties != nil {
		t.Error("additionalProperties false not recorded")
	}
}

func TestRefEscaping(t *testing.T) {
	for _, name := range []string{"plain", "a/b", "t~x", "~/"} {
		if got := UnescapeRef(EscapeRef(name)); got != name {
			t.Errorf("round trip of %q gave %q", name, got)
		}
		got, err := RefName(DefinitionRef(name))
		if err != nil || got != name {
			t.Errorf("RefName(DefinitionRef(%q)) = %q, %v", name, got, err)
		}
	}
	if got, _ := RefName("#/$defs/x"); got != "x" {
		t.Errorf("got %q", got)
	}
	if _, err := RefName("other.json#/x"); !errors.Is(err, ErrSchema) {
		t.Errorf("expected ErrSchema, got %v", err)
	}
}

func TestResolveUnknown(t *testing.T) {
	r, err := Load([]byte(`{"$ref": "#/definitions/Nope"}`))
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := r.Resolve(r.Schema.Ref); !errors.Is(err, ErrUnknownRef) {
		t.Errorf("expected ErrUnknownRef, got %v", err)
	}
	if err := CheckSatisfiable(r); !errors.Is(err, ErrUnknownRef) {
		t.Errorf("expected ErrUnknownRef, got %v", err)
	}
}

func TestCheckSatisfiable(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		unsat bool
	}{
		{
			name: "plain",
			doc:  sample,
		},
		{
			name: "optional recursion",
			doc: `{"$ref": "#/definitions/Node", "definitions": {"Node": {
    "type": "object",
    "properties": {"next": {"anyOf": [{"$ref": "#/definitions/Node"}, {"type": "null"}]}},
    "required": ["next"]}}}`,
		},
		{
			name: "recursion through array",
			doc: `{"$ref": "#/definitions/Tree", "definitions": {"Tree": {
    "type": "object",
    "properties": {"children": {"type": "array", "items": {"$ref": "#/definitions/Tree"}}},
    "required": ["children"]}}}`,
		},
		{
			name: "required recursion",
			doc: `{"$ref": "#/definitions/Node", "definitions": {"Node": {
    "type": "object",
    "properties": {"next": {"$ref": "#/definitions/Node"}},
    "required": ["next"]}}}`,
			unsat: true,
		},
		{
			name: "mutual recursion",
			doc: `{"$ref": "#/definitions/A", "definitions": {
    "A": {"type": "object", "properties": {"b": {"$ref": "#/definitions/B"}}, "required": ["b"]},
    "B": {"type": "object", "properties": {"a": {"$ref": "#/definitions/A"}}, "required": ["a"]}}}`,
			unsat: true,
		},
		{
			name:  "contradiction",
			doc:   `{"allOf": [{"type": "string"}, {"type": "boolean"}]}`,
			unsat: true,
		},
		{
			name:  "false",
			doc:   `{"properties": {"x": false}, "required": ["x"]}`,
			unsat: true,
		},
		{
			name: "optional false",
			doc:  `{"properties": {"x": false}}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Load([]byte(tt.doc))
			if err != nil {
				t.Fatal(err)
			}
			err = CheckSatisfiable(r)
			if tt.unsat {
				if !errors.Is(err, ErrUnsatisfiable) {
					t.Errorf("expected ErrUnsatisfiable, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestRegistry(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("com.example.Panel.json", `{"type": "object"}`)
	write("com.example.Broken.json", `{"type": 7}`)
	write("notes.txt", `ignored`)

	reg := NewRegistry()
	err := reg.LoadDir(dir)
	if !errors.Is(err, ErrSchema) {
		t.Errorf("expected the broken schema to be reported, got %v", err)
	}
	if diff := cmp.Diff([]string{"com.example.Panel"}, reg.IDs()); diff != "" {
		t.Error(diff)
	}
	if reg.Lookup("com.example.Panel") == nil {
		t.Error("lookup failed")
	}
	if err := reg.Register("com.example.Panel", &Root{}); err == nil {
		t.Error("expected duplicate registration to fail")
	}
}
