package schema

import (
	"fmt"
	"os"
	"strings"

	"github.com/signadot/configurator/codec"
	"github.com/signadot/configurator/debug"
	"github.com/signadot/configurator/omap"
	"github.com/signadot/configurator/value"
)

const (
	SourcePathsKey    = "X_CONFIGURATOR_SOURCE_PATHS"
	SourceHomePathKey = "X_CONFIGURATOR_SOURCE_HOME_PATH"
	WritePathKey      = "X_CONFIGURATOR_WRITE_PATH"
	FormatKey         = "X_CONFIGURATOR_FORMAT"
)

// Load parses a JSON (or YAML) schema document.
func Load(d []byte) (*Root, error) {
	v, err := codec.Decode(d)
	if err != nil {
		return nil, err
	}
	return FromValue(v)
}

func LoadFile(path string) (*Root, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	r, err := Load(d)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// FromValue builds a Root from an already decoded schema document.
func FromValue(v value.Value) (*Root, error) {
	if v.Kind != value.StructKind {
		return nil, fmt.Errorf("%w: schema document is a %s, not an object", ErrSchema, v.Kind)
	}
	s, err := parse(v, "#")
	if err != nil {
		return nil, err
	}
	r := &Root{Schema: s, Definitions: omap.New[*Schema]()}
	for _, key := range []string{"definitions", "$defs"} {
		defs, ok := v.Fields.Get(key)
		if !ok {
			continue
		}
		if defs.Kind != value.StructKind {
			return nil, fmt.Errorf("%w: #/%s is not an object", ErrSchema, key)
		}
		for name, dv := range defs.Fields.All() {
			ds, err := parse(dv, "#/"+key+"/"+EscapeRef(name))
			if err != nil {
				return nil, err
			}
			r.Definitions.Set(name, ds)
		}
	}
	if paths, ok := stringField(v, SourcePathsKey); ok {
		for _, p := range strings.Split(paths, ";") {
			if p != "" {
				r.SourcePaths = append(r.SourcePaths, p)
			}
		}
	}
	r.SourceHomePath, _ = stringField(v, SourceHomePathKey)
	r.WritePath, _ = stringField(v, WritePathKey)
	r.Format, _ = stringField(v, FormatKey)
	return r, nil
}

func stringField(v value.Value, key string) (string, bool) {
	f, ok := v.Fields.Get(key)
	if !ok || f.Kind != value.StringKind {
		return "", false
	}
	return f.Str, true
}

func parse(v value.Value, at string) (*Schema, error) {
	switch v.Kind {
	case value.BoolKind:
		return &Schema{Never: !v.Bool}, nil
	case value.StructKind:
	default:
		return nil, fmt.Errorf("%w: %s: expected an object or a boolean, got %s", ErrSchema, at, v.Kind)
	}
	s := &Schema{}
	for key, f := range v.Fields.All() {
		var err error
		switch key {
		case "type":
			s.Types, err = parseTypes(f, at)
		case "format":
			s.Format, err = str(f, at, key)
		case "title":
			s.Title, err = str(f, at, key)
		case "description":
			s.Description, err = str(f, at, key)
		case "default":
			d := f.Clone()
			s.Default = &d
		case "properties":
			if f.Kind != value.StructKind {
				return nil, fmt.Errorf("%w: %s/properties is not an object", ErrSchema, at)
			}
			s.Properties = omap.New[*Schema]()
			for name, pv := range f.Fields.All() {
				ps, err := parse(pv, at+"/properties/"+EscapeRef(name))
				if err != nil {
					return nil, err
				}
				s.Properties.Set(name, ps)
			}
		case "required":
			s.Required, err = strs(f, at, key)
		case "additionalProperties":
			if f.Kind == value.BoolKind && !f.Bool {
				s.NoAdditionalProperties = true
				continue
			}
			s.AdditionalProperties, err = parse(f, at+"/additionalProperties")
		case "items":
			if f.Kind == value.ListKind {
				s.TupleItems, err = parseList(f, at+"/items")
			} else {
				s.Items, err = parse(f, at+"/items")
			}
		case "prefixItems":
			s.TupleItems, err = parseList(f, at+"/prefixItems")
		case "enum":
			if f.Kind != value.ListKind {
				return nil, fmt.Errorf("%w: %s/enum is not an array", ErrSchema, at)
			}
			s.Enum = f.Clone().Items
		case "const":
			c := f.Clone()
			s.Const = &c
		case "allOf":
			s.AllOf, err = parseList(f, at+"/allOf")
		case "oneOf":
			s.OneOf, err = parseList(f, at+"/oneOf")
		case "anyOf":
			s.AnyOf, err = parseList(f, at+"/anyOf")
		case "$ref":
			s.Ref, err = str(f, at, key)
		default:
			if debug.Schema() {
				debug.Logf("schema: ignoring %s/%s\n", at, key)
			}
		}
		if err != nil {
			return nil, err
		}
	}
	return s, nil
}

func parseTypes(v value.Value, at string) ([]InstanceType, error) {
	names := []string{}
	switch v.Kind {
	case value.StringKind:
		names = append(names, v.Str)
	case value.ListKind:
		ns, err := strs(v, at, "type")
		if err != nil {
			return nil, err
		}
		names = ns
	default:
		return nil, fmt.Errorf("%w: %s/type must be a string or an array", ErrSchema, at)
	}
	res := make([]InstanceType, 0, len(names))
	for _, n := range names {
		t, err := ParseInstanceType(n)
		if err != nil {
			return nil, fmt.Errorf("%s/type: %w", at, err)
		}
		res = append(res, t)
	}
	return res, nil
}

func parseList(v value.Value, at string) ([]*Schema, error) {
	if v.Kind != value.ListKind {
		return nil, fmt.Errorf("%w: %s is not an array", ErrSchema, at)
	}
	res := make([]*Schema, len(v.Items))
	for i, e := range v.Items {
		s, err := parse(e, fmt.Sprintf("%s/%d", at, i))
		if err != nil {
			return nil, err
		}
		res[i] = s
	}
	return res, nil
}

func str(v value.Value, at, key string) (string, error) {
	if v.Kind != value.StringKind {
		return "", fmt.Errorf("%w: %s/%s is not a string", ErrSchema, at, key)
	}
	return v.Str, nil
}

func strs(v value.Value, at, key string) ([]string, error) {
	if v.Kind != value.ListKind {
		return nil, fmt.Errorf("%w: %s/%s is not an array", ErrSchema, at, key)
	}
	res := make([]string, len(v.Items))
	for i, e := range v.Items {
		if e.Kind != value.StringKind {
			return nil, fmt.Errorf("%w: %s/%s/%d is not a string", ErrSchema, at, key, i)
		}
		res[i] = e.Str
	}
	return res, nil
}
