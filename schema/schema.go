package schema

import (
	"fmt"

	"github.com/signadot/configurator/omap"
	"github.com/signadot/configurator/value"
)

type InstanceType int

const (
	NullType InstanceType = iota
	BooleanType
	ObjectType
	ArrayType
	NumberType
	StringType
	IntegerType
)

var instanceTypeNames = map[InstanceType]string{
	NullType:    "null",
	BooleanType: "boolean",
	ObjectType:  "object",
	ArrayType:   "array",
	NumberType:  "number",
	StringType:  "string",
	IntegerType: "integer",
}

func (t InstanceType) String() string {
	if s, ok := instanceTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("<bad instance type %d>", int(t))
}

func ParseInstanceType(s string) (InstanceType, error) {
	for t, name := range instanceTypeNames {
		if name == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown instance type %q", ErrSchema, s)
}

// Schema is one node of a schema document. The zero Schema accepts
// anything, like the boolean schema true.
type Schema struct {
	// Never is set for the boolean schema false.
	Never bool

	Types       []InstanceType
	Format      string
	Title       string
	Description string
	Default     *value.Value

	Properties *omap.Map[*Schema]
	Required   []string
	// AdditionalProperties is the schema of keys outside Properties.
	// NoAdditionalProperties is set when it was the boolean false.
	AdditionalProperties   *Schema
	NoAdditionalProperties bool

	Items      *Schema
	TupleItems []*Schema

	Enum  []value.Value
	Const *value.Value

	AllOf []*Schema
	OneOf []*Schema
	AnyOf []*Schema

	Ref string
}

// HasObject reports whether s constrains objects.
func (s *Schema) HasObject() bool {
	return s.Properties != nil || s.AdditionalProperties != nil || s.NoAdditionalProperties
}

// HasArray reports whether s constrains array items.
func (s *Schema) HasArray() bool {
	return s.Items != nil || s.TupleItems != nil
}

func (s *Schema) IsRequired(name string) bool {
	for _, r := range s.Required {
		if r == name {
			return true
		}
	}
	return false
}

// Root is a schema document: the top level schema together with its
// definitions and extension keys.
type Root struct {
	Schema      *Schema
	Definitions *omap.Map[*Schema]

	SourcePaths    []string
	SourceHomePath string
	WritePath      string
	Format         string
}
