package value

import (
	"github.com/signadot/configurator/num"
	"github.com/signadot/configurator/omap"
)

// Kind identifies the active variant of a Value. The declaration order is
// the sort order of values of different kinds.
type Kind uint8

const (
	EmptyKind Kind = iota
	UnitKind
	BoolKind
	CharKind
	NumberKind
	StringKind
	BytesKind
	OptionKind
	ListKind
	MapKind
	TupleKind
	UnitStructKind
	StructKind
	NamedTupleKind
)

var kindNames = [...]string{
	EmptyKind:      "empty",
	UnitKind:       "unit",
	BoolKind:       "bool",
	CharKind:       "char",
	NumberKind:     "number",
	StringKind:     "string",
	BytesKind:      "bytes",
	OptionKind:     "option",
	ListKind:       "list",
	MapKind:        "map",
	TupleKind:      "tuple",
	UnitStructKind: "unit struct",
	StructKind:     "struct",
	NamedTupleKind: "named tuple",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "<bad value kind>"
}

// Value is a generic configuration value. The zero Value is Empty, the
// absence of a value.
//
// Only the fields relevant to Kind are meaningful:
//
//	BoolKind        Bool
//	CharKind        Char
//	NumberKind      Number
//	StringKind      Str
//	BytesKind       Bytes
//	OptionKind      Elem (nil is None)
//	ListKind        Items
//	TupleKind       Items
//	MapKind         Map
//	UnitStructKind  Name
//	StructKind      Name (optional tag, "" when absent), Fields
//	NamedTupleKind  Name, Items
//
// Values are treated as immutable once built; functions in this package
// never modify their arguments.
type Value struct {
	Kind   Kind
	Bool   bool
	Char   rune
	Number num.Number
	Str    string
	Bytes  []byte
	Name   string
	Elem   *Value
	Items  []Value
	Map    *Map
	Fields *omap.Map[Value]
}

var Empty = Value{}

func Unit() Value                   { return Value{Kind: UnitKind} }
func FromBool(b bool) Value         { return Value{Kind: BoolKind, Bool: b} }
func FromChar(c rune) Value         { return Value{Kind: CharKind, Char: c} }
func FromNumber(n num.Number) Value { return Value{Kind: NumberKind, Number: n} }
func FromString(s string) Value     { return Value{Kind: StringKind, Str: s} }
func FromBytes(b []byte) Value      { return Value{Kind: BytesKind, Bytes: b} }
func FromI32(i int32) Value         { return FromNumber(num.FromI32(i)) }
func FromI64(i int64) Value         { return FromNumber(num.FromI64(i)) }
func FromF64(f float64) Value       { return FromNumber(num.FromF64(f)) }

// None is Option(None).
func None() Value { return Value{Kind: OptionKind} }

// Some is Option(Some(v)).
func Some(v Value) Value { return Value{Kind: OptionKind, Elem: &v} }

func FromList(items ...Value) Value  { return Value{Kind: ListKind, Items: items} }
func FromTuple(items ...Value) Value { return Value{Kind: TupleKind, Items: items} }

func FromMap(m *Map) Value {
	if m == nil {
		m = NewMap()
	}
	return Value{Kind: MapKind, Map: m}
}

func FromUnitStruct(name string) Value { return Value{Kind: UnitStructKind, Name: name} }

// FromStruct builds a struct value. An empty name means the struct carries
// no tag.
func FromStruct(name string, fields *omap.Map[Value]) Value {
	if fields == nil {
		fields = omap.New[Value]()
	}
	return Value{Kind: StructKind, Name: name, Fields: fields}
}

func FromNamedTuple(name string, items ...Value) Value {
	return Value{Kind: NamedTupleKind, Name: name, Items: items}
}

// Field is a struct field used with Struct.
type Field struct {
	Name  string
	Value Value
}

// Struct builds an untagged struct value from fields, in order.
func Struct(fields ...Field) Value {
	m := omap.New[Value]()
	for _, f := range fields {
		m.Set(f.Name, f.Value)
	}
	return FromStruct("", m)
}

func F(name string, v Value) Field { return Field{Name: name, Value: v} }

func (v Value) IsEmpty() bool { return v.Kind == EmptyKind }

// IsNull reports whether v is Option(None).
func (v Value) IsNull() bool { return v.Kind == OptionKind && v.Elem == nil }

// IsSeq reports whether v is one of the positional variants: list, tuple
// or named tuple.
func (v Value) IsSeq() bool {
	return v.Kind == ListKind || v.Kind == TupleKind || v.Kind == NamedTupleKind
}

// IsKeyed reports whether v is a struct or a map.
func (v Value) IsKeyed() bool {
	return v.Kind == StructKind || v.Kind == MapKind
}

// Lookup returns the entry keyed by name in a struct, or by the string
// name in a map.
func (v Value) Lookup(name string) (Value, bool) {
	switch v.Kind {
	case StructKind:
		return v.Fields.Get(name)
	case MapKind:
		return v.Map.Get(FromString(name))
	}
	return Empty, false
}

// Keys returns the keys of a struct, or the string keys of a map. The
// second return value is false if v is a map with a key which is not a
// string.
func (v Value) Keys() ([]string, bool) {
	switch v.Kind {
	case StructKind:
		return v.Fields.Keys(), true
	case MapKind:
		res := make([]string, 0, v.Map.Len())
		for k := range v.Map.All() {
			if k.Kind != StringKind {
				return nil, false
			}
			res = append(res, k.Str)
		}
		return res, true
	}
	return nil, false
}

// Clone returns a deep copy of v.
func (v Value) Clone() Value {
	switch v.Kind {
	case BytesKind:
		v.Bytes = append([]byte(nil), v.Bytes...)
	case OptionKind:
		if v.Elem != nil {
			e := v.Elem.Clone()
			v.Elem = &e
		}
	case ListKind, TupleKind, NamedTupleKind:
		v.Items = cloneItems(v.Items)
	case MapKind:
		v.Map = v.Map.Clone()
	case StructKind:
		v.Fields = v.Fields.Clone(Value.Clone)
	}
	return v
}

func cloneItems(items []Value) []Value {
	if items == nil {
		return nil
	}
	res := make([]Value, len(items))
	for i := range items {
		res[i] = items[i].Clone()
	}
	return res
}
