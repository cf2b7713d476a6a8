package value

import (
	"github.com/signadot/configurator/debug"
)

// Merge returns the result of overlaying other on top of v. Neither
// argument is modified.
//
// Empty is neutral on both sides. Options holding data on both sides
// merge their contents, otherwise the side holding data wins. Maps and
// structs merge key by key: keys of v keep their position and new keys
// of other are appended; a struct tag of other wins when present. Lists
// and tuples merge position by position up to the longer length, as do
// named tuples with the same name. Anything else is replaced by other.
func (v Value) Merge(other Value) Value {
	res := merge(v, other)
	if debug.Merge() {
		debug.Logf("merge %s <- %s = %s\n", v, other, res)
	}
	return res
}

func merge(a, b Value) Value {
	switch {
	case b.Kind == EmptyKind:
		return a.Clone()
	case a.Kind == EmptyKind:
		return b.Clone()
	case a.Kind != b.Kind:
		return b.Clone()
	}
	switch a.Kind {
	case OptionKind:
		switch {
		case b.Elem == nil:
			return a.Clone()
		case a.Elem == nil:
			return b.Clone()
		}
		return Some(merge(*a.Elem, *b.Elem))
	case MapKind:
		res := a.Map.Clone()
		for k, bv := range b.Map.All() {
			if av, ok := res.Get(k); ok {
				res.Set(k, merge(av, bv))
				continue
			}
			res.Set(k.Clone(), bv.Clone())
		}
		return FromMap(res)
	case StructKind:
		res := a.Fields.Clone(Value.Clone)
		for k, bv := range b.Fields.All() {
			if av, ok := res.Get(k); ok {
				res.Set(k, merge(av, bv))
				continue
			}
			res.Set(k, bv.Clone())
		}
		name := b.Name
		if name == "" {
			name = a.Name
		}
		return FromStruct(name, res)
	case ListKind, TupleKind:
		return Value{Kind: a.Kind, Items: mergeItems(a.Items, b.Items)}
	case NamedTupleKind:
		if a.Name != b.Name {
			return b.Clone()
		}
		return FromNamedTuple(a.Name, mergeItems(a.Items, b.Items)...)
	}
	return b.Clone()
}

func mergeItems(a, b []Value) []Value {
	n := max(len(a), len(b))
	res := make([]Value, n)
	for i := range n {
		switch {
		case i < len(a) && i < len(b):
			res[i] = merge(a[i], b[i])
		case i < len(a):
			res[i] = a[i].Clone()
		default:
			res[i] = b[i].Clone()
		}
	}
	return res
}
