package node

import (
	"github.com/signadot/configurator/omap"
	"github.com/signadot/configurator/value"
)

// ToValue projects the modified data of c. It returns false when c is
// not modified or holds no value.
//
// Objects keep only the fields which project, so the result can be
// sparser than the schema. Elements of homogeneous arrays which do not
// project are skipped. A positional element without data is replaced by
// its default, and the array does not project when there is none. Objects and arrays reproduce the variant of the value they
// were applied with: a map, a tagged struct, a tuple or a named tuple.
func (c *Container) ToValue() (value.Value, bool) {
	return c.project(false)
}

// Effective projects every value held by c, modified or not, so that
// schema defaults are included.
func (c *Container) Effective() (value.Value, bool) {
	return c.project(true)
}

func (c *Container) project(all bool) (value.Value, bool) {
	if !all && !c.Modified {
		return value.Empty, false
	}
	switch n := c.Node.(type) {
	case *Null:
		return value.None(), true
	case *Bool:
		if !n.Bound {
			return value.Empty, false
		}
		return value.FromBool(n.Value), true
	case *String:
		if !n.Bound {
			return value.Empty, false
		}
		return value.FromString(n.Value), true
	case *Number:
		if !n.Bound {
			return value.Empty, false
		}
		return value.FromNumber(n.Value), true
	case *Any:
		if !n.Bound {
			return value.Empty, false
		}
		return n.Value.Clone(), true
	case *Literal:
		return n.Value.Clone(), true
	case *Object:
		return n.toValue(all), true
	case *Array:
		return n.toValue(all)
	case *Enum:
		inst := n.Selection()
		if inst == nil {
			return value.Empty, false
		}
		v, ok := inst.project(all)
		if !ok {
			return value.Empty, false
		}
		if n.wrapSome {
			v = value.Some(v)
		}
		return v, true
	}
	panic("unknown node type")
}

func (o *Object) toValue(all bool) value.Value {
	fields := omap.New[value.Value]()
	for name, f := range o.Fields.All() {
		if v, ok := f.project(all); ok {
			fields.Set(name, v)
		}
	}
	switch o.shape {
	case value.MapKind:
		m := value.NewMap()
		for name, v := range fields.All() {
			m.Set(value.FromString(name), v)
		}
		return value.FromMap(m)
	case value.NamedTupleKind, value.UnitStructKind:
		if fields.Len() == 1 {
			name, v := fields.At(0)
			switch {
			case o.shape == value.UnitStructKind && (v.Kind == value.UnitKind || v.IsNull()):
				return value.FromUnitStruct(name)
			case o.shape == value.NamedTupleKind && o.tupled && v.Kind == value.TupleKind:
				return value.FromNamedTuple(name, v.Items...)
			case o.shape == value.NamedTupleKind && !o.tupled:
				return value.FromNamedTuple(name, v)
			}
		}
	case value.StructKind:
		return value.FromStruct(o.tag, fields)
	}
	return value.FromStruct("", fields)
}

func (a *Array) toValue(all bool) (value.Value, bool) {
	if !a.Bound {
		return value.Empty, false
	}
	items := make([]value.Value, 0, len(a.Values))
	for _, e := range a.Values {
		v, ok := e.project(all)
		if !ok && a.IsPositional() {
			v, ok = e.fill()
			if !ok {
				return value.Empty, false
			}
		}
		if ok {
			items = append(items, v)
		}
	}
	switch a.shape {
	case value.TupleKind:
		return value.FromTuple(items...), true
	case value.NamedTupleKind:
		return value.FromNamedTuple(a.name, items...), true
	}
	return value.FromList(items...), true
}

// fill stands in for a positional element holding no data: its
// unmodified value or, failing that, its default.
func (c *Container) fill() (value.Value, bool) {
	if v, ok := c.project(true); ok {
		return v, true
	}
	if c.Default != nil {
		return c.Default.Clone(), true
	}
	return value.Empty, false
}
