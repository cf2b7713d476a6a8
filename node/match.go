package node

import (
	"github.com/signadot/configurator/value"
)

// IsMatching reports whether c structurally accepts v. It is how an enum
// picks a variant for an untagged value.
func (c *Container) IsMatching(v value.Value) bool {
	switch n := c.Node.(type) {
	case *Null:
		return v.IsNull() || v.Kind == value.UnitKind
	case *Bool:
		return v.Kind == value.BoolKind
	case *String:
		return v.Kind == value.StringKind
	case *Number:
		return v.Kind == value.NumberKind
	case *Literal:
		return literalMatches(n.Value, v)
	case *Any:
		return true
	case *Enum:
		return n.match(v) >= 0
	case *Array:
		return n.isMatching(v)
	case *Object:
		return n.isMatching(v)
	}
	return false
}

// match returns the index of the first variant accepting v, or -1.
func (e *Enum) match(v value.Value) int {
	for i, t := range e.Variants {
		if t.c.IsMatching(v) {
			return i
		}
	}
	return -1
}

func literalMatches(lit, v value.Value) bool {
	if lit.Equal(v) {
		return true
	}
	switch {
	case lit.Kind == value.NumberKind && v.Kind == value.NumberKind:
		return lit.Number.AsF64() == v.Number.AsF64()
	case lit.Kind == value.StringKind && v.Kind == value.UnitStructKind:
		return lit.Str == v.Name
	case lit.IsNull():
		return v.Kind == value.UnitKind
	}
	return false
}

func (a *Array) isMatching(v value.Value) bool {
	if !v.IsSeq() {
		return false
	}
	if a.IsPositional() && len(v.Items) != len(a.Items) {
		return false
	}
	for i, ev := range v.Items {
		if !a.template(i).c.IsMatching(ev) {
			return false
		}
	}
	return true
}

// isMatching accepts keyed values whose keys are all declared, unless
// there is a template, and which hold every required field. A named tuple
// or a unit struct is accepted when its name is a field.
func (o *Object) isMatching(v value.Value) bool {
	switch v.Kind {
	case value.StructKind, value.MapKind:
	case value.NamedTupleKind:
		f, ok := o.Fields.Get(v.Name)
		return ok && f.IsMatching(namedTuplePayload(v))
	case value.UnitStructKind:
		return o.Fields.Has(v.Name)
	default:
		return false
	}
	entries, err := objectEntries(v, nil)
	if err != nil {
		return false
	}
	for name := range entries.All() {
		if !o.Fields.Has(name) && o.Template == nil {
			return false
		}
	}
	for name, f := range o.Fields.All() {
		if f.Removable {
			continue
		}
		ev, ok := entries.Get(name)
		if !ok {
			if f.isRequired() {
				return false
			}
			continue
		}
		if !f.IsMatching(ev) {
			return false
		}
	}
	if o.Template != nil {
		for name, ev := range entries.All() {
			if f, ok := o.Fields.Get(name); ok && !f.Removable {
				continue
			}
			if !o.Template.c.IsMatching(ev) {
				return false
			}
		}
	}
	return true
}

// isRequired reports whether a field must be present in a value for its
// object to match: it has no default and cannot be null.
func (c *Container) isRequired() bool {
	if c.Default != nil {
		return false
	}
	return !c.acceptsNull()
}

func (c *Container) acceptsNull() bool {
	switch n := c.Node.(type) {
	case *Null, *Any:
		return true
	case *Literal:
		return n.Value.IsNull()
	case *Enum:
		for _, t := range n.Variants {
			if t.c.acceptsNull() {
				return true
			}
		}
	}
	return false
}
