package node

import (
	"github.com/signadot/configurator/debug"
	"github.com/signadot/configurator/omap"
	"github.com/signadot/configurator/value"
)

// ApplyValue reconciles c with v. Data applied from v is marked with
// modified; applying Empty never marks anything modified and seeds
// objects with their field defaults.
//
// Scalars ignore values of another kind. An enum selects its first
// variant accepting v and fails with a *ReconcileError when there is
// none. Arrays are rebuilt from their templates on every call. Objects
// drop the entries instantiated from their template by a previous call,
// apply each declared field from v or, when v lacks it, from the field
// default, and instantiate the template for the other keys of v.
//
// On error the tree is left updated up to the failing subtree.
func (c *Container) ApplyValue(v value.Value, modified bool) error {
	return c.apply(v, modified, RootPath())
}

func (c *Container) apply(v value.Value, modified bool, at *Path) error {
	if debug.Apply() {
		debug.Logf("apply %s at %s (modified=%v)\n", v, at, modified)
	}
	if v.IsEmpty() {
		modified = false
	}
	c.Modified = modified

	switch n := c.Node.(type) {
	case *Null, *Literal:
	case *Bool:
		if v.Kind == value.BoolKind {
			n.Value, n.Bound = v.Bool, true
		}
	case *String:
		if v.Kind == value.StringKind {
			n.Value, n.Bound = v.Str, true
		}
	case *Number:
		if v.Kind == value.NumberKind {
			n.Value, n.Bound = v.Number, true
			n.Display = v.Number.Display()
		}
	case *Any:
		if !v.IsEmpty() {
			n.Value, n.Bound = v.Clone(), true
		}
	case *Object:
		return c.applyObject(n, v, modified, at)
	case *Enum:
		return c.applyEnum(n, v, modified, at)
	case *Array:
		return n.apply(v, modified, at)
	default:
		panic("unknown node type")
	}
	return nil
}

func (c *Container) applyObject(o *Object, v value.Value, modified bool, at *Path) error {
	o.Fields.DeleteFunc(func(_ string, f *Container) bool { return f.Removable })

	entries, err := objectEntries(v, at)
	if err != nil {
		return err
	}
	keyed := entries != nil
	if keyed {
		o.shape, o.tag, o.tupled = v.Kind, v.Name, v.Kind == value.NamedTupleKind && len(v.Items) != 1
	}

	anyModified := false
	for name, f := range o.Fields.All() {
		fv, ok := entries.Get(name)
		var err error
		switch {
		case ok:
			err = f.apply(fv, modified, at.WithField(name))
		case keyed || v.IsEmpty():
			err = f.reset(at.WithField(name))
		}
		if err != nil {
			return err
		}
		anyModified = anyModified || f.Modified
	}

	for name, ev := range entries.All() {
		if o.Fields.Has(name) {
			continue
		}
		if o.Template == nil {
			if debug.Apply() {
				debug.Logf("apply: dropping undeclared key %q at %s\n", name, at)
			}
			continue
		}
		inst := o.Template.Instantiate()
		inst.Removable = true
		if err := inst.apply(ev, modified, at.WithField(name)); err != nil {
			return err
		}
		o.Fields.Set(name, inst)
		anyModified = anyModified || inst.Modified
	}

	c.Modified = (modified && keyed) || anyModified
	return nil
}

// reset clears c and applies its default unmodified.
func (c *Container) reset(at *Path) error {
	c.RemoveValueRec()
	if c.Default != nil {
		return c.apply(*c.Default, false, at)
	}
	return c.apply(value.Empty, false, at)
}

// objectEntries returns the string keyed entries of a value applied to an
// object, or nil if v is not keyed. A named tuple is the single entry
// mapping its name to its payload, a unit struct the entry mapping its
// name to unit.
func objectEntries(v value.Value, at *Path) (*omap.Map[value.Value], error) {
	switch v.Kind {
	case value.StructKind:
		if v.Fields == nil {
			return omap.New[value.Value](), nil
		}
		return v.Fields, nil
	case value.MapKind:
		keys, ok := v.Keys()
		if !ok {
			return nil, reconcileErrorf(at, v, "object keys must be strings")
		}
		res := omap.New[value.Value]()
		for _, k := range keys {
			e, _ := v.Map.Get(value.FromString(k))
			res.Set(k, e)
		}
		return res, nil
	case value.NamedTupleKind:
		res := omap.New[value.Value]()
		res.Set(v.Name, namedTuplePayload(v))
		return res, nil
	case value.UnitStructKind:
		res := omap.New[value.Value]()
		res.Set(v.Name, value.Unit())
		return res, nil
	}
	return nil, nil
}

func namedTuplePayload(v value.Value) value.Value {
	if len(v.Items) == 1 {
		return v.Items[0]
	}
	return value.FromTuple(v.Items...)
}

func (c *Container) applyEnum(e *Enum, v value.Value, modified bool, at *Path) error {
	if v.IsEmpty() {
		e.clear()
		c.Modified = false
		return nil
	}
	i := e.match(v)
	wrap := false
	if i < 0 && v.Kind == value.OptionKind && v.Elem != nil {
		if i = e.match(*v.Elem); i >= 0 {
			v, wrap = *v.Elem, true
		}
	}
	if i < 0 {
		return reconcileErrorf(at, v, "no variant of the enum accepts the value")
	}
	if debug.Apply() {
		debug.Logf("apply: variant %d selected at %s\n", i, at)
	}
	inst := e.selectVariant(i)
	e.wrapSome = wrap
	if err := inst.apply(v, modified, at); err != nil {
		return err
	}
	c.Modified = inst.Modified
	return nil
}

func (a *Array) apply(v value.Value, modified bool, at *Path) error {
	if !v.IsSeq() {
		return nil
	}
	if a.IsPositional() && len(v.Items) != len(a.Items) {
		return reconcileErrorf(at, v, "expected %d elements, got %d", len(a.Items), len(v.Items))
	}
	values := make([]*Container, len(v.Items))
	for i, ev := range v.Items {
		inst := a.template(i).Instantiate()
		if err := inst.apply(ev, modified, at.WithIndex(i)); err != nil {
			return err
		}
		values[i] = inst
	}
	a.Values, a.Bound = values, true
	a.shape, a.name = v.Kind, v.Name
	return nil
}
