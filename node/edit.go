package node

import (
	"fmt"

	"github.com/signadot/configurator/debug"
	"github.com/signadot/configurator/num"
	"github.com/signadot/configurator/value"
)

// The edit operations below change one container of a tree in place and
// mark it, with every container on the way from the root, modified.

// SetModified marks the containers from c down to p modified, enum
// containers and their selections included.
func (c *Container) SetModified(p *Path) error {
	cur := c
	mark := func(d *Container) *Container {
		d.Modified = true
		for {
			e, ok := d.Node.(*Enum)
			if !ok || e.Selection() == nil {
				return d
			}
			d = e.Instance
			d.Modified = true
		}
	}
	cur = mark(cur)
	for _, step := range p.steps() {
		switch n := cur.Node.(type) {
		case *Object:
			if step.Field == nil {
				return fmt.Errorf("%w: %s: expected a field", ErrPath, p)
			}
			f, ok := n.Fields.Get(*step.Field)
			if !ok {
				return fmt.Errorf("%w: %s: no field %q", ErrPath, p, *step.Field)
			}
			cur = mark(f)
		case *Array:
			if step.Index == nil || *step.Index < 0 || *step.Index >= len(n.Values) {
				return fmt.Errorf("%w: %s: bad index", ErrPath, p)
			}
			cur = mark(n.Values[*step.Index])
		default:
			return fmt.Errorf("%w: %s: %s has no children", ErrPath, p, cur.Kind())
		}
	}
	return nil
}

func (c *Container) editTarget(p *Path, k Kind) (*Container, error) {
	if debug.Edit() {
		debug.Logf("edit %s (%s)\n", p, k)
	}
	t, err := c.GetAt(p)
	if err != nil {
		return nil, err
	}
	if t.Kind() != k {
		return nil, fmt.Errorf("%w: %s is a %s, not a %s", ErrEdit, p, t.Kind(), k)
	}
	return t, nil
}

func (c *Container) SetBool(p *Path, b bool) error {
	t, err := c.editTarget(p, BoolKind)
	if err != nil {
		return err
	}
	n := t.Node.(*Bool)
	n.Value, n.Bound = b, true
	return c.SetModified(p)
}

func (c *Container) SetString(p *Path, s string) error {
	t, err := c.editTarget(p, StringKind)
	if err != nil {
		return err
	}
	n := t.Node.(*String)
	n.Value, n.Bound = s, true
	return c.SetModified(p)
}

// SetNumber parses s as a number of the kind declared for the node at p.
// The node displays s even when it does not parse, in which case its value
// is unchanged and an error is returned.
func (c *Container) SetNumber(p *Path, s string) error {
	t, err := c.editTarget(p, NumberKind)
	if err != nil {
		return err
	}
	n := t.Node.(*Number)
	n.Display = s
	v, err := num.Parse(n.NumKind, s)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrEdit, p, err)
	}
	n.Value, n.Bound = v, true
	return c.SetModified(p)
}

// SelectVariant selects variant i of the enum at p. A newly selected
// variant is seeded with its defaults and marked modified.
func (c *Container) SelectVariant(p *Path, i int) error {
	t, err := c.enumAt(p)
	if err != nil {
		return err
	}
	e := t.Node.(*Enum)
	if i < 0 || i >= len(e.Variants) {
		return fmt.Errorf("%w: %s: no variant %d", ErrEdit, p, i)
	}
	if i != e.Selected || e.Instance == nil {
		inst := e.selectVariant(i)
		e.wrapSome = false
		if err := inst.reset(p); err != nil {
			return err
		}
	}
	e.Instance.Modified = true
	return c.SetModified(p)
}

// at is GetAt without resolving an enum at the end of p.
func (c *Container) at(p *Path) (*Container, error) {
	parent, last, ok := p.Split()
	if !ok {
		return c, nil
	}
	pc, err := c.GetAt(parent)
	if err != nil {
		return nil, err
	}
	return pc.child(last, p)
}

// enumAt returns the innermost enum at p, where GetAt would return its
// selection.
func (c *Container) enumAt(p *Path) (*Container, error) {
	t, err := c.at(p)
	if err != nil {
		return nil, err
	}
	if t.Kind() != EnumKind {
		return nil, fmt.Errorf("%w: %s is a %s, not an enum", ErrEdit, p, t.Kind())
	}
	for {
		e := t.Node.(*Enum)
		inst := e.Selection()
		if inst == nil || inst.Kind() != EnumKind {
			return t, nil
		}
		t = inst
	}
}

func (c *Container) child(step, p *Path) (*Container, error) {
	switch n := c.Node.(type) {
	case *Object:
		if step.Field != nil {
			if f, ok := n.Fields.Get(*step.Field); ok {
				return f, nil
			}
		}
	case *Array:
		if step.Index != nil && *step.Index >= 0 && *step.Index < len(n.Values) {
			return n.Values[*step.Index], nil
		}
	}
	return nil, fmt.Errorf("%w: %s not found", ErrPath, p)
}

// ApplyDefault resets the container at p to its schema default, which
// is not marked modified; the containers above it are.
func (c *Container) ApplyDefault(p *Path) error {
	t, err := c.at(p)
	if err != nil {
		return err
	}
	if t.Default == nil {
		return fmt.Errorf("%w: %s has no default", ErrEdit, p)
	}
	t.RemoveValueRec()
	if err := t.apply(*t.Default, false, p); err != nil {
		return err
	}
	if parent, _, ok := p.Split(); ok {
		return c.SetModified(parent)
	}
	return nil
}

// Remove deletes the map entry or array element at p. Declared fields of
// an object cannot be removed, only entries instantiated from its
// template. The remaining entries or elements are marked modified so that
// the container is written in full.
func (c *Container) Remove(p *Path) error {
	parent, last, ok := p.Split()
	if !ok {
		return fmt.Errorf("%w: cannot remove the root", ErrEdit)
	}
	pc, err := c.GetAt(parent)
	if err != nil {
		return err
	}
	switch n := pc.Node.(type) {
	case *Object:
		if last.Field == nil {
			return fmt.Errorf("%w: %s not found", ErrPath, p)
		}
		f, ok := n.Fields.Get(*last.Field)
		if !ok {
			return fmt.Errorf("%w: %s not found", ErrPath, p)
		}
		if !f.Removable {
			return fmt.Errorf("%w: %s is a declared field", ErrEdit, p)
		}
		n.Fields.Delete(*last.Field)
		for _, f := range n.Fields.All() {
			if f.Removable {
				f.Modified = true
			}
		}
	case *Array:
		if last.Index == nil || *last.Index < 0 || *last.Index >= len(n.Values) {
			return fmt.Errorf("%w: %s not found", ErrPath, p)
		}
		i := *last.Index
		n.Values = append(n.Values[:i], n.Values[i+1:]...)
		for _, e := range n.Values {
			e.Modified = true
		}
	default:
		return fmt.Errorf("%w: %s is a %s", ErrEdit, parent, pc.Kind())
	}
	return c.SetModified(parent)
}

// AddEntry instantiates the template of the map-like object at p under
// key. The new entry holds the template default, if any.
func (c *Container) AddEntry(p *Path, key string) error {
	t, err := c.editTarget(p, ObjectKind)
	if err != nil {
		return err
	}
	o := t.Node.(*Object)
	if o.Template == nil {
		return fmt.Errorf("%w: %s has no template for new entries", ErrEdit, p)
	}
	if o.Fields.Has(key) {
		return fmt.Errorf("%w: %s already has %q", ErrEdit, p, key)
	}
	inst := o.Template.Instantiate()
	inst.Removable = true
	if err := inst.reset(p.WithField(key)); err != nil {
		return err
	}
	o.Fields.Set(key, inst)
	for _, f := range o.Fields.All() {
		if f.Removable {
			f.Modified = true
		}
	}
	return c.SetModified(p)
}

// AddElement appends a new element to the homogeneous array at p.
func (c *Container) AddElement(p *Path) error {
	t, err := c.editTarget(p, ArrayKind)
	if err != nil {
		return err
	}
	a := t.Node.(*Array)
	if a.IsPositional() {
		return fmt.Errorf("%w: %s has a fixed number of elements", ErrEdit, p)
	}
	inst := a.Item.Instantiate()
	if err := inst.reset(p.WithIndex(len(a.Values))); err != nil {
		return err
	}
	for _, e := range a.Values {
		e.Modified = true
	}
	inst.Modified = true
	a.Values = append(a.Values, inst)
	a.Bound = true
	return c.SetModified(p)
}

// RenameKey renames a map entry of the object at p, keeping its
// position. Declared fields cannot be renamed.
func (c *Container) RenameKey(p *Path, from, to string) error {
	t, err := c.editTarget(p, ObjectKind)
	if err != nil {
		return err
	}
	o := t.Node.(*Object)
	f, ok := o.Fields.Get(from)
	if !ok {
		return fmt.Errorf("%w: %s has no %q", ErrEdit, p, from)
	}
	if !f.Removable {
		return fmt.Errorf("%w: %s.%s is a declared field", ErrEdit, p, from)
	}
	if o.Fields.Has(to) {
		return fmt.Errorf("%w: %s already has %q", ErrEdit, p, to)
	}
	o.Fields.Rename(from, to)
	return c.SetModified(p)
}

// SetValue applies v at p as an explicit edit.
func (c *Container) SetValue(p *Path, v value.Value) error {
	t, err := c.at(p)
	if err != nil {
		return err
	}
	if err := t.apply(v, true, p); err != nil {
		return err
	}
	return c.SetModified(p)
}
