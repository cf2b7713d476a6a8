package node

import "fmt"

// Walk calls f for c and every container below it, depth first, with
// its path. Enum selections are visited at the path of their enum.
// Returning false from f skips the children of a container.
func (c *Container) Walk(f func(p *Path, c *Container) bool) {
	c.walk(RootPath(), f)
}

func (c *Container) walk(p *Path, f func(*Path, *Container) bool) {
	if !f(p, c) {
		return
	}
	switch n := c.Node.(type) {
	case *Object:
		for name, fc := range n.Fields.All() {
			fc.walk(p.WithField(name), f)
		}
	case *Array:
		for i, e := range n.Values {
			e.walk(p.WithIndex(i), f)
		}
	case *Enum:
		if inst := n.Selection(); inst != nil {
			inst.walk(p, f)
		}
	}
}

// GetAt returns the container at p. Enums along the way, including at the
// end of p, are resolved to their selected variant.
func (c *Container) GetAt(p *Path) (*Container, error) {
	cur := c
	for _, step := range p.steps() {
		cur = cur.resolve()
		switch {
		case step.Subtree || step.IndexAll:
			return nil, fmt.Errorf("%w: wildcard in %s", ErrPath, p)
		case step.Field != nil:
			o, ok := cur.Node.(*Object)
			if !ok {
				return nil, fmt.Errorf("%w: %s: expected an object, got %s", ErrPath, p, cur.Kind())
			}
			f, ok := o.Fields.Get(*step.Field)
			if !ok {
				return nil, fmt.Errorf("%w: %s: no field %q", ErrPath, p, *step.Field)
			}
			cur = f
		case step.Index != nil:
			a, ok := cur.Node.(*Array)
			if !ok {
				return nil, fmt.Errorf("%w: %s: expected an array, got %s", ErrPath, p, cur.Kind())
			}
			i := *step.Index
			if i < 0 || i >= len(a.Values) {
				return nil, fmt.Errorf("%w: %s: index %d out of bounds (len %d)", ErrPath, p, i, len(a.Values))
			}
			cur = a.Values[i]
		}
	}
	return cur.resolve(), nil
}

// resolve follows enum selections.
func (c *Container) resolve() *Container {
	for {
		e, ok := c.Node.(*Enum)
		if !ok {
			return c
		}
		inst := e.Selection()
		if inst == nil {
			return c
		}
		c = inst
	}
}

// List returns the containers matched by p, which may hold the wildcards
// '[*]' and '..'.
func (c *Container) List(p *Path) []*Container {
	return c.list(nil, p.steps())
}

func (c *Container) list(dst []*Container, steps []*Path) []*Container {
	cur := c.resolve()
	if len(steps) == 0 {
		return append(dst, cur)
	}
	step, rest := steps[0], steps[1:]
	if step.Subtree {
		cur.Walk(func(_ *Path, d *Container) bool {
			if _, ok := d.Node.(*Enum); ok {
				return true
			}
			dst = d.list(dst, rest)
			return true
		})
		return dst
	}
	switch n := cur.Node.(type) {
	case *Object:
		if step.Field == nil {
			return dst
		}
		if f, ok := n.Fields.Get(*step.Field); ok {
			dst = f.list(dst, rest)
		}
	case *Array:
		switch {
		case step.IndexAll:
			for _, e := range n.Values {
				dst = e.list(dst, rest)
			}
		case step.Index != nil:
			if i := *step.Index; 0 <= i && i < len(n.Values) {
				dst = n.Values[i].list(dst, rest)
			}
		}
	}
	return dst
}
