package eval

import (
	"fmt"

	"github.com/signadot/configurator/node"
	"github.com/signadot/configurator/value"
)

// GetPath returns the value of v at p. Options are looked through, and
// wildcard steps are not allowed.
func GetPath(v value.Value, p *node.Path) (value.Value, error) {
	cur := v
	for x := p; x != nil; x = x.Next {
		cur = unwrap(cur)
		switch {
		case x.Subtree || x.IndexAll:
			return value.Empty, fmt.Errorf("%w: %s: wildcards need listpath", ErrPath, p)
		case x.Field != nil:
			e, ok := cur.Lookup(*x.Field)
			if !ok {
				return value.Empty, fmt.Errorf("%w: %s: no field %q", ErrPath, p, *x.Field)
			}
			cur = e
		case x.Index != nil:
			if !cur.IsSeq() || *x.Index >= len(cur.Items) {
				return value.Empty, fmt.Errorf("%w: %s: no element %d", ErrPath, p, *x.Index)
			}
			cur = cur.Items[*x.Index]
		}
	}
	return unwrap(cur), nil
}

// ListPath returns the values of v matched by p, in document order.
// Missing fields and out of range indices match nothing.
func ListPath(v value.Value, p *node.Path) []value.Value {
	var res []value.Value
	listPath(v, p, &res)
	return res
}

func listPath(v value.Value, p *node.Path, res *[]value.Value) {
	for p != nil && !p.Subtree && !p.IndexAll && p.Field == nil && p.Index == nil {
		p = p.Next
	}
	if p == nil {
		*res = append(*res, v)
		return
	}
	v = unwrap(v)
	switch {
	case p.Subtree:
		for _, d := range descendants(v, nil) {
			listPath(d, p.Next, res)
		}
	case p.IndexAll:
		for _, e := range children(v) {
			listPath(e, p.Next, res)
		}
	case p.Field != nil:
		if e, ok := v.Lookup(*p.Field); ok {
			listPath(e, p.Next, res)
		}
	case p.Index != nil:
		if v.IsSeq() && *p.Index < len(v.Items) {
			listPath(v.Items[*p.Index], p.Next, res)
		}
	}
}

func unwrap(v value.Value) value.Value {
	for v.Kind == value.OptionKind && v.Elem != nil {
		v = *v.Elem
	}
	return v
}

func children(v value.Value) []value.Value {
	switch v.Kind {
	case value.ListKind, value.TupleKind, value.NamedTupleKind:
		return v.Items
	case value.StructKind:
		res := make([]value.Value, 0, v.Fields.Len())
		for _, e := range v.Fields.All() {
			res = append(res, e)
		}
		return res
	case value.MapKind:
		res := make([]value.Value, 0, v.Map.Len())
		for _, e := range v.Map.All() {
			res = append(res, e)
		}
		return res
	}
	return nil
}

// descendants returns v and everything below it, parents first.
func descendants(v value.Value, acc []value.Value) []value.Value {
	acc = append(acc, v)
	for _, c := range children(v) {
		acc = descendants(unwrap(c), acc)
	}
	return acc
}
