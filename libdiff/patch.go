package libdiff

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/signadot/configurator/omap"
	"github.com/signadot/configurator/value"
)

var ErrPatch = errors.New("cannot patch")

// Patch applies d to v. It fails if v is not the source d was computed
// from, at least where d changes it.
func Patch(v value.Value, d *Diff) (value.Value, error) {
	if d == nil {
		return v, nil
	}
	switch d.Op {
	case Insert:
		if !v.IsEmpty() {
			return value.Empty, fmt.Errorf("%w: insert over %s", ErrPatch, v)
		}
		return d.To, nil
	case Delete, Replace:
		if !v.Equal(d.From) {
			return value.Empty, fmt.Errorf("%w: expected %s, got %s", ErrPatch, d.From, v)
		}
		return d.To, nil
	case Nested:
		switch {
		case d.Fields != nil:
			return patchKeyed(v, d)
		case d.Items != nil:
			if !v.IsSeq() {
				return value.Empty, fmt.Errorf("%w: expected a sequence, got %s", ErrPatch, v.Kind)
			}
			items, err := patchItems(v.Items, d.Items)
			if err != nil {
				return value.Empty, err
			}
			v.Items = items
			return v, nil
		case d.Elem != nil:
			if v.Kind != value.OptionKind || v.Elem == nil {
				return value.Empty, fmt.Errorf("%w: expected Some, got %s", ErrPatch, v)
			}
			e, err := Patch(*v.Elem, d.Elem)
			if err != nil {
				return value.Empty, err
			}
			return value.Some(e), nil
		case d.Text != nil:
			if v.Kind != value.StringKind {
				return value.Empty, fmt.Errorf("%w: expected a string, got %s", ErrPatch, v.Kind)
			}
			return patchText(v.Str, d.Text)
		}
	}
	return value.Empty, fmt.Errorf("%w: bad diff op %s", ErrPatch, d.Op)
}

func patchKeyed(v value.Value, d *Diff) (value.Value, error) {
	keys, ok := v.Keys()
	if !ok {
		return value.Empty, fmt.Errorf("%w: expected a struct or a map, got %s", ErrPatch, v.Kind)
	}
	fields := omap.New[value.Value]()
	for _, k := range keys {
		fv, _ := v.Lookup(k)
		fd, _ := d.Fields.Get(k)
		pv, err := Patch(fv, fd)
		if err != nil {
			return value.Empty, fmt.Errorf("%s: %w", k, err)
		}
		if !pv.IsEmpty() {
			fields.Set(k, pv)
		}
	}
	for k, fd := range d.Fields.All() {
		if slices.Contains(keys, k) {
			continue
		}
		pv, err := Patch(value.Empty, fd)
		if err != nil {
			return value.Empty, fmt.Errorf("%s: %w", k, err)
		}
		fields.Set(k, pv)
	}
	if d.ToOrder != nil {
		ordered := omap.New[value.Value]()
		for _, k := range d.ToOrder {
			if fv, ok := fields.Get(k); ok {
				ordered.Set(k, fv)
			}
		}
		for k, fv := range fields.All() {
			if !ordered.Has(k) {
				ordered.Set(k, fv)
			}
		}
		fields = ordered
	}
	if v.Kind == value.MapKind {
		m := value.NewMap()
		for k, fv := range fields.All() {
			m.Set(value.FromString(k), fv)
		}
		return value.FromMap(m), nil
	}
	return value.FromStruct(v.Name, fields), nil
}

// patchItems walks the edit stream: positions without an op copy the
// next item, insertions consume no item and every other op consumes
// one.
func patchItems(items []value.Value, ops map[int]*Diff) ([]value.Value, error) {
	res := make([]value.Value, 0, len(items))
	fi, remaining := 0, len(ops)
	for di := 0; remaining > 0; di++ {
		op, ok := ops[di]
		if !ok {
			if fi >= len(items) {
				return nil, fmt.Errorf("%w: edit %d past the end", ErrPatch, di)
			}
			res = append(res, items[fi])
			fi++
			continue
		}
		remaining--
		if op.Op == Insert {
			res = append(res, op.To)
			continue
		}
		if fi >= len(items) {
			return nil, fmt.Errorf("%w: edit %d past the end", ErrPatch, di)
		}
		pv, err := Patch(items[fi], op)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", fi, err)
		}
		if !pv.IsEmpty() {
			res = append(res, pv)
		}
		fi++
	}
	return append(res, items[fi:]...), nil
}

func patchText(s string, edits []TextEdit) (value.Value, error) {
	var src, dst strings.Builder
	for _, e := range edits {
		switch e.Op {
		case Equal:
			src.WriteString(e.Text)
			dst.WriteString(e.Text)
		case Delete:
			src.WriteString(e.Text)
		case Insert:
			dst.WriteString(e.Text)
		}
	}
	if src.String() != s {
		return value.Empty, fmt.Errorf("%w: unexpected text %q, expected %q", ErrPatch, s, src.String())
	}
	return value.FromString(dst.String()), nil
}
