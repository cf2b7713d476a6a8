package codec

import (
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/signadot/configurator/format"
	"github.com/signadot/configurator/omap"
	"github.com/signadot/configurator/value"
)

// ApplyJSONPatch applies an RFC 6902 JSON patch document to v. Struct
// fields which survive the patch keep their original order; fields added
// by the patch follow them.
func ApplyJSONPatch(v value.Value, patch []byte) (value.Value, error) {
	ops, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return value.Empty, fmt.Errorf("%w: %w", ErrPatch, err)
	}
	d, err := toJSON(v)
	if err != nil {
		return value.Empty, err
	}
	out, err := ops.Apply(d)
	if err != nil {
		return value.Empty, fmt.Errorf("%w: %w", ErrPatch, err)
	}
	res, err := Decode(out)
	if err != nil {
		return value.Empty, err
	}
	return RestoreOrder(v, res), nil
}

// MergePatch applies an RFC 7386 JSON merge patch to v, keeping field
// order as ApplyJSONPatch does.
func MergePatch(v value.Value, patch []byte) (value.Value, error) {
	d, err := toJSON(v)
	if err != nil {
		return value.Empty, err
	}
	out, err := jsonpatch.MergePatch(d, patch)
	if err != nil {
		return value.Empty, fmt.Errorf("%w: %w", ErrPatch, err)
	}
	res, err := Decode(out)
	if err != nil {
		return value.Empty, err
	}
	return RestoreOrder(v, res), nil
}

func toJSON(v value.Value) ([]byte, error) {
	if v.IsEmpty() {
		return []byte("{}"), nil
	}
	return Encode(v, Format(format.JSONFormat))
}

// RestoreOrder reorders the struct fields of patched so that fields also
// present at the same place in orig come first, in the order of orig.
func RestoreOrder(orig, patched value.Value) value.Value {
	switch {
	case orig.Kind == value.StructKind && patched.Kind == value.StructKind:
		fields := omap.New[value.Value]()
		for k, ov := range orig.Fields.All() {
			if pv, ok := patched.Fields.Get(k); ok {
				fields.Set(k, RestoreOrder(ov, pv))
			}
		}
		for k, pv := range patched.Fields.All() {
			if !fields.Has(k) {
				fields.Set(k, pv)
			}
		}
		return value.FromStruct(orig.Name, fields)
	case orig.IsSeq() && patched.Kind == value.ListKind:
		items := make([]value.Value, len(patched.Items))
		for i := range patched.Items {
			items[i] = patched.Items[i]
			if i < len(orig.Items) {
				items[i] = RestoreOrder(orig.Items[i], items[i])
			}
		}
		patched.Items = items
		return patched
	}
	return patched
}
