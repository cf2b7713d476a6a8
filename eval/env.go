package eval

import (
	"fmt"

	"github.com/signadot/configurator/codec"
	"github.com/signadot/configurator/value"
)

// ConfigName is the variable holding the whole queried value.
const ConfigName = "config"

// Env holds the variables of an expression.
type Env map[string]any

// NewEnv returns the environment for queries over v. Empty has no
// variables besides config, which is nil.
func NewEnv(v value.Value) (Env, error) {
	if v.IsEmpty() {
		return Env{ConfigName: nil}, nil
	}
	root, err := ToAny(v)
	if err != nil {
		return nil, err
	}
	env := Env{}
	if m, ok := root.(map[string]any); ok {
		for k, e := range m {
			env[k] = e
		}
	}
	env[ConfigName] = root
	return env, nil
}

// ToAny converts v to the plain Go values expressions operate on. Keyed
// values become map[string]any so that member access works, at the cost
// of key order. Map keys which are not strings are written with their
// canonical form.
func ToAny(v value.Value) (any, error) {
	switch v.Kind {
	case value.OptionKind:
		if v.Elem == nil {
			return nil, nil
		}
		return ToAny(*v.Elem)
	case value.StructKind:
		res := make(map[string]any, v.Fields.Len())
		for k, e := range v.Fields.All() {
			a, err := ToAny(e)
			if err != nil {
				return nil, err
			}
			res[k] = a
		}
		return res, nil
	case value.MapKind:
		res := make(map[string]any, v.Map.Len())
		for k, e := range v.Map.All() {
			a, err := ToAny(e)
			if err != nil {
				return nil, err
			}
			key := k.Str
			if k.Kind != value.StringKind {
				key = k.String()
			}
			res[key] = a
		}
		return res, nil
	case value.ListKind, value.TupleKind:
		return itemsToAny(v.Items)
	case value.NamedTupleKind:
		var payload any
		var err error
		if len(v.Items) == 1 {
			payload, err = ToAny(v.Items[0])
		} else {
			payload, err = itemsToAny(v.Items)
		}
		if err != nil {
			return nil, err
		}
		return map[string]any{v.Name: payload}, nil
	}
	res, err := codec.ToAny(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEval, err)
	}
	return res, nil
}

func itemsToAny(items []value.Value) ([]any, error) {
	res := make([]any, len(items))
	for i := range items {
		a, err := ToAny(items[i])
		if err != nil {
			return nil, err
		}
		res[i] = a
	}
	return res, nil
}
