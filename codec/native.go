package codec

import (
	"encoding/base64"
	"fmt"
	"math"
	"math/big"
	"slices"
	"sort"

	"github.com/goccy/go-yaml"
	"github.com/signadot/configurator/num"
	"github.com/signadot/configurator/omap"
	"github.com/signadot/configurator/value"
)

// FromAny converts a native Go value, as produced by a YAML or JSON
// decoder, into a generic value. Ordered mappings become structs when all
// their keys are strings and maps otherwise. Unordered Go maps are sorted
// by key. nil becomes Option(None).
func FromAny(v any) (value.Value, error) {
	switch x := v.(type) {
	case nil:
		return value.None(), nil
	case value.Value:
		return x, nil
	case bool:
		return value.FromBool(x), nil
	case string:
		return value.FromString(x), nil
	case []byte:
		return value.FromBytes(x), nil
	case int:
		return value.FromI64(int64(x)), nil
	case int8:
		return value.FromI64(int64(x)), nil
	case int16:
		return value.FromI64(int64(x)), nil
	case int32:
		return value.FromI64(int64(x)), nil
	case int64:
		return value.FromI64(x), nil
	case uint:
		return fromUint(uint64(x)), nil
	case uint8:
		return fromUint(uint64(x)), nil
	case uint16:
		return fromUint(uint64(x)), nil
	case uint32:
		return fromUint(uint64(x)), nil
	case uint64:
		return fromUint(x), nil
	case float32:
		return value.FromNumber(num.FromF32(x)), nil
	case float64:
		return value.FromF64(x), nil
	case *big.Int:
		n, err := num.FromI128(x)
		if err != nil {
			n, err = num.FromU128(x)
		}
		if err != nil {
			return value.Empty, fmt.Errorf("%w: %w", ErrDecode, err)
		}
		return value.FromNumber(n), nil
	case yaml.MapSlice:
		return fromMapSlice(x)
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fields := omap.New[value.Value]()
		for _, k := range keys {
			e, err := FromAny(x[k])
			if err != nil {
				return value.Empty, err
			}
			fields.Set(k, e)
		}
		return value.FromStruct("", fields), nil
	case map[any]any:
		ms := make(yaml.MapSlice, 0, len(x))
		for k, e := range x {
			ms = append(ms, yaml.MapItem{Key: k, Value: e})
		}
		slices.SortFunc(ms, func(a, b yaml.MapItem) int {
			return compareAny(a.Key, b.Key)
		})
		return fromMapSlice(ms)
	case []any:
		items := make([]value.Value, len(x))
		for i, e := range x {
			ev, err := FromAny(e)
			if err != nil {
				return value.Empty, err
			}
			items[i] = ev
		}
		return value.FromList(items...), nil
	}
	return value.Empty, fmt.Errorf("%w: unsupported type %T", ErrDecode, v)
}

func fromUint(u uint64) value.Value {
	if u <= math.MaxInt64 {
		return value.FromI64(int64(u))
	}
	return value.FromNumber(num.FromU64(u))
}

func compareAny(a, b any) int {
	sa, sb := fmt.Sprint(a), fmt.Sprint(b)
	switch {
	case sa < sb:
		return -1
	case sa > sb:
		return 1
	}
	return 0
}

func fromMapSlice(ms yaml.MapSlice) (value.Value, error) {
	allStrings := true
	for _, item := range ms {
		if _, ok := item.Key.(string); !ok {
			allStrings = false
			break
		}
	}
	if allStrings {
		fields := omap.New[value.Value]()
		for _, item := range ms {
			e, err := FromAny(item.Value)
			if err != nil {
				return value.Empty, err
			}
			fields.Set(item.Key.(string), e)
		}
		return value.FromStruct("", fields), nil
	}
	m := value.NewMap()
	for _, item := range ms {
		k, err := FromAny(item.Key)
		if err != nil {
			return value.Empty, err
		}
		e, err := FromAny(item.Value)
		if err != nil {
			return value.Empty, err
		}
		m.Set(k, e)
	}
	return value.FromMap(m), nil
}

// ToAny converts a generic value into native Go values that a YAML or
// JSON encoder renders faithfully. Structs and maps become ordered
// mappings. Variants without a native form follow the externally tagged
// convention: a unit struct is its name, a named tuple is a single entry
// mapping from its name to its items. Empty has no native form and is an
// error.
func ToAny(v value.Value) (any, error) {
	switch v.Kind {
	case value.EmptyKind:
		return nil, fmt.Errorf("%w: empty value", ErrEncode)
	case value.UnitKind:
		return nil, nil
	case value.BoolKind:
		return v.Bool, nil
	case value.CharKind:
		return string(v.Char), nil
	case value.NumberKind:
		return numberToAny(v.Number), nil
	case value.StringKind:
		return v.Str, nil
	case value.BytesKind:
		return base64.StdEncoding.EncodeToString(v.Bytes), nil
	case value.OptionKind:
		if v.Elem == nil {
			return nil, nil
		}
		return ToAny(*v.Elem)
	case value.ListKind, value.TupleKind:
		return itemsToAny(v.Items)
	case value.MapKind:
		ms := make(yaml.MapSlice, 0, v.Map.Len())
		for k, e := range v.Map.All() {
			ka, err := ToAny(k)
			if err != nil {
				return nil, err
			}
			ea, err := ToAny(e)
			if err != nil {
				return nil, err
			}
			ms = append(ms, yaml.MapItem{Key: ka, Value: ea})
		}
		return ms, nil
	case value.UnitStructKind:
		return v.Name, nil
	case value.StructKind:
		ms := make(yaml.MapSlice, 0, v.Fields.Len())
		for k, e := range v.Fields.All() {
			ea, err := ToAny(e)
			if err != nil {
				return nil, err
			}
			ms = append(ms, yaml.MapItem{Key: k, Value: ea})
		}
		return ms, nil
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
		return yaml.MapSlice{{Key: v.Name, Value: payload}}, nil
	}
	return nil, fmt.Errorf("%w: bad kind %d", ErrEncode, v.Kind)
}

func itemsToAny(items []value.Value) ([]any, error) {
	res := make([]any, len(items))
	for i := range items {
		e, err := ToAny(items[i])
		if err != nil {
			return nil, err
		}
		res[i] = e
	}
	return res, nil
}

func numberToAny(n num.Number) any {
	switch {
	case n.Kind() == num.F32:
		return float32(n.AsF64())
	case n.IsFloat():
		return n.AsF64()
	}
	if i, ok := n.AsI64(); ok {
		return i
	}
	if u, ok := n.AsU64(); ok {
		return u
	}
	// wider than 64 bits: there is no native form the encoders accept
	// without loss, keep the digits.
	return n.String()
}
