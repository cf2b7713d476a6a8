package value

import (
	"iter"

	"github.com/signadot/configurator/omap"
)

type entry struct {
	key Value
	val Value
}

// Map is an insertion ordered map with Value keys. Keys are identified by
// structural equality.
type Map struct {
	m *omap.Map[entry]
}

func NewMap() *Map {
	return &Map{m: omap.New[entry]()}
}

func mapKey(k Value) string {
	return string(k.AppendKey(nil))
}

func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return m.m.Len()
}

func (m *Map) Get(k Value) (Value, bool) {
	if m == nil {
		return Empty, false
	}
	e, ok := m.m.Get(mapKey(k))
	return e.val, ok
}

func (m *Map) Has(k Value) bool {
	return m != nil && m.m.Has(mapKey(k))
}

// Set inserts k at the end or replaces its value in place.
func (m *Map) Set(k, v Value) {
	if m.m == nil {
		m.m = omap.New[entry]()
	}
	m.m.Set(mapKey(k), entry{key: k, val: v})
}

// Delete removes k, preserving the order of the other entries.
func (m *Map) Delete(k Value) bool {
	if m == nil {
		return false
	}
	return m.m.Delete(mapKey(k))
}

// At returns the i'th entry.
func (m *Map) At(i int) (Value, Value) {
	_, e := m.m.At(i)
	return e.key, e.val
}

func (m *Map) All() iter.Seq2[Value, Value] {
	return func(yield func(Value, Value) bool) {
		if m == nil {
			return
		}
		for _, e := range m.m.All() {
			if !yield(e.key, e.val) {
				return
			}
		}
	}
}

func (m *Map) Clone() *Map {
	res := NewMap()
	for k, v := range m.All() {
		res.Set(k.Clone(), v.Clone())
	}
	return res
}

// MapOf builds a map from alternating keys and values.
func MapOf(kvs ...Value) *Map {
	if len(kvs)%2 != 0 {
		panic("value.MapOf: odd number of arguments")
	}
	m := NewMap()
	for i := 0; i < len(kvs); i += 2 {
		m.Set(kvs[i], kvs[i+1])
	}
	return m
}
