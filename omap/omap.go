// Package omap provides an insertion ordered map keyed by strings.
//
// Configuration documents are sensitive to field order: two structs with
// the same entries in a different order are different documents. Map keeps
// entries in insertion order, replaces values in place and removes entries
// without disturbing the order of the remaining ones.
package omap

import "iter"

type Map[V any] struct {
	keys []string
	vals []V
	idx  map[string]int
}

func New[V any]() *Map[V] {
	return &Map[V]{idx: map[string]int{}}
}

// Len returns the number of entries. A nil map has length 0.
func (m *Map[V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

func (m *Map[V]) Get(key string) (V, bool) {
	var zero V
	if m == nil {
		return zero, false
	}
	i, ok := m.idx[key]
	if !ok {
		return zero, false
	}
	return m.vals[i], true
}

func (m *Map[V]) Has(key string) bool {
	if m == nil {
		return false
	}
	_, ok := m.idx[key]
	return ok
}

// Index returns the position of key, or -1.
func (m *Map[V]) Index(key string) int {
	if m == nil {
		return -1
	}
	i, ok := m.idx[key]
	if !ok {
		return -1
	}
	return i
}

// At returns the entry at position i.
func (m *Map[V]) At(i int) (string, V) {
	return m.keys[i], m.vals[i]
}

// Set inserts key at the end, or replaces its value in place when the key
// is already present.
func (m *Map[V]) Set(key string, v V) {
	if m.idx == nil {
		m.idx = map[string]int{}
	}
	if i, ok := m.idx[key]; ok {
		m.vals[i] = v
		return
	}
	m.idx[key] = len(m.keys)
	m.keys = append(m.keys, key)
	m.vals = append(m.vals, v)
}

// Delete removes key, shifting later entries down. It reports whether the
// key was present.
func (m *Map[V]) Delete(key string) bool {
	if m == nil {
		return false
	}
	i, ok := m.idx[key]
	if !ok {
		return false
	}
	m.keys = append(m.keys[:i], m.keys[i+1:]...)
	m.vals = append(m.vals[:i], m.vals[i+1:]...)
	delete(m.idx, key)
	for j := i; j < len(m.keys); j++ {
		m.idx[m.keys[j]] = j
	}
	return true
}

// Rename changes the key of an entry keeping its position. It fails when
// from is absent or to is already taken.
func (m *Map[V]) Rename(from, to string) bool {
	if m == nil || from == to {
		return m.Has(from)
	}
	i, ok := m.idx[from]
	if !ok || m.Has(to) {
		return false
	}
	delete(m.idx, from)
	m.keys[i] = to
	m.idx[to] = i
	return true
}

// DeleteFunc removes every entry for which f returns true.
func (m *Map[V]) DeleteFunc(f func(key string, v V) bool) {
	if m == nil {
		return
	}
	keys, vals := m.keys[:0], m.vals[:0]
	for i, k := range m.keys {
		if f(k, m.vals[i]) {
			delete(m.idx, k)
			continue
		}
		keys = append(keys, k)
		vals = append(vals, m.vals[i])
	}
	clear(m.keys[len(keys):])
	clear(m.vals[len(vals):])
	m.keys, m.vals = keys, vals
	for i, k := range m.keys {
		m.idx[k] = i
	}
}

func (m *Map[V]) Keys() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.keys...)
}

func (m *Map[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		if m == nil {
			return
		}
		for i, k := range m.keys {
			if !yield(k, m.vals[i]) {
				return
			}
		}
	}
}

// Clone copies the map, passing every value through f. A nil f copies
// values as is.
func (m *Map[V]) Clone(f func(V) V) *Map[V] {
	res := &Map[V]{
		keys: make([]string, 0, m.Len()),
		vals: make([]V, 0, m.Len()),
		idx:  make(map[string]int, m.Len()),
	}
	for k, v := range m.All() {
		if f != nil {
			v = f(v)
		}
		res.Set(k, v)
	}
	return res
}
