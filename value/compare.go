package value

import (
	"bytes"
	"cmp"
	"encoding/binary"
	"hash/maphash"
	"strings"

	"github.com/signadot/configurator/num"
	"github.com/signadot/configurator/omap"
)

// Compare orders values first by Kind, then structurally. Maps and structs
// compare their entries in insertion order.
func Compare(a, b Value) int {
	if a.Kind != b.Kind {
		return cmp.Compare(a.Kind, b.Kind)
	}
	switch a.Kind {
	case EmptyKind, UnitKind:
		return 0
	case BoolKind:
		switch {
		case a.Bool == b.Bool:
			return 0
		case !a.Bool:
			return -1
		}
		return 1
	case CharKind:
		return cmp.Compare(a.Char, b.Char)
	case NumberKind:
		return num.Compare(a.Number, b.Number)
	case StringKind:
		return strings.Compare(a.Str, b.Str)
	case BytesKind:
		return bytes.Compare(a.Bytes, b.Bytes)
	case OptionKind:
		switch {
		case a.Elem == nil && b.Elem == nil:
			return 0
		case a.Elem == nil:
			return -1
		case b.Elem == nil:
			return 1
		}
		return Compare(*a.Elem, *b.Elem)
	case ListKind, TupleKind:
		return compareItems(a.Items, b.Items)
	case MapKind:
		return compareMaps(a.Map, b.Map)
	case UnitStructKind:
		return strings.Compare(a.Name, b.Name)
	case StructKind:
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return compareFields(a.Fields, b.Fields)
	case NamedTupleKind:
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return compareItems(a.Items, b.Items)
	}
	panic("value.Compare: bad kind")
}

func Equal(a, b Value) bool { return Compare(a, b) == 0 }

func (v Value) Equal(o Value) bool { return Compare(v, o) == 0 }

func compareItems(a, b []Value) int {
	for i := range min(len(a), len(b)) {
		if c := Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a), len(b))
}

func compareMaps(a, b *Map) int {
	n := min(a.Len(), b.Len())
	for i := range n {
		ak, av := a.At(i)
		bk, bv := b.At(i)
		if c := Compare(ak, bk); c != 0 {
			return c
		}
		if c := Compare(av, bv); c != 0 {
			return c
		}
	}
	return cmp.Compare(a.Len(), b.Len())
}

func compareFields(a, b *omap.Map[Value]) int {
	n := min(a.Len(), b.Len())
	for i := range n {
		ak, av := a.At(i)
		bk, bv := b.At(i)
		if c := strings.Compare(ak, bk); c != 0 {
			return c
		}
		if c := Compare(av, bv); c != 0 {
			return c
		}
	}
	return cmp.Compare(a.Len(), b.Len())
}

// AppendKey appends to b an encoding of v which is identical for values
// that are Equal and distinct otherwise.
func (v Value) AppendKey(b []byte) []byte {
	b = append(b, byte(v.Kind))
	switch v.Kind {
	case BoolKind:
		if v.Bool {
			return append(b, 1)
		}
		return append(b, 0)
	case CharKind:
		return binary.LittleEndian.AppendUint32(b, uint32(v.Char))
	case NumberKind:
		return v.Number.AppendKey(b)
	case StringKind:
		return appendString(b, v.Str)
	case BytesKind:
		return appendString(b, string(v.Bytes))
	case OptionKind:
		if v.Elem == nil {
			return append(b, 0)
		}
		return v.Elem.AppendKey(append(b, 1))
	case ListKind, TupleKind:
		return appendItems(b, v.Items)
	case MapKind:
		b = binary.AppendUvarint(b, uint64(v.Map.Len()))
		for k, e := range v.Map.All() {
			b = e.AppendKey(k.AppendKey(b))
		}
		return b
	case UnitStructKind:
		return appendString(b, v.Name)
	case StructKind:
		b = appendString(b, v.Name)
		b = binary.AppendUvarint(b, uint64(v.Fields.Len()))
		for k, e := range v.Fields.All() {
			b = e.AppendKey(appendString(b, k))
		}
		return b
	case NamedTupleKind:
		return appendItems(appendString(b, v.Name), v.Items)
	}
	return b
}

func appendString(b []byte, s string) []byte {
	b = binary.AppendUvarint(b, uint64(len(s)))
	return append(b, s...)
}

func appendItems(b []byte, items []Value) []byte {
	b = binary.AppendUvarint(b, uint64(len(items)))
	for i := range items {
		b = items[i].AppendKey(b)
	}
	return b
}

var seed = maphash.MakeSeed()

// Hash returns a hash of v consistent with Equal within one process.
func (v Value) Hash() uint64 {
	return maphash.Bytes(seed, v.AppendKey(nil))
}
