package value

import (
	"strconv"
	"strings"
)

// String renders v on a single line, for diagnostics.
func (v Value) String() string {
	var b strings.Builder
	v.write(&b)
	return b.String()
}

func (v Value) write(b *strings.Builder) {
	switch v.Kind {
	case EmptyKind:
		b.WriteString("<empty>")
	case UnitKind:
		b.WriteString("()")
	case BoolKind:
		b.WriteString(strconv.FormatBool(v.Bool))
	case CharKind:
		b.WriteString(strconv.QuoteRune(v.Char))
	case NumberKind:
		b.WriteString(v.Number.String())
	case StringKind:
		b.WriteString(strconv.Quote(v.Str))
	case BytesKind:
		b.WriteString("b")
		b.WriteString(strconv.Quote(string(v.Bytes)))
	case OptionKind:
		if v.Elem == nil {
			b.WriteString("None")
			return
		}
		b.WriteString("Some(")
		v.Elem.write(b)
		b.WriteByte(')')
	case ListKind:
		writeItems(b, "[", v.Items, "]")
	case TupleKind:
		writeItems(b, "(", v.Items, ")")
	case MapKind:
		b.WriteByte('{')
		i := 0
		for k, e := range v.Map.All() {
			if i > 0 {
				b.WriteString(", ")
			}
			k.write(b)
			b.WriteString(": ")
			e.write(b)
			i++
		}
		b.WriteByte('}')
	case UnitStructKind:
		b.WriteString(v.Name)
	case StructKind:
		if v.Name != "" {
			b.WriteString(v.Name)
		}
		b.WriteByte('(')
		i := 0
		for k, e := range v.Fields.All() {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(k)
			b.WriteString(": ")
			e.write(b)
			i++
		}
		b.WriteByte(')')
	case NamedTupleKind:
		writeItems(b, v.Name+"(", v.Items, ")")
	default:
		b.WriteString("<bad value>")
	}
}

func writeItems(b *strings.Builder, open string, items []Value, close string) {
	b.WriteString(open)
	for i := range items {
		if i > 0 {
			b.WriteString(", ")
		}
		items[i].write(b)
	}
	b.WriteString(close)
}
