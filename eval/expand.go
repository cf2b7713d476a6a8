package eval

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/signadot/configurator/codec"
	"github.com/signadot/configurator/format"
	"github.com/signadot/configurator/value"
)

// Expand returns v with the expressions embedded in its strings evaluated.
// Keys are left alone.
func (e *Evaluator) Expand(v value.Value) (value.Value, error) {
	switch v.Kind {
	case value.StringKind:
		if src, ok := rawRef(v.Str); ok {
			return e.Eval(src)
		}
		s, err := e.ExpandString(v.Str)
		if err != nil {
			return value.Empty, err
		}
		return value.FromString(s), nil
	case value.OptionKind:
		if v.Elem == nil {
			return v, nil
		}
		x, err := e.Expand(*v.Elem)
		if err != nil {
			return value.Empty, err
		}
		return value.Some(x), nil
	case value.ListKind, value.TupleKind, value.NamedTupleKind:
		items := make([]value.Value, len(v.Items))
		for i := range v.Items {
			x, err := e.Expand(v.Items[i])
			if err != nil {
				return value.Empty, err
			}
			items[i] = x
		}
		v.Items = items
		return v, nil
	case value.StructKind:
		fields := v.Fields.Clone(nil)
		for k, f := range v.Fields.All() {
			x, err := e.Expand(f)
			if err != nil {
				return value.Empty, err
			}
			fields.Set(k, x)
		}
		v.Fields = fields
		return v, nil
	case value.MapKind:
		m := value.NewMap()
		for k, f := range v.Map.All() {
			x, err := e.Expand(f)
			if err != nil {
				return value.Empty, err
			}
			m.Set(k, x)
		}
		v.Map = m
		return v, nil
	}
	return v, nil
}

// ExpandString replaces each "$[expr]" or ".[expr]" in s by the text of
// its result. Inside the brackets a backslash escapes the next byte.
// Unterminated expressions are kept as they are.
func (e *Evaluator) ExpandString(s string) (string, error) {
	var out strings.Builder
	for i := 0; i < len(s); {
		if i+1 < len(s) && (s[i] == '$' || s[i] == '.') && s[i+1] == '[' {
			src, n, ok := scanExpr(s[i+2:])
			if ok {
				x, err := e.run(strings.TrimSpace(src))
				if err != nil {
					return "", err
				}
				t, err := text(x)
				if err != nil {
					return "", err
				}
				out.WriteString(t)
				i += 2 + n
				continue
			}
		}
		out.WriteByte(s[i])
		i++
	}
	return out.String(), nil
}

// scanExpr reads an expression up to its closing bracket and returns it
// unescaped along with the number of bytes consumed.
func scanExpr(s string) (string, int, bool) {
	var buf []byte
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			if i+1 < len(s) {
				i++
				buf = append(buf, s[i])
			}
		case ']':
			return string(buf), i + 1, true
		default:
			buf = append(buf, s[i])
		}
	}
	return "", 0, false
}

func rawRef(s string) (string, bool) {
	if len(s) < 3 || !strings.HasPrefix(s, ".[") || !strings.HasSuffix(s, "]") {
		return "", false
	}
	src, n, ok := scanExpr(s[2:])
	if !ok || n != len(s)-2 {
		return "", false
	}
	return strings.TrimSpace(src), true
}

func text(x any) (string, error) {
	switch y := x.(type) {
	case string:
		return y, nil
	case bool:
		return strconv.FormatBool(y), nil
	case float64:
		return strconv.FormatFloat(y, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(y), nil
	}
	v, err := codec.FromAny(x)
	if err != nil {
		return "", err
	}
	d, err := codec.Encode(v, codec.Format(format.JSONFormat))
	if err != nil {
		return "", err
	}
	return string(bytes.TrimSpace(d)), nil
}
