package num

import (
	"errors"
	"fmt"
	"strconv"
)

// Kind is the representation of a Number. The declaration order is the
// sort order of numbers of different kinds.
type Kind uint8

const (
	U8 Kind = iota
	U16
	U32
	U64
	U128
	USize
	I8
	I16
	I32
	I64
	I128
	ISize
	F32
	F64
)

var ErrBadKind = errors.New("bad number kind")

var kindNames = [...]string{
	U8:    "u8",
	U16:   "u16",
	U32:   "u32",
	U64:   "u64",
	U128:  "u128",
	USize: "usize",
	I8:    "i8",
	I16:   "i16",
	I32:   "i32",
	I64:   "i64",
	I128:  "i128",
	ISize: "isize",
	F32:   "f32",
	F64:   "f64",
}

func Kinds() []Kind {
	res := make([]Kind, 0, len(kindNames))
	for k := range kindNames {
		res = append(res, Kind(k))
	}
	return res
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

func (k Kind) IsFloat() bool    { return k == F32 || k == F64 }
func (k Kind) IsUnsigned() bool { return k <= USize }
func (k Kind) IsSigned() bool   { return k >= I8 && k <= ISize }

// Bits returns the width of the kind in bits.
func (k Kind) Bits() int {
	switch k {
	case U8, I8:
		return 8
	case U16, I16:
		return 16
	case U32, I32, F32:
		return 32
	case U64, I64, F64:
		return 64
	case U128, I128:
		return 128
	case USize, ISize:
		return strconv.IntSize
	}
	return 0
}

// ParseKind parses a kind name as produced by String.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrBadKind, s)
}

// KindFromFormat maps a schema format hint to a kind.
func KindFromFormat(format string) (Kind, bool) {
	k, ok := map[string]Kind{
		"uint8":   U8,
		"uint16":  U16,
		"uint32":  U32,
		"uint64":  U64,
		"uint128": U128,
		"uint":    USize,
		"usize":   USize,
		"int8":    I8,
		"int16":   I16,
		"int32":   I32,
		"int64":   I64,
		"int128":  I128,
		"int":     ISize,
		"isize":   ISize,
		"float":   F32,
		"float32": F32,
		"float64": F64,
		"double":  F64,
	}[format]
	return k, ok
}
