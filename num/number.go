package num

import (
	"cmp"
	"encoding/binary"
	"fmt"
	"math"
	"math/big"
	"strconv"
)

var (
	maxU128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
	maxI128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	minI128 = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
)

// Number is an immutable numeric value tagged with its Kind.
type Number struct {
	kind Kind
	u    uint64
	i    int64
	f    float64
	b    *big.Int
}

func FromU8(v uint8) Number    { return Number{kind: U8, u: uint64(v)} }
func FromU16(v uint16) Number  { return Number{kind: U16, u: uint64(v)} }
func FromU32(v uint32) Number  { return Number{kind: U32, u: uint64(v)} }
func FromU64(v uint64) Number  { return Number{kind: U64, u: v} }
func FromUSize(v uint) Number  { return Number{kind: USize, u: uint64(v)} }
func FromI8(v int8) Number     { return Number{kind: I8, i: int64(v)} }
func FromI16(v int16) Number   { return Number{kind: I16, i: int64(v)} }
func FromI32(v int32) Number   { return Number{kind: I32, i: int64(v)} }
func FromI64(v int64) Number   { return Number{kind: I64, i: v} }
func FromISize(v int) Number   { return Number{kind: ISize, i: int64(v)} }
func FromF32(v float32) Number { return Number{kind: F32, f: float64(v)} }
func FromF64(v float64) Number { return Number{kind: F64, f: v} }

// FromU128 returns a U128 number. It fails when v is negative or does not
// fit in 128 bits.
func FromU128(v *big.Int) (Number, error) {
	if v.Sign() < 0 || v.Cmp(maxU128) > 0 {
		return Number{}, fmt.Errorf("%s out of range for u128", v)
	}
	return Number{kind: U128, b: new(big.Int).Set(v)}, nil
}

// FromI128 returns an I128 number. It fails when v does not fit in a
// signed 128 bit integer.
func FromI128(v *big.Int) (Number, error) {
	if v.Cmp(minI128) < 0 || v.Cmp(maxI128) > 0 {
		return Number{}, fmt.Errorf("%s out of range for i128", v)
	}
	return Number{kind: I128, b: new(big.Int).Set(v)}, nil
}

func (n Number) Kind() Kind { return n.kind }

func (n Number) IsFloat() bool { return n.kind.IsFloat() }

// bigInt returns the exact integer value of a non float number.
func (n Number) bigInt() *big.Int {
	switch {
	case n.kind == U128 || n.kind == I128:
		if n.b == nil {
			return new(big.Int)
		}
		return new(big.Int).Set(n.b)
	case n.kind.IsUnsigned():
		return new(big.Int).SetUint64(n.u)
	default:
		return big.NewInt(n.i)
	}
}

// AsU128 returns the number as an unsigned 128 bit integer when that
// conversion is lossless.
func (n Number) AsU128() (*big.Int, bool) {
	if n.IsFloat() {
		return nil, false
	}
	v := n.bigInt()
	if v.Sign() < 0 || v.Cmp(maxU128) > 0 {
		return nil, false
	}
	return v, true
}

// AsI128 returns the number as a signed 128 bit integer when that
// conversion is lossless.
func (n Number) AsI128() (*big.Int, bool) {
	if n.IsFloat() {
		return nil, false
	}
	v := n.bigInt()
	if v.Cmp(minI128) < 0 || v.Cmp(maxI128) > 0 {
		return nil, false
	}
	return v, true
}

// AsI64 returns the number as an int64 when that conversion is lossless.
func (n Number) AsI64() (int64, bool) {
	v, ok := n.AsI128()
	if !ok || !v.IsInt64() {
		return 0, false
	}
	return v.Int64(), true
}

// AsU64 returns the number as a uint64 when that conversion is lossless.
func (n Number) AsU64() (uint64, bool) {
	v, ok := n.AsU128()
	if !ok || !v.IsUint64() {
		return 0, false
	}
	return v.Uint64(), true
}

// AsF64 converts the number to a float64, losing precision for wide
// integers.
func (n Number) AsF64() float64 {
	switch {
	case n.IsFloat():
		return n.f
	case n.kind == U128 || n.kind == I128:
		f, _ := new(big.Float).SetInt(n.bigInt()).Float64()
		return f
	case n.kind.IsUnsigned():
		return float64(n.u)
	default:
		return float64(n.i)
	}
}

// String renders the number in its shortest exact decimal form.
func (n Number) String() string {
	switch {
	case n.kind == F32:
		return strconv.FormatFloat(n.f, 'f', -1, 32)
	case n.kind == F64:
		return strconv.FormatFloat(n.f, 'f', -1, 64)
	case n.kind == U128 || n.kind == I128:
		return n.bigInt().String()
	case n.kind.IsUnsigned():
		return strconv.FormatUint(n.u, 10)
	default:
		return strconv.FormatInt(n.i, 10)
	}
}

// Display renders the number for editing: floats with three decimals,
// integers in full.
func (n Number) Display() string {
	if n.IsFloat() {
		return strconv.FormatFloat(n.f, 'f', 3, 64)
	}
	return n.String()
}

// Compare orders numbers by kind and then by value. Floats use a total
// order, so NaN compares equal to itself.
func Compare(a, b Number) int {
	if a.kind != b.kind {
		return cmp.Compare(a.kind, b.kind)
	}
	switch {
	case a.kind == F32:
		return cmp.Compare(totalKey32(float32(a.f)), totalKey32(float32(b.f)))
	case a.kind == F64:
		return cmp.Compare(totalKey64(a.f), totalKey64(b.f))
	case a.kind == U128 || a.kind == I128:
		return a.bigInt().Cmp(b.bigInt())
	case a.kind.IsUnsigned():
		return cmp.Compare(a.u, b.u)
	default:
		return cmp.Compare(a.i, b.i)
	}
}

func (n Number) Equal(o Number) bool { return Compare(n, o) == 0 }

func totalKey64(f float64) int64 {
	v := int64(math.Float64bits(f))
	return v ^ int64(uint64(v>>63)>>1)
}

func totalKey32(f float32) int32 {
	v := int32(math.Float32bits(f))
	return v ^ int32(uint32(v>>31)>>1)
}

// AppendKey appends an encoding of n that is equal for numbers that
// compare equal and distinct otherwise.
func (n Number) AppendKey(b []byte) []byte {
	b = append(b, byte(n.kind))
	switch {
	case n.kind == F32:
		return binary.LittleEndian.AppendUint32(b, uint32(totalKey32(float32(n.f))))
	case n.kind == F64:
		return binary.LittleEndian.AppendUint64(b, uint64(totalKey64(n.f)))
	case n.kind == U128 || n.kind == I128:
		return append(append(b, n.bigInt().String()...), 0)
	case n.kind.IsUnsigned():
		return binary.LittleEndian.AppendUint64(b, n.u)
	default:
		return binary.LittleEndian.AppendUint64(b, uint64(n.i))
	}
}
