package num

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// Parse parses s as a number of kind k.
func Parse(k Kind, s string) (Number, error) {
	s = strings.TrimSpace(s)
	switch {
	case k.IsFloat():
		f, err := strconv.ParseFloat(s, k.Bits())
		if err != nil {
			return Number{}, fmt.Errorf("can't parse %q as %s: %w", s, k, err)
		}
		return Number{kind: k, f: f}, nil
	case k == U128 || k == I128:
		v, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return Number{}, fmt.Errorf("can't parse %q as %s", s, k)
		}
		if k == U128 {
			return FromU128(v)
		}
		return FromI128(v)
	case k.IsUnsigned():
		u, err := strconv.ParseUint(s, 10, k.Bits())
		if err != nil {
			return Number{}, fmt.Errorf("can't parse %q as %s: %w", s, k, err)
		}
		return Number{kind: k, u: u}, nil
	case k.IsSigned():
		i, err := strconv.ParseInt(s, 10, k.Bits())
		if err != nil {
			return Number{}, fmt.Errorf("can't parse %q as %s: %w", s, k, err)
		}
		return Number{kind: k, i: i}, nil
	}
	return Number{}, fmt.Errorf("%w: %d", ErrBadKind, k)
}
