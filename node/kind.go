package node

import "fmt"

// Kind identifies the variant of a Node.
type Kind int

const (
	NullKind Kind = iota
	BoolKind
	StringKind
	NumberKind
	ObjectKind
	ArrayKind
	EnumKind
	LiteralKind
	AnyKind
)

func (k Kind) String() string {
	s, ok := map[Kind]string{
		NullKind:    "Null",
		BoolKind:    "Bool",
		StringKind:  "String",
		NumberKind:  "Number",
		ObjectKind:  "Object",
		ArrayKind:   "Array",
		EnumKind:    "Enum",
		LiteralKind: "Literal",
		AnyKind:     "Any",
	}[k]
	if ok {
		return s
	}
	return "<unknown kind>"
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(d []byte) error {
	for _, kk := range Kinds() {
		if kk.String() == string(d) {
			*k = kk
			return nil
		}
	}
	return fmt.Errorf("unrecognized node kind %q", d)
}

func Kinds() []Kind {
	return []Kind{
		NullKind,
		BoolKind,
		StringKind,
		NumberKind,
		ObjectKind,
		ArrayKind,
		EnumKind,
		LiteralKind,
		AnyKind,
	}
}

// IsLeaf reports whether nodes of kind k have no children.
func (k Kind) IsLeaf() bool {
	switch k {
	case ObjectKind, ArrayKind, EnumKind:
		return false
	default:
		return true
	}
}
