package node

import (
	"slices"

	"github.com/signadot/configurator/num"
	"github.com/signadot/configurator/omap"
	"github.com/signadot/configurator/value"
)

// Container wraps one Node with the state shared by every node: its
// schema default, whether it holds explicitly set data, whether it was
// instantiated from a template and its descriptive metadata.
type Container struct {
	Node        Node
	Default     *value.Value
	Modified    bool
	Removable   bool
	Title       string
	Description string
}

// Node is the payload of a Container. The set of implementations is
// closed: *Null, *Bool, *String, *Number, *Object, *Array, *Enum,
// *Literal and *Any.
type Node interface {
	Kind() Kind
	clone() Node
}

type Null struct{}

type Bool struct {
	Value bool
	Bound bool
}

type String struct {
	Value string
	Bound bool
}

// Number holds a number. NumKind is the representation declared by the
// schema; Value keeps the representation it was applied with. Display is
// the text shown for editing and may not parse.
type Number struct {
	NumKind num.Kind
	Value   num.Number
	Bound   bool
	Display string
}

// Object holds named children in order. Template, when set, is
// instantiated for keys outside the declared fields.
type Object struct {
	Fields   *omap.Map[*Container]
	Template *Template

	// shape of the last applied value, reproduced by ToValue.
	shape value.Kind
	tag   string
	// the payload of a named tuple shaped value had several items.
	tupled bool
}

// Array holds the current elements, instantiated from Item for
// homogeneous arrays or from Items position by position.
type Array struct {
	Item   *Template
	Items  []*Template
	Values []*Container
	Bound  bool

	shape value.Kind
	name  string
}

// Enum holds alternatives. Selected is the index of the variant chosen by
// the last applied value, or -1, and Instance its instantiated subtree.
type Enum struct {
	Variants []*Template
	Selected int
	Instance *Container

	// the applied value was Some(x) and x matched the selection.
	wrapSome bool
}

// Literal accepts exactly one value.
type Literal struct {
	Value value.Value
}

// Any accepts every value and passes it through unchanged.
type Any struct {
	Value value.Value
	Bound bool
}

func (*Null) Kind() Kind    { return NullKind }
func (*Bool) Kind() Kind    { return BoolKind }
func (*String) Kind() Kind  { return StringKind }
func (*Number) Kind() Kind  { return NumberKind }
func (*Object) Kind() Kind  { return ObjectKind }
func (*Array) Kind() Kind   { return ArrayKind }
func (*Enum) Kind() Kind    { return EnumKind }
func (*Literal) Kind() Kind { return LiteralKind }
func (*Any) Kind() Kind     { return AnyKind }

func (n *Null) clone() Node    { return &Null{} }
func (n *Bool) clone() Node    { c := *n; return &c }
func (n *String) clone() Node  { c := *n; return &c }
func (n *Number) clone() Node  { c := *n; return &c }
func (n *Literal) clone() Node { return &Literal{Value: n.Value.Clone()} }
func (n *Any) clone() Node     { return &Any{Value: n.Value.Clone(), Bound: n.Bound} }

func (n *Object) clone() Node {
	c := *n
	c.Fields = n.Fields.Clone((*Container).Clone)
	return &c
}

func (n *Array) clone() Node {
	c := *n
	if n.Values != nil {
		c.Values = make([]*Container, len(n.Values))
		for i, v := range n.Values {
			c.Values[i] = v.Clone()
		}
	}
	return &c
}

func (n *Enum) clone() Node {
	c := *n
	c.Variants = slices.Clone(n.Variants)
	if n.Instance != nil {
		c.Instance = n.Instance.Clone()
	}
	return &c
}

func NewNumber(k num.Kind) *Number { return &Number{NumKind: k} }

func NewObject() *Object {
	return &Object{Fields: omap.New[*Container]()}
}

func NewEnum(variants ...*Template) *Enum {
	return &Enum{Variants: variants, Selected: -1}
}

// NewContainer wraps n in an unmodified container without metadata.
func NewContainer(n Node) *Container {
	return &Container{Node: n}
}

// Clone returns an independent copy of c. Templates are shared.
func (c *Container) Clone() *Container {
	res := *c
	res.Node = c.Node.clone()
	if c.Default != nil {
		d := c.Default.Clone()
		res.Default = &d
	}
	return &res
}

func (c *Container) Kind() Kind { return c.Node.Kind() }

// template returns the template of element i.
func (a *Array) template(i int) *Template {
	if a.Item != nil {
		return a.Item
	}
	if i < len(a.Items) {
		return a.Items[i]
	}
	return nil
}

// IsPositional reports whether a has one template per position.
func (a *Array) IsPositional() bool { return a.Item == nil }

// Selection returns the selected variant instance, or nil.
func (e *Enum) Selection() *Container {
	if e.Selected < 0 {
		return nil
	}
	return e.Instance
}

func (e *Enum) clear() {
	e.Selected = -1
	e.Instance = nil
	e.wrapSome = false
}

// selectVariant makes variant i the selection, keeping the instance when
// i is already selected.
func (e *Enum) selectVariant(i int) *Container {
	if i != e.Selected || e.Instance == nil {
		e.Instance = e.Variants[i].Instantiate()
	}
	e.Selected = i
	return e.Instance
}
