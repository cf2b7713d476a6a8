package node

import (
	"github.com/signadot/configurator/num"
	"github.com/signadot/configurator/value"
)

// RemoveValueRec clears every bound value, enum selection and array
// element list below c and marks the whole subtree unmodified. Objects
// keep their entries; the next ApplyValue drops those instantiated from a
// template.
func (c *Container) RemoveValueRec() {
	switch n := c.Node.(type) {
	case *Null, *Literal:
	case *Bool:
		n.Value, n.Bound = false, false
	case *String:
		n.Value, n.Bound = "", false
	case *Number:
		n.Value, n.Bound, n.Display = num.Number{}, false, ""
	case *Any:
		n.Value, n.Bound = value.Empty, false
	case *Object:
		for _, f := range n.Fields.All() {
			f.RemoveValueRec()
		}
	case *Enum:
		n.clear()
	case *Array:
		n.Values, n.Bound = nil, false
	default:
		panic("unknown node type")
	}
	c.Modified = false
}
