package encode

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/signadot/configurator/node"
)

// EncState holds the settings and output of one Encode call.
type EncState struct {
	Color func(node.Kind, ColorAttr, string) string

	depth    int
	defaults bool
	comments bool

	w   *bufio.Writer
	err error
}

func (es *EncState) color(k node.Kind, a ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(k, a, s)
}

// Encode writes the tree rooted at c to w. Each line holds the field
// name or index of a container, its kind, its current data or '-' when
// unset, and '*' when it was modified.
func Encode(c *node.Container, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{w: bufio.NewWriter(w)}
	for _, opt := range opts {
		opt(es)
	}
	es.container("$", c, 0)
	if es.err != nil {
		return es.err
	}
	return es.w.Flush()
}

func (es *EncState) container(label string, c *node.Container, depth int) {
	if es.err != nil {
		return
	}
	if es.depth > 0 && depth >= es.depth {
		return
	}
	k := c.Kind()
	b := &strings.Builder{}
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(es.color(k, FieldColor, label))
	b.WriteString(": ")
	b.WriteString(es.color(k, KindColor, k.String()))
	if d := detail(c); d != "" {
		b.WriteByte(' ')
		b.WriteString(es.color(k, ValueColor, d))
	}
	if c.Modified {
		b.WriteByte(' ')
		b.WriteString(es.color(k, MarkColor, "*"))
	}
	if es.defaults && c.Default != nil {
		b.WriteByte(' ')
		b.WriteString(es.color(k, CommentColor, "default "+c.Default.String()))
	}
	if es.comments && c.Title != "" {
		b.WriteByte(' ')
		b.WriteString(es.color(k, CommentColor, "# "+c.Title))
	}
	b.WriteByte('\n')
	if _, err := es.w.WriteString(b.String()); err != nil {
		es.err = err
		return
	}

	switch n := c.Node.(type) {
	case *node.Object:
		for name, fc := range n.Fields.All() {
			es.container(fieldLabel(name), fc, depth+1)
		}
	case *node.Array:
		for i, e := range n.Values {
			es.container("["+strconv.Itoa(i)+"]", e, depth+1)
		}
	case *node.Enum:
		if inst := n.Selection(); inst != nil {
			es.container("variant "+strconv.Itoa(n.Selected), inst, depth+1)
		}
	}
}

func fieldLabel(name string) string {
	if name == "" || strings.ContainsAny(name, ": \t\n'\"") {
		return strconv.Quote(name)
	}
	return name
}

func detail(c *node.Container) string {
	switch n := c.Node.(type) {
	case *node.Bool:
		if !n.Bound {
			return "-"
		}
		return strconv.FormatBool(n.Value)
	case *node.String:
		if !n.Bound {
			return "-"
		}
		return strconv.Quote(n.Value)
	case *node.Number:
		if !n.Bound {
			return n.NumKind.String() + " -"
		}
		return n.NumKind.String() + " " + n.Display
	case *node.Literal:
		return n.Value.String()
	case *node.Any:
		if !n.Bound {
			return "-"
		}
		return n.Value.String()
	case *node.Object:
		if n.Template != nil {
			return fmt.Sprintf("{%d} open", n.Fields.Len())
		}
		return fmt.Sprintf("{%d}", n.Fields.Len())
	case *node.Array:
		if n.IsPositional() {
			return fmt.Sprintf("[%d] positional", len(n.Values))
		}
		return fmt.Sprintf("[%d]", len(n.Values))
	case *node.Enum:
		return fmt.Sprintf("%d variants", len(n.Variants))
	}
	return ""
}
