package libdiff

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// Colors holds the colouring functions of Fprint.
type Colors struct {
	Path   func(string, ...any) string
	Insert func(string, ...any) string
	Delete func(string, ...any) string
}

func NewColors() *Colors {
	return &Colors{
		Path:   color.RGB(128, 168, 196).SprintfFunc(),
		Insert: color.GreenString,
		Delete: color.RedString,
	}
}

func NoColors() *Colors {
	return &Colors{Path: fmt.Sprintf, Insert: fmt.Sprintf, Delete: fmt.Sprintf}
}

// Fprint writes d as one line per change: '-' for removed values, '+'
// for added ones and '~' for text and field order changes.
func Fprint(w io.Writer, d *Diff, c *Colors) error {
	if c == nil {
		c = NoColors()
	}
	p := &printer{w: w, c: c}
	p.diff("$", d)
	return p.err
}

type printer struct {
	w   io.Writer
	c   *Colors
	err error
}

func (p *printer) line(sign, path, body string) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, "%s %s: %s\n", sign, p.c.Path("%s", path), body)
}

func (p *printer) diff(path string, d *Diff) {
	if d == nil {
		return
	}
	switch d.Op {
	case Insert:
		p.line("+", path, p.c.Insert("%s", d.To))
	case Delete:
		p.line("-", path, p.c.Delete("%s", d.From))
	case Replace:
		p.line("-", path, p.c.Delete("%s", d.From))
		p.line("+", path, p.c.Insert("%s", d.To))
	case Nested:
		if d.ToOrder != nil {
			p.line("~", path, fmt.Sprintf("field order %v -> %v", d.FromOrder, d.ToOrder))
		}
		for k, fd := range d.Fields.All() {
			p.diff(path+"."+quoteField(k), fd)
		}
		idx := make([]int, 0, len(d.Items))
		for i := range d.Items {
			idx = append(idx, i)
		}
		slices.Sort(idx)
		for _, i := range idx {
			p.diff(path+"["+strconv.Itoa(i)+"]", d.Items[i])
		}
		p.diff(path, d.Elem)
		if d.Text != nil {
			var b strings.Builder
			for _, e := range d.Text {
				switch e.Op {
				case Equal:
					b.WriteString(e.Text)
				case Delete:
					b.WriteString(p.c.Delete("[-%s-]", e.Text))
				case Insert:
					b.WriteString(p.c.Insert("{+%s+}", e.Text))
				}
			}
			p.line("~", path, b.String())
		}
	}
}

func quoteField(f string) string {
	if f == "" || strings.IndexAny(f, "'.*$[]") != -1 {
		return "'" + strings.ReplaceAll(f, "'", "\\'") + "'"
	}
	return f
}
