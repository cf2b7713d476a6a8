package node

import (
	"fmt"
	"strconv"

	"github.com/go-air/gini"
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"
	"github.com/signadot/configurator/debug"
	"github.com/signadot/configurator/value"
)

// Overlap reports two variants of an enum which accept a common value.
// Since an enum selects the first accepting variant, the second can then
// never be selected for that value.
type Overlap struct {
	Path          *Path
	First, Second int
}

func (o Overlap) String() string {
	return fmt.Sprintf("%s: enum variants %d and %d accept a common value", o.Path, o.First, o.Second)
}

// CheckEnumOverlap checks every pair of variants of every enum in c,
// templates included.
//
// Each variant is translated into a boolean formula over variables per
// (position, value type), per (position, literal) and per (position, key
// presence), with mutual exclusion of the types, literals and array
// lengths at one position; a pair overlaps when the conjunction of their
// formulas is satisfiable. Recursion through templates and homogeneous
// array elements are not constrained, so an overlap can be reported for
// values which are merely structurally similar.
func CheckEnumOverlap(c *Container) []Overlap {
	var res []Overlap
	seen := map[*Template]bool{}
	visitEnums(c, RootPath(), seen, func(p *Path, e *Enum) {
		for i := range e.Variants {
			for j := i + 1; j < len(e.Variants); j++ {
				if variantsOverlap(e.Variants[i], e.Variants[j]) {
					ov := Overlap{Path: p, First: i, Second: j}
					if debug.Overlap() {
						debug.Logf("%s\n", ov)
					}
					res = append(res, ov)
				}
			}
		}
	})
	return res
}

func visitEnums(c *Container, p *Path, seen map[*Template]bool, f func(*Path, *Enum)) {
	visitTemplate := func(t *Template, p *Path) {
		if t == nil || t.c == nil || seen[t] {
			return
		}
		seen[t] = true
		visitEnums(t.c, p, seen, f)
	}
	switch n := c.Node.(type) {
	case *Object:
		for name, fc := range n.Fields.All() {
			visitEnums(fc, p.WithField(name), seen, f)
		}
		visitTemplate(n.Template, p.WithField("*"))
	case *Array:
		all := fromSteps(append(p.steps(), &Path{IndexAll: true}))
		visitTemplate(n.Item, all)
		for i, t := range n.Items {
			visitTemplate(t, p.WithIndex(i))
		}
	case *Enum:
		f(p, n)
		for _, t := range n.Variants {
			visitTemplate(t, p)
		}
	}
}

func variantsOverlap(a, b *Template) bool {
	keys := map[string]map[string]bool{}
	collect := newOverlapBuilder(keys, true)
	collect.build(a.c, "")
	collect.build(b.c, "")

	ob := newOverlapBuilder(keys, false)
	fa := ob.build(a.c, "")
	fb := ob.build(b.c, "")
	return ob.satisfiable(ob.c.Ands(fa, fb))
}

type overlapVar struct {
	position string
	name     string
}

type overlapBuilder struct {
	c         *logic.C
	vars      map[overlapVar]z.Lit
	mutexes   map[string][]z.Lit
	keys      map[string]map[string]bool
	collect   bool
	expanding map[*Template]bool
}

func newOverlapBuilder(keys map[string]map[string]bool, collect bool) *overlapBuilder {
	return &overlapBuilder{
		c:         logic.NewC(),
		vars:      map[overlapVar]z.Lit{},
		mutexes:   map[string][]z.Lit{},
		keys:      keys,
		collect:   collect,
		expanding: map[*Template]bool{},
	}
}

// getVar gets or creates a variable. Variables of one mutex group are
// pairwise exclusive; an empty group means no constraint.
func (b *overlapBuilder) getVar(position, name, group string) z.Lit {
	key := overlapVar{position, name}
	if lit, ok := b.vars[key]; ok {
		return lit
	}
	lit := b.c.Lit()
	b.vars[key] = lit
	if group != "" {
		b.mutexes[group] = append(b.mutexes[group], lit)
	}
	return lit
}

func (b *overlapBuilder) typeVar(pos, typeName string) z.Lit {
	return b.getVar(pos, typeName, pos+"#type")
}

func (b *overlapBuilder) template(t *Template, pos string) z.Lit {
	if t == nil || t.c == nil || b.expanding[t] {
		return b.c.T
	}
	b.expanding[t] = true
	defer delete(b.expanding, t)
	return b.build(t.c, pos)
}

func (b *overlapBuilder) build(c *Container, pos string) z.Lit {
	switch n := c.Node.(type) {
	case *Null:
		return b.typeVar(pos, "null")
	case *Bool:
		return b.typeVar(pos, "bool")
	case *String:
		return b.typeVar(pos, "string")
	case *Number:
		return b.typeVar(pos, "number")
	case *Any:
		return b.c.T
	case *Literal:
		return b.literal(n.Value, pos)
	case *Enum:
		alts := make([]z.Lit, len(n.Variants))
		for i, t := range n.Variants {
			alts[i] = b.template(t, pos)
		}
		return b.c.Ors(alts...)
	case *Array:
		parts := []z.Lit{b.typeVar(pos, "array")}
		if n.IsPositional() {
			parts = append(parts, b.getVar(pos, "len:"+strconv.Itoa(len(n.Items)), pos+"#len"))
			for i, t := range n.Items {
				parts = append(parts, b.template(t, pos+"["+strconv.Itoa(i)+"]"))
			}
		}
		return b.c.Ands(parts...)
	case *Object:
		return b.object(n, pos)
	}
	panic("unknown node type")
}

func (b *overlapBuilder) object(o *Object, pos string) z.Lit {
	parts := []z.Lit{b.typeVar(pos, "object")}
	declared := map[string]bool{}
	for name, f := range o.Fields.All() {
		if f.Removable {
			continue
		}
		declared[name] = true
		fpos := pos + "/" + strconv.Quote(name)
		if b.collect {
			if b.keys[pos] == nil {
				b.keys[pos] = map[string]bool{}
			}
			b.keys[pos][name] = true
		}
		present := b.getVar(fpos, "present", "")
		child := b.build(f, fpos)
		if f.isRequired() {
			parts = append(parts, present, child)
		} else {
			parts = append(parts, b.c.Ors(present.Not(), child))
		}
	}
	if o.Template == nil {
		for name := range b.keys[pos] {
			if !declared[name] {
				parts = append(parts, b.getVar(pos+"/"+strconv.Quote(name), "present", "").Not())
			}
		}
	}
	return b.c.Ands(parts...)
}

func (b *overlapBuilder) literal(v value.Value, pos string) z.Lit {
	var key, typeName string
	switch v.Kind {
	case value.UnitKind:
		return b.typeVar(pos, "null")
	case value.OptionKind:
		if v.Elem == nil {
			return b.typeVar(pos, "null")
		}
		return b.literal(*v.Elem, pos)
	case value.BoolKind:
		key, typeName = strconv.FormatBool(v.Bool), "bool"
	case value.NumberKind:
		key, typeName = strconv.FormatFloat(v.Number.AsF64(), 'g', -1, 64), "number"
	case value.StringKind:
		key, typeName = v.Str, "string"
	case value.UnitStructKind:
		key, typeName = v.Name, "string"
	case value.ListKind, value.TupleKind:
		key, typeName = string(v.AppendKey(nil)), "array"
	case value.StructKind, value.MapKind, value.NamedTupleKind:
		key, typeName = string(v.AppendKey(nil)), "object"
	default:
		key, typeName = string(v.AppendKey(nil)), v.Kind.String()
	}
	lit := b.getVar(pos, typeName+":"+key, pos+"#lit")
	return b.c.Ands(lit, b.typeVar(pos, typeName))
}

func (b *overlapBuilder) satisfiable(formula z.Lit) bool {
	g := gini.New()
	b.c.ToCnf(g)
	for _, lits := range b.mutexes {
		for i := 0; i < len(lits); i++ {
			for j := i + 1; j < len(lits); j++ {
				g.Add(lits[i].Not())
				g.Add(lits[j].Not())
				g.Add(0)
			}
		}
	}
	g.Assume(formula)
	return g.Solve() == 1
}
