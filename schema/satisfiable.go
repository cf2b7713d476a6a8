package schema

import (
	"fmt"

	"github.com/go-air/gini"
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"
	"github.com/signadot/configurator/debug"
	"github.com/signadot/configurator/value"
)

// varDef identifies a variable: (position, type) pair
type varDef struct {
	position string
	typeName string
}

type formulaBuilder struct {
	c           *logic.C
	root        *Root
	path        string
	vars        map[varDef]z.Lit
	mutexes     map[string][]z.Lit
	checkingDef string
	expanding   map[string]bool
	err         error
}

func newFormulaBuilder(checkingDef string, root *Root) *formulaBuilder {
	return &formulaBuilder{
		c:           logic.NewC(),
		root:        root,
		vars:        map[varDef]z.Lit{},
		mutexes:     map[string][]z.Lit{},
		checkingDef: checkingDef,
		expanding:   map[string]bool{},
	}
}

// build returns a literal which is true for assignments of value types
// accepted by s. Facets of one schema are conjoined.
func (b *formulaBuilder) build(s *Schema) z.Lit {
	if b.err != nil {
		return b.c.F
	}
	if s == nil {
		return b.c.T
	}
	if s.Never {
		return b.c.F
	}
	lits := []z.Lit{}
	if len(s.Types) != 0 {
		types := make([]z.Lit, len(s.Types))
		for i, t := range s.Types {
			types[i] = b.getVar(t.String())
		}
		lits = append(lits, b.c.Ors(types...))
	}
	if s.HasObject() {
		lits = append(lits, b.buildObject(s))
	}
	if s.HasArray() {
		lits = append(lits, b.buildArray(s))
	}
	if s.Const != nil {
		lits = append(lits, b.literal(*s.Const))
	}
	if s.Enum != nil {
		alts := make([]z.Lit, len(s.Enum))
		for i, e := range s.Enum {
			alts[i] = b.literal(e)
		}
		lits = append(lits, b.c.Ors(alts...))
	}
	if s.AllOf != nil {
		lits = append(lits, b.buildAll(s.AllOf, true))
	}
	if s.OneOf != nil {
		lits = append(lits, b.buildAll(s.OneOf, false))
	}
	if s.AnyOf != nil {
		lits = append(lits, b.buildAll(s.AnyOf, false))
	}
	if s.Ref != "" {
		lits = append(lits, b.buildRef(s.Ref))
	}
	if len(lits) == 0 {
		return b.c.T
	}
	return b.c.Ands(lits...)
}

func (b *formulaBuilder) buildAll(ss []*Schema, isAnd bool) z.Lit {
	if len(ss) == 0 {
		if isAnd {
			return b.c.T
		}
		return b.c.F
	}
	lits := make([]z.Lit, len(ss))
	for i, s := range ss {
		lits[i] = b.build(s)
	}
	if isAnd {
		return b.c.Ands(lits...)
	}
	return b.c.Ors(lits...)
}

func (b *formulaBuilder) buildRef(ref string) z.Lit {
	name, def, err := b.root.Resolve(ref)
	if err != nil {
		b.err = err
		return b.c.F
	}
	// self reference: the definition must be satisfiable without it.
	if name == b.checkingDef {
		return b.c.F
	}
	// a cycle not passing through the checked definition is checked on
	// its own.
	if b.expanding[name] {
		return b.c.F
	}
	b.expanding[name] = true
	defer delete(b.expanding, name)
	return b.build(def)
}

// buildObject requires the object type at the current position and the
// schemas of required properties at their own positions. Optional
// properties may be absent and so never constrain satisfiability.
func (b *formulaBuilder) buildObject(s *Schema) z.Lit {
	lits := []z.Lit{b.getVar(ObjectType.String())}
	savedPath := b.path
	for name, ps := range s.Properties.All() {
		if !s.IsRequired(name) {
			continue
		}
		b.path = savedPath + "/" + EscapeRef(name)
		lits = append(lits, b.build(ps))
	}
	b.path = savedPath
	return b.c.Ands(lits...)
}

// buildArray: homogeneous arrays may be empty, positional arrays need
// every position.
func (b *formulaBuilder) buildArray(s *Schema) z.Lit {
	lits := []z.Lit{b.getVar(ArrayType.String())}
	savedPath := b.path
	for i, is := range s.TupleItems {
		b.path = fmt.Sprintf("%s[%d]", savedPath, i)
		lits = append(lits, b.build(is))
	}
	b.path = savedPath
	return b.c.Ands(lits...)
}

func (b *formulaBuilder) literal(v value.Value) z.Lit {
	switch v.Kind {
	case value.OptionKind:
		if v.Elem == nil {
			return b.getVar(NullType.String())
		}
		return b.literal(*v.Elem)
	case value.UnitKind:
		return b.getVar(NullType.String())
	case value.BoolKind:
		return b.getVar(BooleanType.String())
	case value.NumberKind:
		return b.c.Ors(b.getVar(NumberType.String()), b.getVar(IntegerType.String()))
	case value.StringKind, value.CharKind, value.UnitStructKind:
		return b.getVar(StringType.String())
	case value.ListKind, value.TupleKind:
		return b.getVar(ArrayType.String())
	case value.StructKind, value.MapKind, value.NamedTupleKind:
		return b.getVar(ObjectType.String())
	}
	return b.c.T
}

// getVar gets or creates a variable for (position, type)
func (b *formulaBuilder) getVar(typeName string) z.Lit {
	key := varDef{b.path, typeName}
	if lit, ok := b.vars[key]; ok {
		return lit
	}
	lit := b.c.Lit()
	b.vars[key] = lit
	b.mutexes[b.path] = append(b.mutexes[b.path], lit)
	return lit
}

// addMutexClauses forbids two types at the same position.
func (b *formulaBuilder) addMutexClauses(g *gini.Gini) {
	for _, lits := range b.mutexes {
		for i := 0; i < len(lits); i++ {
			for j := i + 1; j < len(lits); j++ {
				g.Add(lits[i].Not())
				g.Add(lits[j].Not())
				g.Add(0)
			}
		}
	}
}

func (b *formulaBuilder) satisfiable(formula z.Lit) bool {
	g := gini.New()
	b.c.ToCnf(g)
	b.addMutexClauses(g)
	g.Assume(formula)
	return g.Solve() == 1
}

// CheckSatisfiable returns an error wrapping ErrUnsatisfiable if the root
// schema, or a definition it reaches, cannot accept any value.
func CheckSatisfiable(r *Root) error {
	if r == nil || r.Schema == nil {
		return nil
	}
	reach, err := r.Reachable()
	if err != nil {
		return err
	}
	for _, name := range reach {
		def, _ := r.Definitions.Get(name)
		b := newFormulaBuilder(name, r)
		b.expanding[name] = true
		formula := b.build(def)
		if b.err != nil {
			return fmt.Errorf("definition %q: %w", name, b.err)
		}
		ok := b.satisfiable(formula)
		if debug.Schema() {
			debug.Logf("satisfiable %q: %v\n", name, ok)
		}
		if !ok {
			return fmt.Errorf("%w: definition %q has an impossible cycle, no escape exists", ErrUnsatisfiable, name)
		}
	}
	b := newFormulaBuilder("", r)
	formula := b.build(r.Schema)
	if b.err != nil {
		return b.err
	}
	if !b.satisfiable(formula) {
		return fmt.Errorf("%w: no value can match the root schema", ErrUnsatisfiable)
	}
	return nil
}

// Reachable returns the names of the definitions reachable from the root
// schema in the order they are first referenced.
func (r *Root) Reachable() ([]string, error) {
	var res []string
	seen := map[string]bool{}
	var visit func(s *Schema) error
	visit = func(s *Schema) error {
		if s == nil {
			return nil
		}
		if s.Ref != "" {
			name, def, err := r.Resolve(s.Ref)
			if err != nil {
				return err
			}
			if !seen[name] {
				seen[name] = true
				res = append(res, name)
				if err := visit(def); err != nil {
					return err
				}
			}
		}
		for _, ps := range s.Properties.All() {
			if err := visit(ps); err != nil {
				return err
			}
		}
		children := [][]*Schema{{s.AdditionalProperties, s.Items}, s.TupleItems, s.AllOf, s.OneOf, s.AnyOf}
		for _, cs := range children {
			for _, c := range cs {
				if err := visit(c); err != nil {
					return err
				}
			}
		}
		return nil
	}
	if err := visit(r.Schema); err != nil {
		return nil, err
	}
	return res, nil
}
