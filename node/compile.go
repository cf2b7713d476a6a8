package node

import (
	"fmt"

	"github.com/signadot/configurator/debug"
	"github.com/signadot/configurator/num"
	"github.com/signadot/configurator/omap"
	"github.com/signadot/configurator/schema"
	"github.com/signadot/configurator/value"
)

type compiler struct {
	root       *schema.Root
	defs       map[string]*Container
	inProgress map[string]bool
	templates  map[*schema.Schema]*Template
	pending    []*Template
	any        *Template
}

// Compile turns a schema document into an unmodified tree holding the
// schema defaults.
func Compile(root *schema.Root, opts ...CompileOption) (*Container, error) {
	o := makeCompileOpts(opts)
	if root == nil || root.Schema == nil {
		return nil, schemaErrorf(RootPath(), "no schema")
	}
	if o.strict {
		if err := schema.CheckSatisfiable(root); err != nil {
			return nil, &SchemaError{Path: "$", Message: "unsatisfiable", Err: err}
		}
	}
	c := &compiler{
		root:       root,
		defs:       map[string]*Container{},
		inProgress: map[string]bool{},
		templates:  map[*schema.Schema]*Template{},
		any:        newTemplate(NewContainer(&Any{})),
	}
	res, err := c.compile(root.Schema, RootPath())
	if err != nil {
		return nil, err
	}
	for len(c.pending) != 0 {
		t := c.pending[0]
		c.pending = c.pending[1:]
		if err := c.force(t); err != nil {
			return nil, err
		}
	}
	overlaps := CheckEnumOverlap(res)
	for _, ov := range overlaps {
		if o.strict {
			return nil, schemaErrorf(ov.Path, "%s", ov)
		}
		if debug.Compile() {
			debug.Logf("compile: %s\n", ov)
		}
	}
	if !o.noDefault {
		if err := res.ApplyValue(value.Empty, false); err != nil {
			return nil, &SchemaError{Path: "$", Message: "defaults do not match the schema", Err: err}
		}
	}
	return res, nil
}

// CompileSchema compiles a schema without definitions.
func CompileSchema(s *schema.Schema, opts ...CompileOption) (*Container, error) {
	return Compile(&schema.Root{Schema: s, Definitions: omap.New[*schema.Schema]()}, opts...)
}

func (c *compiler) template(s *schema.Schema, at *Path) *Template {
	if t, ok := c.templates[s]; ok {
		return t
	}
	t := &Template{schema: s, at: at}
	c.templates[s] = t
	c.pending = append(c.pending, t)
	return t
}

func (c *compiler) force(t *Template) error {
	if t.schema == nil {
		return nil
	}
	s, at := t.schema, t.at
	t.schema, t.at = nil, nil
	res, err := c.compile(s, at)
	if err != nil {
		return err
	}
	t.c = res
	return nil
}

// compile starts from Any and combines in turn the instance types, the
// object, enumeration, array, combinator and reference facets of s.
func (c *compiler) compile(s *schema.Schema, at *Path) (*Container, error) {
	if s.Never {
		return nil, schemaErrorf(at, "the false schema accepts nothing")
	}
	res := NewContainer(&Any{})

	switch len(s.Types) {
	case 0:
	case 1:
		res = combine(res, NewContainer(c.typeNode(s.Types[0], s.Format)))
	default:
		variants := make([]*Template, len(s.Types))
		for i, t := range s.Types {
			variants[i] = newTemplate(NewContainer(c.typeNode(t, s.Format)))
		}
		res = combine(res, NewContainer(NewEnum(variants...)))
	}

	if s.HasObject() {
		obj := NewObject()
		for name, ps := range s.Properties.All() {
			child, err := c.compile(ps, at.WithField(name))
			if err != nil {
				return nil, err
			}
			obj.Fields.Set(name, child)
		}
		if s.Properties.Len() == 0 && s.AdditionalProperties != nil {
			obj.Template = c.template(s.AdditionalProperties, at.WithField("*"))
		}
		res = combine(res, NewContainer(obj))
	}

	if s.Enum != nil {
		switch len(s.Enum) {
		case 0:
			return nil, schemaErrorf(at, "empty enumeration")
		case 1:
			res = combine(res, NewContainer(&Literal{Value: s.Enum[0]}))
		default:
			variants := make([]*Template, len(s.Enum))
			for i, v := range s.Enum {
				variants[i] = newTemplate(NewContainer(&Literal{Value: v}))
			}
			res = combine(res, NewContainer(NewEnum(variants...)))
		}
	}
	if s.Const != nil {
		res = combine(res, NewContainer(&Literal{Value: *s.Const}))
	}

	if s.HasArray() {
		arr := &Array{}
		if s.Items != nil {
			arr.Item = c.template(s.Items, at.WithIndex(0))
		} else {
			arr.Items = make([]*Template, len(s.TupleItems))
			for i, is := range s.TupleItems {
				arr.Items[i] = c.template(is, at.WithIndex(i))
			}
		}
		res = combine(res, NewContainer(arr))
	}

	if s.AllOf != nil {
		all := NewContainer(&Any{})
		for i, as := range s.AllOf {
			child, err := c.compile(as, at)
			if err != nil {
				return nil, fmt.Errorf("allOf[%d]: %w", i, err)
			}
			all = combine(all, child)
		}
		res = combine(res, all)
	}
	for _, alts := range [][]*schema.Schema{s.OneOf, s.AnyOf} {
		if alts == nil {
			continue
		}
		if len(alts) == 0 {
			return nil, schemaErrorf(at, "empty list of alternatives")
		}
		variants := make([]*Template, len(alts))
		for i, as := range alts {
			variants[i] = c.template(as, at)
		}
		res = combine(res, NewContainer(NewEnum(variants...)))
	}

	if s.Ref != "" {
		def, err := c.ref(s.Ref, at)
		if err != nil {
			return nil, err
		}
		res = combine(res, def)
	}

	if s.Title != "" {
		res.Title = s.Title
	}
	if s.Description != "" {
		res.Description = s.Description
	}
	if s.Default != nil {
		d := s.Default.Clone()
		res.Default = &d
	}
	if debug.Compile() {
		debug.Logf("compile %s: %s\n", at, res.Kind())
	}
	return res, nil
}

func (c *compiler) typeNode(t schema.InstanceType, format string) Node {
	switch t {
	case schema.NullType:
		return &Null{}
	case schema.BooleanType:
		return &Bool{}
	case schema.ObjectType:
		return NewObject()
	case schema.ArrayType:
		return &Array{Item: c.any}
	case schema.StringType:
		return &String{}
	case schema.IntegerType:
		k, ok := num.KindFromFormat(format)
		if !ok {
			k = num.I128
		}
		return NewNumber(k)
	case schema.NumberType:
		k, ok := num.KindFromFormat(format)
		if !ok {
			k = num.F64
		}
		return NewNumber(k)
	}
	panic(fmt.Sprintf("bad instance type %d", t))
}

func (c *compiler) ref(ref string, at *Path) (*Container, error) {
	name, def, err := c.root.Resolve(ref)
	if err != nil {
		return nil, &SchemaError{Path: at.String(), Message: "bad reference", Err: err}
	}
	if res, ok := c.defs[name]; ok {
		return res.Clone(), nil
	}
	if c.inProgress[name] {
		return nil, schemaErrorf(at, "reference cycle through %q does not pass through an array, a map or an enum", name)
	}
	c.inProgress[name] = true
	res, err := c.compile(def, at)
	delete(c.inProgress, name)
	if err != nil {
		return nil, err
	}
	c.defs[name] = res
	return res.Clone(), nil
}

// combine merges two compiled facets of one schema. Any is neutral,
// objects union their fields, a facet of the same kind as one of the
// variants of an instance type enum refines that variant and anything
// else is replaced by b.
func combine(a, b *Container) *Container {
	switch {
	case b.Kind() == AnyKind:
		return a
	case a.Kind() == AnyKind:
		return b
	case a.Kind() == ObjectKind && b.Kind() == ObjectKind:
		ao, bo := a.Node.(*Object), b.Node.(*Object)
		for name, f := range bo.Fields.All() {
			ao.Fields.Set(name, f)
		}
		if bo.Template != nil {
			ao.Template = bo.Template
		}
		if b.Title != "" {
			a.Title = b.Title
		}
		if b.Description != "" {
			a.Description = b.Description
		}
		if b.Default != nil {
			a.Default = b.Default
		}
		return a
	case a.Kind() == EnumKind && b.Kind() != EnumKind && b.Kind() != LiteralKind:
		// a facet refining one of several instance types.
		e := a.Node.(*Enum)
		for i, v := range e.Variants {
			if v.c != nil && v.c.Kind() == b.Kind() {
				e.Variants[i] = newTemplate(combine(v.c.Clone(), b))
				return a
			}
		}
	}
	return b
}
