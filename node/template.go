package node

import "github.com/signadot/configurator/schema"

// Template is an immutable compiled subtree. It is shared between all
// the places which instantiate it and is never modified after Compile
// returns.
type Template struct {
	c *Container

	// set while the template awaits compilation.
	schema *schema.Schema
	at     *Path
}

func newTemplate(c *Container) *Template {
	return &Template{c: c}
}

// Instantiate returns a fresh copy of the template.
func (t *Template) Instantiate() *Container {
	return t.c.Clone()
}

// Container returns the template tree. It must not be modified.
func (t *Template) Container() *Container {
	return t.c
}
