package node

type compileOpts struct {
	strict    bool
	noDefault bool
}

type CompileOption func(*compileOpts)

// Strict makes Compile reject schemas which are unsatisfiable or whose
// enums have variants accepting a common value.
func Strict() CompileOption {
	return func(o *compileOpts) { o.strict = true }
}

// NoDefaults makes Compile return a tree without the schema defaults
// applied.
func NoDefaults() CompileOption {
	return func(o *compileOpts) { o.noDefault = true }
}

func makeCompileOpts(opts []CompileOption) *compileOpts {
	o := &compileOpts{}
	for _, f := range opts {
		f(o)
	}
	return o
}
