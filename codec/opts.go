package codec

import "github.com/signadot/configurator/format"

type options struct {
	format format.Format
	indent int
}

type Option func(*options)

// Format sets the text format, YAML by default.
func Format(f format.Format) Option {
	return func(o *options) { o.format = f }
}

// Indent sets the indentation of encoded YAML.
func Indent(n int) Option {
	return func(o *options) { o.indent = n }
}

func makeOptions(opts []Option) *options {
	o := &options{format: format.YAMLFormat, indent: 2}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
