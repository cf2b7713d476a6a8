package document

import (
	"io"
	"log/slog"

	"github.com/signadot/configurator/node"
)

type options struct {
	log     *slog.Logger
	system  []Source
	user    Source
	sink    Sink
	home    string
	compile []node.CompileOption
	masked  map[string]bool
}

type Option func(*options)

// WithLogger sets the logger, which discards everything by default.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithSystem replaces the system layers named by the schema.
func WithSystem(srcs ...Source) Option {
	return func(o *options) { o.system = srcs }
}

// WithUser replaces the user layer named by the schema.
func WithUser(src Source) Option {
	return func(o *options) { o.user = src }
}

// WithSink replaces the destination of written back data. It defaults to
// the write path of the schema, then to the user layer.
func WithSink(s Sink) Option {
	return func(o *options) { o.sink = s }
}

// WithHome sets the directory the user layer path of a schema is relative
// to, the home directory by default.
func WithHome(dir string) Option {
	return func(o *options) { o.home = dir }
}

// WithCompileOptions passes options to node.Compile.
func WithCompileOptions(opts ...node.CompileOption) Option {
	return func(o *options) { o.compile = append(o.compile, opts...) }
}

// WithMasked makes OpenAll skip the given application ids.
func WithMasked(appIDs ...string) Option {
	return func(o *options) {
		for _, id := range appIDs {
			o.masked[id] = true
		}
	}
}

func makeOptions(opts []Option) *options {
	o := &options{masked: map[string]bool{}}
	for _, opt := range opts {
		opt(o)
	}
	if o.log == nil {
		o.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o
}
