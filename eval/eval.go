package eval

import (
	"errors"
	"fmt"
	"os"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/signadot/configurator/codec"
	"github.com/signadot/configurator/debug"
	"github.com/signadot/configurator/value"
)

var (
	ErrEval = errors.New("eval error")
	ErrPath = errors.New("path error")
)

type options struct {
	getenv func(string) string
	vars   Env
}

type Option func(*options)

// Getenv sets the lookup used by the getenv script function, os.Getenv by
// default.
func Getenv(f func(string) string) Option {
	return func(o *options) { o.getenv = f }
}

// Vars adds variables to expressions. They take precedence over the
// fields of the document but not over config.
func Vars(env Env) Option {
	return func(o *options) { o.vars = env }
}

// Evaluator evaluates expressions against one document value.
type Evaluator struct {
	doc      value.Value
	env      Env
	exprOpts []expr.Option
}

func New(doc value.Value, opts ...Option) (*Evaluator, error) {
	o := &options{getenv: os.Getenv}
	for _, opt := range opts {
		opt(o)
	}
	env, err := NewEnv(doc)
	if err != nil {
		return nil, err
	}
	for k, v := range o.vars {
		if k != ConfigName {
			env[k] = v
		}
	}
	return &Evaluator{doc: doc, env: env, exprOpts: exprOpts(doc, o)}, nil
}

// Query evaluates src against doc.
func Query(doc value.Value, src string, opts ...Option) (value.Value, error) {
	e, err := New(doc, opts...)
	if err != nil {
		return value.Empty, err
	}
	return e.Eval(src)
}

// Eval evaluates src and converts the result to a value. A nil result is
// Option(None).
func (e *Evaluator) Eval(src string) (value.Value, error) {
	x, err := e.run(src)
	if err != nil {
		return value.Empty, err
	}
	res, err := codec.FromAny(x)
	if err != nil {
		return value.Empty, fmt.Errorf("%w: result of %q: %w", ErrEval, src, err)
	}
	return res, nil
}

func (e *Evaluator) run(src string) (any, error) {
	prg, err := expr.Compile(src, e.exprOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: compiling %q: %w", ErrEval, src, err)
	}
	x, err := vm.Run(prg, map[string]any(e.env))
	if err != nil {
		return nil, fmt.Errorf("%w: evaluating %q: %w", ErrEval, src, err)
	}
	if debug.Eval() {
		debug.Logf("eval %q gave %#v\n", src, x)
	}
	return x, nil
}
