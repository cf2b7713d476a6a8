// Package gomap maps configuration values to and from Go values.
//
// Struct fields are named by their yaml tags, or their json tags, the way
// github.com/goccy/go-yaml resolves them.
package gomap

import (
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/signadot/configurator/codec"
	"github.com/signadot/configurator/format"
	"github.com/signadot/configurator/value"
)

type decodeOpts struct {
	strict bool
}

type DecodeOption func(*decodeOpts)

// Strict makes Decode fail on keys with no matching struct field.
func Strict(v bool) DecodeOption { return func(o *decodeOpts) { o.strict = v } }

// Decode stores v in the value pointed to by p.
func Decode(v value.Value, p any, opts ...DecodeOption) error {
	do := &decodeOpts{}
	for _, f := range opts {
		f(do)
	}
	if v.IsEmpty() {
		return nil
	}
	d, err := codec.Encode(v, codec.Format(format.JSONFormat))
	if err != nil {
		return err
	}
	var yopts []yaml.DecodeOption
	if do.strict {
		yopts = append(yopts, yaml.DisallowUnknownField())
	}
	if err := yaml.UnmarshalWithOptions(d, p, yopts...); err != nil {
		return fmt.Errorf("%w: %w", codec.ErrDecode, err)
	}
	return nil
}

// Encode returns the value of the Go value x. Struct fields keep their
// declaration order.
func Encode(x any) (value.Value, error) {
	d, err := yaml.Marshal(x)
	if err != nil {
		return value.Empty, fmt.Errorf("%w: %w", codec.ErrEncode, err)
	}
	return codec.Decode(d)
}
