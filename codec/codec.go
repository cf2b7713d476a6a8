package codec

import (
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
	"github.com/signadot/configurator/value"
)

// Decode parses a YAML or JSON document into a generic value. An empty
// document decodes to Empty.
func Decode(d []byte, opts ...Option) (value.Value, error) {
	var v any
	if err := yaml.UnmarshalWithOptions(d, &v, yaml.UseOrderedMap()); err != nil {
		return value.Empty, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if v == nil && isBlank(d) {
		return value.Empty, nil
	}
	return FromAny(v)
}

// DecodeReader is Decode on the contents of r.
func DecodeReader(r io.Reader, opts ...Option) (value.Value, error) {
	d, err := io.ReadAll(r)
	if err != nil {
		return value.Empty, err
	}
	return Decode(d, opts...)
}

func isBlank(d []byte) bool {
	inComment := false
	for _, c := range d {
		switch {
		case inComment:
			inComment = c != '\n'
		case c == '#':
			inComment = true
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
		default:
			return false
		}
	}
	return true
}

// Encode renders v in the configured format.
func Encode(v value.Value, opts ...Option) ([]byte, error) {
	o := makeOptions(opts)
	a, err := ToAny(v)
	if err != nil {
		return nil, err
	}
	var yopts []yaml.EncodeOption
	if o.format.IsJSON() {
		yopts = append(yopts, yaml.JSON())
	} else {
		yopts = append(yopts, yaml.Indent(o.indent))
	}
	d, err := yaml.MarshalWithOptions(a, yopts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return d, nil
}

// EncodeTo writes Encode(v) to w.
func EncodeTo(w io.Writer, v value.Value, opts ...Option) error {
	d, err := Encode(v, opts...)
	if err != nil {
		return err
	}
	_, err = w.Write(d)
	return err
}
