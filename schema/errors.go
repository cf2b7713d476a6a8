package schema

import "errors"

var (
	ErrSchema        = errors.New("schema error")
	ErrUnknownRef    = errors.New("unknown reference")
	ErrUnsatisfiable = errors.New("unsatisfiable schema")
)
