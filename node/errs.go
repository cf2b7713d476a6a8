package node

import (
	"errors"
	"fmt"

	"github.com/signadot/configurator/value"
)

var (
	ErrSchema    = errors.New("schema error")
	ErrReconcile = errors.New("reconciliation error")
	ErrPath      = errors.New("path error")
	ErrEdit      = errors.New("edit error")
)

// SchemaError reports a schema shape which cannot be compiled.
type SchemaError struct {
	Path    string
	Message string
	Err     error
}

func (e *SchemaError) Error() string {
	msg := fmt.Sprintf("schema error at %s: %s", e.Path, e.Message)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *SchemaError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrSchema, e.Err}
	}
	return []error{ErrSchema}
}

// ReconcileError reports a value which could not be applied to a tree.
// The tree is left updated up to the failing subtree.
type ReconcileError struct {
	Path    string
	Value   value.Value
	Message string
}

func (e *ReconcileError) Error() string {
	return fmt.Sprintf("cannot apply %s at %s: %s", e.Value, e.Path, e.Message)
}

func (e *ReconcileError) Unwrap() error {
	return ErrReconcile
}

func schemaErrorf(p *Path, format string, args ...any) error {
	return &SchemaError{Path: p.String(), Message: fmt.Sprintf(format, args...)}
}

func reconcileErrorf(p *Path, v value.Value, format string, args ...any) error {
	return &ReconcileError{Path: p.String(), Value: v, Message: fmt.Sprintf(format, args...)}
}
