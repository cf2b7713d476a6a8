// Package libdiff computes structural diffs between configuration values.
//
// # Usage
//
//	d := libdiff.Make(before, after)
//	patched, err := libdiff.Patch(before, d)
//	libdiff.Fprint(os.Stdout, d, libdiff.NewColors())
//
// A nil *Diff means the values are equal. Struct and map diffs are keyed
// by field name and also record a change of field order, since values
// with the same fields in another order are not equal. Sequences are
// diffed by index and strings by text.
package libdiff
