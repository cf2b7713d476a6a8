// Package codec converts between generic values and their concrete text
// representations.
//
// YAML and JSON documents are read with key order preserved, so that the
// value of a mapping is a struct whose fields follow the document. Native
// Go values built by other libraries are converted with [FromAny] and
// [ToAny].
package codec
