// Package eval evaluates expressions over configuration values.
//
// Expressions use the expr language (github.com/expr-lang/expr). The top
// level fields of the queried value are variables, and the whole value is
// also available as "config". The script functions getpath, listpath and
// getenv are defined in every expression.
//
// Strings may embed expressions: "$[expr]" is replaced by the text of its
// result, and a string which is exactly ".[expr]" is replaced by the
// result value itself. See [Expand].
package eval
