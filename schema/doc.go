// Package schema describes the structural shape of a configuration
// document.
//
// A [Root] is read from a JSON Schema document such as the ones emitted by
// schemars: instance types, formats, properties (in declaration order),
// additional properties, items, enumerations, constants, the allOf, oneOf
// and anyOf combinators and references into a definitions table.
//
// Besides the schema proper a root may carry the configurator extension
// keys naming where configuration is read from and written to:
//
//	X_CONFIGURATOR_SOURCE_PATHS      system layers, separated by ';'
//	X_CONFIGURATOR_SOURCE_HOME_PATH  the user layer, relative to $HOME
//	X_CONFIGURATOR_WRITE_PATH        where edits are written, defaults to the user layer
//	X_CONFIGURATOR_FORMAT            the text format of all layers
//
// # Satisfiability
//
// [CheckSatisfiable] rejects schemas which no value can match. Each
// definition reachable from the root is turned into a boolean formula in
// which references to the definition being checked are the constant
// false, so a recursive definition is satisfiable only if it has an
// escape: an optional field, a nullable branch, an empty array. Variables
// are allocated per (position, instance type), with mutual exclusion of
// the types at one position, and the formula is handed to a SAT solver.
package schema
