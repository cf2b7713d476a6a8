// Package value implements the generic configuration value: a tagged union
// able to hold any serializable datum independently of the text format it
// came from.
//
// Values compare structurally. Maps and structs are ordered: two maps with
// the same entries inserted in a different order are not equal.
package value
