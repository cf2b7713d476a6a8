// Package num provides the closed numeric union carried by generic values.
//
// A Number remembers the width and signedness it was produced with, so that
// a value read as a u8 is written back as a u8. Lossless widening is
// available through AsU128 and AsI128, which report false when the number
// cannot be represented exactly; AsF64 is a deliberately lossy conversion
// meant for display and comparison only.
//
// The 128 bit widths are held in math/big integers constrained to the
// range of the width.
package num
