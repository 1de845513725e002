package ot

import "golang.org/x/exp/constraints"

// UnitsNormalization is the fixed em-size all metrics of this package are
// scaled to.
const UnitsNormalization = 1000

// UnitsPerEm is a font's design grid size, taken from table 'head'.
// It is handed explicitly to every function which normalizes font units.
// A valid UnitsPerEm is > 0.
type UnitsPerEm int

// Norm scales a value in font units to 1000 units per em, truncating towards zero.
func (upem UnitsPerEm) Norm(v int) int {
	return v * UnitsNormalization / int(upem)
}

// Normalize is a convenience wrapper for UnitsPerEm.Norm, accepting any of the
// integer types fields of font tables are decoded to.
func Normalize[T constraints.Integer](v T, upem UnitsPerEm) int {
	return upem.Norm(int(v))
}
