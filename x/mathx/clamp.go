package mathx

import "golang.org/x/exp/constraints"

// Clamp pins v to the closed range [lo, hi], as the panel does for
// non-wrapping dials (VSI), the ADF band and transponder digits.
// Reversed bounds are swapped first.
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if hi < lo {
		lo, hi = hi, lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
