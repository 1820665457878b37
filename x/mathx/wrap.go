package mathx

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Beyond this many spans out of range the fold is done with a modulo
// before the correction loops run.
const wrapLoopLimit = 64

// WrapInt folds v into [lo, hi) by adding or subtracting the span hi-lo
// as often as needed. A non-positive span degrades to Clamp.
func WrapInt[T constraints.Integer](v, lo, hi T) T {
	span := hi - lo
	if span <= 0 {
		return Clamp(v, lo, hi)
	}
	if v >= hi+span*wrapLoopLimit || v < lo-span*wrapLoopLimit {
		v = lo + (v-lo)%span
	}
	for v >= hi {
		v -= span
	}
	for v < lo {
		v += span
	}
	return v
}

// WrapFloat is WrapInt for floating point values.
// NaN is returned unchanged.
func WrapFloat[T constraints.Float](v, lo, hi T) T {
	span := hi - lo
	if !(span > 0) {
		return Clamp(v, lo, hi)
	}
	if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
		return v
	}
	if v >= hi+span*wrapLoopLimit || v < lo-span*wrapLoopLimit {
		v = lo + T(math.Mod(float64(v-lo), float64(span)))
	}
	for v >= hi {
		v -= span
	}
	for v < lo {
		v += span
	}
	// A tiny negative offset plus span can round up to hi.
	if v >= hi {
		v = lo
	}
	return v
}
