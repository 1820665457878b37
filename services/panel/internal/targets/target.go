// Package targets implements the editable cockpit values. Each target is
// bound to one store key and turns a pair of encoder deltas into a single
// write of that key.
package targets

import (
	"omnistuff-go/store"
	"omnistuff-go/types"
)

// Target is the closed set of editing strategies: *Dial, *Frequency,
// *TransponderCode and *BoundedEnum.
type Target interface {
	// Key is the bound store key.
	Key() string
	// Kind is the numeric type the key is stored as.
	Kind() types.ValueKind
	// Apply edits the value from the left and right encoder detents.
	// All range correction completes before the one write to st.
	Apply(st store.Store, left, right int)
	// Format renders the current value for the display.
	Format(st store.Store) string
}

// Bound selects how a value is kept within its limits.
type Bound uint8

const (
	Clamp Bound = iota // pin to [low, high]
	Wrap               // fold into [low, high)
)

func (b Bound) String() string {
	if b == Wrap {
		return "wrap"
	}
	return "clamp"
}
