package targets

import (
	"omnistuff-go/store"
	"omnistuff-go/types"
	"omnistuff-go/x/conv"
	"omnistuff-go/x/mathx"
)

// Dial maps a pair of encoders onto one continuous cockpit dial, e.g. a
// heading bug or a vertical speed target. The right encoder moves in fine
// steps, the left in coarse steps of CoarseToFine fine steps.
type Dial struct {
	key string

	Low, High    float64
	Scalar       float64 // value units per fine step, may be fractional
	CoarseToFine int
	Bound        Bound
}

var _ Target = (*Dial)(nil)

func NewDial(key string, low, high, scalar float64, coarseToFine int, b Bound) *Dial {
	return &Dial{key: key, Low: low, High: high, Scalar: scalar, CoarseToFine: coarseToFine, Bound: b}
}

func (d *Dial) Key() string           { return d.key }
func (d *Dial) Kind() types.ValueKind { return types.KindFloat }

// Apply routes the right encoder to fine and the left to coarse.
func (d *Dial) Apply(st store.Store, left, right int) { d.AddDelta(st, right, left) }

// AddDelta applies fine + coarse*CoarseToFine steps of Scalar.
func (d *Dial) AddDelta(st store.Store, fine, coarse int) {
	v := float64(fine+coarse*d.CoarseToFine) * d.Scalar
	v += st.Float(d.key)
	if d.Bound == Wrap {
		v = mathx.WrapFloat(v, d.Low, d.High)
	} else {
		v = mathx.Clamp(v, d.Low, d.High)
	}
	st.SetFloat(d.key, v)
}

func (d *Dial) Format(st store.Store) string {
	var buf [24]byte
	return string(conv.FixedFloat(buf[:], st.Float(d.key), 2))
}
