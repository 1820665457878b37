package targets

import (
	"omnistuff-go/store"
	"omnistuff-go/types"
	"omnistuff-go/x/mathx"
)

// BoundedEnum steps through len(Labels) states. Both encoders add to the
// value, which is clamped rather than wrapped.
type BoundedEnum struct {
	key    string
	Labels []string
}

var _ Target = (*BoundedEnum)(nil)

func NewBoundedEnum(key string, labels []string) *BoundedEnum {
	return &BoundedEnum{key: key, Labels: labels}
}

func (e *BoundedEnum) Key() string           { return e.key }
func (e *BoundedEnum) Kind() types.ValueKind { return types.KindInt }
func (e *BoundedEnum) Count() int            { return len(e.Labels) }

func (e *BoundedEnum) Apply(st store.Store, left, right int) {
	if len(e.Labels) == 0 {
		return
	}
	v := st.Int(e.key) + left + right
	st.SetInt(e.key, mathx.Clamp(v, 0, len(e.Labels)-1))
}

// Format shows the label of the stored value; out-of-range values show
// the nearest label.
func (e *BoundedEnum) Format(st store.Store) string {
	if len(e.Labels) == 0 {
		return ""
	}
	return e.Labels[mathx.Clamp(st.Int(e.key), 0, len(e.Labels)-1)]
}
