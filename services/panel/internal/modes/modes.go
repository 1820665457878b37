// Package modes is the two-level selector that decides which target the
// encoders edit: an outer panel index and, per panel, an inner channel index.
package modes

import (
	"omnistuff-go/errcode"
	"omnistuff-go/services/panel/internal/input"
	"omnistuff-go/services/panel/internal/targets"
	"omnistuff-go/store"
	"omnistuff-go/x/mathx"
)

// Layout tells the presenter how a panel is drawn.
type Layout uint8

const (
	// LayoutSingle shows the selected channel's label and value.
	LayoutSingle Layout = iota
	// LayoutPaired shows primary channels two at a time plus every
	// auxiliary channel.
	LayoutPaired
)

// Channel is one selectable entry of a panel.
type Channel struct {
	Label  string
	Target targets.Target
	// Aux channels are drawn on every page of a paired panel.
	Aux bool
}

// Panel is a group of channels cycled with single button releases.
type Panel struct {
	Name     string
	Layout   Layout
	Channels []Channel
}

// Machine holds the selection state. Each panel remembers its own channel.
type Machine struct {
	panels []Panel
	meta   int
	sub    []int
}

// New validates panels and selects initialMeta (wrapped into range).
func New(panels []Panel, initialMeta int) (*Machine, error) {
	if len(panels) == 0 {
		return nil, errcode.New(errcode.InvalidConfig, "modes.new", "no panels")
	}
	for _, p := range panels {
		if len(p.Channels) == 0 {
			return nil, errcode.New(errcode.InvalidConfig, "modes.new", "panel "+p.Name+" has no channels")
		}
		for _, c := range p.Channels {
			if c.Target == nil {
				return nil, errcode.New(errcode.InvalidConfig, "modes.new", "channel "+c.Label+" has no target")
			}
		}
	}
	return &Machine{
		panels: panels,
		meta:   mathx.WrapInt(initialMeta, 0, len(panels)),
		sub:    make([]int, len(panels)),
	}, nil
}

// AdvanceMeta steps the panel index, wrapping in both directions.
func (m *Machine) AdvanceMeta(delta int) {
	if delta == 0 {
		return
	}
	m.meta = mathx.WrapInt(m.meta+delta, 0, len(m.panels))
}

// AdvanceSub steps the channel index of the current panel.
func (m *Machine) AdvanceSub(delta int) {
	if delta == 0 {
		return
	}
	n := len(m.panels[m.meta].Channels)
	m.sub[m.meta] = mathx.WrapInt(m.sub[m.meta]+delta, 0, n)
}

// Apply performs a decoded gesture: panel step first, then channel step.
func (m *Machine) Apply(g input.Gesture) {
	m.AdvanceMeta(g.Meta)
	m.AdvanceSub(g.Sub)
}

// Dispatch routes the encoder deltas to the selected target. It reports
// the edited channel, or false when both deltas are zero.
func (m *Machine) Dispatch(st store.Store, left, right int) (Channel, bool) {
	if left == 0 && right == 0 {
		return Channel{}, false
	}
	ch := m.Active()
	ch.Target.Apply(st, left, right)
	return ch, true
}

func (m *Machine) Meta() int          { return m.meta }
func (m *Machine) Sub() int           { return m.sub[m.meta] }
func (m *Machine) Panel() Panel       { return m.panels[m.meta] }
func (m *Machine) Panels() []Panel    { return m.panels }
func (m *Machine) Active() Channel    { return m.panels[m.meta].Channels[m.sub[m.meta]] }
func (m *Machine) SubOf(meta int) int { return m.sub[mathx.WrapInt(meta, 0, len(m.panels))] }
