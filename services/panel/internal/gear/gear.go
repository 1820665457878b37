// Package gear drives the landing gear switch and its three-leg annunciator.
package gear

import (
	"omnistuff-go/store"
	"omnistuff-go/types"
)

// Legs in simulator deploy_ratio order.
const (
	Nose = iota
	Left
	Right
	NumLegs
)

// Simulator commands sent when the switch and handle disagree.
const (
	CmdUp   = "sim/flight_controls/landing_gear_up"
	CmdDown = "sim/flight_controls/landing_gear_down"
)

// MinVolts is the bus voltage below which every lamp stays dark.
const MinVolts = 10.0

// Keys names the store values the annunciator reads.
type Keys struct {
	HandleDown string
	Deploy     [NumLegs]string
	BusVolts   string
}

var DefaultKeys = Keys{
	HandleDown: "sim/cockpit2/controls/gear_handle_down",
	Deploy: [NumLegs]string{
		"sim/flightmodel2/gear/deploy_ratio[0]",
		"sim/flightmodel2/gear/deploy_ratio[1]",
		"sim/flightmodel2/gear/deploy_ratio[2]",
	},
	BusVolts: "sim/cockpit2/electrical/bus_volts[0]",
}

// Declare registers the keys on m with gear down and no power.
func (k Keys) Declare(m *store.Memory) error {
	if err := m.Declare(k.HandleDown, types.KindInt, 1); err != nil {
		return err
	}
	for _, key := range k.Deploy {
		if err := m.Declare(key, types.KindFloat, 1); err != nil {
			return err
		}
	}
	return m.Declare(k.BusVolts, types.KindFloat, 0)
}

// Lamps is one frame of the annunciator.
type Lamps struct {
	Red   [NumLegs]bool
	Green [NumLegs]bool
}

// Commander fires one-shot simulator commands.
type Commander interface {
	Command(name string)
}

// Output shows a frame of lamps.
type Output interface {
	Show(Lamps)
}

// Annunciator holds the switch/handle reconciliation state.
type Annunciator struct {
	keys Keys
	cmd  Commander
	out  Output

	sent  string // command in flight for the current disagreement
	last  Lamps
	drawn bool
}

func New(keys Keys, cmd Commander, out Output) *Annunciator {
	return &Annunciator{keys: keys, cmd: cmd, out: out}
}

// Step reconciles the handle with the switch and refreshes the lamps.
// switchDown is the debounced switch position; enabled reports whether
// the simulator link is live.
func (a *Annunciator) Step(st store.Store, switchDown, enabled bool) Lamps {
	handleDown := st.Int(a.keys.HandleDown) != 0

	want := ""
	switch {
	case switchDown && !handleDown:
		want = CmdDown
	case !switchDown && handleDown:
		want = CmdUp
	}
	if want != "" && want != a.sent && enabled && a.cmd != nil {
		a.cmd.Command(want)
	}
	if enabled {
		a.sent = want
	}

	l := Compute(st, a.keys, enabled)
	if a.out != nil && (!a.drawn || l != a.last) {
		a.out.Show(l)
		a.drawn = true
	}
	a.last = l
	return l
}

// Compute derives the lamp frame from the current simulator values.
func Compute(st store.Store, k Keys, enabled bool) Lamps {
	var l Lamps
	if !enabled || st.Float(k.BusVolts) <= MinVolts {
		return l
	}
	handle := float64(st.Int(k.HandleDown))
	for i, key := range k.Deploy {
		ratio := st.Float(key)
		l.Red[i] = ratio != handle
		l.Green[i] = ratio == 1
	}
	return l
}
