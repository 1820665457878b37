//go:build !rp2040

package platform

import (
	"sync"

	"omnistuff-go/services/panel/internal/gear"
	"omnistuff-go/services/panel/internal/input"
	"omnistuff-go/services/panel/internal/present"
	"omnistuff-go/types"
)

// Open on a host build returns an idle Fake board with a console LCD.
func Open(_ types.PanelConfig, g types.GearConfig) (Hardware, error) {
	return FakeHardware(NewFake(), &Console{Grid: present.NewGrid()}, g), nil
}

// FakeHardware wires f and d the way Open wires a real board.
func FakeHardware(f *Fake, d present.Display, g types.GearConfig) Hardware {
	hw := Hardware{Input: f, Display: d}
	if g.Enabled && connected(g.Switch) {
		hw.GearSwitch = f
		hw.GearLamps = f
	}
	return hw
}

// Fake is a scriptable board for tests and host runs.
type Fake struct {
	mu         sync.Mutex
	raw        input.Raw
	gearClosed bool
	lamps      gear.Lamps
	shown      int
}

var (
	_ input.Source = (*Fake)(nil)
	_ Switch       = (*Fake)(nil)
	_ gear.Output  = (*Fake)(nil)
)

// NewFake starts with both buttons released and the gear switch down.
func NewFake() *Fake {
	return &Fake{raw: input.Raw{LeftLevel: true, RightLevel: true}, gearClosed: true}
}

func (f *Fake) Read() input.Raw {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.raw
}

// Turn adds raw encoder ticks.
func (f *Fake) Turn(left, right int) {
	f.mu.Lock()
	f.raw.LeftCount += left
	f.raw.RightCount += right
	f.mu.Unlock()
}

// Buttons sets the debounced levels (true = released).
func (f *Fake) Buttons(left, right bool) {
	f.mu.Lock()
	f.raw.LeftLevel, f.raw.RightLevel = left, right
	f.mu.Unlock()
}

func (f *Fake) SetGear(closed bool) {
	f.mu.Lock()
	f.gearClosed = closed
	f.mu.Unlock()
}

func (f *Fake) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.gearClosed
}

func (f *Fake) Show(l gear.Lamps) {
	f.mu.Lock()
	f.lamps = l
	f.shown++
	f.mu.Unlock()
}

// Lamps returns the last frame shown and how many frames have been shown.
func (f *Fake) Lamps() (gear.Lamps, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lamps, f.shown
}

// Console is a Grid that echoes its rows to the log when they change.
type Console struct {
	*present.Grid
	last string
}

// Flush prints the grid if it differs from the last flush.
func (c *Console) Flush() {
	s := c.Grid.String()
	if s == c.last {
		return
	}
	c.last = s
	println("[lcd] |" + c.Grid.Row(0) + "|")
	println("[lcd] |" + c.Grid.Row(1) + "|")
}
