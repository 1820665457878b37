//go:build !rp2040

package panel

import (
	"time"

	"omnistuff-go/services/panel/internal/gear"
	"omnistuff-go/services/panel/internal/platform"
	"omnistuff-go/services/panel/internal/present"
	"omnistuff-go/store"
	"omnistuff-go/types"
)

// Sim is a panel on a scripted board, for desktop runs. Encoder and button
// calls take effect on the next Step.
type Sim struct {
	svc   *Service
	board *platform.Fake
	lcd   *present.Grid
	mem   *store.Memory
	tpd   int

	left, right bool // buttons held
}

// NewSim declares the panel (and gear) keys on a fresh store and builds the
// panel on a fake board. cmd receives gear commands and may be nil.
func NewSim(p types.PanelConfig, g types.GearConfig, cmd gear.Commander) (*Sim, error) {
	f := platform.NewFake()
	lcd := present.NewGrid()
	hw := platform.FakeHardware(f, lcd, g)

	mem := store.NewMemory()
	if err := Declare(mem); err != nil {
		return nil, err
	}
	if hw.GearSwitch != nil {
		if err := gear.DefaultKeys.Declare(mem); err != nil {
			return nil, err
		}
	}
	s, err := New(p, hw, mem, cmd)
	if err != nil {
		return nil, err
	}
	return &Sim{svc: s, board: f, lcd: lcd, mem: mem, tpd: p.TicksPerDetent}, nil
}

// Store is the value store the panel edits.
func (s *Sim) Store() *store.Memory { return s.mem }

func (s *Sim) Step(now time.Time)       { s.svc.Step(now) }
func (s *Sim) SetEnabled(on bool)       { s.svc.SetEnabled(on) }
func (s *Sim) Enabled() bool            { return s.svc.Enabled() }
func (s *Sim) PanelName() string        { return s.svc.machine.Panel().Name }
func (s *Sim) ChannelLabel() string     { return s.svc.machine.Active().Label }
func (s *Sim) Rows() (string, string)   { return s.lcd.Row(0), s.lcd.Row(1) }
func (s *Sim) Backlight() bool          { return s.lcd.Backlight() }
func (s *Sim) HasGear() bool            { return s.svc.gear != nil }
func (s *Sim) GearDown() bool           { return s.board.Closed() }
func (s *Sim) SetGear(down bool)        { s.board.SetGear(down) }
func (s *Sim) Held() (left, right bool) { return s.left, s.right }

// Lamps returns the last annunciator frame as red and green per leg.
func (s *Sim) Lamps() (red, green [gear.NumLegs]bool) {
	l, _ := s.board.Lamps()
	return l.Red, l.Green
}

// Detents turns the encoders by whole detents.
func (s *Sim) Detents(left, right int) { s.board.Turn(left*s.tpd, right*s.tpd) }

// Hold presses or releases the buttons.
func (s *Sim) Hold(left, right bool) {
	s.left, s.right = left, right
	s.board.Buttons(!left, !right)
}
