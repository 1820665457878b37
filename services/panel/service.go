// Package panel runs the two-encoder cockpit panel: it samples the
// encoders and buttons, steps the mode machine, edits the selected
// simulator value and refreshes the LCD and gear lamps.
package panel

import (
	"context"
	"sync/atomic"
	"time"

	"omnistuff-go/bus"
	"omnistuff-go/errcode"
	"omnistuff-go/services/panel/internal/gear"
	"omnistuff-go/services/panel/internal/input"
	"omnistuff-go/services/panel/internal/modes"
	"omnistuff-go/services/panel/internal/platform"
	"omnistuff-go/services/panel/internal/present"
	"omnistuff-go/store"
	"omnistuff-go/types"
	"omnistuff-go/x/timex"
)

var (
	topicConfigPanel = bus.T("config", "panel")
	topicConfigGear  = bus.T("config", "gear")
)

// Service is the panel context. All fields are owned by the loop
// goroutine except enabled.
type Service struct {
	hw      platform.Hardware
	mem     *store.Memory
	sampler *input.Sampler
	machine *modes.Machine
	gear    *gear.Annunciator
	refresh timex.Throttle
	shown   bool // enabled state of the last refresh

	enabled atomic.Bool
}

// New builds the panel on hw. The keys of Panels (and of the gear, when
// hw has one) must already be declared on mem.
func New(cfg types.PanelConfig, hw platform.Hardware, mem *store.Memory, cmd gear.Commander) (*Service, error) {
	if hw.Input == nil || hw.Display == nil {
		return nil, errcode.New(errcode.InvalidParams, "panel.new", "hardware needs input and display")
	}
	m, err := modes.New(Panels(), cfg.InitialPanel)
	if err != nil {
		return nil, err
	}
	s := &Service{
		hw:      hw,
		mem:     mem,
		sampler: input.NewSampler(cfg.TicksPerDetent, hw.Input.Read()),
		machine: m,
		refresh: timex.Throttle{Period: time.Duration(cfg.RefreshUs) * time.Microsecond},
	}
	if hw.GearSwitch != nil {
		s.gear = gear.New(gear.DefaultKeys, cmd, hw.GearLamps)
	}
	return s, nil
}

// SetEnabled records whether the simulator is live. Safe from any goroutine.
func (s *Service) SetEnabled(on bool) { s.enabled.Store(on) }

func (s *Service) Enabled() bool { return s.enabled.Load() }

// Step runs one tick: sample, gesture, mode step, edit, gear, then a
// throttled display refresh, in that order.
func (s *Service) Step(now time.Time) {
	t := s.sampler.Sample(s.hw.Input.Read())

	g := input.Decode(t.Left, t.Right)
	s.machine.Apply(g)
	if g.Meta != 0 {
		println("[panel] panel", s.machine.Panel().Name)
	}

	s.machine.Dispatch(s.mem, t.LeftDelta, t.RightDelta)

	enabled := s.Enabled()
	if s.gear != nil {
		s.gear.Step(s.mem, s.hw.GearSwitch.Closed(), enabled)
	}

	// A link change redraws at once.
	if enabled != s.shown {
		s.refresh.Reset()
	}
	if !s.refresh.Due(now) {
		return
	}
	s.shown = enabled
	if enabled {
		present.Render(s.hw.Display, s.machine, s.mem)
	} else {
		present.RenderOffline(s.hw.Display)
	}
	if f, ok := s.hw.Display.(interface{ Flush() }); ok {
		f.Flush()
	}
}

// Machine exposes the selection state for inspection.
func (s *Service) Machine() *modes.Machine { return s.machine }

// -----------------------------------------------------------------------------
// Bus wiring
// -----------------------------------------------------------------------------

// Run waits for the panel and gear configs, opens the board and runs the
// tick loop until ctx is cancelled.
func Run(ctx context.Context, conn *bus.Connection) error {
	panelCfg, gearCfg, err := awaitConfig(ctx, conn)
	if err != nil {
		return err
	}
	hw, err := platform.Open(panelCfg, gearCfg)
	if err != nil {
		return err
	}

	mem := store.NewMemory()
	if err := Declare(mem); err != nil {
		return err
	}
	if hw.GearSwitch != nil {
		if err := gear.DefaultKeys.Declare(mem); err != nil {
			return err
		}
	}
	link := store.Attach(mem, conn)
	link.Announce()
	go link.Run(ctx)

	s, err := New(panelCfg, hw, mem, link)
	if err != nil {
		return err
	}
	println("[panel] running, panel", s.machine.Panel().Name)
	return s.loop(ctx, conn, time.Duration(panelCfg.LoopIntervalMs)*time.Millisecond)
}

func (s *Service) loop(ctx context.Context, conn *bus.Connection, interval time.Duration) error {
	simSub := conn.Subscribe(store.TopicEnabled())
	defer conn.Unsubscribe(simSub)

	tick := time.NewTicker(interval)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg := <-simSub.Channel():
			if e, ok := msg.Payload.(types.SimEnabled); ok {
				println("[panel] simulator enabled:", e.Enabled)
				s.SetEnabled(e.Enabled)
			}
		case now := <-tick.C:
			s.Step(now)
		}
	}
}

func awaitConfig(ctx context.Context, conn *bus.Connection) (types.PanelConfig, types.GearConfig, error) {
	pSub := conn.Subscribe(topicConfigPanel)
	defer conn.Unsubscribe(pSub)
	gSub := conn.Subscribe(topicConfigGear)
	defer conn.Unsubscribe(gSub)

	var (
		p          types.PanelConfig
		g          types.GearConfig
		havP, havG bool
	)
	for !havP || !havG {
		select {
		case <-ctx.Done():
			return p, g, errcode.Wrap(errcode.Timeout, "panel.config", ctx.Err())
		case msg := <-pSub.Channel():
			if v, ok := msg.Payload.(types.PanelConfig); ok {
				p, havP = v, true
			} else {
				println("[panel] ignoring malformed panel config")
			}
		case msg := <-gSub.Channel():
			if v, ok := msg.Payload.(types.GearConfig); ok {
				g, havG = v, true
			} else {
				println("[panel] ignoring malformed gear config")
			}
		}
	}
	return p, g, nil
}
