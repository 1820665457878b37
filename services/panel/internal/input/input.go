// Package input turns raw encoder counts and debounced button levels into
// per-tick detent deltas, button edges and mode gestures.
package input

// Edge is the electrical transition of a button line since the last tick.
// Buttons are active-low: a press is a falling edge, a release a rising one.
type Edge uint8

const (
	EdgeNone Edge = iota
	EdgeRising
	EdgeFalling
)

func (e Edge) String() string {
	switch e {
	case EdgeRising:
		return "rising"
	case EdgeFalling:
		return "falling"
	default:
		return "none"
	}
}

// Button is one button's state for a tick. Level is the debounced line
// level (true = high = released).
type Button struct {
	Level bool
	Edge  Edge
}

// Held reports whether the button is pressed (line pulled low).
func (b Button) Held() bool { return !b.Level }

// Raw is what the hardware layer exposes once per tick.
type Raw struct {
	LeftCount, RightCount int  // accumulated encoder ticks
	LeftLevel, RightLevel bool // debounced button lines
}

// Tick is the normalised input for one loop iteration.
type Tick struct {
	LeftDelta, RightDelta int // detents since the previous tick
	Left, Right           Button
}

// Source produces a Raw snapshot each tick.
type Source interface {
	Read() Raw
}

// Sampler holds the per-encoder consumed position and previous button
// levels. The zero value is not usable; call NewSampler.
type Sampler struct {
	perDetent int

	leftBase, rightBase   int
	leftLevel, rightLevel bool
}

// NewSampler starts from an initial snapshot so the first tick reports no
// movement and no edges.
func NewSampler(ticksPerDetent int, initial Raw) *Sampler {
	if ticksPerDetent < 1 {
		ticksPerDetent = 1
	}
	return &Sampler{
		perDetent:  ticksPerDetent,
		leftBase:   initial.LeftCount,
		rightBase:  initial.RightCount,
		leftLevel:  initial.LeftLevel,
		rightLevel: initial.RightLevel,
	}
}

// Sample converts a snapshot into a Tick. Partial detents stay pending
// until they complete.
func (s *Sampler) Sample(r Raw) Tick {
	var t Tick
	t.LeftDelta, s.leftBase = detents(r.LeftCount, s.leftBase, s.perDetent)
	t.RightDelta, s.rightBase = detents(r.RightCount, s.rightBase, s.perDetent)
	t.Left = Button{Level: r.LeftLevel, Edge: edge(s.leftLevel, r.LeftLevel)}
	t.Right = Button{Level: r.RightLevel, Edge: edge(s.rightLevel, r.RightLevel)}
	s.leftLevel, s.rightLevel = r.LeftLevel, r.RightLevel
	return t
}

func detents(count, base, per int) (delta, newBase int) {
	delta = (count - base) / per // truncates toward zero
	return delta, base + delta*per
}

func edge(prev, cur bool) Edge {
	switch {
	case !prev && cur:
		return EdgeRising
	case prev && !cur:
		return EdgeFalling
	}
	return EdgeNone
}
