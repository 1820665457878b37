// Package ramp steps an integer level towards a target one call at a time,
// for callers that already run on a periodic tick.
package ramp

import "omnistuff-go/x/mathx"

// Linear moves from its current level to a target in a fixed number of
// equal steps. The zero value sits at level 0 with nothing to do.
type Linear struct {
	cur, to int32
	acc     int32
	left    int32
	steps   int32
	delta   int32
}

// Start aims the ramp at to over steps calls to Next. steps <= 1 snaps.
func (r *Linear) Start(to uint16, steps uint16) {
	r.to = int32(to)
	if steps <= 1 {
		r.cur, r.left = r.to, 0
		return
	}
	r.steps = int32(steps)
	r.left = r.steps
	r.delta = r.to - r.cur
	r.acc = 0
}

// Level is the most recent level.
func (r *Linear) Level() uint16 { return uint16(r.cur) }

// Target is the level the ramp is heading for.
func (r *Linear) Target() uint16 { return uint16(r.to) }

// Done reports whether the target has been reached.
func (r *Linear) Done() bool { return r.left == 0 }

// Next advances one step and returns the new level. The last step lands
// exactly on the target.
func (r *Linear) Next() uint16 {
	if r.left == 0 {
		return uint16(r.cur)
	}
	r.left--
	if r.left == 0 {
		r.cur = r.to
		return uint16(r.cur)
	}
	r.acc += r.delta
	if inc := r.acc / r.steps; inc != 0 {
		r.acc -= inc * r.steps
		lo, hi := r.cur, r.to
		if lo > hi {
			lo, hi = hi, lo
		}
		r.cur = mathx.Clamp(r.cur+inc, lo, hi)
	}
	return uint16(r.cur)
}
