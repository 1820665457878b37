package input

import "time"

// Debouncer reports a line level only after it has been stable for
// Interval. The zero value accepts the first sample as stable.
type Debouncer struct {
	Interval time.Duration

	stable   bool
	pending  bool
	since    time.Time
	primed   bool
	changing bool
}

// NewDebouncer starts with a known idle level (true for pull-up buttons).
func NewDebouncer(interval time.Duration, idle bool) *Debouncer {
	return &Debouncer{Interval: interval, stable: idle, pending: idle, primed: true}
}

// Update feeds a raw sample taken at now and returns the debounced level.
func (d *Debouncer) Update(raw bool, now time.Time) bool {
	if !d.primed {
		d.stable, d.pending, d.primed = raw, raw, true
		return d.stable
	}
	if raw != d.pending {
		d.pending = raw
		d.since = now
		d.changing = true
	}
	if d.changing && now.Sub(d.since) >= d.Interval {
		d.stable = d.pending
		d.changing = false
	}
	return d.stable
}

// Level returns the last debounced level.
func (d *Debouncer) Level() bool { return d.stable }
