package timex

import "time"

// NowMs returns Unix milliseconds as int64.
func NowMs() int64 { return time.Now().UnixMilli() }

// Throttle gates a periodic action driven from a polling loop.
// The zero value fires on the first call to Due.
type Throttle struct {
	Period time.Duration
	last   time.Time
}

// Due reports whether more than Period has elapsed since the last time it
// returned true, and if so restarts the interval at now.
func (t *Throttle) Due(now time.Time) bool {
	if !t.last.IsZero() && now.Sub(t.last) <= t.Period {
		return false
	}
	t.last = now
	return true
}

// Reset forces the next Due call to fire.
func (t *Throttle) Reset() { t.last = time.Time{} }
