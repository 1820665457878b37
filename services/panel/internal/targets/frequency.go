package targets

import (
	"omnistuff-go/store"
	"omnistuff-go/types"
	"omnistuff-go/x/conv"
	"omnistuff-go/x/mathx"
)

// Band is a radio class: its stored range and how each encoder steps it.
// Frequencies are stored as integers in the band's native resolution
// (hundredths of a MHz for NAV and COM, kHz for ADF).
type Band struct {
	Name string

	// Low and High bound the band: [Low, High) when Wrap is set,
	// [Low, High] otherwise.
	Low, High int
	Wrap      bool

	// Coarse is the left-encoder step. For wrapping bands it is also the
	// size of the fine digit group the right encoder is confined to.
	Coarse int
	// Fine is the right-encoder step in stored units.
	Fine float64

	// Reinstate marks bands whose storage drops the final 5 kHz digit:
	// a stored value ending in 2 or 7 is read back as x.5 before stepping.
	Reinstate bool

	// Decimals is the display scale of the stored integer.
	Decimals int
}

var (
	// NAV: 108.00-117.95 MHz in 50 kHz steps.
	NAV = Band{Name: "NAV", Low: 10800, High: 11800, Wrap: true, Coarse: 100, Fine: 5, Decimals: 2}
	// COM: 118.000-135.975 MHz in 25 kHz steps, stored at 10 kHz.
	COM = Band{Name: "COM", Low: 11800, High: 13600, Wrap: true, Coarse: 100, Fine: 2.5, Reinstate: true, Decimals: 2}
	// ADF: 190-599 kHz; left moves the first two digits, right the third.
	ADF = Band{Name: "ADF", Low: 190, High: 599, Coarse: 10, Fine: 1}
)

// Frequency tunes one radio.
type Frequency struct {
	key  string
	Band Band
}

var _ Target = (*Frequency)(nil)

func NewFrequency(key string, b Band) *Frequency { return &Frequency{key: key, Band: b} }

func (f *Frequency) Key() string           { return f.key }
func (f *Frequency) Kind() types.ValueKind { return types.KindInt }

func (f *Frequency) Apply(st store.Store, left, right int) {
	st.SetInt(f.key, f.Band.Step(st.Int(f.key), left, right))
}

// Step returns freq after left coarse and right fine steps.
func (b Band) Step(freq, left, right int) int {
	if !b.Wrap {
		freq += left*b.Coarse + int(float64(right)*b.Fine)
		return mathx.Clamp(freq, b.Low, b.High)
	}
	if left != 0 {
		freq = mathx.WrapInt(freq+left*b.Coarse, b.Low, b.High)
	}
	if right != 0 {
		freq = b.stepFine(freq, right)
	}
	// Values read from the simulator may start outside the band.
	return mathx.WrapInt(freq, b.Low, b.High)
}

// stepFine edits only the digits below Coarse so the whole-MHz part is
// never carried into.
func (b Band) stepFine(freq, right int) int {
	group := b.Coarse
	mhz := freq / group
	sub := freq - mhz*group
	if b.Reinstate {
		f := float64(sub)
		if last := sub % 10; last == 2 || last == 7 {
			f += 0.5
		}
		f += float64(right) * b.Fine
		sub = int(f) // truncate toward zero, not round
	} else {
		sub += right * int(b.Fine)
	}
	sub = mathx.WrapInt(sub, 0, group)
	return sub + mhz*group
}

func (f *Frequency) Format(st store.Store) string {
	var buf [24]byte
	return string(conv.Fixed(buf[:], int64(st.Int(f.key)), f.Band.Decimals))
}
