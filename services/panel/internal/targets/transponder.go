package targets

import (
	"omnistuff-go/store"
	"omnistuff-go/types"
	"omnistuff-go/x/conv"
	"omnistuff-go/x/mathx"
)

// Transponder modes as stored by the simulator.
const (
	XPOff = iota
	XPStandby
	XPOn
	XPAlt
	XPTest
)

// TransponderModeLabels are four columns wide so they overlay cleanly.
var TransponderModeLabels = []string{" OFF", "STBY", " ON ", " ALT", "TEST"}

// TransponderCode edits a four digit octal squawk. The left encoder steps
// the second digit, carrying into the first; the right encoder steps the
// fourth, carrying into the third. No carry crosses between the pairs.
type TransponderCode struct {
	key     string
	modeKey string
}

var _ Target = (*TransponderCode)(nil)

func NewTransponderCode(key, modeKey string) *TransponderCode {
	return &TransponderCode{key: key, modeKey: modeKey}
}

func (t *TransponderCode) Key() string           { return t.key }
func (t *TransponderCode) Kind() types.ValueKind { return types.KindInt }

// Apply drops an active transponder to standby before touching the code.
func (t *TransponderCode) Apply(st store.Store, left, right int) {
	if st.Int(t.modeKey) >= XPOn {
		st.SetInt(t.modeKey, XPStandby)
	}
	d := SquawkDigits(st.Int(t.key))
	d[0], d[1] = carry(d[0], d[1]+left)
	d[2], d[3] = carry(d[2], d[3]+right)
	st.SetInt(t.key, d[0]*1000+d[1]*100+d[2]*10+d[3])
}

// SquawkDigits splits code into decimal digits, most significant first,
// each pinned to the octal range.
func SquawkDigits(code int) [4]int {
	code = mathx.Clamp(code, 0, 9999)
	return [4]int{
		mathx.Clamp(code/1000, 0, 7),
		mathx.Clamp(code/100%10, 0, 7),
		mathx.Clamp(code/10%10, 0, 7),
		mathx.Clamp(code%10, 0, 7),
	}
}

func carry(hi, lo int) (int, int) {
	if lo < 0 {
		lo = 7
		hi--
		if hi < 0 {
			hi = 7
		}
	}
	if lo > 7 {
		lo = 0
		hi++
		if hi > 7 {
			hi = 0
		}
	}
	return hi, lo
}

// Format is always four digits, zero padded.
func (t *TransponderCode) Format(st store.Store) string {
	var buf [24]byte
	return string(conv.PadInt(buf[:], int64(mathx.Clamp(st.Int(t.key), 0, 9999)), 4))
}
