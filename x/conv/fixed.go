package conv

import "math"

// Fixed writes n scaled down by 10^decimals with a decimal point,
// e.g. Fixed(buf, 10805, 2) => "108.05", Fixed(buf, -25, 2) => "-0.25".
// decimals <= 0 behaves like Itoa.
func Fixed(buf []byte, n int64, decimals int) []byte {
	if decimals <= 0 {
		return Itoa(buf, n)
	}
	if len(buf) == 0 {
		return buf[:0]
	}
	i := len(buf)
	u := abs(n)
	for d := 0; d < decimals && i > 0; d++ {
		i--
		buf[i] = byte('0' + (u % 10))
		u /= 10
	}
	if i > 0 {
		i--
		buf[i] = '.'
	}
	// At least one integer digit.
	for first := true; (u > 0 || first) && i > 0; first = false {
		i--
		buf[i] = byte('0' + (u % 10))
		u /= 10
	}
	if n < 0 && i > 0 {
		i--
		buf[i] = '-'
	}
	return buf[i:]
}

// FixedFloat rounds f half away from zero to the given number of decimals
// and formats it like Fixed.
func FixedFloat(buf []byte, f float64, decimals int) []byte {
	scale := math.Pow10(decimals)
	return Fixed(buf, int64(math.Round(f*scale)), decimals)
}
