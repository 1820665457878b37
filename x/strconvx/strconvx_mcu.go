//go:build rp2040

package strconvx

// Small decimal-only conversions that keep strconv's float tables out of
// the firmware image. Exponents, NaN and Inf are not supported.

type parseError struct{}

func (parseError) Error() string { return "invalid syntax" }

func Itoa(i int) string {
	var buf [24]byte
	n := len(buf)
	u := uint64(i)
	if i < 0 {
		u = uint64(-int64(i))
	}
	for {
		n--
		buf[n] = byte('0' + u%10)
		u /= 10
		if u == 0 {
			break
		}
	}
	if i < 0 {
		n--
		buf[n] = '-'
	}
	return string(buf[n:])
}

func Atoi(s string) (int, error) {
	neg, s := sign(s)
	if s == "" {
		return 0, parseError{}
	}
	var v int64
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, parseError{}
		}
		v = v*10 + int64(c-'0')
		if v > 1<<31 {
			return 0, parseError{}
		}
	}
	if neg {
		v = -v
	}
	return int(v), nil
}

// FormatFloat rounds half away from zero. prec < 0 prints six places and
// trims trailing zeros.
func FormatFloat(f float64, prec int) string {
	trim := prec < 0
	if trim {
		prec = 6
	}
	neg := f < 0
	if neg {
		f = -f
	}
	pow := uint64(1)
	for i := 0; i < prec; i++ {
		pow *= 10
	}
	n := uint64(f*float64(pow) + 0.5)
	ip, fp := n/pow, n%pow

	out := Itoa(int(ip))
	if prec > 0 {
		digits := make([]byte, prec)
		for i := prec - 1; i >= 0; i-- {
			digits[i] = byte('0' + fp%10)
			fp /= 10
		}
		if trim {
			for len(digits) > 0 && digits[len(digits)-1] == '0' {
				digits = digits[:len(digits)-1]
			}
		}
		if len(digits) > 0 {
			out += "." + string(digits)
		}
	}
	if neg && n != 0 {
		out = "-" + out
	}
	return out
}

func ParseFloat(s string) (float64, error) {
	neg, s := sign(s)
	if s == "" {
		return 0, parseError{}
	}
	var v float64
	i, digits := 0, 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		v = v*10 + float64(s[i]-'0')
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		scale := 1.0
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			scale /= 10
			v += float64(s[i]-'0') * scale
			i++
			digits++
		}
	}
	if i != len(s) || digits == 0 {
		return 0, parseError{}
	}
	if neg {
		v = -v
	}
	return v, nil
}

func sign(s string) (bool, string) {
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		return s[0] == '-', s[1:]
	}
	return false, s
}
