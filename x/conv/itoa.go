package conv

// Itoa writes base-10 representation of n into buf and returns the used slice.
// buf should be length >= 20 for int64. Negative numbers supported.
// No allocations; no fmt/strconv dependency.
func Itoa(buf []byte, n int64) []byte {
	if len(buf) == 0 {
		return buf[:0]
	}
	i := len(buf)
	neg := n < 0
	u := abs(n)
	if u == 0 {
		i--
		buf[i] = '0'
	} else {
		for u > 0 && i > 0 {
			i--
			buf[i] = byte('0' + (u % 10))
			u /= 10
		}
	}
	if neg && i > 0 {
		i--
		buf[i] = '-'
	}
	return buf[i:]
}

// PadInt is Itoa left-padded with zeros to at least width digits.
// The sign, if any, precedes the padding.
func PadInt(buf []byte, n int64, width int) []byte {
	if len(buf) == 0 {
		return buf[:0]
	}
	i := len(buf)
	u := abs(n)
	digits := 0
	for (u > 0 || digits < width || digits == 0) && i > 0 {
		i--
		buf[i] = byte('0' + (u % 10))
		u /= 10
		digits++
	}
	if n < 0 && i > 0 {
		i--
		buf[i] = '-'
	}
	return buf[i:]
}

func abs(n int64) uint64 {
	if n < 0 {
		return uint64(-n)
	}
	return uint64(n)
}
