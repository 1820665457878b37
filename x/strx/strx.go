package strx

// Coalesce returns s if non-empty, otherwise d.
func Coalesce(s, d string) string {
	if s == "" {
		return d
	}
	return s
}

// Clip returns the part of s that fits in a field of width cells starting
// at col. Text left of the field edge or past its end is dropped.
func Clip(s string, col, width int) string {
	if col >= width || col+len(s) <= 0 {
		return ""
	}
	if col < 0 {
		s = s[-col:]
		col = 0
	}
	if n := width - col; len(s) > n {
		s = s[:n]
	}
	return s
}
