//go:build !rp2040

package strconvx

import "strconv"

// Host builds delegate straight to strconv.

func Itoa(i int) string          { return strconv.Itoa(i) }
func Atoi(s string) (int, error) { return strconv.Atoi(s) }

// FormatFloat writes f in plain decimal. prec < 0 gives the shortest form.
func FormatFloat(f float64, prec int) string { return strconv.FormatFloat(f, 'f', prec, 64) }

func ParseFloat(s string) (float64, error) { return strconv.ParseFloat(s, 64) }
