// Package strconvx converts simulator values to and from text with the
// same results on host and MCU builds.
package strconvx

import (
	"strings"

	"omnistuff-go/errcode"
	"omnistuff-go/types"
)

// ParseValue reads an int, or a float when s has a decimal point or exponent.
func ParseValue(key, s string) (types.ValueWrite, error) {
	w := types.ValueWrite{Key: key}
	if strings.ContainsAny(s, ".eE") {
		f, err := ParseFloat(s)
		if err != nil {
			return w, errcode.Wrap(errcode.Malformed, "strconvx.value", err)
		}
		w.Kind, w.Float = types.KindFloat, f
		return w, nil
	}
	i, err := Atoi(s)
	if err != nil {
		return w, errcode.Wrap(errcode.Malformed, "strconvx.value", err)
	}
	w.Kind, w.Int = types.KindInt, i
	return w, nil
}

// FormatValue writes w in its own kind.
func FormatValue(w types.ValueWrite) string {
	if w.Kind == types.KindFloat {
		return FormatFloat(w.Float, -1)
	}
	return Itoa(w.Int)
}
