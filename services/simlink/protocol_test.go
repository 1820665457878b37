package simlink

import (
	"testing"

	"github.com/google/shlex"

	"omnistuff-go/errcode"
	"omnistuff-go/types"
)

func TestParseLine(t *testing.T) {
	cases := []struct {
		line string
		want Frame
	}{
		{"pong", Frame{Verb: verbPong}},
		{"enabled 1", Frame{Verb: verbEnabled, Enabled: true}},
		{"enabled 0", Frame{Verb: verbEnabled}},
		{"val sim/cockpit2/radios/actuators/nav1_frequency_hz 11345",
			Frame{Verb: verbVal, Value: types.ValueWrite{Key: "sim/cockpit2/radios/actuators/nav1_frequency_hz", Kind: types.KindInt, Int: 11345}}},
		{`val "sim/flightmodel2/gear/deploy_ratio[0]" 0.5`,
			Frame{Verb: verbVal, Value: types.ValueWrite{Key: "sim/flightmodel2/gear/deploy_ratio[0]", Kind: types.KindFloat, Float: 0.5}}},
		{"  val   k   -3  ", Frame{Verb: verbVal, Value: types.ValueWrite{Key: "k", Kind: types.KindInt, Int: -3}}},
	}
	for _, tc := range cases {
		got, err := ParseLine(tc.line)
		if err != nil {
			t.Errorf("%q: %v", tc.line, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%q: got %+v want %+v", tc.line, got, tc.want)
		}
	}
}

func TestParseLine_Malformed(t *testing.T) {
	for _, line := range []string{
		"",
		"# comment only",
		"hello",
		"val onlykey",
		"val k notanumber",
		"enabled",
		"enabled yes",
		"pong extra",
		`val "unterminated 1`,
	} {
		if _, err := ParseLine(line); errcode.Of(err) != errcode.Malformed {
			t.Errorf("%q: expected malformed, got %v", line, err)
		}
	}
}

func TestOutgoingLines(t *testing.T) {
	if got := lineSub("sim/cockpit/radios/transponder_mode"); got != "sub sim/cockpit/radios/transponder_mode\n" {
		t.Fatalf("sub %q", got)
	}
	if got := lineSet(types.ValueWrite{Key: "k", Kind: types.KindFloat, Float: 359.75}); got != "set k 359.75\n" {
		t.Fatalf("set %q", got)
	}
	if got := lineSet(types.ValueWrite{Key: "k", Kind: types.KindInt, Int: 7700}); got != "set k 7700\n" {
		t.Fatalf("set %q", got)
	}
	if got := lineCmd("sim/flight_controls/landing_gear_up"); got != "cmd sim/flight_controls/landing_gear_up\n" {
		t.Fatalf("cmd %q", got)
	}
	if got := linePing(); got != "ping\n" {
		t.Fatalf("ping %q", got)
	}
}

func TestQuote_SurvivesShlex(t *testing.T) {
	for _, s := range []string{"plain", "with space", `q"uote`, `back\slash`, "#hash", "it's", ""} {
		toks, err := shlex.Split("sub " + quote(s))
		if err != nil {
			t.Fatalf("%q: %v", s, err)
		}
		if len(toks) != 2 || toks[1] != s {
			t.Errorf("%q came back as %q", s, toks)
		}
	}
	if quote("plain") != "plain" {
		t.Fatal("plain keys should not be quoted")
	}
}
