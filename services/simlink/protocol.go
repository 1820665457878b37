package simlink

import (
	"strings"

	"github.com/google/shlex"

	"omnistuff-go/errcode"
	"omnistuff-go/types"
	"omnistuff-go/x/strconvx"
)

// Line protocol, one command per '\n' terminated line.
//
//	device -> host: sub <key> | set <key> <value> | cmd <name> | ping
//	host -> device: val <key> <value> | enabled 0|1 | pong
const (
	verbSub     = "sub"
	verbSet     = "set"
	verbCmd     = "cmd"
	verbPing    = "ping"
	verbVal     = "val"
	verbEnabled = "enabled"
	verbPong    = "pong"

	maxLine = 256
)

// Frame is one decoded host line.
type Frame struct {
	Verb    string
	Value   types.ValueWrite // verbVal
	Enabled bool             // verbEnabled
}

// ParseLine decodes a host line. Keys may be quoted.
func ParseLine(line string) (Frame, error) {
	const op = "simlink.parse"
	toks, err := shlex.Split(line)
	if err != nil {
		return Frame{}, errcode.Wrap(errcode.Malformed, op, err)
	}
	if len(toks) == 0 {
		return Frame{}, errcode.New(errcode.Malformed, op, "empty line")
	}
	f := Frame{Verb: toks[0]}
	args := toks[1:]
	switch f.Verb {
	case verbVal:
		if len(args) != 2 {
			return Frame{}, errcode.New(errcode.Malformed, op, "val wants <key> <value>")
		}
		if f.Value, err = strconvx.ParseValue(args[0], args[1]); err != nil {
			return Frame{}, err
		}
	case verbEnabled:
		if len(args) != 1 || (args[0] != "0" && args[0] != "1") {
			return Frame{}, errcode.New(errcode.Malformed, op, "enabled wants 0|1")
		}
		f.Enabled = args[0] == "1"
	case verbPong:
		if len(args) != 0 {
			return Frame{}, errcode.New(errcode.Malformed, op, "pong takes no arguments")
		}
	default:
		return Frame{}, errcode.New(errcode.Malformed, op, "unknown verb "+f.Verb)
	}
	return f, nil
}

func lineSub(key string) string  { return verbSub + " " + quote(key) + "\n" }
func lineCmd(name string) string { return verbCmd + " " + quote(name) + "\n" }
func linePing() string           { return verbPing + "\n" }
func lineSet(w types.ValueWrite) string {
	return verbSet + " " + quote(w.Key) + " " + strconvx.FormatValue(w) + "\n"
}

// quote wraps s in double quotes when shlex would otherwise split or
// strip it.
func quote(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t\r\n\"'\\#") {
		return s
	}
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		if s[i] == '"' || s[i] == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	b.WriteByte('"')
	return b.String()
}
