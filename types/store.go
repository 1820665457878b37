package types

// ValueKind fixes the numeric type of a simulator parameter.
type ValueKind uint8

const (
	KindInt ValueKind = iota
	KindFloat
)

func (k ValueKind) String() string {
	if k == KindFloat {
		return "float"
	}
	return "int"
}

// ValueWrite is published on "sim/write/<key>" after a local edit and
// received on "sim/value/<key>" when the simulator reports a value.
type ValueWrite struct {
	Key   string    `json:"key"`
	Kind  ValueKind `json:"kind"`
	Int   int       `json:"int,omitempty"`
	Float float64   `json:"float,omitempty"`
}

// Command asks the simulator to fire a one-shot command, published on
// "sim/command".
type Command struct {
	Name string `json:"name"`
}
