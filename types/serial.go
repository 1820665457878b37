package types

// ------------------------
// Serial
// ------------------------

type Parity uint8

const (
	ParityNone Parity = iota
	ParityEven
	ParityOdd
)

func (p Parity) String() string {
	switch p {
	case ParityEven:
		return "even"
	case ParityOdd:
		return "odd"
	default:
		return "none"
	}
}

func (p Parity) MarshalJSON() ([]byte, error) { return []byte(`"` + p.String() + `"`), nil }

func (p *Parity) UnmarshalJSON(b []byte) error {
	if len(b) >= 2 && b[0] == '"' && b[len(b)-1] == '"' {
		b = b[1 : len(b)-1]
	}
	*p = ParseParity(string(b))
	return nil
}

func (p Parity) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *Parity) UnmarshalText(b []byte) error {
	*p = ParseParity(string(b))
	return nil
}

// ParseParity maps "even"/"odd" and defaults to none.
func ParseParity(s string) Parity {
	switch s {
	case "even":
		return ParityEven
	case "odd":
		return ParityOdd
	default:
		return ParityNone
	}
}

// UARTParams describes the simulator link port.
type UARTParams struct {
	Bus      string `json:"bus" yaml:"bus"` // "uart0" | "uart1"
	Baud     uint32 `json:"baud" yaml:"baud"`
	TX       int    `json:"tx" yaml:"tx"`
	RX       int    `json:"rx" yaml:"rx"`
	DataBits uint8  `json:"data_bits,omitempty" yaml:"data_bits,omitempty"`
	StopBits uint8  `json:"stop_bits,omitempty" yaml:"stop_bits,omitempty"`
	Parity   Parity `json:"parity" yaml:"parity"`
}
