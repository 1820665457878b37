package types

// Per-service configuration, published retained on "config/<service>".
// Pins are board GPIO numbers; -1 means not connected.

// PanelConfig is published on "config/panel".
type PanelConfig struct {
	Left  EncoderPins `json:"left" yaml:"left"`
	Right EncoderPins `json:"right" yaml:"right"`
	LCD   LCDConfig   `json:"lcd" yaml:"lcd"`

	TicksPerDetent int `json:"ticks_per_detent" yaml:"ticks_per_detent"`
	DebounceMs     int `json:"debounce_ms" yaml:"debounce_ms"`
	LoopIntervalMs int `json:"loop_interval_ms" yaml:"loop_interval_ms"`
	RefreshUs      int `json:"refresh_us" yaml:"refresh_us"`       // display refresh period
	InitialPanel   int `json:"initial_panel" yaml:"initial_panel"` // 0 tuner, 1 dial
}

type EncoderPins struct {
	A      int `json:"a" yaml:"a"`
	B      int `json:"b" yaml:"b"`
	Button int `json:"button" yaml:"button"` // active low, pulled up
}

type LCDConfig struct {
	RS        int    `json:"rs" yaml:"rs"`
	RW        int    `json:"rw" yaml:"rw"`
	E         int    `json:"e" yaml:"e"`
	Data      [4]int `json:"data" yaml:"data"` // D4..D7
	Backlight int    `json:"backlight" yaml:"backlight"`
	Cols      int    `json:"cols" yaml:"cols"`
	Rows      int    `json:"rows" yaml:"rows"`
}

// SimlinkConfig is published on "config/simlink".
type SimlinkConfig struct {
	Transport    string      `json:"transport" yaml:"transport"` // "uart" or a registered name
	UART         *UARTParams `json:"uart,omitempty" yaml:"uart,omitempty"`
	BackoffMinMs int         `json:"backoff_min_ms" yaml:"backoff_min_ms"`
	BackoffMaxMs int         `json:"backoff_max_ms" yaml:"backoff_max_ms"`
	PingMs       int         `json:"ping_ms" yaml:"ping_ms"` // 0 disables pings
}

// GearConfig is published on "config/gear".
type GearConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Switch  int    `json:"switch" yaml:"switch"` // closed (low) = gear down
	Red     [3]int `json:"red" yaml:"red"`       // nose, left, right
	Green   [3]int `json:"green" yaml:"green"`
}

// HeartbeatConfig is published on "config/heartbeat".
type HeartbeatConfig struct {
	IntervalMs int `json:"interval_ms" yaml:"interval_ms"`
}
