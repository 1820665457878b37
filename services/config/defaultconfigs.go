package config

import "omnistuff-go/types"

// -----------------------------------------------------------------------------
// Embedded configuration
//
// Key: board name (same value placed in ctx under CtxBoardKey)
// -----------------------------------------------------------------------------

const notConnected = -1

var lcd1602 = types.LCDConfig{
	RS: 6, RW: 7, E: 8,
	Data:      [4]int{9, 10, 11, 12},
	Backlight: 13,
	Cols:      16, Rows: 2,
}

// Pico wiring: encoders on GP2-4 and GP16-18, gear on GP19-22 and GP26-28,
// simulator link on UART0 (GP0/GP1).
var boardPico = Board{
	Name: "pico",
	Panel: types.PanelConfig{
		Left:           types.EncoderPins{A: 2, B: 3, Button: 4},
		Right:          types.EncoderPins{A: 17, B: 16, Button: 18},
		LCD:            lcd1602,
		TicksPerDetent: 4,
		DebounceMs:     5,
		LoopIntervalMs: 2,
		RefreshUs:      35525,
		InitialPanel:   1,
	},
	Simlink: types.SimlinkConfig{
		Transport: "uart",
		UART: &types.UARTParams{
			Bus: "uart0", Baud: 115200, TX: 0, RX: 1,
			DataBits: 8, StopBits: 1, Parity: types.ParityNone,
		},
		BackoffMinMs: 250,
		BackoffMaxMs: 5000,
		PingMs:       2000,
	},
	Gear: types.GearConfig{
		Enabled: true,
		Switch:  19,
		Red:     [3]int{20, 21, 22},
		Green:   [3]int{26, 27, 28},
	},
	Heartbeat: types.HeartbeatConfig{IntervalMs: 2000},
}

// Panel-only build without the gear annunciator.
var boardPicoLite = func() Board {
	b := boardPico
	b.Name = "pico-lite"
	b.Gear = types.GearConfig{
		Switch: notConnected,
		Red:    [3]int{notConnected, notConnected, notConnected},
		Green:  [3]int{notConnected, notConnected, notConnected},
	}
	return b
}()

var embeddedBoards = map[string]Board{
	"pico":      boardPico,
	"pico-lite": boardPicoLite,
}
