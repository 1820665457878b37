//go:build rp2040

// Command boardtest checks a freshly built panel: it shows the raw encoder
// positions, the button levels and the gear switch on the LCD and echoes
// every change to the console.
package main

import (
	"machine"
	"time"

	"tinygo.org/x/drivers/encoders"
	"tinygo.org/x/drivers/hd44780"

	"omnistuff-go/services/config"
	"omnistuff-go/x/conv"
)

const (
	board  = "pico"
	period = 100 * time.Millisecond
)

func pin(n int) machine.Pin {
	if n < 0 {
		return machine.NoPin
	}
	return machine.Pin(n)
}

func inputPin(n int) machine.Pin {
	p := pin(n)
	if p != machine.NoPin {
		p.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	}
	return p
}

// level renders an active-low input: 0 when pressed or closed.
func level(p machine.Pin) byte {
	if p == machine.NoPin {
		return '-'
	}
	if p.Get() {
		return '1'
	}
	return '0'
}

func main() {
	time.Sleep(2 * time.Second)
	println("[boardtest] boot, board", board)

	b, ok := config.BoardLookup(board)
	if !ok {
		println("[boardtest] no board config for", board)
		return
	}
	if err := b.Validate(); err != nil {
		println("[boardtest] invalid board config:", err.Error())
		return
	}
	p := b.Panel

	left := encoders.NewQuadratureViaInterrupt(pin(p.Left.A), pin(p.Left.B))
	right := encoders.NewQuadratureViaInterrupt(pin(p.Right.A), pin(p.Right.B))
	_ = left.Configure(encoders.QuadratureConfig{Precision: 1})
	_ = right.Configure(encoders.QuadratureConfig{Precision: 1})
	lb, rb := inputPin(p.Left.Button), inputPin(p.Right.Button)
	gs := machine.NoPin
	if b.Gear.Enabled {
		gs = inputPin(b.Gear.Switch)
	}

	data := make([]machine.Pin, len(p.LCD.Data))
	for i, n := range p.LCD.Data {
		data[i] = pin(n)
	}
	lcd, err := hd44780.NewGPIO4Bit(data, pin(p.LCD.E), pin(p.LCD.RS), pin(p.LCD.RW))
	if err != nil {
		println("[boardtest] lcd:", err.Error())
		return
	}
	if err := lcd.Configure(hd44780.Config{Width: int16(p.LCD.Cols), Height: int16(p.LCD.Rows)}); err != nil {
		println("[boardtest] lcd configure:", err.Error())
		return
	}
	if bl := pin(p.LCD.Backlight); bl != machine.NoPin {
		bl.Configure(machine.PinConfig{Mode: machine.PinOutput})
		bl.High()
	}

	var (
		last string
		num  [12]byte
	)
	for {
		top := "L" + string(conv.Itoa(num[:], int64(left.Position())))
		top += " R" + string(conv.Itoa(num[:], int64(right.Position())))

		bottom := string([]byte{'B', 'L', level(lb), ' ', 'B', 'R', level(rb), ' ', 'G', level(gs)})

		if s := top + "|" + bottom; s != last {
			last = s
			println("[boardtest]", top, "/", bottom)
			lcd.ClearDisplay()
			lcd.SetCursor(0, 0)
			lcd.Write([]byte(top))
			lcd.Display()
			lcd.SetCursor(0, 1)
			lcd.Write([]byte(bottom))
			lcd.Display()
		}
		time.Sleep(period)
	}
}
