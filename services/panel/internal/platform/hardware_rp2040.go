//go:build rp2040

package platform

import (
	"machine"
	"time"

	"tinygo.org/x/drivers/encoders"
	"tinygo.org/x/drivers/hd44780"

	"omnistuff-go/errcode"
	"omnistuff-go/services/panel/internal/gear"
	"omnistuff-go/services/panel/internal/input"
	"omnistuff-go/types"
	"omnistuff-go/x/conv"
	"omnistuff-go/x/ramp"
	"omnistuff-go/x/strx"
)

// Open configures the board's pins and drivers.
func Open(p types.PanelConfig, g types.GearConfig) (Hardware, error) {
	in, err := newEncoderInput(p)
	if err != nil {
		return Hardware{}, err
	}
	lcd, err := newLCD(p.LCD)
	if err != nil {
		return Hardware{}, err
	}
	hw := Hardware{Input: in, Display: lcd}
	if g.Enabled && connected(g.Switch) {
		sw := machine.Pin(g.Switch)
		sw.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
		hw.GearSwitch = &gearSwitch{pin: sw, deb: input.NewDebouncer(ms(p.DebounceMs), true)}
		hw.GearLamps = newLamps(g)
	}
	return hw, nil
}

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

func pin(n int) machine.Pin {
	if n < 0 {
		return machine.NoPin
	}
	return machine.Pin(n)
}

// ----------------------------- Encoders --------------------------------------

type encoderInput struct {
	left, right       *encoders.QuadratureDevice
	leftBtn, rightBtn machine.Pin
	leftDeb, rightDeb *input.Debouncer
}

func newEncoderInput(p types.PanelConfig) (*encoderInput, error) {
	e := &encoderInput{
		left:     encoders.NewQuadratureViaInterrupt(pin(p.Left.A), pin(p.Left.B)),
		right:    encoders.NewQuadratureViaInterrupt(pin(p.Right.A), pin(p.Right.B)),
		leftBtn:  pin(p.Left.Button),
		rightBtn: pin(p.Right.Button),
		leftDeb:  input.NewDebouncer(ms(p.DebounceMs), true),
		rightDeb: input.NewDebouncer(ms(p.DebounceMs), true),
	}
	// Raw ticks; the sampler divides into detents.
	raw := encoders.QuadratureConfig{Precision: 1}
	err := setup("platform.encoder",
		func() error { return e.left.Configure(raw) },
		func() error { return e.right.Configure(raw) },
	)
	if err != nil {
		return nil, err
	}
	e.leftBtn.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	e.rightBtn.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	return e, nil
}

func (e *encoderInput) Read() input.Raw {
	now := time.Now()
	return input.Raw{
		LeftCount:  e.left.Position(),
		RightCount: e.right.Position(),
		LeftLevel:  e.leftDeb.Update(e.leftBtn.Get(), now),
		RightLevel: e.rightDeb.Update(e.rightBtn.Get(), now),
	}
}

type gearSwitch struct {
	pin machine.Pin
	deb *input.Debouncer
}

func (s *gearSwitch) Closed() bool { return !s.deb.Update(s.pin.Get(), time.Now()) }

// ----------------------------- LCD -------------------------------------------

type lcd struct {
	dev        hd44780.Device
	cols, rows int
	col, row   int
	backlight  *backlight
}

func newLCD(c types.LCDConfig) (*lcd, error) {
	data := make([]machine.Pin, len(c.Data))
	for i, n := range c.Data {
		data[i] = pin(n)
	}
	dev, err := hd44780.NewGPIO4Bit(data, pin(c.E), pin(c.RS), pin(c.RW))
	if err != nil {
		return nil, errcode.Wrap(errcode.InvalidConfig, "platform.lcd", err)
	}
	l := &lcd{dev: dev, cols: c.Cols, rows: c.Rows}
	if err := l.dev.Configure(hd44780.Config{Width: int16(c.Cols), Height: int16(c.Rows)}); err != nil {
		return nil, errcode.Wrap(errcode.Error, "platform.lcd", err)
	}
	if connected(c.Backlight) {
		l.backlight = newBacklight(machine.Pin(c.Backlight))
	}
	return l, nil
}

func (l *lcd) Clear() {
	l.dev.ClearDisplay()
	l.col, l.row = 0, 0
}

func (l *lcd) SetCursor(col, row int) { l.col, l.row = col, row }

// PrintText clips at the right edge instead of wrapping onto the next row.
func (l *lcd) PrintText(s string) {
	col := l.col
	l.col += len(s)
	if l.row < 0 || l.row >= l.rows {
		return
	}
	s = strx.Clip(s, col, l.cols)
	if s == "" {
		return
	}
	if col < 0 {
		col = 0
	}
	l.dev.SetCursor(uint8(col), uint8(l.row))
	_, _ = l.dev.Write([]byte(s))
	_ = l.dev.Display()
}

func (l *lcd) PrintNumber(n int) {
	var buf [12]byte
	l.PrintText(string(conv.Itoa(buf[:], int64(n))))
}

// SetBacklight fades towards on or off by one step per call; the panel
// calls it on every refresh.
func (l *lcd) SetBacklight(on bool) {
	if l.backlight == nil {
		return
	}
	var want uint16
	if on {
		want = backlightDuty
	}
	if l.backlight.fade.Target() != want {
		l.backlight.fade.Start(want, fadeSteps)
	}
	l.backlight.set(uint8(l.backlight.fade.Next()))
}

// ----------------------------- Backlight PWM ---------------------------------

// Local interface to avoid depending on an unexported concrete type in machine.
type pwmCtrl interface {
	Configure(cfg machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	Top() uint32
	Set(channel uint8, value uint32)
}

// Select controller handle for a given slice number (0..7).
func pwmGroupBySlice(slice uint8) pwmCtrl {
	switch slice {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	default:
		return machine.PWM7
	}
}

type backlight struct {
	ctrl pwmCtrl
	ch   uint8
	ok   bool
	pin  machine.Pin
	fade ramp.Linear
}

func newBacklight(p machine.Pin) *backlight {
	b := &backlight{ctrl: pwmGroupBySlice(uint8(p>>1) & 7), pin: p}
	// 1 kHz
	if err := b.ctrl.Configure(machine.PWMConfig{Period: 1e6}); err != nil {
		println("[platform] backlight pwm:", err.Error())
		p.Configure(machine.PinConfig{Mode: machine.PinOutput})
		return b
	}
	ch, err := b.ctrl.Channel(p)
	if err != nil {
		println("[platform] backlight channel:", err.Error())
		p.Configure(machine.PinConfig{Mode: machine.PinOutput})
		return b
	}
	b.ch, b.ok = ch, true
	return b
}

func (b *backlight) set(duty uint8) {
	if !b.ok {
		b.pin.Set(duty > 0)
		return
	}
	b.ctrl.Set(b.ch, b.ctrl.Top()*uint32(duty)/255)
}

// ----------------------------- Gear lamps ------------------------------------

type lamps struct {
	red, green [gear.NumLegs]machine.Pin
}

func newLamps(g types.GearConfig) *lamps {
	l := &lamps{}
	for i := 0; i < gear.NumLegs; i++ {
		l.red[i], l.green[i] = pin(g.Red[i]), pin(g.Green[i])
		for _, p := range []machine.Pin{l.red[i], l.green[i]} {
			if p != machine.NoPin {
				p.Configure(machine.PinConfig{Mode: machine.PinOutput})
				p.Low()
			}
		}
	}
	return l
}

func (l *lamps) Show(f gear.Lamps) {
	for i := 0; i < gear.NumLegs; i++ {
		if l.red[i] != machine.NoPin {
			l.red[i].Set(f.Red[i])
		}
		if l.green[i] != machine.NoPin {
			l.green[i].Set(f.Green[i])
		}
	}
}
