// Package platform binds the panel to a board: encoders, buttons, the
// character LCD and the gear switch and lamps.
package platform

import (
	"omnistuff-go/errcode"
	"omnistuff-go/services/panel/internal/gear"
	"omnistuff-go/services/panel/internal/input"
	"omnistuff-go/services/panel/internal/present"
)

// Switch is a latching input, closed = pulled low.
type Switch interface {
	Closed() bool
}

// Hardware is what Open hands to the panel service. GearSwitch and
// GearLamps are nil on boards without the annunciator.
type Hardware struct {
	Input      input.Source
	Display    present.Display
	GearSwitch Switch
	GearLamps  gear.Output
}

// Backlight duty on a 0..255 scale while the simulator is live.
const backlightDuty = 128

// fadeSteps is how many refreshes a backlight change takes.
const fadeSteps = 8

func connected(pin int) bool { return pin >= 0 }

// setup runs each driver setup step in order and reports the first
// failure as InvalidConfig under op.
func setup(op string, steps ...func() error) error {
	for _, step := range steps {
		if err := step(); err != nil {
			return errcode.Wrap(errcode.InvalidConfig, op, err)
		}
	}
	return nil
}
