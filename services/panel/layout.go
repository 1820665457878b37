package panel

import (
	"omnistuff-go/services/panel/internal/modes"
	"omnistuff-go/services/panel/internal/targets"
	"omnistuff-go/store"
	"omnistuff-go/types"
)

// Simulator parameters edited by the panels.
const (
	KeyNav1   = "sim/cockpit2/radios/actuators/nav1_frequency_hz"
	KeyNav2   = "sim/cockpit2/radios/actuators/nav2_frequency_hz"
	KeyCom1   = "sim/cockpit2/radios/actuators/com1_frequency_hz"
	KeyCom2   = "sim/cockpit2/radios/actuators/com2_frequency_hz"
	KeyAdf1   = "sim/cockpit2/radios/actuators/adf1_frequency_hz"
	KeyAdf2   = "sim/cockpit2/radios/actuators/adf2_frequency_hz"
	KeyXPMode = "sim/cockpit/radios/transponder_mode"
	KeyXPCode = "sim/cockpit2/radios/actuators/transponder_code"

	KeyHeading = "sim/cockpit2/autopilot/heading_dial_deg_mag_pilot"
	KeyNav1Obs = "sim/cockpit2/radios/actuators/nav1_obs_deg_mag_pilot"
	KeyVSI     = "sim/cockpit2/autopilot/vvi_dial_fpm"
)

// Panel indices.
const (
	PanelTuner = iota
	PanelDial
)

var defaults = []struct {
	key  string
	kind types.ValueKind
	v    float64
}{
	{KeyNav1, types.KindInt, 10800},
	{KeyNav2, types.KindInt, 10800},
	{KeyCom1, types.KindInt, 11800},
	{KeyCom2, types.KindInt, 11800},
	{KeyAdf1, types.KindInt, 190},
	{KeyAdf2, types.KindInt, 190},
	{KeyXPMode, types.KindInt, targets.XPStandby},
	{KeyXPCode, types.KindInt, 1200},
	{KeyHeading, types.KindFloat, 0},
	{KeyNav1Obs, types.KindFloat, 0},
	{KeyVSI, types.KindFloat, 0},
}

// Declare registers every key the panels edit.
func Declare(m *store.Memory) error {
	for _, d := range defaults {
		if err := m.Declare(d.key, d.kind, d.v); err != nil {
			return err
		}
	}
	return nil
}

// Panels builds the tuner and dial panels in PanelTuner, PanelDial order.
func Panels() []modes.Panel {
	return []modes.Panel{
		PanelTuner: {
			Name:   "tuner",
			Layout: modes.LayoutPaired,
			Channels: []modes.Channel{
				{Label: "NAV1", Target: targets.NewFrequency(KeyNav1, targets.NAV)},
				{Label: "NAV2", Target: targets.NewFrequency(KeyNav2, targets.NAV)},
				{Label: "COM1", Target: targets.NewFrequency(KeyCom1, targets.COM)},
				{Label: "COM2", Target: targets.NewFrequency(KeyCom2, targets.COM)},
				{Label: "ADF1", Target: targets.NewFrequency(KeyAdf1, targets.ADF)},
				{Label: "ADF2", Target: targets.NewFrequency(KeyAdf2, targets.ADF)},
				{Label: "XPDR", Target: targets.NewBoundedEnum(KeyXPMode, targets.TransponderModeLabels), Aux: true},
				{Label: "SQWK", Target: targets.NewTransponderCode(KeyXPCode, KeyXPMode), Aux: true},
			},
		},
		PanelDial: {
			Name:   "dial",
			Layout: modes.LayoutSingle,
			Channels: []modes.Channel{
				{Label: "Heading P1", Target: targets.NewDial(KeyHeading, 0, 360, 0.25, 20, targets.Wrap)},
				{Label: "NAV1 OBS", Target: targets.NewDial(KeyNav1Obs, 0, 360, 0.25, 20, targets.Wrap)},
				{Label: "VSI Bug", Target: targets.NewDial(KeyVSI, -6000, 6000, 100, 5, targets.Clamp)},
			},
		},
	}
}
