// Package present lays the selected panel out on a 16x2 character display.
package present

import (
	"omnistuff-go/services/panel/internal/modes"
	"omnistuff-go/services/panel/internal/targets"
	"omnistuff-go/store"
)

// Display is the character surface the presenter draws on.
type Display interface {
	Clear()
	SetCursor(col, row int)
	PrintText(s string)
	PrintNumber(n int)
}

// Backlighter is implemented by displays with a switchable backlight.
type Backlighter interface {
	SetBacklight(on bool)
}

const (
	Cols = 16
	Rows = 2

	Splash = "OmniStuff"

	// Paired layout columns.
	colLabel     = 0
	colIndicator = 4
	colValue     = 5
	colAuxMarker = 11
	colAux       = 12

	indicator = ">"
)

// Render draws the machine's current panel.
func Render(d Display, m *modes.Machine, st store.Store) {
	Backlight(d, true)
	d.Clear()
	p := m.Panel()
	switch p.Layout {
	case modes.LayoutPaired:
		renderPaired(d, p, m.Sub(), st)
	default:
		ch := m.Active()
		d.SetCursor(0, 0)
		d.PrintText(ch.Label)
		d.SetCursor(0, 1)
		printValue(d, ch.Target, st)
	}
}

// RenderOffline shows the splash and darkens the backlight.
func RenderOffline(d Display) {
	d.Clear()
	d.SetCursor(0, 0)
	d.PrintText(Splash)
	Backlight(d, false)
}

// Backlight switches the backlight if d has one.
func Backlight(d Display, on bool) {
	if b, ok := d.(Backlighter); ok {
		b.SetBacklight(on)
	}
}

// renderPaired shows two primary channels at a time, chosen by the
// selection, and every auxiliary channel on the right.
func renderPaired(d Display, p modes.Panel, sel int, st store.Store) {
	var primary []int
	row := 0
	for i, ch := range p.Channels {
		if !ch.Aux {
			primary = append(primary, i)
			continue
		}
		if row >= Rows {
			continue
		}
		if i == sel {
			d.SetCursor(colAuxMarker, row)
			d.PrintText(indicator)
		}
		d.SetCursor(colAux, row)
		printValue(d, ch.Target, st)
		row++
	}

	page := 0
	for n, i := range primary {
		if i == sel {
			page = n / Rows
			break
		}
	}
	for r := 0; r < Rows; r++ {
		n := page*Rows + r
		if n >= len(primary) {
			break
		}
		i := primary[n]
		ch := p.Channels[i]
		d.SetCursor(colLabel, r)
		d.PrintText(ch.Label)
		if i == sel {
			d.SetCursor(colIndicator, r)
			d.PrintText(indicator)
		}
		d.SetCursor(colValue, r)
		printValue(d, ch.Target, st)
	}
}

func printValue(d Display, t targets.Target, st store.Store) {
	// Whole-unit frequencies go out as plain numbers.
	if f, ok := t.(*targets.Frequency); ok && f.Band.Decimals == 0 {
		d.PrintNumber(st.Int(f.Key()))
		return
	}
	d.PrintText(t.Format(st))
}
