package present

import (
	"strings"
	"testing"

	"omnistuff-go/services/panel/internal/modes"
	"omnistuff-go/services/panel/internal/targets"
	"omnistuff-go/store"
	"omnistuff-go/types"
)

// line overlays text at the given columns on a blank row.
func line(at map[int]string) string {
	b := []byte(strings.Repeat(" ", Cols))
	for col, s := range at {
		copy(b[col:], s)
	}
	return string(b)
}

func fixture(t *testing.T) (*modes.Machine, *store.Memory) {
	t.Helper()
	st := store.NewMemory()
	decl := []struct {
		key  string
		kind types.ValueKind
		v    float64
	}{
		{"nav1", types.KindInt, 10800}, {"nav2", types.KindInt, 11345},
		{"com1", types.KindInt, 11800}, {"com2", types.KindInt, 13597},
		{"adf1", types.KindInt, 250}, {"adf2", types.KindInt, 599},
		{"xpmode", types.KindInt, targets.XPAlt}, {"xpcode", types.KindInt, 1200},
		{"hdg", types.KindFloat, 123.5}, {"obs", types.KindFloat, 7},
	}
	for _, d := range decl {
		if err := st.Declare(d.key, d.kind, d.v); err != nil {
			t.Fatalf("declare %s: %v", d.key, err)
		}
	}
	m, err := modes.New([]modes.Panel{
		{Name: "tune", Layout: modes.LayoutPaired, Channels: []modes.Channel{
			{Label: "NAV1", Target: targets.NewFrequency("nav1", targets.NAV)},
			{Label: "NAV2", Target: targets.NewFrequency("nav2", targets.NAV)},
			{Label: "COM1", Target: targets.NewFrequency("com1", targets.COM)},
			{Label: "COM2", Target: targets.NewFrequency("com2", targets.COM)},
			{Label: "ADF1", Target: targets.NewFrequency("adf1", targets.ADF)},
			{Label: "ADF2", Target: targets.NewFrequency("adf2", targets.ADF)},
			{Label: "XPDR", Target: targets.NewBoundedEnum("xpmode", targets.TransponderModeLabels), Aux: true},
			{Label: "SQWK", Target: targets.NewTransponderCode("xpcode", "xpmode"), Aux: true},
		}},
		{Name: "dial", Layout: modes.LayoutSingle, Channels: []modes.Channel{
			{Label: "Heading P1", Target: targets.NewDial("hdg", 0, 360, 1, 10, targets.Wrap)},
			{Label: "NAV1 OBS", Target: targets.NewDial("obs", 0, 360, 1, 10, targets.Wrap)},
		}},
	}, 0)
	if err != nil {
		t.Fatalf("modes.New: %v", err)
	}
	return m, st
}

func TestRender_Paired(t *testing.T) {
	cases := []struct {
		name string
		sub  int
		rows [2]string
	}{
		{"nav1 selected", 0, [2]string{
			line(map[int]string{0: "NAV1", 4: ">", 5: "108.00", 12: " ALT"}),
			line(map[int]string{0: "NAV2", 5: "113.45", 12: "1200"}),
		}},
		{"com2 selected", 3, [2]string{
			line(map[int]string{0: "COM1", 5: "118.00", 12: " ALT"}),
			line(map[int]string{0: "COM2", 4: ">", 5: "135.97", 12: "1200"}),
		}},
		{"adf1 selected", 4, [2]string{
			line(map[int]string{0: "ADF1", 4: ">", 5: "250", 12: " ALT"}),
			line(map[int]string{0: "ADF2", 5: "599", 12: "1200"}),
		}},
		{"mode selected shows first pair", 6, [2]string{
			line(map[int]string{0: "NAV1", 5: "108.00", 11: ">", 12: " ALT"}),
			line(map[int]string{0: "NAV2", 5: "113.45", 12: "1200"}),
		}},
		{"code selected shows first pair", 7, [2]string{
			line(map[int]string{0: "NAV1", 5: "108.00", 12: " ALT"}),
			line(map[int]string{0: "NAV2", 5: "113.45", 11: ">", 12: "1200"}),
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, st := fixture(t)
			m.AdvanceSub(tc.sub)
			g := NewGrid()
			Render(g, m, st)
			for r := 0; r < Rows; r++ {
				if got := g.Row(r); got != tc.rows[r] {
					t.Errorf("row %d:\n got %q\nwant %q", r, got, tc.rows[r])
				}
			}
			if !g.Backlight() {
				t.Error("backlight should be on while rendering")
			}
		})
	}
}

func TestRender_CodeIsZeroPadded(t *testing.T) {
	m, st := fixture(t)
	st.SetInt("xpcode", 7)
	st.SetInt("xpmode", targets.XPStandby)
	g := NewGrid()
	Render(g, m, st)
	if got := g.Row(1)[12:]; got != "0007" {
		t.Fatalf("code column %q", got)
	}
	if got := g.Row(0)[12:]; got != "STBY" {
		t.Fatalf("mode column %q", got)
	}
}

func TestRender_Single(t *testing.T) {
	m, st := fixture(t)
	m.AdvanceMeta(1)
	g := NewGrid()
	Render(g, m, st)
	if want := line(map[int]string{0: "Heading P1"}); g.Row(0) != want {
		t.Fatalf("row0 %q want %q", g.Row(0), want)
	}
	if want := line(map[int]string{0: "123.50"}); g.Row(1) != want {
		t.Fatalf("row1 %q want %q", g.Row(1), want)
	}

	m.AdvanceSub(1)
	Render(g, m, st)
	if want := line(map[int]string{0: "7.00"}); g.Row(1) != want {
		t.Fatalf("row1 %q want %q", g.Row(1), want)
	}
}

func TestRender_ShowsValueAfterEdit(t *testing.T) {
	m, st := fixture(t)
	m.Dispatch(st, 0, 1)
	g := NewGrid()
	Render(g, m, st)
	if got := g.Row(0)[5:11]; got != "108.05" {
		t.Fatalf("value %q", got)
	}
}

func TestRenderOffline(t *testing.T) {
	g := NewGrid()
	g.SetBacklight(true)
	RenderOffline(g)
	if want := line(map[int]string{0: Splash}); g.Row(0) != want {
		t.Fatalf("row0 %q", g.Row(0))
	}
	if g.Row(1) != line(nil) {
		t.Fatalf("row1 %q", g.Row(1))
	}
	if g.Backlight() {
		t.Fatal("backlight should be off")
	}
}

func TestGrid_ClipsAtEdge(t *testing.T) {
	g := NewGrid()
	g.SetCursor(14, 0)
	g.PrintText("abcd")
	g.SetCursor(0, 5)
	g.PrintText("lost")
	g.SetCursor(0, 1)
	g.PrintNumber(-42)
	if g.Row(0)[14:] != "ab" {
		t.Fatalf("row0 %q", g.Row(0))
	}
	if !strings.HasPrefix(g.Row(1), "-42 ") {
		t.Fatalf("row1 %q", g.Row(1))
	}
}
