package present

import "omnistuff-go/x/conv"

// Grid is an in-memory Display. Text past the right edge is dropped.
type Grid struct {
	cells     [Rows][Cols]byte
	col, row  int
	backlight bool
}

var (
	_ Display     = (*Grid)(nil)
	_ Backlighter = (*Grid)(nil)
)

func NewGrid() *Grid {
	g := &Grid{}
	g.Clear()
	return g
}

func (g *Grid) Clear() {
	for r := range g.cells {
		for c := range g.cells[r] {
			g.cells[r][c] = ' '
		}
	}
	g.col, g.row = 0, 0
}

func (g *Grid) SetCursor(col, row int) { g.col, g.row = col, row }

func (g *Grid) PrintText(s string) {
	for i := 0; i < len(s); i++ {
		if g.row >= 0 && g.row < Rows && g.col >= 0 && g.col < Cols {
			g.cells[g.row][g.col] = s[i]
		}
		g.col++
	}
}

func (g *Grid) PrintNumber(n int) {
	var buf [24]byte
	g.PrintText(string(conv.Itoa(buf[:], int64(n))))
}

func (g *Grid) SetBacklight(on bool) { g.backlight = on }
func (g *Grid) Backlight() bool      { return g.backlight }

// Row returns row r as a string of Cols characters.
func (g *Grid) Row(r int) string {
	if r < 0 || r >= Rows {
		return ""
	}
	return string(g.cells[r][:])
}

func (g *Grid) String() string { return g.Row(0) + "\n" + g.Row(1) }
