//go:build !rp2040

package main

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"omnistuff-go/services/config"
	"omnistuff-go/services/panel"
	"omnistuff-go/types"
	"omnistuff-go/x/strconvx"
)

const (
	minFrame = 10 * time.Millisecond
	logLines = 6
)

var (
	lcdOnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4")).
			Background(lipgloss.Color("#2E7D32")).
			Foreground(lipgloss.Color("#E8F5E9")).
			Padding(0, 1)

	lcdOffStyle = lcdOnStyle.
			Background(lipgloss.Color("#1B1B1B")).
			Foreground(lipgloss.Color("#626262"))

	redLamp   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555"))
	greenLamp = lipgloss.NewStyle().Foreground(lipgloss.Color("#43BF6D"))
	darkLamp  = lipgloss.NewStyle().Foreground(lipgloss.Color("#3A3A3A"))
	mutedText = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
	titleText = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF"))
)

type keyMap struct {
	LeftCCW, LeftCW   key.Binding
	RightCCW, RightCW key.Binding
	LeftBtn, RightBtn key.Binding
	Link, Gear, Quit  key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.LeftBtn, k.RightBtn, k.Link, k.Gear, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.LeftCCW, k.LeftCW, k.LeftBtn},
		{k.RightCCW, k.RightCW, k.RightBtn},
		{k.Link, k.Gear, k.Quit},
	}
}

func defaultKeys() keyMap {
	return keyMap{
		LeftCCW:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "left ccw")),
		LeftCW:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "left cw")),
		RightCCW: key.NewBinding(key.WithKeys("k"), key.WithHelp("k", "right ccw")),
		RightCW:  key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "right cw")),
		LeftBtn:  key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "hold/release left")),
		RightBtn: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "hold/release right")),
		Link:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "link up/down")),
		Gear:     key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "gear switch")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
	}
}

type tickMsg time.Time

type model struct {
	board    string
	sim      *panel.Sim
	keys     keyMap
	help     help.Model
	interval time.Duration
	log      []string
}

func newModel(b config.Board, online bool) (*model, error) {
	m := &model{
		board:    b.Name,
		keys:     defaultKeys(),
		help:     help.New(),
		interval: max(time.Duration(b.Panel.LoopIntervalMs)*time.Millisecond, minFrame),
	}
	m.help.ShowAll = true

	sim, err := panel.NewSim(b.Panel, b.Gear, m)
	if err != nil {
		return nil, err
	}
	sim.Store().OnWrite(func(w types.ValueWrite) {
		m.note("set " + w.Key + " " + strconvx.FormatValue(w))
	})
	sim.SetEnabled(online)
	m.sim = sim
	return m, nil
}

// Command records gear commands instead of sending them.
func (m *model) Command(name string) { m.note("cmd " + name) }

func (m *model) note(s string) {
	m.log = append(m.log, s)
	if len(m.log) > logLines {
		m.log = m.log[len(m.log)-logLines:]
	}
}

func (m *model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *model) Init() tea.Cmd { return m.tick() }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.sim.Step(time.Time(msg))
		return m, m.tick()

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		l, r := m.sim.Held()
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.LeftCCW):
			m.sim.Detents(-1, 0)
		case key.Matches(msg, m.keys.LeftCW):
			m.sim.Detents(1, 0)
		case key.Matches(msg, m.keys.RightCCW):
			m.sim.Detents(0, -1)
		case key.Matches(msg, m.keys.RightCW):
			m.sim.Detents(0, 1)
		case key.Matches(msg, m.keys.LeftBtn):
			m.sim.Hold(!l, r)
		case key.Matches(msg, m.keys.RightBtn):
			m.sim.Hold(l, !r)
		case key.Matches(msg, m.keys.Link):
			m.sim.SetEnabled(!m.sim.Enabled())
		case key.Matches(msg, m.keys.Gear):
			if m.sim.HasGear() {
				m.sim.SetGear(!m.sim.GearDown())
			}
		}
	}
	return m, nil
}

func (m *model) View() string {
	var b strings.Builder

	b.WriteString(titleText.Render("OmniStuff panel · " + m.board))
	b.WriteString("\n\n")

	top, bottom := m.sim.Rows()
	style := lcdOffStyle
	if m.sim.Backlight() {
		style = lcdOnStyle
	}
	b.WriteString(style.Render(top + "\n" + bottom))
	b.WriteString("\n")

	l, r := m.sim.Held()
	link := "down"
	if m.sim.Enabled() {
		link = "up"
	}
	b.WriteString(mutedText.Render("panel " + m.sim.PanelName() + "  channel " + m.sim.ChannelLabel() +
		"  link " + link + "  buttons " + held(l) + "/" + held(r)))
	b.WriteString("\n")

	if m.sim.HasGear() {
		b.WriteString(m.gearView())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	for _, line := range m.log {
		b.WriteString(mutedText.Render(line))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *model) gearView() string {
	red, green := m.sim.Lamps()
	sw := "UP"
	if m.sim.GearDown() {
		sw = "DN"
	}
	parts := []string{"gear " + sw}
	for i, leg := range []string{"N", "L", "R"} {
		style := darkLamp
		switch {
		case red[i]:
			style = redLamp
		case green[i]:
			style = greenLamp
		}
		parts = append(parts, style.Render("● "+leg))
	}
	return strings.Join(parts, "  ")
}

func held(on bool) string {
	if on {
		return "held"
	}
	return "-"
}
