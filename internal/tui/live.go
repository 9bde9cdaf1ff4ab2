// Package tui renders a live terminal view of a running simulation:
// a biomass chart, per-species readouts and a hurricane banner.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/ecosim/internal/engine"
	"github.com/san-kum/ecosim/internal/metrics"
)

const chartCapacity = 600

var (
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	stormStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	extinctStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Strikethrough(true)
	graphStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	pausedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
)

type TickMsg time.Time

// Model drives the engine from the bubbletea event loop.
type Model struct {
	eng    *engine.Engine
	fps    int
	speed  float64 // simulated time units per wall second
	paused bool

	width, height int

	biomass   []float64
	lastEvent *engine.Event
	eventAt   time.Time

	shannon   *metrics.Shannon
	survivors *metrics.Survivors
}

func NewModel(eng *engine.Engine, fps int, speed float64) Model {
	if fps <= 0 {
		fps = 30
	}
	if speed <= 0 {
		speed = 1
	}
	return Model{
		eng:       eng,
		fps:       fps,
		speed:     speed,
		biomass:   make([]float64, 0, chartCapacity),
		shannon:   metrics.NewShannon(),
		survivors: metrics.NewSurvivors(),
	}
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "r":
			m.eng.Reset(nil)
			m.biomass = m.biomass[:0]
			m.lastEvent = nil
		case "+", "=":
			m.speed *= 2
		case "-", "_":
			if m.speed > 0.125 {
				m.speed /= 2
			}
		}
		return m, nil

	case TickMsg:
		if !m.paused {
			if ev, hit := m.eng.Step(m.speed / float64(m.fps)); hit {
				m.lastEvent = &ev
				m.eventAt = time.Now()
			}
			pop := m.eng.Populations()
			m.shannon.Observe(pop, m.eng.Time())
			m.survivors.Observe(pop, m.eng.Time())
			m.biomass = append(m.biomass, pop.Total())
			if len(m.biomass) > chartCapacity {
				m.biomass = m.biomass[len(m.biomass)-chartCapacity:]
			}
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	title := "ecosim live"
	if m.paused {
		title += pausedStyle.Render("  [paused]")
	}
	b.WriteString(headerStyle.Render(title))
	b.WriteString("\n")

	b.WriteString(m.statsView())
	b.WriteString("\n")
	b.WriteString(m.chartView())
	b.WriteString("\n")
	b.WriteString(m.speciesView())

	if m.lastEvent != nil && time.Since(m.eventAt) < 4*time.Second {
		banner := fmt.Sprintf("hurricane %s at t=%.2f, damage %.0f%%",
			m.lastEvent.Label, m.lastEvent.T, m.lastEvent.Damage*100)
		b.WriteString("\n")
		b.WriteString(stormStyle.Render(banner))
	}

	b.WriteString(helpStyle.Render("\nspace pause · r reset · +/- speed · q quit"))
	return b.String()
}

func (m Model) statsView() string {
	pop := m.eng.Populations()
	rows := []struct {
		label string
		value string
	}{
		{"time", fmt.Sprintf("%.2f", m.eng.Time())},
		{"speed", fmt.Sprintf("%.2fx", m.speed)},
		{"biomass", fmt.Sprintf("%.3f", pop.Total())},
		{"diversity", fmt.Sprintf("%.3f", m.shannon.Value())},
		{"survivors", fmt.Sprintf("%d / %d", int(m.survivors.Value()), len(pop))},
		{"hurricanes", fmt.Sprintf("%d", len(m.eng.Events()))},
	}

	var b strings.Builder
	for _, r := range rows {
		b.WriteString(labelStyle.Render(r.label))
		b.WriteString(valueStyle.Render(r.value))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) chartView() string {
	if len(m.biomass) < 2 {
		return graphStyle.Render("collecting samples...")
	}
	w := m.width - 12
	if w < 20 {
		w = 60
	}
	data := m.biomass
	if len(data) > w {
		data = data[len(data)-w:]
	}
	return graphStyle.Render(asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Caption("total biomass"),
	))
}

func (m Model) speciesView() string {
	pop := m.eng.Populations()
	extinct := make(map[int]bool)
	for _, i := range m.eng.Extinct() {
		extinct[i] = true
	}

	var b strings.Builder
	for i, n := range pop {
		cell := fmt.Sprintf("s%-3d %6.3f   ", i, n)
		if extinct[i] {
			b.WriteString(extinctStyle.Render(cell))
		} else {
			b.WriteString(valueStyle.Render(cell))
		}
		if (i+1)%4 == 0 {
			b.WriteString("\n")
		}
	}
	if len(pop)%4 != 0 {
		b.WriteString("\n")
	}
	return b.String()
}

// Run starts the live view and blocks until the user quits.
func Run(eng *engine.Engine, fps int, speed float64) error {
	p := tea.NewProgram(NewModel(eng, fps, speed))
	_, err := p.Run()
	return err
}
