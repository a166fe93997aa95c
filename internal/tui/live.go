// Package tui provides the live terminal view of a rope simulation.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/ropesim/internal/grapple"
	"github.com/san-kum/ropesim/internal/rope"
	"github.com/san-kum/ropesim/internal/viz"
)

const (
	canvasWidth  = 70
	canvasHeight = 20
	historyCap   = 240
	frameDt      = 1.0 / 60.0
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(0, 2).Width(30)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(11)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	onStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true)
	offStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(16*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// switchedSource gates a scenario's active flag behind a manual toggle so
// the view can exercise attach/detach interactively.
type switchedSource struct {
	grapple.Scenario
	engaged *bool
}

func (s switchedSource) IsActive() bool { return *s.engaged && s.Scenario.IsActive() }

// Model is the bubbletea model for the live rope view.
type Model struct {
	name     string
	scenario grapple.Scenario
	sampler  *rope.Sampler
	engaged  *bool // heap-shared with the sampler's source across model copies

	t       float64
	paused  bool
	history []float64
	canvas  *viz.Canvas
}

func NewModel(name string, scenario grapple.Scenario, cfg rope.Config) Model {
	engaged := true
	m := Model{
		name:     name,
		scenario: scenario,
		engaged:  &engaged,
		history:  make([]float64, 0, historyCap),
		canvas:   viz.NewCanvas(canvasWidth, canvasHeight),
	}
	m.sampler = rope.NewSampler(switchedSource{Scenario: scenario, engaged: m.engaged}, cfg)
	return m
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "g":
			*m.engaged = !*m.engaged
		case "r":
			m.t = 0
			m.history = m.history[:0]
			m.sampler.Spring().Reset()
		case "+", "=":
			m.sampler.WaveHeight += 0.1
		case "-":
			if m.sampler.WaveHeight > 0.1 {
				m.sampler.WaveHeight -= 0.1
			}
		}
		return m, nil

	case tickMsg:
		if !m.paused {
			m.scenario.Advance(frameDt)
			m.sampler.Tick(frameDt)
			m.t += frameDt

			m.history = append(m.history, m.sampler.Spring().Value())
			if len(m.history) > historyCap {
				m.history = m.history[1:]
			}
		}
		return m, tick()
	}

	return m, nil
}

func (m Model) View() string {
	m.canvas.Clear()

	fitPoints := append([]mgl64.Vec3{m.scenario.OriginPoint(), m.scenario.GrapplePoint()}, m.sampler.Points()...)
	view := viz.Fit(fitPoints, 0.15)

	view.DrawRope(m.canvas, m.sampler.Points())
	view.DrawMarker(m.canvas, m.scenario.OriginPoint())
	view.DrawMarker(m.canvas, m.scenario.GrapplePoint())

	stats := m.renderStats()
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.canvas.String(), stats)

	var b strings.Builder
	b.WriteString(headerStyle.Render("ropesim · "+m.name) + "\n\n")
	b.WriteString(body)
	if graph := viz.Sparkline(m.history, 60); graph != "" {
		b.WriteString("\n" + graphStyle.Render(graph))
	}
	b.WriteString(helpStyle.Render("\n[space] pause  [g] grapple  [r] reset  [+/-] wave height  [q] quit"))
	return b.String()
}

func (m Model) renderStats() string {
	status := onStyle.Render("attached")
	if !m.sampler.Active() {
		status = offStyle.Render("detached")
	}

	rows := []string{
		labelStyle.Render("status") + status,
		labelStyle.Render("t") + valueStyle.Render(fmt.Sprintf("%.2fs", m.t)),
		labelStyle.Render("spring") + valueStyle.Render(fmt.Sprintf("%+.4f", m.sampler.Spring().Value())),
		labelStyle.Render("velocity") + valueStyle.Render(fmt.Sprintf("%+.3f", m.sampler.Spring().Velocity())),
		labelStyle.Render("deflection") + valueStyle.Render(fmt.Sprintf("%.4f", rope.Deflection(m.sampler.Points()))),
		labelStyle.Render("wave h") + valueStyle.Render(fmt.Sprintf("%.2f", m.sampler.WaveHeight)),
		labelStyle.Render("samples") + valueStyle.Render(fmt.Sprintf("%d", len(m.sampler.Points()))),
	}
	return statsStyle.Render(strings.Join(rows, "\n"))
}

// Run starts the live view and blocks until it exits.
func Run(name string, scenario grapple.Scenario, cfg rope.Config) error {
	p := tea.NewProgram(NewModel(name, scenario, cfg))
	_, err := p.Run()
	return err
}
