package viz

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/omni-webdev/svt/internal/sim"
)

const (
	canvasWidth  = 64
	canvasHeight = 20
	graphHeight  = 6
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(0, 1)
	statsStyle  = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2).Width(38)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type TickMsg time.Time

// Model animates a field scenario frame by frame in the terminal.
type Model struct {
	scenario *sim.Scenario
	fps      int
	frame    int
	running  bool
	loop     bool
	canvas   *Canvas
	current  *sim.Frame
	energies []float64
	err      error
}

func NewModel(sc *sim.Scenario, fps int) Model {
	if fps <= 0 {
		fps = 10
	}
	return Model{
		scenario: sc,
		fps:      fps,
		running:  true,
		loop:     true,
		canvas:   NewCanvas(canvasWidth, canvasHeight),
		energies: make([]float64, 0, sc.Frames),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.frame = 0
			m.energies = m.energies[:0]
		}
		return m, nil

	case TickMsg:
		if m.running && m.err == nil {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) step() {
	if m.frame >= m.scenario.Frames {
		if !m.loop {
			m.running = false
			return
		}
		m.frame = 0
	}

	f, err := sim.EvalFrame(m.scenario, m.frame)
	if err != nil {
		m.err = err
		return
	}
	m.current = f
	if len(m.energies) < m.scenario.Frames {
		m.energies = append(m.energies, f.Stats.TotalEnergy)
	}

	m.canvas.Clear()
	m.canvas.DrawEnergy(f.Energy)
	m.frame++
}

func (m Model) View() string {
	if m.err != nil {
		return errStyle.Render(fmt.Sprintf("error: %v", m.err)) + "\n"
	}

	left := canvasStyle.Render(m.canvas.String())
	right := statsStyle.Render(m.statsView())
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	graph := ""
	if len(m.energies) > 1 {
		graph = graphStyle.Render(asciigraph.Plot(m.energies,
			asciigraph.Height(graphHeight),
			asciigraph.Width(canvasWidth+30),
			asciigraph.Caption("total energy"),
		))
	}

	help := helpStyle.Render("space pause · r restart · q quit")
	return lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render(fmt.Sprintf("svt · %s", m.scenario.Name)),
		body, graph, help) + "\n"
}

func (m Model) statsView() string {
	if m.current == nil {
		return "warming up..."
	}
	st := m.current.Stats
	row := func(label, value string) string {
		return labelStyle.Render(label) + valueStyle.Render(value)
	}
	lines := []string{
		row("frame", fmt.Sprintf("%d / %d", st.Index+1, m.scenario.Frames)),
		row("total energy", fmt.Sprintf("%.4g", st.TotalEnergy)),
		row("peak dist", fmt.Sprintf("%.3f", st.PeakDistance)),
		row("centroid", fmtVec(st.Centroid)),
		row("sources", fmt.Sprintf("%d", len(m.scenario.Sources))),
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func fmtVec(v []float64) string {
	switch len(v) {
	case 2:
		return fmt.Sprintf("(%.3f, %.3f)", v[0], v[1])
	case 3:
		return fmt.Sprintf("(%.3f, %.3f, %.3f)", v[0], v[1], v[2])
	default:
		return fmt.Sprintf("%v", v)
	}
}
