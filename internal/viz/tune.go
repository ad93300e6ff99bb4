// Package viz is the interactive terminal tuning view: adjust PID gains
// key by key and watch the closed-loop step response and its metrics
// re-simulate live.
package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"pidlab/internal/analysis"
	"pidlab/internal/loop"
	"pidlab/internal/lti"
	"pidlab/internal/metrics"
	"pidlab/internal/pid"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	badStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	goodStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

var gainNames = []string{"kp", "ki", "kd"}

// Model is the bubbletea state of the tuning view
type Model struct {
	system  string
	plant   lti.TransferFunction
	gains   pid.Gains
	horizon loop.Horizon

	selected int
	step     float64

	resp    []float64
	met     metrics.StepMetrics
	rep     *analysis.Report
	simErr  error
	width   int
	height  int
	showAll bool
}

// NewModel seeds the view with a plant and starting gains
func NewModel(system string, plant lti.TransferFunction, gains pid.Gains, h loop.Horizon) Model {
	m := Model{
		system:  system,
		plant:   plant,
		gains:   gains,
		horizon: h,
		step:    0.1,
		width:   80,
		height:  24,
	}
	m.resimulate()
	return m
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j", "tab":
		if m.selected < len(gainNames)-1 {
			m.selected++
		}
	case "left", "h":
		m.adjust(-m.step)
	case "right", "l":
		m.adjust(m.step)
	case "+":
		m.step *= 10
	case "-":
		m.step /= 10
	case "r":
		m.gains = pid.Gains{}
		m.resimulate()
	case "m":
		m.showAll = !m.showAll
	}
	return m, nil
}

func (m *Model) adjust(delta float64) {
	switch m.selected {
	case 0:
		m.gains.Kp += delta
	case 1:
		m.gains.Ki += delta
	case 2:
		m.gains.Kd += delta
	}
	m.resimulate()
}

func (m *Model) resimulate() {
	m.resp, m.met, m.rep, m.simErr = nil, metrics.StepMetrics{}, nil, nil

	resp, err := loop.StepResponse(m.gains, m.plant, m.horizon)
	if err != nil {
		m.simErr = err
		return
	}
	m.resp = resp.Output

	met, err := metrics.Step(resp.Time, resp.Output, loop.DefaultReference, metrics.DefaultSettlingTolerance)
	if err != nil {
		m.simErr = err
		return
	}
	m.met = met

	cl, err := loop.ServoTransferFunction(m.gains, m.plant)
	if err != nil {
		m.simErr = err
		return
	}
	m.rep, m.simErr = analysis.ClosedLoop(cl)
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("pidlab tune — %s", m.system)))
	b.WriteString("\n")

	gains := []float64{m.gains.Kp, m.gains.Ki, m.gains.Kd}
	for i, name := range gainNames {
		line := fmt.Sprintf("%s %8.3f", labelStyle.Render(name), gains[i])
		if i == m.selected {
			line = activeStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	b.WriteString(labelStyle.Render("step") + fmt.Sprintf(" %8.3g", m.step) + "\n")

	if m.simErr != nil {
		b.WriteString("\n" + badStyle.Render(fmt.Sprintf("simulation failed: %v", m.simErr)) + "\n")
	} else if len(m.resp) > 0 {
		graphWidth := m.width - 12
		if graphWidth < 20 {
			graphWidth = 20
		}
		graph := asciigraph.Plot(m.resp,
			asciigraph.Height(10),
			asciigraph.Width(graphWidth),
			asciigraph.Caption("servo step response"),
		)
		b.WriteString(graphStyle.Render(graph) + "\n")
		b.WriteString(m.renderMetrics())
	}

	b.WriteString(helpStyle.Render("↑/↓ select gain · ←/→ adjust · +/- step size · r reset · m more · q quit"))
	return b.String()
}

func (m Model) renderMetrics() string {
	var b strings.Builder
	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label) + " " + valueStyle.Render(value) + "\n")
	}
	row("overshoot", fmt.Sprintf("%.1f%%", m.met.OvershootPercent))
	row("settling", fmt.Sprintf("%.2fs", m.met.SettlingTime))
	row("rise", fmt.Sprintf("%.2fs", m.met.RiseTime))
	row("sse", fmt.Sprintf("%.4f", m.met.SteadyStateError))
	if m.showAll {
		row("peak time", fmt.Sprintf("%.2fs", m.met.PeakTime))
		row("iae", fmt.Sprintf("%.4f", m.met.IAE))
		row("ise", fmt.Sprintf("%.4f", m.met.ISE))
		row("itae", fmt.Sprintf("%.4f", m.met.ITAE))
	}
	if m.rep != nil {
		verdict := goodStyle.Render("stable")
		if !m.rep.Stable {
			verdict = badStyle.Render("UNSTABLE")
		}
		b.WriteString(labelStyle.Render("loop") + " " + verdict +
			valueStyle.Render(fmt.Sprintf("  dominant pole %.3g%+.3gi", real(m.rep.Dominant), imag(m.rep.Dominant))) + "\n")
	}
	return b.String()
}

// Run starts the tuning view in the alternate screen
func Run(system string, plant lti.TransferFunction, gains pid.Gains, h loop.Horizon) error {
	p := tea.NewProgram(NewModel(system, plant, gains, h), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
