package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/metrics"
	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/sim"
)

const (
	historyCapacity = 300
	zoomStep        = 1.25
)

type TickMsg time.Time

// Model is the live view: one integrator step per tick, then a redraw.
type Model struct {
	title      string
	cfg        config.RenderConfig
	initial    *physics.System
	sys        *physics.System
	integrator sim.Integrator
	dt         float64
	t          float64
	steps      int
	scene      *Scene
	styles     styles
	trueScale  bool
	running    bool
	drift      *metrics.EnergyDrift
	driftHist  []float64
	err        error
	logger     log.Logger
}

type ModelOption func(*Model)

func WithModelLogger(l log.Logger) ModelOption {
	return func(m *Model) { m.logger = l }
}

// NewModel keeps a copy of sys for reset and steps sys itself.
func NewModel(title string, sys *physics.System, integ sim.Integrator, dt float64, cfg config.RenderConfig, opts ...ModelOption) Model {
	m := Model{
		title:      title,
		cfg:        cfg,
		initial:    sys.Clone(),
		sys:        sys,
		integrator: integ,
		dt:         dt,
		scene:      NewScene(cfg),
		styles:     newStyles(GetTheme(cfg.Theme)),
		trueScale:  cfg.TrueScale,
		running:    true,
		drift:      metrics.NewEnergyDrift(),
		driftHist:  make([]float64, 0, historyCapacity),
		logger:     log.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.drift.Observe(sys, 0)
	m.scene.Draw(m.sys, m.trueScale)
	return m
}

func (m Model) tick() tea.Cmd {
	fps := m.cfg.FPS
	if fps <= 0 {
		fps = config.DefaultFPS
	}
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.trueScale = !m.trueScale
		case "p":
			if m.err == nil {
				m.running = !m.running
			}
		case "+", "=":
			m.scene.ZoomBy(zoomStep)
		case "-", "_":
			m.scene.ZoomBy(1 / zoomStep)
		case "r":
			m.reset()
		}
		m.scene.Draw(m.sys, m.trueScale)
		return m, nil
	case TickMsg:
		if m.running {
			m.step()
		}
		m.scene.Draw(m.sys, m.trueScale)
		return m, m.tick()
	}
	return m, nil
}

// step advances the system by one dt. A failed or non-finite step stops
// the model until reset.
func (m *Model) step() {
	if err := m.integrator.Step(m.sys, m.dt); err != nil {
		m.fail(err)
		return
	}
	m.t += m.dt
	m.steps++

	if idx := m.sys.FirstInvalid(); idx >= 0 {
		m.fail(&dynamo.SimulationError{Step: m.steps, Time: m.t, Body: m.sys.Bodies[idx].Name, Wrapped: dynamo.ErrInvalidState})
		return
	}

	m.drift.Observe(m.sys, m.t)
	m.driftHist = append(m.driftHist, m.drift.Current())
	if len(m.driftHist) > historyCapacity {
		m.driftHist = m.driftHist[1:]
	}
}

func (m *Model) fail(err error) {
	m.err = err
	m.running = false
	level.Error(m.logger).Log("msg", "live step failed", "step", m.steps+1, "err", err)
}

// reset restores the initial bodies; zoom and scale mode are kept.
func (m *Model) reset() {
	m.sys = m.initial.Clone()
	m.t = 0
	m.steps = 0
	m.err = nil
	m.running = true
	m.drift.Reset()
	m.drift.Observe(m.sys, 0)
	m.driftHist = m.driftHist[:0]
}

// System is the body set currently on screen.
func (m Model) System() *physics.System { return m.sys }

// Days is the elapsed simulated time in days.
func (m Model) Days() float64 { return m.t / physics.Day }

func (m Model) Err() error { return m.err }

// View renders the canvas and the side panel.
func (m Model) View() string {
	canvasView := m.styles.canvas.Render(m.scene.Canvas().Render())

	var s strings.Builder
	s.WriteString(m.styles.header.Render(strings.ToUpper(m.title)) + "\n")

	switch {
	case m.err != nil:
		s.WriteString(m.styles.failed.Render("STOPPED") + "\n\n")
	case m.running:
		s.WriteString(m.styles.running.Render("RUNNING") + "\n\n")
	default:
		s.WriteString(m.styles.paused.Render("PAUSED") + "\n\n")
	}

	s.WriteString(m.row("Days", fmt.Sprintf("%.0f", m.Days())))
	s.WriteString(m.row("Integrator", m.integrator.Name()))
	s.WriteString(m.row("Zoom", fmt.Sprintf("%.2fx", m.scene.Zoom())))
	scale := "schematic"
	if m.trueScale {
		scale = "true"
	}
	s.WriteString(m.row("Radii", scale))

	if ref := m.sys.ReferenceBody(); ref != nil {
		s.WriteString("\nDISTANCE TO " + strings.ToUpper(ref.Name) + "\n")
		for i, b := range m.sys.Bodies {
			if m.sys.IsReference(i) {
				continue
			}
			s.WriteString(m.row(b.Name, FormatAU(b.DistanceToReference)))
		}
	}

	if len(m.driftHist) > 1 {
		chart := asciigraph.Plot(m.driftHist, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy drift"))
		s.WriteString(m.styles.graph.Render(chart) + "\n")
	}

	if m.err != nil {
		s.WriteString("\n" + m.styles.failed.Render(wrap(m.err.Error(), 38)) + "\n")
	}

	s.WriteString("\n" + m.styles.separator(38) + "\n")
	s.WriteString(m.styles.help.Render("SP:Scale P:Pause +/-:Zoom\nR:Reset Q:Quit"))

	statsView := m.styles.panel.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}

func (m Model) row(label, value string) string {
	return m.styles.label.Render(label) + m.styles.value.Render(value) + "\n"
}

func wrap(s string, width int) string {
	var b strings.Builder
	line := 0
	for _, word := range strings.Fields(s) {
		if line > 0 && line+1+len(word) > width {
			b.WriteString("\n")
			line = 0
		} else if line > 0 {
			b.WriteString(" ")
			line++
		}
		b.WriteString(word)
		line += len(word)
	}
	return b.String()
}
