package viz

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/integrators"
	"github.com/san-kum/orbitsim/internal/physics"
)

type failingIntegrator struct{}

func (failingIntegrator) Name() string { return "failing" }
func (failingIntegrator) Step(*physics.System, float64) error {
	return &dynamo.SimulationError{Body: "earth", Wrapped: dynamo.ErrDegenerateSeparation}
}

func newTestModel() Model {
	integ := integrators.NewSymplecticEuler(integrators.Sequential, integrators.Options{})
	return NewModel("earth-sun", physics.EarthSun(), integ, physics.Day, config.DefaultRender())
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModelTick(t *testing.T) {
	m := newTestModel()
	for i := 0; i < 3; i++ {
		m = update(m, TickMsg{})
	}

	if m.Days() != 3 {
		t.Errorf("expected 3 days, got %g", m.Days())
	}
	earth := m.System().Bodies[1]
	if earth.Trail.Len() != 3 {
		t.Errorf("expected 3 trail points, got %d", earth.Trail.Len())
	}
	if len(m.driftHist) != 3 {
		t.Errorf("expected 3 drift samples, got %d", len(m.driftHist))
	}
}

func TestModelPause(t *testing.T) {
	m := newTestModel()
	m = update(m, key("p"))
	m = update(m, TickMsg{})
	if m.Days() != 0 {
		t.Errorf("paused model should not step, got %g days", m.Days())
	}

	m = update(m, key("p"))
	m = update(m, TickMsg{})
	if m.Days() != 1 {
		t.Errorf("expected 1 day after resume, got %g", m.Days())
	}
}

func TestModelToggleScale(t *testing.T) {
	m := newTestModel()
	if m.trueScale {
		t.Fatal("expected schematic radii by default")
	}
	m = update(m, key(" "))
	if !m.trueScale {
		t.Error("space should switch to true-scale radii")
	}
	m = update(m, key(" "))
	if m.trueScale {
		t.Error("space should switch back")
	}
}

func TestModelZoom(t *testing.T) {
	m := newTestModel()
	m = update(m, key("+"))
	if m.scene.Zoom() != zoomStep {
		t.Errorf("expected zoom %g, got %g", zoomStep, m.scene.Zoom())
	}
	m = update(m, key("-"))
	m = update(m, key("-"))
	if m.scene.Zoom() >= 1 {
		t.Errorf("expected zoomed out, got %g", m.scene.Zoom())
	}
}

func TestModelReset(t *testing.T) {
	m := newTestModel()
	start := m.System().Bodies[1].Pos
	for i := 0; i < 5; i++ {
		m = update(m, TickMsg{})
	}
	m = update(m, key("r"))

	if m.Days() != 0 {
		t.Errorf("expected time reset, got %g days", m.Days())
	}
	if m.System().Bodies[1].Pos != start {
		t.Error("expected initial position after reset")
	}
	if m.System().Bodies[1].Trail.Len() != 0 {
		t.Error("expected empty trail after reset")
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel()
	for _, k := range []tea.KeyMsg{key("q"), {Type: tea.KeyCtrlC}} {
		_, cmd := m.Update(k)
		if cmd == nil {
			t.Fatal("expected quit command")
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("expected QuitMsg for %q", k.String())
		}
	}
}

func TestModelStepError(t *testing.T) {
	m := NewModel("broken", physics.EarthSun(), failingIntegrator{}, physics.Day, config.DefaultRender())
	m = update(m, TickMsg{})

	if !errors.Is(m.Err(), dynamo.ErrDegenerateSeparation) {
		t.Fatalf("expected degenerate separation, got %v", m.Err())
	}
	if m.running {
		t.Error("model should stop after a failed step")
	}
	if !strings.Contains(m.View(), "STOPPED") {
		t.Error("expected stopped status in view")
	}

	m = update(m, key("r"))
	if m.Err() != nil || !m.running {
		t.Error("reset should clear the error")
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel()
	m = update(m, TickMsg{})
	m = update(m, TickMsg{})

	view := m.View()
	for _, want := range []string{"EARTH-SUN", "RUNNING", "DISTANCE TO SUN", "earth", "Energy drift"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view", want)
		}
	}
}
