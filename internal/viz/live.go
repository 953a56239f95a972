package viz

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/collide/internal/config"
	"github.com/san-kum/collide/internal/physics"
	"github.com/san-kum/collide/internal/world"
)

const (
	canvasCols      = 70
	canvasRows      = 35
	historyCapacity = 600
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(42)
	graphStyle  = lipgloss.NewStyle().Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// ContactSink is told about every touching pair with its closing speed.
type ContactSink interface {
	Collide(speed float64)
}

// Model is the bubbletea model for the live arena view.
type Model struct {
	cfg           *config.Config
	seed          int64
	world         *world.World
	canvas        *Canvas
	sink          ContactSink
	dt            float64
	running       bool
	activate      bool
	showHelp      bool
	last          world.FrameStats
	collisions    int
	energyHistory []float64
	hitHistory    []float64
	err           error
}

func NewModel(cfg *config.Config, seed int64, sink ContactSink) (Model, error) {
	m := Model{
		cfg:           cfg,
		seed:          seed,
		canvas:        NewCanvas(canvasCols, canvasRows),
		sink:          sink,
		dt:            cfg.Run.Dt,
		running:       true,
		energyHistory: make([]float64, 0, historyCapacity),
	}
	if err := m.reset(); err != nil {
		return Model{}, err
	}
	return m, nil
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.cfg.Run.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
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
			m.running = !m.running
		case "f", "F":
			m.activate = true
		case "r":
			m.seed++
			if err := m.reset(); err != nil {
				m.err = err
			}
		case "s":
			if !m.running {
				m.step()
			}
		case "t":
			NextTheme()
		case "h", "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) reset() error {
	w, err := world.New(m.cfg, rand.New(rand.NewSource(m.seed)))
	if err != nil {
		return err
	}
	if m.sink != nil {
		sink := m.sink
		w.Detector.OnContact = func(a, b *physics.Body) {
			sink.Collide(b.Velocity.Sub(a.Velocity).Len())
		}
	}
	m.world = w
	m.activate = false
	m.collisions = 0
	m.last = world.FrameStats{}
	m.energyHistory = m.energyHistory[:0]
	m.hitHistory = m.hitHistory[:0]
	return nil
}

// step advances the arena one frame. A pending activation is consumed.
func (m *Model) step() {
	m.last = m.world.StepFrame(m.dt, m.activate)
	m.activate = false
	m.collisions += m.last.Collisions

	m.energyHistory = append(m.energyHistory, m.world.KineticEnergy())
	m.hitHistory = append(m.hitHistory, float64(m.last.Collisions))
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
		m.hitHistory = m.hitHistory[1:]
	}
}

// World exposes the simulated world for tests.
func (m Model) World() *world.World { return m.world }

func hexOf(c physics.Color) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

// draw renders the arena: each body in its own color, then again in its glow
// color (or the theme's) while highlighted.
func (m *Model) draw() {
	m.canvas.Clear()

	arena := m.world.Arena
	sx := float64(m.canvas.DotsWide()-1) / arena.Width
	sy := float64(m.canvas.DotsHigh()-1) / arena.Height
	scale := sx
	if sy < scale {
		scale = sy
	}

	m.canvas.DrawRect(int(arena.Width*scale)+1, int(arena.Height*scale)+1, CurrentTheme().Border)

	for _, b := range m.world.Bodies {
		x, y, r := b.Position.X*scale, b.Position.Y*scale, b.Radius()*scale
		m.canvas.FillCircle(x, y, r, hexOf(b.Color))
		if b.Highlighted {
			m.canvas.FillCircle(x, y, r, highlightColor(hexOf(b.GlowColor)))
		}
	}
}

func (m Model) activeCount() int {
	n := 0
	for _, b := range m.world.Bodies {
		if b.Activated {
			n++
		}
	}
	return n
}

// View renders the TUI interface.
func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.Render())

	var s strings.Builder
	s.WriteString(HeaderStyle.Foreground(CurrentTheme().Title).Render("COLLIDE") + "\n")

	status := StatusRunning.Render("RUNNING")
	if !m.running {
		status = StatusPaused.Render("PAUSED")
	}
	s.WriteString(status + "\n\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Kinetic energy"))
		s.WriteString(graphStyle.Foreground(CurrentTheme().Chart).Render(chart) + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(MetricLabel.Width(12).Render(label) + MetricValue.Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.2fs", m.world.Time()))
	row("Frame", fmt.Sprintf("%d", m.world.Frame()))
	row("Bodies", fmt.Sprintf("%d", len(m.world.Bodies)))
	row("Active", fmt.Sprintf("%d", m.activeCount()))
	row("Candidates", fmt.Sprintf("%d", m.last.Candidates))
	row("Collisions", fmt.Sprintf("%d", m.collisions))
	row("", Sparkline(m.hitHistory, 24))
	row("Energy", fmt.Sprintf("%.1f", m.world.KineticEnergy()))
	row("Seed", fmt.Sprintf("%d", m.seed))
	row("Theme", CurrentTheme().Name)
	if m.err != nil {
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(CurrentTheme().Alert).Render(m.err.Error()) + "\n")
	}

	s.WriteString(helpStyle.Render("\n─────────────────────\nF:Gravity SP:Pause S:Step\nR:Reset   T:Theme Q:Quit\nH:Help"))
	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  F        - Switch on gravity + drag ║
║  Space    - Pause/Resume simulation  ║
║  S        - Single step while paused ║
║  R        - Reset with the next seed ║
║  T        - Cycle themes             ║
║  H / ?    - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

// Run starts the live view and blocks until the user quits.
func Run(cfg *config.Config, seed int64, sink ContactSink) error {
	m, err := NewModel(cfg, seed, sink)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
