// Package tui renders a live terminal dashboard for a running simulation.
package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/salcedoinaki/fcsim/internal/sim"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
	red     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

const historyLen = 120

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

type model struct {
	engine *sim.Engine
	dt     float64
	steps  int
	limit  int

	running bool
	paused  bool
	speed   int
	graph   string // which series the big plot shows

	snap     sim.Snapshot
	tempHist []float64
	voltHist []float64
	socHist  []float64
	presHist []float64

	width  int
	height int
}

// NewDashboard wraps an engine in an interactive dashboard. limit is the
// number of steps to run before pausing; 0 means run until quit.
func NewDashboard(engine *sim.Engine, dt float64, limit int) *model {
	return &model{
		engine:   engine,
		dt:       dt,
		limit:    limit,
		running:  true,
		speed:    1,
		graph:    "temperature",
		snap:     engine.Snapshot(),
		tempHist: make([]float64, 0, historyLen),
		voltHist: make([]float64, 0, historyLen),
		socHist:  make([]float64, 0, historyLen),
		presHist: make([]float64, 0, historyLen),
		width:    80,
		height:   24,
	}
}

func (m model) Init() tea.Cmd { return tick() }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if m.running && !m.paused {
			for i := 0; i < m.speed; i++ {
				if m.limit > 0 && m.steps >= m.limit {
					m.paused = true
					break
				}
				snap, err := m.engine.Step(m.dt)
				if err != nil {
					m.paused = true
					break
				}
				m.record(snap)
			}
		}
		if m.running {
			return m, tick()
		}
		return m, nil
	}
	return m, nil
}

func (m *model) record(snap sim.Snapshot) {
	m.snap = snap
	m.steps++
	m.tempHist = push(m.tempHist, snap.FuelCell.Temperature)
	m.voltHist = push(m.voltHist, snap.FuelCell.Voltage)
	m.socHist = push(m.socHist, snap.Battery.SoC)
	m.presHist = push(m.presHist, snap.Manifold.Pressure/1000)
}

func push(hist []float64, v float64) []float64 {
	hist = append(hist, v)
	if len(hist) > historyLen {
		hist = hist[1:]
	}
	return hist
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "escape":
		m.running = false
		return m, tea.Quit
	case " ", "p":
		m.paused = !m.paused
	case "+", "=":
		m.speed = min(m.speed*2, 32)
	case "-", "_":
		m.speed = max(m.speed/2, 1)
	case "t":
		m.graph = "temperature"
	case "v":
		m.graph = "voltage"
	case "s":
		m.graph = "soc"
	case "m":
		m.graph = "pressure"
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder

	statusIcon := green.Render("●")
	statusText := green.Render("running")
	if m.paused {
		statusIcon = yellow.Render("○")
		statusText = yellow.Render("paused")
	}
	b.WriteString(fmt.Sprintf("\n   %s %s  %s  %s\n",
		statusIcon, cyan.Render("fcsim"), statusText,
		dim.Render(fmt.Sprintf("t=%.1fs  step %d  x%d", m.snap.Time, m.snap.Step, m.speed))))
	b.WriteString(dimmer.Render("   "+strings.Repeat("─", 60)) + "\n\n")

	mode := green.Render("discharging")
	if m.snap.Charging {
		mode = yellow.Render("charging")
	}
	cooling := dim.Render("off")
	if m.snap.CoolingActive {
		cooling = cyan.Render("on")
	}
	tempStyle := white
	if m.snap.FuelCell.Temperature >= 44.0 {
		tempStyle = red
	}

	b.WriteString(fmt.Sprintf("   %s %s   %s %s   %s %s\n",
		dim.Render("mode"), mode,
		dim.Render("cooling"), cooling,
		dim.Render("load"), white.Render(fmt.Sprintf("%.2f A", m.snap.Load))))
	b.WriteString(fmt.Sprintf("   %s %s   %s %s   %s %s\n",
		dim.Render("stack"), white.Render(fmt.Sprintf("%.1f V", m.snap.FuelCell.Voltage)),
		dim.Render("temp"), tempStyle.Render(fmt.Sprintf("%.1f °C", m.snap.FuelCell.Temperature)),
		dim.Render("O₂"), white.Render(fmt.Sprintf("%.3f", m.snap.FuelCell.OxygenConcentration))))
	b.WriteString(fmt.Sprintf("   %s %s   %s %s   %s %s\n\n",
		dim.Render("soc"), magenta.Render(fmt.Sprintf("%.1f%%", m.snap.Battery.SoC)),
		dim.Render("manifold"), white.Render(fmt.Sprintf("%.1f kPa", m.snap.Manifold.Pressure/1000)),
		dim.Render("compressor"), white.Render(fmt.Sprintf("%.2f rad/s", m.snap.Compressor.Speed))))

	series, label := m.series()
	if len(series) > 1 {
		gw := m.width - 16
		if gw < 40 {
			gw = 40
		}
		if gw > 100 {
			gw = 100
		}
		plot := asciigraph.Plot(series,
			asciigraph.Height(8),
			asciigraph.Width(gw),
			asciigraph.Precision(1))
		b.WriteString("   " + dim.Render(label) + "\n")
		for _, line := range strings.Split(plot, "\n") {
			b.WriteString("   " + cyan.Render(line) + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("   %s %s  %s %s  %s %s\n",
		dim.Render("V"), cyan.Render(sparkline(m.voltHist, 20)),
		dim.Render("T"), yellow.Render(sparkline(m.tempHist, 20)),
		dim.Render("SoC"), magenta.Render(sparkline(m.socHist, 20))))

	b.WriteString("\n" + dim.Render("   space pause  ±speed  t/v/s/m graph  q quit") + "\n")

	return b.String()
}

func (m model) series() ([]float64, string) {
	switch m.graph {
	case "voltage":
		return m.voltHist, "stack voltage (V)"
	case "soc":
		return m.socHist, "state of charge (%)"
	case "pressure":
		return m.presHist, "manifold pressure (kPa)"
	default:
		return m.tempHist, "stack temperature (°C)"
	}
}

func sparkline(data []float64, width int) string {
	if len(data) == 0 {
		return ""
	}
	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	minVal, maxVal := data[0], data[0]
	for _, v := range data {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	rang := maxVal - minVal
	if rang == 0 {
		rang = 1
	}
	step := len(data) / width
	if step < 1 {
		step = 1
	}
	var sb strings.Builder
	for i := 0; i < width && i*step < len(data); i++ {
		idx := int((data[i*step] - minVal) / rang * 7)
		if idx > 7 {
			idx = 7
		}
		if idx < 0 {
			idx = 0
		}
		sb.WriteRune(chars[idx])
	}
	return sb.String()
}

// Run starts the dashboard in the alternate screen and blocks until quit.
func Run(engine *sim.Engine, dt float64, limit int) error {
	p := tea.NewProgram(NewDashboard(engine, dt, limit), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
