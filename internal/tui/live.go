// Package tui is the live terminal view: it steps simulation time at a
// fixed rate and draws the local system of the first static root on an
// ASCII canvas.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/apd/v3"

	"github.com/san-kum/orrery/internal/body"
	"github.com/san-kum/orrery/internal/dec"
	"github.com/san-kum/orrery/internal/sim"
	"github.com/san-kum/orrery/internal/viz"
)

const (
	canvasWidth  = 70
	canvasHeight = 21
)

type tickMsg time.Time

type Model struct {
	simulation *sim.Simulation
	t          *apd.Decimal
	step       *apd.Decimal
	fps        int
	paused     bool
	err        error
}

func New(simulation *sim.Simulation, start, step *apd.Decimal, fps int) Model {
	if fps < 1 {
		fps = 30
	}
	return Model{
		simulation: simulation,
		t:          new(apd.Decimal).Set(start),
		step:       step,
		fps:        fps,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
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
			m.paused = !m.paused
		}
	case tickMsg:
		if m.paused || m.err != nil {
			return m, m.tick()
		}
		m.t = dec.Add(m.t, m.step)
		if err := m.simulation.Update(m.t); err != nil {
			m.err = err
			return m, m.tick()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(viz.Title.Render("orrery live") + "  " + viz.Subtle.Render("t="+m.t.String()+"s") + "\n")

	if m.err != nil {
		b.WriteString(viz.ErrText.Render(m.err.Error()) + "\n")
		b.WriteString(viz.Subtle.Render("q quit") + "\n")
		return b.String()
	}

	root := m.staticRoot()
	if root == nil {
		b.WriteString(viz.ErrText.Render("no static body to anchor the view") + "\n")
		return b.String()
	}

	local := append([]*sim.SimulatedBody{root}, m.simulation.HierarchyDown(root)...)
	b.WriteString(viz.Panel.Render(m.canvas(root, local)) + "\n")

	for _, sb := range local {
		speed, _ := sb.Velocity.Length().Float64()
		b.WriteString(fmt.Sprintf("  %s %s\n",
			viz.Value.Render(sb.Body.Name),
			viz.Label.Render(fmt.Sprintf("|v|=%.2f m/s", speed))))
	}
	status := "running"
	if m.paused {
		status = "paused"
	}
	b.WriteString(viz.Subtle.Render(fmt.Sprintf("[%s]  space pause  q quit", status)) + "\n")
	return b.String()
}

// canvas projects the local system onto the orbital plane (x right, z down)
// centered on the root, scaled so the farthest body fits.
func (m Model) canvas(root *sim.SimulatedBody, local []*sim.SimulatedBody) string {
	grid := make([][]rune, canvasHeight)
	for y := range grid {
		grid[y] = make([]rune, canvasWidth)
		for x := range grid[y] {
			grid[y][x] = ' '
		}
	}

	maxDist := 1.0
	for _, sb := range local[1:] {
		d, _ := sb.Position.DistanceTo(root.Position).Float64()
		if d > maxDist {
			maxDist = d
		}
	}

	for i, sb := range local {
		rel := sb.Position.Sub(root.Position)
		px, _ := rel.X.Float64()
		pz, _ := rel.Z.Float64()
		cx := canvasWidth/2 + int(px/maxDist*float64(canvasWidth/2-2))
		cy := canvasHeight/2 + int(pz/maxDist*float64(canvasHeight/2-1))
		marker := 'o'
		if i == 0 {
			marker = '*'
		}
		set(grid, cx, cy, marker)
		if len(sb.Body.Name) > 0 {
			set(grid, cx+1, cy, rune(sb.Body.Name[0]))
		}
	}

	rows := make([]string, canvasHeight)
	for y := range grid {
		rows[y] = string(grid[y])
	}
	return strings.Join(rows, "\n")
}

func set(grid [][]rune, x, y int, c rune) {
	if x >= 0 && x < canvasWidth && y >= 0 && y < canvasHeight {
		grid[y][x] = c
	}
}

func (m Model) staticRoot() *sim.SimulatedBody {
	for _, sb := range m.simulation.Bodies() {
		if _, ok := sb.Body.Dynamics.(body.Static); ok {
			return sb
		}
	}
	return nil
}
