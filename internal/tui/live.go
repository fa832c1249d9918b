// Package tui plays a solved trajectory back in the terminal.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/p-havel/odelab/internal/ode"
	"github.com/p-havel/odelab/internal/viz"
)

const (
	graphWidth  = 70
	graphHeight = 14
	windowSize  = 200
)

type tickMsg time.Time

// Model steps a playhead through a precomputed trajectory. The solve
// itself is done before the program starts; playback is purely visual.
type Model struct {
	title    string
	traj     ode.Trajectory
	playhead int
	playing  bool
	speed    int // points advanced per tick
	fps      int
	done     bool
}

func NewModel(title string, traj ode.Trajectory, fps int) Model {
	if fps <= 0 {
		fps = 30
	}
	return Model{
		title:   title,
		traj:    traj,
		playing: true,
		speed:   1,
		fps:     fps,
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
			m.playing = !m.playing
		case "r":
			m.playhead = 0
			m.done = false
			m.playing = true
		case "+", "=":
			if m.speed < 64 {
				m.speed *= 2
			}
		case "-":
			if m.speed > 1 {
				m.speed /= 2
			}
		}
		return m, nil

	case tickMsg:
		if m.playing && !m.done {
			m.playhead += m.speed
			if m.playhead >= len(m.traj)-1 {
				m.playhead = len(m.traj) - 1
				m.done = true
			}
		}
		return m, m.tick()
	}

	return m, nil
}

func (m Model) View() string {
	if len(m.traj) == 0 {
		return "empty trajectory\n"
	}

	var sb strings.Builder
	sb.WriteString(viz.TitleStyle.Render(m.title))
	sb.WriteString("\n")

	lo := 0
	hi := m.playhead + 1
	if hi-lo > windowSize {
		lo = hi - windowSize
	}
	window := m.traj[lo:hi]

	dim := len(m.traj[0].State)
	if dim > 2 {
		dim = 2
	}
	for i := 0; i < dim; i++ {
		data := make([]float64, len(window))
		for j, p := range window {
			data[j] = p.State[i]
		}
		sb.WriteString(asciigraph.Plot(data,
			asciigraph.Height(graphHeight/dim),
			asciigraph.Width(graphWidth),
			asciigraph.Caption(fmt.Sprintf("y%d", i)),
		))
		sb.WriteString("\n")
	}

	p := m.traj[m.playhead]
	sb.WriteString("\n")
	sb.WriteString(viz.LabelStyle.Render("t"))
	sb.WriteString(fmt.Sprintf("%.4f", p.Time))
	sb.WriteString("\n")
	sb.WriteString(viz.LabelStyle.Render("state"))
	sb.WriteString(fmt.Sprintf("%.4v", []float64(p.State)))
	sb.WriteString("\n")
	sb.WriteString(viz.LabelStyle.Render("speed"))
	sb.WriteString(fmt.Sprintf("%dx", m.speed))
	if m.done {
		sb.WriteString("  (finished)")
	} else if !m.playing {
		sb.WriteString("  (paused)")
	}
	sb.WriteString("\n")

	sb.WriteString(viz.HelpStyle.Render("space pause · r restart · +/- speed · q quit"))
	sb.WriteString("\n")

	return sb.String()
}

// Run plays a trajectory until the user quits.
func Run(title string, traj ode.Trajectory, fps int) error {
	p := tea.NewProgram(NewModel(title, traj, fps))
	_, err := p.Run()
	return err
}
