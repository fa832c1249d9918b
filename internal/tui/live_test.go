package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/p-havel/odelab/internal/ode"
)

func testTrajectory(n int) ode.Trajectory {
	traj := make(ode.Trajectory, n)
	for i := range traj {
		traj[i] = ode.Point{State: ode.State{float64(i), -float64(i)}, Time: float64(i) * 0.1}
	}
	return traj
}

func TestModel_TickAdvancesPlayhead(t *testing.T) {
	m := NewModel("test", testTrajectory(10), 30)

	next, _ := m.Update(tickMsg(time.Now()))
	got := next.(Model)
	if got.playhead != 1 {
		t.Errorf("playhead = %d, want 1", got.playhead)
	}
}

func TestModel_StopsAtEnd(t *testing.T) {
	m := NewModel("test", testTrajectory(3), 30)

	var next tea.Model = m
	for i := 0; i < 10; i++ {
		next, _ = next.(Model).Update(tickMsg(time.Now()))
	}

	got := next.(Model)
	if got.playhead != 2 {
		t.Errorf("playhead = %d, want clamped to 2", got.playhead)
	}
	if !got.done {
		t.Error("model should be done at the last point")
	}
}

func TestModel_PauseAndRestart(t *testing.T) {
	m := NewModel("test", testTrajectory(10), 30)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}})
	paused := next.(Model)
	if paused.playing {
		t.Error("space should pause playback")
	}

	next, _ = paused.Update(tickMsg(time.Now()))
	if next.(Model).playhead != 0 {
		t.Error("paused model should not advance")
	}

	next, _ = next.(Model).Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	restarted := next.(Model)
	if restarted.playhead != 0 || !restarted.playing {
		t.Error("restart should rewind and resume")
	}
}

func TestModel_SpeedControls(t *testing.T) {
	m := NewModel("test", testTrajectory(100), 30)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}})
	if next.(Model).speed != 2 {
		t.Errorf("speed = %d, want 2", next.(Model).speed)
	}

	next, _ = next.(Model).Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'-'}})
	next, _ = next.(Model).Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'-'}})
	if next.(Model).speed != 1 {
		t.Errorf("speed = %d, want floor of 1", next.(Model).speed)
	}
}

func TestModel_View(t *testing.T) {
	m := NewModel("oscillator rk4", testTrajectory(10), 30)

	out := m.View()
	if !strings.Contains(out, "oscillator rk4") {
		t.Error("title missing from view")
	}
	if !strings.Contains(out, "q quit") {
		t.Error("help line missing from view")
	}

	empty := NewModel("x", nil, 30)
	if !strings.Contains(empty.View(), "empty trajectory") {
		t.Error("empty trajectory message missing")
	}
}
