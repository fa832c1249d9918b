package storage

import (
	"testing"

	"github.com/p-havel/odelab/internal/ode"
)

func sampleTrajectory() ode.Trajectory {
	return ode.Trajectory{
		{State: ode.State{1, 0}, Time: 0},
		{State: ode.State{0.5, -0.25}, Time: 0.5},
		{State: ode.State{0.25, -0.125}, Time: 1},
	}
}

func TestStore_SaveAndLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	cfg := ode.NewConfig(0, 1, 0.5, ode.State{1, 0})
	metrics := map[string]float64{"terminal_error": 1e-5}

	runID, err := st.Save("oscillator", "rk4", cfg, sampleTrajectory(), metrics)
	if err != nil {
		t.Fatal(err)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatal(err)
	}
	if meta.Problem != "oscillator" || meta.Solver != "rk4" {
		t.Errorf("metadata lost fields: %+v", meta)
	}
	if meta.Points != 3 {
		t.Errorf("points = %d, want 3", meta.Points)
	}
	if meta.Metrics["terminal_error"] != 1e-5 {
		t.Errorf("metrics = %v", meta.Metrics)
	}
}

func TestStore_TrajectoryRoundtrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	want := sampleTrajectory()
	cfg := ode.NewConfig(0, 1, 0.5, ode.State{1, 0})

	runID, err := st.Save("oscillator", "rk4", cfg, want, nil)
	if err != nil {
		t.Fatal(err)
	}

	got, err := st.LoadTrajectory(runID)
	if err != nil {
		t.Fatal(err)
	}

	if len(got) != len(want) {
		t.Fatalf("got %d points, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Time != want[i].Time {
			t.Errorf("point %d time = %v, want %v", i, got[i].Time, want[i].Time)
		}
		for j := range want[i].State {
			if got[i].State[j] != want[i].State[j] {
				t.Errorf("point %d state[%d] = %v, want %v", i, j, got[i].State[j], want[i].State[j])
			}
		}
	}
}

func TestStore_List(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	cfg := ode.NewConfig(0, 1, 0.5, ode.State{1, 0})
	if _, err := st.Save("decay", "euler", cfg, sampleTrajectory(), nil); err != nil {
		t.Fatal(err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(runs))
	}
	if runs[0].Problem != "decay" {
		t.Errorf("problem = %s, want decay", runs[0].Problem)
	}
}

func TestStore_ListEmpty(t *testing.T) {
	st := New(t.TempDir() + "/never-created")
	runs, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("got %d runs from absent dir, want 0", len(runs))
	}
}

func TestStore_LoadMissing(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("absent"); err == nil {
		t.Error("expected error for missing run")
	}
	if _, err := st.LoadTrajectory("absent"); err == nil {
		t.Error("expected error for missing trajectory")
	}
}
