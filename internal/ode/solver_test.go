package ode

import (
	"errors"
	"math"
	"testing"
)

// dy/dt = -lambda*y has the exact solution y0*exp(-lambda*t), which
// makes terminal errors easy to measure.
func decay(lambda float64) Derivative {
	return func(y State, t float64) State {
		return State{-lambda * y[0]}
	}
}

func terminalError(t *testing.T, s Solver, cfg Config, exact float64) float64 {
	t.Helper()
	traj, err := s.Solve(decay(1.0), cfg)
	if err != nil {
		t.Fatalf("%s: solve failed: %v", s.Name(), err)
	}
	return math.Abs(traj.Last().State[0] - exact)
}

func allSolvers() []Solver {
	return []Solver{NewEuler(), NewRK2(), NewRK4(), NewRK45()}
}

func TestSolve_InitialConditionPreserved(t *testing.T) {
	y0 := State{0.3, -1.2}
	f := func(y State, _ float64) State { return State{y[1], -y[0]} }

	for _, s := range allSolvers() {
		cfg := NewConfig(0.25, 2.55, 0.1, y0)
		traj, err := s.Solve(f, cfg)
		if err != nil {
			t.Fatalf("%s: %v", s.Name(), err)
		}

		first := traj[0]
		if first.Time != 0.25 {
			t.Errorf("%s: first time = %v, want 0.25", s.Name(), first.Time)
		}
		if first.State[0] != 0.3 || first.State[1] != -1.2 {
			t.Errorf("%s: first state = %v, want %v", s.Name(), first.State, y0)
		}
	}
}

func TestSolve_ExactIntervalCoverage(t *testing.T) {
	// 2.55-0.25 is not a multiple of 0.1 in floating point, so the
	// final step must be clamped to land exactly on the end time.
	for _, s := range allSolvers() {
		cfg := NewConfig(0.25, 2.55, 0.1, State{1})
		traj, err := s.Solve(decay(1.0), cfg)
		if err != nil {
			t.Fatalf("%s: %v", s.Name(), err)
		}

		if got := traj.Last().Time; got != 2.55 {
			t.Errorf("%s: final time = %v, want exactly 2.55", s.Name(), got)
		}
		for i := 1; i < len(traj); i++ {
			if traj[i].Time <= traj[i-1].Time {
				t.Fatalf("%s: time not strictly increasing at %d", s.Name(), i)
			}
		}
	}
}

func TestSolve_ZeroLengthInterval(t *testing.T) {
	for _, s := range allSolvers() {
		cfg := NewConfig(1.5, 1.5, 0.1, State{2})
		traj, err := s.Solve(decay(1.0), cfg)
		if err != nil {
			t.Fatalf("%s: %v", s.Name(), err)
		}
		if len(traj) != 1 {
			t.Errorf("%s: got %d points, want just the initial condition", s.Name(), len(traj))
		}
	}
}

func TestSolve_InvalidConfig(t *testing.T) {
	for _, s := range allSolvers() {
		cfg := NewConfig(1, 0, 0.1, State{1})
		if _, err := s.Solve(decay(1.0), cfg); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%s: err = %v, want ErrInvalidConfig", s.Name(), err)
		}
	}
}

func TestSolveFixed_StepCount(t *testing.T) {
	// 0.25 is exact in binary, so the count is deterministic:
	// 4 steps plus the initial condition.
	cfg := NewConfig(0, 1, 0.25, State{1})
	traj, err := NewEuler().Solve(decay(1.0), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(traj) != 5 {
		t.Errorf("got %d points, want 5", len(traj))
	}
}

func TestEuler_ConvergenceOrder(t *testing.T) {
	exact := math.Exp(-1.0)
	steps := []float64{0.1, 0.05, 0.025}

	var errs []float64
	for _, h := range steps {
		errs = append(errs, terminalError(t, NewEuler(), NewConfig(0, 1, h, State{1}), exact))
	}

	// First order: halving h should roughly halve the error.
	for i := 0; i < len(errs)-1; i++ {
		ratio := errs[i] / errs[i+1]
		if ratio < 1.8 || ratio > 2.2 {
			t.Errorf("euler ratio %d = %f, want within [1.8, 2.2]", i, ratio)
		}
	}
}

func TestRK2_ConvergenceOrder(t *testing.T) {
	exact := math.Exp(-1.0)
	e1 := terminalError(t, NewRK2(), NewConfig(0, 1, 0.1, State{1}), exact)
	e2 := terminalError(t, NewRK2(), NewConfig(0, 1, 0.05, State{1}), exact)

	// Second order: halving h should cut the error roughly fourfold.
	ratio := e1 / e2
	if ratio < 3.5 || ratio > 4.5 {
		t.Errorf("rk2 ratio = %f, want within [3.5, 4.5]", ratio)
	}
}

func TestRK4_ConvergenceOrder(t *testing.T) {
	exact := math.Exp(-1.0)
	steps := []float64{0.1, 0.05, 0.025}

	var errs []float64
	for _, h := range steps {
		errs = append(errs, terminalError(t, NewRK4(), NewConfig(0, 1, h, State{1}), exact))
	}

	// Fourth order: halving h should cut the error by roughly 16.
	for i := 0; i < len(errs)-1; i++ {
		ratio := errs[i] / errs[i+1]
		if ratio < 12.0 || ratio > 20.0 {
			t.Errorf("rk4 ratio %d = %f, want within [12, 20]", i, ratio)
		}
	}
}

func TestFixedStep_MonotoneAccuracy(t *testing.T) {
	exact := math.Exp(-1.0)
	for _, s := range []Solver{NewEuler(), NewRK2(), NewRK4()} {
		coarse := terminalError(t, s, NewConfig(0, 1, 0.1, State{1}), exact)
		fine := terminalError(t, s, NewConfig(0, 1, 0.01, State{1}), exact)
		if fine >= coarse {
			t.Errorf("%s: error %g at h=0.01 not below %g at h=0.1", s.Name(), fine, coarse)
		}
	}
}

func TestDecayScenario_EulerVsRK4(t *testing.T) {
	// dy/dt = -0.5y, y(0)=10 over [0,5] at h=0.1. Euler carries a
	// visible O(h) error; RK4 at the same step is orders better.
	f := decay(0.5)
	exact := 10 * math.Exp(-2.5)
	cfg := NewConfig(0, 5, 0.1, State{10})

	eulerTraj, err := NewEuler().Solve(f, cfg)
	if err != nil {
		t.Fatal(err)
	}
	rk4Traj, err := NewRK4().Solve(f, cfg)
	if err != nil {
		t.Fatal(err)
	}

	eulerErr := math.Abs(eulerTraj.Last().State[0] - exact)
	rk4Err := math.Abs(rk4Traj.Last().State[0] - exact)

	if eulerErr < 0.04 || eulerErr > 0.06 {
		t.Errorf("euler error = %g, want the documented O(h) error near 0.05", eulerErr)
	}
	if rk4Err > 1e-5 {
		t.Errorf("rk4 error = %g, want below 1e-5", rk4Err)
	}
	if rk4Err >= eulerErr/1000 {
		t.Errorf("rk4 error %g not orders below euler error %g", rk4Err, eulerErr)
	}
}

func TestStep_NoInputMutation(t *testing.T) {
	f := func(y State, _ float64) State { return State{y[1], -y[0]} }
	for _, s := range allSolvers() {
		y := State{1.0, 0.5}
		_ = s.Step(f, 0, y, 0.1)
		if y[0] != 1.0 || y[1] != 0.5 {
			t.Errorf("%s: Step mutated input state to %v", s.Name(), y)
		}
	}
}

func TestNameAndOrder(t *testing.T) {
	tests := []struct {
		s     Solver
		name  string
		order int
	}{
		{NewEuler(), "euler", 1},
		{NewRK2(), "rk2", 2},
		{NewRK4(), "rk4", 4},
		{NewRK45(), "rk45", 4},
	}
	for _, tt := range tests {
		if tt.s.Name() != tt.name {
			t.Errorf("Name() = %s, want %s", tt.s.Name(), tt.name)
		}
		if tt.s.Order() != tt.order {
			t.Errorf("%s: Order() = %d, want %d", tt.name, tt.s.Order(), tt.order)
		}
	}
}
