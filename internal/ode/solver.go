package ode

// Solver is the contract every integration scheme implements.
type Solver interface {
	// Step advances y at time t by exactly h. It never mutates its
	// inputs and performs no validation.
	Step(f Derivative, t float64, y State, h float64) State

	// Solve integrates from Config.TimeStart to Config.TimeEnd. The
	// returned trajectory starts with the initial condition and ends
	// exactly at TimeEnd. The only error is an invalid Config.
	Solve(f Derivative, cfg Config) (Trajectory, error)

	Name() string
	Order() int
}

// estimateLen is the capacity hint for a fresh trajectory: the expected
// point count at the nominal step size, plus the initial condition.
func estimateLen(cfg Config) int {
	return int((cfg.TimeEnd-cfg.TimeStart)/cfg.StepSize) + 1
}

// solveFixed is the drive loop shared by all fixed-step schemes. Only
// the Step formula differs between them. The last step is clamped so
// the trajectory never overshoots TimeEnd and its final time is exact.
func solveFixed(s Solver, f Derivative, cfg Config) (Trajectory, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	traj := make(Trajectory, 0, estimateLen(cfg))
	t := cfg.TimeStart
	y := cfg.InitialState.Clone()
	traj = append(traj, Point{State: y.Clone(), Time: t})

	for t < cfg.TimeEnd {
		h := cfg.StepSize
		last := cfg.TimeEnd-t <= h
		if last {
			h = cfg.TimeEnd - t
		}
		y = s.Step(f, t, y, h)
		if last {
			t = cfg.TimeEnd
		} else {
			t += h
		}
		traj = append(traj, Point{State: y, Time: t})
	}

	return traj, nil
}
