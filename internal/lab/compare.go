package lab

import (
	"math"
	"time"

	"github.com/p-havel/odelab/internal/analysis"
	"github.com/p-havel/odelab/internal/ode"
)

var nan = math.NaN()

// ComparisonRow is one solver's result on the shared problem.
type ComparisonRow struct {
	Solver        string
	Order         int
	Points        int
	Elapsed       time.Duration
	TerminalError float64 // NaN when the problem has no analytic solution
	EnergyDrift   float64 // NaN when the problem has no energy functional
	Trajectory    ode.Trajectory
}

// Compare runs each named solver on one problem with the same
// configuration and collects accuracy and cost per solver. This is the
// accuracy-versus-efficiency view: a higher order scheme buys more
// accuracy at the same step, an adaptive one buys the same accuracy
// with fewer points.
func Compare(r *Registry, problemName string, solverNames []string, cfg ode.Config) ([]ComparisonRow, error) {
	prob, err := r.GetProblem(problemName)
	if err != nil {
		return nil, err
	}
	f := prob.Func()

	rows := make([]ComparisonRow, 0, len(solverNames))
	for _, name := range solverNames {
		s, err := r.GetSolver(name)
		if err != nil {
			return nil, err
		}

		start := time.Now()
		traj, err := s.Solve(f, cfg)
		if err != nil {
			return nil, err
		}

		row := ComparisonRow{
			Solver:        s.Name(),
			Order:         s.Order(),
			Points:        len(traj),
			Elapsed:       time.Since(start),
			TerminalError: nan,
			EnergyDrift:   nan,
			Trajectory:    traj,
		}
		if a, ok := prob.(Analytic); ok {
			row.TerminalError = analysis.TerminalError(traj, a.Exact(cfg.TimeEnd))
		}
		if c, ok := prob.(Conservative); ok {
			row.EnergyDrift = analysis.EnergyDrift(traj, c.Energy)
		}
		rows = append(rows, row)
	}

	return rows, nil
}
