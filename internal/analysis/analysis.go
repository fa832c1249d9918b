// Package analysis post-processes solver trajectories: accuracy against
// analytic solutions, observed convergence order, energy drift, and
// adaptive step statistics.
package analysis

import (
	"math"

	"github.com/p-havel/odelab/internal/ode"
)

// TerminalError is the infinity norm distance between the trajectory's
// final state and the exact state at the same time.
func TerminalError(traj ode.Trajectory, exact ode.State) float64 {
	final := traj.Last().State
	maxErr := 0.0
	for i := range final {
		maxErr = math.Max(maxErr, math.Abs(final[i]-exact[i]))
	}
	return maxErr
}

// ObservedOrder estimates the convergence order from terminal errors
// measured at successively halved step sizes: order = log2(e_i/e_{i+1})
// averaged over adjacent pairs. At least two errors are required.
func ObservedOrder(errs []float64) float64 {
	if len(errs) < 2 {
		return 0
	}
	sum := 0.0
	for i := 0; i < len(errs)-1; i++ {
		if errs[i+1] == 0 {
			continue
		}
		sum += math.Log2(errs[i] / errs[i+1])
	}
	return sum / float64(len(errs)-1)
}

// EnergyDrift is the absolute change of an energy functional between
// the first and last trajectory points.
func EnergyDrift(traj ode.Trajectory, energy func(ode.State) float64) float64 {
	return math.Abs(energy(traj.Last().State) - energy(traj[0].State))
}

// StepStats summarizes the time spacing of a trajectory. For adaptive
// runs it shows how far the controller ranged.
type StepStats struct {
	Min  float64
	Max  float64
	Mean float64
}

// Steps computes the spacing statistics of a trajectory. Trajectories
// with fewer than two points yield the zero value.
func Steps(traj ode.Trajectory) StepStats {
	if len(traj) < 2 {
		return StepStats{}
	}

	stats := StepStats{Min: math.Inf(1)}
	for i := 1; i < len(traj); i++ {
		h := traj[i].Time - traj[i-1].Time
		stats.Min = math.Min(stats.Min, h)
		stats.Max = math.Max(stats.Max, h)
		stats.Mean += h
	}
	stats.Mean /= float64(len(traj) - 1)
	return stats
}

// StepSizes returns the per-step spacing series, mainly for plotting an
// adaptive controller's behavior.
func StepSizes(traj ode.Trajectory) []float64 {
	if len(traj) < 2 {
		return nil
	}
	out := make([]float64, len(traj)-1)
	for i := 1; i < len(traj); i++ {
		out[i-1] = traj[i].Time - traj[i-1].Time
	}
	return out
}
