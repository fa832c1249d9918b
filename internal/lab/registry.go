// Package lab wires named problems and solvers together: lookup by
// name for the CLI, and side-by-side solver comparison on a single
// problem.
package lab

import (
	"fmt"
	"sort"

	"github.com/p-havel/odelab/internal/models"
	"github.com/p-havel/odelab/internal/ode"
)

// Problem is what a solver needs from a model, plus the optional
// analytic hooks the analysis layer exploits when present.
type Problem interface {
	Dim() int
	DefaultState() ode.State
	Func() ode.Derivative
}

// Analytic is implemented by problems with a closed-form solution.
type Analytic interface {
	Exact(t float64) ode.State
}

// Conservative is implemented by problems with an energy functional.
type Conservative interface {
	Energy(y ode.State) float64
}

type Registry struct {
	problems map[string]func() Problem
	solvers  map[string]func() ode.Solver
}

func NewRegistry() *Registry {
	r := &Registry{
		problems: make(map[string]func() Problem),
		solvers:  make(map[string]func() ode.Solver),
	}

	r.problems["decay"] = func() Problem { return models.NewDecay() }
	r.problems["oscillator"] = func() Problem { return models.NewOscillator() }
	r.problems["pendulum"] = func() Problem { return models.NewPendulum() }
	r.problems["lorenz"] = func() Problem { return models.NewLorenz() }

	r.solvers["euler"] = func() ode.Solver { return ode.NewEuler() }
	r.solvers["rk2"] = func() ode.Solver { return ode.NewRK2() }
	r.solvers["rk4"] = func() ode.Solver { return ode.NewRK4() }
	r.solvers["rk45"] = func() ode.Solver { return ode.NewRK45() }

	return r
}

func (r *Registry) GetProblem(name string) (Problem, error) {
	fn, ok := r.problems[name]
	if !ok {
		return nil, fmt.Errorf("unknown problem: %s", name)
	}
	return fn(), nil
}

func (r *Registry) GetSolver(name string) (ode.Solver, error) {
	fn, ok := r.solvers[name]
	if !ok {
		return nil, fmt.Errorf("unknown solver: %s", name)
	}
	return fn(), nil
}

func (r *Registry) ListProblems() []string {
	names := make([]string, 0, len(r.problems))
	for name := range r.problems {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) ListSolvers() []string {
	names := make([]string, 0, len(r.solvers))
	for name := range r.solvers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
