// Package ode solves initial value problems for ordinary differential
// equations.
//
// Four schemes implement the [Solver] interface:
//
//   - [Euler]: 1st order fixed step
//   - [RK2]: 2nd order midpoint, fixed step
//   - [RK4]: classic 4th order, fixed step
//   - [RK45]: adaptive Runge-Kutta-Fehlberg 4(5) embedded pair
//
// A solver is stateless: separate Solve calls share nothing and may run
// on separate goroutines with independent configurations.
//
// # Usage
//
//	f := func(y ode.State, t float64) ode.State {
//	    return ode.State{-y[0]}
//	}
//	cfg := ode.NewConfig(0, 1, 0.01, ode.State{1})
//	traj, err := ode.NewRK4().Solve(f, cfg)
//
// Solvers do not validate the derivative function: dimension mismatches
// and non-finite values propagate into the trajectory. The caller owns
// that contract.
package ode
