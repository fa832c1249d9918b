// Package models provides benchmark ODE systems as derivative
// functions.
//
// Each model holds its physical parameters and exposes
// Func() returning an [ode.Derivative] closure over them:
//
//   - [Decay]: dy/dt = -lambda*y, analytic solution available
//   - [Oscillator]: undamped harmonic oscillator, conserved energy
//   - [Pendulum]: damped pendulum, nonlinear
//   - [Lorenz]: chaotic butterfly attractor
//
// Models with a closed-form solution implement Exact, which the
// analysis package uses to measure solver error.
package models
