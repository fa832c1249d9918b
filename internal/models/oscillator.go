package models

import (
	"math"

	"github.com/p-havel/odelab/internal/ode"
)

// Oscillator is the undamped harmonic oscillator written as a first
// order system: dx/dt = v, dv/dt = -omega^2*x. State is (x, v).
type Oscillator struct {
	Omega float64
	X0    float64
	V0    float64
}

func NewOscillator() *Oscillator {
	return &Oscillator{Omega: 2 * math.Pi, X0: 1.0}
}

func (o *Oscillator) Dim() int { return 2 }

func (o *Oscillator) DefaultState() ode.State { return ode.State{o.X0, o.V0} }

// Period is the time of one full oscillation, 2*pi/omega.
func (o *Oscillator) Period() float64 { return 2 * math.Pi / o.Omega }

func (o *Oscillator) Func() ode.Derivative {
	w2 := o.Omega * o.Omega
	return func(y ode.State, t float64) ode.State {
		return ode.State{y[1], -w2 * y[0]}
	}
}

// Exact returns the analytic solution at time t from the default
// initial state at t=0.
func (o *Oscillator) Exact(t float64) ode.State {
	wt := o.Omega * t
	x := o.X0*math.Cos(wt) + o.V0/o.Omega*math.Sin(wt)
	v := -o.X0*o.Omega*math.Sin(wt) + o.V0*math.Cos(wt)
	return ode.State{x, v}
}

// Energy is the conserved functional 0.5*(v^2 + omega^2*x^2).
func (o *Oscillator) Energy(y ode.State) float64 {
	return 0.5 * (y[1]*y[1] + o.Omega*o.Omega*y[0]*y[0])
}
