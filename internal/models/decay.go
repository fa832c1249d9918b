package models

import (
	"math"

	"github.com/p-havel/odelab/internal/ode"
)

// Decay is first order exponential decay, dy/dt = -lambda*y. The
// simplest problem with a known solution, y(t) = y0*exp(-lambda*t).
type Decay struct {
	Lambda float64
	Y0     float64
}

func NewDecay() *Decay {
	return &Decay{Lambda: 1.0, Y0: 1.0}
}

func (d *Decay) Dim() int { return 1 }

func (d *Decay) DefaultState() ode.State { return ode.State{d.Y0} }

func (d *Decay) Func() ode.Derivative {
	lambda := d.Lambda
	return func(y ode.State, t float64) ode.State {
		return ode.State{-lambda * y[0]}
	}
}

// Exact returns the analytic solution at time t from the default
// initial state at t=0.
func (d *Decay) Exact(t float64) ode.State {
	return ode.State{d.Y0 * math.Exp(-d.Lambda*t)}
}
