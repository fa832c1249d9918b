package models

import (
	"math"

	"github.com/p-havel/odelab/internal/ode"
)

// Pendulum is a damped pendulum. State is (theta, omega) with
// d(theta)/dt = omega and
// d(omega)/dt = (-b*omega - m*g*l*sin(theta)) / (m*l^2).
type Pendulum struct {
	Mass    float64
	Length  float64
	Damping float64
	Gravity float64
	Theta0  float64
}

func NewPendulum() *Pendulum {
	return &Pendulum{
		Mass:    1.0,
		Length:  1.0,
		Damping: 0.1,
		Gravity: 9.81,
		Theta0:  0.5,
	}
}

func (p *Pendulum) Dim() int { return 2 }

func (p *Pendulum) DefaultState() ode.State { return ode.State{p.Theta0, 0} }

func (p *Pendulum) Func() ode.Derivative {
	m, l, b, g := p.Mass, p.Length, p.Damping, p.Gravity
	return func(y ode.State, t float64) ode.State {
		theta, omega := y[0], y[1]
		alpha := (-b*omega - m*g*l*math.Sin(theta)) / (m * l * l)
		return ode.State{omega, alpha}
	}
}

// Energy is kinetic plus potential; with damping it decays
// monotonically.
func (p *Pendulum) Energy(y ode.State) float64 {
	theta, omega := y[0], y[1]
	ke := 0.5 * p.Mass * p.Length * p.Length * omega * omega
	pe := p.Mass * p.Gravity * p.Length * (1 - math.Cos(theta))
	return ke + pe
}
