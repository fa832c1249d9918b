package models

import "github.com/p-havel/odelab/internal/ode"

// Lorenz is the chaotic Lorenz attractor with the classic parameter
// set. State is (x, y, z).
type Lorenz struct {
	Sigma float64
	Rho   float64
	Beta  float64
}

func NewLorenz() *Lorenz {
	return &Lorenz{Sigma: 10.0, Rho: 28.0, Beta: 8.0 / 3.0}
}

func (l *Lorenz) Dim() int { return 3 }

func (l *Lorenz) DefaultState() ode.State { return ode.State{1, 1, 1} }

func (l *Lorenz) Func() ode.Derivative {
	sigma, rho, beta := l.Sigma, l.Rho, l.Beta
	return func(s ode.State, t float64) ode.State {
		return ode.State{
			sigma * (s[1] - s[0]),
			s[0]*(rho-s[2]) - s[1],
			s[0]*s[1] - beta*s[2],
		}
	}
}
