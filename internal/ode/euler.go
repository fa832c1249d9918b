package ode

// Euler is the 1st order explicit Euler scheme:
//
//	y_{n+1} = y_n + h*f(t_n, y_n)
type Euler struct{}

func NewEuler() *Euler { return &Euler{} }

func (e *Euler) Name() string { return "euler" }
func (e *Euler) Order() int   { return 1 }

func (e *Euler) Step(f Derivative, t float64, y State, h float64) State {
	return y.AddScaled(f(y, t), h)
}

func (e *Euler) Solve(f Derivative, cfg Config) (Trajectory, error) {
	return solveFixed(e, f, cfg)
}
