package ode

// RK2 is the 2nd order midpoint scheme:
//
//	k1 = f(t, y)
//	k2 = f(t+h/2, y + h/2*k1)
//	y_{n+1} = y + h*k2
type RK2 struct{}

func NewRK2() *RK2 { return &RK2{} }

func (r *RK2) Name() string { return "rk2" }
func (r *RK2) Order() int   { return 2 }

func (r *RK2) Step(f Derivative, t float64, y State, h float64) State {
	k1 := f(y, t)
	k2 := f(y.AddScaled(k1, h/2), t+h/2)
	return y.AddScaled(k2, h)
}

func (r *RK2) Solve(f Derivative, cfg Config) (Trajectory, error) {
	return solveFixed(r, f, cfg)
}
