package ode

// RK4 is the classic 4th order Runge-Kutta scheme:
//
//	k1 = f(t, y)
//	k2 = f(t+h/2, y + h/2*k1)
//	k3 = f(t+h/2, y + h/2*k2)
//	k4 = f(t+h,   y + h*k3)
//	y_{n+1} = y + h/6*(k1 + 2k2 + 2k3 + k4)
type RK4 struct{}

func NewRK4() *RK4 { return &RK4{} }

func (r *RK4) Name() string { return "rk4" }
func (r *RK4) Order() int   { return 4 }

func (r *RK4) Step(f Derivative, t float64, y State, h float64) State {
	k1 := f(y, t)
	k2 := f(y.AddScaled(k1, h/2), t+h/2)
	k3 := f(y.AddScaled(k2, h/2), t+h/2)
	k4 := f(y.AddScaled(k3, h), t+h)

	result := make(State, len(y))
	h6 := h / 6.0
	for i := range y {
		result[i] = y[i] + h6*(k1[i]+2*k2[i]+2*k3[i]+k4[i])
	}
	return result
}

func (r *RK4) Solve(f Derivative, cfg Config) (Trajectory, error) {
	return solveFixed(r, f, cfg)
}
