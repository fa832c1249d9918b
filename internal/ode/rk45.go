package ode

import "math"

// Fehlberg coefficients (1969) for the embedded RK 4(5) pair. The six
// stages feed two combinations: a 4th order estimate that advances the
// solution and a 5th order estimate whose difference from it serves as
// the local truncation error.
var (
	a2 = 1.0 / 4.0
	a3 = 3.0 / 8.0
	a4 = 12.0 / 13.0
	a6 = 1.0 / 2.0

	b21 = 1.0 / 4.0
	b31 = 3.0 / 32.0
	b32 = 9.0 / 32.0
	b41 = 1932.0 / 2197.0
	b42 = -7200.0 / 2197.0
	b43 = 7296.0 / 2197.0
	b51 = 439.0 / 216.0
	b52 = -8.0
	b53 = 3680.0 / 513.0
	b54 = -845.0 / 4104.0
	b61 = -8.0 / 27.0
	b62 = 2.0
	b63 = -3544.0 / 2565.0
	b64 = 1859.0 / 4104.0
	b65 = -11.0 / 40.0

	// 4th order combination; k2 and k6 carry zero weight here.
	c41 = 25.0 / 216.0
	c43 = 1408.0 / 2565.0
	c44 = 2197.0 / 4104.0
	c45 = -1.0 / 5.0

	// 5th order combination.
	c51 = 16.0 / 135.0
	c53 = 6656.0 / 12825.0
	c54 = 28561.0 / 56430.0
	c55 = -9.0 / 50.0
	c56 = 2.0 / 55.0
)

// Stats summarizes one adaptive solve.
type Stats struct {
	Accepted    int // steps advanced, excluding the initial condition
	Rejected    int // attempts retried with a smaller step
	Forced      int // accepted at the step floor despite exceeding tolerance
	Evaluations int // derivative function calls
}

// RK45 is the adaptive Runge-Kutta-Fehlberg 4(5) scheme. Each attempt
// either advances (t, y) and grows the step, or shrinks the step and
// retries at the same point. Order reports 4: the 4th order estimate is
// the one that advances the solution.
type RK45 struct {
	safety   float64
	minScale float64
	maxScale float64
}

func NewRK45() *RK45 {
	return &RK45{
		safety:   0.9,
		minScale: 0.1,
		maxScale: 5.0,
	}
}

func (r *RK45) Name() string { return "rk45" }
func (r *RK45) Order() int   { return 4 }

// StepEmbedded runs the six Fehlberg stages once and returns both the
// 4th and 5th order candidate states.
func (r *RK45) StepEmbedded(f Derivative, t float64, y State, h float64) (y4, y5 State) {
	n := len(y)

	k1 := f(y, t)
	k2 := f(y.AddScaled(k1, h*b21), t+a2*h)

	stage := make(State, n)
	for i := range y {
		stage[i] = y[i] + h*(b31*k1[i]+b32*k2[i])
	}
	k3 := f(stage, t+a3*h)

	stage = make(State, n)
	for i := range y {
		stage[i] = y[i] + h*(b41*k1[i]+b42*k2[i]+b43*k3[i])
	}
	k4 := f(stage, t+a4*h)

	stage = make(State, n)
	for i := range y {
		stage[i] = y[i] + h*(b51*k1[i]+b52*k2[i]+b53*k3[i]+b54*k4[i])
	}
	k5 := f(stage, t+h)

	stage = make(State, n)
	for i := range y {
		stage[i] = y[i] + h*(b61*k1[i]+b62*k2[i]+b63*k3[i]+b64*k4[i]+b65*k5[i])
	}
	k6 := f(stage, t+a6*h)

	y4 = make(State, n)
	y5 = make(State, n)
	for i := range y {
		y4[i] = y[i] + h*(c41*k1[i]+c43*k3[i]+c44*k4[i]+c45*k5[i])
		y5[i] = y[i] + h*(c51*k1[i]+c53*k3[i]+c54*k4[i]+c55*k5[i]+c56*k6[i])
	}
	return y4, y5
}

// Step advances by the 4th order estimate without adaptivity, for
// single-step testing and composition.
func (r *RK45) Step(f Derivative, t float64, y State, h float64) State {
	y4, _ := r.StepEmbedded(f, t, y, h)
	return y4
}

// computeError is the infinity norm of the per-component relative
// difference between the embedded estimates. Any single component over
// tolerance rejects the step, which keeps mixed-magnitude systems
// honest.
func computeError(y4, y5 State) float64 {
	maxErr := 0.0
	for i := range y4 {
		diff := math.Abs(y5[i] - y4[i])
		scale := math.Abs(y5[i]) + 1e-10
		maxErr = math.Max(maxErr, diff/scale)
	}
	return maxErr
}

// adjustStep rescales h from the observed error. The 1/4 exponent is
// the local error scaling law of the 4th order method; the [minScale,
// maxScale] clamp prevents oscillating over-correction.
func (r *RK45) adjustStep(h, err, tol float64) float64 {
	if err == 0 {
		return h * 2.0
	}
	factor := r.safety * math.Pow(tol/err, 0.25)
	factor = math.Max(r.minScale, math.Min(factor, r.maxScale))
	return h * factor
}

func (r *RK45) Solve(f Derivative, cfg Config) (Trajectory, error) {
	traj, _, err := r.SolveAdaptive(f, cfg)
	return traj, err
}

// SolveAdaptive integrates with step-size control and reports what the
// controller did. A step is accepted when its error is within tolerance
// or when h has hit the step floor; the latter keeps the loop
// terminating on hostile problems and is counted in Stats.Forced rather
// than passed over silently.
func (r *RK45) SolveAdaptive(f Derivative, cfg Config) (Trajectory, Stats, error) {
	var stats Stats
	if err := cfg.validateAdaptive(); err != nil {
		return nil, stats, err
	}

	traj := make(Trajectory, 0, estimateLen(cfg))
	t := cfg.TimeStart
	y := cfg.InitialState.Clone()
	h := cfg.StepSize
	traj = append(traj, Point{State: y.Clone(), Time: t})

	for t < cfg.TimeEnd {
		h = math.Max(cfg.MinStep, math.Min(h, cfg.MaxStep))
		last := t+h >= cfg.TimeEnd
		if last {
			h = cfg.TimeEnd - t
		}

		y4, y5 := r.StepEmbedded(f, t, y, h)
		stats.Evaluations += 6
		stepErr := computeError(y4, y5)

		if stepErr <= cfg.Tolerance || h <= cfg.MinStep {
			y = y4
			if last {
				t = cfg.TimeEnd
			} else {
				t += h
			}
			traj = append(traj, Point{State: y, Time: t})
			stats.Accepted++
			if stepErr > cfg.Tolerance {
				stats.Forced++
			}
			if stepErr > 0 && h > cfg.MinStep {
				h = r.adjustStep(h, stepErr, cfg.Tolerance)
			}
		} else {
			stats.Rejected++
			h = r.adjustStep(h, stepErr, cfg.Tolerance)
		}
	}

	return traj, stats, nil
}
