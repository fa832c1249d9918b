package ode

import (
	"errors"
	"fmt"
	"math"
)

// State is the system state at an instant: one float64 per dimension.
// States are copied, never aliased, across steps.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

// AddScaled returns s + scale*b element-wise. It is the shared stage
// helper every scheme builds intermediate states from.
func (s State) AddScaled(b State, scale float64) State {
	result := make(State, len(s))
	for i := range s {
		result[i] = s[i] + scale*b[i]
	}
	return result
}

// IsValid reports whether every component is finite.
func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Derivative maps (state, time) to the state's time derivative. It must
// be deterministic and side-effect free; solvers call it any number of
// times per step.
type Derivative func(y State, t float64) State

// Point is one accepted sample of a solution.
type Point struct {
	State State
	Time  float64
}

// Trajectory is the discretized solution, strictly increasing in time.
// The first point is always the initial condition and the last point's
// time equals Config.TimeEnd exactly.
type Trajectory []Point

// Last returns the final point. It panics on an empty trajectory.
func (tr Trajectory) Last() Point { return tr[len(tr)-1] }

// Component extracts one state component over the whole trajectory,
// mainly for plotting.
func (tr Trajectory) Component(i int) []float64 {
	out := make([]float64, len(tr))
	for j, p := range tr {
		out[j] = p.State[i]
	}
	return out
}

// Times returns the sample times of the trajectory.
func (tr Trajectory) Times() []float64 {
	out := make([]float64, len(tr))
	for j, p := range tr {
		out[j] = p.Time
	}
	return out
}

// Defaults for the adaptive fields of Config. Fixed-step schemes ignore
// them.
const (
	DefaultTolerance = 1e-6
	DefaultMinStep   = 1e-10
	DefaultMaxStep   = 0.1
)

// ErrInvalidConfig wraps every configuration validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config describes one solve. It is read-only for the duration of the
// call.
type Config struct {
	TimeStart    float64
	TimeEnd      float64
	StepSize     float64 // nominal step; initial step for RK45
	InitialState State

	// Consulted by RK45 only.
	Tolerance float64
	MinStep   float64
	MaxStep   float64
}

// NewConfig builds a Config with the adaptive fields at their defaults.
func NewConfig(start, end, step float64, y0 State) Config {
	return Config{
		TimeStart:    start,
		TimeEnd:      end,
		StepSize:     step,
		InitialState: y0,
		Tolerance:    DefaultTolerance,
		MinStep:      DefaultMinStep,
		MaxStep:      DefaultMaxStep,
	}
}

func (c Config) Validate() error {
	if c.TimeEnd < c.TimeStart {
		return fmt.Errorf("%w: time_end %f before time_start %f", ErrInvalidConfig, c.TimeEnd, c.TimeStart)
	}
	if c.StepSize <= 0 {
		return fmt.Errorf("%w: step size must be positive, got %f", ErrInvalidConfig, c.StepSize)
	}
	if len(c.InitialState) == 0 {
		return fmt.Errorf("%w: empty initial state", ErrInvalidConfig)
	}
	return nil
}

func (c Config) validateAdaptive() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Tolerance <= 0 {
		return fmt.Errorf("%w: tolerance must be positive, got %g", ErrInvalidConfig, c.Tolerance)
	}
	if c.MinStep <= 0 {
		return fmt.Errorf("%w: min step must be positive, got %g", ErrInvalidConfig, c.MinStep)
	}
	if c.MaxStep < c.MinStep {
		return fmt.Errorf("%w: max step %g below min step %g", ErrInvalidConfig, c.MaxStep, c.MinStep)
	}
	return nil
}
