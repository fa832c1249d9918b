// Package config loads and saves run configurations as YAML.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/p-havel/odelab/internal/ode"
)

const (
	DefaultStepSize  = 0.01
	DefaultTimeStart = 0.0
	DefaultTimeEnd   = 10.0
)

// Config describes one run: which problem, which solver, and the solve
// parameters. An empty InitState falls back to the problem's default.
type Config struct {
	Problem   string    `yaml:"problem"`
	Solver    string    `yaml:"solver"`
	TimeStart float64   `yaml:"time_start"`
	TimeEnd   float64   `yaml:"time_end"`
	StepSize  float64   `yaml:"step_size"`
	InitState []float64 `yaml:"init_state,omitempty"`

	// Adaptive solver knobs; zero means the solver default.
	Tolerance float64 `yaml:"tolerance,omitempty"`
	MinStep   float64 `yaml:"min_step,omitempty"`
	MaxStep   float64 `yaml:"max_step,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Problem:   "oscillator",
		Solver:    "rk4",
		TimeStart: DefaultTimeStart,
		TimeEnd:   DefaultTimeEnd,
		StepSize:  DefaultStepSize,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SolverConfig translates the run configuration into the solver
// package's Config, using initState when the file did not pin one.
func (c *Config) SolverConfig(initState ode.State) ode.Config {
	if len(c.InitState) > 0 {
		initState = ode.State(c.InitState)
	}
	cfg := ode.NewConfig(c.TimeStart, c.TimeEnd, c.StepSize, initState)
	if c.Tolerance > 0 {
		cfg.Tolerance = c.Tolerance
	}
	if c.MinStep > 0 {
		cfg.MinStep = c.MinStep
	}
	if c.MaxStep > 0 {
		cfg.MaxStep = c.MaxStep
	}
	return cfg
}
