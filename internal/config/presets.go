package config

var Presets = map[string]map[string]*Config{
	"decay": {
		"slow": {
			Problem: "decay", Solver: "euler", TimeEnd: 5.0, StepSize: 0.1,
			InitState: []float64{10.0},
		},
		"reference": {
			Problem: "decay", Solver: "rk45", TimeEnd: 5.0, StepSize: 0.1,
			InitState: []float64{10.0}, Tolerance: 1e-10,
		},
	},
	"oscillator": {
		"period": {
			Problem: "oscillator", Solver: "rk4", TimeEnd: 1.0, StepSize: 0.01,
		},
		"longrun": {
			Problem: "oscillator", Solver: "rk4", TimeEnd: 50.0, StepSize: 0.01,
		},
	},
	"pendulum": {
		"small": {
			Problem: "pendulum", Solver: "rk4", TimeEnd: 20.0, StepSize: 0.01,
			InitState: []float64{0.2, 0.0},
		},
		"large": {
			Problem: "pendulum", Solver: "rk4", TimeEnd: 20.0, StepSize: 0.01,
			InitState: []float64{2.5, 0.0},
		},
	},
	"lorenz": {
		"classic": {
			Problem: "lorenz", Solver: "rk45", TimeEnd: 25.0, StepSize: 0.01,
			Tolerance: 1e-8, MaxStep: 0.05,
		},
	},
}

// GetPreset returns the named preset for a problem, or nil.
func GetPreset(problem, name string) *Config {
	group, ok := Presets[problem]
	if !ok {
		return nil
	}
	return group[name]
}

// ListPresets returns the preset names for a problem.
func ListPresets(problem string) []string {
	group, ok := Presets[problem]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(group))
	for name := range group {
		names = append(names, name)
	}
	return names
}
