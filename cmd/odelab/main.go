package main

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/p-havel/odelab/internal/analysis"
	"github.com/p-havel/odelab/internal/config"
	"github.com/p-havel/odelab/internal/lab"
	"github.com/p-havel/odelab/internal/ode"
	"github.com/p-havel/odelab/internal/storage"
	"github.com/p-havel/odelab/internal/tui"
	"github.com/p-havel/odelab/internal/viz"
)

var (
	dataDir    string
	solverName string
	timeStart  float64
	timeEnd    float64
	stepSize   float64
	tolerance  float64
	minStep    float64
	maxStep    float64
	initState  []float64
	configFile string
	preset     string
	frameRate  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "odelab",
		Short: "ODE initial value problem solver lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".odelab", "data directory")

	solveCmd := &cobra.Command{
		Use:   "solve [problem]",
		Short: "solve a problem and store the trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  runSolve,
	}
	addSolveFlags(solveCmd)
	solveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	solveCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	compareCmd := &cobra.Command{
		Use:   "compare [problem] [solver1] [solver2] ...",
		Short: "compare solvers on the same problem",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runCompare,
	}
	addSolveFlags(compareCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [problem]",
		Short: "list available presets for a problem",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets(args[0])
			if len(names) == 0 {
				fmt.Printf("no presets for problem: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range names {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	liveCmd := &cobra.Command{
		Use:   "live [problem]",
		Short: "solve and play the trajectory back live",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addSolveFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	benchCmd := &cobra.Command{
		Use:   "bench [problem]",
		Short: "benchmark solvers on a problem",
		Args:  cobra.ExactArgs(1),
		RunE:  benchProblem,
	}

	rootCmd.AddCommand(solveCmd, compareCmd, listCmd, plotCmd, exportCmd, presetsCmd, liveCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSolveFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&solverName, "solver", "rk4", "solver (euler|rk2|rk4|rk45)")
	cmd.Flags().Float64Var(&timeStart, "t0", 0.0, "start time")
	cmd.Flags().Float64Var(&timeEnd, "t1", 10.0, "end time")
	cmd.Flags().Float64Var(&stepSize, "dt", 0.01, "step size (initial step for rk45)")
	cmd.Flags().Float64Var(&tolerance, "tol", ode.DefaultTolerance, "error tolerance (rk45)")
	cmd.Flags().Float64Var(&minStep, "min-step", ode.DefaultMinStep, "minimum step (rk45)")
	cmd.Flags().Float64Var(&maxStep, "max-step", ode.DefaultMaxStep, "maximum step (rk45)")
	cmd.Flags().Float64SliceVar(&initState, "state", nil, "initial state (defaults to the problem's)")
}

// buildConfig merges preset, config file, and flags. Flags win over the
// file, the file wins over the preset.
func buildConfig(cmd *cobra.Command, problem string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Problem = problem

	if preset != "" {
		p := config.GetPreset(problem, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(problem))
		}
		*cfg = *p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		*cfg = *loaded
		cfg.Problem = problem
	}

	if cmd.Flags().Changed("solver") || cfg.Solver == "" {
		cfg.Solver = solverName
	}
	if cmd.Flags().Changed("t0") {
		cfg.TimeStart = timeStart
	}
	if cmd.Flags().Changed("t1") || cfg.TimeEnd == 0 {
		cfg.TimeEnd = timeEnd
	}
	if cmd.Flags().Changed("dt") || cfg.StepSize == 0 {
		cfg.StepSize = stepSize
	}
	if cmd.Flags().Changed("tol") {
		cfg.Tolerance = tolerance
	}
	if cmd.Flags().Changed("min-step") {
		cfg.MinStep = minStep
	}
	if cmd.Flags().Changed("max-step") {
		cfg.MaxStep = maxStep
	}
	if cmd.Flags().Changed("state") {
		cfg.InitState = initState
	}

	return cfg, nil
}

func solveOnce(cmd *cobra.Command, problem string) (*config.Config, lab.Problem, ode.Trajectory, *ode.Stats, error) {
	cfg, err := buildConfig(cmd, problem)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	registry := lab.NewRegistry()
	prob, err := registry.GetProblem(cfg.Problem)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	solver, err := registry.GetSolver(cfg.Solver)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	solveCfg := cfg.SolverConfig(prob.DefaultState())

	if rk45, ok := solver.(*ode.RK45); ok {
		traj, stats, err := rk45.SolveAdaptive(prob.Func(), solveCfg)
		return cfg, prob, traj, &stats, err
	}

	traj, err := solver.Solve(prob.Func(), solveCfg)
	return cfg, prob, traj, nil, err
}

func runSolve(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	start := time.Now()
	cfg, prob, traj, stats, err := solveOnce(cmd, args[0])
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	metrics := map[string]float64{}
	if a, ok := prob.(lab.Analytic); ok {
		metrics["terminal_error"] = analysis.TerminalError(traj, a.Exact(traj.Last().Time))
	}
	if c, ok := prob.(lab.Conservative); ok {
		metrics["energy_drift"] = analysis.EnergyDrift(traj, c.Energy)
	}

	runID, err := st.Save(cfg.Problem, cfg.Solver, cfg.SolverConfig(prob.DefaultState()), traj, metrics)
	if err != nil {
		return err
	}

	fmt.Printf("solved %s with %s in %v\n", cfg.Problem, cfg.Solver, elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("points: %d\n", len(traj))
	if stats != nil {
		fmt.Printf("accepted: %d  rejected: %d  evaluations: %d\n",
			stats.Accepted, stats.Rejected, stats.Evaluations)
		if stats.Forced > 0 {
			fmt.Printf("warning: %d steps forced through at the minimum step size\n", stats.Forced)
		}
		ss := analysis.Steps(traj)
		fmt.Printf("step size: min %.3e  max %.3e  mean %.3e\n", ss.Min, ss.Max, ss.Mean)
	}
	if len(metrics) > 0 {
		fmt.Println("\nmetrics:")
		for name, val := range metrics {
			fmt.Printf("  %s: %.6e\n", name, val)
		}
	}

	return nil
}

func runCompare(cmd *cobra.Command, args []string) error {
	problem := args[0]
	solvers := args[1:]
	if len(solvers) == 0 {
		solvers = []string{"euler", "rk2", "rk4", "rk45"}
	}

	cfg, err := buildConfig(cmd, problem)
	if err != nil {
		return err
	}

	registry := lab.NewRegistry()
	prob, err := registry.GetProblem(cfg.Problem)
	if err != nil {
		return err
	}

	rows, err := lab.Compare(registry, problem, solvers, cfg.SolverConfig(prob.DefaultState()))
	if err != nil {
		return err
	}

	fmt.Printf("problem: %s over [%g, %g], dt %g\n\n", problem, cfg.TimeStart, cfg.TimeEnd, cfg.StepSize)
	fmt.Print(viz.ComparisonTable(rows))
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPROBLEM\tSOLVER\tTIME\tINTERVAL\tDT\tPOINTS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t[%g, %g]\t%g\t%d\n",
			run.ID,
			run.Problem,
			run.Solver,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.TimeStart,
			run.TimeEnd,
			run.StepSize,
			run.Points,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	traj, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("problem: %s, solver: %s\n", meta.Problem, meta.Solver)
	fmt.Printf("points: %d\n\n", len(traj))

	fmt.Print(viz.PlotTrajectory(traj, componentLabels(meta.Problem), 6))

	if meta.Solver == "rk45" {
		fmt.Print(viz.PlotStepSizes(analysis.StepSizes(traj)))
	}
	return nil
}

func componentLabels(problem string) []string {
	switch problem {
	case "decay":
		return []string{"y"}
	case "oscillator":
		return []string{"position", "velocity"}
	case "pendulum":
		return []string{"theta (angle)", "omega (angular velocity)"}
	case "lorenz":
		return []string{"x", "y", "z"}
	default:
		return nil
	}
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, _, traj, _, err := solveOnce(cmd, args[0])
	if err != nil {
		return err
	}

	title := fmt.Sprintf("%s · %s", cfg.Problem, cfg.Solver)
	return tui.Run(title, traj, frameRate)
}

func benchProblem(cmd *cobra.Command, args []string) error {
	registry := lab.NewRegistry()
	prob, err := registry.GetProblem(args[0])
	if err != nil {
		return err
	}
	f := prob.Func()

	fmt.Printf("benchmarking %s\n\n", args[0])
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SOLVER\tDT\tPOINTS\tTIME\tPOINTS/SEC")

	for _, name := range registry.ListSolvers() {
		solver, err := registry.GetSolver(name)
		if err != nil {
			return err
		}
		for _, dt := range []float64{0.001, 0.01, 0.1} {
			cfg := ode.NewConfig(0, 10, dt, prob.DefaultState())

			start := time.Now()
			traj, err := solver.Solve(f, cfg)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			rate := float64(len(traj)) / elapsed.Seconds()
			if math.IsInf(rate, 0) {
				rate = 0
			}
			fmt.Fprintf(w, "%s\t%g\t%d\t%v\t%.0f\n", name, dt, len(traj), elapsed, rate)
		}
	}
	return w.Flush()
}
