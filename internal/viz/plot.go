// Package viz renders trajectories and solver comparisons for the
// terminal.
package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/guptarohit/asciigraph"

	"github.com/p-havel/odelab/internal/lab"
	"github.com/p-havel/odelab/internal/ode"
)

const (
	plotWidth  = 80
	plotHeight = 10
)

// PlotTrajectory renders one chart per state component, up to maxVars.
func PlotTrajectory(traj ode.Trajectory, labels []string, maxVars int) string {
	if len(traj) == 0 {
		return "no data to plot\n"
	}

	numVars := len(traj[0].State)
	if numVars > maxVars {
		numVars = maxVars
	}

	var sb strings.Builder
	for i := 0; i < numVars; i++ {
		caption := fmt.Sprintf("y%d vs time", i)
		if i < len(labels) && labels[i] != "" {
			caption = labels[i]
		}

		graph := asciigraph.Plot(traj.Component(i),
			asciigraph.Height(plotHeight),
			asciigraph.Width(plotWidth),
			asciigraph.Caption(caption),
		)
		sb.WriteString(graph)
		sb.WriteString("\n\n")
	}
	return sb.String()
}

// PlotStepSizes charts the time spacing of an adaptive trajectory, the
// visible trace of the step controller at work.
func PlotStepSizes(hs []float64) string {
	if len(hs) == 0 {
		return "no steps to plot\n"
	}
	return asciigraph.Plot(hs,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption("step size per accepted step"),
	) + "\n"
}

// ComparisonTable renders the side-by-side solver comparison.
func ComparisonTable(rows []lab.ComparisonRow) string {
	var sb strings.Builder

	sb.WriteString(headerStyle.Render(fmt.Sprintf("%-8s %-6s %-8s %-14s %-14s %s",
		"SOLVER", "ORDER", "POINTS", "TERM ERROR", "ENERGY DRIFT", "TIME")))
	sb.WriteString("\n")

	best := bestError(rows)
	for _, row := range rows {
		line := fmt.Sprintf("%-8s %-6d %-8d %-14s %-14s %v",
			row.Solver, row.Order, row.Points,
			formatMetric(row.TerminalError),
			formatMetric(row.EnergyDrift),
			row.Elapsed.Round(time.Microsecond),
		)
		if !math.IsNaN(row.TerminalError) && row.TerminalError == best {
			sb.WriteString(bestStyle.Render(line))
		} else {
			sb.WriteString(valueStyle.Render(line))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func bestError(rows []lab.ComparisonRow) float64 {
	best := math.Inf(1)
	for _, row := range rows {
		if !math.IsNaN(row.TerminalError) && row.TerminalError < best {
			best = row.TerminalError
		}
	}
	return best
}

func formatMetric(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return fmt.Sprintf("%.3e", v)
}

// Sparkline renders a compact one-line view of a series.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	step := len(values) / width
	if step < 1 {
		step = 1
	}

	var sb strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		norm := (values[i*step] - lo) / rng
		idx := int(norm * float64(len(chars)-1))
		if idx >= len(chars) {
			idx = len(chars) - 1
		}
		if idx < 0 {
			idx = 0
		}
		sb.WriteRune(chars[idx])
	}
	return sb.String()
}
