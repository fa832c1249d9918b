// Package storage persists solver runs: one directory per run holding
// metadata.json and trajectory.csv.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/p-havel/odelab/internal/ode"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Problem   string             `json:"problem"`
	Solver    string             `json:"solver"`
	Timestamp time.Time          `json:"timestamp"`
	TimeStart float64            `json:"time_start"`
	TimeEnd   float64            `json:"time_end"`
	StepSize  float64            `json:"step_size"`
	Points    int                `json:"points"`
	Metrics   map[string]float64 `json:"metrics,omitempty"`
}

func (s *Store) Save(problem, solver string, cfg ode.Config, traj ode.Trajectory, metrics map[string]float64) (string, error) {
	runID := fmt.Sprintf("%s_%s_%d", problem, solver, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Problem:   problem,
		Solver:    solver,
		Timestamp: time.Now(),
		TimeStart: cfg.TimeStart,
		TimeEnd:   cfg.TimeEnd,
		StepSize:  cfg.StepSize,
		Points:    len(traj),
		Metrics:   metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "trajectory.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if len(traj) == 0 {
		return runID, nil
	}

	header := []string{"time"}
	for i := range traj[0].State {
		header = append(header, fmt.Sprintf("y%d", i))
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for _, p := range traj {
		row := make([]string, 0, len(p.State)+1)
		row = append(row, strconv.FormatFloat(p.Time, 'g', 17, 64))
		for _, v := range p.State {
			row = append(row, strconv.FormatFloat(v, 'g', 17, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadTrajectory(runID string) (ode.Trajectory, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "trajectory.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return ode.Trajectory{}, nil
	}

	traj := make(ode.Trajectory, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 2 {
			continue
		}

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}

		state := make(ode.State, 0, len(record)-1)
		for _, field := range record[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				continue
			}
			state = append(state, v)
		}
		traj = append(traj, ode.Point{State: state, Time: t})
	}

	return traj, nil
}
