// Package storage persists simulation runs as one directory per run:
// metadata.json carries the scenario and metric summary, servo.csv and
// disturbance.csv carry the raw trajectories.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"pidlab/internal/loop"
	"pidlab/internal/metrics"
	"pidlab/internal/pid"
	"pidlab/internal/ss"
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

// RunMetadata summarizes one persisted closed-loop evaluation
type RunMetadata struct {
	ID          string                     `json:"id"`
	System      string                     `json:"system"`
	Timestamp   time.Time                  `json:"timestamp"`
	Gains       pid.Gains                  `json:"gains"`
	Horizon     loop.Horizon               `json:"horizon"`
	Step        metrics.StepMetrics        `json:"step_metrics"`
	Disturbance metrics.DisturbanceMetrics `json:"disturbance_metrics"`
}

// Run is a fully loaded persisted evaluation
type Run struct {
	Meta       RunMetadata
	Servo      *ss.Response
	Regulatory *ss.Response
}

// Save writes the run directory and returns its generated ID
func (s *Store) Save(system string, gains pid.Gains, h loop.Horizon,
	step metrics.StepMetrics, dist metrics.DisturbanceMetrics,
	servo, regulatory *ss.Response) (string, error) {

	runID := fmt.Sprintf("%s_%d", system, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		System:      system,
		Timestamp:   time.Now(),
		Gains:       gains,
		Horizon:     h,
		Step:        step,
		Disturbance: dist,
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

	if err := writeTrace(filepath.Join(runDir, "servo.csv"), servo); err != nil {
		return "", err
	}
	if err := writeTrace(filepath.Join(runDir, "disturbance.csv"), regulatory); err != nil {
		return "", err
	}
	return runID, nil
}

func writeTrace(path string, resp *ss.Response) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write([]string{"time", "output"}); err != nil {
		return err
	}
	for i := range resp.Time {
		row := []string{
			strconv.FormatFloat(resp.Time[i], 'f', 6, 64),
			strconv.FormatFloat(resp.Output[i], 'g', 12, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// List returns metadata for every readable run, skipping corrupt entries
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

// Load reads a complete run back, traces included
func (s *Store) Load(runID string) (*Run, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	servo, err := readTrace(filepath.Join(s.baseDir, runID, "servo.csv"))
	if err != nil {
		return nil, err
	}
	regulatory, err := readTrace(filepath.Join(s.baseDir, runID, "disturbance.csv"))
	if err != nil {
		return nil, err
	}
	return &Run{Meta: meta, Servo: servo, Regulatory: regulatory}, nil
}

func readTrace(path string) (*ss.Response, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}

	resp := &ss.Response{}
	for i := 1; i < len(records); i++ {
		if len(records[i]) < 2 {
			continue
		}
		t, err := strconv.ParseFloat(records[i][0], 64)
		if err != nil {
			continue
		}
		y, err := strconv.ParseFloat(records[i][1], 64)
		if err != nil {
			continue
		}
		resp.Time = append(resp.Time, t)
		resp.Output = append(resp.Output, y)
	}
	return resp, nil
}
