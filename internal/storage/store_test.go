package storage

import (
	"bytes"
	"encoding/json"
	"math"
	"testing"

	"pidlab/internal/loop"
	"pidlab/internal/metrics"
	"pidlab/internal/pid"
	"pidlab/internal/ss"
)

func sampleResponse() *ss.Response {
	return &ss.Response{
		Time:   []float64{0, 0.5, 1.0, 1.5},
		Output: []float64{0, 0.39, 0.63, 0.78},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	gains := pid.Gains{Kp: 1.5, Ki: 0.5, Kd: 0.1}
	step := metrics.StepMetrics{RiseTime: 1.2, SteadyStateValue: 0.99}
	dist := metrics.DisturbanceMetrics{MaxDeviation: 0.3}

	runID, err := store.Save("underdamped", gains, loop.DefaultHorizon(), step, dist,
		sampleResponse(), sampleResponse())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	run, err := store.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if run.Meta.System != "underdamped" {
		t.Errorf("expected system underdamped, got %q", run.Meta.System)
	}
	if run.Meta.Gains != gains {
		t.Errorf("expected gains %+v, got %+v", gains, run.Meta.Gains)
	}
	if run.Meta.Step.RiseTime != 1.2 {
		t.Errorf("expected rise time 1.2, got %v", run.Meta.Step.RiseTime)
	}
	if len(run.Servo.Time) != 4 {
		t.Fatalf("expected 4 servo samples, got %d", len(run.Servo.Time))
	}
	for i, want := range sampleResponse().Output {
		if math.Abs(run.Servo.Output[i]-want) > 1e-9 {
			t.Errorf("servo sample %d: expected %v, got %v", i, want, run.Servo.Output[i])
		}
	}
}

func TestListSkipsCorruptEntries(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	if _, err := store.Save("integrator", pid.Gains{Kp: 1}, loop.DefaultHorizon(),
		metrics.StepMetrics{}, metrics.DisturbanceMetrics{},
		sampleResponse(), sampleResponse()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err := store.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	if runs[0].System != "integrator" {
		t.Errorf("expected system integrator, got %q", runs[0].System)
	}
}

func TestListEmptyBaseDir(t *testing.T) {
	store := New("does-not-exist")

	runs, err := store.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestExportJSONShape(t *testing.T) {
	data := NewExportData("underdamped", pid.Gains{Kp: 2}, loop.DefaultHorizon(),
		sampleResponse(), sampleResponse(),
		metrics.StepMetrics{IAE: 1.5}, metrics.DisturbanceMetrics{})

	var buf bytes.Buffer
	if err := ExportJSONTo(&buf, data); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var decoded ExportData
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if decoded.Samples != 4 {
		t.Errorf("expected 4 samples, got %d", decoded.Samples)
	}
	if decoded.Step.IAE != 1.5 {
		t.Errorf("expected IAE 1.5, got %v", decoded.Step.IAE)
	}
}
