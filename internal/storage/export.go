package storage

import (
	"encoding/json"
	"io"
	"os"

	"pidlab/internal/loop"
	"pidlab/internal/metrics"
	"pidlab/internal/pid"
	"pidlab/internal/ss"
)

// ExportData is the flat JSON shape consumed by external tooling
type ExportData struct {
	System            string                     `json:"system"`
	Gains             pid.Gains                  `json:"gains"`
	Horizon           loop.Horizon               `json:"horizon"`
	Samples           int                        `json:"samples"`
	Time              []float64                  `json:"time"`
	ServoOutput       []float64                  `json:"servo_output"`
	DisturbanceOutput []float64                  `json:"disturbance_output,omitempty"`
	Step              metrics.StepMetrics        `json:"step_metrics"`
	Disturbance       metrics.DisturbanceMetrics `json:"disturbance_metrics"`
}

// ExportJSON writes one evaluation as indented JSON to path
func ExportJSON(path string, data ExportData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return writeExport(file, data)
}

// ExportJSONTo streams the evaluation to any writer, stdout included
func ExportJSONTo(w io.Writer, data ExportData) error {
	return writeExport(w, data)
}

func writeExport(w io.Writer, data ExportData) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// NewExportData assembles the export shape from simulation results
func NewExportData(system string, gains pid.Gains, h loop.Horizon,
	servo, regulatory *ss.Response,
	step metrics.StepMetrics, dist metrics.DisturbanceMetrics) ExportData {

	data := ExportData{
		System:      system,
		Gains:       gains,
		Horizon:     h,
		Samples:     len(servo.Time),
		Time:        servo.Time,
		ServoOutput: servo.Output,
		Step:        step,
		Disturbance: dist,
	}
	if regulatory != nil {
		data.DisturbanceOutput = regulatory.Output
	}
	return data
}
