package report

import (
	"bytes"
	"strings"
	"testing"

	"pidlab/internal/metrics"
	"pidlab/internal/pid"
	"pidlab/internal/ss"
)

func TestRenderProducesHTML(t *testing.T) {
	resp := &ss.Response{
		Time:   []float64{0, 0.5, 1.0},
		Output: []float64{0, 0.6, 0.9},
	}
	data := Data{
		System:     "underdamped",
		Gains:      pid.Gains{Kp: 1, Ki: 0.5},
		Servo:      resp,
		Regulatory: resp,
		Step:       metrics.StepMetrics{OvershootPercent: 12.5},
	}

	var buf bytes.Buffer
	if err := Render(&buf, data); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	html := buf.String()
	if !strings.Contains(html, "<html") {
		t.Error("expected an HTML document")
	}
	if !strings.Contains(html, "underdamped") {
		t.Error("expected the system name in the report")
	}
	if !strings.Contains(html, "servo output") {
		t.Error("expected the servo series in the report")
	}
	if !strings.Contains(html, "disturbance output") {
		t.Error("expected the disturbance series in the report")
	}
}

func TestRenderWithoutRegulatoryTrace(t *testing.T) {
	data := Data{
		System: "integrator",
		Servo: &ss.Response{
			Time:   []float64{0, 1},
			Output: []float64{0, 1},
		},
	}

	var buf bytes.Buffer
	if err := Render(&buf, data); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if strings.Contains(buf.String(), "disturbance output") {
		t.Error("expected no disturbance chart without a regulatory trace")
	}
}
