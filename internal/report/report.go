// Package report renders an interactive HTML summary of a closed-loop
// evaluation: servo and disturbance trajectories with zoomable
// go-echarts line charts, annotated with the metric figures.
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"pidlab/internal/metrics"
	"pidlab/internal/pid"
	"pidlab/internal/ss"
)

// Data collects everything one report page shows
type Data struct {
	System      string
	Gains       pid.Gains
	Servo       *ss.Response
	Regulatory  *ss.Response
	Step        metrics.StepMetrics
	Disturbance metrics.DisturbanceMetrics
}

// Render writes the full HTML page to w
func Render(w io.Writer, d Data) error {
	page := components.NewPage()
	page.PageTitle = fmt.Sprintf("pidlab report: %s", d.System)

	servo := newTraceChart(
		fmt.Sprintf("Servo step response — %s", d.System),
		fmt.Sprintf("kp=%.3g ki=%.3g kd=%.3g | overshoot %.1f%% | settling %.2fs | rise %.2fs | sse %.3g",
			d.Gains.Kp, d.Gains.Ki, d.Gains.Kd,
			d.Step.OvershootPercent, d.Step.SettlingTime, d.Step.RiseTime, d.Step.SteadyStateError),
	)
	addSeries(servo, "servo output", d.Servo)
	page.AddCharts(servo)

	if d.Regulatory != nil {
		dist := newTraceChart(
			fmt.Sprintf("Load disturbance response — %s", d.System),
			fmt.Sprintf("max deviation %.3g | recovery %.2fs | energy %.3g",
				d.Disturbance.MaxDeviation, d.Disturbance.RecoveryTime, d.Disturbance.DisturbanceEnergy),
		)
		addSeries(dist, "disturbance output", d.Regulatory)
		page.AddCharts(dist)
	}

	return page.Render(w)
}

// WriteFile renders the report to an HTML file
func WriteFile(path string, d Data) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return Render(f, d)
}

func newTraceChart(title, subtitle string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name:        "time (s)",
			SplitNumber: 20,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Scale: opts.Bool(true),
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			XAxisIndex: []int{0},
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
	)
	return line
}

func addSeries(line *charts.Line, name string, resp *ss.Response) {
	xs := make([]string, len(resp.Time))
	ys := make([]opts.LineData, len(resp.Output))
	for i := range resp.Time {
		xs[i] = fmt.Sprintf("%.3f", resp.Time[i])
		ys[i] = opts.LineData{Value: resp.Output[i]}
	}
	line.SetXAxis(xs).AddSeries(name, ys,
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true), ShowSymbol: opts.Bool(false)}))
}
