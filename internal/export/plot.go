// Package export renders simulated responses to PNG and SVG image
// files with gonum/plot.
package export

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Series is one named trajectory on a response plot
type Series struct {
	Name   string
	Time   []float64
	Output []float64
}

// ResponsePlot draws one or more trajectories over time. When ref is
// non-zero a dashed reference line is included.
func ResponsePlot(title string, ref float64, series ...Series) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "time (s)"
	p.Y.Label.Text = "output"
	p.Legend.Top = false
	stylePlot(p)

	for i, s := range series {
		if len(s.Time) != len(s.Output) || len(s.Time) == 0 {
			return nil, fmt.Errorf("export: series %q has invalid data", s.Name)
		}
		pts := make(plotter.XYs, len(s.Time))
		for j := range s.Time {
			pts[j].X = s.Time[j]
			pts[j].Y = s.Output[j]
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, err
		}
		line.LineStyle.Width = vg.Points(2)
		line.Color = plotutil.Color(i)
		p.Add(line)
		p.Legend.Add(s.Name, line)
	}

	if ref != 0 && len(series) > 0 {
		tEnd := series[0].Time[len(series[0].Time)-1]
		refLine, err := plotter.NewLine(plotter.XYs{{X: 0, Y: ref}, {X: tEnd, Y: ref}})
		if err != nil {
			return nil, err
		}
		refLine.LineStyle.Width = vg.Points(1)
		refLine.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
		p.Add(refLine)
		p.Legend.Add("reference", refLine)
	}
	return p, nil
}

// Save writes the plot to path. A .svg extension picks SVG via the
// plot package's own writer; anything else saves a 150 DPI PNG.
func Save(p *plot.Plot, path string, widthIn, heightIn float64) error {
	w := vg.Length(widthIn) * vg.Inch
	h := vg.Length(heightIn) * vg.Inch
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		return p.Save(w, h, path)
	}
	return savePNG(p, w, h, path)
}

func savePNG(p *plot.Plot, w, h vg.Length, path string) error {
	c := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(150))
	p.Draw(draw.New(c))

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	defer bw.Flush()

	pngc := vgimg.PngCanvas{Canvas: c}
	if _, err := pngc.WriteTo(bw); err != nil {
		return fmt.Errorf("export: cannot write png: %w", err)
	}
	return nil
}

func stylePlot(p *plot.Plot) {
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.TextStyle.Font.Size = vg.Points(11)
	p.Y.Label.TextStyle.Font.Size = vg.Points(11)
	p.X.Tick.Label.Font.Size = vg.Points(9)
	p.Y.Tick.Label.Font.Size = vg.Points(9)
	p.Add(plotter.NewGrid())
}
