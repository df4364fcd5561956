package report

import (
	"fmt"
	"io"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"schedsim/internal/sched"
)

// metric is one bar group series of the comparison chart.
type metric struct {
	name  string
	value func(sched.Stats) float64
}

var chartMetrics = []metric{
	{"Avg waiting", func(st sched.Stats) float64 { return st.AvgWaiting }},
	{"Avg turnaround", func(st sched.Stats) float64 { return st.AvgTurnaround }},
	{"Avg response", func(st sched.Stats) float64 { return st.AvgResponse }},
}

// newChart builds a grouped bar chart with one group per algorithm.
func newChart(results []sched.Result) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Scheduling comparison"
	p.Y.Label.Text = "Time units"

	barWidth := vg.Points(18)
	for i, m := range chartMetrics {
		values := make(plotter.Values, len(results))
		for j, res := range results {
			values[j] = m.value(res.Stats)
		}

		bars, err := plotter.NewBarChart(values, barWidth)
		if err != nil {
			return nil, fmt.Errorf("%s bars: %w", m.name, err)
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = plotutil.Color(i)
		bars.Offset = vg.Length(i-len(chartMetrics)/2) * barWidth

		p.Add(bars)
		p.Legend.Add(m.name, bars)
	}
	p.Legend.Top = true

	names := make([]string, len(results))
	for i, res := range results {
		names[i] = res.Algorithm.Short()
	}
	p.NominalX(names...)
	return p, nil
}

// WriteChart encodes the comparison chart of results as PNG.
func WriteChart(w io.Writer, results []sched.Result) error {
	p, err := newChart(results)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(6*vg.Inch, 4*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	_, err = wt.WriteTo(w)
	return err
}

// SaveChart writes the comparison chart of results to path.
func SaveChart(path string, results []sched.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	if err := WriteChart(f, results); err != nil {
		f.Close()
		return fmt.Errorf("write chart %s: %w", path, err)
	}
	return f.Close()
}
