package pipeline

import (
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/trajprep/pkg/errors"
)

// PlotVariance renders a scree chart of the projection: one bar per component
// for its explained variance ratio and a line for the cumulative ratio. The
// image format follows the file extension (png, svg, pdf, ...).
func PlotVariance(p Projection, path string) error {
	ratios := p.ExplainedVarianceRatio()
	if len(ratios) == 0 {
		return errors.NewNotFittedError("Projection", "PlotVariance")
	}

	pl := plot.New()
	pl.Title.Text = "Explained variance by principal component"
	pl.X.Label.Text = "Component"
	pl.Y.Label.Text = "Explained variance ratio"
	pl.Y.Min = 0
	pl.Y.Max = 1

	bars, err := plotter.NewBarChart(plotter.Values(ratios), vg.Points(20))
	if err != nil {
		return errors.Wrap(err, "build bar chart")
	}
	bars.LineStyle.Width = vg.Length(0)
	pl.Add(bars)
	pl.Legend.Add("component", bars)

	cumulative := make(plotter.XYs, len(ratios))
	sum := 0.0
	for i, r := range ratios {
		sum += r
		cumulative[i] = plotter.XY{X: float64(i), Y: sum}
	}
	line, points, err := plotter.NewLinePoints(cumulative)
	if err != nil {
		return errors.Wrap(err, "build cumulative line")
	}
	line.Width = vg.Points(1)
	pl.Add(line, points)
	pl.Legend.Add("cumulative", line, points)

	names := make([]string, len(ratios))
	for i := range names {
		names[i] = ComponentPrefix + strconv.Itoa(i+1)
	}
	pl.NominalX(names...)

	pl.Legend.Top = true
	pl.Legend.Left = false
	pl.Legend.XOffs = -10
	pl.Legend.YOffs = -10

	if err := pl.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "save variance plot %s", path)
	}
	return nil
}
