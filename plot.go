package stone

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// SavePlot renders the titration as a semilog-x scatter grouped by valency,
// with the fitted model curve for each valency overlaid, and writes it to
// path (format from the extension, e.g. .png or .pdf).
func (m Model) SavePlot(d Dataset, p Params, path string) error {
	if d.Len() == 0 {
		return fmt.Errorf("%w: empty dataset", ErrInvalidInput)
	}

	pl := plot.New()
	pl.Title.Text = "Stone model fit"
	pl.X.Label.Text = "ligand concentration (M)"
	pl.Y.Label.Text = "response"
	pl.X.Scale = plot.LogScale{}
	pl.X.Tick.Marker = plot.LogTicks{Prec: -1}

	grid := floats.LogSpan(make([]float64, 100), floats.Min(d.Conc), floats.Max(d.Conc))

	for vi, v := range d.Valencies() {
		var pts plotter.XYs
		for i := 0; i < d.Len(); i++ {
			if d.Valency[i] == v {
				pts = append(pts, plotter.XY{X: d.Conc[i], Y: d.Response[i]})
			}
		}

		scatter, err := plotter.NewScatter(pts)
		if err != nil {
			return fmt.Errorf("scatter for valency %d: %w", v, err)
		}
		scatter.Color = plotutil.Color(vi)
		scatter.Shape = plotutil.Shape(vi)

		var curve plotter.XYs
		for _, c := range grid {
			y, err := m.Predict(p, c, v)
			if err != nil {
				return fmt.Errorf("fitted curve at conc %g, valency %d: %w", c, v, err)
			}
			curve = append(curve, plotter.XY{X: c, Y: y})
		}
		line, err := plotter.NewLine(curve)
		if err != nil {
			return fmt.Errorf("line for valency %d: %w", v, err)
		}
		line.Color = plotutil.Color(vi)

		pl.Add(scatter, line)
		pl.Legend.Add(fmt.Sprintf("valency %d", v), scatter, line)
	}
	pl.Legend.Top = true

	if err := pl.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("saving plot: %w", err)
	}
	return nil
}
