// Package plotting renders the profile's visual artifacts as PNG files:
// per-column density curves, sampled scatter plots, and the correlation
// heat-map.
package plotting

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

const densityGridPoints = 200

// Density renders a Gaussian kernel density estimate of one numeric
// column and returns the path of the written PNG.
func Density(values []float64, column, outDir string) (string, error) {
	values = finite(values)
	if len(values) < 2 {
		return "", fmt.Errorf("column %s has too few values for a density plot (%d)", column, len(values))
	}

	xs, ys := kde(values, densityGridPoints)

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Density of %s", column)
	p.X.Label.Text = column
	p.Y.Label.Text = "density"

	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	l, err := plotter.NewLine(pts)
	if err != nil {
		return "", fmt.Errorf("failed to build density line: %w", err)
	}
	l.Color = color.RGBA{R: 50, G: 50, B: 255, A: 255}
	l.LineStyle.Width = vg.Points(2)
	p.Add(l)

	path, err := savePlot(p, outDir, fmt.Sprintf("density_%s.png", column))
	if err != nil {
		return "", err
	}
	return path, nil
}

// kde evaluates a Gaussian KDE with Silverman bandwidth on a regular grid.
func kde(values []float64, points int) (xs, ys []float64) {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	h := silverman(sorted)
	lo := sorted[0] - 3*h
	hi := sorted[len(sorted)-1] + 3*h
	step := (hi - lo) / float64(points-1)

	xs = make([]float64, points)
	ys = make([]float64, points)
	n := float64(len(sorted))
	norm := 1 / (n * h * math.Sqrt(2*math.Pi))
	for i := range xs {
		x := lo + float64(i)*step
		sum := 0.0
		for _, v := range sorted {
			u := (x - v) / h
			sum += math.Exp(-0.5 * u * u)
		}
		xs[i] = x
		ys[i] = sum * norm
	}
	return xs, ys
}

// silverman computes the rule-of-thumb bandwidth from sorted values.
func silverman(sorted []float64) float64 {
	n := float64(len(sorted))
	sigma := stat.StdDev(sorted, nil)
	iqr := stat.Quantile(0.75, stat.Empirical, sorted, nil) - stat.Quantile(0.25, stat.Empirical, sorted, nil)

	spread := sigma
	if iqr > 0 && iqr/1.349 < spread {
		spread = iqr / 1.349
	}
	if spread <= 0 {
		// Degenerate column: all values equal (or nearly so).
		spread = math.Max(math.Abs(sorted[0]), 1) * 1e-3
	}
	return 0.9 * spread * math.Pow(n, -0.2)
}

func finite(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}

func savePlot(p *plot.Plot, outDir, name string) (string, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create plot directory: %w", err)
	}
	path := filepath.Join(outDir, name)
	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return "", fmt.Errorf("failed to save plot %s: %w", name, err)
	}
	return path, nil
}
