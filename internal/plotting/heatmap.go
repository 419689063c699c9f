package plotting

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"

	"github.com/tracklens/tracklens/internal/stats"
)

// corrGrid adapts a correlation matrix to plotter.GridXYZ. Rows are
// flipped so the first label reads at the top of the image.
type corrGrid struct {
	m stats.Matrix
}

func (g corrGrid) Dims() (c, r int) {
	n := len(g.m.Labels)
	return n, n
}

func (g corrGrid) Z(c, r int) float64 {
	n := len(g.m.Labels)
	return g.m.At(n-1-r, c)
}

func (g corrGrid) X(c int) float64 { return float64(c) }
func (g corrGrid) Y(r int) float64 { return float64(r) }

// HeatMap renders the correlation matrix as a heat-map with a diverging
// palette fixed to [-1, 1] and returns the path of the written PNG.
func HeatMap(m stats.Matrix, outDir string) (string, error) {
	if len(m.Labels) == 0 {
		return "", fmt.Errorf("correlation matrix is empty")
	}

	cm := moreland.SmoothBlueRed()
	cm.SetMin(-1)
	cm.SetMax(1)
	hm := plotter.NewHeatMap(corrGrid{m: m}, cm.Palette(255))
	hm.Min = -1
	hm.Max = 1

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Correlation (%s)", m.Method)
	p.Add(hm)

	n := len(m.Labels)
	xticks := make([]plot.Tick, n)
	yticks := make([]plot.Tick, n)
	for i, label := range m.Labels {
		xticks[i] = plot.Tick{Value: float64(i), Label: label}
		yticks[i] = plot.Tick{Value: float64(n - 1 - i), Label: label}
	}
	p.X.Tick.Marker = plot.ConstantTicks(xticks)
	p.Y.Tick.Marker = plot.ConstantTicks(yticks)
	p.X.Tick.Label.Rotation = 1.2
	p.X.Tick.Label.XAlign = -0.8

	return savePlot(p, outDir, "correlation_heatmap.png")
}
