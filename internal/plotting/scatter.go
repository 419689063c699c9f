package plotting

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"

	"github.com/go-gota/gota/dataframe"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Pair names the x and y columns of one scatter plot.
type Pair struct {
	X string
	Y string
}

// SampleIndices draws n distinct row indexes from total rows without
// replacement. The seed makes a run reproducible. When n >= total every
// row is used; a non-positive n or total yields no indexes.
func SampleIndices(n, total int, seed int64) []int {
	if n <= 0 || total <= 0 {
		return nil
	}
	if n >= total {
		idx := make([]int, total)
		for i := range idx {
			idx[i] = i
		}
		return idx
	}
	r := rand.New(rand.NewSource(seed))
	return r.Perm(total)[:n]
}

// Scatter renders one scatter plot of the pair's columns over the sampled
// rows and returns the path of the written PNG.
func Scatter(df dataframe.DataFrame, pair Pair, indices []int, outDir string) (string, error) {
	sub := df.Subset(indices)
	if sub.Err != nil {
		return "", fmt.Errorf("failed to sample rows: %w", sub.Err)
	}

	xCol := sub.Col(pair.X)
	if xCol.Err != nil {
		return "", fmt.Errorf("missing column %s: %w", pair.X, xCol.Err)
	}
	yCol := sub.Col(pair.Y)
	if yCol.Err != nil {
		return "", fmt.Errorf("missing column %s: %w", pair.Y, yCol.Err)
	}

	xs := xCol.Float()
	ys := yCol.Float()
	pts := make(plotter.XYs, 0, len(xs))
	for i := range xs {
		if math.IsNaN(xs[i]) || math.IsNaN(ys[i]) {
			continue
		}
		pts = append(pts, plotter.XY{X: xs[i], Y: ys[i]})
	}
	if len(pts) == 0 {
		return "", fmt.Errorf("no complete rows to plot for %s vs %s", pair.X, pair.Y)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s vs %s", pair.X, pair.Y)
	p.X.Label.Text = pair.X
	p.Y.Label.Text = pair.Y

	s, err := plotter.NewScatter(pts)
	if err != nil {
		return "", fmt.Errorf("failed to build scatter: %w", err)
	}
	s.GlyphStyle.Color = color.RGBA{R: 50, G: 50, B: 255, A: 255}
	s.GlyphStyle.Radius = vg.Points(1.5)
	s.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(s)

	return savePlot(p, outDir, fmt.Sprintf("scatter_%s_%s.png", pair.X, pair.Y))
}
