package stats

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"gonum.org/v1/gonum/stat"
)

// Method selects the correlation coefficient.
type Method string

const (
	Pearson  Method = "pearson"
	Spearman Method = "spearman"
)

// ParseMethod validates a correlation method name.
func ParseMethod(name string) (Method, error) {
	switch Method(name) {
	case Pearson, Spearman:
		return Method(name), nil
	default:
		return "", fmt.Errorf("unknown correlation method %q (supported: pearson, spearman)", name)
	}
}

// Matrix is a labeled, symmetric correlation matrix.
type Matrix struct {
	Labels []string    `json:"labels" yaml:"labels"`
	Values [][]float64 `json:"values" yaml:"values"`
	Method Method      `json:"method" yaml:"method"`
}

// At returns the coefficient for a pair of column indexes.
func (m Matrix) At(i, j int) float64 { return m.Values[i][j] }

// CorrelationMatrix computes pairwise correlations over the given columns.
// Rows where either value is NaN are excluded pairwise, so each cell uses
// the largest sample available to its pair.
func CorrelationMatrix(df dataframe.DataFrame, columns []string, method Method) (Matrix, error) {
	cols := make([][]float64, len(columns))
	for i, name := range columns {
		col := df.Col(name)
		if col.Err != nil {
			return Matrix{}, fmt.Errorf("missing column %s: %w", name, col.Err)
		}
		cols[i] = col.Float()
	}

	n := len(columns)
	values := make([][]float64, n)
	for i := range values {
		values[i] = make([]float64, n)
		values[i][i] = 1
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			x, y := pairwiseComplete(cols[i], cols[j])
			r := math.NaN()
			if len(x) > 1 {
				if method == Spearman {
					x, y = ranks(x), ranks(y)
				}
				r = stat.Correlation(x, y, nil)
			}
			values[i][j] = r
			values[j][i] = r
		}
	}

	return Matrix{Labels: columns, Values: values, Method: method}, nil
}

// pairwiseComplete keeps only the rows where both columns are finite.
func pairwiseComplete(a, b []float64) ([]float64, []float64) {
	x := make([]float64, 0, len(a))
	y := make([]float64, 0, len(b))
	for i := range a {
		if math.IsNaN(a[i]) || math.IsNaN(b[i]) {
			continue
		}
		x = append(x, a[i])
		y = append(y, b[i])
	}
	return x, y
}

// ranks converts values to ranks, averaging ties.
func ranks(values []float64) []float64 {
	idx := make([]int, len(values))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool { return values[idx[i]] < values[idx[j]] })

	out := make([]float64, len(values))
	for i := 0; i < len(idx); {
		j := i
		for j+1 < len(idx) && values[idx[j+1]] == values[idx[i]] {
			j++
		}
		// Ranks are 1-based; ties share the average of their positions.
		avg := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			out[idx[k]] = avg
		}
		i = j + 1
	}
	return out
}
