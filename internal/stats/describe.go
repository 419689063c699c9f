// Package stats computes the descriptive statistics of the profile:
// per-column summaries, categorical frequencies, correlation matrices,
// and the data-quality observations that are reported but never corrected.
package stats

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"gonum.org/v1/gonum/stat"
)

// ColumnSummary holds the descriptive statistics for one numeric column.
type ColumnSummary struct {
	Column   string  `json:"column" yaml:"column"`
	Count    int     `json:"count" yaml:"count"`
	Missing  int     `json:"missing" yaml:"missing"`
	Mean     float64 `json:"mean" yaml:"mean"`
	StdDev   float64 `json:"std_dev" yaml:"stddev"`
	Min      float64 `json:"min" yaml:"min"`
	Q25      float64 `json:"q25" yaml:"q25"`
	Median   float64 `json:"median" yaml:"median"`
	Q75      float64 `json:"q75" yaml:"q75"`
	Max      float64 `json:"max" yaml:"max"`
	Skewness float64 `json:"skewness" yaml:"skewness"`
}

// Describe computes a summary for each of the given numeric columns.
func Describe(df dataframe.DataFrame, columns []string) ([]ColumnSummary, error) {
	summaries := make([]ColumnSummary, 0, len(columns))
	for _, name := range columns {
		col := df.Col(name)
		if col.Err != nil {
			return nil, fmt.Errorf("missing column %s: %w", name, col.Err)
		}

		values, missing := dropNaN(col.Float())
		s := ColumnSummary{
			Column:  name,
			Count:   len(values),
			Missing: missing,
		}
		if len(values) > 0 {
			sort.Float64s(values)
			s.Mean = stat.Mean(values, nil)
			s.StdDev = stat.StdDev(values, nil)
			s.Min = values[0]
			s.Q25 = stat.Quantile(0.25, stat.Empirical, values, nil)
			s.Median = stat.Quantile(0.5, stat.Empirical, values, nil)
			s.Q75 = stat.Quantile(0.75, stat.Empirical, values, nil)
			s.Max = values[len(values)-1]
			s.Skewness = stat.Skew(values, nil)
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}

// LevelCount is one level of a categorical column and its frequency.
type LevelCount struct {
	Level string  `json:"level" yaml:"level"`
	Count int     `json:"count" yaml:"count"`
	Share float64 `json:"share" yaml:"share"`
}

// Frequencies counts the levels of a categorical column, most frequent
// first, truncated to topN (0 keeps all levels).
func Frequencies(df dataframe.DataFrame, column string, topN int) ([]LevelCount, error) {
	col := df.Col(column)
	if col.Err != nil {
		return nil, fmt.Errorf("missing column %s: %w", column, col.Err)
	}

	records := col.Records()
	counts := make(map[string]int)
	for _, r := range records {
		counts[r]++
	}

	levels := make([]LevelCount, 0, len(counts))
	total := float64(len(records))
	for level, count := range counts {
		levels = append(levels, LevelCount{Level: level, Count: count, Share: float64(count) / total})
	}
	sort.Slice(levels, func(i, j int) bool {
		if levels[i].Count != levels[j].Count {
			return levels[i].Count > levels[j].Count
		}
		return levels[i].Level < levels[j].Level
	})

	if topN > 0 && len(levels) > topN {
		levels = levels[:topN]
	}
	return levels, nil
}

// dropNaN returns the finite values of a column and the number removed.
func dropNaN(values []float64) ([]float64, int) {
	out := make([]float64, 0, len(values))
	missing := 0
	for _, v := range values {
		if math.IsNaN(v) {
			missing++
			continue
		}
		out = append(out, v)
	}
	return out, missing
}
