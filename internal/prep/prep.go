// Package prep contains the column transformations applied to the raw
// track table before any statistics are computed: identifier pruning,
// release-year derivation, numeric/categorical classification, and
// labeled recoding of low-cardinality numeric columns.
package prep

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/tracklens/tracklens/internal/dataset"
)

// PitchClasses maps the key column's 0-11 values to pitch-class names.
var PitchClasses = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// DropIdentifiers removes the track and artist identifier columns. They
// carry no analytical signal and would pollute the numeric summaries.
func DropIdentifiers(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	out := df.Drop([]string{dataset.ColID, dataset.ColIDArtists})
	if out.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to drop identifier columns: %w", out.Err)
	}
	slog.Debug("Dropped identifier columns", "columns", []string{dataset.ColID, dataset.ColIDArtists})
	return out, nil
}

// YearResult reports how the release-year derivation went.
type YearResult struct {
	Derived  int
	Unparsed int
}

// DeriveReleaseYear adds a numeric release_year column parsed from the
// leading year of the release_date string. Accepted formats are
// "2006-01-02", "2006-01", and "2006"; anything else yields NaN and is
// counted in the result.
func DeriveReleaseYear(df dataframe.DataFrame) (dataframe.DataFrame, YearResult, error) {
	col := df.Col(dataset.ColReleaseDate)
	if col.Err != nil {
		return dataframe.DataFrame{}, YearResult{}, fmt.Errorf("missing %s column: %w", dataset.ColReleaseDate, col.Err)
	}

	var res YearResult
	dates := col.Records()
	years := make([]float64, len(dates))
	for i, d := range dates {
		year, ok := parseYear(d)
		if !ok {
			years[i] = math.NaN()
			res.Unparsed++
			continue
		}
		years[i] = float64(year)
		res.Derived++
	}

	out := df.Mutate(series.New(years, series.Float, dataset.ColReleaseYear))
	if out.Err != nil {
		return dataframe.DataFrame{}, YearResult{}, fmt.Errorf("failed to add %s column: %w", dataset.ColReleaseYear, out.Err)
	}

	slog.Debug("Derived release year", "derived", res.Derived, "unparsed", res.Unparsed)
	return out, res, nil
}

// parseYear extracts the leading four-digit year from a release date string.
func parseYear(date string) (int, bool) {
	date = strings.TrimSpace(date)
	if idx := strings.IndexByte(date, '-'); idx >= 0 {
		date = date[:idx]
	}
	if len(date) != 4 {
		return 0, false
	}
	year, err := strconv.Atoi(date)
	if err != nil || year < 1000 || year > 9999 {
		return 0, false
	}
	return year, true
}

// Overrides is the human-curated set of numeric columns that are treated
// as categorical. In the exploratory workflow someone decides this by
// reading the per-column distributions; the decision is recorded here so
// a run is reproducible.
type Overrides struct {
	Categorical []string `yaml:"categorical"`
}

// DefaultOverrides returns the reviewed classification for the track
// schema: discrete audio features whose numeric values are labels.
func DefaultOverrides() Overrides {
	return Overrides{
		Categorical: []string{
			dataset.ColExplicit,
			dataset.ColKey,
			dataset.ColMode,
			dataset.ColTimeSignature,
		},
	}
}

func (o Overrides) contains(name string) bool {
	for _, c := range o.Categorical {
		if c == name {
			return true
		}
	}
	return false
}

// Classification splits the column set by semantic type.
type Classification struct {
	Numeric     []string
	Categorical []string
}

// Classify assigns each column a semantic type: string-typed columns are
// categorical, numeric columns are categorical when the overrides say so,
// and everything else is numeric.
func Classify(df dataframe.DataFrame, overrides Overrides) Classification {
	var c Classification
	types := df.Types()
	for i, name := range df.Names() {
		switch {
		case types[i] == series.String || types[i] == series.Bool:
			c.Categorical = append(c.Categorical, name)
		case overrides.contains(name):
			c.Categorical = append(c.Categorical, name)
		default:
			c.Numeric = append(c.Numeric, name)
		}
	}
	return c
}

// Cardinality counts distinct values per column, supporting the human
// review behind the classification overrides.
func Cardinality(df dataframe.DataFrame, cols []string) map[string]int {
	counts := make(map[string]int, len(cols))
	for _, name := range cols {
		col := df.Col(name)
		if col.Err != nil {
			continue
		}
		distinct := make(map[string]struct{})
		for _, v := range col.Records() {
			distinct[v] = struct{}{}
		}
		counts[name] = len(distinct)
	}
	return counts
}

// RecodeResult reports how many values each recoded column could not map.
type RecodeResult struct {
	Unknown map[string]int
}

// Recode replaces the three label-valued numeric columns with named
// categories: explicit 0/1, mode 0/1, and key 0-11 as pitch classes.
// Values outside the expected range become "Unknown".
func Recode(df dataframe.DataFrame) (dataframe.DataFrame, RecodeResult, error) {
	res := RecodeResult{Unknown: make(map[string]int)}

	recodings := []struct {
		column string
		labels map[int]string
	}{
		{dataset.ColExplicit, map[int]string{0: "Not Explicit", 1: "Explicit"}},
		{dataset.ColMode, map[int]string{0: "Minor", 1: "Major"}},
		{dataset.ColKey, pitchClassLabels()},
	}

	out := df
	for _, r := range recodings {
		col := out.Col(r.column)
		if col.Err != nil {
			return dataframe.DataFrame{}, RecodeResult{}, fmt.Errorf("missing %s column: %w", r.column, col.Err)
		}

		values := col.Float()
		labels := make([]string, len(values))
		for i, v := range values {
			label, ok := r.labels[int(v)]
			if !ok || v != math.Trunc(v) || math.IsNaN(v) {
				label = "Unknown"
				res.Unknown[r.column]++
			}
			labels[i] = label
		}

		out = out.Mutate(series.New(labels, series.String, r.column))
		if out.Err != nil {
			return dataframe.DataFrame{}, RecodeResult{}, fmt.Errorf("failed to recode %s: %w", r.column, out.Err)
		}
		slog.Debug("Recoded column", "column", r.column, "unknown", res.Unknown[r.column])
	}

	return out, res, nil
}

func pitchClassLabels() map[int]string {
	labels := make(map[int]string, len(PitchClasses))
	for i, name := range PitchClasses {
		labels[i] = name
	}
	return labels
}
