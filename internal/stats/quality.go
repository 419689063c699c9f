package stats

import (
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/tracklens/tracklens/internal/dataset"
)

// QualityObservations are data-quality notes about the raw values. They
// are reported alongside the profile; nothing is corrected or dropped.
type QualityObservations struct {
	// Tracks whose time signature falls outside the plausible 3-7 range.
	TimeSignatureOutOfRange int `json:"time_signature_out_of_range" yaml:"timesignatureoutofrange"`
	// Tracks with a tempo of exactly zero.
	ZeroTempo int `json:"zero_tempo" yaml:"zerotempo"`
	// Track names appearing more than once.
	DuplicateNames int `json:"duplicate_names" yaml:"duplicatenames"`
	// Missing values per column, only columns with at least one.
	MissingByColumn map[string]int `json:"missing_by_column" yaml:"missingbycolumn"`
}

// Observe scans the prepared table for the quality inconsistencies the
// exploratory review flagged.
func Observe(df dataframe.DataFrame) QualityObservations {
	obs := QualityObservations{MissingByColumn: make(map[string]int)}

	if col := df.Col(dataset.ColTimeSignature); col.Err == nil {
		for _, v := range col.Float() {
			if !math.IsNaN(v) && (v < 3 || v > 7) {
				obs.TimeSignatureOutOfRange++
			}
		}
	}

	if col := df.Col(dataset.ColTempo); col.Err == nil {
		for _, v := range col.Float() {
			if v == 0 {
				obs.ZeroTempo++
			}
		}
	}

	if col := df.Col(dataset.ColName); col.Err == nil {
		seen := make(map[string]int)
		for _, name := range col.Records() {
			seen[name]++
		}
		for _, count := range seen {
			if count > 1 {
				obs.DuplicateNames += count - 1
			}
		}
	}

	types := df.Types()
	for i, name := range df.Names() {
		col := df.Col(name)
		if col.Err != nil {
			continue
		}
		missing := 0
		if types[i] == series.String {
			for _, r := range col.Records() {
				if r == "" {
					missing++
				}
			}
		} else {
			_, missing = dropNaN(col.Float())
		}
		if missing > 0 {
			obs.MissingByColumn[name] = missing
		}
	}

	return obs
}
