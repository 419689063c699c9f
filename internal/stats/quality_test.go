package stats

import (
	"testing"

	"github.com/go-gota/gota/dataframe"
)

func TestObserve(t *testing.T) {
	df := dataframe.LoadRecords([][]string{
		{"name", "tempo", "time_signature"},
		{"Song One", "120.0", "4"},
		{"Song One", "0.0", "0"},
		{"Song Two", "98.0", "8"},
		{"Song Three", "", "4"},
	})
	if df.Err != nil {
		t.Fatalf("failed to build test frame: %v", df.Err)
	}

	obs := Observe(df)

	if obs.TimeSignatureOutOfRange != 2 {
		t.Errorf("expected 2 out-of-range time signatures, got %d", obs.TimeSignatureOutOfRange)
	}
	if obs.ZeroTempo != 1 {
		t.Errorf("expected 1 zero tempo, got %d", obs.ZeroTempo)
	}
	if obs.DuplicateNames != 1 {
		t.Errorf("expected 1 duplicate name, got %d", obs.DuplicateNames)
	}
	if obs.MissingByColumn["tempo"] != 1 {
		t.Errorf("expected 1 missing tempo, got %d", obs.MissingByColumn["tempo"])
	}
}

func TestObserveWithoutOptionalColumns(t *testing.T) {
	df := dataframe.LoadRecords([][]string{
		{"popularity"},
		{"10"},
	})
	if df.Err != nil {
		t.Fatalf("failed to build test frame: %v", df.Err)
	}

	obs := Observe(df)
	if obs.TimeSignatureOutOfRange != 0 || obs.ZeroTempo != 0 || obs.DuplicateNames != 0 {
		t.Errorf("absent columns should observe nothing: %+v", obs)
	}
}
