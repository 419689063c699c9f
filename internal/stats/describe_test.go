package stats

import (
	"math"
	"testing"

	"github.com/go-gota/gota/dataframe"
)

func statsFrame(t *testing.T) dataframe.DataFrame {
	t.Helper()
	df := dataframe.LoadRecords([][]string{
		{"popularity", "tempo", "mode"},
		{"10", "100.0", "Major"},
		{"20", "110.0", "Minor"},
		{"30", "120.0", "Major"},
		{"40", "", "Major"},
	})
	if df.Err != nil {
		t.Fatalf("failed to build test frame: %v", df.Err)
	}
	return df
}

func TestDescribe(t *testing.T) {
	summaries, err := Describe(statsFrame(t), []string{"popularity", "tempo"})
	if err != nil {
		t.Fatalf("Describe() returned error: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}

	pop := summaries[0]
	if pop.Column != "popularity" {
		t.Errorf("expected popularity first, got %s", pop.Column)
	}
	if pop.Count != 4 || pop.Missing != 0 {
		t.Errorf("unexpected counts: %+v", pop)
	}
	if pop.Mean != 25 {
		t.Errorf("expected mean 25, got %f", pop.Mean)
	}
	if pop.Min != 10 || pop.Max != 40 {
		t.Errorf("unexpected min/max: %+v", pop)
	}

	tempo := summaries[1]
	if tempo.Count != 3 || tempo.Missing != 1 {
		t.Errorf("missing tempo value should be excluded: %+v", tempo)
	}
	if tempo.Mean != 110 {
		t.Errorf("expected mean 110, got %f", tempo.Mean)
	}
}

func TestDescribeMissingColumn(t *testing.T) {
	if _, err := Describe(statsFrame(t), []string{"nope"}); err == nil {
		t.Fatal("expected error for missing column")
	}
}

func TestFrequencies(t *testing.T) {
	levels, err := Frequencies(statsFrame(t), "mode", 0)
	if err != nil {
		t.Fatalf("Frequencies() returned error: %v", err)
	}

	if len(levels) != 2 {
		t.Fatalf("expected 2 levels, got %d", len(levels))
	}
	if levels[0].Level != "Major" || levels[0].Count != 3 {
		t.Errorf("most frequent level should come first, got %+v", levels[0])
	}
	if math.Abs(levels[0].Share-0.75) > 1e-12 {
		t.Errorf("expected share 0.75, got %f", levels[0].Share)
	}

	top, err := Frequencies(statsFrame(t), "mode", 1)
	if err != nil {
		t.Fatalf("Frequencies() returned error: %v", err)
	}
	if len(top) != 1 {
		t.Errorf("topN should truncate, got %d levels", len(top))
	}
}

func TestDropNaN(t *testing.T) {
	values, missing := dropNaN([]float64{1, math.NaN(), 3, math.NaN()})
	if missing != 2 || len(values) != 2 {
		t.Errorf("dropNaN = (%v, %d)", values, missing)
	}
}
