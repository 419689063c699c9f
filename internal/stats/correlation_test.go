package stats

import (
	"math"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

func TestCorrelationMatrixPearson(t *testing.T) {
	df := dataframe.New(
		series.New([]float64{1, 2, 3, 4, 5}, series.Float, "a"),
		series.New([]float64{2, 4, 6, 8, 10}, series.Float, "b"),
		series.New([]float64{5, 4, 3, 2, 1}, series.Float, "c"),
	)

	m, err := CorrelationMatrix(df, []string{"a", "b", "c"}, Pearson)
	if err != nil {
		t.Fatalf("CorrelationMatrix() returned error: %v", err)
	}

	if m.At(0, 0) != 1 {
		t.Errorf("diagonal must be 1, got %f", m.At(0, 0))
	}
	if math.Abs(m.At(0, 1)-1) > 1e-12 {
		t.Errorf("a and b are perfectly correlated, got %f", m.At(0, 1))
	}
	if math.Abs(m.At(0, 2)+1) > 1e-12 {
		t.Errorf("a and c are perfectly anti-correlated, got %f", m.At(0, 2))
	}
	if m.At(1, 2) != m.At(2, 1) {
		t.Errorf("matrix must be symmetric")
	}
}

func TestCorrelationMatrixSpearman(t *testing.T) {
	// Monotonic but non-linear: Spearman 1, Pearson below 1.
	df := dataframe.New(
		series.New([]float64{1, 2, 3, 4, 5}, series.Float, "a"),
		series.New([]float64{1, 8, 27, 64, 125}, series.Float, "b"),
	)

	sp, err := CorrelationMatrix(df, []string{"a", "b"}, Spearman)
	if err != nil {
		t.Fatalf("CorrelationMatrix() returned error: %v", err)
	}
	if math.Abs(sp.At(0, 1)-1) > 1e-12 {
		t.Errorf("Spearman of a monotonic pair must be 1, got %f", sp.At(0, 1))
	}

	pe, err := CorrelationMatrix(df, []string{"a", "b"}, Pearson)
	if err != nil {
		t.Fatalf("CorrelationMatrix() returned error: %v", err)
	}
	if pe.At(0, 1) >= 1-1e-9 {
		t.Errorf("Pearson of a non-linear pair must be below 1, got %f", pe.At(0, 1))
	}
}

func TestCorrelationMatrixPairwiseNaN(t *testing.T) {
	df := dataframe.New(
		series.New([]float64{1, 2, 3, math.NaN()}, series.Float, "a"),
		series.New([]float64{2, 4, 6, 100}, series.Float, "b"),
	)

	m, err := CorrelationMatrix(df, []string{"a", "b"}, Pearson)
	if err != nil {
		t.Fatalf("CorrelationMatrix() returned error: %v", err)
	}
	if math.Abs(m.At(0, 1)-1) > 1e-12 {
		t.Errorf("NaN rows must be excluded pairwise, got %f", m.At(0, 1))
	}
}

func TestCorrelationMatrixMissingColumn(t *testing.T) {
	df := dataframe.New(series.New([]float64{1, 2}, series.Float, "a"))
	if _, err := CorrelationMatrix(df, []string{"a", "nope"}, Pearson); err == nil {
		t.Fatal("expected error for missing column")
	}
}

func TestRanksTies(t *testing.T) {
	got := ranks([]float64{10, 20, 20, 30})
	want := []float64{1, 2.5, 2.5, 4}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ranks = %v, want %v", got, want)
		}
	}
}

func TestParseMethod(t *testing.T) {
	if _, err := ParseMethod("pearson"); err != nil {
		t.Errorf("pearson should parse: %v", err)
	}
	if _, err := ParseMethod("spearman"); err != nil {
		t.Errorf("spearman should parse: %v", err)
	}
	if _, err := ParseMethod("kendall"); err == nil {
		t.Error("unsupported method should fail")
	}
}
