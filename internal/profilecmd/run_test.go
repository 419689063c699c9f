package profilecmd

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tracklens/tracklens/internal/dataset"
	"github.com/tracklens/tracklens/internal/stats"
)

const sampleCSV = `id,name,popularity,duration_ms,explicit,artists,id_artists,release_date,danceability,energy,key,loudness,mode,speechiness,acousticness,instrumentalness,liveness,valence,tempo,time_signature
t1,Song One,45,210000,0,"['Artist A']","['a1']",1999-05-01,0.52,0.71,0,-7.2,1,0.04,0.12,0.0,0.11,0.67,120.1,4
t2,Song Two,80,180000,1,"['Artist B']","['b1']",2005-11,0.61,0.55,7,-5.1,0,0.3,0.4,0.9,0.2,0.3,98.0,3
t3,Song Three,12,300000,0,"['Artist C']","['c1']",1987,0.33,0.9,11,-3.3,1,0.05,0.01,0.2,0.4,0.8,140.5,4
t4,Song Four,66,240000,1,"['Artist D']","['d1']",2010-01-15,0.7,0.6,2,-6.0,0,0.1,0.2,0.1,0.3,0.5,110.0,4
`

func writeSampleCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tracks.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0644); err != nil {
		t.Fatalf("failed to write temp CSV: %v", err)
	}
	return path
}

func TestLoadAndPrepare(t *testing.T) {
	path := writeSampleCSV(t)

	df, classification, err := loadAndPrepare(path, 0, "")
	if err != nil {
		t.Fatalf("loadAndPrepare() returned error: %v", err)
	}

	if df.Nrow() != 4 {
		t.Errorf("expected 4 rows, got %d", df.Nrow())
	}

	// Identifiers gone, release year derived.
	for _, name := range df.Names() {
		if name == dataset.ColID || name == dataset.ColIDArtists {
			t.Errorf("identifier column %s should be dropped", name)
		}
	}
	years := df.Col(dataset.ColReleaseYear)
	if years.Err != nil {
		t.Fatalf("release_year column missing: %v", years.Err)
	}
	if years.Float()[0] != 1999 {
		t.Errorf("unexpected first release year: %v", years.Float()[0])
	}

	// Recoded columns hold labels.
	if got := df.Col(dataset.ColExplicit).Records()[1]; got != "Explicit" {
		t.Errorf("expected Explicit, got %q", got)
	}
	if got := df.Col(dataset.ColKey).Records()[1]; got != "G" {
		t.Errorf("expected G, got %q", got)
	}

	// The fixed correlation subset must be fully numeric after prep.
	available := availableColumns(df, correlationColumns)
	if len(available) != len(correlationColumns) {
		t.Errorf("expected all %d correlation columns, got %d", len(correlationColumns), len(available))
	}
	if _, err := stats.CorrelationMatrix(df, available, stats.Pearson); err != nil {
		t.Errorf("correlation over the fixed subset failed: %v", err)
	}

	for _, col := range classification.Numeric {
		switch col {
		case dataset.ColExplicit, dataset.ColKey, dataset.ColMode, dataset.ColTimeSignature:
			t.Errorf("overridden column %s must not be numeric", col)
		}
	}
}

func TestLoadAndPrepareWithLimit(t *testing.T) {
	path := writeSampleCSV(t)

	df, _, err := loadAndPrepare(path, 2, "")
	if err != nil {
		t.Fatalf("loadAndPrepare() returned error: %v", err)
	}
	if df.Nrow() != 2 {
		t.Errorf("expected 2 rows, got %d", df.Nrow())
	}
}

func TestRunRejectsInvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"negative sample", []string{"--dataset", "tracks.csv", "--sample=-1"}, "--sample"},
		{"zero sample", []string{"--dataset", "tracks.csv", "--sample=0"}, "--sample"},
		{"zero concurrency", []string{"--dataset", "tracks.csv", "--concurrency=0"}, "--concurrency"},
	}

	for _, tt := range tests {
		cmd := NewRunCmd()
		cmd.SetOut(io.Discard)
		cmd.SetErr(io.Discard)
		cmd.SetArgs(tt.args)
		err := cmd.Execute()
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%s: expected error mentioning %s, got %v", tt.name, tt.want, err)
		}
	}
}

func TestRunExampleFlagsParse(t *testing.T) {
	cmd := NewRunCmd()
	if err := cmd.ParseFlags([]string{"--limit", "5000", "--plots=false"}); err != nil {
		t.Fatalf("documented flags should parse: %v", err)
	}
	plots, err := cmd.Flags().GetBool("plots")
	if err != nil {
		t.Fatalf("plots flag missing: %v", err)
	}
	if plots {
		t.Error("--plots=false should disable plot rendering")
	}
}

func TestAvailableColumns(t *testing.T) {
	path := writeSampleCSV(t)

	df, _, err := loadAndPrepare(path, 0, "")
	if err != nil {
		t.Fatalf("loadAndPrepare() returned error: %v", err)
	}

	got := availableColumns(df, []string{dataset.ColTempo, "not_a_column"})
	if len(got) != 1 || got[0] != dataset.ColTempo {
		t.Errorf("availableColumns = %v", got)
	}
}
