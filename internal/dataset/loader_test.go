package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleCSV = `id,name,popularity,duration_ms,explicit,artists,id_artists,release_date,danceability,energy,key,loudness,mode,speechiness,acousticness,instrumentalness,liveness,valence,tempo,time_signature
t1,Song One,45,210000,0,"['Artist A']","['a1']",1999-05-01,0.52,0.71,0,-7.2,1,0.04,0.12,0.0,0.11,0.67,120.1,4
t2,Song Two,80,180000,1,"['Artist B']","['b1']",2005-11,0.61,0.55,7,-5.1,0,0.3,0.4,0.9,0.2,0.3,98.0,3
t3,Song Three,12,300000,0,"['Artist C']","['c1']",1987,0.33,0.9,11,-3.3,1,0.05,0.01,0.2,0.4,0.8,140.5,4
`

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tracks.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write temp CSV: %v", err)
	}
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeTempCSV(t, sampleCSV)

	df, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if df.Nrow() != 3 {
		t.Errorf("expected 3 rows, got %d", df.Nrow())
	}
	if df.Ncol() != 20 {
		t.Errorf("expected 20 columns, got %d", df.Ncol())
	}

	// Identifier and date columns must stay strings.
	for _, name := range []string{ColID, ColName, ColArtists, ColIDArtists, ColReleaseDate} {
		col := df.Col(name)
		if col.Err != nil {
			t.Fatalf("missing column %s: %v", name, col.Err)
		}
		if col.Type() != "string" {
			t.Errorf("column %s should be string, got %s", name, col.Type())
		}
	}
}

func TestLoadSample(t *testing.T) {
	path := writeTempCSV(t, sampleCSV)

	df, err := NewLoader(path).LoadSample(2)
	if err != nil {
		t.Fatalf("LoadSample() returned error: %v", err)
	}
	if df.Nrow() != 2 {
		t.Errorf("expected 2 rows, got %d", df.Nrow())
	}
}

func TestLoadSampleInvalidLimit(t *testing.T) {
	path := writeTempCSV(t, sampleCSV)

	if _, err := NewLoader(path).LoadSample(0); err == nil {
		t.Error("expected error for non-positive limit")
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracks.xlsx")
	if err := os.WriteFile(path, []byte("junk"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	_, err := NewLoader(path).Load()
	if err == nil {
		t.Fatal("expected error for unsupported format")
	}
	if !strings.Contains(err.Error(), "unsupported file format") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadMissingColumns(t *testing.T) {
	path := writeTempCSV(t, "id,name\nt1,Song One\n")

	_, err := NewLoader(path).Load()
	if err == nil {
		t.Fatal("expected error for missing columns")
	}
	if !strings.Contains(err.Error(), "missing required columns") {
		t.Errorf("unexpected error: %v", err)
	}
	if !strings.Contains(err.Error(), ColPopularity) {
		t.Errorf("error should name the missing column, got: %v", err)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := writeTempCSV(t, "")

	if _, err := NewLoader(path).Load(); err == nil {
		t.Fatal("expected error for empty file")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := NewLoader(filepath.Join(t.TempDir(), "nope.csv")).Load(); err == nil {
		t.Fatal("expected error for missing file")
	}
}
