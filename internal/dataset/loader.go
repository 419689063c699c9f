package dataset

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/parquet-go/parquet-go"
)

// Loader handles loading of the track dataset
type Loader struct {
	datasetPath string
}

// NewLoader creates a new dataset loader
func NewLoader(datasetPath string) *Loader {
	return &Loader{
		datasetPath: datasetPath,
	}
}

// Load loads the full dataset from a CSV or Parquet file.
func (l *Loader) Load() (dataframe.DataFrame, error) {
	return l.load(-1)
}

// LoadSample loads at most limit rows (useful for quick inspection).
func (l *Loader) LoadSample(limit int) (dataframe.DataFrame, error) {
	if limit <= 0 {
		return dataframe.DataFrame{}, fmt.Errorf("sample limit must be positive, got %d", limit)
	}
	return l.load(limit)
}

func (l *Loader) load(limit int) (dataframe.DataFrame, error) {
	ext := strings.ToLower(filepath.Ext(l.datasetPath))

	var df dataframe.DataFrame
	var err error
	switch ext {
	case ".csv":
		df, err = l.loadCSV()
	case ".parquet":
		df, err = l.loadParquet()
	default:
		return dataframe.DataFrame{}, fmt.Errorf("unsupported file format: %s (supported: .csv, .parquet)", ext)
	}
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	if err := validateSchema(df); err != nil {
		return dataframe.DataFrame{}, err
	}

	if limit > 0 && df.Nrow() > limit {
		idx := make([]int, limit)
		for i := range idx {
			idx[i] = i
		}
		df = df.Subset(idx)
		if df.Err != nil {
			return dataframe.DataFrame{}, fmt.Errorf("failed to subset sample: %w", df.Err)
		}
	}

	slog.Debug("Dataset loaded", "path", l.datasetPath, "rows", df.Nrow(), "columns", df.Ncol())
	return df, nil
}

// loadCSV loads the dataset from a CSV file
func (l *Loader) loadCSV() (dataframe.DataFrame, error) {
	slog.Debug("Opening CSV file", "path", l.datasetPath)

	file, err := os.Open(l.datasetPath)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.Size() == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("dataset file is empty: %s", l.datasetPath)
	}

	slog.Debug("CSV file stats", "size_bytes", info.Size(), "size_mb", info.Size()/1024/1024)

	// Identifier, text, and date columns must stay strings even when their
	// values happen to look numeric.
	df := dataframe.ReadCSV(bufio.NewReader(file),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.WithTypes(map[string]series.Type{
			ColID:          series.String,
			ColName:        series.String,
			ColArtists:     series.String,
			ColIDArtists:   series.String,
			ColReleaseDate: series.String,
		}),
	)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to parse CSV: %w", df.Err)
	}

	return df, nil
}

// loadParquet loads the dataset from a Parquet file
func (l *Loader) loadParquet() (dataframe.DataFrame, error) {
	slog.Debug("Opening Parquet file", "path", l.datasetPath)

	file, err := os.Open(l.datasetPath)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to stat file: %w", err)
	}

	slog.Debug("Parquet file stats", "size_bytes", info.Size(), "size_mb", info.Size()/1024/1024)

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to open parquet: %w", err)
	}

	slog.Debug("Parquet file opened", "num_rows", pf.NumRows(), "num_row_groups", len(pf.RowGroups()))

	reader := parquet.NewGenericReader[Track](pf)
	defer reader.Close()

	var tracks []Track
	rows := make([]Track, 128) // Read in batches

	totalRead := 0
	for {
		n, err := reader.Read(rows)
		if n > 0 {
			totalRead += n
			tracks = append(tracks, rows[:n]...)
			slog.Debug("Read batch from Parquet", "rows_in_batch", n, "total_rows_read", totalRead)
		}
		if err != nil {
			break
		}
	}

	if len(tracks) == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("parquet file contains no rows: %s", l.datasetPath)
	}

	df := dataframe.LoadStructs(tracks)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to build dataframe from parquet rows: %w", df.Err)
	}

	return df, nil
}

// validateSchema verifies that every required column is present.
func validateSchema(df dataframe.DataFrame) error {
	present := make(map[string]bool, df.Ncol())
	for _, name := range df.Names() {
		present[name] = true
	}

	var missing []string
	for _, name := range RequiredColumns() {
		if !present[name] {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("dataset is missing required columns: %s", strings.Join(missing, ", "))
	}
	return nil
}
