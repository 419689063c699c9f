package render

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tracklens/tracklens/internal/stats"
)

// ReportConfig records how a profile run was configured.
type ReportConfig struct {
	DatasetPath string `json:"dataset_path" yaml:"datasetpath"`
	Rows        int    `json:"rows" yaml:"rows"`
	SampleSize  int    `json:"sample_size" yaml:"samplesize"`
	Seed        int64  `json:"seed" yaml:"seed"`
	Method      string `json:"method" yaml:"method"`
	Timestamp   string `json:"timestamp" yaml:"timestamp"`
}

// ProfileReport is the complete machine-readable output of a run.
type ProfileReport struct {
	Config       ReportConfig                  `json:"config" yaml:"config"`
	Numeric      []string                      `json:"numeric_columns" yaml:"numericcolumns"`
	Categorical  []string                      `json:"categorical_columns" yaml:"categoricalcolumns"`
	Summaries    []stats.ColumnSummary         `json:"summaries" yaml:"summaries"`
	Frequencies  map[string][]stats.LevelCount `json:"frequencies" yaml:"frequencies"`
	Correlations stats.Matrix                  `json:"correlations" yaml:"correlations"`
	Quality      stats.QualityObservations     `json:"quality" yaml:"quality"`
	Artifacts    []string                      `json:"artifacts" yaml:"artifacts"`
}

// NewReportConfig stamps a config with the current time.
func NewReportConfig(datasetPath string, rows, sampleSize int, seed int64, method string) ReportConfig {
	return ReportConfig{
		DatasetPath: datasetPath,
		Rows:        rows,
		SampleSize:  sampleSize,
		Seed:        seed,
		Method:      method,
		Timestamp:   time.Now().Format("2006-01-02_15-04-05"),
	}
}

// SaveYAML writes the report to <outDir>/profile_<timestamp>.yaml.
func (r *ProfileReport) SaveYAML(outDir string) (string, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(outDir, fmt.Sprintf("profile_%s.yaml", r.Config.Timestamp))
	data, err := yaml.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("failed to marshal report to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write YAML report: %w", err)
	}
	return path, nil
}

// SaveJSON writes the report to <outDir>/profile_<timestamp>.json.
func (r *ProfileReport) SaveJSON(outDir string) (string, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(outDir, fmt.Sprintf("profile_%s.json", r.Config.Timestamp))
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r); err != nil {
		return "", fmt.Errorf("failed to encode report to JSON: %w", err)
	}
	return path, nil
}

// PrintSummary prints a human-readable summary of the profile run.
func (r *ProfileReport) PrintSummary(w io.Writer, format string) error {
	fmt.Fprintln(w, "\n"+strings.Repeat("=", 70))
	fmt.Fprintln(w, "TRACK DATASET PROFILE")
	fmt.Fprintln(w, strings.Repeat("=", 70))
	fmt.Fprintf(w, "Dataset: %s\n", r.Config.DatasetPath)
	fmt.Fprintf(w, "Rows: %d\n", r.Config.Rows)
	fmt.Fprintf(w, "Numeric Columns: %d, Categorical Columns: %d\n", len(r.Numeric), len(r.Categorical))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "DESCRIPTIVE STATISTICS")
	fmt.Fprintln(w, strings.Repeat("-", 70))
	if err := Summaries(w, r.Summaries, format); err != nil {
		return err
	}
	fmt.Fprintln(w)

	if len(r.Frequencies) > 0 {
		fmt.Fprintln(w, "CATEGORICAL FREQUENCIES")
		fmt.Fprintln(w, strings.Repeat("-", 70))
		for _, col := range r.Categorical {
			levels, ok := r.Frequencies[col]
			if !ok {
				continue
			}
			if err := Frequencies(w, col, levels, format); err != nil {
				return err
			}
			fmt.Fprintln(w)
		}
	}

	fmt.Fprintln(w, "CORRELATIONS")
	fmt.Fprintln(w, strings.Repeat("-", 70))
	if err := Correlations(w, r.Correlations, format); err != nil {
		return err
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "DATA QUALITY OBSERVATIONS")
	fmt.Fprintln(w, strings.Repeat("-", 70))
	fmt.Fprintf(w, "Time signature outside 3-7: %d\n", r.Quality.TimeSignatureOutOfRange)
	fmt.Fprintf(w, "Zero tempo: %d\n", r.Quality.ZeroTempo)
	fmt.Fprintf(w, "Duplicate track names: %d\n", r.Quality.DuplicateNames)
	for col, n := range r.Quality.MissingByColumn {
		fmt.Fprintf(w, "Missing in %s: %d\n", col, n)
	}
	fmt.Fprintln(w)

	if len(r.Artifacts) > 0 {
		fmt.Fprintln(w, "PLOTS")
		fmt.Fprintln(w, strings.Repeat("-", 70))
		for _, p := range r.Artifacts {
			fmt.Fprintf(w, "  %s\n", p)
		}
	}
	fmt.Fprintln(w, strings.Repeat("=", 70))
	return nil
}
