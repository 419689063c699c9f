package profilecmd

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/go-gota/gota/dataframe"
	"github.com/spf13/cobra"

	"github.com/tracklens/tracklens/internal/dataset"
	"github.com/tracklens/tracklens/internal/plotting"
	"github.com/tracklens/tracklens/internal/prep"
	"github.com/tracklens/tracklens/internal/render"
	"github.com/tracklens/tracklens/internal/stats"
)

// correlationColumns is the fixed numeric subset the heat-map covers.
var correlationColumns = []string{
	dataset.ColPopularity,
	dataset.ColDurationMS,
	dataset.ColDanceability,
	dataset.ColEnergy,
	dataset.ColLoudness,
	dataset.ColSpeechiness,
	dataset.ColAcousticness,
	dataset.ColInstrumentalness,
	dataset.ColLiveness,
	dataset.ColValence,
	dataset.ColTempo,
	dataset.ColReleaseYear,
}

// defaultScatterPairs are the variable pairs plotted against the
// popularity target from the sampled rows.
var defaultScatterPairs = []plotting.Pair{
	{X: dataset.ColEnergy, Y: dataset.ColPopularity},
	{X: dataset.ColDanceability, Y: dataset.ColPopularity},
}

// maxFrequencyLevels caps how many distinct values a categorical column
// may have before its frequency table is skipped (track and artist names
// would otherwise dump thousands of rows).
const maxFrequencyLevels = 24

type runOptions struct {
	datasetPath   string
	outDir        string
	sampleSize    int
	seed          int64
	limit         int
	format        string
	method        string
	corrMethod    stats.Method
	overridesPath string
	plots         bool
	concurrency   int
}

// NewRunCmd creates the run command
func NewRunCmd() *cobra.Command {
	var opts runOptions
	var verbose bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full dataset profile",
		Long: `Run the complete exploratory profile of a track dataset.

Loads the dataset, drops identifier columns, derives the release year,
classifies columns as numeric or categorical, recodes the label-valued
numeric columns, computes descriptive statistics and correlations,
renders density/scatter/heat-map plots, and saves YAML and JSON reports.`,
		Example: `  # Profile a CSV with default settings
  tracklens profile run --dataset ./tracks.csv

  # Quick pass over the first 5000 rows, no plots
  tracklens profile run --dataset ./tracks.csv --limit 5000 --plots=false

  # Spearman correlations, markdown tables
  tracklens profile run --dataset ./tracks.csv --method spearman --format markdown`,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(verbose)

			if opts.datasetPath == "" {
				opts.datasetPath = os.Getenv("TRACKLENS_DATASET")
			}
			if opts.datasetPath == "" {
				return fmt.Errorf("--dataset is required (or set TRACKLENS_DATASET)")
			}

			format, err := render.ParseFormat(opts.format)
			if err != nil {
				return err
			}
			opts.format = format

			method, err := stats.ParseMethod(opts.method)
			if err != nil {
				return err
			}
			opts.corrMethod = method

			if opts.sampleSize <= 0 {
				return fmt.Errorf("--sample must be positive, got %d", opts.sampleSize)
			}
			if opts.concurrency <= 0 {
				return fmt.Errorf("--concurrency must be positive, got %d", opts.concurrency)
			}

			return executeRun(opts)
		},
	}

	cmd.Flags().StringVar(&opts.datasetPath, "dataset", "", "Path to the tracks CSV or Parquet file")
	cmd.Flags().StringVar(&opts.outDir, "out", "profiles", "Directory for reports and plots")
	cmd.Flags().IntVar(&opts.sampleSize, "sample", 1000, "Rows sampled for scatter plots")
	cmd.Flags().Int64Var(&opts.seed, "seed", 42, "Seed for the scatter sample")
	cmd.Flags().IntVar(&opts.limit, "limit", 0, "Load only the first N rows (0 for all)")
	cmd.Flags().StringVar(&opts.format, "format", "table", "Console output format (table, json, csv, markdown)")
	cmd.Flags().StringVar(&opts.method, "method", "pearson", "Correlation method (pearson or spearman)")
	cmd.Flags().StringVar(&opts.overridesPath, "overrides", "", "YAML file listing numeric columns to treat as categorical")
	cmd.Flags().BoolVar(&opts.plots, "plots", true, "Render plot PNGs")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", 4, "Concurrent plot renderers")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Verbose logging")

	return cmd
}

func executeRun(opts runOptions) error {
	slog.Info("Starting profile run", "dataset", opts.datasetPath, "out", opts.outDir)

	df, classification, err := loadAndPrepare(opts.datasetPath, opts.limit, opts.overridesPath)
	if err != nil {
		return err
	}

	slog.Info("Dataset prepared", "rows", df.Nrow(), "numeric", len(classification.Numeric), "categorical", len(classification.Categorical))

	// Descriptive statistics
	slog.Info("Computing descriptive statistics...")
	summaries, err := stats.Describe(df, classification.Numeric)
	if err != nil {
		return fmt.Errorf("failed to describe numeric columns: %w", err)
	}

	cardinality := prep.Cardinality(df, classification.Categorical)
	frequencies := make(map[string][]stats.LevelCount)
	for _, col := range classification.Categorical {
		if cardinality[col] > maxFrequencyLevels {
			slog.Debug("Skipping frequency table", "column", col, "levels", cardinality[col])
			continue
		}
		levels, err := stats.Frequencies(df, col, 0)
		if err != nil {
			return fmt.Errorf("failed to count levels of %s: %w", col, err)
		}
		frequencies[col] = levels
	}

	// Correlations over the fixed numeric subset
	slog.Info("Computing correlation matrix", "method", opts.corrMethod)
	matrix, err := stats.CorrelationMatrix(df, availableColumns(df, correlationColumns), opts.corrMethod)
	if err != nil {
		return fmt.Errorf("failed to compute correlations: %w", err)
	}

	quality := stats.Observe(df)

	artifacts := plotting.NewArtifactSet()
	if opts.plots {
		if err := renderPlots(df, classification.Numeric, matrix, opts, artifacts); err != nil {
			return err
		}
	}

	report := &render.ProfileReport{
		Config:       render.NewReportConfig(opts.datasetPath, df.Nrow(), opts.sampleSize, opts.seed, opts.method),
		Numeric:      classification.Numeric,
		Categorical:  classification.Categorical,
		Summaries:    summaries,
		Frequencies:  frequencies,
		Correlations: matrix,
		Quality:      quality,
		Artifacts:    artifacts.Paths(),
	}

	slog.Info("Saving reports", "out", opts.outDir)
	yamlPath, err := report.SaveYAML(opts.outDir)
	if err != nil {
		return err
	}
	jsonPath, err := report.SaveJSON(opts.outDir)
	if err != nil {
		return err
	}

	if err := report.PrintSummary(os.Stdout, opts.format); err != nil {
		return err
	}

	fmt.Printf("\nReports saved to:\n  %s\n  %s\n", yamlPath, jsonPath)
	return nil
}

// loadAndPrepare runs the shared front half of every profile command:
// load, prune identifiers, derive the release year, classify, recode.
func loadAndPrepare(path string, limit int, overridesPath string) (dataframe.DataFrame, prep.Classification, error) {
	loader := dataset.NewLoader(path)

	var df dataframe.DataFrame
	var err error
	if limit > 0 {
		df, err = loader.LoadSample(limit)
	} else {
		df, err = loader.Load()
	}
	if err != nil {
		return dataframe.DataFrame{}, prep.Classification{}, fmt.Errorf("failed to load dataset: %w", err)
	}

	df, err = prep.DropIdentifiers(df)
	if err != nil {
		return dataframe.DataFrame{}, prep.Classification{}, err
	}

	df, yearRes, err := prep.DeriveReleaseYear(df)
	if err != nil {
		return dataframe.DataFrame{}, prep.Classification{}, err
	}
	if yearRes.Unparsed > 0 {
		slog.Warn("Some release dates could not be parsed", "unparsed", yearRes.Unparsed)
	}

	overrides, err := prep.LoadOverrides(overridesPath)
	if err != nil {
		return dataframe.DataFrame{}, prep.Classification{}, err
	}
	classification := prep.Classify(df, overrides)

	df, recodeRes, err := prep.Recode(df)
	if err != nil {
		return dataframe.DataFrame{}, prep.Classification{}, err
	}
	for col, n := range recodeRes.Unknown {
		slog.Warn("Values outside the expected range were recoded as Unknown", "column", col, "count", n)
	}

	return df, classification, nil
}

// renderPlots writes density plots per numeric column concurrently, then
// the scatter plots and the correlation heat-map.
func renderPlots(df dataframe.DataFrame, numeric []string, matrix stats.Matrix, opts runOptions, artifacts *plotting.ArtifactSet) error {
	plotDir := opts.outDir

	slog.Info("Rendering density plots", "columns", len(numeric), "concurrency", opts.concurrency)

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, opts.concurrency)
	errCh := make(chan error, len(numeric))

	for _, col := range numeric {
		values := df.Col(col).Float()

		wg.Add(1)
		go func(col string, values []float64) {
			defer wg.Done()
			semaphore <- struct{}{}        // Acquire
			defer func() { <-semaphore }() // Release

			path, err := plotting.Density(values, col, plotDir)
			if err != nil {
				errCh <- fmt.Errorf("density plot for %s: %w", col, err)
				return
			}
			artifacts.Set("density_"+col, path)
		}(col, values)
	}

	wg.Wait()
	close(errCh)
	for err := range errCh {
		// Degenerate columns are reported, not fatal.
		slog.Warn("Skipped density plot", "error", err)
	}

	slog.Info("Rendering scatter plots", "sample", opts.sampleSize, "seed", opts.seed)
	indices := plotting.SampleIndices(opts.sampleSize, df.Nrow(), opts.seed)
	for _, pair := range defaultScatterPairs {
		path, err := plotting.Scatter(df, pair, indices, plotDir)
		if err != nil {
			return fmt.Errorf("scatter plot %s vs %s: %w", pair.X, pair.Y, err)
		}
		artifacts.Set(fmt.Sprintf("scatter_%s_%s", pair.X, pair.Y), path)
	}

	slog.Info("Rendering correlation heat-map")
	path, err := plotting.HeatMap(matrix, plotDir)
	if err != nil {
		return fmt.Errorf("correlation heat-map: %w", err)
	}
	artifacts.Set("correlation_heatmap", path)

	return nil
}

// availableColumns filters the wanted columns to those present.
func availableColumns(df dataframe.DataFrame, wanted []string) []string {
	present := make(map[string]bool, df.Ncol())
	for _, name := range df.Names() {
		present[name] = true
	}
	out := make([]string, 0, len(wanted))
	for _, name := range wanted {
		if present[name] {
			out = append(out, name)
		}
	}
	return out
}

// setupLogging configures the default slog handler.
func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
