package profilecmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tracklens/tracklens/internal/prep"
	"github.com/tracklens/tracklens/internal/render"
	"github.com/tracklens/tracklens/internal/stats"
)

// NewDescribeCmd creates the describe command
func NewDescribeCmd() *cobra.Command {
	var datasetPath string
	var limit int
	var format string
	var overridesPath string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Print descriptive statistics for the prepared dataset",
		Long: `Load and prepare the dataset, then print the per-column descriptive
statistics for numeric columns and the frequency tables for
low-cardinality categorical columns. No plots or reports are written.`,
		Example: `  # Describe a CSV
  tracklens profile describe --dataset ./tracks.csv

  # Quick look at the first 1000 rows, as markdown
  tracklens profile describe --dataset ./tracks.csv --limit 1000 --format markdown`,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(verbose)

			if datasetPath == "" {
				datasetPath = os.Getenv("TRACKLENS_DATASET")
			}
			if datasetPath == "" {
				return fmt.Errorf("--dataset is required (or set TRACKLENS_DATASET)")
			}

			f, err := render.ParseFormat(format)
			if err != nil {
				return err
			}

			return executeDescribe(datasetPath, limit, f, overridesPath)
		},
	}

	cmd.Flags().StringVar(&datasetPath, "dataset", "", "Path to the tracks CSV or Parquet file")
	cmd.Flags().IntVar(&limit, "limit", 0, "Load only the first N rows (0 for all)")
	cmd.Flags().StringVar(&format, "format", "table", "Output format (table, json, csv, markdown)")
	cmd.Flags().StringVar(&overridesPath, "overrides", "", "YAML file listing numeric columns to treat as categorical")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Verbose logging")

	return cmd
}

func executeDescribe(datasetPath string, limit int, format, overridesPath string) error {
	df, classification, err := loadAndPrepare(datasetPath, limit, overridesPath)
	if err != nil {
		return err
	}

	summaries, err := stats.Describe(df, classification.Numeric)
	if err != nil {
		return fmt.Errorf("failed to describe numeric columns: %w", err)
	}

	if err := render.Summaries(os.Stdout, summaries, format); err != nil {
		return err
	}
	fmt.Println()

	cardinality := prep.Cardinality(df, classification.Categorical)
	for _, col := range classification.Categorical {
		if cardinality[col] > maxFrequencyLevels {
			continue
		}
		levels, err := stats.Frequencies(df, col, 0)
		if err != nil {
			return fmt.Errorf("failed to count levels of %s: %w", col, err)
		}
		if err := render.Frequencies(os.Stdout, col, levels, format); err != nil {
			return err
		}
		fmt.Println()
	}

	return nil
}
