package profilecmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tracklens/tracklens/internal/plotting"
	"github.com/tracklens/tracklens/internal/render"
	"github.com/tracklens/tracklens/internal/stats"
)

// NewCorrCmd creates the corr command
func NewCorrCmd() *cobra.Command {
	var datasetPath string
	var outDir string
	var limit int
	var format string
	var method string
	var heatmap bool
	var verbose bool

	cmd := &cobra.Command{
		Use:   "corr",
		Short: "Print the correlation matrix over the audio-feature columns",
		Long: `Load and prepare the dataset, then compute the correlation matrix over
the fixed numeric audio-feature subset and print it. With --heatmap the
matrix is also rendered as a PNG.`,
		Example: `  # Pearson matrix as a table
  tracklens profile corr --dataset ./tracks.csv

  # Spearman matrix plus the heat-map PNG
  tracklens profile corr --dataset ./tracks.csv --method spearman --heatmap`,
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

			m, err := stats.ParseMethod(method)
			if err != nil {
				return err
			}

			return executeCorr(datasetPath, outDir, limit, f, m, heatmap)
		},
	}

	cmd.Flags().StringVar(&datasetPath, "dataset", "", "Path to the tracks CSV or Parquet file")
	cmd.Flags().StringVar(&outDir, "out", "profiles", "Directory for the heat-map PNG")
	cmd.Flags().IntVar(&limit, "limit", 0, "Load only the first N rows (0 for all)")
	cmd.Flags().StringVar(&format, "format", "table", "Output format (table, json, csv, markdown)")
	cmd.Flags().StringVar(&method, "method", "pearson", "Correlation method (pearson or spearman)")
	cmd.Flags().BoolVar(&heatmap, "heatmap", false, "Render the heat-map PNG")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Verbose logging")

	return cmd
}

func executeCorr(datasetPath, outDir string, limit int, format string, method stats.Method, heatmap bool) error {
	df, _, err := loadAndPrepare(datasetPath, limit, "")
	if err != nil {
		return err
	}

	matrix, err := stats.CorrelationMatrix(df, availableColumns(df, correlationColumns), method)
	if err != nil {
		return fmt.Errorf("failed to compute correlations: %w", err)
	}

	if err := render.Correlations(os.Stdout, matrix, format); err != nil {
		return err
	}

	if heatmap {
		path, err := plotting.HeatMap(matrix, outDir)
		if err != nil {
			return fmt.Errorf("correlation heat-map: %w", err)
		}
		fmt.Printf("\nHeat-map saved to: %s\n", path)
	}

	return nil
}
