package profilecmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tracklens/tracklens/internal/dataset"
)

// NewInspectCmd creates the inspect command
func NewInspectCmd() *cobra.Command {
	var datasetPath string
	var limit int
	var interactive bool
	var raw bool
	var verbose bool

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Inspect prepared records (useful for reviewing the recoding)",
		Long: `Inspect records from the dataset after preparation: identifier columns
dropped, release year derived, and label-valued columns recoded. Useful
for spot-checking the transformations before a full run.`,
		Example: `  # Inspect the first 5 prepared records, pausing after each
  tracklens profile inspect --dataset ./tracks.csv --limit 5 --interactive

  # Show the raw rows instead (no preparation)
  tracklens profile inspect --dataset ./tracks.csv --raw`,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(verbose)

			if datasetPath == "" {
				datasetPath = os.Getenv("TRACKLENS_DATASET")
			}
			if datasetPath == "" {
				return fmt.Errorf("--dataset is required (or set TRACKLENS_DATASET)")
			}

			// Cancel the inspection loop on Ctrl+C.
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return executeInspect(ctx, datasetPath, limit, interactive, raw)
		},
	}

	cmd.Flags().StringVar(&datasetPath, "dataset", "", "Path to the tracks CSV or Parquet file")
	cmd.Flags().IntVar(&limit, "limit", 10, "Number of records to inspect")
	cmd.Flags().BoolVar(&interactive, "interactive", false, "Pause after each record (press Enter to continue)")
	cmd.Flags().BoolVar(&raw, "raw", false, "Show raw rows without preparation")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Verbose logging")

	return cmd
}

func executeInspect(ctx context.Context, datasetPath string, limit int, interactive, raw bool) error {
	if limit <= 0 {
		limit = 10
	}

	records, err := inspectRecords(datasetPath, limit, raw)
	if err != nil {
		return err
	}
	if len(records) < 2 {
		fmt.Println("(no records)")
		return nil
	}

	header := records[0]
	rows := records[1:]
	reader := bufio.NewReader(os.Stdin)
	separator := strings.Repeat("-", 70)

	for i, row := range rows {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		fmt.Printf("RECORD %d\n%s\n", i+1, separator)
		for j, col := range header {
			if j < len(row) {
				fmt.Printf("  %-18s %s\n", col+":", row[j])
			}
		}
		fmt.Println()

		if interactive && i < len(rows)-1 {
			fmt.Print("Press Enter for the next record (Ctrl+C to stop)... ")
			if _, err := reader.ReadString('\n'); err != nil {
				return nil
			}
		}
	}

	return nil
}

func inspectRecords(datasetPath string, limit int, raw bool) ([][]string, error) {
	if raw {
		df, err := dataset.NewLoader(datasetPath).LoadSample(limit)
		if err != nil {
			return nil, fmt.Errorf("failed to load dataset: %w", err)
		}
		return df.Records(), nil
	}

	df, _, err := loadAndPrepare(datasetPath, limit, "")
	if err != nil {
		return nil, err
	}
	return df.Records(), nil
}
