package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tracklens",
		Short: "Exploratory profiling tool for track audio-feature datasets",
		Long: `Tracklens profiles a tabular dataset of music tracks.

It loads the dataset, prunes identifier columns, derives a release year,
classifies and recodes columns, computes descriptive statistics and
correlations, and renders density, scatter, and heat-map plots.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(newProfileCmd())

	return cmd
}
