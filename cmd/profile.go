package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tracklens/tracklens/internal/profilecmd"
)

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Dataset profiling tools",
		Long: `Profiling tools for the track dataset.

Supports running the full exploratory profile, printing descriptive
statistics, computing correlation matrices, and inspecting prepared
records.`,
	}

	// Add profile subcommands
	cmd.AddCommand(profilecmd.NewRunCmd())
	cmd.AddCommand(profilecmd.NewDescribeCmd())
	cmd.AddCommand(profilecmd.NewCorrCmd())
	cmd.AddCommand(profilecmd.NewInspectCmd())

	return cmd
}
