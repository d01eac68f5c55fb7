package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for satpass.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "satpass",
		Short: "Satellite pass report generator",
		Long: `satpass fetches satellite overpass predictions from the N2YO API for a
configured ground station, merges and time-sorts them across all configured
satellites, and renders a static HTML report.

Run 'satpass init' once to create a configuration file, add your N2YO API
key and satellites, then schedule 'satpass generate' from cron or a systemd
timer.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewGenerateCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
// Any error reaching this point is unexpected: recoverable conditions are
// absorbed further down, so this is the exit-status-1 path.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
