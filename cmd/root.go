// Package cmd wires the CLI entrypoints.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "disaster-routing-system",
	Short: "Disaster-response coordination server",
	Long: `Coordination core for disaster response: a vulnerability-ordered
rescue dispatch queue, capacity-bounded shelter check-in, and road
routing over a graph whose edges are blocked by live sensor reports.`,
	SilenceUsage: true,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}
