// Package cmd wires the planning pipelines, configuration, and export
// layers into the advisor command-line interface.
package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for
// advisor.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "advisor",
		Short: "Multi-agent business planning pipelines",
		Long: `Advisor runs role-based planning pipelines against an Azure OpenAI
deployment: a personal financial analysis, a product launch strategy,
and topic-focused research of a single website.

Each pipeline chains specialist roles whose outputs feed the next step.
Reports are post-processed, saved under the output directory, and
recorded in a local run history.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("config", "", "Path to config file (default: advisor.yaml)")
	cmd.PersistentFlags().String("output-dir", "", "Directory for reports and archives (overrides config)")
	cmd.PersistentFlags().String("log-level", "", "Log verbosity: debug, info, warn, error (overrides config)")
	cmd.PersistentFlags().Bool("no-save", false, "Print results without writing report files")

	cmd.AddCommand(NewFinancialCommand())
	cmd.AddCommand(NewProductCommand())
	cmd.AddCommand(NewResearchCommand())
	cmd.AddCommand(NewConfigCommand())
	cmd.AddCommand(NewHistoryCommand())

	return cmd
}
