// Package cli implements the trialsift command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/kevinjones/trialsift/internal/logger"
)

var (
	cfgPath     string
	verboseFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "trialsift",
	Short: "Extract, filter and classify clinical-trial records",
	Long: `trialsift pulls trial records from the ClinicalTrials.gov registry,
applies inclusion filters, classifies each record with a language model,
and exports the result as a CSV file.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "config.toml",
		"path to the TOML configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false,
		"enable verbose logging to stderr")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
