package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kayz/docanalyze/internal/logger"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "docanalyze",
	Short: "Document-analysis prompt assembly and output scoring",
	Long: `docanalyze assembles prompts for the document-analysis completion step
and scores model output against heuristic rubrics.

Commands:
  docanalyze assemble   Build system/user prompts for a new analysis
  docanalyze continue   Build a continuation prompt from a working document
  docanalyze score      Score model output for completeness and format
  docanalyze claims     Decode an access token's claims (no verification)`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logger.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		logger.SetLevel(level)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info",
		"Log level: trace, debug, info, warn, error, fatal")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
