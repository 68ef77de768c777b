package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kayz/docanalyze/internal/config"
	"github.com/kayz/docanalyze/internal/scoring"
)

// scoreResult is the pair of heuristic quality signals reported for one
// model output.
type scoreResult struct {
	Completeness     float64 `json:"completeness"`
	FormatCompliance float64 `json:"format_compliance"`
}

func newScoreCommand() *cobra.Command {
	var outputFile string
	var actionType string
	var expectedFormat string

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score model output for section completeness and format compliance",
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputFile == "" {
				return fmt.Errorf("--file is required")
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			data, err := os.ReadFile(outputFile)
			if err != nil {
				return fmt.Errorf("read model output: %w", err)
			}
			output := string(data)

			sections := scoring.SectionMap(nil)
			if cfg.Scoring.SectionsPath != "" {
				sections, err = scoring.LoadSectionMap(cfg.Scoring.SectionsPath)
				if err != nil {
					return fmt.Errorf("load sections map: %w", err)
				}
			}

			result := scoreResult{
				Completeness:     scoring.CompletenessWith(sections, output, actionType),
				FormatCompliance: scoring.FormatCompliance(output, expectedFormat),
			}

			encoded, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal scores: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
			return nil
		},
	}

	cmd.Flags().StringVar(&outputFile, "file", "", "Path to the model output text file")
	cmd.Flags().StringVar(&actionType, "action-type", "default", "Analysis action type for completeness scoring")
	cmd.Flags().StringVar(&expectedFormat, "expected-format", "markdown", "Expected output format (json or markdown)")
	return cmd
}

func init() {
	rootCmd.AddCommand(newScoreCommand())
}
