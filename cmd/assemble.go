package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kayz/docanalyze/internal/config"
	"github.com/kayz/docanalyze/internal/logger"
	"github.com/kayz/docanalyze/internal/prompt"
	"github.com/kayz/docanalyze/internal/skills"
)

// assembleRequest carries the fields the orchestration runtime supplies
// for a fresh analysis.
type assembleRequest struct {
	ActionSystemPrompt string `json:"action_system_prompt"`
	SkillsInstructions string `json:"skills_instructions,omitempty"`
	OutputFormat       string `json:"output_format,omitempty"`
	DocumentText       string `json:"document_text"`
	KnowledgeContext   string `json:"knowledge_context,omitempty"`

	// UseSkills fills skills_instructions from discovered skills when
	// the request leaves it empty.
	UseSkills bool `json:"use_skills,omitempty"`
}

func newAssembleCommand() *cobra.Command {
	var requestPath string
	var outputPath string

	cmd := &cobra.Command{
		Use:   "assemble",
		Short: "Build system and user prompts for a new document analysis",
		RunE: func(cmd *cobra.Command, args []string) error {
			if requestPath == "" {
				return fmt.Errorf("--request is required")
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			reqBytes, err := os.ReadFile(requestPath)
			if err != nil {
				return fmt.Errorf("read request: %w", err)
			}

			var req assembleRequest
			if err := json.Unmarshal(reqBytes, &req); err != nil {
				return fmt.Errorf("parse request: %w", err)
			}

			bundle, sections, err := runAssemble(cfg, req)
			if err != nil {
				return err
			}

			if err := writeBundle(cmd, bundle, outputPath); err != nil {
				return err
			}

			if err := prompt.NewAuditor(cfg.Audit).Record("execute", bundle, sections); err != nil {
				logger.Warn("record assemble audit failed: %v", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&requestPath, "request", "", "Path to JSON request file")
	cmd.Flags().StringVar(&outputPath, "output", "", "Write bundle JSON to file (default: stdout)")
	return cmd
}

func runAssemble(cfg *config.Config, req assembleRequest) (prompt.Bundle, []string, error) {
	if req.OutputFormat == "" {
		req.OutputFormat = cfg.Prompt.DefaultOutputFormat
	}

	if req.SkillsInstructions == "" && req.UseSkills {
		discovered, err := skills.Discover(cfg.Skills.Dirs, cfg.Skills.Disabled)
		if err != nil {
			return prompt.Bundle{}, nil, fmt.Errorf("discover skills: %w", err)
		}
		req.SkillsInstructions = skills.Instructions(discovered)
		logger.Debug("discovered %d skills for prompt assembly", len(discovered))
	}

	bundle := prompt.Bundle{
		SystemPrompt: prompt.BuildSystemPrompt(req.ActionSystemPrompt, req.SkillsInstructions, req.OutputFormat),
		UserPrompt:   prompt.BuildUserPrompt(req.DocumentText, req.KnowledgeContext),
	}

	sections := []string{"Document to Analyze"}
	if req.SkillsInstructions != "" {
		sections = append(sections, "Instructions")
	}
	sections = append(sections, "Output Format")
	if req.KnowledgeContext != "" {
		sections = append(sections, "Reference Materials")
	}
	return bundle, sections, nil
}

func writeBundle(cmd *cobra.Command, bundle prompt.Bundle, outputPath string) error {
	data, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal bundle: %w", err)
	}

	if outputPath == "" {
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}
	if err := os.WriteFile(outputPath, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(newAssembleCommand())
}
