package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kayz/docanalyze/internal/config"
	"github.com/kayz/docanalyze/internal/logger"
	"github.com/kayz/docanalyze/internal/persist"
	"github.com/kayz/docanalyze/internal/prompt"
)

// continueRequest carries the fields for an analysis-refinement turn.
// Chat history may be supplied inline or pulled from the conversation
// store by id.
type continueRequest struct {
	WorkingDocument    string               `json:"working_document"`
	ChatHistory        []prompt.ChatMessage `json:"chat_history,omitempty"`
	UserMessage        string               `json:"user_message"`
	MaxHistoryMessages int                  `json:"max_history_messages,omitempty"`
	ConversationID     int64                `json:"conversation_id,omitempty"`
}

func newContinueCommand() *cobra.Command {
	var requestPath string
	var outputPath string

	cmd := &cobra.Command{
		Use:   "continue",
		Short: "Build a continuation prompt from a working document and chat history",
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

			var req continueRequest
			if err := json.Unmarshal(reqBytes, &req); err != nil {
				return fmt.Errorf("parse request: %w", err)
			}

			bundle, err := runContinue(cfg, req)
			if err != nil {
				return err
			}

			if err := writeBundle(cmd, bundle, outputPath); err != nil {
				return err
			}

			if err := prompt.NewAuditor(cfg.Audit).Record("continue", bundle, nil); err != nil {
				logger.Warn("record continue audit failed: %v", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&requestPath, "request", "", "Path to JSON request file")
	cmd.Flags().StringVar(&outputPath, "output", "", "Write bundle JSON to file (default: stdout)")
	return cmd
}

func runContinue(cfg *config.Config, req continueRequest) (prompt.Bundle, error) {
	maxHistory := req.MaxHistoryMessages
	if maxHistory <= 0 {
		maxHistory = cfg.Prompt.MaxHistoryMessages
	}

	history := req.ChatHistory
	if len(history) == 0 && req.ConversationID > 0 {
		loaded, err := loadStoredHistory(cfg.History.SQLitePath, req.ConversationID, maxHistory)
		if err != nil {
			return prompt.Bundle{}, err
		}
		history = loaded
	}

	return prompt.BuildContinuationPrompt(req.WorkingDocument, history, req.UserMessage, maxHistory), nil
}

func loadStoredHistory(dbPath string, conversationID int64, limit int) ([]prompt.ChatMessage, error) {
	if _, err := os.Stat(dbPath); err != nil {
		logger.Warn("History database not found, skipping: %s", dbPath)
		return nil, nil
	}

	store, err := persist.NewStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open history store: %w", err)
	}
	defer store.Close()

	messages, err := store.RecentMessages(conversationID, limit)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	return messages, nil
}

func init() {
	rootCmd.AddCommand(newContinueCommand())
}
