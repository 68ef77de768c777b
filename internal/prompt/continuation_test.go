package prompt

import (
	"strings"
	"testing"
)

func TestBuildContinuationPromptOmitsEmptyHistory(t *testing.T) {
	bundle := BuildContinuationPrompt("current analysis text", nil, "make it shorter", 10)

	if !strings.Contains(bundle.SystemPrompt, "COMPLETE updated analysis") {
		t.Fatalf("unexpected system prompt: %s", bundle.SystemPrompt)
	}
	if strings.Contains(bundle.UserPrompt, "# Conversation History") {
		t.Fatalf("expected no history heading for empty history, got: %s", bundle.UserPrompt)
	}
	if !strings.Contains(bundle.UserPrompt, "# Current Analysis") {
		t.Fatalf("expected current analysis heading, got: %s", bundle.UserPrompt)
	}
	if !strings.Contains(bundle.UserPrompt, "# New Request") {
		t.Fatalf("expected new request heading, got: %s", bundle.UserPrompt)
	}
	if !strings.Contains(bundle.UserPrompt, "User: make it shorter") {
		t.Fatalf("expected user message, got: %s", bundle.UserPrompt)
	}
}

func TestBuildContinuationPromptOmitsHistoryWhenWindowEmpty(t *testing.T) {
	history := []ChatMessage{
		{Role: "user", Content: "earlier request", Timestamp: "2026-03-01T10:00:00Z"},
	}

	bundle := BuildContinuationPrompt("doc", history, "next", 0)
	if strings.Contains(bundle.UserPrompt, "# Conversation History") {
		t.Fatalf("expected no history heading for max=0, got: %s", bundle.UserPrompt)
	}
}

func TestBuildContinuationPromptRendersWindowedHistory(t *testing.T) {
	history := []ChatMessage{
		{Role: "assistant", Content: "old answer", Timestamp: "2026-03-01T09:00:00Z"},
		{Role: "user", Content: "old question", Timestamp: "2026-03-01T08:00:00Z"},
		{Role: "user", Content: "recent question", Timestamp: "2026-03-01T10:00:00Z"},
		{Role: "assistant", Content: "recent answer", Timestamp: "2026-03-01T11:00:00Z"},
	}

	bundle := BuildContinuationPrompt("doc", history, "refine", 2)

	if !strings.Contains(bundle.UserPrompt, "# Conversation History") {
		t.Fatalf("expected history heading, got: %s", bundle.UserPrompt)
	}
	if strings.Contains(bundle.UserPrompt, "old question") {
		t.Fatalf("expected old messages outside window, got: %s", bundle.UserPrompt)
	}

	q := strings.Index(bundle.UserPrompt, "User: recent question")
	a := strings.Index(bundle.UserPrompt, "Assistant: recent answer")
	if q == -1 || a == -1 {
		t.Fatalf("expected windowed messages with role labels, got: %s", bundle.UserPrompt)
	}
	if q > a {
		t.Fatalf("expected chronological order, got: %s", bundle.UserPrompt)
	}
}

func TestBuildContinuationPromptSectionOrder(t *testing.T) {
	history := []ChatMessage{
		{Role: "user", Content: "hi", Timestamp: "2026-03-01T10:00:00Z"},
	}
	bundle := BuildContinuationPrompt("doc", history, "next", 5)

	current := strings.Index(bundle.UserPrompt, "# Current Analysis")
	hist := strings.Index(bundle.UserPrompt, "# Conversation History")
	request := strings.Index(bundle.UserPrompt, "# New Request")
	if !(current >= 0 && hist > current && request > hist) {
		t.Fatalf("unexpected section order in: %s", bundle.UserPrompt)
	}
	if !strings.Contains(bundle.UserPrompt, "Provide the complete updated analysis, not just the changes.") {
		t.Fatalf("expected trailing instruction, got: %s", bundle.UserPrompt)
	}
}
