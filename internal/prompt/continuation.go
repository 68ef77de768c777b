package prompt

import "strings"

const continuationSystemPrompt = `You are an AI assistant helping refine and improve a document analysis.
You have access to the current working document and conversation history.
When the user requests changes, provide the COMPLETE updated analysis, not just the changes.
Maintain the same structure and format as the original analysis unless asked to change it.
Be concise but thorough in your responses.`

// BuildContinuationPrompt assembles the refinement prompt: the current
// working document, a bounded chronological window of the conversation,
// and the new request. The Conversation History section is omitted
// entirely when the window is empty.
func BuildContinuationPrompt(workingDocument string, chatHistory []ChatMessage, userMessage string, maxHistoryMessages int) Bundle {
	var parts []string

	parts = append(parts, "# Current Analysis\n")
	parts = append(parts, workingDocument)
	parts = append(parts, "")

	if windowed := WindowHistory(chatHistory, maxHistoryMessages); len(windowed) > 0 {
		parts = append(parts, "\n# Conversation History\n")
		for _, msg := range windowed {
			parts = append(parts, roleLabel(msg.Role)+": "+msg.Content)
			parts = append(parts, "")
		}
	}

	parts = append(parts, "\n# New Request\n")
	parts = append(parts, "User: "+userMessage)
	parts = append(parts, "")
	parts = append(parts, "Please update the analysis based on this feedback. "+
		"Provide the complete updated analysis, not just the changes.")

	return Bundle{
		SystemPrompt: continuationSystemPrompt,
		UserPrompt:   strings.Join(parts, "\n"),
	}
}

func roleLabel(role string) string {
	if role == "user" {
		return "User"
	}
	return "Assistant"
}
