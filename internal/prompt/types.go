package prompt

// ChatMessage is one turn of an analysis-refinement conversation.
// Timestamp is a sortable string (RFC3339 in practice); an absent
// timestamp is tolerated and treated as the empty string.
type ChatMessage struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp,omitempty"`
}

// Bundle pairs the system and user prompts handed to the completion
// endpoint for one analysis turn.
type Bundle struct {
	SystemPrompt string `json:"system_prompt"`
	UserPrompt   string `json:"user_prompt"`
}
