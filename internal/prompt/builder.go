package prompt

import "strings"

// OutputFormatStructuredJSON requests a JSON object response; any other
// output_format value falls back to markdown instructions.
const OutputFormatStructuredJSON = "structured_json"

const jsonFormatInstruction = "Provide your analysis as a valid JSON object with appropriate keys " +
	"for the analysis type. Include 'summary', 'key_findings', and 'details' fields."

const markdownFormatInstruction = "Provide your analysis in Markdown format with appropriate headings and structure. " +
	"Use clear, professional language suitable for business communication."

// BuildSystemPrompt combines the action's base instructions with skill
// instructions and an output-format directive.
//
// The skills block is rendered as one bullet per non-blank line; when it
// is empty after trimming, no Instructions heading is emitted.
func BuildSystemPrompt(actionSystemPrompt, skillsInstructions, outputFormat string) string {
	parts := []string{actionSystemPrompt}

	if strings.TrimSpace(skillsInstructions) != "" {
		parts = append(parts, "\n## Instructions\n")
		for _, line := range strings.Split(strings.TrimSpace(skillsInstructions), "\n") {
			if strings.TrimSpace(line) != "" {
				parts = append(parts, "- "+strings.TrimSpace(line))
			}
		}
		parts = append(parts, "")
	}

	parts = append(parts, "\n## Output Format\n")
	if outputFormat == OutputFormatStructuredJSON {
		parts = append(parts, jsonFormatInstruction)
	} else {
		parts = append(parts, markdownFormatInstruction)
	}

	return strings.Join(parts, "\n")
}

// BuildUserPrompt renders the document under analysis plus optional
// reference materials. No Reference Materials heading is emitted when
// the context is empty after trimming.
func BuildUserPrompt(documentText, knowledgeContext string) string {
	var parts []string

	parts = append(parts, "# Document to Analyze\n")
	parts = append(parts, documentText)
	parts = append(parts, "")

	if strings.TrimSpace(knowledgeContext) != "" {
		parts = append(parts, "\n# Reference Materials\n")
		parts = append(parts, strings.TrimSpace(knowledgeContext))
		parts = append(parts, "")
	}

	parts = append(parts, "\n---\n")
	parts = append(parts, "Please analyze the document above according to the instructions provided.")

	return strings.Join(parts, "\n")
}
