package scoring

import "strings"

// actionSections maps normalized action types to the section labels a
// complete analysis of that kind is expected to contain.
var actionSections = map[string][]string{
	"summarize":         {"summary", "key points", "conclusion"},
	"review_agreement":  {"parties", "terms", "obligations", "risks", "recommendations"},
	"extract_entities":  {"entities", "relationships"},
	"classify_document": {"classification", "confidence", "reasoning"},
}

var defaultSections = []string{"summary", "analysis", "conclusion"}

// SectionMap maps action types to expected section labels. The zero
// value falls back to the built-in mapping for every action.
type SectionMap map[string][]string

// NormalizeActionType lowercases the action type and replaces spaces
// with underscores, matching how callers spell action names.
func NormalizeActionType(actionType string) string {
	return strings.ReplaceAll(strings.ToLower(actionType), " ", "_")
}

// ExpectedSections returns the section labels for an action type,
// falling back to the default set for unmapped actions.
func ExpectedSections(actionType string) []string {
	if sections, ok := actionSections[NormalizeActionType(actionType)]; ok {
		return sections
	}
	return defaultSections
}

// Expected resolves an action type against the custom map first, then
// the built-ins.
func (m SectionMap) Expected(actionType string) []string {
	if sections, ok := m[NormalizeActionType(actionType)]; ok {
		return sections
	}
	return ExpectedSections(actionType)
}
