package scoring

import (
	"regexp"
	"strings"
)

// Completeness scores how many expected sections for the action type
// appear in the output, as matched/expected in [0, 1]. Blank output
// scores 0.0; an empty expected set scores a vacuous 1.0.
func Completeness(output, actionType string) float64 {
	return CompletenessAgainst(output, ExpectedSections(actionType))
}

// CompletenessWith is Completeness resolved against a custom SectionMap.
func CompletenessWith(sections SectionMap, output, actionType string) float64 {
	return CompletenessAgainst(output, sections.Expected(actionType))
}

// CompletenessAgainst scores output against an explicit section set.
func CompletenessAgainst(output string, expected []string) float64 {
	if strings.TrimSpace(output) == "" {
		return 0.0
	}
	if len(expected) == 0 {
		return 1.0
	}

	found := 0
	for _, label := range expected {
		if sectionPresent(output, label) {
			found++
		}
	}
	return float64(found) / float64(len(expected))
}

// sectionPresent reports whether a section label appears in the output
// in any of four forms: markdown heading (depth 1-3), bold emphasis,
// label followed by a colon, or as a standalone word. A word-boundary
// hit inside unrelated prose still counts; that looseness is part of
// the scoring contract.
func sectionPresent(output, label string) bool {
	quoted := regexp.QuoteMeta(strings.ToLower(label))
	patterns := []string{
		`(?i)#{1,3}\s*` + quoted,
		`(?i)\*\*` + quoted + `\*\*`,
		`(?i)` + quoted + `:`,
		`(?i)\b` + quoted + `\b`,
	}
	for _, p := range patterns {
		if regexp.MustCompile(p).MatchString(output) {
			return true
		}
	}
	return false
}
