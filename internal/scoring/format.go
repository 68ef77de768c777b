package scoring

import (
	"encoding/json"
	"regexp"
	"strings"
)

// expectedJSONKeys are the top-level keys a structured analysis carries.
var expectedJSONKeys = []string{"summary", "key_findings", "details"}

var (
	fencedJSONRe = regexp.MustCompile("```json\\s*([\\s\\S]*?)\\s*```")
	headingRe    = regexp.MustCompile(`(?m)^#+\s+.+`)
	paragraphRe  = regexp.MustCompile(`\n\n.+`)
	listRe       = regexp.MustCompile(`(?m)^[\-\*\d.]+\s+.+`)
)

// FormatCompliance scores structural conformance of output with the
// expected format in [0, 1]. Only the literal "json" selects the JSON
// branch; everything else is scored as markdown/prose.
func FormatCompliance(output, expectedFormat string) float64 {
	if strings.TrimSpace(output) == "" {
		return 0.0
	}
	if expectedFormat == "json" {
		return jsonScore(classifyJSON(output))
	}
	return markdownScore(output)
}

// jsonOutcome is the result of inspecting output as JSON.
type jsonOutcome int

const (
	// jsonParsed: the whole trimmed output is a JSON value.
	jsonParsed jsonOutcome = iota
	// jsonFencedValid: not parseable whole, but a ```json fence holds
	// valid JSON.
	jsonFencedValid
	// jsonFencedInvalid: a ```json fence exists but its payload does
	// not parse.
	jsonFencedInvalid
	// jsonAbsent: no parseable JSON anywhere.
	jsonAbsent
)

// classifyJSON also returns how many expected top-level keys the parsed
// object carries; the count is meaningful only for jsonParsed.
func classifyJSON(output string) (jsonOutcome, int) {
	var value any
	if err := json.Unmarshal([]byte(strings.TrimSpace(output)), &value); err == nil {
		present := 0
		if obj, ok := value.(map[string]any); ok {
			for _, key := range expectedJSONKeys {
				if _, ok := obj[key]; ok {
					present++
				}
			}
		}
		return jsonParsed, present
	}

	match := fencedJSONRe.FindStringSubmatch(output)
	if match == nil {
		return jsonAbsent, 0
	}
	if json.Valid([]byte(match[1])) {
		return jsonFencedValid, 0
	}
	return jsonFencedInvalid, 0
}

func jsonScore(outcome jsonOutcome, presentKeys int) float64 {
	switch outcome {
	case jsonParsed:
		// Valid JSON is worth 0.5; the rest is key coverage.
		return 0.5 + 0.5*float64(presentKeys)/float64(len(expectedJSONKeys))
	case jsonFencedValid:
		return 0.7
	case jsonFencedInvalid:
		return 0.3
	default:
		return 0.0
	}
}

// markdownScore sums four independent 0.25 checks: a heading line, at
// least two blank-line-separated blocks, a bullet or numbered list
// line, and at least 100 characters of trimmed content.
func markdownScore(output string) float64 {
	score := 0.0
	if headingRe.MatchString(output) {
		score += 0.25
	}
	if len(paragraphRe.FindAllString(output, -1)) >= 2 {
		score += 0.25
	}
	if listRe.MatchString(output) {
		score += 0.25
	}
	if len(strings.TrimSpace(output)) >= 100 {
		score += 0.25
	}
	return score
}
