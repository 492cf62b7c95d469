// Package department holds the static per-department threat patterns
// and the keyword-weighted multiplier derived from them. New
// departments and keywords are additive data changes here, not code
// changes elsewhere.
package department

import (
	"strings"
)

// KeywordWeight pairs a keyword phrase with its score weight (> 1.0).
type KeywordWeight struct {
	Keyword string
	Weight  float64
}

// Patterns describes the threat profile of one department. The
// suspicious sender prefixes are informational only and do not
// participate in scoring.
type Patterns struct {
	KeywordWeights    []KeywordWeight
	SuspiciousSenders []string
}

// maxMultiplier caps the folded keyword weights.
const maxMultiplier = 2.0

var threatPatterns = map[string]Patterns{
	"finance": {
		KeywordWeights: []KeywordWeight{
			{"invoice", 1.3},
			{"payment", 1.4},
			{"wire transfer", 1.5},
			{"account details", 1.4},
			{"urgent payment", 1.6},
		},
		SuspiciousSenders: []string{"accounting@", "finance@", "billing@"},
	},
	"hr": {
		KeywordWeights: []KeywordWeight{
			{"resume", 1.2},
			{"employee", 1.3},
			{"payroll", 1.5},
			{"benefits", 1.2},
			{"performance review", 1.3},
		},
		SuspiciousSenders: []string{"hr@", "recruiting@", "careers@"},
	},
	"it": {
		KeywordWeights: []KeywordWeight{
			{"system maintenance", 1.4},
			{"password reset", 1.5},
			{"security update", 1.3},
			{"server", 1.2},
			{"access required", 1.4},
		},
		SuspiciousSenders: []string{"admin@", "support@", "noreply@"},
	},
	"executive": {
		KeywordWeights: []KeywordWeight{
			{"confidential", 1.4},
			{"board meeting", 1.3},
			{"strategic", 1.2},
			{"acquisition", 1.5},
			{"legal matter", 1.4},
		},
		SuspiciousSenders: []string{"ceo@", "board@", "legal@"},
	},
}

// Multiplier folds the department's keyword weights over the reason
// phrases produced by analysis: every keyword found as a
// case-insensitive substring of any phrase multiplies the result,
// capped at 2.0. Unknown departments yield 1.0.
func Multiplier(department string, reasonPhrases []string) float64 {
	patterns, ok := threatPatterns[strings.ToLower(department)]
	if !ok {
		return 1.0
	}

	multiplier := 1.0
	for _, kw := range patterns.KeywordWeights {
		for _, phrase := range reasonPhrases {
			if strings.Contains(strings.ToLower(phrase), kw.Keyword) {
				multiplier *= kw.Weight
				break
			}
		}
	}

	if multiplier > maxMultiplier {
		return maxMultiplier
	}
	return multiplier
}

// SuspiciousSenders returns the informational sender prefixes for a
// department, or nil for unknown departments.
func SuspiciousSenders(department string) []string {
	if patterns, ok := threatPatterns[strings.ToLower(department)]; ok {
		return patterns.SuspiciousSenders
	}
	return nil
}
