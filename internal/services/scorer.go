package services

import "strings"

const (
	VerdictPassed      = "Passed to next round"
	VerdictNotSelected = "Not selected"

	// passThreshold is the minimum score for a passing verdict.
	passThreshold = 5

	// priorityKeyword marks job descriptions that weight the score up.
	priorityKeyword = "leadership"
)

// cvKeywords are the competency terms counted once each when present in the
// extracted CV text.
var cvKeywords = []string{
	"leadership",
	"communication",
	"teamwork",
	"problem solving",
	"adaptability",
}

// responseQualities are counted once per quality per response.
var responseQualities = []string{
	"leadership",
	"communication",
}

// Score computes the deterministic assessment for an application. It is a
// total function: any combination of inputs yields a score and a verdict.
// Matching is case-insensitive substring presence, so repeated occurrences
// of a keyword count once and response order does not matter.
func Score(cvText, jobDescription string, responses []string) (int, string) {
	score := 0

	cv := strings.ToLower(cvText)
	for _, keyword := range cvKeywords {
		if strings.Contains(cv, keyword) {
			score++
		}
	}

	if strings.Contains(strings.ToLower(jobDescription), priorityKeyword) {
		score++
	}

	for _, response := range responses {
		lowered := strings.ToLower(response)
		for _, quality := range responseQualities {
			if strings.Contains(lowered, quality) {
				score++
			}
		}
	}

	if score >= passThreshold {
		return score, VerdictPassed
	}
	return score, VerdictNotSelected
}
