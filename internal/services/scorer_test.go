package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore_PassingApplication(t *testing.T) {
	cvText := "Led a team with strong leadership and clear communication."
	jobDescription := "We need leadership and ownership."
	responses := []string{
		"I used communication to resolve a conflict.",
		"My communication style is direct.",
	}

	// 2 CV keywords + 1 priority job description + 2 response qualities = 5.
	score, verdict := Score(cvText, jobDescription, responses)
	assert.Equal(t, 5, score)
	assert.Equal(t, VerdictPassed, verdict)
}

func TestScore_BelowThreshold(t *testing.T) {
	score, verdict := Score(
		"Experienced in teamwork and adaptability.",
		"Backend engineer role.",
		[]string{"I enjoy writing Go.", "I like databases."},
	)
	assert.Equal(t, 2, score)
	assert.Equal(t, VerdictNotSelected, verdict)
}

func TestScore_EmptyInputs(t *testing.T) {
	score, verdict := Score("", "", nil)
	assert.Equal(t, 0, score)
	assert.Equal(t, VerdictNotSelected, verdict)
}

func TestScore_RepeatedKeywordCountsOnce(t *testing.T) {
	score, _ := Score("leadership leadership leadership", "", nil)
	assert.Equal(t, 1, score)
}

func TestScore_CaseInsensitive(t *testing.T) {
	upper, _ := Score("LEADERSHIP and COMMUNICATION", "LEADERSHIP role", []string{"Communication matters"})
	lower, _ := Score("leadership and communication", "leadership role", []string{"communication matters"})
	assert.Equal(t, lower, upper)
}

func TestScore_Deterministic(t *testing.T) {
	cvText := "Teamwork, problem solving and adaptability across projects."
	jobDescription := "Looking for leadership."
	responses := []string{"leadership and communication", "plain answer"}

	firstScore, firstVerdict := Score(cvText, jobDescription, responses)
	for i := 0; i < 10; i++ {
		score, verdict := Score(cvText, jobDescription, responses)
		assert.Equal(t, firstScore, score)
		assert.Equal(t, firstVerdict, verdict)
	}
}

func TestScore_MonotonicInKeywordPresence(t *testing.T) {
	base := "Experienced engineer."
	baseScore, _ := Score(base, "", nil)

	for _, keyword := range []string{"leadership", "communication", "teamwork", "problem solving", "adaptability"} {
		enriched, _ := Score(base+" "+keyword, "", nil)
		assert.GreaterOrEqual(t, enriched, baseScore, "adding %q must never decrease the score", keyword)
	}
}

func TestScore_ResponseOrderIrrelevant(t *testing.T) {
	responses := []string{"communication first", "then leadership"}
	reversed := []string{"then leadership", "communication first"}

	forward, _ := Score("", "", responses)
	backward, _ := Score("", "", reversed)
	assert.Equal(t, forward, backward)
}

func TestScore_EachResponseCountedSeparately(t *testing.T) {
	// The same quality in two responses counts twice; twice in one response
	// counts once.
	twoResponses, _ := Score("", "", []string{"communication", "communication"})
	oneResponse, _ := Score("", "", []string{"communication and more communication"})
	assert.Equal(t, 2, twoResponses)
	assert.Equal(t, 1, oneResponse)
}
