package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuestions_PlainLines(t *testing.T) {
	questions := ParseQuestions("First question?\nSecond question?\nThird question?")
	require.Len(t, questions, 3)
	assert.Equal(t, "First question?", questions[0])
}

func TestParseQuestions_StripsEnumeration(t *testing.T) {
	text := "1. What drives you?\n2) Tell us about a project.\n- How do you handle feedback?\n* Why this company?\n• What are your goals?"
	questions := ParseQuestions(text)
	require.Len(t, questions, 5)
	for _, q := range questions {
		assert.NotRegexp(t, `^[\d\-*•]`, q)
	}
	assert.Equal(t, "What drives you?", questions[0])
	assert.Equal(t, "Tell us about a project.", questions[1])
}

func TestParseQuestions_DropsBlankLines(t *testing.T) {
	questions := ParseQuestions("\n\nOnly question?\n\n   \n")
	require.Len(t, questions, 1)
	assert.Equal(t, "Only question?", questions[0])
}

func TestParseQuestions_EmptyInput(t *testing.T) {
	assert.Empty(t, ParseQuestions(""))
	assert.Empty(t, ParseQuestions("   \n  \n"))
}

func TestFallbackQuestions(t *testing.T) {
	questions := FallbackQuestions()
	require.Len(t, questions, 3)
	for _, q := range questions {
		assert.NotEmpty(t, q)
	}
}

func TestBuildQuestionsPrompt_IncludesCount(t *testing.T) {
	pb := NewPromptBuilder()
	prompt := pb.BuildQuestionsPrompt("summary", "job description", 5)
	assert.Contains(t, prompt, "generate 5 relevant interview questions")
	assert.Contains(t, prompt, "job description")
	assert.Contains(t, prompt, "summary")
}

func TestBuildFitPrompt_PairsQuestionsWithResponses(t *testing.T) {
	pb := NewPromptBuilder()
	prompt := pb.BuildFitPrompt(
		"cv text",
		"job description",
		[]string{"Q one?", "Q two?"},
		[]string{"A one", "A two"},
		"reference",
	)
	assert.Contains(t, prompt, "Q1: Q one?")
	assert.Contains(t, prompt, "A1: A one")
	assert.Contains(t, prompt, "Q2: Q two?")
	assert.Contains(t, prompt, "A2: A two")
}

func TestFormatReferenceContext(t *testing.T) {
	assert.Equal(t, "No reference material available.", FormatReferenceContext(nil))

	formatted := FormatReferenceContext([]SearchResult{
		{Score: 0.91, Text: "rubric chunk"},
		{Score: 0.55, Text: "guideline chunk"},
	})
	assert.True(t, strings.Contains(formatted, "rubric chunk"))
	assert.True(t, strings.Contains(formatted, "guideline chunk"))
	assert.Contains(t, formatted, "Reference 1")
	assert.Contains(t, formatted, "Reference 2")
}
