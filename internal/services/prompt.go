package services

import (
	"fmt"
	"regexp"
	"strings"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildSummaryPrompt creates the prompt for CV summarization.
func (pb *PromptBuilder) BuildSummaryPrompt(cvText string) string {
	return fmt.Sprintf(`Summarize the following CV text into a concise and informative summary for a recruiter.

CV TEXT:
%s

Return ONLY the summary text, 3-5 sentences, no headers or formatting.`, cvText)
}

// BuildQuestionsPrompt creates the prompt for interview question generation.
func (pb *PromptBuilder) BuildQuestionsPrompt(summary, jobDescription string, count int) string {
	return fmt.Sprintf(`Based on the following job description and applicant's summary, generate %d relevant interview questions.

JOB DESCRIPTION:
%s

APPLICANT SUMMARY:
%s

Return exactly %d questions, one per line, with no numbering, bullets, or extra commentary.`,
		count, jobDescription, summary, count)
}

// BuildFitPrompt creates the prompt for the supplementary AI fit assessment.
// The result is stored next to, never instead of, the deterministic verdict.
func (pb *PromptBuilder) BuildFitPrompt(cvText, jobDescription string, questions, responses []string, referenceContext string) string {
	var transcript strings.Builder
	for i, q := range questions {
		answer := ""
		if i < len(responses) {
			answer = responses[i]
		}
		fmt.Fprintf(&transcript, "Q%d: %s\nA%d: %s\n", i+1, q, i+1, answer)
	}

	return fmt.Sprintf(`You are an expert recruiter assessing how well a candidate fits a role.

JOB DESCRIPTION:
%s

REFERENCE MATERIAL:
%s

CANDIDATE CV:
%s

INTERVIEW TRANSCRIPT:
%s

Provide a concise fit assessment (3-5 sentences): strengths, gaps, and an overall impression. Return ONLY the assessment text.`,
		jobDescription, referenceContext, cvText, transcript.String())
}

// enumerationPrefix matches leading list markers such as "1.", "2)", "-" or "*".
var enumerationPrefix = regexp.MustCompile(`^\s*(?:\d+[.)]|[-*•])\s*`)

// ParseQuestions splits generated text into discrete questions: one per line,
// enumeration prefixes stripped, blank lines dropped.
func ParseQuestions(text string) []string {
	var questions []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(enumerationPrefix.ReplaceAllString(line, ""))
		if line == "" {
			continue
		}
		questions = append(questions, line)
	}
	return questions
}

// FallbackQuestions is the fixed minimal question set used when generation
// fails or its output is unparseable. Submission never blocks on generation.
func FallbackQuestions() []string {
	return []string{
		"Tell us about your most relevant experience for this role.",
		"Describe a challenge you faced at work and how you handled it.",
		"Why are you interested in this position?",
	}
}

// FormatReferenceContext renders retrieval results for prompt injection.
func FormatReferenceContext(results []SearchResult) string {
	if len(results) == 0 {
		return "No reference material available."
	}

	var parts []string
	for i, result := range results {
		parts = append(parts, fmt.Sprintf("--- Reference %d (Score: %.2f) ---\n%s",
			i+1, result.Score, strings.TrimSpace(result.Text)))
	}

	return strings.Join(parts, "\n\n")
}
