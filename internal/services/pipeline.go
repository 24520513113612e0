package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"banana/jobboard/internal/models"
	"banana/jobboard/internal/repositories"
)

const (
	// summaryFallbackRunes bounds the truncated-prefix fallback used when
	// summarization fails.
	summaryFallbackRunes = 300

	// fitUnavailable is recorded when the AI fit assessment cannot be produced.
	fitUnavailable = "AI assessment unavailable"
)

// Draft is the in-flight pipeline state between the CV upload and the final
// submission. Drafts live only in memory: nothing is persisted before the
// Assessed -> Submitted write, so abandoning a draft leaves no record.
type Draft struct {
	ID          uuid.UUID
	ApplicantID uuid.UUID
	JobID       uuid.UUID
	Status      models.ApplicationStatus
	CVText      string
	Summary     string
	Questions   []string
	CreatedAt   time.Time
}

// PipelineService drives one application through
// Started -> TextExtracted -> Summarized -> QuestionsGenerated ->
// ResponsesCollected -> Assessed -> Submitted -> {Accepted, Rejected}.
type PipelineService interface {
	// Begin runs the upload half of the pipeline and returns a draft holding
	// the generated questions.
	Begin(ctx context.Context, applicantID, jobID uuid.UUID, filePath string) (*Draft, error)
	// Submit pairs responses with the draft's questions, assesses them, and
	// persists the application in a single write.
	Submit(ctx context.Context, draftID, applicantID uuid.UUID, responses []string) (*models.Application, error)
	// Decide records the owning recruiter's accept/reject decision, idempotently.
	Decide(ctx context.Context, applicationID, recruiterID uuid.UUID, decision models.ApplicationStatus, reason string) (*models.Application, error)
	// GetDraft returns the applicant's draft, if any.
	GetDraft(draftID, applicantID uuid.UUID) (*Draft, error)
}

type pipelineService struct {
	applications repositories.ApplicationRepository
	jobs         repositories.JobRepository
	accounts     repositories.AccountRepository
	extractor    ExtractorService
	generator    GeneratorService
	retrieval    RetrievalService
	notifier     Notifier
	prompts      *PromptBuilder

	questionCount   int
	generateTimeout time.Duration
	maxRetries      int

	mu      sync.Mutex
	drafts  map[uuid.UUID]*Draft
	byOwner map[ownerKey]uuid.UUID
}

type ownerKey struct {
	applicantID uuid.UUID
	jobID       uuid.UUID
}

func NewPipelineService(
	applications repositories.ApplicationRepository,
	jobs repositories.JobRepository,
	accounts repositories.AccountRepository,
	extractor ExtractorService,
	generator GeneratorService,
	retrieval RetrievalService,
	notifier Notifier,
	questionCount int,
	generateTimeout time.Duration,
	maxRetries int,
) PipelineService {
	if questionCount < 1 {
		questionCount = 5
	}
	if maxRetries < 1 {
		maxRetries = 1
	}

	return &pipelineService{
		applications:    applications,
		jobs:            jobs,
		accounts:        accounts,
		extractor:       extractor,
		generator:       generator,
		retrieval:       retrieval,
		notifier:        notifier,
		prompts:         NewPromptBuilder(),
		questionCount:   questionCount,
		generateTimeout: generateTimeout,
		maxRetries:      maxRetries,
		drafts:          make(map[uuid.UUID]*Draft),
		byOwner:         make(map[ownerKey]uuid.UUID),
	}
}

// Begin implements PipelineService.
func (p *pipelineService) Begin(ctx context.Context, applicantID, jobID uuid.UUID, filePath string) (*Draft, error) {
	job, err := p.jobs.FindByID(jobID)
	if err != nil {
		return nil, err
	}

	if _, err := p.applications.FindByApplicantAndJob(applicantID, jobID); err == nil {
		return nil, models.ErrAlreadyApplied
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	draft := &Draft{
		ID:          uuid.New(),
		ApplicantID: applicantID,
		JobID:       jobID,
		Status:      models.StatusStarted,
		CreatedAt:   time.Now(),
	}

	// Extraction failure halts the pipeline in place: the draft is never
	// registered and no record of any kind is created.
	cvText, err := p.extractor.ExtractText(filePath)
	if err != nil {
		return nil, err
	}
	if err := p.advance(draft, models.StatusTextExtracted); err != nil {
		return nil, err
	}
	draft.CVText = CleanText(cvText)

	draft.Summary = p.summarize(ctx, draft.CVText)
	if err := p.advance(draft, models.StatusSummarized); err != nil {
		return nil, err
	}

	draft.Questions = p.generateQuestions(ctx, draft.Summary, job.Description)
	if err := p.advance(draft, models.StatusQuestionsGenerated); err != nil {
		return nil, err
	}

	p.registerDraft(draft)
	log.Printf("📝 Draft %s ready for applicant %s (job %s, %d questions)\n",
		draft.ID, applicantID, jobID, len(draft.Questions))

	return draft, nil
}

// summarize applies the documented fallback on failure: the first
// summaryFallbackRunes runes of the extracted text.
func (p *pipelineService) summarize(ctx context.Context, cvText string) string {
	genCtx, cancel := context.WithTimeout(ctx, p.generateTimeout)
	defer cancel()

	summary, err := p.generator.GenerateTextWithRetry(genCtx, p.prompts.BuildSummaryPrompt(cvText), 0.7, p.maxRetries)
	if err != nil {
		log.Printf("⚠️  Summarization failed, falling back to truncated CV text: %v\n", err)
		return truncateRunes(cvText, summaryFallbackRunes)
	}

	return summary
}

func (p *pipelineService) generateQuestions(ctx context.Context, summary, jobDescription string) []string {
	genCtx, cancel := context.WithTimeout(ctx, p.generateTimeout)
	defer cancel()

	prompt := p.prompts.BuildQuestionsPrompt(summary, jobDescription, p.questionCount)
	text, err := p.generator.GenerateTextWithRetry(genCtx, prompt, 0.7, p.maxRetries)
	if err != nil {
		log.Printf("⚠️  Question generation failed, using fallback question set: %v\n", err)
		return FallbackQuestions()
	}

	questions := ParseQuestions(text)
	if len(questions) == 0 {
		log.Println("⚠️  Generated questions were unparseable, using fallback question set")
		return FallbackQuestions()
	}
	if len(questions) > p.questionCount {
		questions = questions[:p.questionCount]
	}

	return questions
}

// Submit implements PipelineService.
func (p *pipelineService) Submit(ctx context.Context, draftID, applicantID uuid.UUID, responses []string) (*models.Application, error) {
	draft, err := p.lookupDraft(draftID, applicantID)
	if err != nil {
		return nil, err
	}

	if draft.Status != models.StatusQuestionsGenerated {
		return nil, models.ErrInvalidTransition
	}

	// Responses pair 1:1 with questions; empty answers are allowed.
	if len(responses) != len(draft.Questions) {
		return nil, models.ErrResponseCountMismatch
	}

	job, err := p.jobs.FindByID(draft.JobID)
	if err != nil {
		return nil, err
	}

	// The remaining transitions are validated against the table but applied
	// to a copy, so a failed persistence leaves the draft retryable.
	status := draft.Status
	for _, next := range []models.ApplicationStatus{
		models.StatusResponsesCollected,
		models.StatusAssessed,
		models.StatusSubmitted,
	} {
		if !status.CanTransition(next) {
			return nil, models.ErrInvalidTransition
		}
		status = next
	}

	score, verdict := Score(draft.CVText, job.Description, responses)
	fit := p.assessFit(ctx, draft, job, responses)

	app := &models.Application{
		ID:            uuid.New(),
		JobPostingID:  draft.JobID,
		ApplicantID:   draft.ApplicantID,
		Status:        status,
		CVText:        draft.CVText,
		Summary:       draft.Summary,
		Questions:     draft.Questions,
		Responses:     responses,
		Score:         score,
		Verdict:       verdict,
		FitAssessment: fit,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	// Single insert: either the fully-populated row lands or nothing does.
	if err := p.applications.Create(app); err != nil {
		return nil, err
	}

	p.removeDraft(draft)
	log.Printf("✅ Application %s submitted (score %d, %q)\n", app.ID, score, verdict)

	if applicant, err := p.accounts.FindByID(draft.ApplicantID); err == nil {
		p.notifier.Notify(applicant.Email, fmt.Sprintf("Application received: %s", job.Title),
			fmt.Sprintf("Hi %s,\n\nYour application for %q has been submitted. We will be in touch.",
				applicant.DisplayName, job.Title))
	} else {
		log.Printf("⚠️  Skipping submission mail for application %s: %v\n", app.ID, err)
	}

	return app, nil
}

// assessFit produces the supplementary AI evaluation. It never gates the
// submission: any failure degrades to the unavailable marker.
func (p *pipelineService) assessFit(ctx context.Context, draft *Draft, job *models.JobPosting, responses []string) string {
	referenceContext := ""
	if p.retrieval != nil {
		fetched, err := p.retrieval.FetchContext(ctx, job.Title+"\n"+job.Description)
		if err != nil {
			log.Printf("⚠️  Reference context retrieval failed: %v\n", err)
		} else {
			referenceContext = fetched
		}
	}

	genCtx, cancel := context.WithTimeout(ctx, p.generateTimeout)
	defer cancel()

	prompt := p.prompts.BuildFitPrompt(draft.CVText, job.Description, draft.Questions, responses, referenceContext)
	fit, err := p.generator.GenerateTextWithRetry(genCtx, prompt, 0.3, p.maxRetries)
	if err != nil {
		log.Printf("⚠️  Fit assessment failed: %v\n", err)
		return fitUnavailable
	}

	return fit
}

// Decide implements PipelineService.
func (p *pipelineService) Decide(ctx context.Context, applicationID, recruiterID uuid.UUID, decision models.ApplicationStatus, reason string) (*models.Application, error) {
	if decision != models.StatusAccepted && decision != models.StatusRejected {
		return nil, models.ErrInvalidTransition
	}

	app, err := p.applications.FindByID(applicationID)
	if err != nil {
		return nil, err
	}

	job, err := p.jobs.FindByID(app.JobPostingID)
	if err != nil {
		return nil, err
	}
	if job.RecruiterID != recruiterID {
		return nil, models.ErrForbidden
	}

	// Re-issuing the same decision is a no-op: status unchanged, no second
	// notification.
	if app.Status == decision {
		return app, nil
	}

	if !app.Status.CanTransition(decision) {
		return nil, models.ErrInvalidTransition
	}

	if decision != models.StatusRejected {
		reason = ""
	}

	if err := p.applications.UpdateDecision(app.ID, decision, reason); err != nil {
		return nil, err
	}
	app.Status = decision
	app.RejectionReason = reason

	if applicant, err := p.accounts.FindByID(app.ApplicantID); err == nil {
		body := fmt.Sprintf("Hi %s,\n\nYour application for %q was %s.", applicant.DisplayName, job.Title, decision)
		if reason != "" {
			body += "\n\nReason: " + reason
		}
		p.notifier.Notify(applicant.Email, fmt.Sprintf("Update on your application: %s", job.Title), body)
	} else {
		log.Printf("⚠️  Skipping decision mail for application %s: %v\n", app.ID, err)
	}

	log.Printf("⚖️  Application %s decided: %s\n", app.ID, decision)
	return app, nil
}

// GetDraft implements PipelineService.
func (p *pipelineService) GetDraft(draftID, applicantID uuid.UUID) (*Draft, error) {
	return p.lookupDraft(draftID, applicantID)
}

func (p *pipelineService) advance(draft *Draft, next models.ApplicationStatus) error {
	if !draft.Status.CanTransition(next) {
		return models.ErrInvalidTransition
	}
	draft.Status = next
	return nil
}

// registerDraft stores the draft, replacing any earlier draft for the same
// (applicant, job) pair. Abandonment is implicit.
func (p *pipelineService) registerDraft(draft *Draft) {
	key := ownerKey{applicantID: draft.ApplicantID, jobID: draft.JobID}

	p.mu.Lock()
	defer p.mu.Unlock()

	if oldID, ok := p.byOwner[key]; ok {
		delete(p.drafts, oldID)
	}
	p.drafts[draft.ID] = draft
	p.byOwner[key] = draft.ID
}

func (p *pipelineService) lookupDraft(draftID, applicantID uuid.UUID) (*Draft, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	draft, ok := p.drafts[draftID]
	if !ok {
		return nil, models.ErrInvalidTransition
	}
	if draft.ApplicantID != applicantID {
		return nil, models.ErrForbidden
	}
	return draft, nil
}

func (p *pipelineService) removeDraft(draft *Draft) {
	p.mu.Lock()
	defer p.mu.Unlock()

	delete(p.drafts, draft.ID)
	delete(p.byOwner, ownerKey{applicantID: draft.ApplicantID, jobID: draft.JobID})
}

func truncateRunes(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n]) + " …"
}
