package services

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"banana/jobboard/internal/models"
)

// In-memory doubles for the repository and generation interfaces. They mimic
// the real implementations' error contracts so service tests exercise the
// same branches the handlers see.

type fakeAccountRepo struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]*models.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[uuid.UUID]*models.Account)}
}

func (r *fakeAccountRepo) Create(account *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.accounts {
		if existing.Email == account.Email && existing.Role == account.Role {
			return models.ErrDuplicateRoleAccount
		}
	}
	r.accounts[account.ID] = account
	return nil
}

func (r *fakeAccountRepo) FindByID(id uuid.UUID) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if account, ok := r.accounts[id]; ok {
		return account, nil
	}
	return nil, models.ErrNotFound
}

func (r *fakeAccountRepo) FindByEmail(email string) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, account := range r.accounts {
		if account.Email == email {
			return account, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *fakeAccountRepo) FindByEmailAndRole(email string, role models.Role) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, account := range r.accounts {
		if account.Email == email && account.Role == role {
			return account, nil
		}
	}
	return nil, models.ErrNotFound
}

type fakeJobRepo struct {
	jobs map[uuid.UUID]*models.JobPosting
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: make(map[uuid.UUID]*models.JobPosting)}
}

func (r *fakeJobRepo) Create(job *models.JobPosting) error {
	r.jobs[job.ID] = job
	return nil
}

func (r *fakeJobRepo) FindByID(id uuid.UUID) (*models.JobPosting, error) {
	if job, ok := r.jobs[id]; ok {
		return job, nil
	}
	return nil, models.ErrNotFound
}

func (r *fakeJobRepo) List() ([]models.JobPosting, error) {
	var jobs []models.JobPosting
	for _, job := range r.jobs {
		jobs = append(jobs, *job)
	}
	return jobs, nil
}

func (r *fakeJobRepo) ListByRecruiter(recruiterID uuid.UUID) ([]models.JobPosting, error) {
	var jobs []models.JobPosting
	for _, job := range r.jobs {
		if job.RecruiterID == recruiterID {
			jobs = append(jobs, *job)
		}
	}
	return jobs, nil
}

type fakeApplicationRepo struct {
	mu        sync.Mutex
	apps      map[uuid.UUID]*models.Application
	createErr error
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{apps: make(map[uuid.UUID]*models.Application)}
}

func (r *fakeApplicationRepo) Create(app *models.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	for _, existing := range r.apps {
		if existing.ApplicantID == app.ApplicantID && existing.JobPostingID == app.JobPostingID {
			return models.ErrAlreadyApplied
		}
	}
	copied := *app
	r.apps[app.ID] = &copied
	return nil
}

func (r *fakeApplicationRepo) FindByID(id uuid.UUID) (*models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if app, ok := r.apps[id]; ok {
		copied := *app
		return &copied, nil
	}
	return nil, models.ErrNotFound
}

func (r *fakeApplicationRepo) FindByApplicantAndJob(applicantID, jobID uuid.UUID) (*models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, app := range r.apps {
		if app.ApplicantID == applicantID && app.JobPostingID == jobID {
			copied := *app
			return &copied, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *fakeApplicationRepo) ListByApplicant(applicantID uuid.UUID) ([]models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var apps []models.Application
	for _, app := range r.apps {
		if app.ApplicantID == applicantID {
			apps = append(apps, *app)
		}
	}
	return apps, nil
}

func (r *fakeApplicationRepo) ListByJob(jobID uuid.UUID) ([]models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var apps []models.Application
	for _, app := range r.apps {
		if app.JobPostingID == jobID {
			apps = append(apps, *app)
		}
	}
	return apps, nil
}

func (r *fakeApplicationRepo) UpdateDecision(id uuid.UUID, status models.ApplicationStatus, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[id]
	if !ok {
		return models.ErrNotFound
	}
	app.Status = status
	app.RejectionReason = reason
	return nil
}

type fakeExtractor struct {
	text string
	err  error
}

func (e *fakeExtractor) ExtractText(filePath string) (string, error) {
	return e.text, e.err
}

func (e *fakeExtractor) Supported(filename string) bool {
	return e.err == nil
}

// fakeGenerator answers prompts from a FIFO queue; once the queue drains (or
// fail is set) every call errors.
type fakeGenerator struct {
	replies []string
	fail    bool
}

var errGeneratorDown = errors.New("generator unavailable")

func (g *fakeGenerator) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	if g.fail || len(g.replies) == 0 {
		return "", errGeneratorDown
	}
	reply := g.replies[0]
	g.replies = g.replies[1:]
	return reply, nil
}

func (g *fakeGenerator) GenerateTextWithRetry(ctx context.Context, prompt string, temperature float32, maxRetries int) (string, error) {
	return g.GenerateText(ctx, prompt, temperature)
}

func (g *fakeGenerator) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if g.fail {
		return nil, errGeneratorDown
	}
	return make([]float32, 768), nil
}

type fakeRetrieval struct {
	context string
	err     error
}

func (r *fakeRetrieval) IndexJobPosting(ctx context.Context, job *models.JobPosting) error {
	return r.err
}

func (r *fakeRetrieval) FetchContext(ctx context.Context, queryText string) (string, error) {
	return r.context, r.err
}

type sentMail struct {
	to      string
	subject string
}

type fakeNotifier struct {
	mu    sync.Mutex
	mails []sentMail
}

func (n *fakeNotifier) Notify(to, subject, body string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.mails = append(n.mails, sentMail{to: to, subject: subject})
}

func (n *fakeNotifier) sent() []sentMail {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]sentMail(nil), n.mails...)
}
