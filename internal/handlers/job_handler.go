package handlers

import (
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"banana/jobboard/internal/models"
	"banana/jobboard/internal/repositories"
	"banana/jobboard/internal/services"
)

type JobHandler struct {
	jobRepo   repositories.JobRepository
	retrieval services.RetrievalService
	validate  *validator.Validate
}

func NewJobHandler(jobRepo repositories.JobRepository, retrieval services.RetrievalService) *JobHandler {
	return &JobHandler{
		jobRepo:   jobRepo,
		retrieval: retrieval,
		validate:  validator.New(),
	}
}

// HandleCreate handles POST /jobs (recruiter only)
func (h *JobHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CreateJobRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	job := &models.JobPosting{
		ID:          uuid.New(),
		RecruiterID: callerID(c),
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Salary:      req.Salary,
		Remote:      req.Remote,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := h.jobRepo.Create(job); err != nil {
		return respondError(c, err)
	}

	// Indexing feeds the fit-assessment retrieval; a failure never blocks the
	// posting itself.
	if err := h.retrieval.IndexJobPosting(c.Context(), job); err != nil {
		log.Printf("⚠️  Failed to index job posting %s: %v\n", job.ID, err)
	}

	return c.Status(fiber.StatusCreated).JSON(job)
}

// HandleList handles GET /jobs
func (h *JobHandler) HandleList(c *fiber.Ctx) error {
	// Recruiters see their own postings; applicants browse everything.
	if callerRole(c) == models.RoleRecruiter && c.QueryBool("mine", false) {
		jobs, err := h.jobRepo.ListByRecruiter(callerID(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"jobs": jobs})
	}

	jobs, err := h.jobRepo.List()
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"jobs": jobs})
}

// HandleGet handles GET /jobs/:id
func (h *JobHandler) HandleGet(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job ID format",
		})
	}

	job, err := h.jobRepo.FindByID(jobID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(job)
}
