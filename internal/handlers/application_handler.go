package handlers

import (
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"banana/jobboard/internal/models"
	"banana/jobboard/internal/repositories"
	"banana/jobboard/internal/services"
)

type ApplicationHandler struct {
	pipeline    services.PipelineService
	storage     services.StorageService
	appRepo     repositories.ApplicationRepository
	jobRepo     repositories.JobRepository
	maxFileSize int64
	validate    *validator.Validate
}

func NewApplicationHandler(
	pipeline services.PipelineService,
	storage services.StorageService,
	appRepo repositories.ApplicationRepository,
	jobRepo repositories.JobRepository,
	maxFileSize int64,
) *ApplicationHandler {
	return &ApplicationHandler{
		pipeline:    pipeline,
		storage:     storage,
		appRepo:     appRepo,
		jobRepo:     jobRepo,
		maxFileSize: maxFileSize,
		validate:    validator.New(),
	}
}

// HandleBegin handles POST /applications (applicant only). The multipart form
// carries job_id and a cv file; the response is a draft with the generated
// questions. No application row exists yet at this point.
func (h *ApplicationHandler) HandleBegin(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.FormValue("job_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job_id is required and must be a valid UUID",
		})
	}

	cvFile, err := c.FormFile("cv")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "cv file is required",
		})
	}

	if cvFile.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("CV file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	filename, filePath, err := h.storage.SaveFile(cvFile)
	if err != nil {
		return respondError(c, err)
	}

	draft, err := h.pipeline.Begin(c.Context(), callerID(c), jobID, filePath)

	// The resume file is only needed for extraction.
	if delErr := h.storage.DeleteFile(filename); delErr != nil {
		log.Printf("⚠️  Failed to clean up uploaded resume %s: %v\n", filename, delErr)
	}

	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.DraftResponse{
		DraftID:   draft.ID.String(),
		JobID:     draft.JobID.String(),
		Status:    string(draft.Status),
		Summary:   draft.Summary,
		Questions: draft.Questions,
	})
}

// HandleSubmit handles POST /applications/:id/submit (applicant only). The
// :id is the draft ID returned by HandleBegin.
func (h *ApplicationHandler) HandleSubmit(c *fiber.Ctx) error {
	draftID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid draft ID format",
		})
	}

	var req models.SubmitRequest
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

	app, err := h.pipeline.Submit(c.Context(), draftID, callerID(c), req.Responses)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(app)
}

// HandleGet handles GET /applications/:id. Applicants see their own
// applications; recruiters see applications to their own postings.
func (h *ApplicationHandler) HandleGet(c *fiber.Ctx) error {
	appID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid application ID format",
		})
	}

	app, err := h.appRepo.FindByID(appID)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.authorize(c, app); err != nil {
		return respondError(c, err)
	}

	return c.JSON(app)
}

// HandleList handles GET /applications. Applicants list their own
// applications; recruiters list applications for one of their postings via
// ?job_id=.
func (h *ApplicationHandler) HandleList(c *fiber.Ctx) error {
	if callerRole(c) == models.RoleApplicant {
		apps, err := h.appRepo.ListByApplicant(callerID(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"applications": apps})
	}

	jobID, err := uuid.Parse(c.Query("job_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job_id query parameter is required",
		})
	}

	job, err := h.jobRepo.FindByID(jobID)
	if err != nil {
		return respondError(c, err)
	}
	if job.RecruiterID != callerID(c) {
		return respondError(c, models.ErrForbidden)
	}

	apps, err := h.appRepo.ListByJob(jobID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"applications": apps})
}

// HandleDecide handles POST /applications/:id/decision (recruiter only).
func (h *ApplicationHandler) HandleDecide(c *fiber.Ctx) error {
	appID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid application ID format",
		})
	}

	var req models.DecisionRequest
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

	app, err := h.pipeline.Decide(c.Context(), appID, callerID(c), models.ApplicationStatus(req.Decision), req.Reason)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(app)
}

func (h *ApplicationHandler) authorize(c *fiber.Ctx, app *models.Application) error {
	switch callerRole(c) {
	case models.RoleApplicant:
		if app.ApplicantID != callerID(c) {
			return models.ErrForbidden
		}
	case models.RoleRecruiter:
		job, err := h.jobRepo.FindByID(app.JobPostingID)
		if err != nil {
			return err
		}
		if job.RecruiterID != callerID(c) {
			return models.ErrForbidden
		}
	default:
		return models.ErrForbidden
	}

	return nil
}
