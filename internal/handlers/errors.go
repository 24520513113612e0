package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"banana/jobboard/internal/models"
)

// respondError maps the domain's sentinel errors onto HTTP statuses. Unknown
// errors surface as a generic 500 so internals never leak to clients.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "resource not found",
		})
	case errors.Is(err, models.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "you do not have access to this resource",
		})
	case errors.Is(err, models.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "invalid credentials",
		})
	case errors.Is(err, models.ErrDuplicateRoleAccount):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "an account with this email and role already exists",
		})
	case errors.Is(err, models.ErrCrossRoleConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "this email is already registered under a different role",
		})
	case errors.Is(err, models.ErrAlreadyApplied):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "you have already applied to this job",
		})
	case errors.Is(err, models.ErrInvalidTransition):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "the application is not in a state that allows this operation",
		})
	case errors.Is(err, models.ErrResponseCountMismatch):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "the number of responses must match the number of questions",
		})
	case errors.Is(err, models.ErrUnsupportedFileType):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "unsupported file type. Please upload a PDF or DOCX resume",
		})
	case errors.Is(err, models.ErrEmptyDocument):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "no readable text could be extracted from the document",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}
}
