package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"banana/jobboard/internal/models"
	"banana/jobboard/internal/services"
)

const (
	localAccountID = "accountID"
	localRole      = "role"
)

// RequireAuth validates the Bearer token and stores the caller's identity in
// the request locals.
func RequireAuth(auth services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing bearer token",
			})
		}

		accountID, role, err := auth.ParseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid or expired token",
			})
		}

		c.Locals(localAccountID, accountID)
		c.Locals(localRole, role)
		return c.Next()
	}
}

// RequireRole restricts a route to callers holding the given role. It must run
// after RequireAuth.
func RequireRole(role models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if callerRole(c) != role {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "this endpoint requires the " + string(role) + " role",
			})
		}
		return c.Next()
	}
}

func callerID(c *fiber.Ctx) uuid.UUID {
	if id, ok := c.Locals(localAccountID).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

func callerRole(c *fiber.Ctx) models.Role {
	if role, ok := c.Locals(localRole).(models.Role); ok {
		return role
	}
	return ""
}
