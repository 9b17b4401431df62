package api

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/ardlogistics/backoffice/internal/database"
	"github.com/ardlogistics/backoffice/internal/models"
	"github.com/ardlogistics/backoffice/internal/store"
)

const employeeLocal = "employee"

// Authenticate resolves the acting employee from the X-Employee-ID header
// set by the session layer in front of this service. Deleted and
// deactivated accounts are rejected before any module gate is consulted.
func (s *Server) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idHeader := c.Get("X-Employee-ID")
		if idHeader == "" {
			return forbiddenResponse(c, "missing employee identity")
		}

		id, err := strconv.ParseInt(idHeader, 10, 64)
		if err != nil {
			return forbiddenResponse(c, "invalid employee identity")
		}

		employee, err := store.GetEmployee(c.Context(), s.db, id)
		if err != nil {
			if errors.Is(err, database.ErrEmployeeNotFound) {
				return forbiddenResponse(c, "unknown employee")
			}
			log.Printf("authenticate: %v", err)
			return internalErrorResponse(c)
		}

		if !employee.Active() {
			return forbiddenResponse(c, "employee account disabled")
		}

		c.Locals(employeeLocal, employee)
		return c.Next()
	}
}

// RequireModule gates a route group on the authorization matrix. Denials
// return 403; this guard runs server-side on every module route, not just
// in the UI.
func (s *Server) RequireModule(moduleCode string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		employee := currentEmployee(c)
		if employee == nil {
			return forbiddenResponse(c, "missing employee identity")
		}

		allowed, err := s.gate.Allowed(c.Context(), employee.Role, moduleCode)
		if err != nil {
			log.Printf("authz check for module %q: %v", moduleCode, err)
			return internalErrorResponse(c)
		}
		if !allowed {
			return forbiddenResponse(c, "role not permitted for this module")
		}

		return c.Next()
	}
}

func currentEmployee(c *fiber.Ctx) *models.Employee {
	employee, _ := c.Locals(employeeLocal).(*models.Employee)
	return employee
}
