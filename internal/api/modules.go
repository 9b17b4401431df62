package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ardlogistics/backoffice/internal/models"
)

func (s *Server) handleListModules(c *fiber.Ctx) error {
	matrix, err := s.gate.Matrix(c.Context())
	if err != nil {
		return storeErrorResponse(c, err)
	}

	return successResponse(c, "authorization matrix retrieved", matrix)
}

type setPermissionRequest struct {
	Role        models.Role `json:"role"`
	AccessLevel int         `json:"access_level"`
}

func (s *Server) handleSetPermission(c *fiber.Ctx) error {
	var req setPermissionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestResponse(c, "invalid request body", nil)
	}

	if !req.Role.Valid() {
		return badRequestResponse(c, "unknown role", map[string]interface{}{
			"field": "role",
		})
	}
	if req.AccessLevel < 0 {
		return badRequestResponse(c, "access_level must not be negative", map[string]interface{}{
			"field": "access_level",
		})
	}

	if err := s.gate.SetPermission(c.Context(), c.Params("code"), req.Role, req.AccessLevel); err != nil {
		return storeErrorResponse(c, err)
	}

	return successResponse(c, "permission updated", fiber.Map{
		"module":       c.Params("code"),
		"role":         req.Role,
		"access_level": req.AccessLevel,
	})
}
