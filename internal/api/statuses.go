package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ardlogistics/backoffice/internal/store"
)

type createStatusRequest struct {
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
	Color     string `json:"color"`
}

func (s *Server) handleListPackageStatuses(c *fiber.Ctx) error {
	statuses, err := store.ListPackageStatuses(c.Context(), s.db)
	if err != nil {
		return storeErrorResponse(c, err)
	}

	return successResponse(c, "package statuses listed", statuses)
}

func (s *Server) handleCreatePackageStatus(c *fiber.Ctx) error {
	var req createStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestResponse(c, "invalid request body", nil)
	}

	if req.Name == "" {
		return badRequestResponse(c, "name is required", map[string]interface{}{
			"field": "name",
		})
	}

	status, err := store.CreatePackageStatus(c.Context(), s.db, req.Name, req.SortOrder, req.Color)
	if err != nil {
		return storeErrorResponse(c, err)
	}

	return createdResponse(c, "package status created", status)
}

func (s *Server) handleListContainerStatuses(c *fiber.Ctx) error {
	statuses, err := store.ListContainerStatuses(c.Context(), s.db)
	if err != nil {
		return storeErrorResponse(c, err)
	}

	return successResponse(c, "container statuses listed", statuses)
}

func (s *Server) handleCreateContainerStatus(c *fiber.Ctx) error {
	var req createStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestResponse(c, "invalid request body", nil)
	}

	if req.Name == "" {
		return badRequestResponse(c, "name is required", map[string]interface{}{
			"field": "name",
		})
	}

	status, err := store.CreateContainerStatus(c.Context(), s.db, req.Name, req.SortOrder, req.Color)
	if err != nil {
		return storeErrorResponse(c, err)
	}

	return createdResponse(c, "container status created", status)
}
