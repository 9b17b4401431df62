package api

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/ardlogistics/backoffice/internal/store"
)

type createBatchRequest struct {
	Number string `json:"number"`
}

func (s *Server) handleCreateBatch(c *fiber.Ctx) error {
	var req createBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestResponse(c, "invalid request body", nil)
	}

	if req.Number == "" {
		return badRequestResponse(c, "number is required", map[string]interface{}{
			"field": "number",
		})
	}

	batch, err := store.CreateBatch(c.Context(), s.db, req.Number)
	if err != nil {
		return storeErrorResponse(c, err)
	}

	// The unlock code is only disclosed at creation time.
	return createdResponse(c, "batch created", fiber.Map{
		"batch":       batch,
		"unlock_code": batch.UnlockCode,
	})
}

func (s *Server) handleGetBatch(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return badRequestResponse(c, "invalid batch id", nil)
	}

	batch, err := store.GetBatch(c.Context(), s.db, id)
	if err != nil {
		return storeErrorResponse(c, err)
	}

	return successResponse(c, "batch retrieved", batch)
}

type unlockBatchRequest struct {
	UnlockCode string `json:"unlock_code"`
}

func (s *Server) handleUnlockBatch(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return badRequestResponse(c, "invalid batch id", nil)
	}

	var req unlockBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestResponse(c, "invalid request body", nil)
	}

	if req.UnlockCode == "" {
		return badRequestResponse(c, "unlock_code is required", map[string]interface{}{
			"field": "unlock_code",
		})
	}

	employee := currentEmployee(c)

	batch, err := store.UnlockBatch(c.Context(), s.db, id, req.UnlockCode, employee.ID)
	if err != nil {
		return storeErrorResponse(c, err)
	}

	s.publisher.BatchUnlocked(batch.ID, employee.ID)

	return successResponse(c, "batch unlocked", batch)
}

func (s *Server) handleLockBatch(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return badRequestResponse(c, "invalid batch id", nil)
	}

	batch, err := store.LockBatch(c.Context(), s.db, id)
	if err != nil {
		return storeErrorResponse(c, err)
	}

	return successResponse(c, "batch locked", fiber.Map{
		"batch":       batch,
		"unlock_code": batch.UnlockCode,
	})
}
