package api

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/ardlogistics/backoffice/internal/models"
	"github.com/ardlogistics/backoffice/internal/store"
)

type createEmployeeRequest struct {
	FullName string      `json:"full_name"`
	Email    string      `json:"email"`
	Role     models.Role `json:"role"`
}

func (s *Server) handleCreateEmployee(c *fiber.Ctx) error {
	var req createEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestResponse(c, "invalid request body", nil)
	}

	if req.FullName == "" {
		return badRequestResponse(c, "full_name is required", map[string]interface{}{
			"field": "full_name",
		})
	}
	if req.Email == "" {
		return badRequestResponse(c, "email is required", map[string]interface{}{
			"field": "email",
		})
	}
	if !req.Role.Valid() {
		return badRequestResponse(c, "unknown role", map[string]interface{}{
			"field": "role",
		})
	}

	employee, err := store.CreateEmployee(c.Context(), s.db, req.FullName, req.Email, req.Role)
	if err != nil {
		return storeErrorResponse(c, err)
	}

	return createdResponse(c, "employee created", employee)
}

func (s *Server) handleGetEmployee(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return badRequestResponse(c, "invalid employee id", nil)
	}

	employee, err := store.GetEmployee(c.Context(), s.db, id)
	if err != nil {
		return storeErrorResponse(c, err)
	}

	return successResponse(c, "employee retrieved", employee)
}

func (s *Server) handleListEmployees(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	pageSize := c.QueryInt("page_size", 20)
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	result, err := store.ListEmployees(c.Context(), s.db, page, pageSize)
	if err != nil {
		return storeErrorResponse(c, err)
	}

	return successResponse(c, "employees listed", result)
}

type setAccountStatusRequest struct {
	AccountStatus string `json:"account_status"`
}

func (s *Server) handleSetAccountStatus(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return badRequestResponse(c, "invalid employee id", nil)
	}

	var req setAccountStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestResponse(c, "invalid request body", nil)
	}

	if req.AccountStatus != models.AccountStatusActive && req.AccountStatus != models.AccountStatusDeactivated {
		return badRequestResponse(c, "unknown account status", map[string]interface{}{
			"field": "account_status",
		})
	}

	if err := store.SetEmployeeAccountStatus(c.Context(), s.db, id, req.AccountStatus); err != nil {
		return storeErrorResponse(c, err)
	}

	return successResponse(c, "account status updated", fiber.Map{
		"id":             id,
		"account_status": req.AccountStatus,
	})
}

func (s *Server) handleDeleteEmployee(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return badRequestResponse(c, "invalid employee id", nil)
	}

	if err := store.SoftDeleteEmployee(c.Context(), s.db, id); err != nil {
		return storeErrorResponse(c, err)
	}

	return successResponse(c, "employee deleted", nil)
}
