package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/ardlogistics/backoffice/internal/store"
)

type createMessageRequest struct {
	Subject      string  `json:"subject"`
	Body         string  `json:"body"`
	TrackingCode string  `json:"tracking_code"`
	ContainerID  *int64  `json:"container_id"`
	RecipientIDs []int64 `json:"recipient_ids"`
}

func (s *Server) handleCreateMessage(c *fiber.Ctx) error {
	var req createMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestResponse(c, "invalid request body", nil)
	}

	if req.Subject == "" {
		return badRequestResponse(c, "subject is required", map[string]interface{}{
			"field": "subject",
		})
	}
	if len(req.RecipientIDs) == 0 {
		return badRequestResponse(c, "at least one recipient is required", map[string]interface{}{
			"field": "recipient_ids",
		})
	}

	employee := currentEmployee(c)

	message, err := store.CreateMessage(c.Context(), s.db, store.CreateMessageRequest{
		Subject:      req.Subject,
		Body:         req.Body,
		TrackingCode: req.TrackingCode,
		ContainerID:  req.ContainerID,
		SenderID:     employee.ID,
		RecipientIDs: req.RecipientIDs,
	})
	if err != nil {
		return storeErrorResponse(c, err)
	}

	return createdResponse(c, "message created", message)
}

func (s *Server) handleInbox(c *fiber.Ctx) error {
	employee := currentEmployee(c)

	messages, err := store.ListInbox(c.Context(), s.db, employee.ID)
	if err != nil {
		return storeErrorResponse(c, err)
	}

	return successResponse(c, "inbox retrieved", messages)
}

func messageIDParam(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("id"))
}

func (s *Server) handleMarkRead(c *fiber.Ctx) error {
	id, err := messageIDParam(c)
	if err != nil {
		return badRequestResponse(c, "invalid message id", nil)
	}

	employee := currentEmployee(c)

	message, err := store.MarkMessageRead(c.Context(), s.db, id, employee.ID)
	if err != nil {
		return storeErrorResponse(c, err)
	}

	return successResponse(c, "message marked read", message)
}

func (s *Server) handleToggleStar(c *fiber.Ctx) error {
	id, err := messageIDParam(c)
	if err != nil {
		return badRequestResponse(c, "invalid message id", nil)
	}

	employee := currentEmployee(c)

	message, err := store.ToggleMessageStar(c.Context(), s.db, id, employee.ID)
	if err != nil {
		return storeErrorResponse(c, err)
	}

	return successResponse(c, "message star toggled", message)
}

func (s *Server) handleDeleteMessage(c *fiber.Ctx) error {
	id, err := messageIDParam(c)
	if err != nil {
		return badRequestResponse(c, "invalid message id", nil)
	}

	employee := currentEmployee(c)

	if err := store.DeleteMessageForRecipient(c.Context(), s.db, id, employee.ID); err != nil {
		return storeErrorResponse(c, err)
	}

	return successResponse(c, "message deleted", nil)
}
