package api

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ardlogistics/backoffice/internal/store"
)

func containerIDParam(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}

type createContainerRequest struct {
	Number        string     `json:"number"`
	TransportMode string     `json:"transport_mode"`
	Origin        string     `json:"origin"`
	Destination   string     `json:"destination"`
	DepartureDate *time.Time `json:"departure_date"`
	ArrivalDate   *time.Time `json:"arrival_date"`
	StatusID      int64      `json:"status_id"`
}

func (s *Server) handleCreateContainer(c *fiber.Ctx) error {
	var req createContainerRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestResponse(c, "invalid request body", nil)
	}

	if req.Number == "" {
		return badRequestResponse(c, "number is required", map[string]interface{}{
			"field": "number",
		})
	}
	if req.StatusID == 0 {
		return badRequestResponse(c, "status_id is required", map[string]interface{}{
			"field": "status_id",
		})
	}

	employee := currentEmployee(c)

	container, err := store.CreateContainer(c.Context(), s.db, store.CreateContainerRequest{
		Number:        req.Number,
		TransportMode: req.TransportMode,
		Origin:        req.Origin,
		Destination:   req.Destination,
		DepartureDate: req.DepartureDate,
		ArrivalDate:   req.ArrivalDate,
		StatusID:      req.StatusID,
		CreatedBy:     employee.ID,
	})
	if err != nil {
		return storeErrorResponse(c, err)
	}

	return createdResponse(c, "container created", container)
}

func (s *Server) handleGetContainer(c *fiber.Ctx) error {
	id, err := containerIDParam(c)
	if err != nil {
		return badRequestResponse(c, "invalid container id", nil)
	}

	container, err := store.GetContainer(c.Context(), s.db, id)
	if err != nil {
		return storeErrorResponse(c, err)
	}

	return successResponse(c, "container retrieved", container)
}

func (s *Server) handleContainerPackages(c *fiber.Ctx) error {
	id, err := containerIDParam(c)
	if err != nil {
		return badRequestResponse(c, "invalid container id", nil)
	}

	if _, err := store.GetContainer(c.Context(), s.db, id); err != nil {
		return storeErrorResponse(c, err)
	}

	packages, err := store.ListContainerPackages(c.Context(), s.db, id)
	if err != nil {
		return storeErrorResponse(c, err)
	}

	return successResponse(c, "container packages listed", packages)
}

func (s *Server) handleUpdateContainerStatus(c *fiber.Ctx) error {
	id, err := containerIDParam(c)
	if err != nil {
		return badRequestResponse(c, "invalid container id", nil)
	}

	var req updateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestResponse(c, "invalid request body", nil)
	}

	if req.StatusID == 0 {
		return badRequestResponse(c, "status_id is required", map[string]interface{}{
			"field": "status_id",
		})
	}

	employee := currentEmployee(c)

	container, change, err := store.UpdateContainerStatus(c.Context(), s.db, id, req.StatusID, employee.ID, req.Comment)
	if err != nil {
		return storeErrorResponse(c, err)
	}

	s.publisher.ContainerStatusChanged(id, change.OldStatusID, change.NewStatusID, employee.ID, req.Comment)

	return successResponse(c, "container status updated", fiber.Map{
		"container": container,
		"change":    change,
	})
}

func (s *Server) handleContainerHistory(c *fiber.Ctx) error {
	id, err := containerIDParam(c)
	if err != nil {
		return badRequestResponse(c, "invalid container id", nil)
	}

	changes, err := store.GetContainerHistory(c.Context(), s.db, id)
	if err != nil {
		return storeErrorResponse(c, err)
	}

	return successResponse(c, "container history retrieved", changes)
}

func (s *Server) handleRefreshContainerTotals(c *fiber.Ctx) error {
	id, err := containerIDParam(c)
	if err != nil {
		return badRequestResponse(c, "invalid container id", nil)
	}

	container, err := store.RefreshContainerTotals(c.Context(), s.db, id)
	if err != nil {
		return storeErrorResponse(c, err)
	}

	return successResponse(c, "container totals refreshed", container)
}

type setDocumentsRequest struct {
	ManifestPath string `json:"manifest_path"`
	CustomsPath  string `json:"customs_path"`
}

func (s *Server) handleSetContainerDocuments(c *fiber.Ctx) error {
	id, err := containerIDParam(c)
	if err != nil {
		return badRequestResponse(c, "invalid container id", nil)
	}

	var req setDocumentsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestResponse(c, "invalid request body", nil)
	}

	container, err := store.SetContainerDocuments(c.Context(), s.db, id, req.ManifestPath, req.CustomsPath)
	if err != nil {
		return storeErrorResponse(c, err)
	}

	return successResponse(c, "container documents updated", container)
}
