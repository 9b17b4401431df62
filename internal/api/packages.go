package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/ardlogistics/backoffice/internal/store"
)

type createPackageRequest struct {
	TrackingCode      string          `json:"tracking_code"`
	CourierNumber     string          `json:"courier_number"`
	StatusID          int64           `json:"status_id"`
	CustomerID        int64           `json:"customer_id"`
	WeightKg          decimal.Decimal `json:"weight_kg"`
	LengthCm          decimal.Decimal `json:"length_cm"`
	WidthCm           decimal.Decimal `json:"width_cm"`
	HeightCm          decimal.Decimal `json:"height_cm"`
	DeclaredAmount    decimal.Decimal `json:"declared_amount"`
	ShippingPrice     decimal.Decimal `json:"shipping_price"`
	AdditionalCharges decimal.Decimal `json:"additional_charges"`
	PickupLocation    string          `json:"pickup_location"`
}

func (s *Server) handleCreatePackage(c *fiber.Ctx) error {
	var req createPackageRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestResponse(c, "invalid request body", nil)
	}

	if req.StatusID == 0 {
		return badRequestResponse(c, "status_id is required", map[string]interface{}{
			"field": "status_id",
		})
	}
	if req.CustomerID == 0 {
		return badRequestResponse(c, "customer_id is required", map[string]interface{}{
			"field": "customer_id",
		})
	}

	employee := currentEmployee(c)

	pkg, err := store.CreatePackage(c.Context(), s.db, store.CreatePackageRequest{
		TrackingCode:      req.TrackingCode,
		CourierNumber:     req.CourierNumber,
		StatusID:          req.StatusID,
		CustomerID:        req.CustomerID,
		WeightKg:          req.WeightKg,
		LengthCm:          req.LengthCm,
		WidthCm:           req.WidthCm,
		HeightCm:          req.HeightCm,
		DeclaredAmount:    req.DeclaredAmount,
		ShippingPrice:     req.ShippingPrice,
		AdditionalCharges: req.AdditionalCharges,
		PickupLocation:    req.PickupLocation,
		CreatedBy:         employee.ID,
	})
	if err != nil {
		return storeErrorResponse(c, err)
	}

	return createdResponse(c, "package created", pkg)
}

func (s *Server) handleGetPackage(c *fiber.Ctx) error {
	pkg, err := store.GetPackageByTracking(c.Context(), s.db, c.Params("tracking"))
	if err != nil {
		return storeErrorResponse(c, err)
	}

	return successResponse(c, "package retrieved", pkg)
}

func (s *Server) handleListPackages(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}

	page, err := store.ListPackagesCursor(c.Context(), s.db, c.Query("cursor"), limit)
	if err != nil {
		return storeErrorResponse(c, err)
	}

	return successResponse(c, "packages listed", page)
}

type updateStatusRequest struct {
	StatusID int64  `json:"status_id"`
	Comment  string `json:"comment"`
}

func (s *Server) handleUpdatePackageStatus(c *fiber.Ctx) error {
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
	trackingCode := c.Params("tracking")

	pkg, change, err := store.UpdatePackageStatus(c.Context(), s.db, trackingCode, req.StatusID, employee.ID, req.Comment)
	if err != nil {
		return storeErrorResponse(c, err)
	}

	s.publisher.PackageStatusChanged(trackingCode, change.OldStatusID, change.NewStatusID, employee.ID, req.Comment)

	return successResponse(c, "package status updated", fiber.Map{
		"package": pkg,
		"change":  change,
	})
}

func (s *Server) handlePackageHistory(c *fiber.Ctx) error {
	changes, err := store.GetPackageHistory(c.Context(), s.db, c.Params("tracking"))
	if err != nil {
		return storeErrorResponse(c, err)
	}

	return successResponse(c, "package history retrieved", changes)
}

type assignContainerRequest struct {
	ContainerID *int64 `json:"container_id"`
}

func (s *Server) handleAssignContainer(c *fiber.Ctx) error {
	var req assignContainerRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestResponse(c, "invalid request body", nil)
	}

	pkg, err := store.AssignPackageToContainer(c.Context(), s.db, c.Params("tracking"), req.ContainerID)
	if err != nil {
		return storeErrorResponse(c, err)
	}

	return successResponse(c, "package container assignment updated", pkg)
}

type assignBatchRequest struct {
	BatchID *int64 `json:"batch_id"`
}

func (s *Server) handleAssignBatch(c *fiber.Ctx) error {
	var req assignBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestResponse(c, "invalid request body", nil)
	}

	pkg, err := store.AssignPackageToBatch(c.Context(), s.db, c.Params("tracking"), req.BatchID)
	if err != nil {
		return storeErrorResponse(c, err)
	}

	return successResponse(c, "package batch assignment updated", pkg)
}
