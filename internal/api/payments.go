package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/ardlogistics/backoffice/internal/store"
)

type recordPaymentRequest struct {
	TrackingCode string          `json:"tracking_code"`
	Amount       decimal.Decimal `json:"amount"`
	Method       string          `json:"method"`
	ProcessorRef string          `json:"processor_ref"`
}

func (s *Server) handleRecordPayment(c *fiber.Ctx) error {
	var req recordPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestResponse(c, "invalid request body", nil)
	}

	if req.TrackingCode == "" {
		return badRequestResponse(c, "tracking_code is required", map[string]interface{}{
			"field": "tracking_code",
		})
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return badRequestResponse(c, "amount must be positive", map[string]interface{}{
			"field": "amount",
		})
	}
	if req.Method == "" {
		return badRequestResponse(c, "method is required", map[string]interface{}{
			"field": "method",
		})
	}

	employee := currentEmployee(c)

	payment, err := store.RecordPayment(c.Context(), s.db, req.TrackingCode, req.Amount, req.Method, req.ProcessorRef, employee.ID)
	if err != nil {
		return storeErrorResponse(c, err)
	}

	return createdResponse(c, "payment recorded", payment)
}

func (s *Server) handleListPayments(c *fiber.Ctx) error {
	payments, err := store.ListPayments(c.Context(), s.db, c.Params("tracking"))
	if err != nil {
		return storeErrorResponse(c, err)
	}

	return successResponse(c, "payments listed", payments)
}

func (s *Server) handlePackageBalance(c *fiber.Ctx) error {
	balance, err := store.GetPackageBalance(c.Context(), s.db, c.Params("tracking"))
	if err != nil {
		return storeErrorResponse(c, err)
	}

	return successResponse(c, "package balance retrieved", balance)
}
